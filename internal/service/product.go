package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/superfruitcenter/fruitmart/internal/models"
)

// ProductService exposes the fruit catalog
type ProductService struct {
	repo ProductRepository
}

// NewProductService creates new ProductService instance
func NewProductService(repo ProductRepository) *ProductService {
	return &ProductService{repo: repo}
}

// ListProducts returns all catalog entries
func (ps *ProductService) ListProducts(ctx context.Context) ([]models.Product, error) {
	return ps.repo.Products(ctx)
}

// GetProduct returns a catalog entry by id
func (ps *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	return ps.repo.ProductByID(ctx, id)
}
