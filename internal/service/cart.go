package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/superfruitcenter/fruitmart/internal/models"
)

// CartRepository is interface for interacting with cart-related data
type CartRepository interface {
	// CartByUser returns the user's cart lines
	CartByUser(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error)
	// UpsertItem adds a product to the cart or replaces its amount
	UpsertItem(ctx context.Context, item models.CartItem) error
	// RemoveItem removes a product from the cart
	RemoveItem(ctx context.Context, userID, productID uuid.UUID) error
	// ClearCart removes all cart lines of the user
	ClearCart(ctx context.Context, userID uuid.UUID) error
}

// ProductRepository is interface for interacting with the catalog
type ProductRepository interface {
	// Products returns all catalog entries
	Products(ctx context.Context) ([]models.Product, error)
	// ProductByID returns a catalog entry by id
	ProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

// CartService manages the user's shopping cart. Product name, unit and
// price are denormalized into the cart line at add time.
type CartService struct {
	carts    CartRepository
	products ProductRepository
}

// NewCartService creates new CartService instance
func NewCartService(carts CartRepository, products ProductRepository) *CartService {
	return &CartService{
		carts:    carts,
		products: products,
	}
}

// GetCart returns the user's cart lines
func (cs *CartService) GetCart(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error) {
	return cs.carts.CartByUser(ctx, userID)
}

// AddItem puts a product into the user's cart with the given amount
func (cs *CartService) AddItem(ctx context.Context, userID, productID uuid.UUID, amount string) (*models.CartItem, error) {
	product, err := cs.products.ProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if !product.InStock {
		return nil, models.ErrDataNotFound
	}

	item := models.CartItem{
		UserID:    userID,
		ProductID: product.ID,
		Name:      product.Name,
		Unit:      product.Unit,
		UnitPrice: product.Price,
		Amount:    amount,
	}

	if err := cs.carts.UpsertItem(ctx, item); err != nil {
		return nil, err
	}

	return &item, nil
}

// RemoveItem removes a product from the user's cart
func (cs *CartService) RemoveItem(ctx context.Context, userID, productID uuid.UUID) error {
	return cs.carts.RemoveItem(ctx, userID, productID)
}

// Clear removes all lines from the user's cart
func (cs *CartService) Clear(ctx context.Context, userID uuid.UUID) error {
	return cs.carts.ClearCart(ctx, userID)
}
