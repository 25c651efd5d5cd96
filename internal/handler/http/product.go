package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/superfruitcenter/fruitmart/internal/models"
)

// ProductService is interface for catalog operations
type ProductService interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

// ProductHandler represents HTTP handler for catalog requests
type ProductHandler struct {
	svc ProductService
}

// NewProductHandler creates new ProductHandler instance
func NewProductHandler(svc ProductService) *ProductHandler {
	return &ProductHandler{svc: svc}
}

type productResp struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Unit        string `json:"unit"`
	Price       string `json:"price"`
	ImageURL    string `json:"image_url,omitempty"`
	InStock     bool   `json:"in_stock"`
}

func toProductResp(p models.Product) productResp {
	return productResp{
		ID:          p.ID.String(),
		Name:        p.Name,
		Description: p.Description,
		Unit:        p.Unit,
		Price:       p.Price.String(),
		ImageURL:    p.ImageURL,
		InStock:     p.InStock,
	}
}

// ListProducts returns the fruit catalog
func (ph *ProductHandler) ListProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		products, err := ph.svc.ListProducts(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		resp := lo.Map(products, func(p models.Product, _ int) productResp {
			return toProductResp(p)
		})

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}
}

// GetProduct returns a single catalog entry
func (ph *ProductHandler) GetProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "productID"))
		if err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}

		product, err := ph.svc.GetProduct(r.Context(), id)
		if err != nil {
			if errors.Is(err, models.ErrDataNotFound) {
				http.Error(w, "product not found", http.StatusNotFound)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(toProductResp(*product))
	}
}
