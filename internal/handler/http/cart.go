package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/superfruitcenter/fruitmart/internal/middleware"
	"github.com/superfruitcenter/fruitmart/internal/models"
)

// CartService is interface for cart operations
type CartService interface {
	GetCart(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error)
	AddItem(ctx context.Context, userID, productID uuid.UUID, amount string) (*models.CartItem, error)
	RemoveItem(ctx context.Context, userID, productID uuid.UUID) error
}

// CartHandler represents HTTP handler for cart-related requests
type CartHandler struct {
	svc CartService
}

// NewCartHandler creates new CartHandler instance
func NewCartHandler(svc CartService) *CartHandler {
	return &CartHandler{svc: svc}
}

type addCartItemReq struct {
	ProductID uuid.UUID `json:"product_id"`
	Amount    string    `json:"amount"`
}

type cartItemResp struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Unit      string `json:"unit"`
	UnitPrice string `json:"unit_price"`
	Amount    string `json:"amount"`
}

// GetCart returns the user's cart
func (ch *CartHandler) GetCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.UserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := ch.svc.GetCart(r.Context(), userID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		resp := lo.Map(items, func(item models.CartItem, _ int) cartItemResp {
			return cartItemResp{
				ProductID: item.ProductID.String(),
				Name:      item.Name,
				Unit:      item.Unit,
				UnitPrice: item.UnitPrice.String(),
				Amount:    item.Amount,
			}
		})

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}
}

// AddItem puts a product into the user's cart
func (ch *CartHandler) AddItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.UserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		req := addCartItemReq{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		if req.ProductID == uuid.Nil || req.Amount == "" {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}

		item, err := ch.svc.AddItem(r.Context(), userID, req.ProductID, req.Amount)
		if err != nil {
			if errors.Is(err, models.ErrDataNotFound) {
				http.Error(w, "product not found", http.StatusNotFound)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(cartItemResp{
			ProductID: item.ProductID.String(),
			Name:      item.Name,
			Unit:      item.Unit,
			UnitPrice: item.UnitPrice.String(),
			Amount:    item.Amount,
		})
	}
}

// RemoveItem removes a product from the user's cart
func (ch *CartHandler) RemoveItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.UserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		productID, err := uuid.Parse(chi.URLParam(r, "productID"))
		if err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}

		if err := ch.svc.RemoveItem(r.Context(), userID, productID); err != nil {
			if errors.Is(err, models.ErrDataNotFound) {
				http.Error(w, "item not found", http.StatusNotFound)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
