package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/superfruitcenter/fruitmart/internal/middleware"
	"github.com/superfruitcenter/fruitmart/internal/models"
)

// AddressService is interface for address book operations
type AddressService interface {
	ListAddresses(ctx context.Context, userID uuid.UUID) ([]models.Address, error)
	CreateAddress(ctx context.Context, addr *models.Address) (*models.Address, error)
	DeleteAddress(ctx context.Context, userID, id uuid.UUID) error
}

// AddressHandler represents HTTP handler for address book requests
type AddressHandler struct {
	svc AddressService
}

// NewAddressHandler creates new AddressHandler instance
func NewAddressHandler(svc AddressService) *AddressHandler {
	return &AddressHandler{svc: svc}
}

type addressReq struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Flat     string `json:"flat"`
	Building string `json:"building"`
	Landmark string `json:"landmark,omitempty"`
}

// ListAddresses returns the user's address book
func (ah *AddressHandler) ListAddresses() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.UserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		addresses, err := ah.svc.ListAddresses(r.Context(), userID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(addresses)
	}
}

// CreateAddress adds a new address to the user's address book
func (ah *AddressHandler) CreateAddress() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.UserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		req := addressReq{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		addr, err := ah.svc.CreateAddress(r.Context(), &models.Address{
			UserID:   userID,
			Name:     req.Name,
			Phone:    req.Phone,
			Flat:     req.Flat,
			Building: req.Building,
			Landmark: req.Landmark,
		})
		if err != nil {
			if errors.Is(err, models.ErrInvalidAddress) {
				http.Error(w, err.Error(), http.StatusUnprocessableEntity)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(addr)
	}
}

// DeleteAddress removes an address from the user's address book
func (ah *AddressHandler) DeleteAddress() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.UserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		id, err := uuid.Parse(chi.URLParam(r, "addressID"))
		if err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}

		if err := ah.svc.DeleteAddress(r.Context(), userID, id); err != nil {
			if errors.Is(err, models.ErrDataNotFound) {
				http.Error(w, "address not found", http.StatusNotFound)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
