package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/superfruitcenter/fruitmart/internal/middleware"
	"github.com/superfruitcenter/fruitmart/internal/models"
)

// OrderService is interface for placing and listing orders
type OrderService interface {
	Checkout(ctx context.Context, userID, addressID uuid.UUID, method models.PaymentMethod) (uuid.UUID, error)
	ListUserOrders(ctx context.Context, userID uuid.UUID) ([]models.Order, error)
}

// OrderHandler represents HTTP handler for order-related requests
type OrderHandler struct {
	svc OrderService
}

// NewOrderHandler creates new OrderHandler instance
func NewOrderHandler(svc OrderService) *OrderHandler {
	return &OrderHandler{svc: svc}
}

type placeOrderReq struct {
	AddressID     uuid.UUID `json:"address_id"`
	PaymentMethod string    `json:"payment_method"`
}

type placeOrderResp struct {
	OrderID string `json:"order_id"`
}

type orderItemResp struct {
	ProductID  string `json:"product_id"`
	Name       string `json:"name"`
	Amount     string `json:"amount"`
	UnitPrice  string `json:"unit_price"`
	TotalPrice string `json:"total_price"`
}

type listOrdersResp struct {
	ID            string          `json:"id"`
	Items         []orderItemResp `json:"items"`
	Subtotal      string          `json:"subtotal"`
	DeliveryFee   string          `json:"delivery_fee"`
	TotalAmount   string          `json:"total_amount"`
	PaymentMethod string          `json:"payment_method"`
	Status        string          `json:"status"`
	CreatedAt     string          `json:"created_at"`
}

// PlaceOrder places an order for the user's current cart
// 201 — order placed;
// 400 — malformed request;
// 401 — user is not authenticated;
// 404 — delivery address not found;
// 409 — another placement is already in flight;
// 422 — cart or address cannot form a valid order;
// 502 — placement failed after all attempts;
// 500 — internal error.
func (oh *OrderHandler) PlaceOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.UserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		req := placeOrderReq{}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		method := models.PaymentMethod(req.PaymentMethod)
		if method == "" {
			method = models.PaymentCashOnDelivery
		}

		orderID, err := oh.svc.Checkout(r.Context(), userID, req.AddressID, method)
		if err != nil {
			switch {
			case errors.Is(err, models.ErrPlacementInFlight):
				http.Error(w, err.Error(), http.StatusConflict)
			case errors.Is(err, models.ErrEmptyCart),
				errors.Is(err, models.ErrInvalidDraft),
				errors.Is(err, models.ErrInvalidAddress),
				errors.Is(err, models.ErrPaymentMethodDisabled):
				http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			case errors.Is(err, models.ErrDataNotFound):
				http.Error(w, "address not found", http.StatusNotFound)
			case errors.Is(err, models.ErrPlacementExhausted):
				http.Error(w, err.Error(), http.StatusBadGateway)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(placeOrderResp{OrderID: orderID.String()})
	}
}

// ListUserOrders returns the user's order history, newest first
// 200 — success;
// 204 — no orders;
// 401 — user is not authenticated;
// 500 — internal error.
func (oh *OrderHandler) ListUserOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.UserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		orders, err := oh.svc.ListUserOrders(r.Context(), userID)
		if err != nil {
			if errors.Is(err, models.ErrDataNotFound) {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		if len(orders) == 0 {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		resp := lo.Map(orders, func(order models.Order, _ int) listOrdersResp {
			items := lo.Map(order.Items, func(item models.OrderLineItem, _ int) orderItemResp {
				return orderItemResp{
					ProductID:  item.ProductID.String(),
					Name:       item.Name,
					Amount:     item.Amount,
					UnitPrice:  item.UnitPrice.String(),
					TotalPrice: item.TotalPrice.String(),
				}
			})
			return listOrdersResp{
				ID:            order.ID.String(),
				Items:         items,
				Subtotal:      order.Subtotal.String(),
				DeliveryFee:   order.DeliveryFee.String(),
				TotalAmount:   order.TotalAmount.String(),
				PaymentMethod: string(order.PaymentMethod),
				Status:        order.Status,
				CreatedAt:     order.CreatedAt.Format(time.RFC3339),
			}
		})

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}
}
