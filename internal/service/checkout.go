package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/superfruitcenter/fruitmart/internal/logger"
	"github.com/superfruitcenter/fruitmart/internal/models"
	"go.uber.org/zap"
)

// CheckoutService builds an order draft from the user's cart and places
// it through the order service. The cart is cleared best-effort once
// the placement is confirmed, a failed clear never reverts the order.
type CheckoutService struct {
	*OrderService
	carts     CartRepository
	addresses AddressRepository
}

// NewCheckoutService creates new CheckoutService instance
func NewCheckoutService(orders *OrderService, carts CartRepository, addresses AddressRepository) *CheckoutService {
	return &CheckoutService{
		OrderService: orders,
		carts:        carts,
		addresses:    addresses,
	}
}

// Checkout places an order for the user's current cart delivered to the
// given address
func (cs *CheckoutService) Checkout(ctx context.Context, userID, addressID uuid.UUID, method models.PaymentMethod) (uuid.UUID, error) {
	items, err := cs.carts.CartByUser(ctx, userID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("load cart: %w", err)
	}
	if len(items) == 0 {
		return uuid.Nil, models.ErrEmptyCart
	}

	addr, err := cs.addresses.AddressByID(ctx, addressID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("load address: %w", err)
	}
	if addr.UserID != userID {
		return uuid.Nil, models.ErrDataNotFound
	}

	draft := BuildDraft(userID, addr.Snapshot(), items, method)

	orderID, err := cs.PlaceOrder(ctx, draft)
	if err != nil {
		return uuid.Nil, err
	}

	if err := cs.carts.ClearCart(ctx, userID); err != nil {
		logger.Log.Warn("cannot clear cart after placement",
			zap.String("user_id", userID.String()),
			zap.Error(err))
	}

	return orderID, nil
}

// RecoverAbandonedAttempts reconciles interrupted placements and clears
// the cart of every user whose attempt turned out to have landed
func (cs *CheckoutService) RecoverAbandonedAttempts(ctx context.Context) ([]models.RecoveredPlacement, error) {
	recovered, err := cs.OrderService.RecoverAbandonedAttempts(ctx)
	if err != nil {
		return nil, err
	}

	for _, placement := range recovered {
		if err := cs.carts.ClearCart(ctx, placement.UserID); err != nil {
			logger.Log.Warn("cannot clear cart after recovery",
				zap.String("user_id", placement.UserID.String()),
				zap.Error(err))
		}
	}

	return recovered, nil
}

// BuildDraft computes line totals, subtotal and delivery fee for the
// given cart lines. The address is snapshotted into the draft, later
// address edits never alter a placed order.
func BuildDraft(userID uuid.UUID, addr models.AddressSnapshot, items []models.CartItem, method models.PaymentMethod) models.OrderDraft {
	lines := lo.Map(items, func(item models.CartItem, _ int) models.OrderLineItem {
		qty := ParseQuantity(item.Amount, item.Unit)
		return models.OrderLineItem{
			ProductID:  item.ProductID,
			Name:       item.Name,
			UnitPrice:  item.UnitPrice,
			Amount:     item.Amount,
			Quantity:   qty,
			TotalPrice: item.UnitPrice.Mul(qty),
		}
	})

	subtotal := decimal.Zero
	for _, line := range lines {
		subtotal = subtotal.Add(line.TotalPrice)
	}

	fee := DeliveryFee(subtotal)

	return models.OrderDraft{
		UserID:        userID,
		Address:       addr,
		Items:         lines,
		Subtotal:      subtotal,
		DeliveryFee:   fee,
		TotalAmount:   subtotal.Add(fee),
		PaymentMethod: method,
	}
}
