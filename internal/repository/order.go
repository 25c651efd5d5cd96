package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/superfruitcenter/fruitmart/internal/models"
	"github.com/superfruitcenter/fruitmart/internal/repository/postgres"
)

const pgErrUniqueViolationCode = "23505"

const (
	insertOrderQuery = `
						INSERT INTO orders (user_id, address, items, subtotal, delivery_fee, total_amount, payment_method, status)
						VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
						RETURNING id, created_at
`
	selectRecentOrdersQuery = `
						SELECT id, total_amount::text, jsonb_array_length(items), created_at FROM orders
						WHERE user_id = $1 AND created_at >= $2
						ORDER BY created_at DESC
`
	selectOrdersByUserQuery = `
						SELECT id, user_id, address, items, subtotal::text, delivery_fee::text, total_amount::text, payment_method, status, created_at FROM orders
						WHERE user_id = $1
						ORDER BY created_at DESC
`
)

// OrderRepository implements service.OrderRepository interface
type OrderRepository struct {
	db *postgres.DB
}

// NewOrderRepository creates new OrderRepository instance
func NewOrderRepository(db *postgres.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// CreateOrder inserts new order to database
func (or *OrderRepository) CreateOrder(ctx context.Context, draft models.OrderDraft) (*models.Order, error) {
	address, err := json.Marshal(draft.Address)
	if err != nil {
		return nil, fmt.Errorf("marshal address: %w", err)
	}
	items, err := json.Marshal(draft.Items)
	if err != nil {
		return nil, fmt.Errorf("marshal items: %w", err)
	}

	order := models.Order{
		UserID:        draft.UserID,
		Address:       draft.Address,
		Items:         draft.Items,
		Subtotal:      draft.Subtotal,
		DeliveryFee:   draft.DeliveryFee,
		TotalAmount:   draft.TotalAmount,
		PaymentMethod: draft.PaymentMethod,
		Status:        models.OrderStatusPlaced,
	}

	err = or.db.QueryRow(ctx, insertOrderQuery,
		draft.UserID,
		address,
		items,
		draft.Subtotal.String(),
		draft.DeliveryFee.String(),
		draft.TotalAmount.String(),
		string(draft.PaymentMethod),
		models.OrderStatusPlaced,
	).Scan(&order.ID, &order.CreatedAt)
	if err != nil {
		return nil, err
	}

	return &order, nil
}

// RecentOrdersByUser returns user orders created since given time, newest first
func (or *OrderRepository) RecentOrdersByUser(ctx context.Context, userID uuid.UUID, since time.Time) ([]models.OrderSummary, error) {
	rows, err := or.db.Query(ctx, selectRecentOrdersQuery, userID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := []models.OrderSummary{}

	for rows.Next() {
		var (
			summary models.OrderSummary
			total   string
		)
		if err := rows.Scan(&summary.ID, &total, &summary.ItemCount, &summary.CreatedAt); err != nil {
			continue
		}
		summary.TotalAmount, err = decimal.NewFromString(total)
		if err != nil {
			continue
		}
		summaries = append(summaries, summary)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return summaries, nil
}

// OrdersByUser returns all user orders, newest first
func (or *OrderRepository) OrdersByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	rows, err := or.db.Query(ctx, selectOrdersByUserQuery, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []models.Order{}

	for rows.Next() {
		var (
			order                           models.Order
			address, items                  []byte
			subtotal, deliveryFee, totalAmt string
		)
		err := rows.Scan(&order.ID, &order.UserID, &address, &items, &subtotal, &deliveryFee, &totalAmt, &order.PaymentMethod, &order.Status, &order.CreatedAt)
		if err != nil {
			continue
		}
		if err := json.Unmarshal(address, &order.Address); err != nil {
			continue
		}
		if err := json.Unmarshal(items, &order.Items); err != nil {
			continue
		}
		if order.Subtotal, err = decimal.NewFromString(subtotal); err != nil {
			continue
		}
		if order.DeliveryFee, err = decimal.NewFromString(deliveryFee); err != nil {
			continue
		}
		if order.TotalAmount, err = decimal.NewFromString(totalAmt); err != nil {
			continue
		}
		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
