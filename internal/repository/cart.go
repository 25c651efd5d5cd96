package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/superfruitcenter/fruitmart/internal/models"
	"github.com/superfruitcenter/fruitmart/internal/repository/postgres"
)

const (
	upsertCartItemQuery = `
						INSERT INTO cart_items (user_id, product_id, name, unit, unit_price, amount)
						VALUES ($1, $2, $3, $4, $5, $6)
						ON CONFLICT (user_id, product_id) DO UPDATE
						SET amount = EXCLUDED.amount, unit_price = EXCLUDED.unit_price, added_at = now()
`
	selectCartByUserQuery = `
						SELECT user_id, product_id, name, unit, unit_price::text, amount, added_at FROM cart_items
						WHERE user_id = $1
						ORDER BY added_at
`
	deleteCartItemQuery = `
						DELETE FROM cart_items
						WHERE user_id = $1 AND product_id = $2
`
	deleteCartQuery = `
						DELETE FROM cart_items
						WHERE user_id = $1
`
)

// CartRepository implements service.CartRepository interface
type CartRepository struct {
	db *postgres.DB
}

// NewCartRepository creates new CartRepository instance
func NewCartRepository(db *postgres.DB) *CartRepository {
	return &CartRepository{db: db}
}

// CartByUser returns the user's cart lines
func (cr *CartRepository) CartByUser(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error) {
	rows, err := cr.db.Query(ctx, selectCartByUserQuery, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []models.CartItem{}

	for rows.Next() {
		var (
			item  models.CartItem
			price string
		)
		if err := rows.Scan(&item.UserID, &item.ProductID, &item.Name, &item.Unit, &price, &item.Amount, &item.AddedAt); err != nil {
			continue
		}
		if item.UnitPrice, err = decimal.NewFromString(price); err != nil {
			continue
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

// UpsertItem adds a product to the cart or replaces its amount
func (cr *CartRepository) UpsertItem(ctx context.Context, item models.CartItem) error {
	_, err := cr.db.Exec(ctx, upsertCartItemQuery,
		item.UserID, item.ProductID, item.Name, item.Unit, item.UnitPrice.String(), item.Amount)
	return err
}

// RemoveItem removes a product from the cart
func (cr *CartRepository) RemoveItem(ctx context.Context, userID, productID uuid.UUID) error {
	cmd, err := cr.db.Exec(ctx, deleteCartItemQuery, userID, productID)
	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return models.ErrDataNotFound
	}

	return nil
}

// ClearCart removes all cart lines of the user
func (cr *CartRepository) ClearCart(ctx context.Context, userID uuid.UUID) error {
	_, err := cr.db.Exec(ctx, deleteCartQuery, userID)
	return err
}
