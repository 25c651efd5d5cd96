package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// product unit, determines how an amount string is parsed
const (
	UnitKg    = "kg"
	UnitPiece = "piece"
	UnitBox   = "box"
)

// Product is a catalog entry
type Product struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Unit        string          `json:"unit"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"image_url,omitempty"`
	InStock     bool            `json:"in_stock"`
	CreatedAt   time.Time       `json:"created_at"`
}

// CartItem is a product placed in a user's cart. Name, unit and price
// are denormalized at add time.
type CartItem struct {
	UserID    uuid.UUID       `json:"user_id"`
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	Unit      string          `json:"unit"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Amount    string          `json:"amount"`
	AddedAt   time.Time       `json:"added_at"`
}
