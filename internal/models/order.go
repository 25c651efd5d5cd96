package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// order status
const (
	OrderStatusPlaced    = "PLACED"
	OrderStatusDelivered = "DELIVERED"
	OrderStatusCancelled = "CANCELLED"
)

// PaymentMethod is how the order is paid for. Online payment exists in
// the model but is rejected at the API boundary.
type PaymentMethod string

const (
	PaymentCashOnDelivery PaymentMethod = "cash_on_delivery"
	PaymentOnline         PaymentMethod = "online"
)

// AddressSnapshot is a denormalized copy of the delivery address taken
// at order time. Later edits to the address book never alter it.
type AddressSnapshot struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Flat     string `json:"flat"`
	Building string `json:"building"`
	Landmark string `json:"landmark,omitempty"`
}

// OrderLineItem is a single purchased product with its price snapshot
type OrderLineItem struct {
	ProductID  uuid.UUID       `json:"product_id"`
	Name       string          `json:"name"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	Amount     string          `json:"amount"`
	Quantity   decimal.Decimal `json:"quantity"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

// OrderDraft is a fully computed order payload ready to be persisted.
// It is immutable once built for a given placement.
type OrderDraft struct {
	UserID        uuid.UUID       `json:"user_id"`
	Address       AddressSnapshot `json:"address"`
	Items         []OrderLineItem `json:"items"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	DeliveryFee   decimal.Decimal `json:"delivery_fee"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	PaymentMethod PaymentMethod   `json:"payment_method"`
}

// Validate checks draft invariants before any store interaction
func (d OrderDraft) Validate() error {
	if d.UserID == uuid.Nil {
		return ErrInvalidDraft
	}
	if len(d.Items) == 0 {
		return ErrEmptyCart
	}
	if !d.TotalAmount.IsPositive() {
		return ErrInvalidDraft
	}
	for _, item := range d.Items {
		if item.TotalPrice.IsNegative() {
			return ErrInvalidDraft
		}
	}
	if d.Address.Name == "" || d.Address.Phone == "" {
		return ErrInvalidAddress
	}
	if d.PaymentMethod == PaymentOnline {
		return ErrPaymentMethodDisabled
	}
	return nil
}

// Order is a persisted order entity. It is owned by the store and never
// mutated after creation.
type Order struct {
	ID            uuid.UUID       `json:"id"`
	UserID        uuid.UUID       `json:"user_id"`
	Address       AddressSnapshot `json:"address"`
	Items         []OrderLineItem `json:"items"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	DeliveryFee   decimal.Decimal `json:"delivery_fee"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	PaymentMethod PaymentMethod   `json:"payment_method"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
}

// OrderSummary is the slim projection used when matching a stored order
// against a draft
type OrderSummary struct {
	ID          uuid.UUID
	TotalAmount decimal.Decimal
	ItemCount   int
	CreatedAt   time.Time
}

// OrderAttempt is one in-flight placement. It is journaled before the
// store call so it survives a crash and can be reconciled on restart.
type OrderAttempt struct {
	UserID        uuid.UUID  `json:"user_id"`
	AttemptNumber int        `json:"attempt_number"`
	Draft         OrderDraft `json:"draft"`
	StartedAt     time.Time  `json:"started_at"`
}

// RecoveredPlacement reports an interrupted attempt that turned out to
// have landed in the store
type RecoveredPlacement struct {
	UserID  uuid.UUID
	OrderID uuid.UUID
}
