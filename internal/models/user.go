package models

import (
	"time"

	"github.com/google/uuid"
)

// User is a registered customer
type User struct {
	ID           uuid.UUID
	Login        string
	PasswordHash string
	CreatedAt    time.Time
}

// TokenPayload is authorization token payload
type TokenPayload struct {
	UserID    uuid.UUID
	ExpiredAt time.Time
}

// Address is an address book entry
type Address struct {
	ID       uuid.UUID `json:"id"`
	UserID   uuid.UUID `json:"user_id"`
	Name     string    `json:"name"`
	Phone    string    `json:"phone"`
	Flat     string    `json:"flat"`
	Building string    `json:"building"`
	Landmark string    `json:"landmark,omitempty"`
}

// Snapshot copies the address into an order-time snapshot
func (a Address) Snapshot() AddressSnapshot {
	return AddressSnapshot{
		Name:     a.Name,
		Phone:    a.Phone,
		Flat:     a.Flat,
		Building: a.Building,
		Landmark: a.Landmark,
	}
}
