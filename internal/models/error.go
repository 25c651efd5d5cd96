package models

import (
	"errors"
	"fmt"
)

var (
	ErrConflictData          = errors.New("data conflicts with existing data")
	ErrDataNotFound          = errors.New("data not found")
	ErrInvalidCredentials    = errors.New("invalid login or password")
	ErrInvalidDraft          = errors.New("invalid order draft")
	ErrEmptyCart             = errors.New("cart is empty")
	ErrInvalidAddress        = errors.New("invalid delivery address")
	ErrPaymentMethodDisabled = errors.New("payment method is not available")
	ErrPlacementInFlight     = errors.New("another order placement is already in progress")
	ErrPlacementExhausted    = errors.New("order placement failed after multiple attempts, check your order history before retrying")
	ErrInternalError         = errors.New("internal error")
)

// StatusError is a store or upstream failure carrying an HTTP-like
// status code used for retry classification
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("status %d: %s", e.Code, e.Message)
}

// NewStatusError creates StatusError with given code and message
func NewStatusError(code int, message string) *StatusError {
	return &StatusError{Code: code, Message: message}
}
