package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/superfruitcenter/fruitmart/internal/models"
)

// AddressRepository is interface for interacting with address-book data
type AddressRepository interface {
	// AddressByID returns an address by id
	AddressByID(ctx context.Context, id uuid.UUID) (*models.Address, error)
	// AddressesByUser returns the user's address book
	AddressesByUser(ctx context.Context, userID uuid.UUID) ([]models.Address, error)
	// CreateAddress inserts a new address
	CreateAddress(ctx context.Context, addr *models.Address) (*models.Address, error)
	// DeleteAddress removes an address
	DeleteAddress(ctx context.Context, userID, id uuid.UUID) error
}

// AddressService manages the user's address book
type AddressService struct {
	repo AddressRepository
}

// NewAddressService creates new AddressService instance
func NewAddressService(repo AddressRepository) *AddressService {
	return &AddressService{repo: repo}
}

// ListAddresses returns the user's address book
func (as *AddressService) ListAddresses(ctx context.Context, userID uuid.UUID) ([]models.Address, error) {
	return as.repo.AddressesByUser(ctx, userID)
}

// CreateAddress adds a new address to the user's address book
func (as *AddressService) CreateAddress(ctx context.Context, addr *models.Address) (*models.Address, error) {
	if addr.Name == "" || addr.Phone == "" || addr.Building == "" {
		return nil, models.ErrInvalidAddress
	}
	return as.repo.CreateAddress(ctx, addr)
}

// DeleteAddress removes an address from the user's address book
func (as *AddressService) DeleteAddress(ctx context.Context, userID, id uuid.UUID) error {
	return as.repo.DeleteAddress(ctx, userID, id)
}
