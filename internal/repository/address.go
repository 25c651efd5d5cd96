package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/superfruitcenter/fruitmart/internal/models"
	"github.com/superfruitcenter/fruitmart/internal/repository/postgres"
)

const (
	insertAddressQuery = `
						INSERT INTO addresses (user_id, name, phone, flat, building, landmark)
						VALUES ($1, $2, $3, $4, $5, $6)
						RETURNING id
`
	selectAddressByIDQuery = `
						SELECT id, user_id, name, phone, flat, building, landmark FROM addresses
						WHERE id = $1
`
	selectAddressesByUserQuery = `
						SELECT id, user_id, name, phone, flat, building, landmark FROM addresses
						WHERE user_id = $1
						ORDER BY name
`
	deleteAddressQuery = `
						DELETE FROM addresses
						WHERE user_id = $1 AND id = $2
`
)

// AddressRepository implements service.AddressRepository interface
type AddressRepository struct {
	db *postgres.DB
}

// NewAddressRepository creates new AddressRepository instance
func NewAddressRepository(db *postgres.DB) *AddressRepository {
	return &AddressRepository{db: db}
}

// AddressByID returns an address by id
func (ar *AddressRepository) AddressByID(ctx context.Context, id uuid.UUID) (*models.Address, error) {
	addr := models.Address{}

	err := ar.db.QueryRow(ctx, selectAddressByIDQuery, id).
		Scan(&addr.ID, &addr.UserID, &addr.Name, &addr.Phone, &addr.Flat, &addr.Building, &addr.Landmark)
	if err != nil {
		if ar.db.IsNoRows(err) {
			return nil, models.ErrDataNotFound
		}
		return nil, err
	}

	return &addr, nil
}

// AddressesByUser returns the user's address book
func (ar *AddressRepository) AddressesByUser(ctx context.Context, userID uuid.UUID) ([]models.Address, error) {
	rows, err := ar.db.Query(ctx, selectAddressesByUserQuery, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	addresses := []models.Address{}

	for rows.Next() {
		addr := models.Address{}
		if err := rows.Scan(&addr.ID, &addr.UserID, &addr.Name, &addr.Phone, &addr.Flat, &addr.Building, &addr.Landmark); err != nil {
			continue
		}
		addresses = append(addresses, addr)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return addresses, nil
}

// CreateAddress inserts a new address
func (ar *AddressRepository) CreateAddress(ctx context.Context, addr *models.Address) (*models.Address, error) {
	err := ar.db.QueryRow(ctx, insertAddressQuery,
		addr.UserID, addr.Name, addr.Phone, addr.Flat, addr.Building, addr.Landmark).Scan(&addr.ID)
	if err != nil {
		return nil, err
	}

	return addr, nil
}

// DeleteAddress removes an address
func (ar *AddressRepository) DeleteAddress(ctx context.Context, userID, id uuid.UUID) error {
	cmd, err := ar.db.Exec(ctx, deleteAddressQuery, userID, id)
	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return models.ErrDataNotFound
	}

	return nil
}
