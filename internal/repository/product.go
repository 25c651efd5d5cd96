package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/superfruitcenter/fruitmart/internal/models"
	"github.com/superfruitcenter/fruitmart/internal/repository/postgres"
)

const (
	selectProductsQuery = `
						SELECT id, name, description, unit, price::text, image_url, in_stock, created_at FROM products
						ORDER BY name
`
	selectProductByIDQuery = `
						SELECT id, name, description, unit, price::text, image_url, in_stock, created_at FROM products
						WHERE id = $1
`
)

// ProductRepository implements service.ProductRepository interface
type ProductRepository struct {
	db *postgres.DB
}

// NewProductRepository creates new ProductRepository instance
func NewProductRepository(db *postgres.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// Products returns all catalog entries
func (pr *ProductRepository) Products(ctx context.Context) ([]models.Product, error) {
	rows, err := pr.db.Query(ctx, selectProductsQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []models.Product{}

	for rows.Next() {
		var (
			product models.Product
			price   string
		)
		if err := rows.Scan(&product.ID, &product.Name, &product.Description, &product.Unit, &price, &product.ImageURL, &product.InStock, &product.CreatedAt); err != nil {
			continue
		}
		if product.Price, err = decimal.NewFromString(price); err != nil {
			continue
		}
		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return products, nil
}

// ProductByID returns a catalog entry by id
func (pr *ProductRepository) ProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var (
		product models.Product
		price   string
	)

	err := pr.db.QueryRow(ctx, selectProductByIDQuery, id).
		Scan(&product.ID, &product.Name, &product.Description, &product.Unit, &price, &product.ImageURL, &product.InStock, &product.CreatedAt)
	if err != nil {
		if pr.db.IsNoRows(err) {
			return nil, models.ErrDataNotFound
		}
		return nil, err
	}

	product.Price, err = decimal.NewFromString(price)
	if err != nil {
		return nil, err
	}

	return &product, nil
}
