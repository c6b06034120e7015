package repository

import (
	"context"
	"errors"

	"github.com/iyhunko/product-service/internal/model"
)

var (
	// ErrNotFound is returned when no stored product matches the requested identifier.
	ErrNotFound = errors.New("product not found")
)

// ProductRepository defines the storage operations the product service depends on.
type ProductRepository interface {
	// Save inserts a new product (assigning its ID) or replaces an existing one.
	Save(ctx context.Context, product *model.Product) (*model.Product, error)
	FindByID(ctx context.Context, id string) (*model.Product, error)
	// FindAll returns every stored product; an empty store yields an empty slice.
	FindAll(ctx context.Context) ([]*model.Product, error)
	Delete(ctx context.Context, product *model.Product) error
}
