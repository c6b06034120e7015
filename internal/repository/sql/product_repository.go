package sql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/iyhunko/product-service/internal/model"
	"github.com/iyhunko/product-service/internal/repository"
)

// ProductRepository implements repository.ProductRepository on a PostgreSQL table.
type ProductRepository struct {
	db *sql.DB
}

// NewProductRepository creates a new ProductRepository instance.
func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

var _ repository.ProductRepository = (*ProductRepository)(nil)

// Save inserts a new product or updates the row of an existing one.
func (r *ProductRepository) Save(ctx context.Context, product *model.Product) (*model.Product, error) {
	if product.IsNew() {
		return r.insert(ctx, product)
	}
	return r.update(ctx, product)
}

func (r *ProductRepository) insert(ctx context.Context, product *model.Product) (*model.Product, error) {
	query := `INSERT INTO products (id, name, description, sku_code, price) 
	          VALUES ($1, $2, $3, $4, $5)`

	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare insert statement: %w", err)
	}
	defer stmt.Close()

	id := uuid.NewString()
	_, err = stmt.ExecContext(ctx, id, product.Name, product.Description, product.SkuCode, product.Price)
	if err != nil {
		return nil, fmt.Errorf("failed to insert product: %w", err)
	}

	product.ID = id
	return product, nil
}

func (r *ProductRepository) update(ctx context.Context, product *model.Product) (*model.Product, error) {
	query := `UPDATE products SET name = $1, description = $2, sku_code = $3, price = $4 WHERE id = $5`

	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare update statement: %w", err)
	}
	defer stmt.Close()

	result, err := stmt.ExecContext(ctx, product.Name, product.Description, product.SkuCode, product.Price, product.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, repository.ErrNotFound
	}

	return product, nil
}

// FindAll retrieves every product in insertion order.
func (r *ProductRepository) FindAll(ctx context.Context) ([]*model.Product, error) {
	query := `SELECT id, name, description, sku_code, price FROM products ORDER BY created_at, id`

	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare select statement: %w", err)
	}
	defer stmt.Close()

	rows, err := stmt.QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products := []*model.Product{}
	for rows.Next() {
		var product model.Product
		err := rows.Scan(&product.ID, &product.Name, &product.Description, &product.SkuCode, &product.Price)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, &product)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return products, nil
}

// FindByID retrieves a single product by ID.
func (r *ProductRepository) FindByID(ctx context.Context, id string) (*model.Product, error) {
	query := `SELECT id, name, description, sku_code, price FROM products WHERE id = $1`

	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare select statement: %w", err)
	}
	defer stmt.Close()

	var result model.Product
	err = stmt.QueryRowContext(ctx, id).Scan(
		&result.ID, &result.Name, &result.Description, &result.SkuCode, &result.Price,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	return &result, nil
}

// Delete deletes the row of the given product.
func (r *ProductRepository) Delete(ctx context.Context, product *model.Product) error {
	query := `DELETE FROM products WHERE id = $1`

	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare delete statement: %w", err)
	}
	defer stmt.Close()

	result, err := stmt.ExecContext(ctx, product.ID)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}
