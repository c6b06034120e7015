package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/iyhunko/product-service/internal/metrics"
	"github.com/iyhunko/product-service/internal/model"
	"github.com/iyhunko/product-service/internal/repository"
	"github.com/iyhunko/product-service/internal/sqs"
	"github.com/shopspring/decimal"
)

// EventPublisher sends product events to downstream consumers.
type EventPublisher interface {
	PublishProductMessage(ctx context.Context, msg sqs.ProductMessage) error
}

// CreateProductParams holds the fields of a product to create.
type CreateProductParams struct {
	Name        string
	Description string
	SkuCode     string
	Price       decimal.Decimal
}

// UpdateProductParams holds the fields that overwrite an existing product.
type UpdateProductParams struct {
	Name        string
	Description string
	SkuCode     string
	Price       decimal.Decimal
}

type ProductService struct {
	repo      repository.ProductRepository
	publisher EventPublisher
	logger    *slog.Logger
}

// NewProductService creates a ProductService. publisher may be nil, in which case no events are sent.
func NewProductService(repo repository.ProductRepository, publisher EventPublisher, logger *slog.Logger) *ProductService {
	return &ProductService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
	}
}

func (ps *ProductService) CreateProduct(ctx context.Context, params CreateProductParams) (*model.Product, error) {
	product := &model.Product{
		Name:        params.Name,
		Description: params.Description,
		SkuCode:     params.SkuCode,
		Price:       params.Price,
	}

	created, err := ps.repo.Save(ctx, product)
	if err != nil {
		return nil, err
	}

	ps.logger.InfoContext(ctx, "product created", slog.String("product_id", created.ID))
	metrics.ProductsCreated.Inc()
	ps.publish(ctx, sqs.ActionCreated, created)

	return created, nil
}

// ListProducts returns every stored product. Storage failures are reported as *DatabaseError.
func (ps *ProductService) ListProducts(ctx context.Context) ([]*model.Product, error) {
	ps.logger.InfoContext(ctx, "listing products")

	products, err := ps.repo.FindAll(ctx)
	if err != nil {
		ps.logger.ErrorContext(ctx, "failed to retrieve products", slog.Any("err", err))
		metrics.DatabaseFailures.WithLabelValues("list").Inc()
		return nil, &DatabaseError{Err: err}
	}

	if len(products) == 0 {
		ps.logger.InfoContext(ctx, "no products found")
		return []*model.Product{}, nil
	}

	ps.logger.InfoContext(ctx, "products listed", slog.Int("count", len(products)))
	return products, nil
}

// UpdateProduct overwrites name, description, SKU code and price of the product with the given ID.
// It returns ErrProductNotFound when no such product exists.
func (ps *ProductService) UpdateProduct(ctx context.Context, id string, params UpdateProductParams) (*model.Product, error) {
	product, err := ps.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	product.Name = params.Name
	product.Description = params.Description
	product.SkuCode = params.SkuCode
	product.Price = params.Price

	updated, err := ps.repo.Save(ctx, product)
	if err != nil {
		// deleted between lookup and save
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	ps.logger.InfoContext(ctx, "product updated", slog.String("product_id", updated.ID))
	metrics.ProductsUpdated.Inc()
	ps.publish(ctx, sqs.ActionUpdated, updated)

	return updated, nil
}

// DeleteProduct removes the product with the given ID and reports whether anything was deleted.
// A missing product yields false without an error.
func (ps *ProductService) DeleteProduct(ctx context.Context, id string) (bool, error) {
	product, err := ps.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	if err := ps.repo.Delete(ctx, product); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	ps.logger.InfoContext(ctx, "product deleted", slog.String("product_id", product.ID))
	metrics.ProductsDeleted.Inc()
	ps.publish(ctx, sqs.ActionDeleted, product)

	return true, nil
}

func (ps *ProductService) publish(ctx context.Context, action string, product *model.Product) {
	if ps.publisher == nil {
		return
	}
	if err := ps.publisher.PublishProductMessage(ctx, sqs.NewProductMessage(action, product)); err != nil {
		// log error but don't fail the request
		ps.logger.ErrorContext(ctx, "failed to send SQS message",
			slog.Any("err", err),
			slog.String("action", action),
			slog.String("product_id", product.ID),
		)
	}
}
