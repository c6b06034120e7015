package mongo

import (
	"context"
	"errors"
	"fmt"

	"github.com/iyhunko/product-service/internal/model"
	"github.com/iyhunko/product-service/internal/repository"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// productDocument is the stored shape of a product.
type productDocument struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty"`
	Name        string               `bson:"name"`
	Description string               `bson:"description"`
	SkuCode     string               `bson:"skuCode"`
	Price       primitive.Decimal128 `bson:"price"`
}

// ProductRepository implements repository.ProductRepository on a MongoDB collection.
type ProductRepository struct {
	collection *mongo.Collection
}

// NewProductRepository creates a new ProductRepository instance.
func NewProductRepository(collection *mongo.Collection) *ProductRepository {
	return &ProductRepository{collection: collection}
}

var _ repository.ProductRepository = (*ProductRepository)(nil)

// Save inserts the product when it has no ID yet, otherwise replaces the stored document.
func (r *ProductRepository) Save(ctx context.Context, product *model.Product) (*model.Product, error) {
	price, err := primitive.ParseDecimal128(product.Price.String())
	if err != nil {
		return nil, fmt.Errorf("failed to convert price: %w", err)
	}

	doc := productDocument{
		Name:        product.Name,
		Description: product.Description,
		SkuCode:     product.SkuCode,
		Price:       price,
	}

	if product.IsNew() {
		doc.ID = primitive.NewObjectID()
		if _, err := r.collection.InsertOne(ctx, doc); err != nil {
			return nil, fmt.Errorf("failed to insert product: %w", err)
		}
		product.ID = doc.ID.Hex()
		return product, nil
	}

	objID, err := primitive.ObjectIDFromHex(product.ID)
	if err != nil {
		return nil, repository.ErrNotFound
	}
	doc.ID = objID

	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": objID}, doc)
	if err != nil {
		return nil, fmt.Errorf("failed to replace product: %w", err)
	}
	if result.MatchedCount == 0 {
		return nil, repository.ErrNotFound
	}

	return product, nil
}

// FindByID retrieves a single product by ID.
func (r *ProductRepository) FindByID(ctx context.Context, id string) (*model.Product, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// no document can carry a malformed ObjectID
		return nil, repository.ErrNotFound
	}

	var doc productDocument
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	return toModel(doc)
}

// FindAll retrieves every product in the collection in natural order.
func (r *ProductRepository) FindAll(ctx context.Context) ([]*model.Product, error) {
	cursor, err := r.collection.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []productDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}

	products := make([]*model.Product, 0, len(docs))
	for _, doc := range docs {
		product, err := toModel(doc)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}

	return products, nil
}

// Delete removes the stored document of the given product.
func (r *ProductRepository) Delete(ctx context.Context, product *model.Product) error {
	objID, err := primitive.ObjectIDFromHex(product.ID)
	if err != nil {
		return repository.ErrNotFound
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}

	return nil
}

func toModel(doc productDocument) (*model.Product, error) {
	price, err := decimal.NewFromString(doc.Price.String())
	if err != nil {
		return nil, fmt.Errorf("failed to parse price of product %s: %w", doc.ID.Hex(), err)
	}

	return &model.Product{
		ID:          doc.ID.Hex(),
		Name:        doc.Name,
		Description: doc.Description,
		SkuCode:     doc.SkuCode,
		Price:       price,
	}, nil
}
