package sqs

import "github.com/iyhunko/product-service/internal/model"

// Product event actions.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// ProductMessage represents a message about a product event.
type ProductMessage struct {
	Action    string      `json:"action"`
	ProductID string      `json:"product_id"`
	Name      string      `json:"name"`
	SkuCode   string      `json:"sku_code"`
	Price     model.Price `json:"price"`
}

// NewProductMessage builds the event body for the given action on a product.
func NewProductMessage(action string, product *model.Product) ProductMessage {
	return ProductMessage{
		Action:    action,
		ProductID: product.ID,
		Name:      product.Name,
		SkuCode:   product.SkuCode,
		Price:     model.NewPrice(product.Price),
	}
}
