package model

import (
	"github.com/shopspring/decimal"
)

// Product represents a product entity with its properties.
// ID is assigned by the storage backend on first save and never changes afterwards.
type Product struct {
	ID          string
	Name        string
	Description string
	SkuCode     string
	Price       decimal.Decimal
}

// IsNew reports whether the product has not been persisted yet.
func (p *Product) IsNew() bool {
	return p.ID == ""
}
