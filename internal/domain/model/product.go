package model

import "github.com/shopspring/decimal"

// Product is a catalog item. The engine reads everything and mutates only
// OnHand, always through the inventory reservation operations.
type Product struct {
	ID          int64
	Name        string
	Description string
	NetPrice    decimal.Decimal
	TaxRate     decimal.Decimal
	OnHand      int
	Active      bool
}
