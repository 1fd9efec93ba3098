package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/marketcore/ordersvc/internal/domain/model"
)

// ProductResponse describes a catalog product.
type ProductResponse struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	NetPrice    decimal.Decimal `json:"net_price"`
	TaxRate     decimal.Decimal `json:"tax_rate"`
	OnHand      int             `json:"on_hand"`
	Active      bool            `json:"active"`
}

// FromProduct converts a domain product into its wire representation.
func FromProduct(p *model.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		NetPrice:    p.NetPrice,
		TaxRate:     p.TaxRate,
		OnHand:      p.OnHand,
		Active:      p.Active,
	}
}

// CustomerResponse describes a registered customer.
type CustomerResponse struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Active       bool      `json:"active"`
	RegisteredAt time.Time `json:"registered_at"`
}

// FromCustomer converts a domain customer into its wire representation.
func FromCustomer(c *model.Customer) CustomerResponse {
	return CustomerResponse{
		ID:           c.ID,
		Name:         c.Name,
		Email:        c.Email,
		Active:       c.Active,
		RegisteredAt: c.RegisteredAt,
	}
}
