package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/marketcore/ordersvc/internal/domain/model"
)

// OrderLineRequest is a single position of an order creation request.
type OrderLineRequest struct {
	ProductID       int64            `json:"product_id" binding:"required"`
	Quantity        int              `json:"quantity" binding:"required"`
	DiscountPercent *decimal.Decimal `json:"discount_percent,omitempty"`
}

// CreateOrderRequest is the payload of POST /api/orders.
type CreateOrderRequest struct {
	CustomerID int64              `json:"customer_id" binding:"required"`
	Lines      []OrderLineRequest `json:"lines"`
	Note       *string            `json:"note,omitempty"`
}

// ChangeStatusRequest is the payload of PATCH /api/orders/:id/status.
type ChangeStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// OrderLineResponse mirrors a stored order line with its price snapshot.
type OrderLineResponse struct {
	ProductID       int64           `json:"product_id"`
	Quantity        int             `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
}

// OrderResponse represents a full order with computed totals.
type OrderResponse struct {
	ID         int64               `json:"id"`
	CustomerID int64               `json:"customer_id"`
	Status     string              `json:"status"`
	Note       *string             `json:"note,omitempty"`
	NetTotal   decimal.Decimal     `json:"net_total"`
	TaxRate    decimal.Decimal     `json:"tax_rate"`
	GrossTotal decimal.Decimal     `json:"gross_total"`
	CreatedAt  time.Time           `json:"created_at"`
	UpdatedAt  time.Time           `json:"updated_at"`
	Lines      []OrderLineResponse `json:"lines,omitempty"`
}

// FromOrder converts a domain order into its wire representation.
func FromOrder(order *model.Order) OrderResponse {
	resp := OrderResponse{
		ID:         order.ID,
		CustomerID: order.CustomerID,
		Status:     string(order.Status),
		Note:       order.Note,
		NetTotal:   order.NetTotal,
		TaxRate:    order.TaxRate,
		GrossTotal: order.GrossTotal,
		CreatedAt:  order.CreatedAt,
		UpdatedAt:  order.UpdatedAt,
	}
	for _, line := range order.Lines {
		resp.Lines = append(resp.Lines, OrderLineResponse{
			ProductID:       line.ProductID,
			Quantity:        line.Quantity,
			UnitPrice:       line.UnitPrice,
			DiscountPercent: line.DiscountPercent,
		})
	}
	return resp
}
