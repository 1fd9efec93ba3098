package dto

import (
	"github.com/shopspring/decimal"

	"github.com/marketcore/ordersvc/internal/domain/repository"
)

// SalesReportRow aggregates revenue figures for one order status.
type SalesReportRow struct {
	Status     string          `json:"status"`
	Orders     int64           `json:"orders"`
	Customers  int64           `json:"customers"`
	Items      int64           `json:"items"`
	MinGross   decimal.Decimal `json:"min_gross"`
	MaxGross   decimal.Decimal `json:"max_gross"`
	TotalGross decimal.Decimal `json:"total_gross"`
}

// FromSalesReportRow converts an aggregation row into its wire representation.
func FromSalesReportRow(row repository.SalesReportRow) SalesReportRow {
	return SalesReportRow{
		Status:     string(row.Status),
		Orders:     row.Orders,
		Customers:  row.Customers,
		Items:      row.Items,
		MinGross:   row.MinGross,
		MaxGross:   row.MaxGross,
		TotalGross: row.TotalGross,
	}
}
