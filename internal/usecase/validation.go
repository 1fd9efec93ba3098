package usecase

import (
	"github.com/shopspring/decimal"

	domainErrors "github.com/marketcore/ordersvc/internal/domain/errors"
	"github.com/marketcore/ordersvc/internal/domain/model"
)

var hundred = decimal.NewFromInt(100)

// ValidateLineRequests checks request shape before any storage interaction.
func ValidateLineRequests(lines []model.LineRequest) error {
	if len(lines) == 0 {
		return domainErrors.ErrEmptyOrder
	}
	for _, line := range lines {
		if line.ProductID <= 0 || line.Quantity <= 0 {
			return domainErrors.ErrInvalidLineItem
		}
		if line.DiscountPercent.IsNegative() || line.DiscountPercent.GreaterThan(hundred) {
			return domainErrors.ErrInvalidDiscount
		}
	}
	return nil
}
