package usecase

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	domainErrors "github.com/marketcore/ordersvc/internal/domain/errors"
	"github.com/marketcore/ordersvc/internal/domain/model"
)

func TestValidateLineRequests(t *testing.T) {
	cases := []struct {
		name  string
		lines []model.LineRequest
		want  error
	}{
		{"nil lines", nil, domainErrors.ErrEmptyOrder},
		{"empty lines", []model.LineRequest{}, domainErrors.ErrEmptyOrder},
		{"zero product id", []model.LineRequest{{ProductID: 0, Quantity: 1}}, domainErrors.ErrInvalidLineItem},
		{"zero quantity", []model.LineRequest{{ProductID: 1, Quantity: 0}}, domainErrors.ErrInvalidLineItem},
		{"negative quantity", []model.LineRequest{{ProductID: 1, Quantity: -2}}, domainErrors.ErrInvalidLineItem},
		{"discount above 100", []model.LineRequest{{ProductID: 1, Quantity: 1, DiscountPercent: decimal.NewFromInt(150)}}, domainErrors.ErrInvalidDiscount},
		{"negative discount", []model.LineRequest{{ProductID: 1, Quantity: 1, DiscountPercent: decimal.NewFromInt(-1)}}, domainErrors.ErrInvalidDiscount},
		{"valid", []model.LineRequest{{ProductID: 1, Quantity: 1}, {ProductID: 2, Quantity: 3, DiscountPercent: decimal.NewFromInt(100)}}, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateLineRequests(tc.lines)
			if tc.want == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}
