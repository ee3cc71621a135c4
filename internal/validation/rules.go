// Package validation holds the field rules shared by the mutation workflows.
// Every rule returns nil or one of the apperr business errors.
package validation

import (
	"github.com/shopspring/decimal"

	"github.com/tuanvumaihuynh/crm-graphql/internal/apperr"
	"github.com/tuanvumaihuynh/crm-graphql/pkg/validator"
)

// Rules checks customer and product fields.
type Rules struct {
	v validator.Validator
}

func New(v validator.Validator) *Rules {
	return &Rules{v: v}
}

// ValidateEmail fails with InvalidEmailFormatErr when s is not an email address.
func (r *Rules) ValidateEmail(s string) error {
	if err := r.v.Var(s, "required,email"); err != nil {
		return apperr.InvalidEmailFormatErr.WrapParent(err)
	}
	return nil
}

// ValidatePhone accepts an empty phone. Anything else must be "+" and
// 10-15 digits, or DDD-DDD-DDDD.
func (r *Rules) ValidatePhone(s string) error {
	if s == "" {
		return nil
	}
	if err := r.v.Var(s, "phone"); err != nil {
		return apperr.InvalidPhoneFormatErr.WrapParent(err)
	}
	return nil
}

// ValidatePrice fails when the price is absent or not strictly positive.
func ValidatePrice(p *decimal.Decimal) error {
	if p == nil || !p.IsPositive() {
		return apperr.PriceNotPositiveErr
	}
	return nil
}

// ValidateStock fails when a stock is supplied and negative.
func ValidateStock(n *int) error {
	if n != nil && *n < 0 {
		return apperr.StockNegativeErr
	}
	return nil
}
