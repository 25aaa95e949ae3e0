// Package moneypkg provides common money amount functionality for apps.
package moneypkg

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// ErrMalformedAmount indicates that the amount is not a valid money value.
var ErrMalformedAmount = errors.New("malformed money amount")

// Parse converts an amount string into a decimal with at most 2 fractional digits.
func Parse(amount string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return decimal.Decimal{}, ErrMalformedAmount
	}

	if d.Exponent() < -2 {
		return decimal.Decimal{}, ErrMalformedAmount
	}

	return d, nil
}

// ValidMoney validates that a request field holds a positive money amount.
var ValidMoney validator.Func = func(fieldLevel validator.FieldLevel) bool {
	amount, ok := fieldLevel.Field().Interface().(string)
	if !ok {
		return false
	}

	d, err := Parse(amount)
	if err != nil {
		return false
	}

	return d.IsPositive()
}
