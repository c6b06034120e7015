package model

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

// MaxPriceDigits is the number of decimal digits a price may span when written out in full.
// It matches the coefficient size of a BSON Decimal128.
const MaxPriceDigits = 34

// coefficients longer than this can never fit, even after dropping trailing zeros
const maxCoefficientBits = 512

// ErrPriceOutOfRange is returned when a price cannot be stored without loss.
var ErrPriceOutOfRange = errors.New("price out of range")

// Price is the wire form of a product price: a JSON number limited to MaxPriceDigits digits.
type Price struct {
	decimal.Decimal
}

// NewPrice wraps d for encoding.
func NewPrice(d decimal.Decimal) Price {
	return Price{Decimal: d}
}

// MarshalJSON writes the price as a JSON number.
func (p Price) MarshalJSON() ([]byte, error) {
	return []byte(p.Decimal.String()), nil
}

// UnmarshalJSON accepts a JSON number or string and rejects values outside the storable range.
func (p *Price) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return err
	}
	if err := ValidatePrice(d); err != nil {
		return err
	}
	p.Decimal = d
	return nil
}

// ValidatePrice reports whether d spans at most MaxPriceDigits digits once trailing zeros are dropped.
func ValidatePrice(d decimal.Decimal) error {
	coef := new(big.Int).Abs(d.Coefficient())
	if coef.Sign() == 0 {
		return nil
	}
	if coef.BitLen() > maxCoefficientBits {
		return fmt.Errorf("%w: more than %d digits", ErrPriceOutOfRange, MaxPriceDigits)
	}

	exp := int64(d.Exponent())
	ten := big.NewInt(10)
	q, r := new(big.Int), new(big.Int)
	for {
		q.QuoRem(coef, ten, r)
		if r.Sign() != 0 {
			break
		}
		coef.Set(q)
		exp++
	}

	n := int64(len(coef.String()))
	digits := n + exp
	if exp < 0 {
		digits = max(n, -exp)
	}
	if digits > MaxPriceDigits {
		return fmt.Errorf("%w: more than %d digits", ErrPriceOutOfRange, MaxPriceDigits)
	}
	return nil
}
