package graph

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

const (
	// decimalMaxLen bounds the textual input before it is parsed.
	decimalMaxLen = 64
	// decimalMaxPrecision is the number of integer digits a value may have.
	decimalMaxPrecision = 38
	// decimalMaxScale is the number of fractional digits a value may have.
	decimalMaxScale = 18
)

var errDecimalOutOfRange = errors.New("decimal out of range")

// Decimal is the Decimal scalar. It accepts numbers and numeric strings and
// is written as a JSON number without loss of precision. Values with more
// than decimalMaxPrecision integer digits or decimalMaxScale fractional
// digits are rejected.
type Decimal struct {
	decimal.Decimal
}

func (Decimal) ImplementsGraphQLType(name string) bool {
	return name == "Decimal"
}

func (d *Decimal) UnmarshalGraphQL(input any) error {
	var parsed decimal.Decimal
	switch v := input.(type) {
	case string:
		if len(v) > decimalMaxLen {
			return fmt.Errorf("invalid decimal: %w", errDecimalOutOfRange)
		}
		var err error
		parsed, err = decimal.NewFromString(v)
		if err != nil {
			return fmt.Errorf("invalid decimal %q: %w", v, err)
		}
	case int32:
		parsed = decimal.NewFromInt32(v)
	case int64:
		parsed = decimal.NewFromInt(v)
	case int:
		parsed = decimal.NewFromInt(int64(v))
	case float64:
		parsed = decimal.NewFromFloat(v)
	default:
		return fmt.Errorf("wrong type for Decimal: %T", input)
	}

	if err := checkDecimalRange(parsed); err != nil {
		return fmt.Errorf("invalid decimal: %w", err)
	}
	if parsed.IsZero() {
		// a zero coefficient may still carry a huge exponent
		parsed = decimal.Zero
	}
	d.Decimal = parsed
	return nil
}

func (d Decimal) MarshalJSON() ([]byte, error) {
	return []byte(d.Decimal.String()), nil
}

// checkDecimalRange works on the coefficient and exponent only, so it never
// expands a large exponent into digits.
func checkDecimalRange(d decimal.Decimal) error {
	coef := d.Coefficient()
	// 2^128 has 39 digits, which already exceeds the precision.
	if coef.BitLen() > 128 {
		return errDecimalOutOfRange
	}
	if coef.Sign() == 0 {
		return nil
	}

	exp := int64(d.Exponent())
	if exp < -decimalMaxScale {
		return errDecimalOutOfRange
	}

	digits := int64(len(coef.Text(10)))
	if coef.Sign() < 0 {
		digits--
	}
	if digits+exp > decimalMaxPrecision {
		return errDecimalOutOfRange
	}
	return nil
}
