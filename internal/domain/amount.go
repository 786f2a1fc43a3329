package domain

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Amount is an exact signed decimal quantity of money. It encodes as a bare
// JSON number so persisted and exported documents keep numeric fields numeric.
type Amount struct {
	d decimal.Decimal
}

// ZeroAmount is the additive identity.
var ZeroAmount = Amount{}

// NewAmount wraps a decimal value.
func NewAmount(d decimal.Decimal) Amount { return Amount{d: d} }

// AmountFromInt returns an Amount for a whole number of currency units.
func AmountFromInt(v int64) Amount { return Amount{d: decimal.NewFromInt(v)} }

// ParseAmount parses a decimal string such as "12.50" or "-3".
func ParseAmount(s string) (Amount, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, fmt.Errorf("%w: invalid amount %q", ErrValidation, s)
	}
	return Amount{d: d}, nil
}

// MustAmount is like ParseAmount but panics on error.
func MustAmount(s string) Amount {
	a, err := ParseAmount(s)
	if err != nil {
		panic(err.Error())
	}
	return a
}

// Decimal returns the underlying decimal value.
func (a Amount) Decimal() decimal.Decimal { return a.d }

func (a Amount) Add(b Amount) Amount { return Amount{d: a.d.Add(b.d)} }
func (a Amount) Neg() Amount         { return Amount{d: a.d.Neg()} }
func (a Amount) Abs() Amount         { return Amount{d: a.d.Abs()} }
func (a Amount) Sign() int           { return a.d.Sign() }
func (a Amount) IsZero() bool        { return a.d.IsZero() }
func (a Amount) IsNegative() bool    { return a.d.IsNegative() }
func (a Amount) Equal(b Amount) bool { return a.d.Equal(b.d) }
func (a Amount) String() string      { return a.d.String() }

// Float64 returns the nearest float64, for display and charting only.
func (a Amount) Float64() float64 { return a.d.InexactFloat64() }

func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.d.String()), nil
}

// UnmarshalJSON accepts a JSON number or a quoted decimal string.
func (a *Amount) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return fmt.Errorf("decoding amount: %w", err)
	}
	a.d = d
	return nil
}

var (
	_ json.Marshaler   = Amount{}
	_ json.Unmarshaler = (*Amount)(nil)
)
