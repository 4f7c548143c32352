package models

import (
	"database/sql/driver"

	"github.com/shopspring/decimal"
)

// Money is a decimal amount stored and rendered with two fractional digits.
type Money struct {
	decimal.Decimal
}

// NewMoney rounds d to cents
func NewMoney(d decimal.Decimal) Money {
	return Money{d.Round(2)}
}

// ParseMoney parses a decimal literal such as "450.00"
func ParseMoney(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, err
	}
	return NewMoney(d), nil
}

// MustMoney is ParseMoney for literals known to be valid
func MustMoney(s string) Money {
	m, err := ParseMoney(s)
	if err != nil {
		panic(err)
	}
	return m
}

func (m Money) Add(other Money) Money {
	return NewMoney(m.Decimal.Add(other.Decimal))
}

func (m Money) Equal(other Money) bool {
	return m.Decimal.Equal(other.Decimal)
}

func (m Money) String() string {
	return m.StringFixed(2)
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.StringFixed(2) + `"`), nil
}

func (m Money) Value() (driver.Value, error) {
	return m.StringFixed(2), nil
}

// SumMoney adds up amounts; the sum of nothing is zero.
func SumMoney(amounts []Money) Money {
	total := Money{}
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}
