package currency

import (
	"database/sql/driver"
	"errors"
)

// Currency is the label attached to every bill total.
type Currency string

const (
	CurrencyVND Currency = "VND"
)

var ErrInvalidCurrency = errors.New("invalid currency")

func (c Currency) String() string {
	return string(c)
}

func (c Currency) Value() (driver.Value, error) {
	return c.String(), nil
}

func ParseCurrency(s string) (Currency, error) {
	switch s {
	case CurrencyVND.String():
		return CurrencyVND, nil
	default:
		return "", ErrInvalidCurrency
	}
}
