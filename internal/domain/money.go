package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

func init() {
	// The API and the local preset list carry values as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

var smallValue = decimal.New(1, -2)

// FormatMoney renders a value with the currency symbol and code.
// Values below 0.01 (gold grams, for example) keep five decimals.
func FormatMoney(value decimal.Decimal, c *Currency) string {
	var formatted string
	if value.Abs().LessThan(smallValue) && !value.IsZero() {
		formatted = value.StringFixed(5)
	} else {
		formatted = value.Round(5).String()
	}
	if c == nil {
		return formatted
	}
	if c.Symbol != "" && c.Symbol == c.Code {
		return formatted + " " + c.Code
	}
	return strings.TrimSpace(c.Symbol + formatted + " " + c.Code)
}
