package lendbook

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Percent is an interest rate, in percent of the principal (5 means 5%).
type Percent float64

func (p Percent) Equal(q Percent) bool {
	// it has to be compared with some precision
	const precision = 0.0001
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", p)
}

// fraction returns the rate as a decimal fraction (5% -> 0.05).
func (p Percent) fraction() decimal.Decimal {
	return decimal.NewFromFloat(float64(p)).Div(decimal.NewFromInt(100))
}
