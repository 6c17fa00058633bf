package lendbook

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Cadence defines how interest compounds on a loan.
type Cadence int

const (
	// CadenceNone charges a one-time flat interest, invariant over time.
	CadenceNone Cadence = iota
	// CadenceDaily accrues simple interest per day on the declining balance.
	CadenceDaily
	// CadenceMonthly accrues simple interest per average month (30.4375 days).
	CadenceMonthly
	// CadenceYearly accrues simple interest per average year (365.25 days).
	CadenceYearly
)

// Average period lengths in days. Averages are chosen over calendar lengths
// for continuity across variable month and year lengths.
var (
	daysPerMonth = decimal.NewFromFloat(30.4375)
	daysPerYear  = decimal.NewFromFloat(365.25)
)

func (c Cadence) String() string {
	switch c {
	case CadenceNone:
		return "none"
	case CadenceDaily:
		return "daily"
	case CadenceMonthly:
		return "monthly"
	case CadenceYearly:
		return "yearly"
	default:
		return "unknown"
	}
}

// ParseCadence parses a string into a Cadence.
func ParseCadence(s string) (Cadence, error) {
	switch s {
	case "none", "flat", "":
		return CadenceNone, nil
	case "daily":
		return CadenceDaily, nil
	case "monthly":
		return CadenceMonthly, nil
	case "yearly":
		return CadenceYearly, nil
	default:
		return 0, fmt.Errorf("unknown cadence: %q", s)
	}
}

// periodDays returns the length in days of one interest period.
// CadenceNone has no period, it returns zero.
func (c Cadence) periodDays() decimal.Decimal {
	switch c {
	case CadenceDaily:
		return decimal.NewFromInt(1)
	case CadenceMonthly:
		return daysPerMonth
	case CadenceYearly:
		return daysPerYear
	default:
		return decimal.Zero
	}
}

func (c Cadence) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON is lenient: an unknown cadence degrades to CadenceNone
// rather than failing the whole decode.
func (c *Cadence) UnmarshalJSON(bytes []byte) error {
	var str string
	if err := json.Unmarshal(bytes, &str); err != nil {
		return err
	}
	parsed, err := ParseCadence(str)
	if err != nil {
		parsed = CadenceNone
	}
	*c = parsed
	return nil
}
