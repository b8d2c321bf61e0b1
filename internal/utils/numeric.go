package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseNumericOrZero converts numeric text to a decimal, treating anything
// malformed or empty as zero. Historical record blobs contain free-form
// amount text, so this leniency is load-bearing: changing it would make old
// stores unreadable. Keep every numeric coercion in the app on this one path.
func ParseNumericOrZero(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero
	}
	return d
}
