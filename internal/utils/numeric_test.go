package utils_test

import (
	"testing"

	"github.com/fxtrack/fxtrack/internal/utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParseNumericOrZero(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected decimal.Decimal
	}{
		{"plain integer", "42", decimal.NewFromInt(42)},
		{"decimal fraction", "19.99", decimal.RequireFromString("19.99")},
		{"negative", "-3.5", decimal.RequireFromString("-3.5")},
		{"surrounding whitespace", "  7.25  ", decimal.RequireFromString("7.25")},
		{"empty string", "", decimal.Zero},
		{"free-form text", "abc", decimal.Zero},
		{"mixed text and digits", "12abc", decimal.Zero},
		{"lone dot", ".", decimal.Zero},
		{"comma separator", "1,000", decimal.Zero},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := utils.ParseNumericOrZero(tc.input)
			assert.True(t, tc.expected.Equal(got), "expected %s, got %s", tc.expected, got)
		})
	}
}
