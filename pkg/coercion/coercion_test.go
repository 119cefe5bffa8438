package coercion

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNumber(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected *float64
	}{
		{name: "plain integer", input: "1000", expected: floatPtr(1000)},
		{name: "decimal", input: "12.345", expected: floatPtr(12.345)},
		{name: "thousands separators", input: "1,234,567.89", expected: floatPtr(1234567.89)},
		{name: "surrounding whitespace", input: "  42.5  ", expected: floatPtr(42.5)},
		{name: "internal whitespace", input: "1 234", expected: floatPtr(1234)},
		{name: "negative", input: "-17.25", expected: floatPtr(-17.25)},
		{name: "empty", input: "", expected: nil},
		{name: "whitespace only", input: "   ", expected: nil},
		{name: "free text", input: "TBD", expected: nil},
		{name: "placeholder dash", input: "-", expected: nil},
		{name: "mixed text and digits", input: "approx 500", expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ParseNumber(tt.input)
			if tt.expected == nil {
				assert.Nil(t, result)
				return
			}
			require.NotNil(t, result)
			assert.InDelta(t, *tt.expected, *result, 0.0001)
		})
	}
}

func TestParseInteger(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected *int
	}{
		{name: "plain", input: "42", expected: intPtr(42)},
		{name: "strips unit suffix", input: "42 MT", expected: intPtr(42)},
		{name: "strips currency prefix", input: "Rp 1500", expected: intPtr(1500)},
		{name: "negative", input: "-7", expected: intPtr(-7)},
		{name: "empty", input: "", expected: nil},
		{name: "no digits at all", input: "pending", expected: nil},
		{name: "lone minus", input: "-", expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ParseInteger(tt.input)
			if tt.expected == nil {
				assert.Nil(t, result)
				return
			}
			require.NotNil(t, result)
			assert.Equal(t, *tt.expected, *result)
		})
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected *time.Time
	}{
		{name: "m/d/yy two digit year", input: "3/5/24", expected: datePtr(2024, 3, 5)},
		{name: "m/d/yyyy", input: "12/31/2023", expected: datePtr(2023, 12, 31)},
		{name: "day first fallback", input: "25/12/2024", expected: datePtr(2024, 12, 25)},
		{name: "iso", input: "2024-07-15", expected: datePtr(2024, 7, 15)},
		{name: "d-mon-yy", input: "5-Aug-24", expected: datePtr(2024, 8, 5)},
		{name: "d-mon-yyyy", input: "5-Aug-2024", expected: datePtr(2024, 8, 5)},
		{name: "whitespace around value", input: " 2024-01-02 ", expected: datePtr(2024, 1, 2)},
		{name: "datetime keeps date part", input: "2024-07-15 08:30:00", expected: datePtr(2024, 7, 15)},
		{name: "empty", input: "", expected: nil},
		{name: "free text", input: "awaiting confirmation", expected: nil},
		{name: "impossible day", input: "2/30/2024", expected: nil},
		{name: "impossible both orders", input: "13/32/2024", expected: nil},
		{name: "zero placeholder", input: "0", expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ParseDate(tt.input)
			if tt.expected == nil {
				assert.Nil(t, result)
				return
			}
			require.NotNil(t, result)
			assert.True(t, tt.expected.Equal(*result), "expected %s got %s", tt.expected, result)
		})
	}
}

func TestParseString(t *testing.T) {
	assert.Nil(t, ParseString(""))
	assert.Nil(t, ParseString("   "))

	result := ParseString("  MV Alpha  ")
	if assert.NotNil(t, result) {
		assert.Equal(t, "MV Alpha", *result)
	}
}

func floatPtr(f float64) *float64 { return &f }

func intPtr(i int) *int { return &i }

func datePtr(year, month, day int) *time.Time {
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return &d
}
