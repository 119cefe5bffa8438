// Package coercion parses the heterogeneous value representations found in
// exported spreadsheets into typed values. Every parser is total: input that
// cannot be understood yields nil, never an error, because logistics exports
// routinely carry blanks, placeholders, and free-text in numeric columns.
package coercion

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	thousandsPattern = regexp.MustCompile(`[,\s]`)
	integerPattern   = regexp.MustCompile(`[^0-9-]`)
	slashDatePattern = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{2,4})$`)
)

// ParseNumber parses a decimal number, tolerating thousands separators and
// surrounding whitespace. Returns nil for anything non-numeric.
func ParseNumber(raw string) *float64 {
	cleaned := thousandsPattern.ReplaceAllString(strings.TrimSpace(raw), "")
	if cleaned == "" {
		return nil
	}
	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return nil
	}
	return &value
}

// ParseInteger parses an integer, stripping every non-digit character except
// a minus sign first. Returns nil when nothing parseable remains.
func ParseInteger(raw string) *int {
	cleaned := integerPattern.ReplaceAllString(strings.TrimSpace(raw), "")
	if cleaned == "" || cleaned == "-" {
		return nil
	}
	value, err := strconv.Atoi(cleaned)
	if err != nil {
		return nil
	}
	return &value
}

// dateLayouts tried after the explicit M/D/YY(YY) pattern, in order
var dateLayouts = []string{
	"2006-01-02",
	"2-Jan-06",
	"2-Jan-2006",
	"2-January-06",
	"2-January-2006",
	"02/01/2006",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02 15:04:05",
}

// ParseDate parses a calendar date. It tries an M/D/YY(YY) pattern first
// (two-digit years read as 2000+YY), then falls back through the layouts the
// source templates have historically used. Returns nil for anything
// unrecognized; date errors are silent rather than fatal.
func ParseDate(raw string) *time.Time {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}

	if match := slashDatePattern.FindStringSubmatch(trimmed); match != nil {
		month, _ := strconv.Atoi(match[1])
		day, _ := strconv.Atoi(match[2])
		year, _ := strconv.Atoi(match[3])
		if year < 100 {
			year += 2000
		}
		if month >= 1 && month <= 12 && day >= 1 && day <= daysIn(month, year) {
			value := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
			return &value
		}
		// Day-first exports produce values like 25/12/2024 that fail the
		// month check above; retry with the fields swapped.
		if day >= 1 && day <= 12 && month >= 1 && month <= daysIn(day, year) {
			value := time.Date(year, time.Month(day), month, 0, 0, 0, 0, time.UTC)
			return &value
		}
		return nil
	}

	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			value := time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC)
			return &value
		}
	}
	return nil
}

func daysIn(month, year int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// ParseString trims a cell and returns nil when nothing remains
func ParseString(raw string) *string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
