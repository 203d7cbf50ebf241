package util

import (
	"fmt"
	"time"

	"expense-api/internal/models"

	"github.com/shopspring/decimal"
)

// dateLayouts are tried in order by ParseDate.
var dateLayouts = []string{
	time.RFC3339Nano,      // 2025-12-03T00:00:00.5+08:00
	"2006-01-02T15:04:05", // 2025-12-03T00:00:00
	"2006-01-02 15:04:05", // 2025-12-03 00:00:00
	"2006-01-02",          // 2025-12-03
}

// ValidateAmount rejects negative amounts. Zero is allowed.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return fmt.Errorf("amount must not be negative, got %s", amount.String())
	}
	return nil
}

// ValidateCategory checks that category is one of the fixed set.
func ValidateCategory(category string) error {
	if category == "" {
		return fmt.Errorf("category is empty")
	}
	if !models.Category(category).Valid() {
		return fmt.Errorf("unknown category %q", category)
	}
	return nil
}

// ValidateMonth checks 1 <= month <= 12.
func ValidateMonth(month int) error {
	if month < 1 || month > 12 {
		return fmt.Errorf("month must be between 1 and 12, got %d", month)
	}
	return nil
}

// ParseDate accepts RFC 3339 timestamps, naive date-times and plain dates.
// Naive values are taken as UTC; the result is always UTC.
func ParseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("date is empty")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}

// MonthRange returns [first instant of month, first instant of next month) in UTC.
func MonthRange(year, month int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}
