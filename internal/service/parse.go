package service

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/sakif/event-booking/internal/apperror"
)

// dateLayouts are tried in order. Layouts without a zone are read as UTC.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	time.DateOnly,
}

// ParsePrice converts a numeric string ("49.99", "10", "1e2") into a finite,
// non-negative amount.
func ParsePrice(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, apperror.ValidationFailed("price", "price is required")
	}

	price, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(price) || math.IsInf(price, 0) {
		return 0, apperror.ValidationFailed("price", "price must be a number")
	}
	if price < 0 {
		return 0, apperror.ValidationFailed("price", "price must not be negative")
	}
	if price == 0 {
		// "-0" parses to negative zero; store it as plain zero.
		price = 0
	}
	return price, nil
}

// ParseDate accepts an ISO-8601 date or timestamp and returns it in UTC.
func ParseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, apperror.ValidationFailed("date", "date is required")
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, apperror.ValidationFailed("date",
		"date must be an ISO-8601 date (2024-05-01) or timestamp (2024-05-01T18:00:00Z)")
}
