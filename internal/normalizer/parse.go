package normalizer

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// precisionDigits is the number of decimal digits the exchange accepts
// for both amount and price fields.
const precisionDigits = 8

// parseNumber converts a textual numeric field to a float64, rounding
// through a decimal intermediate so the value never carries more than
// the supported precision. Empty strings parse to zero.
func parseNumber(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("parse number %q: %w", s, err)
	}
	return d.Round(precisionDigits).InexactFloat64(), nil
}

// FormatNumber renders an amount or price for a request parameter,
// truncated to the supported precision with trailing zeros removed.
func FormatNumber(v float64) string {
	return decimal.NewFromFloat(v).Round(precisionDigits).String()
}

// iso8601 renders a millisecond timestamp the way normalized entities
// carry datetimes.
func iso8601(ms int64) string {
	return time.UnixMilli(ms).UTC().Format("2006-01-02T15:04:05.000Z07:00")
}
