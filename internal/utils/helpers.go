package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

// RoundingMode decides how fractional colones are dropped before display
type RoundingMode string

const (
	// Truncate drops the fraction toward zero, the same as an integer conversion
	Truncate RoundingMode = "truncate"
	// Round rounds half away from zero
	Round RoundingMode = "round"
)

// CurrencyFormat is the explicit formatting policy for monetary columns
type CurrencyFormat struct {
	Symbol    string       `yaml:"symbol" validate:"required"`
	Separator string       `yaml:"separator"`
	Rounding  RoundingMode `yaml:"rounding" validate:"omitempty,oneof=truncate round"`
}

// DefaultCurrency formats Costa Rican colones as "₡1,234,567"
var DefaultCurrency = CurrencyFormat{
	Symbol:    "₡",
	Separator: ",",
	Rounding:  Truncate,
}

// FormatCurrency formats value with DefaultCurrency
func FormatCurrency(value float64) string {
	return DefaultCurrency.Format(value)
}

// Format renders value as an integer amount with the symbol prefix and thousands separators
func (f CurrencyFormat) Format(value float64) string {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return f.Symbol + strconv.FormatFloat(value, 'f', -1, 64)
	}
	return f.Symbol + f.group(f.integer(value))
}

func (f CurrencyFormat) integer(value float64) int64 {
	if f.Rounding == Round {
		return int64(math.Round(value))
	}
	return int64(value)
}

func (f CurrencyFormat) group(n int64) string {
	grouped := humanize.Comma(n)
	if f.Separator == "," {
		return grouped
	}
	return strings.ReplaceAll(grouped, ",", f.Separator)
}

// ParseAmount extracts a numeric value from a formatted amount such as
// "₡1,234,567", "$350K" or "1 200 000". Comma and space separators and currency symbols are ignored.
func ParseAmount(amount string) (float64, error) {
	s := strings.TrimSpace(amount)
	for _, sym := range []string{"₡", "$", "CRC", "crc"} {
		s = strings.ReplaceAll(s, sym, "")
	}
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, " ", "")

	multiplier := 1.0
	switch {
	case strings.HasSuffix(strings.ToUpper(s), "K"):
		multiplier = 1_000
		s = s[:len(s)-1]
	case strings.HasSuffix(strings.ToUpper(s), "M"):
		multiplier = 1_000_000
		s = s[:len(s)-1]
	}

	val, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parse amount %q: %w", amount, err)
	}
	return val * multiplier, nil
}

// TruncateString truncates a string to the specified rune length and adds "..." if necessary
func TruncateString(s string, length int) string {
	runes := []rune(s)
	if len(runes) <= length {
		return s
	}
	if length <= 3 {
		return string(runes[:length])
	}
	return string(runes[:length-3]) + "..."
}
