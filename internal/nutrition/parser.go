// Package nutrition turns the free-text nutrition fields produced by the model
// into numbers and per-meal totals.
package nutrition

import (
	"regexp"
	"strconv"
	"strings"
)

// NotAvailable is the sentinel the model uses when a value cannot be estimated.
const NotAvailable = "N/A"

var (
	nonNumericPattern = regexp.MustCompile(`[^0-9.\-]+`)
	// leading number of the cleaned string, same prefix rule as a lenient float parse
	numberPrefixPattern = regexp.MustCompile(`^-?(\d+\.?\d*|\.\d+)`)
)

// ParseValue converts a nutrition field such as "165 kcal" or "0.5g" into a number.
// Empty, "N/A", unparseable and negative inputs all yield 0; it never fails.
func ParseValue(value string) float64 {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" || strings.EqualFold(trimmed, NotAvailable) {
		return 0
	}

	cleaned := nonNumericPattern.ReplaceAllString(trimmed, "")
	match := numberPrefixPattern.FindString(cleaned)
	if match == "" {
		return 0
	}

	n, err := strconv.ParseFloat(match, 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
