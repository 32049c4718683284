package nutrition

import (
	"regexp"
	"strings"

	"github.com/BerylCAtieno/nutrigenius-agent/internal/models"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// <number><optional space><unit>, e.g. "165 kcal", "10g", "0.5g", "40µg"
var wellFormedPattern = regexp.MustCompile(`^-?\d+(\.\d+)? ?\p{L}+$`)

var displayPrinter = message.NewPrinter(language.English)

// IsWellFormed reports whether a nutrition field follows the requested
// "<number><unit>" format or is the N/A sentinel.
func IsWellFormed(value string) bool {
	trimmed := strings.TrimSpace(value)
	if strings.EqualFold(trimmed, NotAvailable) {
		return true
	}
	return wellFormedPattern.MatchString(trimmed)
}

// FormatAmount renders a total with digit grouping and at most one decimal place.
func FormatAmount(v float64) string {
	return displayPrinter.Sprint(number.Decimal(v, number.MaxFractionDigits(1)))
}

// DisplayTotals renders meal totals as "<amount> <unit>" strings keyed by nutrient.
func DisplayTotals(t models.MealTotals) map[string]string {
	return map[string]string{
		"calories": FormatAmount(t.TotalCalories) + " kcal",
		"protein":  FormatAmount(t.TotalProtein) + " g",
		"carbs":    FormatAmount(t.TotalCarbs) + " g",
		"fat":      FormatAmount(t.TotalFat) + " g",
		"sugar":    FormatAmount(t.TotalSugar) + " g",
	}
}
