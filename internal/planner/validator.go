package planner

import (
	"fmt"
	"slices"
	"strings"

	"github.com/BerylCAtieno/nutrigenius-agent/internal/models"
	"github.com/BerylCAtieno/nutrigenius-agent/internal/nutrition"
)

// TitleMismatch records a day whose meal titles differ from the mandatory vocabulary.
type TitleMismatch struct {
	Day      string   `json:"day"`
	Expected []string `json:"expected"`
	Got      []string `json:"got"`
}

// FormatWarning records a nutrition field that is present but not "<number><unit>" or N/A.
type FormatWarning struct {
	Path  string `json:"path"`
	Field string `json:"field"`
	Value string `json:"value"`
}

// Report collects the non-fatal findings of Validate.
type Report struct {
	MealCount       int                    `json:"mealCount"`
	DayCount        int                    `json:"dayCount"`
	TitleMismatches []TitleMismatch        `json:"titleMismatches,omitempty"`
	IncompleteItems []*IncompleteItemError `json:"-"`
	FormatWarnings  []FormatWarning        `json:"formatWarnings,omitempty"`
}

// DayCountMismatch reports whether the plan does not span exactly PlanDays days.
func (r *Report) DayCountMismatch() bool {
	return r.DayCount != PlanDays
}

// Clean reports whether nothing was flagged.
func (r *Report) Clean() bool {
	return !r.DayCountMismatch() &&
		len(r.TitleMismatches) == 0 &&
		len(r.IncompleteItems) == 0 &&
		len(r.FormatWarnings) == 0
}

// Warnings renders every finding as a user-facing line.
func (r *Report) Warnings() []string {
	var out []string
	if r.DayCountMismatch() {
		out = append(out, fmt.Sprintf("plan has %d days, expected %d", r.DayCount, PlanDays))
	}
	for _, m := range r.TitleMismatches {
		out = append(out, fmt.Sprintf("%s: meal titles %q do not match %q", m.Day, m.Got, m.Expected))
	}
	for _, item := range r.IncompleteItems {
		out = append(out, item.Error())
	}
	for _, w := range r.FormatWarnings {
		out = append(out, fmt.Sprintf("%s.%s has unexpected format %q", w.Path, w.Field, w.Value))
	}
	return out
}

// Validate checks a gateway response against the structural contract for mealCount.
// Missing days, meals, meal titles or items are fatal and returned as errors;
// everything else lands in the Report.
func Validate(resp *models.MealPlanResponse, mealCount int) (*Report, error) {
	if resp == nil || len(resp.Days) == 0 {
		return nil, &EmptyPlanError{}
	}

	report := &Report{MealCount: mealCount, DayCount: len(resp.Days)}
	expected := MealTitles(mealCount)

	for d, day := range resp.Days {
		dayPath := fmt.Sprintf("days[%d]", d)
		if day.Meals == nil {
			return nil, NewMalformedStructureError(dayPath, "day has no meals array")
		}

		titles := make([]string, 0, len(day.Meals))
		for m, meal := range day.Meals {
			mealPath := fmt.Sprintf("%s.meals[%d]", dayPath, m)
			title := strings.TrimSpace(meal.MealTitle)
			if title == "" {
				return nil, NewMalformedStructureError(mealPath, "meal has missing or empty mealTitle")
			}
			if meal.Items == nil {
				return nil, NewMalformedStructureError(mealPath, "meal has no items array")
			}
			titles = append(titles, title)

			for i, item := range meal.Items {
				itemPath := fmt.Sprintf("%s.items[%d]", mealPath, i)
				checkItem(report, itemPath, item)
			}
		}

		if expected != nil && !slices.Equal(titles, expected) {
			report.TitleMismatches = append(report.TitleMismatches, TitleMismatch{
				Day:      dayLabel(day, d),
				Expected: expected,
				Got:      titles,
			})
		}
	}

	return report, nil
}

func checkItem(report *Report, path string, item models.MealItem) {
	var missing []string
	if strings.TrimSpace(item.ItemName) == "" {
		missing = append(missing, "itemName")
	}

	fields := []struct {
		name  string
		value string
	}{
		{"calories", item.Calories},
		{"protein", item.Protein},
		{"carbs", item.Carbs},
		{"fat", item.Fat},
		{"sugar", item.Sugar},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
			continue
		}
		if !nutrition.IsWellFormed(f.value) {
			report.FormatWarnings = append(report.FormatWarnings, FormatWarning{
				Path:  path,
				Field: f.name,
				Value: f.value,
			})
		}
	}

	if len(missing) > 0 {
		report.IncompleteItems = append(report.IncompleteItems, &IncompleteItemError{
			Path:    path,
			Missing: missing,
		})
	}
}

func dayLabel(day models.DayPlan, index int) string {
	if t := strings.TrimSpace(day.DayTitle); t != "" {
		return t
	}
	return fmt.Sprintf("Day %d", index+1)
}
