package a2a

import (
	"fmt"
	"strings"

	"github.com/BerylCAtieno/nutrigenius-agent/internal/models"
	"github.com/BerylCAtieno/nutrigenius-agent/internal/nutrition"
)

const usageText = `Send your details as "key: value" pairs separated by semicolons or new lines, for example:

dietary: vegetarian; goals: lose weight; preferences: spicy Thai food; meals: 3

Blank fields fall back to your saved profile. Use "swap: <food item>" for a food swap or "show plan" for your current plan.`

func formatPlanResponse(view models.PlanView) string {
	if len(view.Days) == 0 {
		return "No meal plan generated."
	}

	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("# %d-Day Meal Plan\n", len(view.Days)))

	for _, day := range view.Days {
		builder.WriteString(fmt.Sprintf("\n## %s\n", day.DayTitle))

		for _, meal := range day.Meals {
			builder.WriteString(fmt.Sprintf("\n### %s\n", meal.MealTitle))
			for _, item := range meal.Items {
				builder.WriteString(formatItem(item))
			}
			builder.WriteString(fmt.Sprintf("\n**Meal total:** %s\n", formatTotals(meal.Totals)))
		}

		builder.WriteString(fmt.Sprintf("\n**Day total:** %s\n", formatTotals(day.Totals)))
	}

	if len(view.Warnings) > 0 {
		builder.WriteString("\n**Notes:**\n")
		for _, w := range view.Warnings {
			builder.WriteString(fmt.Sprintf("- %s\n", w))
		}
	}

	return builder.String()
}

func formatItem(item models.MealItem) string {
	name := item.ItemName
	if name == "" {
		name = "Unnamed item"
	}
	if item.Quantity != "" && item.Quantity != nutrition.NotAvailable {
		name = fmt.Sprintf("%s (%s)", name, item.Quantity)
	}
	return fmt.Sprintf("- %s: %s, protein %s, carbs %s, fat %s, sugar %s\n",
		name,
		valueOrNA(item.Calories),
		valueOrNA(item.Protein),
		valueOrNA(item.Carbs),
		valueOrNA(item.Fat),
		valueOrNA(item.Sugar),
	)
}

func formatTotals(t models.MealTotals) string {
	d := nutrition.DisplayTotals(t)
	return fmt.Sprintf("%s | Protein %s | Carbs %s | Fat %s | Sugar %s",
		d["calories"], d["protein"], d["carbs"], d["fat"], d["sugar"])
}

func formatSwapResponse(foodItem string, s *models.FoodSwapSuggestion) string {
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("# Swap for: %s\n\n", foodItem))
	builder.WriteString(fmt.Sprintf("**Try instead:** %s\n", s.AlternativeFood))
	if s.Explanation != "" {
		builder.WriteString(fmt.Sprintf("\n%s\n", s.Explanation))
	}
	return builder.String()
}

func valueOrNA(v string) string {
	if strings.TrimSpace(v) == "" {
		return nutrition.NotAvailable
	}
	return v
}
