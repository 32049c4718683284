package nutrition

import "github.com/BerylCAtieno/nutrigenius-agent/internal/models"

// MealTotals sums the parsed nutrition fields of every item. An empty slice yields zero totals.
func MealTotals(items []models.MealItem) models.MealTotals {
	var totals models.MealTotals
	for _, item := range items {
		totals = totals.Add(ItemTotals(item))
	}
	return totals
}

// ItemTotals is the contribution of a single item.
func ItemTotals(item models.MealItem) models.MealTotals {
	return models.MealTotals{
		TotalCalories: ParseValue(item.Calories),
		TotalProtein:  ParseValue(item.Protein),
		TotalCarbs:    ParseValue(item.Carbs),
		TotalFat:      ParseValue(item.Fat),
		TotalSugar:    ParseValue(item.Sugar),
	}
}

// DayTotals sums MealTotals across all meals of a day.
func DayTotals(meals []models.Meal) models.MealTotals {
	var totals models.MealTotals
	for _, meal := range meals {
		totals = totals.Add(MealTotals(meal.Items))
	}
	return totals
}
