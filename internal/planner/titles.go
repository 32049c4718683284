package planner

const (
	MinMealCount     = 1
	MaxMealCount     = 4
	DefaultMealCount = 3
	PlanDays         = 7
)

var mealTitles = map[int][]string{
	1: {"Main Meal"},
	2: {"Breakfast", "Dinner"},
	3: {"Breakfast", "Lunch", "Dinner"},
	4: {"Breakfast", "Lunch", "High-Tea", "Dinner"},
}

// MealTitles returns the mandatory ordered meal titles for mealCount,
// or nil when mealCount is out of range.
func MealTitles(mealCount int) []string {
	titles, ok := mealTitles[mealCount]
	if !ok {
		return nil
	}
	out := make([]string, len(titles))
	copy(out, titles)
	return out
}
