package models

type FoodSwapRequest struct {
	MealPlan            string `json:"mealPlan"`
	FoodItem            string `json:"foodItem"`
	DietaryRestrictions string `json:"dietaryRestrictions"`
	HealthGoals         string `json:"healthGoals"`
}

type FoodSwapSuggestion struct {
	AlternativeFood string `json:"alternativeFood"`
	Explanation     string `json:"explanation"`
}
