package gemini

import (
	"fmt"
	"strings"

	"github.com/BerylCAtieno/nutrigenius-agent/internal/models"
	"github.com/BerylCAtieno/nutrigenius-agent/internal/planner"
)

func buildMealPlanPrompt(req models.MealPlanRequest) string {
	return fmt.Sprintf(`You are an expert nutritionist. Generate a personalized %[1]d-day meal plan for the user.
Each day MUST include exactly %[2]d meals.

Nutritional information for each item:
For EACH food item you MUST provide itemName, quantity (e.g. "100g", "1 cup", "2 slices"), calories (e.g. "165 kcal"), protein (e.g. "31g"), carbs (e.g. "0g"), fat (e.g. "3.6g") and sugar (e.g. "0g").

Formatting nutritional values:
- calories, protein, carbs, fat and sugar MUST contain ONLY the numerical value and its unit, e.g. "150 kcal", "10g", "0.5g".
- NO other text, branding, commentary or disclaimers. "5g Sugar, (C) BrandName" and "sugar: 5g (estimated)" are INCORRECT.
- Estimate values for a typical serving when exact values are unknown.
- Use "0g" or "0 kcal" for zero or negligible values. Use "N/A" only as an absolute last resort.
- All nutritional fields are REQUIRED for every item.

Meal titles for %[2]d meals per day:
%[3]s
Use these exact titles, in this order, as the mealTitle of each day's meals.

Output structure:
A JSON object with a "days" array. Each day has a "dayTitle" (e.g. "Day 1") and a "meals" array.
Each meal has a "mealTitle" and an "items" array.

The response MUST conform to this JSON Schema:
%[7]s

Example item:
{"itemName": "Grilled Chicken Breast", "quantity": "100g", "calories": "165 kcal", "protein": "31g", "carbs": "0g", "fat": "3.6g", "sugar": "0g"}

User's details:
Dietary Restrictions: %[4]s
Health Goals: %[5]s
Preferences: %[6]s
Desired number of meals per day: %[2]d

The ENTIRE response MUST be valid JSON.`,
		planner.PlanDays,
		req.MealCount,
		mealTitleRule(req.MealCount),
		req.DietaryRestrictions,
		req.HealthGoals,
		req.Preferences,
		planner.ResponseSchemaJSON(),
	)
}

func mealTitleRule(mealCount int) string {
	titles := planner.MealTitles(mealCount)
	quoted := make([]string, len(titles))
	for i, t := range titles {
		quoted[i] = fmt.Sprintf("%q", t)
	}
	return "- " + strings.Join(quoted, ", ")
}

func buildFoodSwapPrompt(req models.FoodSwapRequest) string {
	return fmt.Sprintf(`You are an expert nutritionist. The user wants to replace one food in their current meal plan.

Food item to swap: %s
Dietary Restrictions: %s
Health Goals: %s

Current meal plan (JSON):
%s

Suggest ONE alternative food that fits the user's dietary restrictions and health goals and works in the same meal.
Respond with a JSON object containing "alternativeFood" and a short "explanation".`,
		req.FoodItem,
		req.DietaryRestrictions,
		req.HealthGoals,
		req.MealPlan,
	)
}
