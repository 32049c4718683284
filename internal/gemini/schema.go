package gemini

import "github.com/google/generative-ai-go/genai"

func nutritionField(example string) *genai.Schema {
	return &genai.Schema{
		Type:        genai.TypeString,
		Description: "Estimated value with unit only, e.g. '" + example + "'. Use 'N/A' only as a last resort.",
	}
}

// mealPlanSchema mirrors models.MealPlanResponse.
func mealPlanSchema() *genai.Schema {
	item := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"itemName": {Type: genai.TypeString, Description: "The name of the food item."},
			"quantity": {Type: genai.TypeString, Description: "Estimated quantity, e.g. '100g', '1 cup', '2 slices'."},
			"calories": nutritionField("150 kcal"),
			"protein":  nutritionField("10g"),
			"carbs":    nutritionField("20g"),
			"fat":      nutritionField("5g"),
			"sugar":    nutritionField("2g"),
		},
		Required: []string{"itemName", "calories", "protein", "carbs", "fat", "sugar"},
	}

	meal := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"mealTitle": {Type: genai.TypeString, Description: "The title of the meal."},
			"items":     {Type: genai.TypeArray, Items: item},
		},
		Required: []string{"mealTitle", "items"},
	}

	day := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"dayTitle": {Type: genai.TypeString, Description: "The title of the day, e.g. Day 1."},
			"meals":    {Type: genai.TypeArray, Items: meal},
		},
		Required: []string{"dayTitle", "meals"},
	}

	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"days": {Type: genai.TypeArray, Items: day, Description: "A 7-day meal plan."},
		},
		Required: []string{"days"},
	}
}

func foodSwapSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"alternativeFood": {Type: genai.TypeString, Description: "The suggested replacement food."},
			"explanation":     {Type: genai.TypeString, Description: "Why the alternative suits the user's restrictions and goals."},
		},
		Required: []string{"alternativeFood", "explanation"},
	}
}
