package gemini

import (
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BerylCAtieno/nutrigenius-agent/internal/nutrition"
	"github.com/BerylCAtieno/nutrigenius-agent/internal/planner"
)

const planJSON = `{
  "days": [
    {
      "dayTitle": "Day 1",
      "meals": [
        {
          "mealTitle": "Main Meal",
          "items": [
            {"itemName": "Lentil soup", "quantity": "1 bowl", "calories": "230 kcal", "protein": "18g", "carbs": "40g", "fat": "1g", "sugar": "4g"}
          ]
        }
      ]
    }
  ]
}`

func TestDecodeMealPlan(t *testing.T) {
	resp, err := decodeMealPlan("```json\n" + planJSON + "\n```")
	require.NoError(t, err)
	require.Len(t, resp.Days, 1)
	assert.Equal(t, "Main Meal", resp.Days[0].Meals[0].MealTitle)
	assert.Equal(t, "230 kcal", resp.Days[0].Meals[0].Items[0].Calories)
}

func TestDecodeMealPlanBareArray(t *testing.T) {
	resp, err := decodeMealPlan(`[{"dayTitle": "Day 1", "meals": []}]`)
	require.NoError(t, err)
	require.Len(t, resp.Days, 1)
	assert.NotNil(t, resp.Days[0].Meals)
}

func TestDecodeMealPlanNumericItemFields(t *testing.T) {
	text := `{"days": [{"dayTitle": "Day 1", "meals": [{"mealTitle": "Main Meal", "items": [
		{"itemName": "Lentil soup", "quantity": "1 bowl", "calories": 230, "protein": "18g", "carbs": "40g", "fat": null, "sugar": "4g"},
		{"itemName": "Flatbread", "quantity": 2, "calories": "120 kcal", "protein": "4g", "carbs": "22g", "fat": "2g", "sugar": "1g"}
	]}]}]}`

	resp, err := decodeMealPlan(text)
	require.NoError(t, err)

	items := resp.Days[0].Meals[0].Items
	require.Len(t, items, 2)
	assert.Equal(t, "230", items[0].Calories)
	assert.Empty(t, items[0].Fat)
	assert.Equal(t, "2", items[1].Quantity)

	totals := nutrition.MealTotals(items)
	assert.Equal(t, 350.0, totals.TotalCalories)
	assert.Equal(t, 2.0, totals.TotalFat)

	report, err := planner.Validate(resp, 1)
	require.NoError(t, err)
	require.Len(t, report.FormatWarnings, 1)
	assert.Equal(t, "calories", report.FormatWarnings[0].Field)
	require.Len(t, report.IncompleteItems, 1)
	assert.Equal(t, []string{"fat"}, report.IncompleteItems[0].Missing)
}

func TestDecodeMealPlanMissingContainers(t *testing.T) {
	resp, err := decodeMealPlan(`{"days": [{"dayTitle": "Day 1"}]}`)
	require.NoError(t, err)

	_, err = planner.Validate(resp, 1)
	assert.True(t, planner.IsFatalStructure(err))
}

func TestDecodeMealPlanMalformed(t *testing.T) {
	for _, text := range []string{
		"no json here",
		`{"days": "seven"}`,
		`{"days": [{"meals": [{"mealTitle": 3}]}]}`,
		`{"days": [{"meals": [{"mealTitle": "Lunch", "items": "soup"}]}]}`,
		`{"days": [{"meals": [{"mealTitle": "Lunch", "items": ["soup"]}]}]}`,
	} {
		_, err := decodeMealPlan(text)
		require.Error(t, err, text)
		assert.True(t, planner.IsFatalStructure(err), text)
	}
}

func TestDecodeFoodSwap(t *testing.T) {
	s, err := decodeFoodSwap(`{"alternativeFood": " Brown rice ", "explanation": "More fibre."}`)
	require.NoError(t, err)
	assert.Equal(t, "Brown rice", s.AlternativeFood)
	assert.Equal(t, "More fibre.", s.Explanation)

	_, err = decodeFoodSwap("try brown rice")
	assert.Error(t, err)
}

func TestResponseText(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []genai.Part{genai.Text(`{"a":`), genai.Text(` 1}`)}},
		}},
	}
	assert.Equal(t, `{"a": 1}`, responseText(resp))

	assert.Empty(t, responseText(nil))
	assert.Empty(t, responseText(&genai.GenerateContentResponse{}))
	assert.Empty(t, responseText(&genai.GenerateContentResponse{Candidates: []*genai.Candidate{{}}}))
}
