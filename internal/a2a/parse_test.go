package a2a

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BerylCAtieno/nutrigenius-agent/internal/planner"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		name string
		text string
		want command
	}{
		{
			name: "generate with semicolons",
			text: "dietary: vegetarian; goals: lose weight; preferences: spicy Thai food, no mushrooms; meals: 2",
			want: command{kind: commandGenerate, request: planner.RawRequest{
				DietaryRestrictions: "vegetarian",
				HealthGoals:         "lose weight",
				Preferences:         "spicy Thai food, no mushrooms",
				MealCount:           "2",
			}},
		},
		{
			name: "generate with newlines and aliases",
			text: "Dietary Restrictions: none\nHealth Goals: more energy",
			want: command{kind: commandGenerate, request: planner.RawRequest{
				DietaryRestrictions: "none",
				HealthGoals:         "more energy",
			}},
		},
		{
			name: "swap",
			text: "swap: white rice",
			want: command{kind: commandSwap, foodItem: "white rice"},
		},
		{
			name: "show plan",
			text: "Show my meal plan",
			want: command{kind: commandShow},
		},
		{
			name: "unknown",
			text: "hello there",
			want: command{kind: commandUnknown},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseCommand(tt.text, nil))
		})
	}
}

func TestParseCommandStructured(t *testing.T) {
	cmd := parseCommand("ignored", &dataInput{RawRequest: planner.RawRequest{HealthGoals: "gain"}})
	assert.Equal(t, commandGenerate, cmd.kind)
	assert.Equal(t, "gain", cmd.request.HealthGoals)

	cmd = parseCommand("", &dataInput{FoodItem: "bacon"})
	assert.Equal(t, command{kind: commandSwap, foodItem: "bacon"}, cmd)
}

func TestExtractInput(t *testing.T) {
	msg := A2AMessage{
		Parts: []MessagePart{
			TextPart("<p>dietary: vegan</p>"),
			DataPart([]any{
				map[string]any{"kind": "text", "text": "goals: gain muscle"},
				map[string]any{"kind": "text", "text": "Generating your plan..."},
				map[string]any{"kind": "text", "text": "..."},
			}),
		},
	}

	text, data := extractInput(msg)
	assert.Equal(t, "dietary: vegan\ngoals: gain muscle", text)
	assert.Nil(t, data)
}

func TestExtractInputStructuredData(t *testing.T) {
	msg := A2AMessage{
		Parts: []MessagePart{
			DataPart(map[string]any{
				"dietaryRestrictions": "none",
				"healthGoals":         "energy",
				"preferences":         "fish",
				"mealCount":           4,
			}),
		},
	}

	_, data := extractInput(msg)
	require.NotNil(t, data)
	assert.Equal(t, "fish", data.Preferences)
	assert.Equal(t, 4, planner.NormalizeMealCount(data.MealCount))

	_, data = extractInput(A2AMessage{Parts: []MessagePart{DataPart(map[string]any{"other": 1})}})
	assert.Nil(t, data)
}
