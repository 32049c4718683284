package gemini

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/BerylCAtieno/nutrigenius-agent/internal/models"
	"github.com/BerylCAtieno/nutrigenius-agent/internal/planner"
)

// decodeMealPlan turns model text into a response. Structural checks beyond
// decoding are left to planner.Validate.
func decodeMealPlan(text string) (*models.MealPlanResponse, error) {
	raw := extractJSON(text)
	if raw == "" {
		return nil, planner.NewMalformedStructureError("", "response contains no JSON")
	}

	// some responses are the bare days array
	if strings.HasPrefix(raw, "[") {
		var days []models.DayPlan
		if err := json.Unmarshal([]byte(raw), &days); err != nil {
			return nil, planner.NewMalformedStructureError("days", err.Error())
		}
		return &models.MealPlanResponse{Days: days}, nil
	}

	var resp models.MealPlanResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		return nil, planner.NewMalformedStructureError("", err.Error())
	}
	return &resp, nil
}

func decodeFoodSwap(text string) (*models.FoodSwapSuggestion, error) {
	raw := extractJSON(text)
	if raw == "" || strings.HasPrefix(raw, "[") {
		return nil, errors.New("response contains no JSON object")
	}

	var s models.FoodSwapSuggestion
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return nil, fmt.Errorf("failed to parse food swap: %w", err)
	}
	s.AlternativeFood = strings.TrimSpace(s.AlternativeFood)
	s.Explanation = strings.TrimSpace(s.Explanation)
	return &s, nil
}
