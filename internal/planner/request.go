package planner

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/BerylCAtieno/nutrigenius-agent/internal/models"
)

// RawRequest is the request as entered by the user. MealCount is left untyped
// because clients send numbers, numeric strings, or nothing at all.
type RawRequest struct {
	DietaryRestrictions string `json:"dietaryRestrictions"`
	HealthGoals         string `json:"healthGoals"`
	Preferences         string `json:"preferences"`
	MealCount           any    `json:"mealCount,omitempty"`
}

// WithProfileDefaults fills blank text fields from the saved profile.
func (r RawRequest) WithProfileDefaults(p *models.UserProfile) RawRequest {
	if p == nil {
		return r
	}
	if strings.TrimSpace(r.DietaryRestrictions) == "" {
		r.DietaryRestrictions = p.DietaryRestrictions
	}
	if strings.TrimSpace(r.HealthGoals) == "" {
		r.HealthGoals = p.HealthGoals
	}
	if strings.TrimSpace(r.Preferences) == "" {
		r.Preferences = p.Preferences
	}
	return r
}

// BuildRequest validates the text fields and normalizes the meal count into
// the canonical request passed to the gateway.
func BuildRequest(raw RawRequest) (models.MealPlanRequest, error) {
	req := models.MealPlanRequest{
		DietaryRestrictions: strings.TrimSpace(raw.DietaryRestrictions),
		HealthGoals:         strings.TrimSpace(raw.HealthGoals),
		Preferences:         strings.TrimSpace(raw.Preferences),
		MealCount:           NormalizeMealCount(raw.MealCount),
	}

	verr := &ValidationError{}
	if req.DietaryRestrictions == "" {
		verr.add("dietaryRestrictions", "Dietary restrictions are required.")
	}
	if req.HealthGoals == "" {
		verr.add("healthGoals", "Health goals are required.")
	}
	if req.Preferences == "" {
		verr.add("preferences", "Food preferences are required.")
	}
	if err := verr.orNil(); err != nil {
		return models.MealPlanRequest{}, err
	}
	return req, nil
}

// NormalizeMealCount applies the default before the clamp: a missing,
// non-integer or zero value becomes DefaultMealCount, anything else is
// clamped to [MinMealCount, MaxMealCount].
func NormalizeMealCount(v any) int {
	n, ok := mealCountValue(v)
	if !ok || n == 0 {
		return DefaultMealCount
	}
	return min(max(n, MinMealCount), MaxMealCount)
}

func mealCountValue(v any) (int, bool) {
	switch x := v.(type) {
	case nil:
		return 0, false
	case int:
		return x, true
	case int32:
		return int(x), true
	case int64:
		return fromFloat(float64(x))
	case float32:
		return fromFloat(float64(x))
	case float64:
		return fromFloat(x)
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return 0, false
		}
		return fromFloat(f)
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return fromFloat(f)
	default:
		return 0, false
	}
}

// fromFloat keeps huge magnitudes inside int range; they clamp anyway.
func fromFloat(f float64) (int, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	switch {
	case f > MaxMealCount:
		return MaxMealCount, true
	case f < -MaxMealCount:
		return MinMealCount, true
	}
	return int(f), true
}

// ValidateProfile checks that every profile field is filled in.
func ValidateProfile(p models.UserProfile) error {
	verr := &ValidationError{}
	if strings.TrimSpace(p.DietaryRestrictions) == "" {
		verr.add("dietaryRestrictions", "Dietary restrictions are required.")
	}
	if strings.TrimSpace(p.HealthGoals) == "" {
		verr.add("healthGoals", "Health goals are required.")
	}
	if strings.TrimSpace(p.MedicalConditions) == "" {
		verr.add("medicalConditions", "Medical conditions are required.")
	}
	if strings.TrimSpace(p.Preferences) == "" {
		verr.add("preferences", "Food preferences are required.")
	}
	return verr.orNil()
}
