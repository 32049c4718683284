package models

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// MealPlanRequest is the canonical request handed to the AI gateway.
// MealCount is always within [1, 4] once built by the planner.
type MealPlanRequest struct {
	DietaryRestrictions string `json:"dietaryRestrictions"`
	HealthGoals         string `json:"healthGoals"`
	Preferences         string `json:"preferences"`
	MealCount           int    `json:"mealCount"`
}

// MealItem nutrition fields are free text from the model ("165 kcal", "10g", "N/A").
// They are never trusted as numbers; see the nutrition package.
type MealItem struct {
	ItemName string `json:"itemName" jsonschema:"description=The name of the food item."`
	Quantity string `json:"quantity,omitempty" jsonschema:"description=Estimated quantity such as 100g or 1 cup."`
	Calories string `json:"calories" jsonschema:"description=Estimated calories formatted like 150 kcal."`
	Protein  string `json:"protein" jsonschema:"description=Estimated protein formatted like 10g."`
	Carbs    string `json:"carbs" jsonschema:"description=Estimated carbohydrates formatted like 20g."`
	Fat      string `json:"fat" jsonschema:"description=Estimated fat formatted like 5g."`
	Sugar    string `json:"sugar" jsonschema:"description=Estimated sugar formatted like 2g."`
}

// UnmarshalJSON accepts numbers, booleans and null for any item field, so one
// badly typed value is left for validation to flag instead of failing the
// whole plan. The item itself must still be an object.
func (m *MealItem) UnmarshalJSON(data []byte) error {
	var raw struct {
		ItemName looseString `json:"itemName"`
		Quantity looseString `json:"quantity"`
		Calories looseString `json:"calories"`
		Protein  looseString `json:"protein"`
		Carbs    looseString `json:"carbs"`
		Fat      looseString `json:"fat"`
		Sugar    looseString `json:"sugar"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*m = MealItem{
		ItemName: string(raw.ItemName),
		Quantity: string(raw.Quantity),
		Calories: string(raw.Calories),
		Protein:  string(raw.Protein),
		Carbs:    string(raw.Carbs),
		Fat:      string(raw.Fat),
		Sugar:    string(raw.Sugar),
	}
	return nil
}

// looseString decodes any JSON scalar as text. Numbers keep their literal
// form; null, objects and arrays become empty.
type looseString string

func (s *looseString) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return err
	}

	switch x := v.(type) {
	case string:
		*s = looseString(x)
	case json.Number:
		*s = looseString(x.String())
	case bool:
		*s = looseString(strconv.FormatBool(x))
	default:
		*s = ""
	}
	return nil
}

type Meal struct {
	MealTitle string     `json:"mealTitle" jsonschema:"description=Meal title from the fixed vocabulary for the requested meal count."`
	Items     []MealItem `json:"items"`
}

type DayPlan struct {
	DayTitle string `json:"dayTitle" jsonschema:"description=The title of the day such as Day 1."`
	Meals    []Meal `json:"meals"`
}

// StructuredMealPlan is the persisted 7-day plan.
type StructuredMealPlan []DayPlan

// MealPlanResponse is the envelope the model is asked to return.
type MealPlanResponse struct {
	Days []DayPlan `json:"days" jsonschema:"description=A 7-day meal plan."`
}

// MealTotals is derived on demand and never persisted.
type MealTotals struct {
	TotalCalories float64 `json:"totalCalories"`
	TotalProtein  float64 `json:"totalProtein"`
	TotalCarbs    float64 `json:"totalCarbs"`
	TotalFat      float64 `json:"totalFat"`
	TotalSugar    float64 `json:"totalSugar"`
}

// Add returns the field-wise sum of t and o.
func (t MealTotals) Add(o MealTotals) MealTotals {
	return MealTotals{
		TotalCalories: t.TotalCalories + o.TotalCalories,
		TotalProtein:  t.TotalProtein + o.TotalProtein,
		TotalCarbs:    t.TotalCarbs + o.TotalCarbs,
		TotalFat:      t.TotalFat + o.TotalFat,
		TotalSugar:    t.TotalSugar + o.TotalSugar,
	}
}
