package models

// Views are what the HTTP surfaces render: the stored plan plus derived totals.

type MealView struct {
	MealTitle string            `json:"mealTitle"`
	Items     []MealItem        `json:"items"`
	Totals    MealTotals        `json:"totals"`
	Display   map[string]string `json:"display"`
}

type DayView struct {
	DayTitle string     `json:"dayTitle"`
	Meals    []MealView `json:"meals"`
	Totals   MealTotals `json:"totals"`
}

type PlanView struct {
	Days     []DayView `json:"days"`
	Warnings []string  `json:"warnings,omitempty"`
}
