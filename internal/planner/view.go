package planner

import (
	"github.com/BerylCAtieno/nutrigenius-agent/internal/models"
	"github.com/BerylCAtieno/nutrigenius-agent/internal/nutrition"
)

// BuildView derives per-meal and per-day totals for display. Warnings come
// from report when one is available.
func BuildView(plan models.StructuredMealPlan, report *Report) models.PlanView {
	view := models.PlanView{Days: make([]models.DayView, 0, len(plan))}
	for _, day := range plan {
		dv := models.DayView{
			DayTitle: day.DayTitle,
			Meals:    make([]models.MealView, 0, len(day.Meals)),
		}
		for _, meal := range day.Meals {
			totals := nutrition.MealTotals(meal.Items)
			dv.Meals = append(dv.Meals, models.MealView{
				MealTitle: meal.MealTitle,
				Items:     meal.Items,
				Totals:    totals,
				Display:   nutrition.DisplayTotals(totals),
			})
			dv.Totals = dv.Totals.Add(totals)
		}
		view.Days = append(view.Days, dv)
	}
	if report != nil {
		view.Warnings = report.Warnings()
	}
	return view
}
