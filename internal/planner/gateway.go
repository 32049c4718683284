package planner

import (
	"context"

	"github.com/BerylCAtieno/nutrigenius-agent/internal/models"
)

// Gateway is the single boundary to the hosted generative model.
// Implementations make at most one attempt per call and report transport or
// model failures as *GenerationError, and undecodable output as
// *MalformedStructureError.
type Gateway interface {
	GenerateMealPlan(ctx context.Context, req models.MealPlanRequest) (*models.MealPlanResponse, error)
	SuggestFoodSwap(ctx context.Context, req models.FoodSwapRequest) (*models.FoodSwapSuggestion, error)
}
