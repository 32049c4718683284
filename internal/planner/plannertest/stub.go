// Package plannertest provides test doubles for the planner package.
package plannertest

import (
	"context"
	"fmt"
	"sync"

	"github.com/BerylCAtieno/nutrigenius-agent/internal/models"
	"github.com/BerylCAtieno/nutrigenius-agent/internal/storage"
)

// StubGateway is a thread-safe Gateway that returns configured responses.
//
// Usage:
//
//	gw := &plannertest.StubGateway{
//	    Plans: []*models.MealPlanResponse{plannertest.Plan(7, "Breakfast", "Dinner")},
//	}
//
// Setting Gate makes every call block until the channel is closed or
// receives, and Started (if set) is signalled when a call begins.
type StubGateway struct {
	mu          sync.Mutex
	Plans       []*models.MealPlanResponse // Plans to return in sequence
	Suggestion  *models.FoodSwapSuggestion
	Err         error // Error to return (takes precedence over responses)
	Gate        chan struct{}
	Started     chan struct{}
	planIndex   int
	planCalls   []models.MealPlanRequest
	swapCalls   []models.FoodSwapRequest
	lastContext context.Context
}

// GenerateMealPlan implements planner.Gateway.
func (g *StubGateway) GenerateMealPlan(ctx context.Context, req models.MealPlanRequest) (*models.MealPlanResponse, error) {
	g.wait()

	g.mu.Lock()
	defer g.mu.Unlock()

	g.lastContext = ctx
	g.planCalls = append(g.planCalls, req)

	if g.Err != nil {
		return nil, g.Err
	}
	if g.planIndex < len(g.Plans) {
		resp := g.Plans[g.planIndex]
		g.planIndex++
		return resp, nil
	}
	return &models.MealPlanResponse{}, nil
}

// SuggestFoodSwap implements planner.Gateway.
func (g *StubGateway) SuggestFoodSwap(ctx context.Context, req models.FoodSwapRequest) (*models.FoodSwapSuggestion, error) {
	g.wait()

	g.mu.Lock()
	defer g.mu.Unlock()

	g.lastContext = ctx
	g.swapCalls = append(g.swapCalls, req)

	if g.Err != nil {
		return nil, g.Err
	}
	return g.Suggestion, nil
}

func (g *StubGateway) wait() {
	if g.Started != nil {
		g.Started <- struct{}{}
	}
	if g.Gate != nil {
		<-g.Gate
	}
}

// PlanCalls returns the requests passed to GenerateMealPlan.
func (g *StubGateway) PlanCalls() []models.MealPlanRequest {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]models.MealPlanRequest(nil), g.planCalls...)
}

// SwapCalls returns the requests passed to SuggestFoodSwap.
func (g *StubGateway) SwapCalls() []models.FoodSwapRequest {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]models.FoodSwapRequest(nil), g.swapCalls...)
}

// LastContext returns the context of the most recent call.
func (g *StubGateway) LastContext() context.Context {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.lastContext
}

// Plan builds a response of days days, each holding one item per meal title.
func Plan(days int, titles ...string) *models.MealPlanResponse {
	resp := &models.MealPlanResponse{Days: make([]models.DayPlan, 0, days)}
	for d := range days {
		day := models.DayPlan{DayTitle: fmt.Sprintf("Day %d", d+1)}
		for _, title := range titles {
			day.Meals = append(day.Meals, models.Meal{
				MealTitle: title,
				Items: []models.MealItem{
					{
						ItemName: title + " bowl",
						Quantity: "1 serving",
						Calories: "150 kcal",
						Protein:  "15g",
						Carbs:    "10g",
						Fat:      "3g",
						Sugar:    "1g",
					},
				},
			})
		}
		resp.Days = append(resp.Days, day)
	}
	return resp
}

// MemoryStore is an in-memory ProfileStore and PlanStore.
type MemoryStore struct {
	mu       sync.Mutex
	profiles map[string]models.UserProfile
	plans    map[string]models.StructuredMealPlan
	// LoadErr, when set, is returned by every load.
	LoadErr error
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		profiles: make(map[string]models.UserProfile),
		plans:    make(map[string]models.StructuredMealPlan),
	}
}

func (m *MemoryStore) SaveProfile(_ context.Context, session string, p models.UserProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles[session] = p
	return nil
}

func (m *MemoryStore) LoadProfile(_ context.Context, session string) (*models.UserProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	p, ok := m.profiles[session]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &p, nil
}

func (m *MemoryStore) SavePlan(_ context.Context, session string, plan models.StructuredMealPlan) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.plans[session] = plan
	return nil
}

func (m *MemoryStore) DeletePlan(_ context.Context, session string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.plans, session)
	return nil
}

func (m *MemoryStore) LoadPlan(_ context.Context, session string) (models.StructuredMealPlan, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	plan, ok := m.plans[session]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return plan, nil
}
