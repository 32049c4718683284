package tools

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BerylCAtieno/nutrigenius-agent/internal/models"
	"github.com/BerylCAtieno/nutrigenius-agent/internal/planner"
	"github.com/BerylCAtieno/nutrigenius-agent/internal/planner/plannertest"
)

type toolResult struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

type testEnv struct {
	router *gin.Engine
	gw     *plannertest.StubGateway
	store  *plannertest.MemoryStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	gw := &plannertest.StubGateway{}
	store := plannertest.NewMemoryStore()
	h := NewHandler(planner.NewService(gw, store, store, planner.WithLogger(logger)), logger)

	router := gin.New()
	router.GET("/mcp/tools", h.ListTools)
	router.POST("/mcp/tools/call", h.CallTool)
	return &testEnv{router: router, gw: gw, store: store}
}

func (e *testEnv) call(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/mcp/tools/call", strings.NewReader(body))
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeText[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var res toolResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.Len(t, res.Content, 1)
	assert.Equal(t, "text", res.Content[0].Type)

	var v T
	require.NoError(t, json.Unmarshal([]byte(res.Content[0].Text), &v))
	return v
}

func TestListTools(t *testing.T) {
	env := newTestEnv(t)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/mcp/tools", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Tools []struct {
			Name        string         `json:"name"`
			InputSchema map[string]any `json:"inputSchema"`
		} `json:"tools"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Tools, 4)
	assert.Equal(t, "generate_meal_plan", resp.Tools[0].Name)

	props, ok := resp.Tools[0].InputSchema["properties"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, props, "session_id")
	assert.Contains(t, props, "meal_count")
}

func TestSaveProfileThenGenerate(t *testing.T) {
	env := newTestEnv(t)
	env.gw.Plans = []*models.MealPlanResponse{plannertest.Plan(planner.PlanDays, "Main Meal")}

	w := env.call(t, `{"name":"save_profile","arguments":{"session_id":"u1","dietary_restrictions":"vegan","health_goals":"energy","medical_conditions":"none","preferences":"curry"}}`)
	require.Equal(t, http.StatusOK, w.Code)
	profile := decodeText[models.UserProfile](t, w)
	assert.Equal(t, "vegan", profile.DietaryRestrictions)

	w = env.call(t, `{"name":"generate_meal_plan","arguments":{"session_id":"u1","meal_count":1}}`)
	require.Equal(t, http.StatusOK, w.Code)
	view := decodeText[models.PlanView](t, w)
	assert.Len(t, view.Days, planner.PlanDays)

	calls := env.gw.PlanCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, "curry", calls[0].Preferences)
	assert.Equal(t, 1, calls[0].MealCount)

	w = env.call(t, `{"name":"get_meal_plan","arguments":{"session_id":"u1"}}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeText[models.PlanView](t, w).Days, planner.PlanDays)
}

func TestSuggestFoodSwapTool(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	require.NoError(t, env.store.SavePlan(ctx, DefaultSessionID, plannertest.Plan(1, "Main Meal").Days))
	require.NoError(t, env.store.SaveProfile(ctx, DefaultSessionID, models.UserProfile{
		DietaryRestrictions: "none", HealthGoals: "energy", MedicalConditions: "none", Preferences: "fish",
	}))
	env.gw.Suggestion = &models.FoodSwapSuggestion{AlternativeFood: "Sweet potato", Explanation: "Lower GI."}

	w := env.call(t, `{"name":"suggest_food_swap","arguments":{"food_item":"fries"}}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Sweet potato", decodeText[models.FoodSwapSuggestion](t, w).AlternativeFood)
}

func TestCallToolErrors(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"bad json", `{"name":`, http.StatusBadRequest},
		{"unknown tool", `{"name":"log_meal","arguments":{}}`, http.StatusNotFound},
		{"wrong argument type", `{"name":"suggest_food_swap","arguments":{"food_item":5}}`, http.StatusBadRequest},
		{"validation", `{"name":"save_profile","arguments":{"dietary_restrictions":"none"}}`, http.StatusBadRequest},
		{"no plan", `{"name":"get_meal_plan","arguments":{}}`, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.call(t, tt.body)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}
