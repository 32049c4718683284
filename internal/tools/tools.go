// Package tools exposes the planner as MCP-style tool calls over HTTP.
package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/ThinkInAIXYZ/go-mcp/protocol"
	"github.com/gin-gonic/gin"
	"github.com/invopop/jsonschema"

	"github.com/BerylCAtieno/nutrigenius-agent/internal/models"
	"github.com/BerylCAtieno/nutrigenius-agent/internal/planner"
)

// DefaultSessionID is used when a call omits session_id.
const DefaultSessionID = "mcp"

type SessionParams struct {
	SessionID string `json:"session_id,omitempty" jsonschema:"description=Conversation or user session (defaults to mcp)"`
}

type GenerateMealPlanParams struct {
	SessionParams
	DietaryRestrictions string `json:"dietary_restrictions,omitempty" jsonschema:"description=Dietary restrictions such as vegetarian or gluten-free"`
	HealthGoals         string `json:"health_goals,omitempty" jsonschema:"description=Health goals such as weight loss"`
	Preferences         string `json:"preferences,omitempty" jsonschema:"description=Favourite foods and cuisines or disliked foods"`
	MealCount           any    `json:"meal_count,omitempty" jsonschema:"description=Meals per day from 1 to 4 (default 3)"`
}

type SuggestFoodSwapParams struct {
	SessionParams
	FoodItem string `json:"food_item" jsonschema:"description=Food item in the current plan to replace"`
}

type SaveProfileParams struct {
	SessionParams
	DietaryRestrictions string `json:"dietary_restrictions"`
	HealthGoals         string `json:"health_goals"`
	MedicalConditions   string `json:"medical_conditions"`
	Preferences         string `json:"preferences"`
}

// ToolInfo describes one callable tool.
type ToolInfo struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	InputSchema *jsonschema.Schema `json:"inputSchema"`
}

type toolFunc func(ctx context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error)

type Handler struct {
	service *planner.Service
	logger  *slog.Logger
	tools   map[string]toolFunc
	infos   []ToolInfo
}

func NewHandler(service *planner.Service, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	h := &Handler{
		service: service,
		logger:  logger,
		tools:   make(map[string]toolFunc),
	}

	h.register("generate_meal_plan", "Generate a 7-day meal plan. Blank fields fall back to the saved profile.",
		&GenerateMealPlanParams{}, h.handleGenerateMealPlan)
	h.register("get_meal_plan", "Return the current meal plan with meal and day totals.",
		&SessionParams{}, h.handleGetMealPlan)
	h.register("suggest_food_swap", "Suggest an alternative for a food item in the current plan.",
		&SuggestFoodSwapParams{}, h.handleSuggestFoodSwap)
	h.register("save_profile", "Save the user's dietary profile.",
		&SaveProfileParams{}, h.handleSaveProfile)

	return h
}

func (h *Handler) register(name, description string, params any, fn toolFunc) {
	r := &jsonschema.Reflector{DoNotReference: true}
	h.tools[name] = fn
	h.infos = append(h.infos, ToolInfo{
		Name:        name,
		Description: description,
		InputSchema: r.Reflect(params),
	})
}

// ListTools serves the tool descriptors.
func (h *Handler) ListTools(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"tools": h.infos})
}

// CallTool decodes a CallToolRequest and routes it by name.
func (h *Handler) CallTool(c *gin.Context) {
	var request protocol.CallToolRequest
	if err := json.NewDecoder(c.Request.Body).Decode(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid JSON: %v", err)})
		return
	}

	fn, ok := h.tools[request.Name]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Unknown tool: %s", request.Name)})
		return
	}

	result, err := fn(c.Request.Context(), &request)
	if err != nil {
		h.writeError(c, request.Name, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) handleGenerateMealPlan(ctx context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params GenerateMealPlanParams
	if err := extractParams(req, &params); err != nil {
		return nil, err
	}

	gen, err := h.service.GeneratePlan(ctx, params.session(), planner.RawRequest{
		DietaryRestrictions: params.DietaryRestrictions,
		HealthGoals:         params.HealthGoals,
		Preferences:         params.Preferences,
		MealCount:           params.MealCount,
	})
	if err != nil {
		return nil, err
	}
	return createJSONResponse(planner.BuildView(gen.Plan, gen.Report))
}

func (h *Handler) handleGetMealPlan(ctx context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params SessionParams
	if err := extractParams(req, &params); err != nil {
		return nil, err
	}

	plan, err := h.service.CurrentPlan(ctx, params.session())
	if err != nil {
		return nil, err
	}
	return createJSONResponse(planner.BuildView(plan, nil))
}

func (h *Handler) handleSuggestFoodSwap(ctx context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params SuggestFoodSwapParams
	if err := extractParams(req, &params); err != nil {
		return nil, err
	}

	suggestion, err := h.service.SuggestSwap(ctx, params.session(), params.FoodItem)
	if err != nil {
		return nil, err
	}
	return createJSONResponse(suggestion)
}

func (h *Handler) handleSaveProfile(ctx context.Context, req *protocol.CallToolRequest) (*protocol.CallToolResult, error) {
	var params SaveProfileParams
	if err := extractParams(req, &params); err != nil {
		return nil, err
	}

	profile, err := h.service.SaveProfile(ctx, params.session(), models.UserProfile{
		DietaryRestrictions: params.DietaryRestrictions,
		HealthGoals:         params.HealthGoals,
		MedicalConditions:   params.MedicalConditions,
		Preferences:         params.Preferences,
	})
	if err != nil {
		return nil, err
	}
	return createJSONResponse(profile)
}

func (p SessionParams) session() string {
	if p.SessionID == "" {
		return DefaultSessionID
	}
	return p.SessionID
}

// invalidParamsError marks arguments that do not decode.
type invalidParamsError struct {
	err error
}

func (e *invalidParamsError) Error() string {
	return fmt.Sprintf("invalid parameters: %v", e.err)
}

func (e *invalidParamsError) Unwrap() error {
	return e.err
}

// extractParams converts the request arguments into target
func extractParams(req *protocol.CallToolRequest, target any) error {
	jsonBytes, err := json.Marshal(req.Arguments)
	if err != nil {
		return &invalidParamsError{err: err}
	}
	if err := json.Unmarshal(jsonBytes, target); err != nil {
		return &invalidParamsError{err: err}
	}
	return nil
}

func createJSONResponse(data any) (*protocol.CallToolResult, error) {
	jsonBytes, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal response: %w", err)
	}

	return &protocol.CallToolResult{
		Content: []protocol.Content{
			protocol.TextContent{
				Type: "text",
				Text: string(jsonBytes),
			},
		},
	}, nil
}

func (h *Handler) writeError(c *gin.Context, tool string, err error) {
	var verr *planner.ValidationError
	var perr *invalidParamsError
	switch {
	case errors.As(err, &perr):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "fields": verr.Fields})
	case errors.Is(err, planner.ErrNoProfile), errors.Is(err, planner.ErrNoPlan):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, planner.ErrGenerationInProgress):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case planner.IsFatalStructure(err), planner.IsGeneration(err):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		h.logger.Error("Tool call failed", "tool", tool, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
