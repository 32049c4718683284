// Package gemini implements the planner gateway on top of the Gemini API.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/BerylCAtieno/nutrigenius-agent/internal/models"
	"github.com/BerylCAtieno/nutrigenius-agent/internal/planner"
)

// Config holds the model settings shared by both calls.
type Config struct {
	Model           string
	Temperature     float32
	TopP            float32
	MaxOutputTokens int32
}

type GeminiClient struct {
	client    *genai.Client
	mealModel *genai.GenerativeModel
	swapModel *genai.GenerativeModel
	logger    *slog.Logger
}

// Option configures a GeminiClient.
type Option func(*GeminiClient)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(g *GeminiClient) {
		if l != nil {
			g.logger = l
		}
	}
}

var _ planner.Gateway = (*GeminiClient)(nil)

func NewGeminiClient(apiKey string, cfg Config, opts ...Option) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, errors.New("gemini API key is required")
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	g := &GeminiClient{
		client:    client,
		mealModel: newJSONModel(client, cfg, mealPlanSchema()),
		swapModel: newJSONModel(client, cfg, foodSwapSchema()),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

func newJSONModel(client *genai.Client, cfg Config, schema *genai.Schema) *genai.GenerativeModel {
	model := client.GenerativeModel(cfg.Model)
	model.SetTemperature(cfg.Temperature)
	model.SetTopP(cfg.TopP)
	model.SetMaxOutputTokens(cfg.MaxOutputTokens)
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = schema
	return model
}

func (g *GeminiClient) Close() {
	g.client.Close()
}

// GenerateMealPlan asks the model for a 7-day plan. It makes exactly one attempt.
func (g *GeminiClient) GenerateMealPlan(ctx context.Context, req models.MealPlanRequest) (*models.MealPlanResponse, error) {
	const op = "generate meal plan"

	text, err := g.generate(ctx, g.mealModel, buildMealPlanPrompt(req))
	if err != nil {
		return nil, planner.NewGenerationError(op, err)
	}

	plan, err := decodeMealPlan(text)
	if err != nil {
		g.logger.Debug("Undecodable meal plan response", "response", truncate(text, 500))
		return nil, err
	}
	return plan, nil
}

// SuggestFoodSwap asks the model for a single alternative to req.FoodItem.
func (g *GeminiClient) SuggestFoodSwap(ctx context.Context, req models.FoodSwapRequest) (*models.FoodSwapSuggestion, error) {
	const op = "suggest food swap"

	text, err := g.generate(ctx, g.swapModel, buildFoodSwapPrompt(req))
	if err != nil {
		return nil, planner.NewGenerationError(op, err)
	}

	suggestion, err := decodeFoodSwap(text)
	if err != nil {
		return nil, planner.NewGenerationError(op, err)
	}
	return suggestion, nil
}

func (g *GeminiClient) generate(ctx context.Context, model *genai.GenerativeModel, prompt string) (string, error) {
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	text := responseText(resp)
	if text == "" {
		return "", errors.New("no content generated")
	}
	return text, nil
}

// responseText joins the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			sb.WriteString(string(t))
		}
	}
	return strings.TrimSpace(sb.String())
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
