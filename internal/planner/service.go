package planner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/BerylCAtieno/nutrigenius-agent/internal/models"
	"github.com/BerylCAtieno/nutrigenius-agent/internal/storage"
)

// ProfileStore holds one profile per session. Loads return storage.ErrNotFound
// when nothing is stored and a *storage.ReadError when the value is corrupt.
type ProfileStore interface {
	SaveProfile(ctx context.Context, session string, p models.UserProfile) error
	LoadProfile(ctx context.Context, session string) (*models.UserProfile, error)
}

// PlanStore holds the single current meal plan per session.
type PlanStore interface {
	SavePlan(ctx context.Context, session string, plan models.StructuredMealPlan) error
	LoadPlan(ctx context.Context, session string) (models.StructuredMealPlan, error)
	DeletePlan(ctx context.Context, session string) error
}

// Generation is the outcome of a successful GeneratePlan call.
type Generation struct {
	Request models.MealPlanRequest
	Plan    models.StructuredMealPlan
	Report  *Report
}

// Service runs the meal-plan workflow: build the request, call the gateway,
// validate the response and persist it.
type Service struct {
	gateway  Gateway
	profiles ProfileStore
	plans    PlanStore
	logger   *slog.Logger
	metrics  *Metrics

	mu       sync.Mutex
	inflight map[string]struct{}
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetrics sets the collectors updated by the service.
func WithMetrics(m *Metrics) Option {
	return func(s *Service) {
		if m != nil {
			s.metrics = m
		}
	}
}

// NewService creates a Service.
func NewService(gw Gateway, profiles ProfileStore, plans PlanStore, opts ...Option) *Service {
	s := &Service{
		gateway:  gw,
		profiles: profiles,
		plans:    plans,
		logger:   slog.Default(),
		metrics:  NewMetrics(nil),
		inflight: make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SaveProfile validates and stores the session's profile.
func (s *Service) SaveProfile(ctx context.Context, session string, p models.UserProfile) (*models.UserProfile, error) {
	p = models.UserProfile{
		DietaryRestrictions: strings.TrimSpace(p.DietaryRestrictions),
		HealthGoals:         strings.TrimSpace(p.HealthGoals),
		MedicalConditions:   strings.TrimSpace(p.MedicalConditions),
		Preferences:         strings.TrimSpace(p.Preferences),
	}
	if err := ValidateProfile(p); err != nil {
		return nil, err
	}
	if err := s.profiles.SaveProfile(ctx, session, p); err != nil {
		return nil, fmt.Errorf("save profile: %w", err)
	}
	s.logger.Info("Profile saved", "session_id", session)
	return &p, nil
}

// Profile returns the session's profile or ErrNoProfile.
func (s *Service) Profile(ctx context.Context, session string) (*models.UserProfile, error) {
	p, err := s.profiles.LoadProfile(ctx, session)
	switch {
	case err == nil:
		return p, nil
	case errors.Is(err, storage.ErrNotFound):
		return nil, ErrNoProfile
	case storage.IsReadError(err):
		s.logger.Warn("Ignoring unreadable profile", "session_id", session, "error", err)
		return nil, ErrNoProfile
	default:
		return nil, fmt.Errorf("load profile: %w", err)
	}
}

// CurrentPlan returns the session's last generated plan or ErrNoPlan.
func (s *Service) CurrentPlan(ctx context.Context, session string) (models.StructuredMealPlan, error) {
	plan, err := s.plans.LoadPlan(ctx, session)
	switch {
	case err == nil:
		return plan, nil
	case errors.Is(err, storage.ErrNotFound):
		return nil, ErrNoPlan
	case storage.IsReadError(err):
		s.logger.Warn("Ignoring unreadable meal plan", "session_id", session, "error", err)
		return nil, ErrNoPlan
	default:
		return nil, fmt.Errorf("load meal plan: %w", err)
	}
}

// ClearPlan removes the session's current plan. It fails with
// ErrGenerationInProgress while a call for the session is outstanding.
func (s *Service) ClearPlan(ctx context.Context, session string) error {
	release, err := s.acquire(session)
	if err != nil {
		return err
	}
	defer release()

	if err := s.plans.DeletePlan(ctx, session); err != nil {
		return fmt.Errorf("delete meal plan: %w", err)
	}
	s.logger.Info("Meal plan cleared", "session_id", session)
	return nil
}

// GeneratePlan builds a request from raw (blank fields fall back to the saved
// profile), asks the gateway for a plan, validates it and replaces the
// session's current plan. The previous plan is left untouched on any error.
func (s *Service) GeneratePlan(ctx context.Context, session string, raw RawRequest) (*Generation, error) {
	profile, err := s.Profile(ctx, session)
	if err != nil && !errors.Is(err, ErrNoProfile) {
		return nil, err
	}

	req, err := BuildRequest(raw.WithProfileDefaults(profile))
	if err != nil {
		s.metrics.generation(OutcomeInvalid)
		return nil, err
	}

	release, err := s.acquire(session)
	if err != nil {
		s.metrics.generation(OutcomeBusy)
		return nil, err
	}
	defer release()

	s.logger.Info("Generating meal plan",
		"session_id", session,
		"meal_count", req.MealCount)

	// A client that goes away does not abort the call; the plan is still stored.
	ctx = context.WithoutCancel(ctx)
	resp, err := s.gateway.GenerateMealPlan(ctx, req)
	if err != nil {
		s.metrics.generation(outcomeFor(err))
		s.logger.Error("Meal plan generation failed", "session_id", session, "error", err)
		return nil, err
	}

	report, err := Validate(resp, req.MealCount)
	if err != nil {
		s.metrics.generation(OutcomeMalformed)
		s.logger.Error("Rejected meal plan", "session_id", session, "error", err)
		return nil, err
	}
	s.metrics.report(report)
	if !report.Clean() {
		s.logger.Warn("Meal plan has warnings",
			"session_id", session,
			"warnings", report.Warnings())
	}

	plan := models.StructuredMealPlan(resp.Days)
	if err := s.plans.SavePlan(ctx, session, plan); err != nil {
		s.metrics.generation(OutcomeStoreError)
		return nil, fmt.Errorf("save meal plan: %w", err)
	}

	s.metrics.generation(OutcomeSuccess)
	s.logger.Info("Meal plan generated",
		"session_id", session,
		"days", len(plan))

	return &Generation{Request: req, Plan: plan, Report: report}, nil
}

// SuggestSwap asks for an alternative to foodItem in the context of the
// session's current plan and profile.
func (s *Service) SuggestSwap(ctx context.Context, session, foodItem string) (*models.FoodSwapSuggestion, error) {
	foodItem = strings.TrimSpace(foodItem)
	if foodItem == "" {
		s.metrics.swap(OutcomeInvalid)
		verr := &ValidationError{}
		verr.add("foodItem", "Food item to swap is required.")
		return nil, verr
	}

	plan, err := s.CurrentPlan(ctx, session)
	if err != nil {
		return nil, err
	}
	profile, err := s.Profile(ctx, session)
	if err != nil {
		return nil, err
	}

	planJSON, err := json.Marshal(plan)
	if err != nil {
		return nil, fmt.Errorf("encode meal plan: %w", err)
	}

	release, err := s.acquire(session)
	if err != nil {
		s.metrics.swap(OutcomeBusy)
		return nil, err
	}
	defer release()

	suggestion, err := s.gateway.SuggestFoodSwap(context.WithoutCancel(ctx), models.FoodSwapRequest{
		MealPlan:            string(planJSON),
		FoodItem:            foodItem,
		DietaryRestrictions: profile.DietaryRestrictions,
		HealthGoals:         profile.HealthGoals,
	})
	if err == nil && (suggestion == nil || strings.TrimSpace(suggestion.AlternativeFood) == "") {
		err = NewGenerationError("suggest food swap", errors.New("no alternative food returned"))
	}
	if err != nil {
		s.metrics.swap(outcomeFor(err))
		s.logger.Error("Food swap failed", "session_id", session, "food_item", foodItem, "error", err)
		return nil, err
	}

	s.metrics.swap(OutcomeSuccess)
	s.logger.Info("Food swap suggested",
		"session_id", session,
		"food_item", foodItem,
		"alternative", suggestion.AlternativeFood)
	return suggestion, nil
}

// acquire claims the session's single in-flight slot.
func (s *Service) acquire(session string) (func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, busy := s.inflight[session]; busy {
		return nil, ErrGenerationInProgress
	}
	s.inflight[session] = struct{}{}

	return func() {
		s.mu.Lock()
		delete(s.inflight, session)
		s.mu.Unlock()
	}, nil
}
