package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BerylCAtieno/nutrigenius-agent/internal/models"
)

func newTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()
	s, err := NewSQLiteStorage(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func samplePlan() models.StructuredMealPlan {
	return models.StructuredMealPlan{
		{
			DayTitle: "Day 1",
			Meals: []models.Meal{
				{
					MealTitle: "Breakfast",
					Items: []models.MealItem{
						{ItemName: "Oatmeal", Quantity: "1 cup", Calories: "150 kcal", Protein: "5g", Carbs: "27g", Fat: "3g", Sugar: "1g"},
					},
				},
				{
					MealTitle: "Dinner",
					Items: []models.MealItem{
						{ItemName: "Grilled salmon", Calories: "367 kcal", Protein: "34g", Carbs: "0g", Fat: "22g", Sugar: "N/A"},
					},
				},
			},
		},
	}
}

func TestProfileRoundTrip(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	p := models.UserProfile{
		DietaryRestrictions: "vegetarian",
		HealthGoals:         "lose weight",
		MedicalConditions:   "none",
		Preferences:         "spicy food",
	}
	require.NoError(t, s.SaveProfile(ctx, "s1", p))

	got, err := s.LoadProfile(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, p, *got)
}

func TestPlanRoundTrip(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	plan := samplePlan()
	require.NoError(t, s.SavePlan(ctx, "s1", plan))

	got, err := s.LoadPlan(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, plan, got)
}

func TestSaveOverwrites(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, s.SaveProfile(ctx, "s1", models.UserProfile{HealthGoals: "first"}))
	require.NoError(t, s.SaveProfile(ctx, "s1", models.UserProfile{HealthGoals: "second"}))

	got, err := s.LoadProfile(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "second", got.HealthGoals)
}

func TestSessionsAreIsolated(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, s.SavePlan(ctx, "a", samplePlan()))

	_, err := s.LoadPlan(ctx, "b")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoadMissing(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	_, err := s.LoadProfile(ctx, "nobody")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.LoadPlan(ctx, "nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCorruptValueIsReadError(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		key   string
		value string
		load  func() error
	}{
		{
			name:  "profile not json",
			key:   KeyProfile,
			value: "{not json",
			load: func() error {
				_, err := s.LoadProfile(ctx, "s1")
				return err
			},
		},
		{
			name:  "plan is an object",
			key:   KeyMealPlan,
			value: `{"days": []}`,
			load: func() error {
				_, err := s.LoadPlan(ctx, "s1")
				return err
			},
		},
		{
			name:  "plan is empty",
			key:   KeyMealPlan,
			value: `[]`,
			load: func() error {
				_, err := s.LoadPlan(ctx, "s1")
				return err
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.db.Exec(
				`INSERT OR REPLACE INTO slots (session_id, key, value, updated_at) VALUES (?, ?, ?, ?)`,
				"s1", tt.key, tt.value, time.Now().UTC(),
			)
			require.NoError(t, err)

			err = tt.load()
			require.Error(t, err)
			assert.True(t, IsReadError(err))
			assert.NotErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestDeletePlan(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, s.SavePlan(ctx, "s1", samplePlan()))
	require.NoError(t, s.SavePlan(ctx, "s2", samplePlan()))
	require.NoError(t, s.DeletePlan(ctx, "s1"))
	require.NoError(t, s.DeletePlan(ctx, "s1"))

	_, err := s.LoadPlan(ctx, "s1")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.LoadPlan(ctx, "s2")
	assert.NoError(t, err)
}

func TestInMemoryDatabase(t *testing.T) {
	s, err := NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()
	require.NoError(t, s.SaveProfile(ctx, "s1", models.UserProfile{Preferences: "rice"}))

	got, err := s.LoadProfile(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "rice", got.Preferences)
}
