// Package storage persists the per-session profile and current meal plan.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/BerylCAtieno/nutrigenius-agent/internal/models"
)

// Slot keys. Each session holds at most one value per key.
const (
	KeyProfile  = "nutrigenius_user_profile"
	KeyMealPlan = "nutrigenius_current_meal_plan_structured"
)

type SQLiteStorage struct {
	db *sql.DB
}

// NewSQLiteStorage opens (or creates) the database at dbPath.
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// one connection so ":memory:" databases are shared and writes serialize
	db.SetMaxOpenConns(1)

	storage := &SQLiteStorage{db: db}
	if err := storage.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return storage, nil
}

func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

func (s *SQLiteStorage) initSchema() error {
	schema := `
    CREATE TABLE IF NOT EXISTS slots (
        session_id TEXT NOT NULL,
        key TEXT NOT NULL,
        value TEXT NOT NULL,
        updated_at DATETIME NOT NULL,
        PRIMARY KEY (session_id, key)
    );
    `

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// SaveProfile overwrites the session's profile.
func (s *SQLiteStorage) SaveProfile(ctx context.Context, session string, p models.UserProfile) error {
	return s.put(ctx, session, KeyProfile, p)
}

// LoadProfile returns the session's profile, ErrNotFound, or a *ReadError.
func (s *SQLiteStorage) LoadProfile(ctx context.Context, session string) (*models.UserProfile, error) {
	var p models.UserProfile
	if err := s.get(ctx, session, KeyProfile, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// SavePlan overwrites the session's current plan.
func (s *SQLiteStorage) SavePlan(ctx context.Context, session string, plan models.StructuredMealPlan) error {
	return s.put(ctx, session, KeyMealPlan, plan)
}

// LoadPlan returns the session's current plan, ErrNotFound, or a *ReadError.
func (s *SQLiteStorage) LoadPlan(ctx context.Context, session string) (models.StructuredMealPlan, error) {
	var plan models.StructuredMealPlan
	if err := s.get(ctx, session, KeyMealPlan, &plan); err != nil {
		return nil, err
	}
	if len(plan) == 0 {
		return nil, &ReadError{Session: session, Key: KeyMealPlan, Err: errors.New("stored plan has no days")}
	}
	return plan, nil
}

// DeletePlan clears the session's current plan. Clearing an empty slot is not an error.
func (s *SQLiteStorage) DeletePlan(ctx context.Context, session string) error {
	return s.remove(ctx, session, KeyMealPlan)
}

func (s *SQLiteStorage) remove(ctx context.Context, session, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM slots WHERE session_id = ? AND key = ?`, session, key)
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

func (s *SQLiteStorage) put(ctx context.Context, session, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}

	query := `
        INSERT INTO slots (session_id, key, value, updated_at)
        VALUES (?, ?, ?, ?)
        ON CONFLICT (session_id, key) DO UPDATE SET
            value = excluded.value,
            updated_at = excluded.updated_at
    `
	if _, err := s.db.ExecContext(ctx, query, session, key, string(data), time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}

func (s *SQLiteStorage) get(ctx context.Context, session, key string, dst any) error {
	var raw string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM slots WHERE session_id = ? AND key = ?`,
		session, key,
	).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", key, err)
	}

	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return &ReadError{Session: session, Key: key, Err: err}
	}
	return nil
}
