package planner

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrGenerationInProgress is returned while a session already has an AI call outstanding.
	ErrGenerationInProgress = errors.New("a request for this session is already in progress")
	// ErrNoProfile is returned when a session has no readable saved profile.
	ErrNoProfile = errors.New("no user profile saved")
	// ErrNoPlan is returned when a session has no readable current meal plan.
	ErrNoPlan = errors.New("no meal plan found")
)

// ValidationError carries field-level messages for bad user input.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

func (e *ValidationError) add(field, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	e.Fields[field] = msg
}

func (e *ValidationError) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

// GenerationError means the AI call itself failed. The user retries manually.
type GenerationError struct {
	Op  string
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// NewGenerationError wraps err as a failed AI operation.
func NewGenerationError(op string, err error) error {
	return &GenerationError{Op: op, Err: err}
}

// EmptyPlanError means the response carried no days.
type EmptyPlanError struct{}

func (e *EmptyPlanError) Error() string {
	return "AI returned an empty or invalid meal plan (no days)"
}

// MalformedStructureError means a required container is missing or mistyped.
type MalformedStructureError struct {
	Path   string
	Reason string
}

func (e *MalformedStructureError) Error() string {
	if e.Path == "" {
		return "malformed meal plan: " + e.Reason
	}
	return fmt.Sprintf("malformed meal plan at %s: %s", e.Path, e.Reason)
}

// NewMalformedStructureError builds a MalformedStructureError for path.
func NewMalformedStructureError(path, reason string) error {
	return &MalformedStructureError{Path: path, Reason: reason}
}

// IncompleteItemError describes an item missing required fields. It is
// collected in a Report and never aborts an operation.
type IncompleteItemError struct {
	Path    string
	Missing []string
}

func (e *IncompleteItemError) Error() string {
	return fmt.Sprintf("item %s is missing %s", e.Path, strings.Join(e.Missing, ", "))
}

// IsValidation reports whether err is a *ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// IsGeneration reports whether err is a *GenerationError.
func IsGeneration(err error) bool {
	var g *GenerationError
	return errors.As(err, &g)
}

// IsFatalStructure reports whether err is an EmptyPlanError or MalformedStructureError.
func IsFatalStructure(err error) bool {
	var empty *EmptyPlanError
	var malformed *MalformedStructureError
	return errors.As(err, &empty) || errors.As(err, &malformed)
}
