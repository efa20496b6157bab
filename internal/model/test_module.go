package model

import (
	"time"

	"github.com/google/uuid"
)

// TestModule is a named, timed, scored collection of question references.
type TestModule struct {
	ID              uuid.UUID   `json:"id"`
	Title           string      `json:"title"`
	Description     *string     `json:"description,omitempty"`
	QuestionIDs     []uuid.UUID `json:"questions,omitempty"`
	QuestionCount   int         `json:"question_count"`
	DurationMinutes int         `json:"duration_minutes"`
	PassingScore    int         `json:"passing_score"`
	IsActive        bool        `json:"is_active"`
	CreatedBy       uuid.UUID   `json:"created_by"`
	CreatedByName   string      `json:"created_by_name,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
}

// DefaultPassingScore is applied when a module is created without an
// explicit threshold.
const DefaultPassingScore = 50

// SaveTestModuleRequest is the payload for creating or updating a module.
// The catalog invariants (at least one question, positive duration) are
// expressed directly as binding rules.
type SaveTestModuleRequest struct {
	Title           string      `json:"title" binding:"required,min=1,max=200"`
	Description     *string     `json:"description" binding:"omitempty,max=2000"`
	Questions       []uuid.UUID `json:"questions" binding:"required,min=1"`
	DurationMinutes int         `json:"duration_minutes" binding:"required,gt=0"`
	PassingScore    *int        `json:"passing_score" binding:"omitempty,min=0,max=100"`
	IsActive        *bool       `json:"is_active"`
}

// AvailableTest is a module as shown to an approved user, stripped of its
// question list and flagged with the user's attempt status.
type AvailableTest struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	Description     *string   `json:"description,omitempty"`
	QuestionCount   int       `json:"question_count"`
	DurationMinutes int       `json:"duration_minutes"`
	PassingScore    int       `json:"passing_score"`
	CreatedByName   string    `json:"created_by_name,omitempty"`
	HasAttempted    bool      `json:"has_attempted"`
}
