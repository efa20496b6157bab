package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Difficulty grades a question.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Option is a single answer choice. The full list is stored as JSONB so a
// question's choices travel as one document.
type Option struct {
	Text      string `json:"text" binding:"required"`
	IsCorrect bool   `json:"is_correct"`
}

// Question is a bank entry owned by an admin.
type Question struct {
	ID            uuid.UUID  `json:"id"`
	QuestionText  string     `json:"question_text"`
	Options       []Option   `json:"options"`
	Explanation   *string    `json:"explanation,omitempty"`
	Difficulty    Difficulty `json:"difficulty"`
	Category      *string    `json:"category,omitempty"`
	CreatedBy     uuid.UUID  `json:"created_by"`
	CreatedByName string     `json:"created_by_name,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// Question bank invariants.
var (
	ErrTooFewOptions   = errors.New("a question requires at least two options")
	ErrNoCorrectOption = errors.New("at least one option must be marked correct")
)

// ValidateOptions enforces the question bank invariants: at least two
// options, at least one of them marked correct.
func ValidateOptions(options []Option) error {
	if len(options) < 2 {
		return ErrTooFewOptions
	}
	for _, opt := range options {
		if opt.IsCorrect {
			return nil
		}
	}
	return ErrNoCorrectOption
}

// CorrectFlags returns the per-index correctness flags, the shape the
// scoring engine consumes.
func (q *Question) CorrectFlags() []bool {
	flags := make([]bool, len(q.Options))
	for i, opt := range q.Options {
		flags[i] = opt.IsCorrect
	}
	return flags
}

// SaveQuestionRequest is the payload for creating or updating a question.
type SaveQuestionRequest struct {
	QuestionText string   `json:"question_text" binding:"required,min=1,max=2000"`
	Options      []Option `json:"options" binding:"required,min=2,dive"`
	Explanation  *string  `json:"explanation" binding:"omitempty,max=2000"`
	Difficulty   string   `json:"difficulty" binding:"omitempty,oneof=easy medium hard"`
	Category     *string  `json:"category" binding:"omitempty,max=100"`
}
