package model

import (
	"time"

	"github.com/google/uuid"
)

// AnswerSlot is one answer record inside an attempt. A slot is created per
// module question when the attempt starts and keeps only the selected
// option index, not a snapshot of the option content.
type AnswerSlot struct {
	QuestionID     uuid.UUID `json:"question_id"`
	Position       int       `json:"position"`
	SelectedOption *int      `json:"selected_option"`
	IsCorrect      bool      `json:"is_correct"`
}

// TestAttempt is one user's single run through a test module.
// Lifecycle: created in progress, mutated by answer submissions, finalized
// exactly once by scoring. Completed attempts are immutable.
type TestAttempt struct {
	ID          uuid.UUID    `json:"id"`
	UserID      uuid.UUID    `json:"user_id"`
	ModuleID    uuid.UUID    `json:"module_id"`
	Answers     []AnswerSlot `json:"answers,omitempty"`
	Score       int          `json:"score"`
	Percentage  int          `json:"percentage"`
	IsPassed    bool         `json:"is_passed"`
	StartedAt   time.Time    `json:"started_at"`
	CompletedAt *time.Time   `json:"completed_at,omitempty"`
	IsCompleted bool         `json:"is_completed"`
}

// AnswerRequest records a selection for one question of an in-progress
// attempt. Repeated submissions for the same question overwrite.
type AnswerRequest struct {
	QuestionID     uuid.UUID `json:"question_id" binding:"required"`
	SelectedOption *int      `json:"selected_option" binding:"required,min=0"`
}

// PaperOption is an answer choice with the correctness flag stripped.
type PaperOption struct {
	Text string `json:"text"`
}

// PaperQuestion is a question as served to a test taker: no correctness
// flags, no explanation. SelectedOption carries the current selection when
// resuming an in-progress attempt.
type PaperQuestion struct {
	ID             uuid.UUID     `json:"id"`
	QuestionText   string        `json:"question_text"`
	Options        []PaperOption `json:"options"`
	Difficulty     Difficulty    `json:"difficulty"`
	Category       *string       `json:"category,omitempty"`
	SelectedOption *int          `json:"selected_option"`
}

// TestPaper bundles the module metadata with its sanitized questions.
type TestPaper struct {
	ID              uuid.UUID       `json:"id"`
	Title           string          `json:"title"`
	Description     *string         `json:"description,omitempty"`
	DurationMinutes int             `json:"duration_minutes"`
	Questions       []PaperQuestion `json:"questions"`
}

// StartedTest is the response to a successful start (or a resume view).
type StartedTest struct {
	AttemptID uuid.UUID `json:"attempt_id"`
	Test      TestPaper `json:"test"`
	StartedAt time.Time `json:"started_at"`
}

// SubmitResult is the scoring summary returned at submission time.
type SubmitResult struct {
	Score          int  `json:"score"`
	TotalQuestions int  `json:"total_questions"`
	Percentage     int  `json:"percentage"`
	IsPassed       bool `json:"is_passed"`
	PassingScore   int  `json:"passing_score"`
}

// AnswerDetail is the per-question breakdown in a completed result,
// reconstructed by joining answer slots against the question bank.
// QuestionDeleted marks slots whose bank entry no longer exists.
type AnswerDetail struct {
	QuestionID      uuid.UUID `json:"question_id"`
	QuestionText    string    `json:"question_text,omitempty"`
	Options         []Option  `json:"options,omitempty"`
	SelectedOption  *int      `json:"selected_option"`
	IsCorrect       bool      `json:"is_correct"`
	Explanation     *string   `json:"explanation,omitempty"`
	QuestionDeleted bool      `json:"question_deleted,omitempty"`
}

// AttemptResult is the read-only view of a completed attempt.
type AttemptResult struct {
	AttemptID       uuid.UUID      `json:"attempt_id"`
	TestTitle       string         `json:"test_title"`
	TestDescription *string        `json:"test_description,omitempty"`
	Score           int            `json:"score"`
	TotalQuestions  int            `json:"total_questions"`
	Percentage      int            `json:"percentage"`
	IsPassed        bool           `json:"is_passed"`
	PassingScore    int            `json:"passing_score"`
	CompletedAt     time.Time      `json:"completed_at"`
	ElapsedMinutes  int            `json:"elapsed_minutes"`
	Answers         []AnswerDetail `json:"answers"`
}
