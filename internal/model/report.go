package model

import (
	"time"

	"github.com/google/uuid"
)

// ReportRow is one flat line of the completed-attempt report, shaped for
// both dashboard tables and client-side delimited-text export.
type ReportRow struct {
	AttemptID        uuid.UUID `json:"attempt_id"`
	UserName         string    `json:"user_name,omitempty"`
	UserEmail        string    `json:"user_email,omitempty"`
	TestTitle        string    `json:"test_title"`
	TestDescription  *string   `json:"test_description,omitempty"`
	Score            int       `json:"score"`
	TotalQuestions   int       `json:"total_questions"`
	Percentage       int       `json:"percentage"`
	IsPassed         bool      `json:"is_passed"`
	TimeTakenMinutes int       `json:"time_taken_minutes"`
	CompletedAt      time.Time `json:"completed_at"`
}

// UserStats summarizes a single user's completed attempts.
type UserStats struct {
	TotalTests   int `json:"total_tests"`
	PassedTests  int `json:"passed_tests"`
	FailedTests  int `json:"failed_tests"`
	AverageScore int `json:"average_score"`
}

// DashboardStats are the admin dashboard counter cards.
type DashboardStats struct {
	TotalUsers     int `json:"total_users"`
	PendingUsers   int `json:"pending_users"`
	TotalQuestions int `json:"total_questions"`
	TotalTests     int `json:"total_tests"`
	TotalAttempts  int `json:"total_attempts"`
}

// PlatformStatistics is the detailed statistics view for admins.
type PlatformStatistics struct {
	TotalUsers     int     `json:"total_users"`
	ActiveUsers    int     `json:"active_users"`
	TotalTests     int     `json:"total_tests"`
	TotalAttempts  int     `json:"total_attempts"`
	PassedAttempts int     `json:"passed_attempts"`
	PassRate       float64 `json:"pass_rate"`
}
