package repository

import (
	"context"
	"time"

	"github.com/folkadonis/proffessor/internal/model"
	"github.com/folkadonis/proffessor/internal/scoring"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ReportRepository handles read-only aggregation over completed attempts.
type ReportRepository struct {
	pool *pgxpool.Pool
}

// NewReportRepository creates a new ReportRepository.
func NewReportRepository(pool *pgxpool.Pool) *ReportRepository {
	return &ReportRepository{pool: pool}
}

// Rows retrieves flat report rows over completed attempts, newest first.
// Pass a nil userID for the all-users (admin) scope.
func (r *ReportRepository) Rows(ctx context.Context, userID *uuid.UUID) ([]model.ReportRow, error) {
	query := `
		SELECT a.id, u.name, u.email, m.title, m.description,
		       a.score, a.percentage, a.is_passed, a.started_at, a.completed_at,
		       (SELECT COUNT(*) FROM attempt_answers aa WHERE aa.attempt_id = a.id)
		FROM test_attempts a
		JOIN users u ON u.id = a.user_id
		JOIN test_modules m ON m.id = a.module_id
		WHERE a.is_completed`
	args := []interface{}{}
	if userID != nil {
		query += ` AND a.user_id = $1`
		args = append(args, *userID)
	}
	query += ` ORDER BY a.completed_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []model.ReportRow
	for rows.Next() {
		var row model.ReportRow
		var startedAt, completedAt time.Time
		if err := rows.Scan(&row.AttemptID, &row.UserName, &row.UserEmail,
			&row.TestTitle, &row.TestDescription, &row.Score, &row.Percentage,
			&row.IsPassed, &startedAt, &completedAt, &row.TotalQuestions); err != nil {
			return nil, err
		}
		row.CompletedAt = completedAt
		row.TimeTakenMinutes = scoring.ElapsedMinutes(startedAt, completedAt)
		reports = append(reports, row)
	}
	return reports, rows.Err()
}

// UserStats aggregates one user's completed attempts.
func (r *ReportRepository) UserStats(ctx context.Context, userID uuid.UUID) (*model.UserStats, error) {
	stats := &model.UserStats{}
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*),
		        COUNT(*) FILTER (WHERE is_passed),
		        COALESCE(ROUND(AVG(percentage)), 0)
		 FROM test_attempts
		 WHERE user_id = $1 AND is_completed`, userID,
	).Scan(&stats.TotalTests, &stats.PassedTests, &stats.AverageScore)
	if err != nil {
		return nil, err
	}
	stats.FailedTests = stats.TotalTests - stats.PassedTests
	return stats, nil
}

// DashboardStats gathers the admin dashboard counters.
func (r *ReportRepository) DashboardStats(ctx context.Context) (*model.DashboardStats, error) {
	stats := &model.DashboardStats{}
	err := r.pool.QueryRow(ctx, `
		SELECT (SELECT COUNT(*) FROM users WHERE role = 'user'),
		       (SELECT COUNT(*) FROM users WHERE role = 'user' AND NOT is_approved),
		       (SELECT COUNT(*) FROM questions),
		       (SELECT COUNT(*) FROM test_modules),
		       (SELECT COUNT(*) FROM test_attempts)`,
	).Scan(&stats.TotalUsers, &stats.PendingUsers, &stats.TotalQuestions,
		&stats.TotalTests, &stats.TotalAttempts)
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// PlatformStatistics gathers the detailed admin statistics view.
func (r *ReportRepository) PlatformStatistics(ctx context.Context) (*model.PlatformStatistics, error) {
	stats := &model.PlatformStatistics{}
	err := r.pool.QueryRow(ctx, `
		SELECT (SELECT COUNT(*) FROM users WHERE role = 'user'),
		       (SELECT COUNT(*) FROM users WHERE role = 'user' AND is_active),
		       (SELECT COUNT(*) FROM test_modules),
		       (SELECT COUNT(*) FROM test_attempts WHERE is_completed),
		       (SELECT COUNT(*) FROM test_attempts WHERE is_completed AND is_passed)`,
	).Scan(&stats.TotalUsers, &stats.ActiveUsers, &stats.TotalTests,
		&stats.TotalAttempts, &stats.PassedAttempts)
	if err != nil {
		return nil, err
	}
	if stats.TotalAttempts > 0 {
		stats.PassRate = float64(stats.PassedAttempts) / float64(stats.TotalAttempts) * 100
	}
	return stats, nil
}
