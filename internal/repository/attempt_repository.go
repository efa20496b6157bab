package repository

import (
	"context"
	"time"

	"github.com/folkadonis/proffessor/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AttemptRepository handles attempt tracker data access.
type AttemptRepository struct {
	pool *pgxpool.Pool
}

// NewAttemptRepository creates a new AttemptRepository.
func NewAttemptRepository(pool *pgxpool.Pool) *AttemptRepository {
	return &AttemptRepository{pool: pool}
}

const attemptColumns = `id, user_id, module_id, score, percentage, is_passed, started_at, completed_at, is_completed`

func scanAttempt(row pgx.Row) (*model.TestAttempt, error) {
	a := &model.TestAttempt{}
	err := row.Scan(&a.ID, &a.UserID, &a.ModuleID, &a.Score, &a.Percentage,
		&a.IsPassed, &a.StartedAt, &a.CompletedAt, &a.IsCompleted)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// Create inserts an attempt and its answer slots in one transaction. The
// partial unique index on (user_id, module_id) WHERE NOT is_completed makes
// concurrent starts race to a single row; the loser gets pgx.ErrNoRows and
// should refetch the winner's attempt.
func (r *AttemptRepository) Create(ctx context.Context, a *model.TestAttempt) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO test_attempts (user_id, module_id)
		 VALUES ($1, $2)
		 ON CONFLICT (user_id, module_id) WHERE NOT is_completed DO NOTHING
		 RETURNING id, started_at`,
		a.UserID, a.ModuleID,
	).Scan(&a.ID, &a.StartedAt)
	if err != nil {
		return err // pgx.ErrNoRows on a concurrent duplicate start
	}

	for _, slot := range a.Answers {
		if _, err := tx.Exec(ctx,
			`INSERT INTO attempt_answers (attempt_id, question_id, position, selected_option)
			 VALUES ($1, $2, $3, $4)`,
			a.ID, slot.QuestionID, slot.Position, slot.SelectedOption); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// GetInProgress retrieves the user's non-completed attempt for a module.
func (r *AttemptRepository) GetInProgress(ctx context.Context, userID, moduleID uuid.UUID) (*model.TestAttempt, error) {
	return scanAttempt(r.pool.QueryRow(ctx,
		`SELECT `+attemptColumns+` FROM test_attempts
		 WHERE user_id = $1 AND module_id = $2 AND NOT is_completed`,
		userID, moduleID))
}

// HasCompleted reports whether the user already completed this module.
func (r *AttemptRepository) HasCompleted(ctx context.Context, userID, moduleID uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (
		    SELECT 1 FROM test_attempts
		    WHERE user_id = $1 AND module_id = $2 AND is_completed
		 )`, userID, moduleID).Scan(&exists)
	return exists, err
}

// GetByIDForUser retrieves an attempt scoped to its owner, with answer
// slots loaded in position order.
func (r *AttemptRepository) GetByIDForUser(ctx context.Context, attemptID, userID uuid.UUID) (*model.TestAttempt, error) {
	a, err := scanAttempt(r.pool.QueryRow(ctx,
		`SELECT `+attemptColumns+` FROM test_attempts
		 WHERE id = $1 AND user_id = $2`, attemptID, userID))
	if err != nil {
		return nil, err
	}

	a.Answers, err = r.getAnswers(ctx, a.ID)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *AttemptRepository) getAnswers(ctx context.Context, attemptID uuid.UUID) ([]model.AnswerSlot, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT question_id, position, selected_option, is_correct
		 FROM attempt_answers WHERE attempt_id = $1
		 ORDER BY position`, attemptID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var slots []model.AnswerSlot
	for rows.Next() {
		var s model.AnswerSlot
		if err := rows.Scan(&s.QuestionID, &s.Position, &s.SelectedOption, &s.IsCorrect); err != nil {
			return nil, err
		}
		slots = append(slots, s)
	}
	return slots, rows.Err()
}

// SaveSelection overwrites the selected option of one answer slot. Returns
// pgx.ErrNoRows when the question has no slot in this attempt.
func (r *AttemptRepository) SaveSelection(ctx context.Context, attemptID, questionID uuid.UUID, selected int) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE attempt_answers SET selected_option = $1
		 WHERE attempt_id = $2 AND question_id = $3`,
		selected, attemptID, questionID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Finalize writes the scoring outcome and flips the attempt to completed in
// one transaction. The WHERE NOT is_completed guard makes the transition
// one-way; a second submit finds no row to update and gets pgx.ErrNoRows.
func (r *AttemptRepository) Finalize(ctx context.Context, a *model.TestAttempt, completedAt time.Time) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`UPDATE test_attempts
		 SET score = $1, percentage = $2, is_passed = $3, is_completed = TRUE, completed_at = $4
		 WHERE id = $5 AND NOT is_completed`,
		a.Score, a.Percentage, a.IsPassed, completedAt, a.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	for _, slot := range a.Answers {
		if _, err := tx.Exec(ctx,
			`UPDATE attempt_answers SET is_correct = $1
			 WHERE attempt_id = $2 AND question_id = $3`,
			slot.IsCorrect, a.ID, slot.QuestionID); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// CompletedModuleIDs returns the ids of modules the user has completed.
// Used to flag the available-tests listing.
func (r *AttemptRepository) CompletedModuleIDs(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]bool, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT module_id FROM test_attempts WHERE user_id = $1 AND is_completed`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	completed := make(map[uuid.UUID]bool)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		completed[id] = true
	}
	return completed, rows.Err()
}
