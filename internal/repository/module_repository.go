package repository

import (
	"context"

	"github.com/folkadonis/proffessor/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ModuleRepository handles test module catalog data access.
type ModuleRepository struct {
	pool *pgxpool.Pool
}

// NewModuleRepository creates a new ModuleRepository.
func NewModuleRepository(pool *pgxpool.Pool) *ModuleRepository {
	return &ModuleRepository{pool: pool}
}

// Create inserts a module and its ordered question references in one
// transaction.
func (r *ModuleRepository) Create(ctx context.Context, m *model.TestModule) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO test_modules (title, description, duration_minutes, passing_score, is_active, created_by)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at`,
		m.Title, m.Description, m.DurationMinutes, m.PassingScore, m.IsActive, m.CreatedBy,
	).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return err
	}

	if err := insertQuestionRefs(ctx, tx, m.ID, m.QuestionIDs); err != nil {
		return err
	}

	m.QuestionCount = len(m.QuestionIDs)
	return tx.Commit(ctx)
}

// Update overwrites a module's fields and replaces its question list in one
// transaction. Returns pgx.ErrNoRows when the id is unknown.
func (r *ModuleRepository) Update(ctx context.Context, m *model.TestModule) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`UPDATE test_modules
		 SET title = $1, description = $2, duration_minutes = $3, passing_score = $4, is_active = $5
		 WHERE id = $6`,
		m.Title, m.Description, m.DurationMinutes, m.PassingScore, m.IsActive, m.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}

	if _, err := tx.Exec(ctx, `DELETE FROM module_questions WHERE module_id = $1`, m.ID); err != nil {
		return err
	}
	if err := insertQuestionRefs(ctx, tx, m.ID, m.QuestionIDs); err != nil {
		return err
	}

	m.QuestionCount = len(m.QuestionIDs)
	return tx.Commit(ctx)
}

func insertQuestionRefs(ctx context.Context, tx pgx.Tx, moduleID uuid.UUID, questionIDs []uuid.UUID) error {
	for i, qID := range questionIDs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO module_questions (module_id, question_id, position) VALUES ($1, $2, $3)`,
			moduleID, qID, i); err != nil {
			return err
		}
	}
	return nil
}

const moduleSelect = `
	SELECT m.id, m.title, m.description, m.duration_minutes, m.passing_score,
	       m.is_active, m.created_by, u.name, m.created_at,
	       COALESCE(ARRAY(
	           SELECT mq.question_id FROM module_questions mq
	           WHERE mq.module_id = m.id ORDER BY mq.position
	       ), '{}')
	FROM test_modules m
	JOIN users u ON u.id = m.created_by`

func scanModule(row pgx.Row) (*model.TestModule, error) {
	m := &model.TestModule{}
	err := row.Scan(&m.ID, &m.Title, &m.Description, &m.DurationMinutes, &m.PassingScore,
		&m.IsActive, &m.CreatedBy, &m.CreatedByName, &m.CreatedAt, &m.QuestionIDs)
	if err != nil {
		return nil, err
	}
	m.QuestionCount = len(m.QuestionIDs)
	return m, nil
}

// GetByID retrieves a module with its ordered question id list.
func (r *ModuleRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.TestModule, error) {
	return scanModule(r.pool.QueryRow(ctx, moduleSelect+` WHERE m.id = $1`, id))
}

// List retrieves all modules, newest first.
func (r *ModuleRepository) List(ctx context.Context) ([]model.TestModule, error) {
	return r.list(ctx, moduleSelect+` ORDER BY m.created_at DESC`)
}

// ListActive retrieves modules visible to test takers.
func (r *ModuleRepository) ListActive(ctx context.Context) ([]model.TestModule, error) {
	return r.list(ctx, moduleSelect+` WHERE m.is_active ORDER BY m.created_at DESC`)
}

func (r *ModuleRepository) list(ctx context.Context, query string) ([]model.TestModule, error) {
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var modules []model.TestModule
	for rows.Next() {
		var m model.TestModule
		if err := rows.Scan(&m.ID, &m.Title, &m.Description, &m.DurationMinutes, &m.PassingScore,
			&m.IsActive, &m.CreatedBy, &m.CreatedByName, &m.CreatedAt, &m.QuestionIDs); err != nil {
			return nil, err
		}
		m.QuestionCount = len(m.QuestionIDs)
		modules = append(modules, m)
	}
	return modules, rows.Err()
}

// GetQuestions retrieves a module's questions in list order.
func (r *ModuleRepository) GetQuestions(ctx context.Context, moduleID uuid.UUID) ([]model.Question, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT q.id, q.question_text, q.options, q.explanation, q.difficulty, q.category, q.created_by, q.created_at
		 FROM module_questions mq
		 JOIN questions q ON q.id = mq.question_id
		 WHERE mq.module_id = $1
		 ORDER BY mq.position`, moduleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []model.Question
	for rows.Next() {
		var q model.Question
		if err := rows.Scan(&q.ID, &q.QuestionText, &q.Options, &q.Explanation,
			&q.Difficulty, &q.Category, &q.CreatedBy, &q.CreatedAt); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

// Delete removes a module. Attempt history cascades away with it.
func (r *ModuleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM test_modules WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
