package repository

import (
	"context"

	"github.com/folkadonis/proffessor/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// QuestionRepository handles question bank data access.
type QuestionRepository struct {
	pool *pgxpool.Pool
}

// NewQuestionRepository creates a new QuestionRepository.
func NewQuestionRepository(pool *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{pool: pool}
}

// Create inserts a new question.
func (r *QuestionRepository) Create(ctx context.Context, q *model.Question) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO questions (question_text, options, explanation, difficulty, category, created_by)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at`,
		q.QuestionText, q.Options, q.Explanation, q.Difficulty, q.Category, q.CreatedBy,
	).Scan(&q.ID, &q.CreatedAt)
}

// GetByID retrieves a question by id.
func (r *QuestionRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Question, error) {
	q := &model.Question{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, question_text, options, explanation, difficulty, category, created_by, created_at
		 FROM questions WHERE id = $1`, id,
	).Scan(&q.ID, &q.QuestionText, &q.Options, &q.Explanation, &q.Difficulty,
		&q.Category, &q.CreatedBy, &q.CreatedAt)
	if err != nil {
		return nil, err
	}
	return q, nil
}

// List retrieves the full question bank with creator names, newest first.
func (r *QuestionRepository) List(ctx context.Context) ([]model.Question, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT q.id, q.question_text, q.options, q.explanation, q.difficulty,
		        q.category, q.created_by, u.name, q.created_at
		 FROM questions q
		 JOIN users u ON u.id = q.created_by
		 ORDER BY q.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []model.Question
	for rows.Next() {
		var q model.Question
		if err := rows.Scan(&q.ID, &q.QuestionText, &q.Options, &q.Explanation,
			&q.Difficulty, &q.Category, &q.CreatedBy, &q.CreatedByName, &q.CreatedAt); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

// GetByIDs retrieves questions for a set of ids. Ids that no longer exist
// in the bank are simply absent from the result; the scoring engine treats
// their slots as incorrect.
func (r *QuestionRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Question, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, question_text, options, explanation, difficulty, category, created_by, created_at
		 FROM questions WHERE id = ANY($1)`, ids)
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

// Update overwrites a question in place. Returns pgx.ErrNoRows when the id
// is unknown.
func (r *QuestionRepository) Update(ctx context.Context, q *model.Question) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE questions
		 SET question_text = $1, options = $2, explanation = $3, difficulty = $4, category = $5
		 WHERE id = $6`,
		q.QuestionText, q.Options, q.Explanation, q.Difficulty, q.Category, q.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Delete removes a question. The module_questions FK cascade pulls the
// reference out of every test module that lists it.
func (r *QuestionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM questions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
