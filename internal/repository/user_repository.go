package repository

import (
	"context"

	"github.com/folkadonis/proffessor/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UserRepository handles account data access.
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = `id, name, email, password_hash, role, is_approved, is_active, created_at`

func scanUser(row pgx.Row) (*model.User, error) {
	u := &model.User{}
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role,
		&u.IsApproved, &u.IsActive, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// Create inserts a new user. A duplicate email surfaces as a unique
// violation the caller can detect with IsUniqueViolation.
func (r *UserRepository) Create(ctx context.Context, u *model.User) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO users (name, email, password_hash, role, is_approved, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at`,
		u.Name, u.Email, u.PasswordHash, u.Role, u.IsApproved, u.IsActive,
	).Scan(&u.ID, &u.CreatedAt)
}

// GetByEmail retrieves a user by email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

// GetByID retrieves a user by id.
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

// ListUsers retrieves all non-admin accounts, newest first. With
// onlyPending it narrows to accounts still awaiting approval.
func (r *UserRepository) ListUsers(ctx context.Context, onlyPending bool) ([]model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE role = 'user'`
	if onlyPending {
		query += ` AND NOT is_approved`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role,
			&u.IsApproved, &u.IsActive, &u.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// Approve flips the approval gate for a user. Returns pgx.ErrNoRows when
// the id is unknown.
func (r *UserRepository) Approve(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return scanUser(r.pool.QueryRow(ctx,
		`UPDATE users SET is_approved = TRUE WHERE id = $1
		 RETURNING `+userColumns, id))
}

// ToggleActive flips a user's activation flag and returns the updated row.
func (r *UserRepository) ToggleActive(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return scanUser(r.pool.QueryRow(ctx,
		`UPDATE users SET is_active = NOT is_active WHERE id = $1
		 RETURNING `+userColumns, id))
}

// Delete removes a user account. Only 'user' rows are deletable; admin
// accounts own questions and modules through created_by and are not part
// of the managed-user surface, so an admin id reports pgx.ErrNoRows.
func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1 AND role = 'user'`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
