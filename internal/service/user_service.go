package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/folkadonis/proffessor/internal/model"
	"github.com/folkadonis/proffessor/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Account errors surfaced to handlers.
var (
	ErrEmailTaken      = errors.New("email already registered")
	ErrUserNotFound    = errors.New("user not found")
	ErrAccountDisabled = errors.New("account is deactivated")
)

// UserService handles account lifecycle: registration, authentication
// lookup, and the admin approval workflow.
type UserService struct {
	userRepo *repository.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// Register creates a new unapproved, active user account.
func (s *UserService) Register(ctx context.Context, name, email, passwordHash string) (*model.User, error) {
	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         model.RoleUser,
		IsApproved:   false,
		IsActive:     true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Authenticate looks up the account for a login. Password verification is
// the auth service's job; this enforces the activation gate.
func (s *UserService) Authenticate(ctx context.Context, email string) (*model.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	if !user.IsActive {
		return nil, ErrAccountDisabled
	}
	return user, nil
}

// GetByID retrieves a user by id.
func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

// ListUsers retrieves all non-admin accounts; with onlyPending it narrows
// to registrations awaiting approval.
func (s *UserService) ListUsers(ctx context.Context, onlyPending bool) ([]model.User, error) {
	return s.userRepo.ListUsers(ctx, onlyPending)
}

// Approve opens the test-taking gate for a user.
func (s *UserService) Approve(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.Approve(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("approve user: %w", err)
	}
	return user, nil
}

// Reject deletes a registration outright. Admin accounts are out of
// scope for the approval workflow and report not-found instead.
func (s *UserService) Reject(ctx context.Context, id uuid.UUID) error {
	if err := s.userRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrUserNotFound
		}
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

// ToggleActive flips a user's activation flag and returns the updated row.
func (s *UserService) ToggleActive(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.ToggleActive(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("toggle user status: %w", err)
	}
	return user, nil
}
