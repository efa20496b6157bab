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

// Module catalog errors surfaced to handlers.
var (
	ErrModuleNotFound  = errors.New("test module not found")
	ErrUnknownQuestion = errors.New("module references an unknown question")
)

// ModuleService handles test module catalog business logic.
type ModuleService struct {
	moduleRepo  *repository.ModuleRepository
	attemptRepo *repository.AttemptRepository
}

// NewModuleService creates a new ModuleService.
func NewModuleService(moduleRepo *repository.ModuleRepository, attemptRepo *repository.AttemptRepository) *ModuleService {
	return &ModuleService{moduleRepo: moduleRepo, attemptRepo: attemptRepo}
}

// Create inserts a new module. The ≥1 question and duration > 0 invariants
// are enforced at binding time.
func (s *ModuleService) Create(ctx context.Context, adminID uuid.UUID, req *model.SaveTestModuleRequest) (*model.TestModule, error) {
	module := &model.TestModule{
		Title:           req.Title,
		Description:     req.Description,
		QuestionIDs:     req.Questions,
		DurationMinutes: req.DurationMinutes,
		PassingScore:    model.DefaultPassingScore,
		IsActive:        true,
		CreatedBy:       adminID,
	}
	if req.PassingScore != nil {
		module.PassingScore = *req.PassingScore
	}
	if req.IsActive != nil {
		module.IsActive = *req.IsActive
	}

	if err := s.moduleRepo.Create(ctx, module); err != nil {
		if repository.IsForeignKeyViolation(err) {
			return nil, ErrUnknownQuestion
		}
		return nil, fmt.Errorf("create module: %w", err)
	}
	return module, nil
}

// Update overwrites a module and replaces its question list.
func (s *ModuleService) Update(ctx context.Context, id uuid.UUID, req *model.SaveTestModuleRequest) (*model.TestModule, error) {
	existing, err := s.moduleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrModuleNotFound
		}
		return nil, fmt.Errorf("get module: %w", err)
	}

	existing.Title = req.Title
	existing.Description = req.Description
	existing.QuestionIDs = req.Questions
	existing.DurationMinutes = req.DurationMinutes
	if req.PassingScore != nil {
		existing.PassingScore = *req.PassingScore
	}
	if req.IsActive != nil {
		existing.IsActive = *req.IsActive
	}

	if err := s.moduleRepo.Update(ctx, existing); err != nil {
		if repository.IsForeignKeyViolation(err) {
			return nil, ErrUnknownQuestion
		}
		return nil, fmt.Errorf("update module: %w", err)
	}
	return existing, nil
}

// List retrieves the full catalog for admins.
func (s *ModuleService) List(ctx context.Context) ([]model.TestModule, error) {
	return s.moduleRepo.List(ctx)
}

// Delete removes a module along with its attempt history.
func (s *ModuleService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.moduleRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrModuleNotFound
		}
		return fmt.Errorf("delete module: %w", err)
	}
	return nil
}

// ListAvailable retrieves active modules for a test taker, each flagged
// with whether the user has already completed it.
func (s *ModuleService) ListAvailable(ctx context.Context, userID uuid.UUID) ([]model.AvailableTest, error) {
	modules, err := s.moduleRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list active modules: %w", err)
	}

	completed, err := s.attemptRepo.CompletedModuleIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list completed attempts: %w", err)
	}

	available := make([]model.AvailableTest, 0, len(modules))
	for _, m := range modules {
		available = append(available, model.AvailableTest{
			ID:              m.ID,
			Title:           m.Title,
			Description:     m.Description,
			QuestionCount:   m.QuestionCount,
			DurationMinutes: m.DurationMinutes,
			PassingScore:    m.PassingScore,
			CreatedByName:   m.CreatedByName,
			HasAttempted:    completed[m.ID],
		})
	}
	return available, nil
}
