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

// ErrQuestionNotFound is returned for unknown question ids.
var ErrQuestionNotFound = errors.New("question not found")

// QuestionService handles question bank business logic.
type QuestionService struct {
	questionRepo *repository.QuestionRepository
}

// NewQuestionService creates a new QuestionService.
func NewQuestionService(questionRepo *repository.QuestionRepository) *QuestionService {
	return &QuestionService{questionRepo: questionRepo}
}

// Create validates and inserts a new question. The option invariants
// surface as model.ErrTooFewOptions / model.ErrNoCorrectOption.
func (s *QuestionService) Create(ctx context.Context, adminID uuid.UUID, req *model.SaveQuestionRequest) (*model.Question, error) {
	if err := model.ValidateOptions(req.Options); err != nil {
		return nil, err
	}

	question := &model.Question{
		QuestionText: req.QuestionText,
		Options:      req.Options,
		Explanation:  req.Explanation,
		Difficulty:   difficultyOrDefault(req.Difficulty),
		Category:     req.Category,
		CreatedBy:    adminID,
	}

	if err := s.questionRepo.Create(ctx, question); err != nil {
		return nil, fmt.Errorf("create question: %w", err)
	}
	return question, nil
}

// Update validates and overwrites a question in place. Attempts already
// holding a selection keep only the option index, so edits change what that
// index means at scoring time.
func (s *QuestionService) Update(ctx context.Context, id uuid.UUID, req *model.SaveQuestionRequest) (*model.Question, error) {
	if err := model.ValidateOptions(req.Options); err != nil {
		return nil, err
	}

	question := &model.Question{
		ID:           id,
		QuestionText: req.QuestionText,
		Options:      req.Options,
		Explanation:  req.Explanation,
		Difficulty:   difficultyOrDefault(req.Difficulty),
		Category:     req.Category,
	}

	if err := s.questionRepo.Update(ctx, question); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrQuestionNotFound
		}
		return nil, fmt.Errorf("update question: %w", err)
	}
	return question, nil
}

// List retrieves the full question bank.
func (s *QuestionService) List(ctx context.Context) ([]model.Question, error) {
	return s.questionRepo.List(ctx)
}

// Delete removes a question; the reference cascade keeps module question
// lists free of dangling ids.
func (s *QuestionService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.questionRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrQuestionNotFound
		}
		return fmt.Errorf("delete question: %w", err)
	}
	return nil
}

func difficultyOrDefault(d string) model.Difficulty {
	if d == "" {
		return model.DifficultyMedium
	}
	return model.Difficulty(d)
}
