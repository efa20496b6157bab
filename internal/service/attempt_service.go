package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/folkadonis/proffessor/internal/model"
	"github.com/folkadonis/proffessor/internal/repository"
	"github.com/folkadonis/proffessor/internal/scoring"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// Attempt lifecycle errors surfaced to handlers.
var (
	ErrTestNotAvailable  = errors.New("test not found or inactive")
	ErrAlreadyCompleted  = errors.New("test already completed")
	ErrAttemptNotFound   = errors.New("test attempt not found")
	ErrAttemptCompleted  = errors.New("test attempt already completed")
	ErrQuestionNotInTest = errors.New("question not found in this test")
	ErrResultNotReady    = errors.New("test attempt not submitted yet")
)

// InProgressError rejects a duplicate start while carrying the existing
// attempt id so the client can resume instead.
type InProgressError struct {
	AttemptID uuid.UUID
}

func (e *InProgressError) Error() string {
	return "test already in progress"
}

// AttemptService drives the attempt state machine: not-started →
// in-progress → completed, with completion as the terminal state.
type AttemptService struct {
	attemptRepo  *repository.AttemptRepository
	moduleRepo   *repository.ModuleRepository
	questionRepo *repository.QuestionRepository
	log          zerolog.Logger
}

// NewAttemptService creates a new AttemptService.
func NewAttemptService(
	attemptRepo *repository.AttemptRepository,
	moduleRepo *repository.ModuleRepository,
	questionRepo *repository.QuestionRepository,
	log zerolog.Logger,
) *AttemptService {
	return &AttemptService{
		attemptRepo:  attemptRepo,
		moduleRepo:   moduleRepo,
		questionRepo: questionRepo,
		log:          log.With().Str("component", "attempt_service").Logger(),
	}
}

// Start creates an in-progress attempt with one unselected slot per module
// question and returns the sanitized paper. An existing in-progress attempt
// yields an InProgressError carrying its id; a completed attempt blocks
// re-attempts permanently.
func (s *AttemptService) Start(ctx context.Context, userID, moduleID uuid.UUID) (*model.StartedTest, error) {
	existing, err := s.attemptRepo.GetInProgress(ctx, userID, moduleID)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("check in-progress attempt: %w", err)
	}
	if existing != nil {
		return nil, &InProgressError{AttemptID: existing.ID}
	}

	completed, err := s.attemptRepo.HasCompleted(ctx, userID, moduleID)
	if err != nil {
		return nil, fmt.Errorf("check completed attempt: %w", err)
	}
	if completed {
		return nil, ErrAlreadyCompleted
	}

	module, err := s.moduleRepo.GetByID(ctx, moduleID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTestNotAvailable
		}
		return nil, fmt.Errorf("get module: %w", err)
	}
	if !module.IsActive {
		return nil, ErrTestNotAvailable
	}

	questions, err := s.moduleRepo.GetQuestions(ctx, moduleID)
	if err != nil {
		return nil, fmt.Errorf("get module questions: %w", err)
	}
	if len(questions) == 0 {
		return nil, ErrTestNotAvailable
	}

	attempt := &model.TestAttempt{
		UserID:   userID,
		ModuleID: moduleID,
		Answers:  make([]model.AnswerSlot, len(questions)),
	}
	for i, q := range questions {
		attempt.Answers[i] = model.AnswerSlot{QuestionID: q.ID, Position: i}
	}

	if err := s.attemptRepo.Create(ctx, attempt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Lost a concurrent start race; resolve to the winner's attempt.
			winner, fetchErr := s.attemptRepo.GetInProgress(ctx, userID, moduleID)
			if fetchErr != nil {
				return nil, fmt.Errorf("concurrent start detected, fetch failed: %w", fetchErr)
			}
			return nil, &InProgressError{AttemptID: winner.ID}
		}
		return nil, fmt.Errorf("create attempt: %w", err)
	}

	s.log.Info().
		Str("attempt_id", attempt.ID.String()).
		Str("module_id", moduleID.String()).
		Int("questions", len(questions)).
		Msg("Attempt started")

	return &model.StartedTest{
		AttemptID: attempt.ID,
		Test:      buildPaper(module, questions, nil),
		StartedAt: attempt.StartedAt,
	}, nil
}

// Resume returns the paper of an in-progress attempt with the user's
// current selections filled in.
func (s *AttemptService) Resume(ctx context.Context, userID, attemptID uuid.UUID) (*model.StartedTest, error) {
	attempt, err := s.getOwned(ctx, userID, attemptID)
	if err != nil {
		return nil, err
	}
	if attempt.IsCompleted {
		return nil, ErrAttemptCompleted
	}

	module, err := s.moduleRepo.GetByID(ctx, attempt.ModuleID)
	if err != nil {
		return nil, fmt.Errorf("get module: %w", err)
	}
	questions, err := s.moduleRepo.GetQuestions(ctx, attempt.ModuleID)
	if err != nil {
		return nil, fmt.Errorf("get module questions: %w", err)
	}

	selections := make(map[uuid.UUID]*int, len(attempt.Answers))
	for _, slot := range attempt.Answers {
		selections[slot.QuestionID] = slot.SelectedOption
	}

	return &model.StartedTest{
		AttemptID: attempt.ID,
		Test:      buildPaper(module, questions, selections),
		StartedAt: attempt.StartedAt,
	}, nil
}

// Answer overwrites the selected option of one slot while the attempt is in
// progress. Selections may be changed any number of times before submit.
func (s *AttemptService) Answer(ctx context.Context, userID, attemptID uuid.UUID, req *model.AnswerRequest) error {
	attempt, err := s.getOwned(ctx, userID, attemptID)
	if err != nil {
		return err
	}
	if attempt.IsCompleted {
		return ErrAttemptCompleted
	}

	if err := s.attemptRepo.SaveSelection(ctx, attemptID, req.QuestionID, *req.SelectedOption); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrQuestionNotInTest
		}
		return fmt.Errorf("save selection: %w", err)
	}
	return nil
}

// Submit grades the attempt and transitions it to completed. The
// transition is one-way; a second submit is rejected.
func (s *AttemptService) Submit(ctx context.Context, userID, attemptID uuid.UUID) (*model.SubmitResult, error) {
	attempt, err := s.getOwned(ctx, userID, attemptID)
	if err != nil {
		return nil, err
	}
	if attempt.IsCompleted {
		return nil, ErrAttemptCompleted
	}

	module, err := s.moduleRepo.GetByID(ctx, attempt.ModuleID)
	if err != nil {
		return nil, fmt.Errorf("get module: %w", err)
	}

	answerKey, err := s.answerKey(ctx, attempt.Answers)
	if err != nil {
		return nil, err
	}

	slots := make([]scoring.Slot, len(attempt.Answers))
	for i, a := range attempt.Answers {
		slots[i] = scoring.Slot{QuestionID: a.QuestionID, SelectedOption: a.SelectedOption}
	}

	result := scoring.Grade(slots, answerKey, module.PassingScore)

	attempt.Score = result.Score
	attempt.Percentage = result.Percentage
	attempt.IsPassed = result.IsPassed
	for i := range attempt.Answers {
		attempt.Answers[i].IsCorrect = result.Correct[i]
	}

	if err := s.attemptRepo.Finalize(ctx, attempt, time.Now()); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAttemptCompleted
		}
		return nil, fmt.Errorf("finalize attempt: %w", err)
	}

	s.log.Info().
		Str("attempt_id", attempt.ID.String()).
		Int("score", result.Score).
		Int("percentage", result.Percentage).
		Bool("passed", result.IsPassed).
		Msg("Attempt submitted")

	return &model.SubmitResult{
		Score:          result.Score,
		TotalQuestions: len(attempt.Answers),
		Percentage:     result.Percentage,
		IsPassed:       result.IsPassed,
		PassingScore:   module.PassingScore,
	}, nil
}

// Result reconstructs the per-question detail of a completed attempt by
// joining its slots against the question bank. Slots whose question has
// been deleted since submission are marked rather than dropped.
func (s *AttemptService) Result(ctx context.Context, userID, attemptID uuid.UUID) (*model.AttemptResult, error) {
	attempt, err := s.getOwned(ctx, userID, attemptID)
	if err != nil {
		return nil, err
	}
	if !attempt.IsCompleted {
		return nil, ErrResultNotReady
	}

	module, err := s.moduleRepo.GetByID(ctx, attempt.ModuleID)
	if err != nil {
		return nil, fmt.Errorf("get module: %w", err)
	}

	ids := make([]uuid.UUID, len(attempt.Answers))
	for i, a := range attempt.Answers {
		ids[i] = a.QuestionID
	}
	questions, err := s.questionRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("get questions: %w", err)
	}
	byID := make(map[uuid.UUID]*model.Question, len(questions))
	for i := range questions {
		byID[questions[i].ID] = &questions[i]
	}

	details := make([]model.AnswerDetail, len(attempt.Answers))
	for i, slot := range attempt.Answers {
		detail := model.AnswerDetail{
			QuestionID:     slot.QuestionID,
			SelectedOption: slot.SelectedOption,
			IsCorrect:      slot.IsCorrect,
		}
		if q, ok := byID[slot.QuestionID]; ok {
			detail.QuestionText = q.QuestionText
			detail.Options = q.Options
			detail.Explanation = q.Explanation
		} else {
			detail.QuestionDeleted = true
		}
		details[i] = detail
	}

	return &model.AttemptResult{
		AttemptID:       attempt.ID,
		TestTitle:       module.Title,
		TestDescription: module.Description,
		Score:           attempt.Score,
		TotalQuestions:  len(attempt.Answers),
		Percentage:      attempt.Percentage,
		IsPassed:        attempt.IsPassed,
		PassingScore:    module.PassingScore,
		CompletedAt:     *attempt.CompletedAt,
		ElapsedMinutes:  scoring.ElapsedMinutes(attempt.StartedAt, *attempt.CompletedAt),
		Answers:         details,
	}, nil
}

// getOwned loads an attempt scoped to its owner. Foreign or unknown ids
// both come back as ErrAttemptNotFound.
func (s *AttemptService) getOwned(ctx context.Context, userID, attemptID uuid.UUID) (*model.TestAttempt, error) {
	attempt, err := s.attemptRepo.GetByIDForUser(ctx, attemptID, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAttemptNotFound
		}
		return nil, fmt.Errorf("get attempt: %w", err)
	}
	return attempt, nil
}

// answerKey fetches the current correctness flags for the attempt's
// questions. Questions deleted from the bank are absent from the key.
func (s *AttemptService) answerKey(ctx context.Context, slots []model.AnswerSlot) (map[uuid.UUID][]bool, error) {
	ids := make([]uuid.UUID, len(slots))
	for i, slot := range slots {
		ids[i] = slot.QuestionID
	}

	questions, err := s.questionRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("get questions: %w", err)
	}

	key := make(map[uuid.UUID][]bool, len(questions))
	for i := range questions {
		key[questions[i].ID] = questions[i].CorrectFlags()
	}
	return key, nil
}

func buildPaper(module *model.TestModule, questions []model.Question, selections map[uuid.UUID]*int) model.TestPaper {
	paper := model.TestPaper{
		ID:              module.ID,
		Title:           module.Title,
		Description:     module.Description,
		DurationMinutes: module.DurationMinutes,
		Questions:       make([]model.PaperQuestion, len(questions)),
	}
	for i, q := range questions {
		options := make([]model.PaperOption, len(q.Options))
		for j, opt := range q.Options {
			options[j] = model.PaperOption{Text: opt.Text}
		}
		pq := model.PaperQuestion{
			ID:           q.ID,
			QuestionText: q.QuestionText,
			Options:      options,
			Difficulty:   q.Difficulty,
			Category:     q.Category,
		}
		if selections != nil {
			pq.SelectedOption = selections[q.ID]
		}
		paper.Questions[i] = pq
	}
	return paper
}
