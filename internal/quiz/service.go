package quiz

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/calvora/studyforge/internal/mastery"
	"github.com/calvora/studyforge/internal/memory"
)

// ErrNotFound is returned by a Repo when no quiz exists for the ID.
var ErrNotFound = errors.New("quiz not found")

// Repo persists quiz documents.
type Repo interface {
	Get(ctx context.Context, id string) (*AdaptiveQuiz, error)
	Put(ctx context.Context, q *AdaptiveQuiz) error
	ListByCourse(ctx context.Context, userID, courseID string) ([]*AdaptiveQuiz, error)
}

// Service runs the quiz flow end to end: generation informed by mastery,
// grading, then mastery and journal updates.
type Service struct {
	repo      Repo
	generator *Generator
	mastery   *mastery.Service
	memory    *memory.Service
	logger    *zap.Logger
	now       func() time.Time
}

// NewService creates a quiz service. memorySvc may be nil when no journal
// is wired (journaling is advisory).
func NewService(repo Repo, generator *Generator, masterySvc *mastery.Service, memorySvc *memory.Service, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:      repo,
		generator: generator,
		mastery:   masterySvc,
		memory:    memorySvc,
		logger:    logger,
		now:       time.Now,
	}
}

// Generate creates and persists a quiz. When the input carries no mastery
// score, the learner's mastery record (if any) fills it in, along with
// their recorded weak areas as generation hints.
func (s *Service) Generate(ctx context.Context, input GenerateInput) (*AdaptiveQuiz, error) {
	if input.MasteryScore == nil && s.mastery != nil {
		m, err := s.mastery.Get(ctx, input.UserID, input.CourseID, input.Topic)
		switch {
		case errors.Is(err, mastery.ErrNotFound):
			// First quiz on this topic; difficulty defaults to easy.
		case err != nil:
			return nil, fmt.Errorf("load mastery: %w", err)
		default:
			score := m.MasteryScore
			input.MasteryScore = &score
			if len(input.WeakConcepts) == 0 {
				input.WeakConcepts = m.WeakAreas
			}
		}
	}

	q, err := s.generator.Generate(ctx, input)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Put(ctx, q); err != nil {
		return nil, fmt.Errorf("save quiz: %w", err)
	}

	s.logger.Info("quiz generated",
		zap.String("quiz_id", q.ID),
		zap.String("topic", q.Topic),
		zap.String("difficulty", string(q.Difficulty)),
		zap.Int("questions", len(q.Questions)),
	)
	return q, nil
}

// SubmitAttempt grades a submission against the stored quiz, persists the
// attempt, folds the result into topic mastery, and journals the outcome.
func (s *Service) SubmitAttempt(ctx context.Context, quizID string, startedAt, completedAt time.Time, answers []int) (*Attempt, error) {
	q, err := s.repo.Get(ctx, quizID)
	if err != nil {
		return nil, err
	}

	attempt, err := q.RecordAttempt(startedAt, completedAt, answers)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Put(ctx, q); err != nil {
		return nil, fmt.Errorf("save attempt: %w", err)
	}

	missed := missedConcepts(q, attempt)

	if s.mastery != nil {
		if _, err := s.mastery.RecordQuizResult(ctx, q.UserID, q.CourseID, q.Topic, attempt.PercentageScore, string(q.Difficulty), attempt.TimeSpent(), missed...); err != nil {
			return nil, fmt.Errorf("update mastery: %w", err)
		}
	}

	if s.memory != nil {
		outcome := memory.QuizOutcome{
			QuizID:     q.ID,
			Topic:      q.Topic,
			Score:      attempt.Score,
			Percentage: attempt.PercentageScore,
			Difficulty: string(q.Difficulty),
			Passed:     attempt.Passed,
			Timestamp:  s.now(),
		}
		if err := s.memory.LogQuizOutcome(ctx, q.UserID, q.CourseID, outcome, missed); err != nil {
			// The journal is advisory; a failed write must not lose the
			// graded attempt.
			s.logger.Warn("failed to journal quiz outcome", zap.String("quiz_id", q.ID), zap.Error(err))
		}
	}

	return attempt, nil
}

// Get loads one quiz.
func (s *Service) Get(ctx context.Context, quizID string) (*AdaptiveQuiz, error) {
	return s.repo.Get(ctx, quizID)
}

// missedConcepts collects the concept tags of questions answered
// incorrectly in this attempt.
func missedConcepts(q *AdaptiveQuiz, attempt *Attempt) []string {
	seen := make(map[string]bool)
	var out []string
	for _, ans := range attempt.Answers {
		if ans.Correct || ans.QuestionIndex >= len(q.Questions) {
			continue
		}
		for _, concept := range q.Questions[ans.QuestionIndex].Concepts {
			if !seen[concept] {
				seen[concept] = true
				out = append(out, concept)
			}
		}
	}
	return out
}
