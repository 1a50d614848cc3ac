package memory

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned by a Repo when no journal exists for the key.
var ErrNotFound = errors.New("learning memory not found")

// Repo persists LearningMemory documents keyed by (user, course).
type Repo interface {
	Get(ctx context.Context, userID, courseID string) (*LearningMemory, error)
	Put(ctx context.Context, m *LearningMemory) error
}

// Service wraps the journal with get-or-create and persistence.
type Service struct {
	repo Repo
	now  func() time.Time
}

// NewService creates a memory service.
func NewService(repo Repo) *Service {
	return &Service{repo: repo, now: time.Now}
}

// WithClock overrides the service clock, for tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Load returns the journal for (user, course), creating it lazily.
func (s *Service) Load(ctx context.Context, userID, courseID string) (*LearningMemory, error) {
	m, err := s.repo.Get(ctx, userID, courseID)
	switch {
	case errors.Is(err, ErrNotFound):
		return NewLearningMemory(userID, courseID, s.now()), nil
	case err != nil:
		return nil, fmt.Errorf("load learning memory: %w", err)
	}
	return m, nil
}

// Update loads the journal, applies mutate, and persists the result.
func (s *Service) Update(ctx context.Context, userID, courseID string, mutate func(*LearningMemory)) (*LearningMemory, error) {
	m, err := s.Load(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}

	mutate(m)

	if err := s.repo.Put(ctx, m); err != nil {
		return nil, fmt.Errorf("save learning memory: %w", err)
	}
	return m, nil
}

// LogQuizOutcome records a graded attempt and the mistakes it revealed.
// missedConcepts are the concept tags of incorrectly answered questions.
func (s *Service) LogQuizOutcome(ctx context.Context, userID, courseID string, outcome QuizOutcome, missedConcepts []string) error {
	_, err := s.Update(ctx, userID, courseID, func(m *LearningMemory) {
		m.LogQuiz(outcome)
		for _, concept := range missedConcepts {
			m.RecordMistake(outcome.Topic, concept, outcome.Timestamp)
		}
	})
	return err
}

// LogInteraction records one agent exchange.
func (s *Service) LogInteraction(ctx context.Context, userID, courseID, kind, query, response string) error {
	_, err := s.Update(ctx, userID, courseID, func(m *LearningMemory) {
		m.LogInteraction(kind, query, response, s.now())
	})
	return err
}
