package plan

import (
	"context"
	"fmt"
	"time"
)

// Repo persists LearningPlan documents keyed by (user, course).
type Repo interface {
	Get(ctx context.Context, userID, courseID string) (*LearningPlan, error)
	Put(ctx context.Context, p *LearningPlan) error
}

// Service manages plans through the persistence boundary.
type Service struct {
	repo Repo
	now  func() time.Time
}

// NewService creates a plan service.
func NewService(repo Repo) *Service {
	return &Service{repo: repo, now: time.Now}
}

// WithClock overrides the service clock, for tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Create builds and persists a fresh plan, one week per topic group.
// An existing plan for the key is overwritten.
func (s *Service) Create(ctx context.Context, userID, courseID string, topicGroups [][]string) (*LearningPlan, error) {
	if len(topicGroups) == 0 {
		return nil, fmt.Errorf("plan needs at least one topic group")
	}

	p := New(userID, courseID, topicGroups, s.now())
	if err := s.repo.Put(ctx, p); err != nil {
		return nil, fmt.Errorf("save plan: %w", err)
	}
	return p, nil
}

// Get returns the plan for (user, course), or ErrNotFound.
func (s *Service) Get(ctx context.Context, userID, courseID string) (*LearningPlan, error) {
	return s.repo.Get(ctx, userID, courseID)
}

// Save persists a mutated plan.
func (s *Service) Save(ctx context.Context, p *LearningPlan) error {
	if err := s.repo.Put(ctx, p); err != nil {
		return fmt.Errorf("save plan: %w", err)
	}
	return nil
}

// MarkWeekCompleted sets a week's status to completed and persists.
func (s *Service) MarkWeekCompleted(ctx context.Context, userID, courseID string, weekNumber int) (*LearningPlan, error) {
	p, err := s.repo.Get(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range p.Weeks {
		if p.Weeks[i].Number == weekNumber {
			p.Weeks[i].Status = StatusCompleted
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("week %d not in plan", weekNumber)
	}

	p.UpdatedAt = s.now()
	if err := s.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}
