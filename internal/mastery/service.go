package mastery

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"
)

// ErrNotFound is returned by a Repo when no record exists for the key.
var ErrNotFound = errors.New("mastery record not found")

// Repo persists TopicMastery records keyed by (user, course, topic).
type Repo interface {
	Get(ctx context.Context, userID, courseID, topic string) (*TopicMastery, error)
	Put(ctx context.Context, m *TopicMastery) error
	ListByCourse(ctx context.Context, userID, courseID string) ([]*TopicMastery, error)
}

// Service manages mastery records through the persistence boundary.
type Service struct {
	repo Repo
	now  func() time.Time
}

// NewService creates a mastery service.
func NewService(repo Repo) *Service {
	return &Service{repo: repo, now: time.Now}
}

// WithClock overrides the service clock, for tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// RecordQuizResult applies one quiz result to the topic's mastery record,
// creating the record lazily on first contact. score is the quiz
// percentage (0-100); timeSpent is the attempt duration; weakAreas are
// concept notes to add to the record's weak-area list. The updated
// record is persisted and returned.
func (s *Service) RecordQuizResult(ctx context.Context, userID, courseID, topic string, score int, difficulty string, timeSpent time.Duration, weakAreas ...string) (*TopicMastery, error) {
	if topic == "" {
		return nil, fmt.Errorf("topic is required")
	}
	if score < 0 || score > 100 {
		return nil, fmt.Errorf("quiz score %d out of range [0,100]", score)
	}

	m, err := s.repo.Get(ctx, userID, courseID, topic)
	switch {
	case errors.Is(err, ErrNotFound):
		m = New(userID, courseID, topic, s.now())
	case err != nil:
		return nil, fmt.Errorf("load mastery for %q: %w", topic, err)
	}

	m.RecordQuizResult(score, difficulty, timeSpent, s.now())
	for _, area := range weakAreas {
		m.AddWeakArea(area)
	}

	if err := s.repo.Put(ctx, m); err != nil {
		return nil, fmt.Errorf("save mastery for %q: %w", topic, err)
	}
	return m, nil
}

// Get returns the mastery record for a topic, or ErrNotFound when the
// learner has no history for it yet.
func (s *Service) Get(ctx context.Context, userID, courseID, topic string) (*TopicMastery, error) {
	return s.repo.Get(ctx, userID, courseID, topic)
}

// Snapshot is a read model of a learner's mastery across a course.
type Snapshot struct {
	// Topics is every mastery record, most recently studied first.
	Topics []*TopicMastery
	// WeakTopics lists topic names classified weak, in Topics order.
	WeakTopics []string
}

// Snapshot loads all mastery records for (user, course) and derives the
// weak-topic subset the agent and replanner work from.
func (s *Service) Snapshot(ctx context.Context, userID, courseID string) (*Snapshot, error) {
	topics, err := s.repo.ListByCourse(ctx, userID, courseID)
	if err != nil {
		return nil, fmt.Errorf("list mastery for course %q: %w", courseID, err)
	}

	sort.SliceStable(topics, func(i, j int) bool {
		return topics[i].LastStudiedAt.After(topics[j].LastStudiedAt)
	})

	snap := &Snapshot{Topics: topics}
	for _, t := range topics {
		if t.Classification == ClassWeak {
			snap.WeakTopics = append(snap.WeakTopics, t.Topic)
		}
	}
	return snap, nil
}
