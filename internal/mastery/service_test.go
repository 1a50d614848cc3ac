package mastery

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRepo is an in-memory Repo for testing.
type fakeRepo struct {
	records map[string]*TopicMastery
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{records: make(map[string]*TopicMastery)}
}

func key(userID, courseID, topic string) string {
	return userID + "/" + courseID + "/" + topic
}

func (r *fakeRepo) Get(_ context.Context, userID, courseID, topic string) (*TopicMastery, error) {
	m, ok := r.records[key(userID, courseID, topic)]
	if !ok {
		return nil, ErrNotFound
	}
	return m, nil
}

func (r *fakeRepo) Put(_ context.Context, m *TopicMastery) error {
	r.records[key(m.UserID, m.CourseID, m.Topic)] = m
	return nil
}

func (r *fakeRepo) ListByCourse(_ context.Context, userID, courseID string) ([]*TopicMastery, error) {
	var out []*TopicMastery
	for _, m := range r.records {
		if m.UserID == userID && m.CourseID == courseID {
			out = append(out, m)
		}
	}
	return out, nil
}

func TestService_RecordQuizResult_CreatesLazily(t *testing.T) {
	svc := NewService(newFakeRepo())

	m, err := svc.RecordQuizResult(context.Background(), "u1", "c1", "fractions", 90, "medium", 4*time.Minute)

	require.NoError(t, err)
	assert.Equal(t, 63, m.MasteryScore)
	assert.Equal(t, 1, m.QuizAttempts)
}

func TestService_RecordQuizResult_UpdatesExisting(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	_, err := svc.RecordQuizResult(ctx, "u1", "c1", "fractions", 90, "medium", 4*time.Minute)
	require.NoError(t, err)

	m, err := svc.RecordQuizResult(ctx, "u1", "c1", "fractions", 90, "medium", 4*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 82, m.MasteryScore)
	assert.Equal(t, 2, m.QuizAttempts)
}

func TestService_RecordQuizResult_Validation(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	_, err := svc.RecordQuizResult(ctx, "u1", "c1", "", 50, "easy", time.Minute)
	assert.Error(t, err)

	_, err = svc.RecordQuizResult(ctx, "u1", "c1", "topic", 101, "easy", time.Minute)
	assert.Error(t, err)

	_, err = svc.RecordQuizResult(ctx, "u1", "c1", "topic", -1, "easy", time.Minute)
	assert.Error(t, err)
}

func TestService_Snapshot_WeakTopicsAndOrdering(t *testing.T) {
	repo := newFakeRepo()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	clock := base
	svc := NewService(repo).WithClock(func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	})
	ctx := context.Background()

	_, err := svc.RecordQuizResult(ctx, "u1", "c1", "algebra", 20, "easy", time.Minute)
	require.NoError(t, err)
	_, err = svc.RecordQuizResult(ctx, "u1", "c1", "geometry", 95, "hard", 2*time.Minute)
	require.NoError(t, err)

	snap, err := svc.Snapshot(ctx, "u1", "c1")
	require.NoError(t, err)

	require.Len(t, snap.Topics, 2)
	assert.Equal(t, "geometry", snap.Topics[0].Topic) // studied last
	assert.Equal(t, []string{"algebra"}, snap.WeakTopics)
}
