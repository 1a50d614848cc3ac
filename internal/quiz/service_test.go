package quiz

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calvora/studyforge/internal/llm"
	"github.com/calvora/studyforge/internal/mastery"
	"github.com/calvora/studyforge/internal/memory"
)

// fakeQuizRepo is an in-memory Repo.
type fakeQuizRepo struct {
	quizzes map[string]*AdaptiveQuiz
}

func newFakeQuizRepo() *fakeQuizRepo {
	return &fakeQuizRepo{quizzes: make(map[string]*AdaptiveQuiz)}
}

func (r *fakeQuizRepo) Get(_ context.Context, id string) (*AdaptiveQuiz, error) {
	q, ok := r.quizzes[id]
	if !ok {
		return nil, ErrNotFound
	}
	return q, nil
}

func (r *fakeQuizRepo) Put(_ context.Context, q *AdaptiveQuiz) error {
	r.quizzes[q.ID] = q
	return nil
}

func (r *fakeQuizRepo) ListByCourse(_ context.Context, userID, courseID string) ([]*AdaptiveQuiz, error) {
	var out []*AdaptiveQuiz
	for _, q := range r.quizzes {
		if q.UserID == userID && q.CourseID == courseID {
			out = append(out, q)
		}
	}
	return out, nil
}

// fakeMasteryRepo is an in-memory mastery.Repo.
type fakeMasteryRepo struct {
	records map[string]*mastery.TopicMastery
}

func newFakeMasteryRepo() *fakeMasteryRepo {
	return &fakeMasteryRepo{records: make(map[string]*mastery.TopicMastery)}
}

func (r *fakeMasteryRepo) Get(_ context.Context, userID, courseID, topic string) (*mastery.TopicMastery, error) {
	m, ok := r.records[userID+"/"+courseID+"/"+topic]
	if !ok {
		return nil, mastery.ErrNotFound
	}
	return m, nil
}

func (r *fakeMasteryRepo) Put(_ context.Context, m *mastery.TopicMastery) error {
	r.records[m.UserID+"/"+m.CourseID+"/"+m.Topic] = m
	return nil
}

func (r *fakeMasteryRepo) ListByCourse(_ context.Context, userID, courseID string) ([]*mastery.TopicMastery, error) {
	var out []*mastery.TopicMastery
	for _, m := range r.records {
		if m.UserID == userID && m.CourseID == courseID {
			out = append(out, m)
		}
	}
	return out, nil
}

// fakeMemoryRepo is an in-memory memory.Repo.
type fakeMemoryRepo struct {
	journals map[string]*memory.LearningMemory
}

func newFakeMemoryRepo() *fakeMemoryRepo {
	return &fakeMemoryRepo{journals: make(map[string]*memory.LearningMemory)}
}

func (r *fakeMemoryRepo) Get(_ context.Context, userID, courseID string) (*memory.LearningMemory, error) {
	m, ok := r.journals[userID+"/"+courseID]
	if !ok {
		return nil, memory.ErrNotFound
	}
	return m, nil
}

func (r *fakeMemoryRepo) Put(_ context.Context, m *memory.LearningMemory) error {
	r.journals[m.UserID+"/"+m.CourseID] = m
	return nil
}

func newTestService(provider llm.Provider) (*Service, *fakeQuizRepo, *fakeMasteryRepo, *fakeMemoryRepo) {
	quizRepo := newFakeQuizRepo()
	masteryRepo := newFakeMasteryRepo()
	memoryRepo := newFakeMemoryRepo()
	svc := NewService(
		quizRepo,
		NewGenerator(provider, DefaultGenConfig()),
		mastery.NewService(masteryRepo),
		memory.NewService(memoryRepo),
		nil,
	)
	return svc, quizRepo, masteryRepo, memoryRepo
}

func TestService_GenerateUsesStoredMastery(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(validQuizJSON)})
	svc, _, masteryRepo, _ := newTestService(mock)
	ctx := context.Background()

	strong := mastery.New("u", "c", "cells", time.Now())
	strong.MasteryScore = 80
	require.NoError(t, masteryRepo.Put(ctx, strong))

	q, err := svc.Generate(ctx, GenerateInput{UserID: "u", CourseID: "c", Topic: "cells"})

	require.NoError(t, err)
	assert.Equal(t, DifficultyHard, q.Difficulty)
}

func TestService_SubmitAttempt_FullFlow(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(validQuizJSON)})
	svc, quizRepo, masteryRepo, memoryRepo := newTestService(mock)
	ctx := context.Background()

	q, err := svc.Generate(ctx, GenerateInput{UserID: "u", CourseID: "c", Topic: "cells"})
	require.NoError(t, err)

	start := time.Now().Add(-2 * time.Minute)
	// One of two correct: 50%, fail, step down clamps at easy.
	attempt, err := svc.SubmitAttempt(ctx, q.ID, start, time.Now(), []int{1, 0})
	require.NoError(t, err)

	assert.Equal(t, 50, attempt.PercentageScore)
	assert.False(t, attempt.Passed)
	assert.Equal(t, DifficultyEasy, attempt.NextDifficultyRecommended)

	// Attempt persisted on the quiz document.
	stored, err := quizRepo.Get(ctx, q.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Attempts, 1)
	assert.Equal(t, 1, stored.Metrics.TotalAttempts)

	// Mastery folded in: round(0.7*50 + 0.3*0) = 35.
	m, err := masteryRepo.Get(ctx, "u", "c", "cells")
	require.NoError(t, err)
	assert.Equal(t, 35, m.MasteryScore)
	assert.Equal(t, mastery.ClassWeak, m.Classification)
	assert.Equal(t, []string{"osmosis"}, m.WeakAreas)
	// The attempt duration travels with the mastery quiz entry.
	require.Len(t, m.RecentQuizzes, 1)
	assert.InDelta(t, 120, m.RecentQuizzes[0].TimeSpentSeconds, 1)

	// Journal carries the outcome and the missed concept.
	journal, err := memoryRepo.Get(ctx, "u", "c")
	require.NoError(t, err)
	require.Len(t, journal.QuizHistory, 1)
	assert.False(t, journal.QuizHistory[0].Passed)
	require.Len(t, journal.Mistakes, 1)
	assert.Equal(t, "osmosis", journal.Mistakes[0].Concept)
}

func TestService_SubmitAttempt_UnknownQuiz(t *testing.T) {
	svc, _, _, _ := newTestService(llm.NewMockProvider())

	_, err := svc.SubmitAttempt(context.Background(), "missing", time.Now(), time.Now(), []int{0})

	assert.ErrorIs(t, err, ErrNotFound)
}
