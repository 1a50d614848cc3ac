package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calvora/studyforge/internal/course"
	"github.com/calvora/studyforge/internal/llm"
	"github.com/calvora/studyforge/internal/mastery"
	"github.com/calvora/studyforge/internal/memory"
	"github.com/calvora/studyforge/internal/plan"
	"github.com/calvora/studyforge/internal/quiz"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestCourseRepo_RoundTrip(t *testing.T) {
	s := openTestStore(t)
	repo := s.CourseRepo()
	ctx := context.Background()

	c := &course.Course{
		ID:     "bio",
		Title:  "Biology 101",
		Topics: []string{"cells"},
		Materials: []course.Material{{
			ID:        "m1",
			Title:     "Notes",
			Processed: true,
			Chunks: []course.Chunk{
				{ID: "ch1", Text: "alpha", Embedding: []float64{0.5, 0.25}},
			},
		}},
	}
	require.NoError(t, repo.Put(ctx, c))

	got, err := repo.Get(ctx, "bio")
	require.NoError(t, err)
	assert.Equal(t, "Biology 101", got.Title)
	require.Len(t, got.Materials, 1)
	assert.Equal(t, []float64{0.5, 0.25}, got.Materials[0].Chunks[0].Embedding)

	// Put again is an upsert, not a duplicate insert.
	c.Title = "Biology 102"
	require.NoError(t, repo.Put(ctx, c))
	got, err = repo.Get(ctx, "bio")
	require.NoError(t, err)
	assert.Equal(t, "Biology 102", got.Title)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestCourseRepo_NotFound(t *testing.T) {
	s := openTestStore(t)

	_, err := s.CourseRepo().Get(context.Background(), "missing")

	assert.ErrorIs(t, err, course.ErrNotFound)
}

func TestMasteryRepo_RoundTrip(t *testing.T) {
	s := openTestStore(t)
	repo := s.MasteryRepo()
	ctx := context.Background()

	m := mastery.New("u", "c", "osmosis", time.Now())
	m.RecordQuizResult(90, "medium", 3*time.Minute, time.Now())
	require.NoError(t, repo.Put(ctx, m))

	got, err := repo.Get(ctx, "u", "c", "osmosis")
	require.NoError(t, err)
	assert.Equal(t, m.MasteryScore, got.MasteryScore)
	assert.Equal(t, m.Classification, got.Classification)
	assert.Len(t, got.RecentQuizzes, 1)

	_, err = repo.Get(ctx, "u", "c", "other")
	assert.ErrorIs(t, err, mastery.ErrNotFound)

	// Same key upserts.
	m.RecordQuizResult(40, "medium", 2*time.Minute, time.Now())
	require.NoError(t, repo.Put(ctx, m))
	list, err := repo.ListByCourse(ctx, "u", "c")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Len(t, list[0].RecentQuizzes, 2)
}

func TestQuizRepo_RoundTrip(t *testing.T) {
	s := openTestStore(t)
	repo := s.QuizRepo()
	ctx := context.Background()

	q := &quiz.AdaptiveQuiz{
		ID:         "q1",
		UserID:     "u",
		CourseID:   "c",
		Topic:      "cells",
		Difficulty: quiz.DifficultyMedium,
		Status:     quiz.StatusPublished,
		MaxScore:   quiz.DefaultMaxScore,
		Thresholds: quiz.DefaultThresholds(),
		Questions: []quiz.Question{
			{Text: "Q", Options: []string{"a", "b"}, CorrectIndex: 0, Concepts: []string{"cells"}},
		},
	}
	require.NoError(t, repo.Put(ctx, q))

	got, err := repo.Get(ctx, "q1")
	require.NoError(t, err)
	assert.Equal(t, quiz.StatusPublished, got.Status)
	require.Len(t, got.Questions, 1)

	_, err = repo.Get(ctx, "q2")
	assert.ErrorIs(t, err, quiz.ErrNotFound)

	list, err := repo.ListByCourse(ctx, "u", "c")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestMemoryRepo_RoundTrip(t *testing.T) {
	s := openTestStore(t)
	repo := s.MemoryRepo()
	ctx := context.Background()

	m := memory.NewLearningMemory("u", "c", time.Now())
	m.RecordMistake("cells", "osmosis", time.Now())
	require.NoError(t, repo.Put(ctx, m))

	got, err := repo.Get(ctx, "u", "c")
	require.NoError(t, err)
	require.Len(t, got.Mistakes, 1)
	assert.Equal(t, "osmosis", got.Mistakes[0].Concept)

	_, err = repo.Get(ctx, "u", "other")
	assert.ErrorIs(t, err, memory.ErrNotFound)
}

func TestPlanRepo_RoundTrip(t *testing.T) {
	s := openTestStore(t)
	repo := s.PlanRepo()
	ctx := context.Background()

	p := plan.New("u", "c", [][]string{{"cells"}, {"osmosis"}}, time.Now())
	require.NoError(t, repo.Put(ctx, p))

	got, err := repo.Get(ctx, "u", "c")
	require.NoError(t, err)
	require.Len(t, got.Weeks, 2)
	assert.Equal(t, []string{"Study: cells"}, got.Weeks[0].Tasks)

	_, err = repo.Get(ctx, "other", "c")
	assert.ErrorIs(t, err, plan.ErrNotFound)
}

func TestLLMEventRecorder(t *testing.T) {
	s := openTestStore(t)
	rec := s.LLMEventRecorder()
	ctx := context.Background()

	require.NoError(t, rec.RecordLLMRequest(ctx, llm.RequestEvent{
		Provider:     "anthropic",
		Model:        "m",
		Purpose:      "quiz-gen",
		InputTokens:  100,
		OutputTokens: 50,
		Success:      true,
	}))
	require.NoError(t, rec.RecordLLMRequest(ctx, llm.RequestEvent{
		Provider:     "anthropic",
		Model:        "m",
		Purpose:      "agent-chat",
		Success:      false,
		ErrorMessage: "rate limited",
	}))

	usage, err := s.LLMUsageSummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), usage.Requests)
	assert.Equal(t, int64(1), usage.Failures)
	assert.Equal(t, int64(100), usage.InputTokens)
	assert.Equal(t, int64(50), usage.OutputTokens)
}
