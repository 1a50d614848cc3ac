package quiz

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func publishedQuiz() *AdaptiveQuiz {
	return &AdaptiveQuiz{
		ID:         "quiz-1",
		UserID:     "u",
		CourseID:   "c",
		Topic:      "biology",
		Difficulty: DifficultyMedium,
		Status:     StatusPublished,
		MaxScore:   DefaultMaxScore,
		Thresholds: DefaultThresholds(),
		Questions: []Question{
			{Text: "Q1", Options: []string{"a", "b", "c", "d"}, CorrectIndex: 0, Concepts: []string{"cells"}},
			{Text: "Q2", Options: []string{"a", "b", "c", "d"}, CorrectIndex: 1, Concepts: []string{"cells", "osmosis"}},
			{Text: "Q3", Options: []string{"a", "b", "c", "d"}, CorrectIndex: 2, Concepts: []string{"osmosis"}},
			{Text: "Q4", Options: []string{"a", "b", "c", "d"}, CorrectIndex: 3, Concepts: []string{"mitosis"}},
		},
	}
}

func attemptTimes(seconds int) (time.Time, time.Time) {
	start := time.Date(2026, 4, 10, 9, 0, 0, 0, time.UTC)
	return start, start.Add(time.Duration(seconds) * time.Second)
}

func TestRecordAttempt_Grading(t *testing.T) {
	q := publishedQuiz()
	start, end := attemptTimes(120)

	// 3 of 4 correct: 75%.
	attempt, err := q.RecordAttempt(start, end, []int{0, 1, 2, 0})

	require.NoError(t, err)
	assert.Equal(t, 1, attempt.AttemptNumber)
	assert.Equal(t, 3, attempt.CorrectAnswers)
	assert.Equal(t, 1, attempt.IncorrectAnswers)
	assert.Equal(t, 75, attempt.Score)
	assert.Equal(t, 75, attempt.PercentageScore)
	assert.True(t, attempt.Passed)
	assert.Equal(t, DifficultyMedium, attempt.NextDifficultyRecommended)
}

func TestRecordAttempt_LevelUpAndDown(t *testing.T) {
	q := publishedQuiz()
	start, end := attemptTimes(60)

	// 100% >= 80: recommend one step up from medium.
	up, err := q.RecordAttempt(start, end, []int{0, 1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, DifficultyHard, up.NextDifficultyRecommended)

	// 50% < 60: recommend one step down.
	down, err := q.RecordAttempt(start, end, []int{0, 1, 0, 0})
	require.NoError(t, err)
	assert.Equal(t, 50, down.PercentageScore)
	assert.Equal(t, DifficultyEasy, down.NextDifficultyRecommended)
}

func TestRecordAttempt_Validation(t *testing.T) {
	q := publishedQuiz()
	start, end := attemptTimes(60)

	_, err := q.RecordAttempt(start, end, []int{0, 1})
	assert.Error(t, err, "answer count mismatch")

	_, err = q.RecordAttempt(end, start, []int{0, 1, 2, 3})
	assert.Error(t, err, "completed before started")

	q.Status = StatusDraft
	_, err = q.RecordAttempt(start, end, []int{0, 1, 2, 3})
	assert.Error(t, err, "draft quiz accepts no attempts")
	assert.Empty(t, q.Attempts, "failed validation must not mutate")
}

func TestRecordAttempt_OutOfRangeSelectionIsIncorrect(t *testing.T) {
	q := publishedQuiz()
	start, end := attemptTimes(60)

	attempt, err := q.RecordAttempt(start, end, []int{0, 1, 2, 9})

	require.NoError(t, err)
	assert.Equal(t, 3, attempt.CorrectAnswers)
	assert.False(t, attempt.Answers[3].Correct)
}

func TestRecordAttempt_MetricsRecomputed(t *testing.T) {
	q := publishedQuiz()
	start, end := attemptTimes(100)

	_, err := q.RecordAttempt(start, end, []int{0, 1, 2, 3}) // 100
	require.NoError(t, err)
	_, err = q.RecordAttempt(start, end, []int{0, 0, 0, 0}) // 25
	require.NoError(t, err)

	m := q.Metrics
	assert.Equal(t, 2, m.TotalAttempts)
	assert.Equal(t, 100, m.BestScore)
	assert.Equal(t, 25, m.LowestScore)
	assert.Equal(t, 63, m.AverageScore) // round(125/2)
	assert.Equal(t, 50, m.PassRate)
	assert.Equal(t, 100, m.AverageTimeSeconds)
}

func TestIdentifyWeakConcepts(t *testing.T) {
	q := publishedQuiz()
	start, end := attemptTimes(60)

	// Q2 and Q3 wrong: osmosis 0/2, cells 1/2, mitosis 1/1.
	_, err := q.RecordAttempt(start, end, []int{0, 0, 0, 3})
	require.NoError(t, err)

	stats := q.IdentifyWeakConcepts()

	require.Len(t, stats, 3)
	byName := make(map[string]ConceptPerformance)
	for _, cp := range stats {
		byName[cp.Concept] = cp
	}

	assert.Equal(t, 0, byName["osmosis"].Accuracy)
	assert.True(t, byName["osmosis"].Weak)
	assert.Equal(t, 50, byName["cells"].Accuracy)
	assert.True(t, byName["cells"].Weak)
	assert.Equal(t, 100, byName["mitosis"].Accuracy)
	assert.False(t, byName["mitosis"].Weak)

	assert.Equal(t, []string{"cells", "osmosis"}, q.WeakConcepts())
}

func TestIdentifyWeakConcepts_Idempotent(t *testing.T) {
	q := publishedQuiz()
	start, end := attemptTimes(60)
	_, err := q.RecordAttempt(start, end, []int{0, 0, 2, 3})
	require.NoError(t, err)

	first := q.IdentifyWeakConcepts()
	second := q.IdentifyWeakConcepts()

	assert.Equal(t, first, second)
}
