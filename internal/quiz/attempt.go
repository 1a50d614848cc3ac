package quiz

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// RecordAttempt grades a submission and appends it to the quiz.
//
// answers holds the selected option index per question, in question
// order. Grading is derived entirely from the stored questions; an
// out-of-range selection counts as incorrect, a missing question set or a
// length mismatch is a validation error and mutates nothing.
func (q *AdaptiveQuiz) RecordAttempt(startedAt, completedAt time.Time, answers []int) (*Attempt, error) {
	if q.Status != StatusPublished {
		return nil, fmt.Errorf("quiz %s is %s: attempts require a published quiz", q.ID, q.Status)
	}
	if len(q.Questions) == 0 {
		return nil, fmt.Errorf("quiz %s has no questions", q.ID)
	}
	if len(answers) != len(q.Questions) {
		return nil, fmt.Errorf("got %d answers for %d questions", len(answers), len(q.Questions))
	}
	if completedAt.Before(startedAt) {
		return nil, fmt.Errorf("attempt completed before it started")
	}

	attempt := Attempt{
		AttemptNumber: len(q.Attempts) + 1,
		StartedAt:     startedAt,
		CompletedAt:   completedAt,
	}

	for i, selected := range answers {
		correct := selected == q.Questions[i].CorrectIndex
		attempt.Answers = append(attempt.Answers, Answer{
			QuestionIndex: i,
			SelectedIndex: selected,
			Correct:       correct,
		})
		if correct {
			attempt.CorrectAnswers++
		} else {
			attempt.IncorrectAnswers++
		}
	}

	total := len(q.Questions)
	attempt.Score = roundRatio(attempt.CorrectAnswers, total, q.MaxScore)
	attempt.PercentageScore = roundRatio(attempt.CorrectAnswers, total, 100)
	attempt.Passed = attempt.PercentageScore >= PassThreshold
	attempt.NextDifficultyRecommended = NextDifficulty(q.Difficulty, attempt.PercentageScore, q.Thresholds)

	q.Attempts = append(q.Attempts, attempt)
	q.Metrics = computeMetrics(q.Attempts)

	return &q.Attempts[len(q.Attempts)-1], nil
}

// computeMetrics recomputes the aggregate metrics over all attempts.
func computeMetrics(attempts []Attempt) PerformanceMetrics {
	m := PerformanceMetrics{TotalAttempts: len(attempts)}
	if len(attempts) == 0 {
		return m
	}

	m.BestScore = attempts[0].Score
	m.LowestScore = attempts[0].Score

	scoreSum := 0
	passCount := 0
	var timeSum time.Duration
	for _, a := range attempts {
		if a.Score > m.BestScore {
			m.BestScore = a.Score
		}
		if a.Score < m.LowestScore {
			m.LowestScore = a.Score
		}
		scoreSum += a.Score
		if a.Passed {
			passCount++
		}
		timeSum += a.TimeSpent()
	}

	m.AverageScore = roundRatio(scoreSum, len(attempts), 1)
	m.PassRate = roundRatio(passCount, len(attempts), 100)
	m.AverageTimeSeconds = int(math.Round(timeSum.Seconds() / float64(len(attempts))))
	return m
}

// IdentifyWeakConcepts rolls up per-concept accuracy across every answer
// of every attempt. A concept is weak below the pass threshold. The
// computation rebuilds the stats from scratch each call, so re-running it
// after any attempt overwrites rather than accumulates.
func (q *AdaptiveQuiz) IdentifyWeakConcepts() []ConceptPerformance {
	type counts struct{ correct, total int }
	byConcept := make(map[string]*counts)

	for _, attempt := range q.Attempts {
		for _, ans := range attempt.Answers {
			if ans.QuestionIndex < 0 || ans.QuestionIndex >= len(q.Questions) {
				continue
			}
			for _, concept := range q.Questions[ans.QuestionIndex].Concepts {
				c, ok := byConcept[concept]
				if !ok {
					c = &counts{}
					byConcept[concept] = c
				}
				c.total++
				if ans.Correct {
					c.correct++
				}
			}
		}
	}

	out := make([]ConceptPerformance, 0, len(byConcept))
	for concept, c := range byConcept {
		accuracy := roundRatio(c.correct, c.total, 100)
		out = append(out, ConceptPerformance{
			Concept:  concept,
			Correct:  c.correct,
			Total:    c.total,
			Accuracy: accuracy,
			Weak:     accuracy < PassThreshold,
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Concept < out[j].Concept })
	return out
}

// WeakConcepts returns just the names of concepts graded weak.
func (q *AdaptiveQuiz) WeakConcepts() []string {
	var weak []string
	for _, cp := range q.IdentifyWeakConcepts() {
		if cp.Weak {
			weak = append(weak, cp.Concept)
		}
	}
	return weak
}

// roundRatio returns round(num/den * scale) as an int. den must be > 0.
func roundRatio(num, den, scale int) int {
	return int(math.Round(float64(num) / float64(den) * float64(scale)))
}
