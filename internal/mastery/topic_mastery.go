// Package mastery tracks a learner's per-topic mastery state.
//
// Each (user, course, topic) triple owns one TopicMastery record. The
// record is created lazily on the first quiz event and never deleted.
// Classification is always derived from the score, never set directly.
package mastery

import (
	"math"
	"time"
)

// Classification buckets a mastery score.
type Classification string

const (
	ClassWeak   Classification = "weak"
	ClassMedium Classification = "medium"
	ClassStrong Classification = "strong"
)

// Score thresholds for classification and the recent-quiz window size.
const (
	WeakBelow        = 40
	StrongFrom       = 75
	RecentQuizWindow = 10
)

// Classify maps a mastery score to its classification bucket.
// Pure function: weak < 40, medium < 75, strong >= 75.
func Classify(score int) Classification {
	switch {
	case score < WeakBelow:
		return ClassWeak
	case score < StrongFrom:
		return ClassMedium
	default:
		return ClassStrong
	}
}

// QuizRecord is one entry in the bounded recent-quiz history.
type QuizRecord struct {
	Score            int       `json:"score"`
	Difficulty       string    `json:"difficulty"`
	TimeSpentSeconds int       `json:"timeSpentSeconds"`
	Timestamp        time.Time `json:"timestamp"`
}

// TopicMastery is the persisted mastery state for one topic.
type TopicMastery struct {
	UserID   string `json:"userId"`
	CourseID string `json:"courseId"`
	Topic    string `json:"topic"`

	MasteryScore   int            `json:"masteryScore"` // 0-100
	Classification Classification `json:"classification"`

	QuizAttempts  int          `json:"quizAttempts"`
	RecentQuizzes []QuizRecord `json:"recentQuizzes"` // ring buffer, max RecentQuizWindow

	HighestQuizScore int `json:"highestQuizScore"`
	LowestQuizScore  int `json:"lowestQuizScore"`
	AverageQuizScore int `json:"averageQuizScore"`

	WeakAreas []string `json:"weakAreas"`

	CreatedAt     time.Time `json:"createdAt"`
	LastStudiedAt time.Time `json:"lastStudiedAt"`
}

// New creates a fresh TopicMastery record at score zero.
func New(userID, courseID, topic string, now time.Time) *TopicMastery {
	return &TopicMastery{
		UserID:         userID,
		CourseID:       courseID,
		Topic:          topic,
		Classification: Classify(0),
		CreatedAt:      now,
	}
}

// RecordQuizResult folds one quiz result into the mastery state.
//
// The mastery score is round(0.7*avg + 0.3*previous) where avg is the
// rounded mean of the recent-quiz window and previous is the prior
// mastery score. The historical term is the prior score, not the
// average, so repeated identical results still converge gradually.
// timeSpent is how long the attempt took; it is recorded with the quiz
// entry and does not affect the score.
func (m *TopicMastery) RecordQuizResult(score int, difficulty string, timeSpent time.Duration, now time.Time) {
	m.RecentQuizzes = append(m.RecentQuizzes, QuizRecord{
		Score:            score,
		Difficulty:       difficulty,
		TimeSpentSeconds: int(timeSpent.Seconds()),
		Timestamp:        now,
	})
	if len(m.RecentQuizzes) > RecentQuizWindow {
		m.RecentQuizzes = m.RecentQuizzes[len(m.RecentQuizzes)-RecentQuizWindow:]
	}

	m.AverageQuizScore = roundedMean(m.RecentQuizzes)
	m.MasteryScore = int(math.Round(0.7*float64(m.AverageQuizScore) + 0.3*float64(m.MasteryScore)))
	m.Classification = Classify(m.MasteryScore)

	if m.QuizAttempts == 0 || score > m.HighestQuizScore {
		m.HighestQuizScore = score
	}
	if m.QuizAttempts == 0 || score < m.LowestQuizScore {
		m.LowestQuizScore = score
	}

	m.QuizAttempts++
	m.LastStudiedAt = now
}

// AddWeakArea appends a weak-area note if not already present.
func (m *TopicMastery) AddWeakArea(area string) {
	for _, a := range m.WeakAreas {
		if a == area {
			return
		}
	}
	m.WeakAreas = append(m.WeakAreas, area)
}

func roundedMean(records []QuizRecord) int {
	if len(records) == 0 {
		return 0
	}
	sum := 0
	for _, r := range records {
		sum += r.Score
	}
	return int(math.Round(float64(sum) / float64(len(records))))
}
