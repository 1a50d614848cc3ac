// Package quiz implements the adaptive quiz engine: difficulty selection,
// LLM-backed question generation, attempt grading, and weak-concept
// analysis. Question content itself always comes from the language model;
// this package owns the envelope and the scoring rules.
package quiz

import "time"

// Status is the quiz lifecycle state.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
	StatusArchived  Status = "archived"
)

// Grading constants.
const (
	// PassThreshold is the fixed pass mark in percent.
	PassThreshold = 70
	// DefaultMaxScore is the score scale for an attempt.
	DefaultMaxScore = 100
	// DefaultQuestionCount is used when the caller does not specify one.
	DefaultQuestionCount = 5
)

// Thresholds configures the per-quiz difficulty-step rules.
type Thresholds struct {
	// LevelUp is the percentage at or above which the next recommended
	// difficulty moves one step up. Default 80.
	LevelUp int `json:"levelUp"`
	// LevelDown is the percentage below which the recommendation moves
	// one step down. Default 60.
	LevelDown int `json:"levelDown"`
}

// DefaultThresholds returns the standard 80/60 step thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{LevelUp: 80, LevelDown: 60}
}

// Question is one generated question. Text and options are immutable once
// the quiz is published.
type Question struct {
	Text         string     `json:"text"`
	Options      []string   `json:"options"`
	CorrectIndex int        `json:"correctIndex"`
	Explanation  string     `json:"explanation"`
	Difficulty   Difficulty `json:"difficulty"`
	Concepts     []string   `json:"concepts"`
}

// Answer records the learner's response to one question.
type Answer struct {
	QuestionIndex int  `json:"questionIndex"`
	SelectedIndex int  `json:"selectedIndex"`
	Correct       bool `json:"correct"`
}

// Attempt is one graded submission. Attempts are append-only.
type Attempt struct {
	AttemptNumber             int        `json:"attemptNumber"`
	StartedAt                 time.Time  `json:"startedAt"`
	CompletedAt               time.Time  `json:"completedAt"`
	Answers                   []Answer   `json:"answers"`
	CorrectAnswers            int        `json:"correctAnswers"`
	IncorrectAnswers          int        `json:"incorrectAnswers"`
	Score                     int        `json:"score"`
	PercentageScore           int        `json:"percentageScore"`
	Passed                    bool       `json:"passed"`
	NextDifficultyRecommended Difficulty `json:"nextDifficultyRecommended"`
}

// TimeSpent is the attempt duration.
func (a *Attempt) TimeSpent() time.Duration {
	return a.CompletedAt.Sub(a.StartedAt)
}

// PerformanceMetrics aggregates all attempts on a quiz. Recomputed from
// the attempt list on every new attempt, never updated incrementally.
type PerformanceMetrics struct {
	TotalAttempts      int `json:"totalAttempts"`
	BestScore          int `json:"bestScore"`
	LowestScore        int `json:"lowestScore"`
	AverageScore       int `json:"averageScore"`
	PassRate           int `json:"passRate"` // integer percent
	AverageTimeSeconds int `json:"averageTimeSeconds"`
}

// ConceptPerformance is the accuracy roll-up for one concept tag.
type ConceptPerformance struct {
	Concept  string `json:"concept"`
	Correct  int    `json:"correct"`
	Total    int    `json:"total"`
	Accuracy int    `json:"accuracy"` // integer percent
	Weak     bool   `json:"weak"`
}

// AdaptiveQuiz is one generated quiz document with its attempt history.
type AdaptiveQuiz struct {
	ID       string `json:"id"`
	UserID   string `json:"userId"`
	CourseID string `json:"courseId"`
	Topic    string `json:"topic"`

	Difficulty Difficulty `json:"difficulty"`
	Status     Status     `json:"status"`
	MaxScore   int        `json:"maxScore"`
	Thresholds Thresholds `json:"thresholds"`

	Questions []Question         `json:"questions"`
	Attempts  []Attempt          `json:"attempts"`
	Metrics   PerformanceMetrics `json:"metrics"`

	CreatedAt time.Time `json:"createdAt"`
}
