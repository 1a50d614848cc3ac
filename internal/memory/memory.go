// Package memory holds the long-lived learner journal: one LearningMemory
// per (user, course) recording completed topics, quiz outcomes, recurring
// mistakes, interaction history, and plan adjustments.
package memory

import (
	"time"
)

// ResponseLogLimit caps the stored copy of an agent response. The full
// response still goes back to the caller; only the journal copy is cut.
const ResponseLogLimit = 500

// patternWindowDays is the trailing window for the consistency score.
const patternWindowDays = 30

// CompletedTopic logs one finished topic.
type CompletedTopic struct {
	Topic       string    `json:"topic"`
	CompletedAt time.Time `json:"completedAt"`
}

// QuizOutcome logs one graded quiz attempt.
type QuizOutcome struct {
	QuizID     string    `json:"quizId"`
	Topic      string    `json:"topic"`
	Score      int       `json:"score"`
	Percentage int       `json:"percentage"`
	Difficulty string    `json:"difficulty"`
	Passed     bool      `json:"passed"`
	Timestamp  time.Time `json:"timestamp"`
}

// Mistake is a recurring error keyed by (topic, concept). Repeats bump
// OccurrenceCount instead of creating duplicates. Once corrected, a
// mistake stays corrected; recurrences still count occurrences.
type Mistake struct {
	Topic           string    `json:"topic"`
	Concept         string    `json:"concept"`
	OccurrenceCount int       `json:"occurrenceCount"`
	IsCorrected     bool      `json:"isCorrected"`
	FirstSeenAt     time.Time `json:"firstSeenAt"`
	LastSeenAt      time.Time `json:"lastSeenAt"`
}

// Interaction logs one agent exchange.
type Interaction struct {
	Type      string    `json:"type"` // "chat", "quiz", "replan"
	Query     string    `json:"query"`
	Response  string    `json:"response"` // truncated to ResponseLogLimit
	Timestamp time.Time `json:"timestamp"`
}

// PlanAdjustment is one entry in the replanning audit log.
type PlanAdjustment struct {
	Topic      string    `json:"topic"`
	Task       string    `json:"task"`
	WeekNumber int       `json:"weekNumber"`
	Reason     string    `json:"reason"`
	Timestamp  time.Time `json:"timestamp"`
}

// Patterns aggregates learning behavior over the journal.
type Patterns struct {
	// VelocityPerWeek is completed topics per week since first activity.
	VelocityPerWeek float64 `json:"velocityPerWeek"`
	// ConsistencyScore is the fraction of days with activity over the
	// trailing 30 days, 0-1.
	ConsistencyScore float64 `json:"consistencyScore"`
}

// LearningMemory is the journal document for one (user, course).
type LearningMemory struct {
	UserID   string `json:"userId"`
	CourseID string `json:"courseId"`

	CompletedTopics []CompletedTopic `json:"completedTopics"`
	QuizHistory     []QuizOutcome    `json:"quizHistory"`
	Mistakes        []Mistake        `json:"mistakes"`
	Interactions    []Interaction    `json:"interactions"`
	PlanAdjustments []PlanAdjustment `json:"planAdjustments"`
	Patterns        Patterns         `json:"patterns"`

	CreatedAt time.Time `json:"createdAt"`
}

// NewLearningMemory creates an empty journal.
func NewLearningMemory(userID, courseID string, now time.Time) *LearningMemory {
	return &LearningMemory{UserID: userID, CourseID: courseID, CreatedAt: now}
}

// LogCompletedTopic records a finished topic once; repeats are no-ops.
func (m *LearningMemory) LogCompletedTopic(topic string, now time.Time) bool {
	for _, ct := range m.CompletedTopics {
		if ct.Topic == topic {
			return false
		}
	}
	m.CompletedTopics = append(m.CompletedTopics, CompletedTopic{Topic: topic, CompletedAt: now})
	m.RecomputePatterns(now)
	return true
}

// LogQuiz appends one quiz outcome to the history.
func (m *LearningMemory) LogQuiz(outcome QuizOutcome) {
	m.QuizHistory = append(m.QuizHistory, outcome)
	m.RecomputePatterns(outcome.Timestamp)
}

// RecordMistake registers one occurrence of a (topic, concept) mistake.
func (m *LearningMemory) RecordMistake(topic, concept string, now time.Time) *Mistake {
	for i := range m.Mistakes {
		if m.Mistakes[i].Topic == topic && m.Mistakes[i].Concept == concept {
			m.Mistakes[i].OccurrenceCount++
			m.Mistakes[i].LastSeenAt = now
			return &m.Mistakes[i]
		}
	}
	m.Mistakes = append(m.Mistakes, Mistake{
		Topic:           topic,
		Concept:         concept,
		OccurrenceCount: 1,
		FirstSeenAt:     now,
		LastSeenAt:      now,
	})
	return &m.Mistakes[len(m.Mistakes)-1]
}

// MarkMistakeCorrected closes an open mistake. Returns false when no such
// mistake exists. Already-corrected mistakes stay corrected.
func (m *LearningMemory) MarkMistakeCorrected(topic, concept string) bool {
	for i := range m.Mistakes {
		if m.Mistakes[i].Topic == topic && m.Mistakes[i].Concept == concept {
			m.Mistakes[i].IsCorrected = true
			return true
		}
	}
	return false
}

// OpenMistakes returns mistakes not yet marked corrected.
func (m *LearningMemory) OpenMistakes() []Mistake {
	var open []Mistake
	for _, mk := range m.Mistakes {
		if !mk.IsCorrected {
			open = append(open, mk)
		}
	}
	return open
}

// LogInteraction appends an interaction, storing at most ResponseLogLimit
// characters of the response. The cut falls on a rune boundary so a
// multibyte character at the limit is dropped whole, never split into
// invalid UTF-8.
func (m *LearningMemory) LogInteraction(kind, query, response string, now time.Time) {
	if runes := []rune(response); len(runes) > ResponseLogLimit {
		response = string(runes[:ResponseLogLimit])
	}
	m.Interactions = append(m.Interactions, Interaction{
		Type:      kind,
		Query:     query,
		Response:  response,
		Timestamp: now,
	})
}

// LogPlanAdjustment appends a replanning audit entry.
func (m *LearningMemory) LogPlanAdjustment(adj PlanAdjustment) {
	m.PlanAdjustments = append(m.PlanAdjustments, adj)
}

// RecomputePatterns rebuilds the learning-pattern aggregates from the
// journal contents.
func (m *LearningMemory) RecomputePatterns(now time.Time) {
	m.Patterns = Patterns{}

	start := m.firstActivity()
	if start.IsZero() {
		return
	}

	weeks := now.Sub(start).Hours() / (24 * 7)
	if weeks < 1 {
		weeks = 1
	}
	m.Patterns.VelocityPerWeek = float64(len(m.CompletedTopics)) / weeks

	activeDays := make(map[string]bool)
	cutoff := now.AddDate(0, 0, -patternWindowDays)
	mark := func(t time.Time) {
		if t.After(cutoff) {
			activeDays[t.Format("2006-01-02")] = true
		}
	}
	for _, q := range m.QuizHistory {
		mark(q.Timestamp)
	}
	for _, ct := range m.CompletedTopics {
		mark(ct.CompletedAt)
	}
	for _, in := range m.Interactions {
		mark(in.Timestamp)
	}
	m.Patterns.ConsistencyScore = float64(len(activeDays)) / patternWindowDays
}

func (m *LearningMemory) firstActivity() time.Time {
	var first time.Time
	consider := func(t time.Time) {
		if t.IsZero() {
			return
		}
		if first.IsZero() || t.Before(first) {
			first = t
		}
	}
	for _, q := range m.QuizHistory {
		consider(q.Timestamp)
	}
	for _, ct := range m.CompletedTopics {
		consider(ct.CompletedAt)
	}
	for _, in := range m.Interactions {
		consider(in.Timestamp)
	}
	return first
}
