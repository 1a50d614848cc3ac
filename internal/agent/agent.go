// Package agent is the conversational layer: it grounds learner questions
// in retrieved course material, personalizes with mastery and journal
// state, and replans the study schedule around weak topics.
package agent

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/calvora/studyforge/internal/course"
	"github.com/calvora/studyforge/internal/embedding"
	"github.com/calvora/studyforge/internal/llm"
	"github.com/calvora/studyforge/internal/mastery"
	"github.com/calvora/studyforge/internal/memory"
	"github.com/calvora/studyforge/internal/plan"
	"github.com/calvora/studyforge/internal/retrieval"
)

// FallbackReply is returned when the LLM call fails. The exchange is
// still journaled; an unavailable provider must never break the session.
const FallbackReply = "I couldn't generate a response right now. Please try again in a moment."

// Config bounds agent behavior.
type Config struct {
	// TopK is how many retrieved chunks ground the prompt.
	TopK int
	// MaxTokens caps the chat completion.
	MaxTokens int
	// Temperature for chat completions.
	Temperature float64
}

// DefaultConfig returns the standard agent limits.
func DefaultConfig() Config {
	return Config{TopK: 4, MaxTokens: 2048, Temperature: 0.7}
}

// Reply is one agent answer with its grounding and guidance.
type Reply struct {
	Answer string `json:"answer"`
	// Sources are the material titles the answer was grounded in,
	// deduplicated, retrieval order.
	Sources []string `json:"sources,omitempty"`
	// SuggestedNextStep points the learner at their weakest topic, or at
	// the current plan week when nothing is weak.
	SuggestedNextStep string `json:"suggestedNextStep"`
}

// Agent answers course questions over retrieved material.
type Agent struct {
	provider llm.Provider
	embedder embedding.Embedder
	courses  course.Repo
	mastery  *mastery.Service
	memory   *memory.Service
	plans    *plan.Service
	config   Config
	logger   *zap.Logger
	now      func() time.Time
}

// New creates an Agent.
func New(
	provider llm.Provider,
	embedder embedding.Embedder,
	courses course.Repo,
	masterySvc *mastery.Service,
	memorySvc *memory.Service,
	planSvc *plan.Service,
	cfg Config,
	logger *zap.Logger,
) *Agent {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.TopK <= 0 {
		cfg.TopK = DefaultConfig().TopK
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = DefaultConfig().MaxTokens
	}
	return &Agent{
		provider: provider,
		embedder: embedder,
		courses:  courses,
		mastery:  masterySvc,
		memory:   memorySvc,
		plans:    planSvc,
		config:   cfg,
		logger:   logger,
		now:      time.Now,
	}
}

// WithClock overrides the agent clock, for tests.
func (a *Agent) WithClock(now func() time.Time) *Agent {
	a.now = now
	return a
}

// Respond answers a learner question about a course. The answer is
// grounded in the top retrieved chunks and personalized with the
// learner's mastery state. LLM failures degrade to FallbackReply; only
// course lookup and journaling errors propagate.
func (a *Agent) Respond(ctx context.Context, userID, courseID, message string) (*Reply, error) {
	if message == "" {
		return nil, fmt.Errorf("message is required")
	}

	c, err := a.courses.Get(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("load course %q: %w", courseID, err)
	}

	corpus := course.Corpus(c)
	queryVec := a.embedder.Embed(ctx, message)
	results := retrieval.Retrieve(corpus, message, queryVec, a.config.TopK)

	snap, err := a.mastery.Snapshot(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}

	journal, err := a.memory.Load(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}

	answer := a.generate(ctx, c, message, results, snap, len(journal.CompletedTopics))

	reply := &Reply{
		Answer:            answer,
		Sources:           sourceTitles(results),
		SuggestedNextStep: a.nextStep(ctx, userID, courseID, snap),
	}

	if err := a.memory.LogInteraction(ctx, userID, courseID, "chat", message, answer); err != nil {
		return nil, fmt.Errorf("journal interaction: %w", err)
	}

	return reply, nil
}

// generate runs the chat completion, degrading to the canned reply on
// any provider error.
func (a *Agent) generate(ctx context.Context, c *course.Course, message string, results []retrieval.Result, snap *mastery.Snapshot, completedTopics int) string {
	ctx = llm.WithPurpose(ctx, "agent-chat")

	req := llm.Request{
		System: tutorSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildTutorMessage(c.Title, message, results, snap.WeakTopics, completedTopics)},
		},
		MaxTokens:   a.config.MaxTokens,
		Temperature: a.config.Temperature,
	}

	resp, err := a.provider.Generate(ctx, req)
	if err != nil {
		a.logger.Warn("agent completion failed, serving fallback",
			zap.String("course_id", c.ID),
			zap.Error(err),
		)
		return FallbackReply
	}
	return resp.Text()
}

// nextStep suggests reviewing the weakest topic, falling back to the
// current plan week, then to a generic prompt.
func (a *Agent) nextStep(ctx context.Context, userID, courseID string, snap *mastery.Snapshot) string {
	if len(snap.WeakTopics) > 0 {
		return fmt.Sprintf("Review %s", snap.WeakTopics[0])
	}

	p, err := a.plans.Get(ctx, userID, courseID)
	if err == nil {
		if week := p.CurrentWeek(); week != nil {
			return fmt.Sprintf("Continue with week %d of your plan", week.Number)
		}
	}
	return "Keep studying and take a quiz to track your progress"
}

func sourceTitles(results []retrieval.Result) []string {
	var titles []string
	seen := make(map[string]bool)
	for _, r := range results {
		if seen[r.Chunk.Source] {
			continue
		}
		seen[r.Chunk.Source] = true
		titles = append(titles, r.Chunk.Source)
	}
	return titles
}
