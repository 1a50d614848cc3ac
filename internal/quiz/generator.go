package quiz

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/calvora/studyforge/internal/llm"
)

// GenerateInput holds all context needed to generate a quiz.
type GenerateInput struct {
	UserID   string
	CourseID string
	Topic    string

	// MasteryScore drives difficulty selection when no difficulty is
	// requested. Nil means no mastery history (treated as zero).
	MasteryScore *int

	// RequestedDifficulty overrides mastery-based selection when valid.
	RequestedDifficulty Difficulty

	// QuestionCount defaults to DefaultQuestionCount when zero.
	QuestionCount int

	// WeakConcepts steers the prompt toward concepts the learner has
	// been missing. Optional.
	WeakConcepts []string

	// ContextSnippets are retrieved course material excerpts the
	// questions should be grounded in. Optional.
	ContextSnippets []string
}

// GenConfig bounds the generation request.
type GenConfig struct {
	MaxTokens   int
	Temperature float64
}

// DefaultGenConfig returns the standard generation limits.
func DefaultGenConfig() GenConfig {
	return GenConfig{MaxTokens: 4096, Temperature: 0.4}
}

// Generator produces quizzes by delegating question authoring to the LLM.
// The engine itself only selects difficulty and builds the envelope.
type Generator struct {
	provider llm.Provider
	config   GenConfig
	now      func() time.Time
}

// NewGenerator creates a Generator with the given provider and config.
func NewGenerator(provider llm.Provider, cfg GenConfig) *Generator {
	return &Generator{provider: provider, config: cfg, now: time.Now}
}

// questionOutput mirrors one schema question before validation.
type questionOutput struct {
	QuestionText string   `json:"question_text"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
	Explanation  string   `json:"explanation"`
	Difficulty   string   `json:"difficulty"`
	Concepts     []string `json:"concepts"`
}

type quizOutput struct {
	Questions []questionOutput `json:"questions"`
}

// Generate produces a published quiz for the given input. The returned
// quiz has no attempts yet; difficulty-step thresholds start at the
// defaults and stay with the quiz document.
func (g *Generator) Generate(ctx context.Context, input GenerateInput) (*AdaptiveQuiz, error) {
	if input.Topic == "" {
		return nil, fmt.Errorf("topic is required")
	}

	difficulty := SelectDifficulty(input.MasteryScore, input.RequestedDifficulty)
	count := input.QuestionCount
	if count <= 0 {
		count = DefaultQuestionCount
	}

	ctx = llm.WithPurpose(ctx, "quiz-gen")

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(input, difficulty, count)},
		},
		Schema:      QuizSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("LLM quiz generation failed: %w", err)
	}

	var raw quizOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}
	if len(raw.Questions) == 0 {
		return nil, fmt.Errorf("LLM returned no questions")
	}

	questions := lo.Map(raw.Questions, func(out questionOutput, _ int) Question {
		return Question{
			Text:         out.QuestionText,
			Options:      out.Options,
			CorrectIndex: out.CorrectIndex,
			Explanation:  out.Explanation,
			Difficulty:   Difficulty(out.Difficulty),
			Concepts:     out.Concepts,
		}
	})

	for i, question := range questions {
		if err := validateQuestion(question); err != nil {
			return nil, fmt.Errorf("question %d invalid: %w", i+1, err)
		}
	}

	return &AdaptiveQuiz{
		ID:         uuid.NewString(),
		UserID:     input.UserID,
		CourseID:   input.CourseID,
		Topic:      input.Topic,
		Difficulty: difficulty,
		Status:     StatusPublished,
		MaxScore:   DefaultMaxScore,
		Thresholds: DefaultThresholds(),
		Questions:  questions,
		CreatedAt:  g.now(),
	}, nil
}

// validateQuestion rejects structurally broken questions the schema
// validator cannot catch (option/index mismatch).
func validateQuestion(q Question) error {
	if q.Text == "" {
		return fmt.Errorf("empty question text")
	}
	if len(q.Options) < 2 {
		return fmt.Errorf("needs at least 2 options, got %d", len(q.Options))
	}
	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
		return fmt.Errorf("correct index %d out of range for %d options", q.CorrectIndex, len(q.Options))
	}
	return nil
}
