// Package cmd wires the Studyforge CLI: course ingestion, tutoring,
// adaptive quizzes, and study planning over a local SQLite database.
package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/calvora/studyforge/internal/agent"
	"github.com/calvora/studyforge/internal/course"
	"github.com/calvora/studyforge/internal/embedding"
	"github.com/calvora/studyforge/internal/llm"
	"github.com/calvora/studyforge/internal/mastery"
	"github.com/calvora/studyforge/internal/memory"
	"github.com/calvora/studyforge/internal/plan"
	"github.com/calvora/studyforge/internal/quiz"
	"github.com/calvora/studyforge/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "studyforge",
	Short: "Adaptive AI study companion",
	Long:  "Studyforge — ingest course material, ask grounded questions, take adaptive quizzes, and keep a study plan tuned to your weak spots.",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides STUDYFORGE_DB env var)")
	rootCmd.PersistentFlags().String("user", "local", "Learner ID the command acts as")
	rootCmd.PersistentFlags().Bool("verbose", false, "Enable debug logging")

	rootCmd.AddCommand(courseCmd)
	rootCmd.AddCommand(ingestCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest
// priority), then STUDYFORGE_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// app bundles the wired services a command needs.
type app struct {
	store    *store.Store
	logger   *zap.Logger
	provider llm.Provider
	embedder embedding.Embedder

	courses  course.Repo
	ingestor *course.Ingestor
	mastery  *mastery.Service
	memory   *memory.Service
	plans    *plan.Service
	quizzes  *quiz.Service
	agent    *agent.Agent
}

// openApp opens the store and wires every service from environment
// configuration. Callers must Close it.
func openApp(cmd *cobra.Command) (*app, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}

	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	logger := zap.NewNop()
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		logger, err = zap.NewDevelopment()
		if err != nil {
			s.Close()
			return nil, err
		}
	}

	ctx := context.Background()
	provider, err := llm.NewProvider(ctx, llm.ConfigFromEnv(), s.LLMEventRecorder(), logger)
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("configure LLM provider: %w", err)
	}

	embedder, err := embedding.NewEmbedder(embedding.ConfigFromEnv(), logger)
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("configure embedder: %w", err)
	}

	courses := s.CourseRepo()
	masterySvc := mastery.NewService(s.MasteryRepo())
	memorySvc := memory.NewService(s.MemoryRepo())
	planSvc := plan.NewService(s.PlanRepo())

	return &app{
		store:    s,
		logger:   logger,
		provider: provider,
		embedder: embedder,
		courses:  courses,
		ingestor: course.NewIngestor(courses, embedder, 0, logger),
		mastery:  masterySvc,
		memory:   memorySvc,
		plans:    planSvc,
		quizzes: quiz.NewService(
			s.QuizRepo(),
			quiz.NewGenerator(provider, quiz.DefaultGenConfig()),
			masterySvc,
			memorySvc,
			logger,
		),
		agent: agent.New(provider, embedder, courses, masterySvc, memorySvc, planSvc, agent.DefaultConfig(), logger),
	}, nil
}

func (a *app) Close() {
	a.store.Close()
	_ = a.logger.Sync()
}

// userID returns the learner this command acts as.
func userID(cmd *cobra.Command) string {
	u, _ := cmd.Flags().GetString("user")
	return u
}
