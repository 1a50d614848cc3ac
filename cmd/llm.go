package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/calvora/studyforge/internal/llm"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect LLM configuration and usage",
}

var llmCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify the configured LLM provider responds",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := llm.ConfigFromEnv()
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid LLM configuration: %w", err)
		}
		if cfg.Provider == "none" {
			fmt.Println("No LLM provider configured. Set STUDYFORGE_LLM_PROVIDER or an API key env var.")
			return nil
		}

		provider, err := llm.NewProvider(context.Background(), cfg, nil, nil)
		if err != nil {
			return err
		}

		resp, err := provider.Generate(context.Background(), llm.Request{
			Messages:  []llm.Message{{Role: llm.RoleUser, Content: "Reply with the single word: ok"}},
			MaxTokens: 16,
		})
		if err != nil {
			return fmt.Errorf("provider %s did not respond: %w", cfg.Provider, err)
		}

		fmt.Printf("Provider %s (%s) responded: %s\n", cfg.Provider, resp.Model, resp.Text())
		return nil
	},
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregated LLM token usage",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		usage, err := a.store.LLMUsageSummary(context.Background())
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}

		if usage.Requests == 0 {
			fmt.Println("No LLM usage recorded yet.")
			return nil
		}

		fmt.Printf("Requests:      %d (%d failed)\n", usage.Requests, usage.Failures)
		fmt.Printf("Input tokens:  %d\n", usage.InputTokens)
		fmt.Printf("Output tokens: %d\n", usage.OutputTokens)
		fmt.Printf("Total tokens:  %d\n", usage.InputTokens+usage.OutputTokens)
		return nil
	},
}

func init() {
	llmCmd.AddCommand(llmCheckCmd)
	llmCmd.AddCommand(llmStatsCmd)
}
