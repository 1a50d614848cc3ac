package llm

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// NewProvider creates a Provider from configuration, wrapped with retry
// and event-logging middleware. The "none" provider yields a NullProvider
// without middleware: its failures are immediate and not worth retrying
// or recording.
func NewProvider(ctx context.Context, cfg Config, recorder EventRecorder, logger *zap.Logger) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "mock":
		return NewMockProvider(), nil
	case "none", "":
		return NewNullProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	// Wrap with middleware: caller → retry → logging → base
	logged := WithLogging(base, recorder, logger)
	retried := WithRetry(logged, cfg.Retry)

	return retried, nil
}

// resolveModel maps a friendly model name ("claude-haiku",
// "gemini-flash") to the provider's real model ID. Names not in the
// map pass through unchanged so exact model IDs from config still work.
func resolveModel(name string, models map[string]string) string {
	if id, ok := models[name]; ok {
		return id
	}
	return name
}
