package embedding

import (
	"context"
	"fmt"
	"os"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// DefaultModel is the embedding model used when none is configured.
const DefaultModel = "text-embedding-3-small"

// Config holds embedding provider configuration.
type Config struct {
	// Provider selects the embedding backend: "openai" or "none".
	Provider string
	APIKey   string
	Model    string
	BaseURL  string // Optional override for OpenAI-compatible APIs.
}

// ConfigFromEnv builds a Config from environment variables. Without a key
// the provider is "none" and ingestion runs embedding-free.
func ConfigFromEnv() Config {
	cfg := Config{Provider: "none", Model: DefaultModel}

	key := os.Getenv("STUDYFORGE_EMBEDDING_API_KEY")
	if key == "" {
		key = os.Getenv("OPENAI_API_KEY")
	}
	if key != "" {
		cfg.Provider = "openai"
		cfg.APIKey = key
	}
	if m := os.Getenv("STUDYFORGE_EMBEDDING_MODEL"); m != "" {
		cfg.Model = m
	}
	if u := os.Getenv("STUDYFORGE_EMBEDDING_BASE_URL"); u != "" {
		cfg.BaseURL = u
	}
	return cfg
}

// NewEmbedder creates an Embedder from configuration.
func NewEmbedder(cfg Config, logger *zap.Logger) (Embedder, error) {
	switch cfg.Provider {
	case "openai":
		return NewOpenAIEmbedder(cfg, logger)
	case "none", "":
		return NewNullEmbedder(), nil
	default:
		return nil, fmt.Errorf("unknown embedding provider: %q", cfg.Provider)
	}
}

// OpenAIEmbedder computes embeddings through the OpenAI embeddings API.
type OpenAIEmbedder struct {
	client *openai.Client
	model  string
	logger *zap.Logger
}

// NewOpenAIEmbedder creates an OpenAI-backed embedder.
func NewOpenAIEmbedder(cfg Config, logger *zap.Logger) (*OpenAIEmbedder, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai API key is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	return &OpenAIEmbedder{
		client: openai.NewClientWithConfig(clientCfg),
		model:  model,
		logger: logger,
	}, nil
}

// Embed returns the embedding vector for text, or nil when the provider
// call fails. Failures are logged and swallowed so callers keep going.
func (e *OpenAIEmbedder) Embed(ctx context.Context, text string) []float64 {
	if text == "" {
		return nil
	}

	resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: []string{text},
		Model: openai.EmbeddingModel(e.model),
	})
	if err != nil {
		e.logger.Warn("embedding call failed", zap.String("model", e.model), zap.Error(err))
		return nil
	}
	if len(resp.Data) == 0 {
		e.logger.Warn("embedding response empty", zap.String("model", e.model))
		return nil
	}

	vec := make([]float64, len(resp.Data[0].Embedding))
	for i, v := range resp.Data[0].Embedding {
		vec[i] = float64(v)
	}
	return vec
}
