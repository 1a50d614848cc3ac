package llm

import "context"

// NullProvider is the no-op Provider used when no LLM is configured.
// Every call fails with ErrProviderUnavailable, which drives the callers'
// documented degraded paths (canned agent replies, no generated quizzes)
// deterministically instead of depending on network failures.
type NullProvider struct{}

// NewNullProvider creates a NullProvider.
func NewNullProvider() *NullProvider {
	return &NullProvider{}
}

// Generate always reports the provider as unavailable.
func (*NullProvider) Generate(context.Context, Request) (*Response, error) {
	return nil, &ErrProviderUnavailable{}
}

// ModelID returns "none".
func (*NullProvider) ModelID() string {
	return "none"
}
