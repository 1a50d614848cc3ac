// Package embedding computes vector embeddings for chunks and queries.
//
// Embedding failures are absorbed, not surfaced: a failed call yields an
// empty vector so document ingestion keeps going and the retriever's
// keyword fallback covers the gap.
package embedding

import "context"

// Embedder turns text into a vector. An empty result means the provider
// failed or is not configured; callers must treat that as a degraded
// state, never an error.
type Embedder interface {
	Embed(ctx context.Context, text string) []float64
}

// NullEmbedder is the no-op Embedder used when no provider is configured.
// It always returns an empty vector, which deterministically selects the
// retriever's keyword mode.
type NullEmbedder struct{}

// NewNullEmbedder creates a NullEmbedder.
func NewNullEmbedder() *NullEmbedder {
	return &NullEmbedder{}
}

// Embed returns nil.
func (*NullEmbedder) Embed(context.Context, string) []float64 {
	return nil
}

// MockEmbedder is a deterministic Embedder for tests: it returns the
// vector registered for the exact text, or nil for unknown text.
type MockEmbedder struct {
	Vectors map[string][]float64
	Calls   []string
}

// NewMockEmbedder creates a MockEmbedder with the given canned vectors.
func NewMockEmbedder(vectors map[string][]float64) *MockEmbedder {
	return &MockEmbedder{Vectors: vectors}
}

// Embed returns the canned vector for text and records the call.
func (m *MockEmbedder) Embed(_ context.Context, text string) []float64 {
	m.Calls = append(m.Calls, text)
	return m.Vectors[text]
}
