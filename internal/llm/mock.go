package llm

import (
	"context"
	"encoding/json"
	"sync"
)

// MockResponse is one scripted reply for the MockProvider. Exactly one
// of Content or Err is normally set; an Err response simulates a
// provider failure at that point in the script.
type MockResponse struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// MockProvider replays scripted responses in order and records every
// request it sees. Quiz and agent tests use it to script a whole
// generate-grade-replan flow without a network; inspecting Calls is how
// tests assert on the prompts Studyforge actually built.
type MockProvider struct {
	mu     sync.Mutex
	script []MockResponse

	// Calls holds every request passed to Generate, oldest first.
	Calls []Request
}

// NewMockProvider returns a provider scripted with the given responses.
// With no responses it behaves like an unreachable provider, which is
// the cheapest way to test degraded-mode paths.
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{script: responses}
}

// Generate records the request and pops the next scripted response.
// An exhausted script yields *ErrProviderUnavailable.
func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)

	if len(m.script) == 0 {
		return nil, &ErrProviderUnavailable{}
	}

	next := m.script[0]
	m.script = m.script[1:]

	if next.Err != nil {
		return nil, next.Err
	}
	return &Response{
		Content:    next.Content,
		Usage:      next.Usage,
		Model:      "mock",
		StopReason: "end",
	}, nil
}

func (m *MockProvider) ModelID() string { return "mock" }

// AddResponse appends a response to the script.
func (m *MockProvider) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.script = append(m.script, resp)
}

// CallCount reports how many times Generate has been called.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
