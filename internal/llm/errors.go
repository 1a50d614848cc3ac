package llm

import (
	"encoding/json"
	"fmt"
	"time"
)

// Typed errors let callers decide how to degrade. The quiz generator
// surfaces ErrProviderUnavailable as "quiz generation needs an LLM
// provider", the agent swallows every provider error and serves its
// fallback reply, and the retry decorator keys its policy off these
// types (see RetryProvider.shouldRetry).

// ErrRateLimit reports an HTTP 429 from the provider. RetryAfter is the
// provider-suggested wait, zero when the provider gave none.
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	return fmt.Sprintf("rate limited (retry after %s): %v", e.RetryAfter, e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrInvalidResponse reports model output that failed schema validation
// or was not the JSON the request asked for. Content carries the
// offending output so quiz generation failures can be journaled.
type ErrInvalidResponse struct {
	Content json.RawMessage
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("invalid LLM response: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrProviderUnavailable reports a provider that is down, unreachable,
// or not configured at all. The NullProvider returns this for every
// call, which is how Studyforge runs without API keys.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err == nil {
		return "LLM provider unavailable"
	}
	return fmt.Sprintf("LLM provider unavailable: %v", e.Err)
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrMaxTokensExceeded reports output cut off at the MaxTokens limit.
// Truncated JSON is useless to the quiz parser, and a retry would hit
// the same limit, so this is never retried. Content holds the partial
// output.
type ErrMaxTokensExceeded struct {
	Content json.RawMessage
}

func (e *ErrMaxTokensExceeded) Error() string {
	return "LLM response truncated: max tokens exceeded"
}
