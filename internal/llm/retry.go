package llm

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"
)

// RetryProvider retries transient provider failures with exponential
// backoff. The policy distinguishes error classes rather than retrying
// blindly: rate limits and outages retry up to MaxAttempts, a
// schema-invalid response gets exactly one second chance (models often
// produce valid quiz JSON on a re-roll, but two failures in a row means
// the prompt or schema is wrong), and truncation or a cancelled context
// never retries.
type RetryProvider struct {
	inner Provider
	cfg   RetryConfig
}

// WithRetry decorates p with the retry policy in cfg.
func WithRetry(p Provider, cfg RetryConfig) Provider {
	return &RetryProvider{inner: p, cfg: cfg}
}

func (r *RetryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	var lastErr error
	invalidSeen := false

	for attempt := 0; attempt < r.cfg.MaxAttempts; attempt++ {
		resp, err := r.inner.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if !r.shouldRetry(err, &invalidSeen) {
			return nil, err
		}
		if attempt == r.cfg.MaxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(r.nextWait(attempt, err)):
		}
	}

	return nil, lastErr
}

func (r *RetryProvider) ModelID() string {
	return r.inner.ModelID()
}

func (r *RetryProvider) shouldRetry(err error, invalidSeen *bool) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	// Truncated output would truncate again at the same limit.
	var truncated *ErrMaxTokensExceeded
	if errors.As(err, &truncated) {
		return false
	}

	// One re-roll for schema-invalid output, then give up.
	var invalid *ErrInvalidResponse
	if errors.As(err, &invalid) {
		if *invalidSeen {
			return false
		}
		*invalidSeen = true
		return true
	}

	// Everything else (429, 5xx, transport errors) is transient.
	return true
}

// nextWait is InitialWait * Multiplier^attempt capped at MaxWait, with
// 20% jitter either way. A rate limit carrying a RetryAfter hint wins
// over the computed backoff.
func (r *RetryProvider) nextWait(attempt int, err error) time.Duration {
	var rl *ErrRateLimit
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}

	wait := float64(r.cfg.InitialWait) * math.Pow(r.cfg.Multiplier, float64(attempt))
	wait = math.Min(wait, float64(r.cfg.MaxWait))
	wait += wait * 0.2 * (2*rand.Float64() - 1)
	return time.Duration(math.Max(wait, 0))
}
