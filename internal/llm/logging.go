package llm

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// RequestEvent captures one LLM API call for the persisted request log.
type RequestEvent struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// EventRecorder persists LLM request events. The store package provides
// the production implementation.
type EventRecorder interface {
	RecordLLMRequest(ctx context.Context, ev RequestEvent) error
}

// LoggingProvider is a decorator that records every LLM request as an event.
type LoggingProvider struct {
	inner    Provider
	recorder EventRecorder
	logger   *zap.Logger
}

// WithLogging wraps a Provider with event logging. recorder may be nil,
// in which case events only go to the structured log.
func WithLogging(p Provider, recorder EventRecorder, logger *zap.Logger) Provider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LoggingProvider{inner: p, recorder: recorder, logger: logger}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	purpose := PurposeFrom(ctx)

	resp, err := l.inner.Generate(ctx, req)

	ev := RequestEvent{
		Provider:  l.inner.ModelID(),
		Model:     l.inner.ModelID(),
		Purpose:   purpose,
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   err == nil,
	}

	if resp != nil {
		ev.InputTokens = resp.Usage.InputTokens
		ev.OutputTokens = resp.Usage.OutputTokens
		ev.Model = resp.Model
	}
	if err != nil {
		ev.ErrorMessage = err.Error()
	}

	l.logger.Debug("llm request",
		zap.String("model", ev.Model),
		zap.String("purpose", purpose),
		zap.Int64("latency_ms", ev.LatencyMs),
		zap.Bool("success", ev.Success),
	)

	// Log the event but don't fail the request if logging fails.
	if l.recorder != nil {
		if logErr := l.recorder.RecordLLMRequest(ctx, ev); logErr != nil {
			l.logger.Warn("failed to record LLM request event", zap.Error(logErr))
		}
	}

	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}
