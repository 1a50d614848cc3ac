package store

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/calvora/studyforge/internal/llm"
)

// LLMEventRecorder returns an llm.EventRecorder backed by this store.
func (s *Store) LLMEventRecorder() llm.EventRecorder {
	return &llmEventRecorder{db: s.db}
}

type llmEventRecorder struct {
	db *gorm.DB
}

func (r *llmEventRecorder) RecordLLMRequest(ctx context.Context, ev llm.RequestEvent) error {
	row := llmEventRow{
		Provider:     ev.Provider,
		Model:        ev.Model,
		Purpose:      ev.Purpose,
		InputTokens:  ev.InputTokens,
		OutputTokens: ev.OutputTokens,
		LatencyMs:    ev.LatencyMs,
		Success:      ev.Success,
		ErrorMessage: ev.ErrorMessage,
		CreatedAt:    time.Now(),
	}
	return r.db.WithContext(ctx).Create(&row).Error
}

// LLMUsage aggregates the request log for the stats command.
type LLMUsage struct {
	Requests     int64
	Failures     int64
	InputTokens  int64
	OutputTokens int64
}

// LLMUsageSummary totals the LLM request log.
func (s *Store) LLMUsageSummary(ctx context.Context) (*LLMUsage, error) {
	var u LLMUsage

	if err := s.db.WithContext(ctx).Model(&llmEventRow{}).Count(&u.Requests).Error; err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(&llmEventRow{}).
		Where("success = ?", false).Count(&u.Failures).Error; err != nil {
		return nil, err
	}

	type sums struct {
		InputTotal  int64
		OutputTotal int64
	}
	var t sums
	err := s.db.WithContext(ctx).Model(&llmEventRow{}).
		Select("COALESCE(SUM(input_tokens),0) as input_total, COALESCE(SUM(output_tokens),0) as output_total").
		Scan(&t).Error
	if err != nil {
		return nil, err
	}
	u.InputTokens = t.InputTotal
	u.OutputTokens = t.OutputTotal

	return &u, nil
}
