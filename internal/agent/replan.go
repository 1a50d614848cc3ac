package agent

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/calvora/studyforge/internal/mastery"
	"github.com/calvora/studyforge/internal/memory"
	"github.com/calvora/studyforge/internal/plan"
)

// Adjustment is one remedial task the replanner inserted.
type Adjustment struct {
	Topic      string `json:"topic"`
	Task       string `json:"task"`
	WeekNumber int    `json:"weekNumber"`
}

// ReplanResult summarizes one self-reflection pass.
type ReplanResult struct {
	WeakTopics  []string     `json:"weakTopics"`
	Adjustments []Adjustment `json:"adjustments"`
}

// SelfReflectAndReplan inspects the learner's mastery, inserts a review
// task into the plan for every weak topic, and journals each insertion.
// The pass is idempotent: a review task already present in its target
// week is not inserted again and not re-journaled. A missing plan is not
// an error; there is simply nothing to adjust.
func (a *Agent) SelfReflectAndReplan(ctx context.Context, userID, courseID string) (*ReplanResult, error) {
	snap, err := a.mastery.Snapshot(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}

	result := &ReplanResult{WeakTopics: snap.WeakTopics}
	if len(snap.WeakTopics) == 0 {
		return result, nil
	}

	p, err := a.plans.Get(ctx, userID, courseID)
	if errors.Is(err, plan.ErrNotFound) {
		a.logger.Info("no plan to replan", zap.String("course_id", courseID))
		return result, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load plan: %w", err)
	}

	now := a.now()
	mutated := false
	for _, topic := range snap.WeakTopics {
		weekNumber, added := p.AddRemedialTask(topic, now)
		if !added {
			continue
		}
		mutated = true
		result.Adjustments = append(result.Adjustments, Adjustment{
			Topic:      topic,
			Task:       plan.RemedialTask(topic),
			WeekNumber: weekNumber,
		})
	}

	if !mutated {
		return result, nil
	}

	if err := a.plans.Save(ctx, p); err != nil {
		return nil, err
	}

	_, err = a.memory.Update(ctx, userID, courseID, func(m *memory.LearningMemory) {
		for _, adj := range result.Adjustments {
			m.LogPlanAdjustment(memory.PlanAdjustment{
				Topic:      adj.Topic,
				Task:       adj.Task,
				WeekNumber: adj.WeekNumber,
				Reason:     replanReason(snap, adj.Topic),
				Timestamp:  now,
			})
		}
	})
	if err != nil {
		return nil, err
	}

	a.logger.Info("plan adjusted for weak topics",
		zap.String("user_id", userID),
		zap.String("course_id", courseID),
		zap.Int("insertions", len(result.Adjustments)),
	)
	return result, nil
}

func replanReason(snap *mastery.Snapshot, topic string) string {
	for _, t := range snap.Topics {
		if t.Topic == topic {
			return fmt.Sprintf("mastery %d classified %s", t.MasteryScore, t.Classification)
		}
	}
	return "classified weak"
}
