// Package plan models the learner's week-by-week study plan and the
// insert-only remedial mutation the replanner applies to it.
package plan

import (
	"errors"
	"fmt"
	"time"

	"github.com/samber/lo"
)

// ErrNotFound is returned by a Repo when no plan exists for the key.
var ErrNotFound = errors.New("learning plan not found")

// WeekStatus is the progress state of one plan week.
type WeekStatus string

const (
	StatusPending    WeekStatus = "pending"
	StatusInProgress WeekStatus = "in-progress"
	StatusCompleted  WeekStatus = "completed"
)

// Week is one ordered slice of the plan.
type Week struct {
	Number int        `json:"number"`
	Topics []string   `json:"topics"`
	Tasks  []string   `json:"tasks"`
	Status WeekStatus `json:"status"`
}

// LearningPlan is the persisted study plan for one (user, course).
// Weeks keep their original order; replanning only appends tasks.
type LearningPlan struct {
	UserID    string    `json:"userId"`
	CourseID  string    `json:"courseId"`
	Weeks     []Week    `json:"weeks"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// New builds a plan with one week per topic group, all pending.
func New(userID, courseID string, topicGroups [][]string, now time.Time) *LearningPlan {
	weeks := lo.Map(topicGroups, func(topics []string, i int) Week {
		return Week{
			Number: i + 1,
			Topics: topics,
			Tasks:  studyTasks(topics),
			Status: StatusPending,
		}
	})
	return &LearningPlan{
		UserID:    userID,
		CourseID:  courseID,
		Weeks:     weeks,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func studyTasks(topics []string) []string {
	return lo.Map(topics, func(topic string, _ int) string {
		return fmt.Sprintf("Study: %s", topic)
	})
}

// RemedialTask is the task string the replanner inserts for a weak topic.
func RemedialTask(topic string) string {
	return fmt.Sprintf("Review: %s", topic)
}

// AddRemedialTask appends a review task for topic to the first week whose
// status is not completed. Idempotent: if that week already contains the
// task, nothing changes. Returns the target week number and whether the
// plan was mutated; weekNumber is 0 when every week is completed.
func (p *LearningPlan) AddRemedialTask(topic string, now time.Time) (weekNumber int, added bool) {
	task := RemedialTask(topic)

	for i := range p.Weeks {
		if p.Weeks[i].Status == StatusCompleted {
			continue
		}
		if lo.Contains(p.Weeks[i].Tasks, task) {
			return p.Weeks[i].Number, false
		}
		p.Weeks[i].Tasks = append(p.Weeks[i].Tasks, task)
		p.UpdatedAt = now
		return p.Weeks[i].Number, true
	}

	return 0, false
}

// CurrentWeek returns the first non-completed week, or nil when the plan
// is fully completed.
func (p *LearningPlan) CurrentWeek() *Week {
	for i := range p.Weeks {
		if p.Weeks[i].Status != StatusCompleted {
			return &p.Weeks[i]
		}
	}
	return nil
}
