package store

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"
)

// Aggregates persist as one JSON document per row. Key columns exist only
// for lookup; the document is the source of truth.

type courseRow struct {
	ID        string         `gorm:"primaryKey"`
	Doc       datatypes.JSON `gorm:"not null"`
	UpdatedAt time.Time
}

func (courseRow) TableName() string { return "courses" }

type masteryRow struct {
	UserID    string         `gorm:"primaryKey"`
	CourseID  string         `gorm:"primaryKey"`
	Topic     string         `gorm:"primaryKey"`
	Doc       datatypes.JSON `gorm:"not null"`
	UpdatedAt time.Time
}

func (masteryRow) TableName() string { return "topic_mastery" }

type quizRow struct {
	ID        string         `gorm:"primaryKey"`
	UserID    string         `gorm:"index:idx_quiz_user_course"`
	CourseID  string         `gorm:"index:idx_quiz_user_course"`
	Doc       datatypes.JSON `gorm:"not null"`
	UpdatedAt time.Time
}

func (quizRow) TableName() string { return "quizzes" }

type memoryRow struct {
	UserID    string         `gorm:"primaryKey"`
	CourseID  string         `gorm:"primaryKey"`
	Doc       datatypes.JSON `gorm:"not null"`
	UpdatedAt time.Time
}

func (memoryRow) TableName() string { return "learning_memory" }

type planRow struct {
	UserID    string         `gorm:"primaryKey"`
	CourseID  string         `gorm:"primaryKey"`
	Doc       datatypes.JSON `gorm:"not null"`
	UpdatedAt time.Time
}

func (planRow) TableName() string { return "learning_plans" }

type llmEventRow struct {
	ID           uint `gorm:"primaryKey;autoIncrement"`
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	CreatedAt    time.Time
}

func (llmEventRow) TableName() string { return "llm_events" }

// encodeDoc marshals an aggregate into its document column.
func encodeDoc(v any) (datatypes.JSON, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return datatypes.JSON(raw), nil
}

// decodeDoc unmarshals a document column into the aggregate.
func decodeDoc(doc datatypes.JSON, v any) error {
	if err := json.Unmarshal(doc, v); err != nil {
		return fmt.Errorf("decode document: %w", err)
	}
	return nil
}
