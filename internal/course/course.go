// Package course models course content: materials uploaded to a course
// and the retrieval chunks derived from them, plus the ingestion service
// that builds those chunks.
package course

import (
	"errors"
	"time"
)

// ErrNotFound is returned by a Repo when no course exists for the ID.
var ErrNotFound = errors.New("course not found")

// Chunk is one retrieval segment of a material. Text is immutable once
// created; the embedding may be empty when the provider failed and may be
// filled in later, never replaced.
type Chunk struct {
	ID        string    `json:"id"`
	Position  int       `json:"position"`
	Text      string    `json:"text"`
	Embedding []float64 `json:"embedding,omitempty"`
}

// Material is one uploaded document after text extraction.
type Material struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	RawText   string    `json:"rawText"`
	PageCount int       `json:"pageCount"`
	Processed bool      `json:"processed"`
	Chunks    []Chunk   `json:"chunks"`
	CreatedAt time.Time `json:"createdAt"`
}

// Course owns materials and the topic list plans are built from. Course
// content is shared read-only across all learners.
type Course struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Topics    []string   `json:"topics"`
	Materials []Material `json:"materials"`
	CreatedAt time.Time  `json:"createdAt"`
}
