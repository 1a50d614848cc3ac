package course

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/calvora/studyforge/internal/chunker"
	"github.com/calvora/studyforge/internal/embedding"
	"github.com/calvora/studyforge/internal/retrieval"
)

// Repo persists course documents.
type Repo interface {
	Get(ctx context.Context, id string) (*Course, error)
	Put(ctx context.Context, c *Course) error
	List(ctx context.Context) ([]*Course, error)
}

// Ingestor turns extracted document text into embedded chunks on the
// course record. Embedding calls are per-chunk and independent: a failed
// call leaves that chunk without a vector and ingestion keeps going.
type Ingestor struct {
	repo      Repo
	embedder  embedding.Embedder
	chunkSize int
	logger    *zap.Logger
}

// NewIngestor creates an ingestion service. chunkSize <= 0 selects the
// chunker default.
func NewIngestor(repo Repo, embedder embedding.Embedder, chunkSize int, logger *zap.Logger) *Ingestor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Ingestor{repo: repo, embedder: embedder, chunkSize: chunkSize, logger: logger}
}

// IngestMaterial chunks and embeds text, appends the resulting material
// to the course, and persists it. The page count comes from the file
// extraction collaborator; binary parsing happens upstream.
func (s *Ingestor) IngestMaterial(ctx context.Context, courseID, title, text string, pageCount int) (*Material, error) {
	if text == "" {
		return nil, fmt.Errorf("material %q has no text", title)
	}

	c, err := s.repo.Get(ctx, courseID)
	if err != nil {
		return nil, err
	}

	segments := chunker.Chunk(text, s.chunkSize)

	material := Material{
		ID:        uuid.NewString(),
		Title:     title,
		RawText:   text,
		PageCount: pageCount,
		CreatedAt: time.Now(),
	}

	embedded := 0
	for i, segment := range segments {
		vec := s.embedder.Embed(ctx, segment)
		if len(vec) > 0 {
			embedded++
		}
		material.Chunks = append(material.Chunks, Chunk{
			ID:        uuid.NewString(),
			Position:  i,
			Text:      segment,
			Embedding: vec,
		})
	}
	material.Processed = true

	c.Materials = append(c.Materials, material)
	if err := s.repo.Put(ctx, c); err != nil {
		return nil, fmt.Errorf("save course %q: %w", courseID, err)
	}

	s.logger.Info("material ingested",
		zap.String("course_id", courseID),
		zap.String("material", title),
		zap.Int("chunks", len(segments)),
		zap.Int("embedded", embedded),
	)
	return &c.Materials[len(c.Materials)-1], nil
}

// CreateCourse persists a new course shell.
func (s *Ingestor) CreateCourse(ctx context.Context, title string, topics []string) (*Course, error) {
	if title == "" {
		return nil, fmt.Errorf("course title is required")
	}
	c := &Course{
		ID:        uuid.NewString(),
		Title:     title,
		Topics:    topics,
		CreatedAt: time.Now(),
	}
	if err := s.repo.Put(ctx, c); err != nil {
		return nil, fmt.Errorf("save course: %w", err)
	}
	return c, nil
}

// Corpus flattens a course's materials into retrieval chunks, preserving
// material and chunk order so retrieval ties resolve by insertion order.
func Corpus(c *Course) []retrieval.Chunk {
	var corpus []retrieval.Chunk
	for _, m := range c.Materials {
		for _, ch := range m.Chunks {
			corpus = append(corpus, retrieval.Chunk{
				ID:         ch.ID,
				MaterialID: m.ID,
				Source:     m.Title,
				Position:   ch.Position,
				Text:       ch.Text,
				Embedding:  ch.Embedding,
			})
		}
	}
	return corpus
}
