package store

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/calvora/studyforge/internal/memory"
)

// MemoryRepo returns a memory.Repo backed by this store.
func (s *Store) MemoryRepo() memory.Repo {
	return &memoryRepo{db: s.db}
}

type memoryRepo struct {
	db *gorm.DB
}

func (r *memoryRepo) Get(ctx context.Context, userID, courseID string) (*memory.LearningMemory, error) {
	var row memoryRow
	err := r.db.WithContext(ctx).
		First(&row, "user_id = ? AND course_id = ?", userID, courseID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, memory.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var m memory.LearningMemory
	if err := decodeDoc(row.Doc, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *memoryRepo) Put(ctx context.Context, m *memory.LearningMemory) error {
	doc, err := encodeDoc(m)
	if err != nil {
		return err
	}
	row := memoryRow{UserID: m.UserID, CourseID: m.CourseID, Doc: doc}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "course_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"doc", "updated_at"}),
		}).
		Create(&row).Error
}
