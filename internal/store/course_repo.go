package store

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/calvora/studyforge/internal/course"
)

// CourseRepo returns a course.Repo backed by this store.
func (s *Store) CourseRepo() course.Repo {
	return &courseRepo{db: s.db}
}

type courseRepo struct {
	db *gorm.DB
}

func (r *courseRepo) Get(ctx context.Context, id string) (*course.Course, error) {
	var row courseRow
	err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, course.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var c course.Course
	if err := decodeDoc(row.Doc, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *courseRepo) Put(ctx context.Context, c *course.Course) error {
	doc, err := encodeDoc(c)
	if err != nil {
		return err
	}
	row := courseRow{ID: c.ID, Doc: doc}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"doc", "updated_at"}),
		}).
		Create(&row).Error
}

func (r *courseRepo) List(ctx context.Context) ([]*course.Course, error) {
	var rows []courseRow
	if err := r.db.WithContext(ctx).Order("updated_at desc").Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]*course.Course, 0, len(rows))
	for _, row := range rows {
		var c course.Course
		if err := decodeDoc(row.Doc, &c); err != nil {
			return nil, err
		}
		out = append(out, &c)
	}
	return out, nil
}
