package store

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/calvora/studyforge/internal/plan"
)

// PlanRepo returns a plan.Repo backed by this store.
func (s *Store) PlanRepo() plan.Repo {
	return &planRepo{db: s.db}
}

type planRepo struct {
	db *gorm.DB
}

func (r *planRepo) Get(ctx context.Context, userID, courseID string) (*plan.LearningPlan, error) {
	var row planRow
	err := r.db.WithContext(ctx).
		First(&row, "user_id = ? AND course_id = ?", userID, courseID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, plan.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var p plan.LearningPlan
	if err := decodeDoc(row.Doc, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *planRepo) Put(ctx context.Context, p *plan.LearningPlan) error {
	doc, err := encodeDoc(p)
	if err != nil {
		return err
	}
	row := planRow{UserID: p.UserID, CourseID: p.CourseID, Doc: doc}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "course_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"doc", "updated_at"}),
		}).
		Create(&row).Error
}
