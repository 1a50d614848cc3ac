package store

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/calvora/studyforge/internal/mastery"
)

// MasteryRepo returns a mastery.Repo backed by this store.
func (s *Store) MasteryRepo() mastery.Repo {
	return &masteryRepo{db: s.db}
}

type masteryRepo struct {
	db *gorm.DB
}

func (r *masteryRepo) Get(ctx context.Context, userID, courseID, topic string) (*mastery.TopicMastery, error) {
	var row masteryRow
	err := r.db.WithContext(ctx).
		First(&row, "user_id = ? AND course_id = ? AND topic = ?", userID, courseID, topic).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, mastery.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var m mastery.TopicMastery
	if err := decodeDoc(row.Doc, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *masteryRepo) Put(ctx context.Context, m *mastery.TopicMastery) error {
	doc, err := encodeDoc(m)
	if err != nil {
		return err
	}
	row := masteryRow{UserID: m.UserID, CourseID: m.CourseID, Topic: m.Topic, Doc: doc}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "course_id"}, {Name: "topic"}},
			DoUpdates: clause.AssignmentColumns([]string{"doc", "updated_at"}),
		}).
		Create(&row).Error
}

func (r *masteryRepo) ListByCourse(ctx context.Context, userID, courseID string) ([]*mastery.TopicMastery, error) {
	var rows []masteryRow
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Order("topic").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]*mastery.TopicMastery, 0, len(rows))
	for _, row := range rows {
		var m mastery.TopicMastery
		if err := decodeDoc(row.Doc, &m); err != nil {
			return nil, err
		}
		out = append(out, &m)
	}
	return out, nil
}
