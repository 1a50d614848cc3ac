package store

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/calvora/studyforge/internal/quiz"
)

// QuizRepo returns a quiz.Repo backed by this store.
func (s *Store) QuizRepo() quiz.Repo {
	return &quizRepo{db: s.db}
}

type quizRepo struct {
	db *gorm.DB
}

func (r *quizRepo) Get(ctx context.Context, id string) (*quiz.AdaptiveQuiz, error) {
	var row quizRow
	err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, quiz.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var q quiz.AdaptiveQuiz
	if err := decodeDoc(row.Doc, &q); err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *quizRepo) Put(ctx context.Context, q *quiz.AdaptiveQuiz) error {
	doc, err := encodeDoc(q)
	if err != nil {
		return err
	}
	row := quizRow{ID: q.ID, UserID: q.UserID, CourseID: q.CourseID, Doc: doc}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"doc", "updated_at"}),
		}).
		Create(&row).Error
}

func (r *quizRepo) ListByCourse(ctx context.Context, userID, courseID string) ([]*quiz.AdaptiveQuiz, error) {
	var rows []quizRow
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Order("updated_at desc").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]*quiz.AdaptiveQuiz, 0, len(rows))
	for _, row := range rows {
		var q quiz.AdaptiveQuiz
		if err := decodeDoc(row.Doc, &q); err != nil {
			return nil, err
		}
		out = append(out, &q)
	}
	return out, nil
}
