package repository

import (
	"context"

	"github.com/vibast-solutions/ms-go-skillbase/app/entity"
)

type ReviewRepository struct {
	db DBTX
}

func NewReviewRepository(db DBTX) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) Create(ctx context.Context, review *entity.Review) error {
	query := `
		INSERT INTO reviews (id, course_id, learner_id, rating, review, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		review.ID,
		review.CourseID,
		review.LearnerID,
		review.Rating,
		review.Review,
		review.CreatedAt,
		review.UpdatedAt,
	)
	return err
}

func (r *ReviewRepository) FindByCourse(ctx context.Context, courseID string) ([]*entity.Review, error) {
	query := `
		SELECT id, course_id, learner_id, rating, review, created_at, updated_at
		FROM reviews WHERE course_id = ? ORDER BY created_at
	`
	rows, err := r.db.QueryContext(ctx, query, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reviews := make([]*entity.Review, 0)
	for rows.Next() {
		review := &entity.Review{}
		if err := rows.Scan(
			&review.ID,
			&review.CourseID,
			&review.LearnerID,
			&review.Rating,
			&review.Review,
			&review.CreatedAt,
			&review.UpdatedAt,
		); err != nil {
			return nil, err
		}
		reviews = append(reviews, review)
	}
	return reviews, rows.Err()
}
