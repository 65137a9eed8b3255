package repository

import (
	"context"
	"database/sql"

	"github.com/vibast-solutions/ms-go-skillbase/app/entity"
)

type SubscriptionRepository struct {
	db DBTX
}

func NewSubscriptionRepository(db DBTX) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

func (r *SubscriptionRepository) Create(ctx context.Context, subscription *entity.Subscription) error {
	query := `
		INSERT INTO subscriptions (id, learner_id, course_id, is_approved, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		subscription.ID,
		subscription.LearnerID,
		subscription.CourseID,
		subscription.IsApproved,
		subscription.CreatedAt,
		subscription.UpdatedAt,
	)
	return err
}

func (r *SubscriptionRepository) FindByLearnerAndCourse(ctx context.Context, learnerID, courseID string) (*entity.Subscription, error) {
	query := `
		SELECT id, learner_id, course_id, is_approved, created_at, updated_at
		FROM subscriptions WHERE learner_id = ? AND course_id = ?
	`
	subscription := &entity.Subscription{}
	err := r.db.QueryRowContext(ctx, query, learnerID, courseID).Scan(
		&subscription.ID,
		&subscription.LearnerID,
		&subscription.CourseID,
		&subscription.IsApproved,
		&subscription.CreatedAt,
		&subscription.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return subscription, nil
}
