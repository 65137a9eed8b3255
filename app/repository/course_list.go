package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/vibast-solutions/ms-go-skillbase/app/entity"
)

// CourseListKind selects the table backing a CourseList.
type CourseListKind string

const (
	CourseListCart     CourseListKind = "carts"
	CourseListWishlist CourseListKind = "wishlists"
)

var errUnknownCourseList = errors.New("unknown course list")

// CourseListRepository stores carts and wishlists, which share the same shape.
type CourseListRepository struct {
	db    DBTX
	table string
}

func NewCourseListRepository(db DBTX, kind CourseListKind) *CourseListRepository {
	return &CourseListRepository{db: db, table: string(kind)}
}

func (r *CourseListRepository) checkTable() error {
	switch CourseListKind(r.table) {
	case CourseListCart, CourseListWishlist:
		return nil
	}
	return errUnknownCourseList
}

func (r *CourseListRepository) FindByLearner(ctx context.Context, learnerID string) (*entity.CourseList, error) {
	if err := r.checkTable(); err != nil {
		return nil, err
	}

	query := `
		SELECT id, learner_id, course_ids_json, created_at, updated_at
		FROM ` + r.table + ` WHERE learner_id = ?
	`
	list := &entity.CourseList{}
	var courseIDs string
	err := r.db.QueryRowContext(ctx, query, learnerID).Scan(
		&list.ID,
		&list.LearnerID,
		&courseIDs,
		&list.CreatedAt,
		&list.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	if list.CourseIDs, err = unmarshalIDs(courseIDs); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *CourseListRepository) Create(ctx context.Context, list *entity.CourseList) error {
	if err := r.checkTable(); err != nil {
		return err
	}
	courseIDs, err := marshalIDs(list.CourseIDs)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO ` + r.table + ` (id, learner_id, course_ids_json, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`
	_, err = r.db.ExecContext(ctx, query, list.ID, list.LearnerID, courseIDs, list.CreatedAt, list.UpdatedAt)
	return err
}

func (r *CourseListRepository) Update(ctx context.Context, list *entity.CourseList) error {
	if err := r.checkTable(); err != nil {
		return err
	}
	courseIDs, err := marshalIDs(list.CourseIDs)
	if err != nil {
		return err
	}

	query := `UPDATE ` + r.table + ` SET course_ids_json = ?, updated_at = ? WHERE id = ?`
	list.UpdatedAt = time.Now()
	_, err = r.db.ExecContext(ctx, query, courseIDs, list.UpdatedAt, list.ID)
	return err
}
