package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/vibast-solutions/ms-go-skillbase/app/entity"
)

const courseColumns = `id, instructor_id, category_id, title, description, language, is_approved,
		       thumbnail, promo_video, section_ids_json, created_at, updated_at`

type CourseRepository struct {
	db DBTX
}

func NewCourseRepository(db DBTX) *CourseRepository {
	return &CourseRepository{db: db}
}

func (r *CourseRepository) Create(ctx context.Context, course *entity.Course) error {
	sectionIDs, err := marshalIDs(course.SectionIDs)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO courses (id, instructor_id, category_id, title, description, language, is_approved,
			thumbnail, promo_video, section_ids_json, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = r.db.ExecContext(ctx, query,
		course.ID,
		course.InstructorID,
		course.CategoryID,
		course.Title,
		course.Description,
		course.Language,
		course.IsApproved,
		course.Thumbnail,
		course.PromoVideo,
		sectionIDs,
		course.CreatedAt,
		course.UpdatedAt,
	)
	return err
}

func (r *CourseRepository) FindByID(ctx context.Context, id string) (*entity.Course, error) {
	query := `
		SELECT ` + courseColumns + `
		FROM courses WHERE id = ?
	`
	course, err := scanCourse(r.db.QueryRowContext(ctx, query, id).Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return course, nil
}

// FindAll lists courses, restricted to one instructor when instructorID is not empty.
func (r *CourseRepository) FindAll(ctx context.Context, instructorID string) ([]*entity.Course, error) {
	query := `
		SELECT ` + courseColumns + `
		FROM courses
	`
	var args []interface{}
	if instructorID != "" {
		query += ` WHERE instructor_id = ?`
		args = append(args, instructorID)
	}
	query += ` ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	courses := make([]*entity.Course, 0)
	for rows.Next() {
		course, err := scanCourse(rows.Scan)
		if err != nil {
			return nil, err
		}
		courses = append(courses, course)
	}
	return courses, rows.Err()
}

func (r *CourseRepository) Update(ctx context.Context, course *entity.Course) error {
	sectionIDs, err := marshalIDs(course.SectionIDs)
	if err != nil {
		return err
	}

	query := `
		UPDATE courses SET
			title = ?,
			description = ?,
			language = ?,
			is_approved = ?,
			thumbnail = ?,
			promo_video = ?,
			section_ids_json = ?,
			updated_at = ?
		WHERE id = ?
	`
	course.UpdatedAt = time.Now()
	_, err = r.db.ExecContext(ctx, query,
		course.Title,
		course.Description,
		course.Language,
		course.IsApproved,
		course.Thumbnail,
		course.PromoVideo,
		sectionIDs,
		course.UpdatedAt,
		course.ID,
	)
	return err
}

func scanCourse(scan rowScanner) (*entity.Course, error) {
	course := &entity.Course{}
	var sectionIDs string
	if err := scan(
		&course.ID,
		&course.InstructorID,
		&course.CategoryID,
		&course.Title,
		&course.Description,
		&course.Language,
		&course.IsApproved,
		&course.Thumbnail,
		&course.PromoVideo,
		&sectionIDs,
		&course.CreatedAt,
		&course.UpdatedAt,
	); err != nil {
		return nil, err
	}

	ids, err := unmarshalIDs(sectionIDs)
	if err != nil {
		return nil, err
	}
	course.SectionIDs = ids
	return course, nil
}
