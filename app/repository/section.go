package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/vibast-solutions/ms-go-skillbase/app/entity"
)

type SectionRepository struct {
	db DBTX
}

func NewSectionRepository(db DBTX) *SectionRepository {
	return &SectionRepository{db: db}
}

// CreateForCourse inserts the section and stores the course with the section appended.
func (r *SectionRepository) CreateForCourse(ctx context.Context, section *entity.Section, course *entity.Course) error {
	return inTx(ctx, r.db, func(tx DBTX) error {
		lectureIDs, err := marshalIDs(section.LectureIDs)
		if err != nil {
			return err
		}

		query := `
			INSERT INTO sections (id, course_id, title, lecture_ids_json, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?)
		`
		if _, err = tx.ExecContext(ctx, query,
			section.ID,
			section.CourseID,
			section.Title,
			lectureIDs,
			section.CreatedAt,
			section.UpdatedAt,
		); err != nil {
			return err
		}

		course.SectionIDs = append(course.SectionIDs, section.ID)
		return NewCourseRepository(tx).Update(ctx, course)
	})
}

func (r *SectionRepository) FindByID(ctx context.Context, id string) (*entity.Section, error) {
	query := `
		SELECT id, course_id, title, lecture_ids_json, created_at, updated_at
		FROM sections WHERE id = ?
	`
	section, err := scanSection(r.db.QueryRowContext(ctx, query, id).Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return section, nil
}

func (r *SectionRepository) FindByCourse(ctx context.Context, courseID string) ([]*entity.Section, error) {
	query := `
		SELECT id, course_id, title, lecture_ids_json, created_at, updated_at
		FROM sections WHERE course_id = ? ORDER BY created_at
	`
	rows, err := r.db.QueryContext(ctx, query, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sections := make([]*entity.Section, 0)
	for rows.Next() {
		section, err := scanSection(rows.Scan)
		if err != nil {
			return nil, err
		}
		sections = append(sections, section)
	}
	return sections, rows.Err()
}

func (r *SectionRepository) Update(ctx context.Context, section *entity.Section) error {
	lectureIDs, err := marshalIDs(section.LectureIDs)
	if err != nil {
		return err
	}

	query := `
		UPDATE sections SET
			title = ?,
			lecture_ids_json = ?,
			updated_at = ?
		WHERE id = ?
	`
	section.UpdatedAt = time.Now()
	_, err = r.db.ExecContext(ctx, query, section.Title, lectureIDs, section.UpdatedAt, section.ID)
	return err
}

// DeleteFromCourse removes the section, its lectures, and its reference on the course.
func (r *SectionRepository) DeleteFromCourse(ctx context.Context, section *entity.Section, course *entity.Course) error {
	return inTx(ctx, r.db, func(tx DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM lectures WHERE section_id = ?`, section.ID); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM sections WHERE id = ?`, section.ID); err != nil {
			return err
		}

		remaining := make([]string, 0, len(course.SectionIDs))
		for _, id := range course.SectionIDs {
			if id != section.ID {
				remaining = append(remaining, id)
			}
		}
		course.SectionIDs = remaining
		return NewCourseRepository(tx).Update(ctx, course)
	})
}

func scanSection(scan rowScanner) (*entity.Section, error) {
	section := &entity.Section{}
	var lectureIDs string
	if err := scan(
		&section.ID,
		&section.CourseID,
		&section.Title,
		&lectureIDs,
		&section.CreatedAt,
		&section.UpdatedAt,
	); err != nil {
		return nil, err
	}

	ids, err := unmarshalIDs(lectureIDs)
	if err != nil {
		return nil, err
	}
	section.LectureIDs = ids
	return section, nil
}
