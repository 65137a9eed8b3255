package repository

import (
	"context"
	"database/sql"

	"github.com/vibast-solutions/ms-go-skillbase/app/entity"
)

// SectionContentRepository stores lectures, quizzes, quiz questions and assignments attached to a section.
type SectionContentRepository struct {
	db DBTX
}

func NewSectionContentRepository(db DBTX) *SectionContentRepository {
	return &SectionContentRepository{db: db}
}

// CreateLecture inserts the lecture and appends it to the section in one transaction.
func (r *SectionContentRepository) CreateLecture(ctx context.Context, lecture *entity.Lecture, section *entity.Section) error {
	return inTx(ctx, r.db, func(tx DBTX) error {
		query := `
			INSERT INTO lectures (id, section_id, title, description, video_url, reading_url, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`
		if _, err := tx.ExecContext(ctx, query,
			lecture.ID,
			lecture.SectionID,
			lecture.Title,
			lecture.Description,
			lecture.VideoURL,
			lecture.ReadingURL,
			lecture.CreatedAt,
			lecture.UpdatedAt,
		); err != nil {
			return err
		}

		section.LectureIDs = append(section.LectureIDs, lecture.ID)
		return NewSectionRepository(tx).Update(ctx, section)
	})
}

func (r *SectionContentRepository) CreateQuiz(ctx context.Context, quiz *entity.Quiz) error {
	query := `
		INSERT INTO quizzes (id, section_id, title, total_marks, pass_marks, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		quiz.ID,
		quiz.SectionID,
		quiz.Title,
		quiz.TotalMarks,
		quiz.PassMarks,
		quiz.CreatedAt,
		quiz.UpdatedAt,
	)
	return err
}

func (r *SectionContentRepository) CreateAssignment(ctx context.Context, assignment *entity.Assignment) error {
	query := `
		INSERT INTO assignments (id, section_id, title, description, total_marks, pass_marks, file_url, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		assignment.ID,
		assignment.SectionID,
		assignment.Title,
		assignment.Description,
		assignment.TotalMarks,
		assignment.PassMarks,
		assignment.FileURL,
		assignment.CreatedAt,
		assignment.UpdatedAt,
	)
	return err
}

func (r *SectionContentRepository) FindQuizByID(ctx context.Context, id string) (*entity.Quiz, error) {
	query := `SELECT id, section_id, title, total_marks, pass_marks, created_at, updated_at FROM quizzes WHERE id = ?`

	quiz := &entity.Quiz{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&quiz.ID,
		&quiz.SectionID,
		&quiz.Title,
		&quiz.TotalMarks,
		&quiz.PassMarks,
		&quiz.CreatedAt,
		&quiz.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return quiz, nil
}

func (r *SectionContentRepository) CreateQuizQuestion(ctx context.Context, question *entity.QuizQuestion) error {
	options, err := marshalIDs(question.Options)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO quiz_questions (id, quiz_id, question, options_json, answer, marks, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = r.db.ExecContext(ctx, query,
		question.ID,
		question.QuizID,
		question.Question,
		options,
		question.Answer,
		question.Marks,
		question.CreatedAt,
		question.UpdatedAt,
	)
	return err
}
