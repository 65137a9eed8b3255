package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/vibast-solutions/ms-go-skillbase/app/entity"
	"github.com/vibast-solutions/ms-go-skillbase/app/types"

	"github.com/google/uuid"
)

type sectionRepository interface {
	CreateForCourse(ctx context.Context, section *entity.Section, course *entity.Course) error
	FindByID(ctx context.Context, id string) (*entity.Section, error)
	FindByCourse(ctx context.Context, courseID string) ([]*entity.Section, error)
	Update(ctx context.Context, section *entity.Section) error
	DeleteFromCourse(ctx context.Context, section *entity.Section, course *entity.Course) error
}

type sectionContentRepository interface {
	CreateLecture(ctx context.Context, lecture *entity.Lecture, section *entity.Section) error
	CreateQuiz(ctx context.Context, quiz *entity.Quiz) error
	FindQuizByID(ctx context.Context, id string) (*entity.Quiz, error)
	CreateQuizQuestion(ctx context.Context, question *entity.QuizQuestion) error
	CreateAssignment(ctx context.Context, assignment *entity.Assignment) error
}

type courseFinder interface {
	FindByID(ctx context.Context, id string) (*entity.Course, error)
}

// CurriculumService manages the sections of a course and the content attached to them.
type CurriculumService interface {
	CreateSection(ctx context.Context, req *types.CreateSectionRequest) (*entity.Section, error)
	ListSections(ctx context.Context, courseID string) ([]*entity.Section, error)
	UpdateSection(ctx context.Context, id string, req *types.UpdateSectionRequest) (*entity.Section, error)
	DeleteSection(ctx context.Context, id string) error
	CreateLecture(ctx context.Context, req *types.CreateLectureRequest) (*entity.Lecture, error)
	CreateQuiz(ctx context.Context, req *types.CreateQuizRequest) (*entity.Quiz, error)
	CreateQuizQuestion(ctx context.Context, req *types.CreateQuizQuestionRequest) (*entity.QuizQuestion, error)
	CreateAssignment(ctx context.Context, req *types.CreateAssignmentRequest) (*entity.Assignment, error)
}

type curriculumService struct {
	courses  courseFinder
	sections sectionRepository
	content  sectionContentRepository
	media    mediaUploader
	clock    Clock
}

func NewCurriculumService(courses courseFinder, sections sectionRepository, content sectionContentRepository, media mediaUploader, clock Clock) CurriculumService {
	if clock == nil {
		clock = time.Now
	}
	return &curriculumService{
		courses:  courses,
		sections: sections,
		content:  content,
		media:    media,
		clock:    clock,
	}
}

func (s *curriculumService) CreateSection(ctx context.Context, req *types.CreateSectionRequest) (*entity.Section, error) {
	course, err := s.course(ctx, req.CourseID)
	if err != nil {
		return nil, err
	}

	now := s.clock()
	section := &entity.Section{
		ID:         uuid.New().String(),
		CourseID:   course.ID,
		Title:      req.Title,
		LectureIDs: []string{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err = s.sections.CreateForCourse(ctx, section, course); err != nil {
		return nil, err
	}
	return section, nil
}

func (s *curriculumService) ListSections(ctx context.Context, courseID string) ([]*entity.Section, error) {
	if _, err := s.course(ctx, courseID); err != nil {
		return nil, err
	}
	return s.sections.FindByCourse(ctx, courseID)
}

func (s *curriculumService) UpdateSection(ctx context.Context, id string, req *types.UpdateSectionRequest) (*entity.Section, error) {
	section, err := s.section(ctx, id)
	if err != nil {
		return nil, err
	}

	section.Title = req.Title
	if err = s.sections.Update(ctx, section); err != nil {
		return nil, err
	}
	return section, nil
}

func (s *curriculumService) DeleteSection(ctx context.Context, id string) error {
	section, err := s.section(ctx, id)
	if err != nil {
		return err
	}
	course, err := s.course(ctx, section.CourseID)
	if err != nil {
		return err
	}
	return s.sections.DeleteFromCourse(ctx, section, course)
}

// CreateLecture stores the file and links it as the lecture video or reading by its type.
func (s *curriculumService) CreateLecture(ctx context.Context, req *types.CreateLectureRequest) (*entity.Lecture, error) {
	section, err := s.section(ctx, req.SectionID)
	if err != nil {
		return nil, err
	}

	url, folder, err := s.media.Upload(ctx, req.File)
	if err != nil {
		return nil, err
	}

	now := s.clock()
	lecture := &entity.Lecture{
		ID:        uuid.New().String(),
		SectionID: section.ID,
		Title:     req.Title,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if req.Description != nil {
		lecture.Description = sql.NullString{String: *req.Description, Valid: true}
	}
	if folder == FolderVideos {
		lecture.VideoURL = sql.NullString{String: url, Valid: true}
	} else {
		lecture.ReadingURL = sql.NullString{String: url, Valid: true}
	}

	if err = s.content.CreateLecture(ctx, lecture, section); err != nil {
		return nil, err
	}
	return lecture, nil
}

func (s *curriculumService) CreateQuiz(ctx context.Context, req *types.CreateQuizRequest) (*entity.Quiz, error) {
	section, err := s.section(ctx, req.SectionID)
	if err != nil {
		return nil, err
	}

	now := s.clock()
	quiz := &entity.Quiz{
		ID:         uuid.New().String(),
		SectionID:  section.ID,
		Title:      req.Title,
		TotalMarks: req.TotalMarks,
		PassMarks:  req.PassMarks,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err = s.content.CreateQuiz(ctx, quiz); err != nil {
		return nil, err
	}
	return quiz, nil
}

func (s *curriculumService) CreateQuizQuestion(ctx context.Context, req *types.CreateQuizQuestionRequest) (*entity.QuizQuestion, error) {
	quiz, err := s.content.FindQuizByID(ctx, req.QuizID)
	if err != nil {
		return nil, err
	}
	if quiz == nil {
		return nil, ErrQuizNotFound
	}

	now := s.clock()
	question := &entity.QuizQuestion{
		ID:        uuid.New().String(),
		QuizID:    quiz.ID,
		Question:  req.Question,
		Options:   req.Options,
		Answer:    req.Answer,
		Marks:     *req.Marks,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err = s.content.CreateQuizQuestion(ctx, question); err != nil {
		return nil, err
	}
	return question, nil
}

func (s *curriculumService) CreateAssignment(ctx context.Context, req *types.CreateAssignmentRequest) (*entity.Assignment, error) {
	section, err := s.section(ctx, req.SectionID)
	if err != nil {
		return nil, err
	}

	now := s.clock()
	assignment := &entity.Assignment{
		ID:          uuid.New().String(),
		SectionID:   section.ID,
		Title:       req.Title,
		Description: req.Description,
		TotalMarks:  req.TotalMarks,
		PassMarks:   req.PassMarks,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if req.File != nil {
		url, _, err := s.media.Upload(ctx, req.File)
		if err != nil {
			return nil, err
		}
		assignment.FileURL = sql.NullString{String: url, Valid: true}
	}

	if err = s.content.CreateAssignment(ctx, assignment); err != nil {
		return nil, err
	}
	return assignment, nil
}

func (s *curriculumService) course(ctx context.Context, id string) (*entity.Course, error) {
	course, err := s.courses.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, ErrCourseNotFound
	}
	return course, nil
}

func (s *curriculumService) section(ctx context.Context, id string) (*entity.Section, error) {
	section, err := s.sections.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if section == nil {
		return nil, ErrSectionNotFound
	}
	return section, nil
}
