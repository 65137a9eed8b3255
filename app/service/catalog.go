package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/vibast-solutions/ms-go-skillbase/app/entity"
	"github.com/vibast-solutions/ms-go-skillbase/app/repository"
	"github.com/vibast-solutions/ms-go-skillbase/app/types"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type categoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	FindByID(ctx context.Context, id string) (*entity.Category, error)
	FindAll(ctx context.Context) ([]*entity.Category, error)
}

type courseRepository interface {
	Create(ctx context.Context, course *entity.Course) error
	FindByID(ctx context.Context, id string) (*entity.Course, error)
	FindAll(ctx context.Context, instructorID string) ([]*entity.Course, error)
	Update(ctx context.Context, course *entity.Course) error
}

type CatalogService interface {
	CreateCategory(ctx context.Context, req *types.CreateCategoryRequest) (*entity.Category, error)
	ListCategories(ctx context.Context) ([]*entity.Category, error)
	CreateSubcategory(ctx context.Context, req *types.CreateCategoryRequest) (*entity.Category, error)
	ListSubcategories(ctx context.Context) ([]*entity.Category, error)
	CreateCourse(ctx context.Context, actor *Claims, req *types.CreateCourseRequest) (*entity.Course, error)
	ListCourses(ctx context.Context, instructorID string) ([]*entity.Course, error)
	GetCourse(ctx context.Context, id string) (*entity.Course, error)
	UpdateCourse(ctx context.Context, actor *Claims, id string, req *types.UpdateCourseRequest) (*entity.Course, error)
	SetCourseApproval(ctx context.Context, id string, approved bool) (*entity.Course, error)
}

type catalogService struct {
	categories    categoryRepository
	subcategories categoryRepository
	courses       courseRepository
	profiles      profileFinder
	media         mediaUploader
	clock         Clock
}

func NewCatalogService(categories, subcategories categoryRepository, courses courseRepository, profiles profileFinder, media mediaUploader, clock Clock) CatalogService {
	if clock == nil {
		clock = time.Now
	}
	return &catalogService{
		categories:    categories,
		subcategories: subcategories,
		courses:       courses,
		profiles:      profiles,
		media:         media,
		clock:         clock,
	}
}

func (s *catalogService) CreateCategory(ctx context.Context, req *types.CreateCategoryRequest) (*entity.Category, error) {
	return s.createLabel(ctx, s.categories, req.Name, ErrCategoryExists)
}

func (s *catalogService) ListCategories(ctx context.Context) ([]*entity.Category, error) {
	return s.categories.FindAll(ctx)
}

func (s *catalogService) CreateSubcategory(ctx context.Context, req *types.CreateCategoryRequest) (*entity.Category, error) {
	return s.createLabel(ctx, s.subcategories, req.Name, ErrSubcategoryExists)
}

func (s *catalogService) ListSubcategories(ctx context.Context) ([]*entity.Category, error) {
	return s.subcategories.FindAll(ctx)
}

// createLabel inserts a uniquely named category or subcategory; the unique index
// reports duplicates as exists.
func (s *catalogService) createLabel(ctx context.Context, repo categoryRepository, name string, exists error) (*entity.Category, error) {
	now := s.clock()
	label := &entity.Category{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := repo.Create(ctx, label); err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, exists
		}
		return nil, err
	}
	return label, nil
}

// CreateCourse lets instructors create courses for themselves and admins for anyone.
func (s *catalogService) CreateCourse(ctx context.Context, actor *Claims, req *types.CreateCourseRequest) (*entity.Course, error) {
	if !canManageProfile(actor, entity.ProfileKindInstructor, req.InstructorID) {
		return nil, ErrPermissionDenied
	}

	instructor, err := s.profiles.FindByID(ctx, entity.ProfileKindInstructor, req.InstructorID)
	if err != nil {
		return nil, err
	}
	if instructor == nil {
		return nil, ErrInstructorNotFound
	}

	category, err := s.categories.FindByID(ctx, req.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}

	now := s.clock()
	course := &entity.Course{
		ID:           uuid.New().String(),
		InstructorID: instructor.ID,
		CategoryID:   category.ID,
		Title:        req.Title,
		Description:  req.Description,
		Language:     req.Language,
		SectionIDs:   []string{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err = s.courses.Create(ctx, course); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"course_id":     course.ID,
		"instructor_id": instructor.ID,
	}).Info("Course created")
	return course, nil
}

func (s *catalogService) ListCourses(ctx context.Context, instructorID string) ([]*entity.Course, error) {
	return s.courses.FindAll(ctx, instructorID)
}

func (s *catalogService) GetCourse(ctx context.Context, id string) (*entity.Course, error) {
	course, err := s.courses.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, ErrCourseNotFound
	}
	return course, nil
}

func (s *catalogService) UpdateCourse(ctx context.Context, actor *Claims, id string, req *types.UpdateCourseRequest) (*entity.Course, error) {
	if req.IsEmpty() {
		return nil, ErrNothingToUpdate
	}

	course, err := s.GetCourse(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canManageProfile(actor, entity.ProfileKindInstructor, course.InstructorID) {
		return nil, ErrPermissionDenied
	}

	if req.Title != nil {
		course.Title = *req.Title
	}
	if req.Description != nil {
		course.Description = *req.Description
	}
	if req.Language != nil {
		course.Language = *req.Language
	}
	if req.Thumbnail != nil {
		url, _, err := s.media.Upload(ctx, req.Thumbnail, FolderImages)
		if err != nil {
			return nil, err
		}
		course.Thumbnail = sql.NullString{String: url, Valid: true}
	}
	if req.PromoVideo != nil {
		url, _, err := s.media.Upload(ctx, req.PromoVideo, FolderVideos)
		if err != nil {
			return nil, err
		}
		course.PromoVideo = sql.NullString{String: url, Valid: true}
	}

	if err = s.courses.Update(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *catalogService) SetCourseApproval(ctx context.Context, id string, approved bool) (*entity.Course, error) {
	course, err := s.GetCourse(ctx, id)
	if err != nil {
		return nil, err
	}

	course.IsApproved = approved
	if err = s.courses.Update(ctx, course); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{"course_id": course.ID, "approved": approved}).Info("Course approval changed")
	return course, nil
}
