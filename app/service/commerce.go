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

type courseListRepository interface {
	FindByLearner(ctx context.Context, learnerID string) (*entity.CourseList, error)
	Create(ctx context.Context, list *entity.CourseList) error
	Update(ctx context.Context, list *entity.CourseList) error
}

type subscriptionRepository interface {
	Create(ctx context.Context, subscription *entity.Subscription) error
	FindByLearnerAndCourse(ctx context.Context, learnerID, courseID string) (*entity.Subscription, error)
}

type reviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	FindByCourse(ctx context.Context, courseID string) ([]*entity.Review, error)
}

// CourseListService backs both the cart and the wishlist of a learner.
type CourseListService interface {
	Add(ctx context.Context, actor *Claims, req *types.LearnerCourseRequest) (*entity.CourseList, error)
	Get(ctx context.Context, actor *Claims, learnerID string) (*entity.CourseList, error)
	Remove(ctx context.Context, actor *Claims, learnerID, courseID string) (*entity.CourseList, error)
}

type courseListService struct {
	lists    courseListRepository
	profiles profileFinder
	courses  courseFinder
	clock    Clock
}

func NewCourseListService(lists courseListRepository, profiles profileFinder, courses courseFinder, clock Clock) CourseListService {
	if clock == nil {
		clock = time.Now
	}
	return &courseListService{lists: lists, profiles: profiles, courses: courses, clock: clock}
}

// Add appends the course, creating the list on the learner's first add.
func (s *courseListService) Add(ctx context.Context, actor *Claims, req *types.LearnerCourseRequest) (*entity.CourseList, error) {
	if err := requireLearnerAndCourse(ctx, actor, s.profiles, s.courses, req.LearnerID, req.CourseID); err != nil {
		return nil, err
	}

	list, err := s.lists.FindByLearner(ctx, req.LearnerID)
	if err != nil {
		return nil, err
	}

	if list == nil {
		now := s.clock()
		list = &entity.CourseList{
			ID:        uuid.New().String(),
			LearnerID: req.LearnerID,
			CourseIDs: []string{req.CourseID},
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err = s.lists.Create(ctx, list); err != nil {
			return nil, err
		}
		return list, nil
	}

	if list.Contains(req.CourseID) {
		return nil, ErrCourseListed
	}
	list.CourseIDs = append(list.CourseIDs, req.CourseID)
	if err = s.lists.Update(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

func (s *courseListService) Get(ctx context.Context, actor *Claims, learnerID string) (*entity.CourseList, error) {
	if !canManageProfile(actor, entity.ProfileKindLearner, learnerID) {
		return nil, ErrPermissionDenied
	}

	learner, err := s.profiles.FindByID(ctx, entity.ProfileKindLearner, learnerID)
	if err != nil {
		return nil, err
	}
	if learner == nil {
		return nil, ErrProfileNotFound
	}

	list, err := s.lists.FindByLearner(ctx, learnerID)
	if err != nil {
		return nil, err
	}
	if list == nil {
		return nil, ErrCourseListNotFound
	}
	return list, nil
}

func (s *courseListService) Remove(ctx context.Context, actor *Claims, learnerID, courseID string) (*entity.CourseList, error) {
	list, err := s.Get(ctx, actor, learnerID)
	if err != nil {
		return nil, err
	}
	if !list.Remove(courseID) {
		return nil, ErrCourseNotListed
	}
	if err = s.lists.Update(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// EnrollmentService records subscriptions and reviews of learners on courses.
type EnrollmentService interface {
	Subscribe(ctx context.Context, actor *Claims, req *types.LearnerCourseRequest) (*entity.Subscription, error)
	CreateReview(ctx context.Context, actor *Claims, req *types.CreateReviewRequest) (*entity.Review, error)
	ListReviews(ctx context.Context, courseID string) ([]*entity.Review, error)
}

type enrollmentService struct {
	subscriptions subscriptionRepository
	reviews       reviewRepository
	profiles      profileFinder
	courses       courseFinder
	clock         Clock
}

func NewEnrollmentService(subscriptions subscriptionRepository, reviews reviewRepository, profiles profileFinder, courses courseFinder, clock Clock) EnrollmentService {
	if clock == nil {
		clock = time.Now
	}
	return &enrollmentService{
		subscriptions: subscriptions,
		reviews:       reviews,
		profiles:      profiles,
		courses:       courses,
		clock:         clock,
	}
}

func (s *enrollmentService) Subscribe(ctx context.Context, actor *Claims, req *types.LearnerCourseRequest) (*entity.Subscription, error) {
	if err := requireLearnerAndCourse(ctx, actor, s.profiles, s.courses, req.LearnerID, req.CourseID); err != nil {
		return nil, err
	}

	existing, err := s.subscriptions.FindByLearnerAndCourse(ctx, req.LearnerID, req.CourseID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadySubscribed
	}

	now := s.clock()
	subscription := &entity.Subscription{
		ID:        uuid.New().String(),
		LearnerID: req.LearnerID,
		CourseID:  req.CourseID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err = s.subscriptions.Create(ctx, subscription); err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, ErrAlreadySubscribed
		}
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"learner_id": req.LearnerID,
		"course_id":  req.CourseID,
	}).Info("Learner subscribed to course")
	return subscription, nil
}

func (s *enrollmentService) CreateReview(ctx context.Context, actor *Claims, req *types.CreateReviewRequest) (*entity.Review, error) {
	if err := requireLearnerAndCourse(ctx, actor, s.profiles, s.courses, req.LearnerID, req.CourseID); err != nil {
		return nil, err
	}

	now := s.clock()
	review := &entity.Review{
		ID:        uuid.New().String(),
		CourseID:  req.CourseID,
		LearnerID: req.LearnerID,
		Rating:    req.Rating,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if req.Review != nil {
		review.Review = sql.NullString{String: *req.Review, Valid: true}
	}

	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *enrollmentService) ListReviews(ctx context.Context, courseID string) ([]*entity.Review, error) {
	course, err := s.courses.FindByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, ErrCourseNotFound
	}
	return s.reviews.FindByCourse(ctx, courseID)
}

// requireLearnerAndCourse checks that actor may act as the learner, then reports an
// unregistered learner before a missing course.
func requireLearnerAndCourse(ctx context.Context, actor *Claims, profiles profileFinder, courses courseFinder, learnerID, courseID string) error {
	if !canManageProfile(actor, entity.ProfileKindLearner, learnerID) {
		return ErrPermissionDenied
	}

	learner, err := profiles.FindByID(ctx, entity.ProfileKindLearner, learnerID)
	if err != nil {
		return err
	}
	if learner == nil {
		return ErrLearnerNotFound
	}

	course, err := courses.FindByID(ctx, courseID)
	if err != nil {
		return err
	}
	if course == nil {
		return ErrCourseNotFound
	}
	return nil
}
