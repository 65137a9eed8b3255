package controller

import (
	httpdto "github.com/vibast-solutions/ms-go-skillbase/app/dto/http"
	"github.com/vibast-solutions/ms-go-skillbase/app/middleware"
	"github.com/vibast-solutions/ms-go-skillbase/app/service"
	"github.com/vibast-solutions/ms-go-skillbase/app/types"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// CourseListController serves a cart or a wishlist; name is used in response messages.
type CourseListController struct {
	lists service.CourseListService
	name  string
}

func NewCourseListController(lists service.CourseListService, name string) *CourseListController {
	return &CourseListController{lists: lists, name: name}
}

func (c *CourseListController) Add(ctx echo.Context) error {
	message := "Failed to add course to the " + c.name

	req, err := types.NewLearnerCourseRequestFromContext(ctx)
	if err != nil {
		return bindFailure(ctx, message, err)
	}
	if err = req.Validate(); err != nil {
		return validationFailure(ctx, message, err)
	}

	list, err := c.lists.Add(ctx.Request().Context(), middleware.ClaimsFromContext(ctx), req)
	if err != nil {
		return failure(ctx, "Adding course to "+c.name+" failed", err, logrus.Fields{
			"learner_id": req.LearnerID,
			"course_id":  req.CourseID,
		})
	}
	return success(ctx, "Successfully added course to the "+c.name, httpdto.NewCourseListView(list))
}

func (c *CourseListController) Get(ctx echo.Context) error {
	learnerID := ctx.Param("learnerId")
	list, err := c.lists.Get(ctx.Request().Context(), middleware.ClaimsFromContext(ctx), learnerID)
	if err != nil {
		return failure(ctx, "Getting "+c.name+" failed", err, logrus.Fields{"learner_id": learnerID})
	}
	return success(ctx, "Successfully got "+c.name+" for learner", httpdto.NewCourseListView(list))
}

func (c *CourseListController) Remove(ctx echo.Context) error {
	learnerID := ctx.Param("learnerId")
	courseID := ctx.Param("courseId")

	list, err := c.lists.Remove(ctx.Request().Context(), middleware.ClaimsFromContext(ctx), learnerID, courseID)
	if err != nil {
		return failure(ctx, "Removing course from "+c.name+" failed", err, logrus.Fields{
			"learner_id": learnerID,
			"course_id":  courseID,
		})
	}
	return success(ctx, "Successfully removed course from the "+c.name, httpdto.NewCourseListView(list))
}

type EnrollmentController struct {
	enrollments service.EnrollmentService
}

func NewEnrollmentController(enrollments service.EnrollmentService) *EnrollmentController {
	return &EnrollmentController{enrollments: enrollments}
}

func (c *EnrollmentController) Subscribe(ctx echo.Context) error {
	const message = "Failed to subscribe to course"

	req, err := types.NewLearnerCourseRequestFromContext(ctx)
	if err != nil {
		return bindFailure(ctx, message, err)
	}
	if err = req.Validate(); err != nil {
		return validationFailure(ctx, message, err)
	}

	subscription, err := c.enrollments.Subscribe(ctx.Request().Context(), middleware.ClaimsFromContext(ctx), req)
	if err != nil {
		return failure(ctx, "Subscription failed", err, logrus.Fields{
			"learner_id": req.LearnerID,
			"course_id":  req.CourseID,
		})
	}
	return success(ctx, "Successfully subscribed to course", httpdto.NewSubscriptionView(subscription))
}

func (c *EnrollmentController) CreateReview(ctx echo.Context) error {
	const message = "Failed to add review"

	req, err := types.NewCreateReviewRequestFromContext(ctx)
	if err != nil {
		return bindFailure(ctx, message, err)
	}
	if err = req.Validate(); err != nil {
		return validationFailure(ctx, message, err)
	}

	review, err := c.enrollments.CreateReview(ctx.Request().Context(), middleware.ClaimsFromContext(ctx), req)
	if err != nil {
		return failure(ctx, "Review creation failed", err, logrus.Fields{
			"learner_id": req.LearnerID,
			"course_id":  req.CourseID,
		})
	}
	return success(ctx, "Successfully added review", httpdto.NewReviewView(review))
}

func (c *EnrollmentController) ListReviews(ctx echo.Context) error {
	courseID := ctx.Param("id")
	reviews, err := c.enrollments.ListReviews(ctx.Request().Context(), courseID)
	if err != nil {
		return failure(ctx, "Review listing failed", err, logrus.Fields{"course_id": courseID})
	}
	return success(ctx, "Successfully got all reviews", httpdto.NewReviewViews(reviews))
}
