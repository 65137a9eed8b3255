package types

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/labstack/echo/v4"
)

const maxReviewLength = 1000

// LearnerCourseRequest links a learner to a course: cart, wishlist and subscription.
type LearnerCourseRequest struct {
	LearnerID string `json:"learnerReference"`
	CourseID  string `json:"courseReference"`
}

func NewLearnerCourseRequestFromContext(ctx echo.Context) (*LearnerCourseRequest, error) {
	var body LearnerCourseRequest
	if err := bindJSON(ctx, &body, "learnerReference", "courseReference"); err != nil {
		return nil, err
	}

	return &body, nil
}

func (r *LearnerCourseRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.LearnerID, validation.Required, is.UUID),
		validation.Field(&r.CourseID, validation.Required, is.UUID),
	)
}

type CreateReviewRequest struct {
	LearnerID string  `json:"learnerReference"`
	CourseID  string  `json:"courseReference"`
	Rating    int     `json:"rating"`
	Review    *string `json:"review"`
}

func NewCreateReviewRequestFromContext(ctx echo.Context) (*CreateReviewRequest, error) {
	var body CreateReviewRequest
	if err := bindJSON(ctx, &body, "learnerReference", "courseReference", "rating", "review"); err != nil {
		return nil, err
	}

	return &body, nil
}

func (r *CreateReviewRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.LearnerID, validation.Required, is.UUID),
		validation.Field(&r.CourseID, validation.Required, is.UUID),
		validation.Field(&r.Rating, validation.Required, validation.Min(1), validation.Max(5)),
		validation.Field(&r.Review, validation.Length(0, maxReviewLength)),
	)
}
