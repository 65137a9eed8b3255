package service

import "errors"

// Account security.
var (
	ErrEmailRegistered      = errors.New("email is already registered")
	ErrInvalidCredentials   = errors.New("incorrect email or password")
	ErrUnknownEmail         = errors.New("unable to process the request for this email")
	ErrSignInLocked         = errors.New("you have exceeded the maximum number of requests per hour")
	ErrTooManyEmails        = errors.New("too many requests, please try again later")
	ErrAlreadyVerified      = errors.New("account is already verified")
	ErrAccountNotFound      = errors.New("account not found")
	ErrTokenExpired         = errors.New("token has expired")
	ErrInvalidToken         = errors.New("invalid token")
	ErrEmailDelivery        = errors.New("unable to send email")
	ErrPasswordConfirmation = errors.New("password and confirm password do not match")
	ErrPasswordReused       = errors.New("new password must differ from the current password")
	ErrInvalidSession       = errors.New("invalid or expired session token")
)

// Resources.
var (
	ErrProfileNotFound    = errors.New("profile not found")
	ErrCategoryNotFound   = errors.New("category not found")
	ErrCourseNotFound     = errors.New("course not found")
	ErrSectionNotFound    = errors.New("section not found")
	ErrLearnerNotFound    = errors.New("learner is not registered")
	ErrInstructorNotFound = errors.New("instructor not found")
	ErrCategoryExists     = errors.New("category already exists")
	ErrSubcategoryExists  = errors.New("subcategory already exists")
	ErrQuizNotFound       = errors.New("quiz is not registered")
	ErrCourseListed       = errors.New("course is already in the list")
	ErrCourseNotListed    = errors.New("course is not in the list")
	ErrAlreadySubscribed  = errors.New("learner is already subscribed to this course")
	ErrNothingToUpdate    = errors.New("nothing to update")
	ErrUnsupportedFile    = errors.New("unsupported file type")
	ErrPermissionDenied   = errors.New("you are not allowed to perform this action")
	ErrCourseListNotFound = errors.New("list does not exist for learner")
)
