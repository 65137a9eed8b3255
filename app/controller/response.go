package controller

import (
	"errors"
	"net/http"

	httpdto "github.com/vibast-solutions/ms-go-skillbase/app/dto/http"
	"github.com/vibast-solutions/ms-go-skillbase/app/service"
	"github.com/vibast-solutions/ms-go-skillbase/app/types"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

const internalErrorMessage = "Internal server error"

type statusRule struct {
	err    error
	status int
}

// domainStatuses maps expected domain errors to their HTTP status. Order matters only
// for errors wrapping more than one sentinel.
var domainStatuses = []statusRule{
	{service.ErrEmailRegistered, http.StatusConflict},
	{service.ErrCategoryExists, http.StatusConflict},
	{service.ErrSubcategoryExists, http.StatusConflict},
	{service.ErrCourseListed, http.StatusConflict},
	{service.ErrAlreadySubscribed, http.StatusConflict},
	{service.ErrAlreadyVerified, http.StatusConflict},

	{service.ErrInvalidCredentials, http.StatusUnauthorized},
	{service.ErrUnknownEmail, http.StatusUnauthorized},
	{service.ErrInvalidToken, http.StatusUnauthorized},
	{service.ErrInvalidSession, http.StatusUnauthorized},
	{service.ErrLearnerNotFound, http.StatusUnauthorized},
	{service.ErrQuizNotFound, http.StatusUnauthorized},

	{service.ErrSignInLocked, http.StatusForbidden},
	{service.ErrTooManyEmails, http.StatusForbidden},
	{service.ErrPermissionDenied, http.StatusForbidden},

	{service.ErrAccountNotFound, http.StatusNotFound},
	{service.ErrProfileNotFound, http.StatusNotFound},
	{service.ErrCategoryNotFound, http.StatusNotFound},
	{service.ErrCourseNotFound, http.StatusNotFound},
	{service.ErrSectionNotFound, http.StatusNotFound},
	{service.ErrInstructorNotFound, http.StatusNotFound},
	{service.ErrCourseListNotFound, http.StatusNotFound},
	{service.ErrCourseNotListed, http.StatusNotFound},

	{service.ErrTokenExpired, http.StatusGone},

	{service.ErrEmailDelivery, http.StatusUnprocessableEntity},
	{service.ErrUnsupportedFile, http.StatusUnprocessableEntity},
	{service.ErrNothingToUpdate, http.StatusUnprocessableEntity},

	{service.ErrPasswordConfirmation, http.StatusBadRequest},
	{service.ErrPasswordReused, http.StatusBadRequest},
}

func domainStatus(err error) (int, bool) {
	for _, rule := range domainStatuses {
		if errors.Is(err, rule.err) {
			return rule.status, true
		}
	}
	return 0, false
}

// publicReason is the error text shown to clients. Wrapped delivery failures keep
// the downstream detail out of the response.
func publicReason(err error) string {
	for _, rule := range domainStatuses {
		if errors.Is(err, rule.err) {
			if rule.err == service.ErrUnsupportedFile {
				return err.Error()
			}
			return rule.err.Error()
		}
	}
	return err.Error()
}

func success(ctx echo.Context, message string, data interface{}) error {
	return ctx.JSON(http.StatusOK, httpdto.Success(message, data))
}

// bindFailure answers a request whose body could not be read into its type.
func bindFailure(ctx echo.Context, message string, err error) error {
	var unexpected *types.UnexpectedPropertiesError
	if errors.As(err, &unexpected) {
		logrus.WithField("properties", unexpected.Properties).Debug("Request has unexpected properties")
		return ctx.JSON(http.StatusUnprocessableEntity, httpdto.Failure(message, unexpected.Error()))
	}

	logrus.WithError(err).Debug("Failed to bind request")
	return ctx.JSON(http.StatusBadRequest, httpdto.Failure(message, types.ErrMalformedBody.Error()))
}

// validationFailure answers a request that failed its field rules. The message names
// the first violation; errors carries every failing field.
func validationFailure(ctx echo.Context, message string, err error) error {
	var errs validation.Errors
	if errors.As(err, &errs) {
		violation := types.FirstViolation(errs)
		logrus.WithField("violation", violation).Debug("Request validation failed")
		return ctx.JSON(http.StatusUnprocessableEntity, httpdto.Failure(message+": "+violation, errs))
	}

	logrus.WithError(err).Debug("Request validation failed")
	return ctx.JSON(http.StatusUnprocessableEntity, httpdto.Failure(message+": "+err.Error(), err.Error()))
}

// failure answers a service error: expected domain errors with their status and reason,
// anything else with a logged 500 that leaks no detail. logMessage is never sent.
func failure(ctx echo.Context, logMessage string, err error, fields logrus.Fields) error {
	if status, known := domainStatus(err); known {
		logrus.WithFields(fields).WithField("reason", err.Error()).Warn(logMessage)
		return ctx.JSON(status, httpdto.Failure(publicReason(err), http.StatusText(status)))
	}

	logrus.WithError(err).WithFields(fields).Error(logMessage)
	return ctx.JSON(http.StatusInternalServerError, httpdto.Failure(internalErrorMessage, "Server error"))
}
