package controller

import (
	httpdto "github.com/vibast-solutions/ms-go-skillbase/app/dto/http"
	"github.com/vibast-solutions/ms-go-skillbase/app/service"
	"github.com/vibast-solutions/ms-go-skillbase/app/types"
	"github.com/vibast-solutions/ms-go-skillbase/config"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type AccountAuthController struct {
	accounts service.AccountSecurityService
	policy   config.PasswordPolicy
}

func NewAccountAuthController(accounts service.AccountSecurityService, policy config.PasswordPolicy) *AccountAuthController {
	return &AccountAuthController{accounts: accounts, policy: policy}
}

func (c *AccountAuthController) Signup(ctx echo.Context) error {
	const message = "Failed to sign up"

	req, err := types.NewSignupRequestFromContext(ctx)
	if err != nil {
		return bindFailure(ctx, message, err)
	}
	if err = req.Validate(c.policy); err != nil {
		return validationFailure(ctx, message, err)
	}

	logrus.WithFields(logrus.Fields{"email": req.Email, "role": req.Role}).Info("Signup request received")
	result, err := c.accounts.Signup(ctx.Request().Context(), req)
	if err != nil {
		return failure(ctx, "Signup failed", err, logrus.Fields{"email": req.Email})
	}

	logrus.WithFields(logrus.Fields{
		"account_id": result.Account.ID,
		"role":       result.Account.Role,
	}).Info("Account signed up")

	reply := "Successfully signed up"
	if !result.VerificationEmailSent {
		reply = "Successfully signed up, but the verification email could not be sent"
	}
	return success(ctx, reply, httpdto.NewSignupResponse(result))
}

func (c *AccountAuthController) SignIn(ctx echo.Context) error {
	const message = "Failed to sign in"

	req, err := types.NewSignInRequestFromContext(ctx)
	if err != nil {
		return bindFailure(ctx, message, err)
	}
	if err = req.Validate(); err != nil {
		return validationFailure(ctx, message, err)
	}

	logrus.WithField("email", req.Email).Info("Sign-in request received")
	result, err := c.accounts.SignIn(ctx.Request().Context(), req)
	if err != nil {
		return failure(ctx, "Sign-in failed", err, logrus.Fields{"email": req.Email})
	}

	logrus.WithField("account_id", result.Account.ID).Info("Sign-in successful")
	return success(ctx, "Successfully signed in", httpdto.NewSessionResponse(result))
}

func (c *AccountAuthController) SendVerificationEmail(ctx echo.Context) error {
	const message = "Failed to send verification email"

	req, err := types.NewVerificationEmailRequestFromContext(ctx)
	if err != nil {
		return bindFailure(ctx, message, err)
	}
	if err = req.Validate(); err != nil {
		return validationFailure(ctx, message, err)
	}

	logrus.WithField("email", req.Email).Info("Verification email request received")
	if err = c.accounts.IssueVerificationEmail(ctx.Request().Context(), req.Email); err != nil {
		return failure(ctx, "Verification email failed", err, logrus.Fields{"email": req.Email})
	}

	logrus.WithField("email", req.Email).Info("Verification email sent")
	return success(ctx, "Verification email sent", nil)
}

func (c *AccountAuthController) VerifyEmail(ctx echo.Context) error {
	const message = "Failed to verify email"

	req, err := types.NewVerifyEmailRequestFromContext(ctx)
	if err != nil {
		return bindFailure(ctx, message, err)
	}
	if err = req.Validate(); err != nil {
		return validationFailure(ctx, message, err)
	}

	result, err := c.accounts.VerifyEmail(ctx.Request().Context(), req)
	if err != nil {
		return failure(ctx, "Email verification failed", err, logrus.Fields{"account_id": req.AccountID})
	}

	logrus.WithField("account_id", result.Account.ID).Info("Email verified")
	return success(ctx, "Successfully verified email", httpdto.NewSessionResponse(result))
}

func (c *AccountAuthController) ForgotPassword(ctx echo.Context) error {
	const message = "Failed to send reset password email"

	req, err := types.NewEmailRequestFromContext(ctx)
	if err != nil {
		return bindFailure(ctx, message, err)
	}
	if err = req.Validate(); err != nil {
		return validationFailure(ctx, message, err)
	}

	logrus.WithField("email", req.Email).Info("Forgot password request received")
	if err = c.accounts.ForgotPassword(ctx.Request().Context(), req.Email); err != nil {
		return failure(ctx, "Forgot password failed", err, logrus.Fields{"email": req.Email})
	}

	return success(ctx, "Reset password email sent", nil)
}

func (c *AccountAuthController) ResetPassword(ctx echo.Context) error {
	const message = "Failed to reset password"

	req, err := types.NewResetPasswordRequestFromContext(ctx)
	if err != nil {
		return bindFailure(ctx, message, err)
	}
	if err = req.Validate(c.policy); err != nil {
		return validationFailure(ctx, message, err)
	}

	result, err := c.accounts.ResetPassword(ctx.Request().Context(), req)
	if err != nil {
		return failure(ctx, "Password reset failed", err, logrus.Fields{"account_id": req.AccountID})
	}

	logrus.WithField("account_id", result.Account.ID).Info("Password reset")
	return success(ctx, "Successfully updated password", httpdto.NewSessionResponse(result))
}
