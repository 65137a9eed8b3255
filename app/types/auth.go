package types

import (
	"errors"

	"github.com/vibast-solutions/ms-go-skillbase/app/entity"
	"github.com/vibast-solutions/ms-go-skillbase/config"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/labstack/echo/v4"
)

const (
	maxEmailLength = 320
	maxNameLength  = 255
	maxTokenLength = 255
)

var errPasswordsDiffer = errors.New("passwords do not match")

type SignupRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	Name            string `json:"name"`
	Role            string `json:"role"`
}

func NewSignupRequestFromContext(ctx echo.Context) (*SignupRequest, error) {
	var body SignupRequest
	if err := bindJSON(ctx, &body, "email", "password", "confirmPassword", "name", "role"); err != nil {
		return nil, err
	}
	body.Email = trimmed(body.Email)
	body.Name = trimmed(body.Name)

	return &body, nil
}

func (r *SignupRequest) Validate(policy config.PasswordPolicy) error {
	roles := make([]interface{}, 0, 3)
	for _, role := range entity.Roles() {
		roles = append(roles, string(role))
	}

	return validation.ValidateStruct(r,
		validation.Field(&r.Name, validation.Required.Error("Name is required"), validation.Length(1, maxNameLength)),
		validation.Field(&r.Email, validation.Required.Error("Email is required"), validation.Length(3, maxEmailLength), is.Email.Error("Invalid email")),
		validation.Field(&r.Password, validation.Required.Error("Password is required"), validation.By(passwordRule(policy))),
		validation.Field(&r.ConfirmPassword, validation.Required.Error("Confirm password is required"), validation.By(sameAs(r.Password))),
		validation.Field(&r.Role, validation.Required.Error("Role is required"), validation.In(roles...).Error("Invalid role")),
	)
}

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func NewSignInRequestFromContext(ctx echo.Context) (*SignInRequest, error) {
	var body SignInRequest
	if err := bindJSON(ctx, &body, "email", "password"); err != nil {
		return nil, err
	}
	body.Email = trimmed(body.Email)

	return &body, nil
}

func (r *SignInRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Email, validation.Required.Error("Email is required"), is.Email.Error("Incorrect email or password")),
		validation.Field(&r.Password, validation.Required.Error("Password is required")),
	)
}

// EmailRequest carries a single address: verification email and forgot password.
type EmailRequest struct {
	Email string `json:"email"`
}

func NewEmailRequestFromContext(ctx echo.Context) (*EmailRequest, error) {
	var body EmailRequest
	if err := bindJSON(ctx, &body, "email"); err != nil {
		return nil, err
	}
	body.Email = trimmed(body.Email)

	return &body, nil
}

// NewVerificationEmailRequestFromContext tolerates the signup fields so a client can
// resend the signup form as is.
func NewVerificationEmailRequestFromContext(ctx echo.Context) (*EmailRequest, error) {
	var body EmailRequest
	if err := bindJSON(ctx, &body, "email", "password", "confirmPassword", "name", "role"); err != nil {
		return nil, err
	}
	body.Email = trimmed(body.Email)

	return &body, nil
}

func (r *EmailRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Email, validation.Required.Error("Email is required"), is.Email.Error("Invalid email")),
	)
}

type VerifyEmailRequest struct {
	Token     string `json:"token"`
	AccountID string `json:"id"`
}

func NewVerifyEmailRequestFromContext(ctx echo.Context) (*VerifyEmailRequest, error) {
	var body VerifyEmailRequest
	if err := bindJSON(ctx, &body, "token", "id"); err != nil {
		return nil, err
	}
	body.Token = trimmed(body.Token)

	return &body, nil
}

func (r *VerifyEmailRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Token, validation.Required.Error("Invalid request"), validation.Length(1, maxTokenLength)),
		validation.Field(&r.AccountID, validation.Required.Error("Id is required"), is.UUID.Error("Invalid id")),
	)
}

type ResetPasswordRequest struct {
	Token           string `json:"token"`
	AccountID       string `json:"id"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

// NewResetPasswordRequestFromContext also accepts "password" in place of "newPassword".
func NewResetPasswordRequestFromContext(ctx echo.Context) (*ResetPasswordRequest, error) {
	var body struct {
		ResetPasswordRequest
		Password string `json:"password"`
	}
	if err := bindJSON(ctx, &body, "token", "id", "newPassword", "password", "confirmPassword"); err != nil {
		return nil, err
	}

	req := body.ResetPasswordRequest
	req.Token = trimmed(req.Token)
	if req.NewPassword == "" {
		req.NewPassword = body.Password
	}
	return &req, nil
}

// Validate checks shape and strength only. Confirmation mismatch is reported by the
// reset flow itself, after the token has been checked.
func (r *ResetPasswordRequest) Validate(policy config.PasswordPolicy) error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Token, validation.Required.Error("Invalid request"), validation.Length(1, maxTokenLength)),
		validation.Field(&r.AccountID, validation.Required.Error("Id is required"), is.UUID.Error("Invalid id")),
		validation.Field(&r.NewPassword, validation.Required.Error("Password is required"), validation.By(passwordRule(policy))),
		validation.Field(&r.ConfirmPassword, validation.Required.Error("Confirm password is required")),
	)
}

func passwordRule(policy config.PasswordPolicy) validation.RuleFunc {
	return func(value interface{}) error {
		password, _ := value.(string)
		if password == "" {
			return nil
		}
		return policy.Validate(password)
	}
}

func sameAs(expected string) validation.RuleFunc {
	return func(value interface{}) error {
		if actual, _ := value.(string); actual != expected {
			return errPasswordsDiffer
		}
		return nil
	}
}
