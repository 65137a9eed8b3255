package types

import (
	"errors"

	"github.com/vibast-solutions/ms-go-skillbase/app/dto"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/labstack/echo/v4"
)

var errAtLeastOneField = errors.New("at least one field is required")

// UpdateProfileRequest accepts JSON {name} or a multipart form with name and an image file.
type UpdateProfileRequest struct {
	Name  *string     `json:"name"`
	Image *dto.Upload `json:"-"`
}

func NewUpdateProfileRequestFromContext(ctx echo.Context) (*UpdateProfileRequest, error) {
	var body UpdateProfileRequest
	if isMultipart(ctx) {
		form, err := bindForm(ctx, "name", "image")
		if err != nil {
			return nil, err
		}
		body.Name = formValue(form, "name")
		body.Image = formUpload(form, "image")
	} else if err := bindJSON(ctx, &body, "name"); err != nil {
		return nil, err
	}

	if body.Name != nil {
		name := trimmed(*body.Name)
		body.Name = &name
	}
	return &body, nil
}

func (r *UpdateProfileRequest) Validate() error {
	if r.Name == nil && r.Image == nil {
		return validation.Errors{"name": errAtLeastOneField}
	}
	if r.Name == nil {
		return nil
	}
	return validation.Errors{
		"name": validation.Validate(*r.Name, validation.Required.Error("Name is required"), validation.Length(1, maxNameLength)),
	}.Filter()
}
