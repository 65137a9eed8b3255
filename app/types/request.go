package types

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/vibast-solutions/ms-go-skillbase/app/dto"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/labstack/echo/v4"
)

var ErrMalformedBody = errors.New("invalid request body")

// UnexpectedPropertiesError lists body properties outside the allow-list of a request.
type UnexpectedPropertiesError struct {
	Properties []string
}

func (e *UnexpectedPropertiesError) Error() string {
	return "Unexpected properties: " + strings.Join(e.Properties, ", ")
}

func checkProperties(names []string, allowed []string) error {
	permitted := make(map[string]struct{}, len(allowed))
	for _, name := range allowed {
		permitted[name] = struct{}{}
	}

	var unexpected []string
	for _, name := range names {
		if _, ok := permitted[name]; !ok {
			unexpected = append(unexpected, name)
		}
	}
	if len(unexpected) == 0 {
		return nil
	}
	sort.Strings(unexpected)
	return &UnexpectedPropertiesError{Properties: unexpected}
}

// bindJSON decodes the request body into dst after rejecting properties not in allowed.
func bindJSON(ctx echo.Context, dst interface{}, allowed ...string) error {
	body, err := io.ReadAll(ctx.Request().Body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		body = []byte("{}")
	}

	var raw map[string]json.RawMessage
	if err = json.Unmarshal(body, &raw); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}

	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	if err = checkProperties(names, allowed); err != nil {
		return err
	}

	if err = json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}
	return nil
}

func isMultipart(ctx echo.Context) bool {
	return strings.HasPrefix(ctx.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm)
}

// bindForm parses a multipart body and rejects fields or files not in allowed.
func bindForm(ctx echo.Context, allowed ...string) (*multipart.Form, error) {
	form, err := ctx.MultipartForm()
	if err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			return nil, ErrMalformedBody
		}
		return nil, fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}

	names := make([]string, 0, len(form.Value)+len(form.File))
	for name := range form.Value {
		names = append(names, name)
	}
	for name := range form.File {
		names = append(names, name)
	}
	if err = checkProperties(names, allowed); err != nil {
		return nil, err
	}
	return form, nil
}

func formValue(form *multipart.Form, name string) *string {
	values, ok := form.Value[name]
	if !ok || len(values) == 0 {
		return nil
	}
	value := values[0]
	return &value
}

func formString(form *multipart.Form, name string) string {
	if value := formValue(form, name); value != nil {
		return *value
	}
	return ""
}

// formInt parses an integer field, recording a validation error under name when it is not a number.
func formInt(form *multipart.Form, name string, errs validation.Errors) int {
	value := formValue(form, name)
	if value == nil || strings.TrimSpace(*value) == "" {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(*value))
	if err != nil {
		errs[name] = errors.New("must be a number")
		return 0
	}
	return n
}

func formUpload(form *multipart.Form, name string) *dto.Upload {
	files, ok := form.File[name]
	if !ok || len(files) == 0 {
		return nil
	}
	header := files[0]
	return &dto.Upload{
		Filename:    header.Filename,
		ContentType: header.Header.Get(echo.HeaderContentType),
		Open: func() (io.ReadCloser, error) {
			return header.Open()
		},
	}
}

// mergeErrors combines ozzo validation errors with errors collected while parsing.
func mergeErrors(err error, parsed validation.Errors) error {
	if len(parsed) == 0 {
		return err
	}
	if err == nil {
		return parsed
	}
	var errs validation.Errors
	if !errors.As(err, &errs) {
		return err
	}
	for name, fieldErr := range parsed {
		errs[name] = fieldErr
	}
	return errs
}

// FirstViolation returns "field: message" for the alphabetically first failing field.
func FirstViolation(errs validation.Errors) string {
	names := make([]string, 0, len(errs))
	for name := range errs {
		names = append(names, name)
	}
	if len(names) == 0 {
		return ""
	}
	sort.Strings(names)
	return names[0] + ": " + errs[names[0]].Error()
}

func trimmed(value string) string {
	return strings.TrimSpace(value)
}
