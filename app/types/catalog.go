package types

import (
	"errors"

	"github.com/vibast-solutions/ms-go-skillbase/app/dto"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/labstack/echo/v4"
)

const (
	maxCategoryLength    = 50
	maxTitleLength       = 100
	maxDescriptionLength = 2000
	maxLanguageLength    = 50
	maxQuestionLength    = 1000
	maxOptionLength      = 100
	maxOptions           = 100
)

var (
	errPassMarksAboveTotal = errors.New("pass marks cannot exceed total marks")
	errFileRequired        = errors.New("file is required")
	errOptionsRequired     = errors.New("at least one option is required")
	errTooManyOptions      = errors.New("too many options")
	errBlankOption         = errors.New("options cannot be blank")
	errOptionTooLong       = errors.New("option is too long")
)

type CreateCategoryRequest struct {
	Name string `json:"name"`
}

func NewCreateCategoryRequestFromContext(ctx echo.Context) (*CreateCategoryRequest, error) {
	var body CreateCategoryRequest
	if err := bindJSON(ctx, &body, "name"); err != nil {
		return nil, err
	}
	body.Name = trimmed(body.Name)

	return &body, nil
}

func (r *CreateCategoryRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name, validation.Required.Error("Name is required"), validation.Length(1, maxCategoryLength)),
	)
}

type CreateCourseRequest struct {
	InstructorID string `json:"instructorReference"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Language     string `json:"language"`
	CategoryID   string `json:"category"`
}

func NewCreateCourseRequestFromContext(ctx echo.Context) (*CreateCourseRequest, error) {
	var body CreateCourseRequest
	if err := bindJSON(ctx, &body, "instructorReference", "title", "description", "language", "category"); err != nil {
		return nil, err
	}
	body.Title = trimmed(body.Title)
	body.Language = trimmed(body.Language)

	return &body, nil
}

func (r *CreateCourseRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.InstructorID, validation.Required, is.UUID),
		validation.Field(&r.Title, validation.Required, validation.Length(1, maxTitleLength)),
		validation.Field(&r.Description, validation.Required, validation.Length(1, maxDescriptionLength)),
		validation.Field(&r.Language, validation.Required, validation.Length(1, maxLanguageLength)),
		validation.Field(&r.CategoryID, validation.Required, is.UUID),
	)
}

// UpdateCourseRequest accepts JSON or multipart; thumbnail and promoVideo are files.
type UpdateCourseRequest struct {
	Title       *string     `json:"title"`
	Description *string     `json:"description"`
	Language    *string     `json:"language"`
	Thumbnail   *dto.Upload `json:"-"`
	PromoVideo  *dto.Upload `json:"-"`
}

func NewUpdateCourseRequestFromContext(ctx echo.Context) (*UpdateCourseRequest, error) {
	var body UpdateCourseRequest
	if isMultipart(ctx) {
		form, err := bindForm(ctx, "title", "description", "language", "thumbnail", "promoVideo")
		if err != nil {
			return nil, err
		}
		body.Title = formValue(form, "title")
		body.Description = formValue(form, "description")
		body.Language = formValue(form, "language")
		body.Thumbnail = formUpload(form, "thumbnail")
		body.PromoVideo = formUpload(form, "promoVideo")
	} else if err := bindJSON(ctx, &body, "title", "description", "language"); err != nil {
		return nil, err
	}

	return &body, nil
}

func (r *UpdateCourseRequest) IsEmpty() bool {
	return r.Title == nil && r.Description == nil && r.Language == nil && r.Thumbnail == nil && r.PromoVideo == nil
}

func (r *UpdateCourseRequest) Validate() error {
	if r.IsEmpty() {
		return validation.Errors{"title": errAtLeastOneField}
	}

	errs := validation.Errors{}
	if r.Title != nil {
		errs["title"] = validation.Validate(*r.Title, validation.Required, validation.Length(1, maxTitleLength))
	}
	if r.Description != nil {
		errs["description"] = validation.Validate(*r.Description, validation.Required, validation.Length(1, maxDescriptionLength))
	}
	if r.Language != nil {
		errs["language"] = validation.Validate(*r.Language, validation.Required, validation.Length(1, maxLanguageLength))
	}
	return errs.Filter()
}

type CourseApprovalRequest struct {
	IsApproved *bool `json:"isApproved"`
}

func NewCourseApprovalRequestFromContext(ctx echo.Context) (*CourseApprovalRequest, error) {
	var body CourseApprovalRequest
	if err := bindJSON(ctx, &body, "isApproved"); err != nil {
		return nil, err
	}

	return &body, nil
}

func (r *CourseApprovalRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.IsApproved, validation.NotNil),
	)
}

type CreateSectionRequest struct {
	CourseID string `json:"courseReference"`
	Title    string `json:"title"`
}

func NewCreateSectionRequestFromContext(ctx echo.Context) (*CreateSectionRequest, error) {
	var body CreateSectionRequest
	if err := bindJSON(ctx, &body, "courseReference", "title"); err != nil {
		return nil, err
	}
	body.Title = trimmed(body.Title)

	return &body, nil
}

func (r *CreateSectionRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.CourseID, validation.Required, is.UUID),
		validation.Field(&r.Title, validation.Required, validation.Length(1, maxTitleLength)),
	)
}

type UpdateSectionRequest struct {
	Title string `json:"title"`
}

func NewUpdateSectionRequestFromContext(ctx echo.Context) (*UpdateSectionRequest, error) {
	var body UpdateSectionRequest
	if err := bindJSON(ctx, &body, "title"); err != nil {
		return nil, err
	}
	body.Title = trimmed(body.Title)

	return &body, nil
}

func (r *UpdateSectionRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, maxTitleLength)),
	)
}

// CreateLectureRequest is a multipart form; the file is stored and linked by its type.
type CreateLectureRequest struct {
	SectionID   string
	Title       string
	Description *string
	File        *dto.Upload
}

func NewCreateLectureRequestFromContext(ctx echo.Context) (*CreateLectureRequest, error) {
	form, err := bindForm(ctx, "sectionReference", "title", "description", "file")
	if err != nil {
		return nil, err
	}

	return &CreateLectureRequest{
		SectionID:   trimmed(formString(form, "sectionReference")),
		Title:       trimmed(formString(form, "title")),
		Description: formValue(form, "description"),
		File:        formUpload(form, "file"),
	}, nil
}

func (r *CreateLectureRequest) Validate() error {
	errs := validation.Errors{
		"sectionReference": validation.Validate(r.SectionID, validation.Required, is.UUID),
		"title":            validation.Validate(r.Title, validation.Required, validation.Length(1, maxTitleLength)),
	}
	if r.Description != nil {
		errs["description"] = validation.Validate(*r.Description, validation.Length(0, maxDescriptionLength))
	}
	if r.File == nil {
		errs["file"] = errFileRequired
	}
	return errs.Filter()
}

type CreateQuizRequest struct {
	SectionID  string `json:"sectionReference"`
	Title      string `json:"title"`
	TotalMarks int    `json:"totalMarks"`
	PassMarks  int    `json:"passMarks"`
}

func NewCreateQuizRequestFromContext(ctx echo.Context) (*CreateQuizRequest, error) {
	var body CreateQuizRequest
	if err := bindJSON(ctx, &body, "sectionReference", "title", "totalMarks", "passMarks"); err != nil {
		return nil, err
	}
	body.Title = trimmed(body.Title)

	return &body, nil
}

func (r *CreateQuizRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.SectionID, validation.Required, is.UUID),
		validation.Field(&r.Title, validation.Required, validation.Length(1, maxTitleLength)),
		validation.Field(&r.TotalMarks, validation.Required, validation.Min(1)),
		validation.Field(&r.PassMarks, validation.Min(0), validation.By(notAbove(r.TotalMarks))),
	)
}

type CreateQuizQuestionRequest struct {
	QuizID   string   `json:"quizReference"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   string   `json:"answer"`
	Marks    *int     `json:"marks"`
}

func NewCreateQuizQuestionRequestFromContext(ctx echo.Context) (*CreateQuizQuestionRequest, error) {
	var body CreateQuizQuestionRequest
	if err := bindJSON(ctx, &body, "quizReference", "question", "options", "answer", "marks"); err != nil {
		return nil, err
	}
	body.Question = trimmed(body.Question)
	body.Answer = trimmed(body.Answer)
	for i, option := range body.Options {
		body.Options[i] = trimmed(option)
	}

	return &body, nil
}

func (r *CreateQuizQuestionRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.QuizID, validation.Required, is.UUID),
		validation.Field(&r.Question, validation.Required, validation.Length(1, maxQuestionLength)),
		validation.Field(&r.Options, validation.By(validOptions)),
		validation.Field(&r.Answer, validation.Required, validation.Length(1, maxOptionLength)),
		validation.Field(&r.Marks, validation.NotNil, validation.Min(0)),
	)
}

func validOptions(value interface{}) error {
	options, _ := value.([]string)
	switch {
	case len(options) == 0:
		return errOptionsRequired
	case len(options) > maxOptions:
		return errTooManyOptions
	}
	for _, option := range options {
		if option == "" {
			return errBlankOption
		}
		if len(option) > maxOptionLength {
			return errOptionTooLong
		}
	}
	return nil
}

// CreateAssignmentRequest is a multipart form with an optional file.
type CreateAssignmentRequest struct {
	SectionID   string
	Title       string
	Description string
	TotalMarks  int
	PassMarks   int
	File        *dto.Upload

	parseErrors validation.Errors
}

func NewCreateAssignmentRequestFromContext(ctx echo.Context) (*CreateAssignmentRequest, error) {
	form, err := bindForm(ctx, "sectionReference", "title", "description", "totalMarks", "passMarks", "file")
	if err != nil {
		return nil, err
	}

	parseErrors := validation.Errors{}
	return &CreateAssignmentRequest{
		SectionID:   trimmed(formString(form, "sectionReference")),
		Title:       trimmed(formString(form, "title")),
		Description: formString(form, "description"),
		TotalMarks:  formInt(form, "totalMarks", parseErrors),
		PassMarks:   formInt(form, "passMarks", parseErrors),
		File:        formUpload(form, "file"),
		parseErrors: parseErrors,
	}, nil
}

func (r *CreateAssignmentRequest) Validate() error {
	errs := validation.Errors{
		"sectionReference": validation.Validate(r.SectionID, validation.Required, is.UUID),
		"title":            validation.Validate(r.Title, validation.Required, validation.Length(1, maxTitleLength)),
		"description":      validation.Validate(r.Description, validation.Required, validation.Length(1, maxDescriptionLength)),
		"totalMarks":       validation.Validate(r.TotalMarks, validation.Required, validation.Min(1)),
		"passMarks":        validation.Validate(r.PassMarks, validation.Min(0), validation.By(notAbove(r.TotalMarks))),
	}
	return mergeErrors(errs.Filter(), r.parseErrors)
}

func notAbove(limit int) validation.RuleFunc {
	return func(value interface{}) error {
		if n, _ := value.(int); n > limit {
			return errPassMarksAboveTotal
		}
		return nil
	}
}
