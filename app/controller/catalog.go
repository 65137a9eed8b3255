package controller

import (
	httpdto "github.com/vibast-solutions/ms-go-skillbase/app/dto/http"
	"github.com/vibast-solutions/ms-go-skillbase/app/middleware"
	"github.com/vibast-solutions/ms-go-skillbase/app/service"
	"github.com/vibast-solutions/ms-go-skillbase/app/types"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type CatalogController struct {
	catalog    service.CatalogService
	curriculum service.CurriculumService
}

func NewCatalogController(catalog service.CatalogService, curriculum service.CurriculumService) *CatalogController {
	return &CatalogController{catalog: catalog, curriculum: curriculum}
}

func (c *CatalogController) CreateCategory(ctx echo.Context) error {
	const message = "Failed to add category"

	req, err := types.NewCreateCategoryRequestFromContext(ctx)
	if err != nil {
		return bindFailure(ctx, message, err)
	}
	if err = req.Validate(); err != nil {
		return validationFailure(ctx, message, err)
	}

	category, err := c.catalog.CreateCategory(ctx.Request().Context(), req)
	if err != nil {
		return failure(ctx, "Category creation failed", err, logrus.Fields{"name": req.Name})
	}
	return success(ctx, "Successfully added category", httpdto.NewCategoryView(category))
}

func (c *CatalogController) ListCategories(ctx echo.Context) error {
	categories, err := c.catalog.ListCategories(ctx.Request().Context())
	if err != nil {
		return failure(ctx, "Category listing failed", err, nil)
	}
	return success(ctx, "Successfully got all categories", httpdto.NewCategoryViews(categories))
}

func (c *CatalogController) CreateSubcategory(ctx echo.Context) error {
	const message = "Failed to add subcategory"

	req, err := types.NewCreateCategoryRequestFromContext(ctx)
	if err != nil {
		return bindFailure(ctx, message, err)
	}
	if err = req.Validate(); err != nil {
		return validationFailure(ctx, message, err)
	}

	subcategory, err := c.catalog.CreateSubcategory(ctx.Request().Context(), req)
	if err != nil {
		return failure(ctx, "Subcategory creation failed", err, logrus.Fields{"name": req.Name})
	}
	return success(ctx, "Successfully added subcategory", httpdto.NewCategoryView(subcategory))
}

func (c *CatalogController) ListSubcategories(ctx echo.Context) error {
	subcategories, err := c.catalog.ListSubcategories(ctx.Request().Context())
	if err != nil {
		return failure(ctx, "Subcategory listing failed", err, nil)
	}
	return success(ctx, "Successfully got all subcategories", httpdto.NewCategoryViews(subcategories))
}

func (c *CatalogController) CreateCourse(ctx echo.Context) error {
	const message = "Failed to add course"

	req, err := types.NewCreateCourseRequestFromContext(ctx)
	if err != nil {
		return bindFailure(ctx, message, err)
	}
	if err = req.Validate(); err != nil {
		return validationFailure(ctx, message, err)
	}

	course, err := c.catalog.CreateCourse(ctx.Request().Context(), middleware.ClaimsFromContext(ctx), req)
	if err != nil {
		return failure(ctx, "Course creation failed", err, logrus.Fields{"instructor_id": req.InstructorID})
	}
	return success(ctx, "Successfully added course", httpdto.NewCourseView(course))
}

func (c *CatalogController) ListCourses(ctx echo.Context) error {
	instructorID := ctx.QueryParam("instructor")
	courses, err := c.catalog.ListCourses(ctx.Request().Context(), instructorID)
	if err != nil {
		return failure(ctx, "Course listing failed", err, logrus.Fields{"instructor_id": instructorID})
	}
	return success(ctx, "Successfully got all courses", httpdto.NewCourseViews(courses))
}

func (c *CatalogController) GetCourse(ctx echo.Context) error {
	id := ctx.Param("id")
	course, err := c.catalog.GetCourse(ctx.Request().Context(), id)
	if err != nil {
		return failure(ctx, "Course lookup failed", err, logrus.Fields{"course_id": id})
	}
	return success(ctx, "Successfully got course", httpdto.NewCourseView(course))
}

func (c *CatalogController) UpdateCourse(ctx echo.Context) error {
	const message = "Failed to update course"

	req, err := types.NewUpdateCourseRequestFromContext(ctx)
	if err != nil {
		return bindFailure(ctx, message, err)
	}
	if err = req.Validate(); err != nil {
		return validationFailure(ctx, message, err)
	}

	id := ctx.Param("id")
	course, err := c.catalog.UpdateCourse(ctx.Request().Context(), middleware.ClaimsFromContext(ctx), id, req)
	if err != nil {
		return failure(ctx, "Course update failed", err, logrus.Fields{"course_id": id})
	}
	return success(ctx, "Successfully updated course", httpdto.NewCourseView(course))
}

func (c *CatalogController) SetCourseApproval(ctx echo.Context) error {
	const message = "Failed to update course approval"

	req, err := types.NewCourseApprovalRequestFromContext(ctx)
	if err != nil {
		return bindFailure(ctx, message, err)
	}
	if err = req.Validate(); err != nil {
		return validationFailure(ctx, message, err)
	}

	id := ctx.Param("id")
	course, err := c.catalog.SetCourseApproval(ctx.Request().Context(), id, *req.IsApproved)
	if err != nil {
		return failure(ctx, "Course approval failed", err, logrus.Fields{"course_id": id})
	}
	return success(ctx, "Successfully updated course approval", httpdto.NewCourseView(course))
}

func (c *CatalogController) CreateSection(ctx echo.Context) error {
	const message = "Failed to add section"

	req, err := types.NewCreateSectionRequestFromContext(ctx)
	if err != nil {
		return bindFailure(ctx, message, err)
	}
	if err = req.Validate(); err != nil {
		return validationFailure(ctx, message, err)
	}

	section, err := c.curriculum.CreateSection(ctx.Request().Context(), req)
	if err != nil {
		return failure(ctx, "Section creation failed", err, logrus.Fields{"course_id": req.CourseID})
	}
	return success(ctx, "Successfully added section", httpdto.NewSectionView(section))
}

func (c *CatalogController) ListSections(ctx echo.Context) error {
	courseID := ctx.Param("id")
	sections, err := c.curriculum.ListSections(ctx.Request().Context(), courseID)
	if err != nil {
		return failure(ctx, "Section listing failed", err, logrus.Fields{"course_id": courseID})
	}
	return success(ctx, "Successfully got all sections", httpdto.NewSectionViews(sections))
}

func (c *CatalogController) UpdateSection(ctx echo.Context) error {
	const message = "Failed to update section"

	req, err := types.NewUpdateSectionRequestFromContext(ctx)
	if err != nil {
		return bindFailure(ctx, message, err)
	}
	if err = req.Validate(); err != nil {
		return validationFailure(ctx, message, err)
	}

	id := ctx.Param("id")
	section, err := c.curriculum.UpdateSection(ctx.Request().Context(), id, req)
	if err != nil {
		return failure(ctx, "Section update failed", err, logrus.Fields{"section_id": id})
	}
	return success(ctx, "Successfully updated section", httpdto.NewSectionView(section))
}

func (c *CatalogController) DeleteSection(ctx echo.Context) error {
	id := ctx.Param("id")
	if err := c.curriculum.DeleteSection(ctx.Request().Context(), id); err != nil {
		return failure(ctx, "Section deletion failed", err, logrus.Fields{"section_id": id})
	}

	logrus.WithField("section_id", id).Info("Section deleted")
	return success(ctx, "Successfully deleted section", nil)
}

func (c *CatalogController) CreateLecture(ctx echo.Context) error {
	const message = "Failed to add lecture"

	req, err := types.NewCreateLectureRequestFromContext(ctx)
	if err != nil {
		return bindFailure(ctx, message, err)
	}
	if err = req.Validate(); err != nil {
		return validationFailure(ctx, message, err)
	}

	lecture, err := c.curriculum.CreateLecture(ctx.Request().Context(), req)
	if err != nil {
		return failure(ctx, "Lecture creation failed", err, logrus.Fields{"section_id": req.SectionID})
	}
	return success(ctx, "Successfully added lecture", httpdto.NewLectureView(lecture))
}

func (c *CatalogController) CreateQuiz(ctx echo.Context) error {
	const message = "Failed to add quiz"

	req, err := types.NewCreateQuizRequestFromContext(ctx)
	if err != nil {
		return bindFailure(ctx, message, err)
	}
	if err = req.Validate(); err != nil {
		return validationFailure(ctx, message, err)
	}

	quiz, err := c.curriculum.CreateQuiz(ctx.Request().Context(), req)
	if err != nil {
		return failure(ctx, "Quiz creation failed", err, logrus.Fields{"section_id": req.SectionID})
	}
	return success(ctx, "Successfully added quiz", httpdto.NewQuizView(quiz))
}

func (c *CatalogController) CreateQuizQuestion(ctx echo.Context) error {
	const message = "Failed to add quiz question"

	req, err := types.NewCreateQuizQuestionRequestFromContext(ctx)
	if err != nil {
		return bindFailure(ctx, message, err)
	}
	if err = req.Validate(); err != nil {
		return validationFailure(ctx, message, err)
	}

	question, err := c.curriculum.CreateQuizQuestion(ctx.Request().Context(), req)
	if err != nil {
		return failure(ctx, "Quiz question creation failed", err, logrus.Fields{"quiz_id": req.QuizID})
	}
	return success(ctx, "Successfully added quiz question", httpdto.NewQuizQuestionView(question))
}

func (c *CatalogController) CreateAssignment(ctx echo.Context) error {
	const message = "Failed to add assignment"

	req, err := types.NewCreateAssignmentRequestFromContext(ctx)
	if err != nil {
		return bindFailure(ctx, message, err)
	}
	if err = req.Validate(); err != nil {
		return validationFailure(ctx, message, err)
	}

	assignment, err := c.curriculum.CreateAssignment(ctx.Request().Context(), req)
	if err != nil {
		return failure(ctx, "Assignment creation failed", err, logrus.Fields{"section_id": req.SectionID})
	}
	return success(ctx, "Successfully added assignment", httpdto.NewAssignmentView(assignment))
}
