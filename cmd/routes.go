package cmd

import (
	"github.com/vibast-solutions/ms-go-skillbase/app/controller"
	"github.com/vibast-solutions/ms-go-skillbase/app/entity"
	"github.com/vibast-solutions/ms-go-skillbase/app/middleware"

	"github.com/labstack/echo/v4"
)

func registerRoutes(e *echo.Echo, h *handlers) {
	api := e.Group("/api")

	auths := api.Group("/auths")
	auths.POST("/signup", h.auth.Signup)
	auths.POST("/signin", h.auth.SignIn)
	auths.POST("/verification-email", h.auth.SendVerificationEmail)
	auths.POST("/verify-email", h.auth.VerifyEmail)
	auths.POST("/forgot-password-email", h.auth.ForgotPassword)
	auths.POST("/reset-password", h.auth.ResetPassword)

	admin := middleware.RequireRole(entity.RoleAdmin)
	authors := middleware.RequireRole(entity.RoleInstructor, entity.RoleAdmin)
	learners := middleware.RequireRole(entity.RoleLearner, entity.RoleAdmin)

	registerProfileRoutes(api.Group("/learners", h.session.RequireAuth), h.learners, admin)
	registerProfileRoutes(api.Group("/instructors", h.session.RequireAuth), h.instructors, admin)
	registerProfileRoutes(api.Group("/admins", h.session.RequireAuth), h.admins, admin)

	api.GET("/categories", h.catalog.ListCategories)
	api.POST("/categories", h.catalog.CreateCategory, h.session.RequireAuth, admin)
	api.GET("/subcategories", h.catalog.ListSubcategories)
	api.POST("/subcategories", h.catalog.CreateSubcategory, h.session.RequireAuth, admin)

	api.GET("/courses", h.catalog.ListCourses)
	api.GET("/courses/:id", h.catalog.GetCourse)
	api.GET("/courses/:id/sections", h.catalog.ListSections)
	api.GET("/courses/:id/reviews", h.enrollments.ListReviews)
	api.POST("/courses", h.catalog.CreateCourse, h.session.RequireAuth, authors)
	api.PATCH("/courses/:id", h.catalog.UpdateCourse, h.session.RequireAuth, authors)
	api.PATCH("/courses/:id/approval", h.catalog.SetCourseApproval, h.session.RequireAuth, admin)

	// Groups without a prefix would claim every unknown /api path for their middleware,
	// so routes sharing a role gate list it per route.
	authoring := []echo.MiddlewareFunc{h.session.RequireAuth, authors}
	api.POST("/sections", h.catalog.CreateSection, authoring...)
	api.PATCH("/sections/:id", h.catalog.UpdateSection, authoring...)
	api.DELETE("/sections/:id", h.catalog.DeleteSection, authoring...)
	api.POST("/lectures", h.catalog.CreateLecture, authoring...)
	api.POST("/quizzes", h.catalog.CreateQuiz, authoring...)
	api.POST("/quiz-questions", h.catalog.CreateQuizQuestion, authoring...)
	api.POST("/assignments", h.catalog.CreateAssignment, authoring...)

	registerCourseListRoutes(api.Group("/carts", h.session.RequireAuth, learners), h.carts)
	registerCourseListRoutes(api.Group("/wishlists", h.session.RequireAuth, learners), h.wishlists)

	enrolling := []echo.MiddlewareFunc{h.session.RequireAuth, learners}
	api.POST("/subscriptions", h.enrollments.Subscribe, enrolling...)
	api.POST("/reviews", h.enrollments.CreateReview, enrolling...)
}

func registerProfileRoutes(g *echo.Group, c *controller.ProfileController, admin echo.MiddlewareFunc) {
	g.GET("", c.List, admin)
	g.PATCH("/:id", c.Update)
	g.DELETE("/:id", c.Delete)
}

func registerCourseListRoutes(g *echo.Group, c *controller.CourseListController) {
	g.POST("", c.Add)
	g.GET("/:learnerId", c.Get)
	g.DELETE("/:learnerId/courses/:courseId", c.Remove)
}
