package cmd

import (
	"context"
	"database/sql"
	"net"
	"time"

	"github.com/vibast-solutions/ms-go-skillbase/app/controller"
	"github.com/vibast-solutions/ms-go-skillbase/app/entity"
	"github.com/vibast-solutions/ms-go-skillbase/app/middleware"
	"github.com/vibast-solutions/ms-go-skillbase/app/notification"
	"github.com/vibast-solutions/ms-go-skillbase/app/repository"
	"github.com/vibast-solutions/ms-go-skillbase/app/service"
	"github.com/vibast-solutions/ms-go-skillbase/app/storage"
	"github.com/vibast-solutions/ms-go-skillbase/config"

	_ "github.com/go-sql-driver/mysql"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Start the HTTP (Echo) server for the course marketplace API.`,
	Run:   runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

// handlers groups every controller mounted by registerRoutes.
type handlers struct {
	auth        *controller.AccountAuthController
	learners    *controller.ProfileController
	instructors *controller.ProfileController
	admins      *controller.ProfileController
	catalog     *controller.CatalogController
	carts       *controller.CourseListController
	wishlists   *controller.CourseListController
	enrollments *controller.EnrollmentController
	session     *middleware.AuthMiddleware
}

func runServe(_ *cobra.Command, _ []string) {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}
	if err := configureLogging(cfg); err != nil {
		logrus.WithError(err).Fatal("Failed to configure logging")
	}

	db, err := sql.Open("mysql", cfg.DSN())
	if err != nil {
		logrus.WithError(err).Fatal("Failed to connect to database")
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logrus.WithError(err).Fatal("Failed to ping database")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	blobStore, err := storage.NewS3BlobStore(ctx, cfg.Storage)
	cancel()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to configure object storage")
	}

	gateway, err := notification.NewGateway(notification.NewSMTPMailer(cfg.Mail))
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load email templates")
	}

	startHTTPServer(cfg, newHandlers(db, cfg, blobStore, gateway))
}

func newHandlers(db *sql.DB, cfg *config.Config, blobStore *storage.S3BlobStore, gateway *notification.Gateway) *handlers {
	accountRepo := repository.NewAccountRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	subcategoryRepo := repository.NewSubcategoryRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	sectionRepo := repository.NewSectionRepository(db)
	contentRepo := repository.NewSectionContentRepository(db)
	cartRepo := repository.NewCourseListRepository(db, repository.CourseListCart)
	wishlistRepo := repository.NewCourseListRepository(db, repository.CourseListWishlist)
	subscriptionRepo := repository.NewSubscriptionRepository(db)
	reviewRepo := repository.NewReviewRepository(db)

	tokens := service.NewTokenIssuer(cfg.JWT.Secret, time.Now)
	media := service.NewMediaUploader(blobStore, time.Now)

	accountService := service.NewAccountSecurityService(accountRepo, profileRepo, gateway, tokens, cfg)
	profileService := service.NewProfileService(profileRepo, accountRepo, media, time.Now)
	catalogService := service.NewCatalogService(categoryRepo, subcategoryRepo, courseRepo, profileRepo, media, time.Now)
	curriculumService := service.NewCurriculumService(courseRepo, sectionRepo, contentRepo, media, time.Now)
	enrollmentService := service.NewEnrollmentService(subscriptionRepo, reviewRepo, profileRepo, courseRepo, time.Now)

	return &handlers{
		auth:        controller.NewAccountAuthController(accountService, cfg.Password.Policy),
		learners:    controller.NewProfileController(profileService, entity.ProfileKindLearner),
		instructors: controller.NewProfileController(profileService, entity.ProfileKindInstructor),
		admins:      controller.NewProfileController(profileService, entity.ProfileKindAdmin),
		catalog:     controller.NewCatalogController(catalogService, curriculumService),
		carts:       controller.NewCourseListController(service.NewCourseListService(cartRepo, profileRepo, courseRepo, time.Now), "cart"),
		wishlists:   controller.NewCourseListController(service.NewCourseListService(wishlistRepo, profileRepo, courseRepo, time.Now), "wishlist"),
		enrollments: controller.NewEnrollmentController(enrollmentService),
		session:     middleware.NewAuthMiddleware(tokens),
	}
}

func startHTTPServer(cfg *config.Config, h *handlers) {
	e := echo.New()
	defer e.Close()
	e.HideBanner = true
	e.Server.ReadTimeout = cfg.HTTP.ReadTimeout
	e.Server.WriteTimeout = cfg.HTTP.WriteTimeout

	e.Use(echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogRemoteIP:  true,
		LogLatency:   true,
		LogUserAgent: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			fields := logrus.Fields{
				"remote_ip":  v.RemoteIP,
				"host":       v.Host,
				"method":     v.Method,
				"uri":        v.URI,
				"status":     v.Status,
				"latency":    v.Latency.String(),
				"latency_ns": v.Latency.Nanoseconds(),
				"user_agent": v.UserAgent,
			}
			entry := logrus.WithFields(fields)
			if v.Error != nil {
				entry = entry.WithError(v.Error)
			}
			entry.Info("http_request")
			return nil
		},
	}))
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())

	registerRoutes(e, h)

	httpAddr := net.JoinHostPort(cfg.HTTP.Host, cfg.HTTP.Port)
	logrus.WithField("addr", httpAddr).Info("Starting HTTP server")
	if err := e.Start(httpAddr); err != nil {
		logrus.WithError(err).Fatal("Failed to start HTTP server")
	}
}
