package router

import (
	"github.com/educore/campus-backend/internal/application"
	"github.com/educore/campus-backend/internal/container"
	pginfra "github.com/educore/campus-backend/internal/infrastructure/postgres"
	handlers "github.com/educore/campus-backend/internal/interface/http"
	"github.com/educore/campus-backend/internal/router/modules"
	"github.com/educore/campus-backend/pkg/mailer"
)

// InitModules builds the application services from the container
// singletons and registers every feature module with the registry.
// Called once during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()

	userRepo := pginfra.NewUserRepository(pool)
	courseRepo := pginfra.NewCourseRepository(pool)
	enrollRepo := pginfra.NewEnrollmentRepository(pool)
	profileRepo := pginfra.NewProfileRepository(pool)

	notifier := mailer.NewQueueNotifier(
		container.GetRabbitPub(),
		cfg.AppName,
		cfg.CompanyName,
		cfg.LogoURL,
		cfg.MailSendEnabled,
	)

	registration := application.NewRegistrationService(userRepo, notifier, logger)
	users := application.NewUserService(userRepo, container.GetJWT(), container.GetAssetStore(), container.GetRedis(), logger)
	catalog := application.NewCourseCatalog(courseRepo, container.GetAssetStore(), logger, container.GetES(), cfg.ESCoursesIndex)
	enrollments := application.NewEnrollmentRegistry(enrollRepo, courseRepo, userRepo, logger)
	profiles := application.NewProfileManager(profileRepo, userRepo, container.GetAssetStore(), logger)

	authHandler := handlers.NewAuthHandler(registration, users, logger, cfg.CookieDomain, cfg.CookieSecure)
	userHandler := handlers.NewUserHandler(users, logger)
	courseHandler := handlers.NewCourseHandler(catalog, enrollments, logger)
	profileHandler := handlers.NewProfileHandler(profiles, logger)

	r.Add(modules.NewAuthModule(authHandler, container.GetJWT()))
	r.Add(modules.NewCourseModule(courseHandler, container.GetJWT()))
	r.Add(modules.NewProfileModule(userHandler, profileHandler, container.GetJWT()))
}
