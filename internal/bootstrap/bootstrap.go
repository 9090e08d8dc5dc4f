// Package bootstrap wires configuration, storage, services and routes into
// a runnable application.
package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	appControllers "github.com/bruce184/OCMS/internal/app/controllers"
	appMigrations "github.com/bruce184/OCMS/internal/app/migrations"
	appRepos "github.com/bruce184/OCMS/internal/app/repositories"
	"github.com/bruce184/OCMS/internal/app/repositories/memstore"
	appRoutes "github.com/bruce184/OCMS/internal/app/routes"
	appServices "github.com/bruce184/OCMS/internal/app/services"
	"github.com/bruce184/OCMS/internal/config"
	"github.com/bruce184/OCMS/internal/db"
	appMiddleware "github.com/bruce184/OCMS/internal/middleware"
	pkgAuth "github.com/bruce184/OCMS/internal/pkg/auth"
	"github.com/bruce184/OCMS/internal/pkg/logger"
	"github.com/bruce184/OCMS/internal/seed"
)

// Dependencies holds the wired application graph.
type Dependencies struct {
	Repos          *appRepos.Repositories
	JWTService     *pkgAuth.JWTService
	AuthMiddleware *appMiddleware.AuthMiddleware
	Controllers    appRoutes.Controllers
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	logger.Configure(logger.Config{
		Level:  logger.LogLevel(strings.ToLower(cfg.Logging.Level)),
		Pretty: strings.ToLower(cfg.Logging.Format) == "text",
	})
	logger.Info().Str("logLevel", cfg.Logging.Level).Str("storage", cfg.Storage.Driver).Msg("Configuration loaded")
	return cfg, nil
}

// SetupDatabase connects to PostgreSQL and applies migrations. It is only
// called when the storage driver is postgres.
func SetupDatabase(cfg *config.Config) (*pgxpool.Pool, error) {
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	pool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		pool.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}
	migrator := appMigrations.NewMigrator(pool)
	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		pool.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	logger.Info().Msg("Database ready")
	return pool, nil
}

// BuildDependencies constructs the repository, service and controller graph
// on top of the configured storage driver. Memory mode always seeds the
// demo dataset; postgres seeds it on first run.
func BuildDependencies(cfg *config.Config, pool *pgxpool.Pool) (*Dependencies, error) {
	var repos *appRepos.Repositories
	switch cfg.Storage.Driver {
	case config.StorageMemory:
		repos = memstore.NewRepositories(memstore.NewStore())
	case config.StoragePostgres:
		repos = appRepos.NewPostgresRepositories(pool)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}

	if err := seed.Apply(context.Background(), repos); err != nil {
		return nil, fmt.Errorf("failed to seed demo data: %w", err)
	}

	jwtService := pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:   cfg.JWT.Secret,
		TokenExp:    cfg.TokenExpiration(),
		TokenIssuer: cfg.JWT.Issuer,
	})

	authService := appServices.NewAuthService(repos.Users, jwtService)
	courseService := appServices.NewCourseService(repos.Courses, repos.Semesters, repos.Classes)
	classService := appServices.NewClassService(repos.Classes, repos.Enrollments, repos.Users)
	scheduleService := appServices.NewScheduleService(repos.Schedules)
	studentService := appServices.NewStudentService(repos.Users, repos.Enrollments, repos.Schedules, repos.Assignments, repos.Attendance, repos.Tuition)
	lecturerService := appServices.NewLecturerService(repos.Users, repos.Classes)
	assignmentService := appServices.NewAssignmentService(repos.Assignments, repos.Enrollments, repos.Classes)
	announcementService := appServices.NewAnnouncementService(repos.Announcements, repos.Enrollments, repos.Classes)
	attendanceService := appServices.NewAttendanceService(repos.Attendance, repos.Schedules, repos.Enrollments, repos.Classes)
	tuitionService := appServices.NewTuitionService(repos.Tuition, repos.Users)

	return &Dependencies{
		Repos:          repos,
		JWTService:     jwtService,
		AuthMiddleware: appMiddleware.NewAuthMiddleware(jwtService, repos.Users),
		Controllers: appRoutes.Controllers{
			Auth:         appControllers.NewAuthController(authService),
			Course:       appControllers.NewCourseController(courseService),
			Class:        appControllers.NewClassController(classService),
			Schedule:     appControllers.NewScheduleController(scheduleService),
			Student:      appControllers.NewStudentController(studentService),
			Lecturer:     appControllers.NewLecturerController(lecturerService),
			Assignment:   appControllers.NewAssignmentController(assignmentService),
			Announcement: appControllers.NewAnnouncementController(announcementService),
			Attendance:   appControllers.NewAttendanceController(attendanceService),
			Tuition:      appControllers.NewTuitionController(tuitionService),
		},
	}, nil
}

// SetupRouter builds the gin engine with all routes mounted.
func SetupRouter(cfg *config.Config, deps *Dependencies) *gin.Engine {
	if config.IsProduction(cfg) {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware)
	return router
}
