package bootstrap

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	appAuth "github.com/yigit/checkmygrade/internal/app/auth"
	appControllers "github.com/yigit/checkmygrade/internal/app/controllers"
	appRepos "github.com/yigit/checkmygrade/internal/app/repositories"
	appRoutes "github.com/yigit/checkmygrade/internal/app/routes"
	appServices "github.com/yigit/checkmygrade/internal/app/services"
	"github.com/yigit/checkmygrade/internal/config"
	appMiddleware "github.com/yigit/checkmygrade/internal/middleware"
	pkgAuth "github.com/yigit/checkmygrade/internal/pkg/auth"
	"github.com/yigit/checkmygrade/internal/pkg/helpers"
	"github.com/yigit/checkmygrade/internal/pkg/logger"
	"github.com/yigit/checkmygrade/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	StudentService      appServices.StudentService
	ProfessorService    appServices.ProfessorService
	CourseService       appServices.CourseService
	DirectoryService    appServices.DirectoryService
	StatisticsService   appServices.StatisticsService
	ReportService       appServices.ReportService
	AuthService         *appServices.AuthService
	AuthController      *appControllers.AuthController
	StudentController   *appControllers.StudentController
	CourseController    *appControllers.CourseController
	ProfessorController *appControllers.ProfessorController
	ReportController    *appControllers.ReportController
	HealthController    *appControllers.HealthController
	AuthMiddleware      *appMiddleware.AuthMiddleware
	Repos               *appRepos.Repositories
	JWTService          *pkgAuth.JWTService
	AuthzService        *appAuth.AuthorizationService
	Logger              zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
// Logs are written to output, or stdout when output is nil.
func LoadConfigAndSetupLogger(configPath string, output io.Writer) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Str("path", configPath).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	lgr := logger.Configure(logger.Config{
		Level:  cfg.Logging.Level,
		Format: logger.Format(strings.ToLower(cfg.Logging.Format)),
		Output: output,
	})
	lgr.Debug().Str("logLevel", cfg.Logging.Level).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupStorage makes sure every table file exists before the ledgers load.
func SetupStorage(cfg *config.Config, lgr zerolog.Logger) error {
	lgr.Info().Str("dataDir", cfg.Storage.DataDir).Msg("Checking table files...")
	return seed.CreateTables(cfg, lgr)
}

// BuildDependencies loads the tables and initializes services, controllers and middleware.
func BuildDependencies(cfg *config.Config, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	repos, err := appRepos.NewRepositories(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to load tables")
		return nil, err
	}
	deps.Repos = repos

	// Initialize services
	deps.AuthzService = appAuth.NewAuthorizationService(deps.Repos.AccountRepository)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	deps.AuthService = appServices.NewAuthService(deps.Repos.AccountRepository, deps.JWTService, lgr)
	deps.StudentService = appServices.NewStudentService(deps.Repos.StudentRepository, lgr)
	deps.ProfessorService = appServices.NewProfessorService(deps.Repos.ProfessorRepository, lgr)
	deps.CourseService = appServices.NewCourseService(deps.Repos.CourseRepository, lgr)
	deps.DirectoryService = appServices.NewDirectoryService(deps.Repos.CourseRepository, deps.Repos.ProfessorRepository)
	deps.StatisticsService = appServices.NewStatisticsService(deps.Repos.StudentRepository)
	deps.ReportService = appServices.NewReportService(deps.Repos.StudentRepository, deps.StatisticsService, lgr)

	if err := seed.CreateDefaultAccount(context.Background(), deps.AuthService, deps.Repos.AccountRepository, cfg, lgr); err != nil {
		// Log the error but don't fail the startup
		lgr.Error().Err(err).Msg("Failed to create default account, proceeding anyway...")
	}

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService, deps.AuthzService)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService)
	deps.StudentController = appControllers.NewStudentController(deps.StudentService, deps.StatisticsService, deps.AuthzService)
	deps.CourseController = appControllers.NewCourseController(deps.CourseService, deps.DirectoryService, deps.StatisticsService)
	deps.ProfessorController = appControllers.NewProfessorController(deps.ProfessorService, deps.DirectoryService)
	deps.ReportController = appControllers.NewReportController(deps.ReportService)
	deps.HealthController = appControllers.NewHealthController()

	return deps, nil
}

// ReloadLedgers rereads the student, professor and login tables from disk so
// edits made outside the process take effect. A table that fails to load
// keeps its current contents; the remaining tables are still reloaded.
func ReloadLedgers(ctx context.Context, deps *Dependencies) error {
	repos := deps.Repos
	var errs []error

	if err := repos.StudentRepository.Reload(ctx); err != nil {
		errs = append(errs, err)
	}
	if err := repos.ProfessorRepository.Reload(ctx); err != nil {
		errs = append(errs, err)
	}
	if err := repos.AccountRepository.Reload(ctx); err != nil {
		errs = append(errs, err)
	}

	if err := errors.Join(errs...); err != nil {
		deps.Logger.Error().Err(err).Msg("Ledger reload failed")
		return err
	}
	deps.Logger.Info().
		Int("students", repos.StudentRepository.Count(ctx)).
		Int("studentRecords", repos.StudentRepository.RecordCount(ctx)).
		Int("professors", len(repos.ProfessorRepository.GetAllProfessors(ctx))).
		Int("accounts", repos.AccountRepository.Count(ctx)).
		Msg("Ledgers reloaded")
	return nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(appMiddleware.RequestID(), appMiddleware.RequestLogger(), gin.Recovery())

	appRoutes.SetupRouter(router, appRoutes.Handlers{
		Auth:       deps.AuthController,
		Students:   deps.StudentController,
		Courses:    deps.CourseController,
		Professors: deps.ProfessorController,
		Reports:    deps.ReportController,
		Health:     deps.HealthController,
	}, deps.AuthMiddleware)

	return router
}
