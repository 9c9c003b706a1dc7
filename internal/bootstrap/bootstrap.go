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
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/alquds/archivesystem/internal/app/controllers"
	appMigrations "github.com/alquds/archivesystem/internal/app/migrations"
	appRepos "github.com/alquds/archivesystem/internal/app/repositories"
	appRoutes "github.com/alquds/archivesystem/internal/app/routes"
	appServices "github.com/alquds/archivesystem/internal/app/services"
	"github.com/alquds/archivesystem/internal/config"
	"github.com/alquds/archivesystem/internal/db"
	appMiddleware "github.com/alquds/archivesystem/internal/middleware"
	pkgAuth "github.com/alquds/archivesystem/internal/pkg/auth"
	"github.com/alquds/archivesystem/internal/pkg/explorercache"
	"github.com/alquds/archivesystem/internal/pkg/filestorage"
	"github.com/alquds/archivesystem/internal/pkg/helpers"
	"github.com/alquds/archivesystem/internal/pkg/logger"
	"github.com/alquds/archivesystem/internal/pkg/paths"
	"github.com/alquds/archivesystem/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	IdentityService    *appServices.IdentityService
	PermissionService  *appServices.PermissionService
	ScanService        *appServices.ScanService
	FolderService      *appServices.FolderService
	ExplorerService    *appServices.ExplorerService
	FileService        *appServices.FileService
	AuthService        *appServices.AuthService
	AcademicService    *appServices.AcademicService
	AuthController     *appControllers.AuthController
	ExplorerController *appControllers.ExplorerController
	FolderController   *appControllers.FolderController
	FileController     *appControllers.FileController
	AcademicController *appControllers.AcademicController
	AuthMiddleware     *appMiddleware.AuthMiddleware
	Repos              *appRepos.Repositories
	JWTService         *pkgAuth.JWTService
	FileStorage        *filestorage.LocalStorage
	Cache              *explorercache.Cache
	PathResolver       *paths.Resolver
	Logger             zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations, and
// seeds the default data.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(context.Background(), migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultData(context.Background(), dbPool, lgr); err != nil {
		// Seeding failures are not fatal: the archive still serves whatever
		// data already exists.
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes repositories, services, controllers, and
// middleware in dependency order.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	resolver, err := paths.NewResolver(cfg.Storage.UploadsRoot)
	if err != nil {
		lgr.Error().Err(err).Str("uploadsRoot", cfg.Storage.UploadsRoot).Msg("Failed to initialize path resolver")
		return nil, fmt.Errorf("failed to initialize path resolver: %w", err)
	}
	deps.PathResolver = resolver

	deps.FileStorage, err = filestorage.NewLocalStorage(resolver)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.Cache = explorercache.New(cfg.GetExplorerCacheTTL())

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	deps.IdentityService = appServices.NewIdentityService(deps.Repos.UserRepository)
	deps.PermissionService = appServices.NewPermissionService(deps.IdentityService)
	deps.ScanService = appServices.NewScanService(
		resolver,
		deps.Cache,
		deps.Repos.FolderRepository,
		deps.Repos.UploadedFileRepository,
		deps.Repos.UserRepository,
		deps.PermissionService,
	)
	deps.FolderService = appServices.NewFolderService(
		deps.Repos.FolderRepository,
		deps.Repos.UploadedFileRepository,
		deps.Repos.AcademicRepository,
		deps.Repos.CourseAssignmentRepository,
		deps.FileStorage,
		deps.IdentityService,
		deps.PermissionService,
		deps.ScanService,
	)
	deps.ExplorerService = appServices.NewExplorerService(
		deps.ScanService,
		deps.Repos.FolderRepository,
		resolver,
		cfg.Explorer.ScanConcurrency,
		cfg.Explorer.MaxTreeDepth,
	)
	deps.FileService = appServices.NewFileService(
		deps.Repos.UploadedFileRepository,
		deps.Repos.DocumentSubmissionRepository,
		deps.Repos.CourseAssignmentRepository,
		deps.FileStorage,
		deps.FolderService,
		deps.PermissionService,
		deps.ScanService,
		cfg.GetMaxFileSizeBytes(),
		cfg.GetAllowedFileExts(),
	)
	deps.AuthService = appServices.NewAuthService(
		deps.Repos.UserRepository,
		deps.Repos.TokenRepository,
		deps.JWTService,
	)
	deps.AcademicService = appServices.NewAcademicService(
		deps.Repos.AcademicRepository,
		deps.Repos.DepartmentRepository,
		deps.Repos.CourseRepository,
		deps.Repos.CourseAssignmentRepository,
		deps.Repos.DocumentSubmissionRepository,
		deps.FolderService,
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService, deps.Repos.UserRepository)

	// Opportunistic cleanup of expired refresh tokens at startup.
	go func() {
		removed, err := deps.Repos.TokenRepository.CleanupExpiredTokens(context.Background())
		if err != nil {
			lgr.Warn().Err(err).Msg("Failed to clean up expired refresh tokens")
		} else if removed > 0 {
			lgr.Info().Int64("removed", removed).Msg("Expired refresh tokens cleaned up")
		}
	}()

	deps.AuthController = appControllers.NewAuthController(deps.AuthService, lgr)
	deps.ExplorerController = appControllers.NewExplorerController(
		deps.ScanService,
		deps.ExplorerService,
		deps.AcademicService,
		lgr,
	)
	deps.FolderController = appControllers.NewFolderController(deps.FolderService, deps.AcademicService, lgr)
	deps.FileController = appControllers.NewFileController(deps.FileService, lgr)
	deps.AcademicController = appControllers.NewAcademicController(deps.AcademicService, lgr)

	return deps, nil
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
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger())

	appRoutes.SetupSwagger(router)

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.ExplorerController,
		deps.FolderController,
		deps.FileController,
		deps.AcademicController,
		deps.AuthMiddleware,
	)

	return router
}
