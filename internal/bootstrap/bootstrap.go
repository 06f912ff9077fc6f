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
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"

	"github.com/ladderhq/ladder/internal/app/controllers"
	"github.com/ladderhq/ladder/internal/app/migrations"
	"github.com/ladderhq/ladder/internal/app/repositories"
	"github.com/ladderhq/ladder/internal/app/routes"
	"github.com/ladderhq/ladder/internal/app/services"
	"github.com/ladderhq/ladder/internal/config"
	"github.com/ladderhq/ladder/internal/db"
	"github.com/ladderhq/ladder/internal/middleware"
	"github.com/ladderhq/ladder/internal/pkg/auth"
	"github.com/ladderhq/ladder/internal/pkg/email"
	"github.com/ladderhq/ladder/internal/pkg/helpers"
	"github.com/ladderhq/ladder/internal/pkg/logger"
	"github.com/ladderhq/ladder/internal/seed"
)

// Dependencies holds the wired application components
type Dependencies struct {
	Repos      *repositories.Repositories
	Services   *services.Services
	JWTService *auth.JWTService
	Cron       *cron.Cron
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger
func LoadConfigAndSetupLogger() (*config.Config, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, err
	}

	logger.Configure(logger.Config{
		Level:  logger.LogLevel(strings.ToLower(cfg.Logging.Level)),
		Pretty: strings.ToLower(cfg.Logging.Format) == "text",
	})

	logger.Info().Str("level", cfg.Logging.Level).Str("format", cfg.Logging.Format).Msg("Logger configured")
	return cfg, nil
}

// SetupDatabase establishes the database connection, runs migrations, and
// seeds default data
func SetupDatabase(cfg *config.Config) (*pgxpool.Pool, error) {
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		dbPool.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	migrator := migrations.NewMigrator(dbPool)
	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	logger.Info().Msg("Database migrations applied")

	if err := seed.CreateDefaultData(context.Background(), dbPool); err != nil {
		logger.Error().Err(err).Msg("Failed to seed default data, proceeding anyway")
	}

	return dbPool, nil
}

// BuildDependencies wires repositories, services, and the scheduled jobs
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool) (*Dependencies, error) {
	deps := &Dependencies{}

	deps.Repos = repositories.NewRepositories(dbPool)

	deps.JWTService = auth.NewJWTService(auth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 24*time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	sender := email.NewSender(email.SMTPConfig{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     fmt.Sprintf("%s <%s>", cfg.SMTP.FromName, cfg.SMTP.FromEmail),
	})

	deps.Services = services.NewServices(deps.Repos, deps.JWTService, sender, cfg.SMTP.BaseURL)

	deps.Cron = cron.New()
	_, err := deps.Cron.AddFunc("@hourly", func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		deps.Services.AuthService.CleanupExpiredTokens(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to schedule token cleanup: %w", err)
	}
	deps.Cron.Start()
	logger.Info().Msg("Token cleanup job scheduled")

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes
func SetupRouter(cfg *config.Config, dbPool *pgxpool.Pool, deps *Dependencies) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.Metrics())

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	router.Use(rateLimiter.Middleware())

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	ctrl := routes.Controllers{
		Auth:        controllers.NewAuthController(deps.Services.AuthService),
		User:        controllers.NewUserController(deps.Services.UserService),
		Opportunity: controllers.NewOpportunityController(deps.Services.OpportunityService),
		Application: controllers.NewApplicationController(deps.Services.ApplicationService),
		Favorite:    controllers.NewFavoriteController(deps.Services.FavoriteService),
		Community:   controllers.NewCommunityController(deps.Services.CommunityService),
		Post:        controllers.NewPostController(deps.Services.PostService),
		Message:     controllers.NewMessageController(deps.Services.MessageService),
		Report:      controllers.NewReportController(deps.Services.ReportService),
		Search:      controllers.NewSearchController(deps.Services.SearchService),
		Admin:       controllers.NewAdminController(deps.Services.AdminService, deps.Services.ReportService),
		Health:      controllers.NewHealthController(dbPool),
	}

	routes.SetupRouter(router, ctrl, deps.JWTService)

	return router
}
