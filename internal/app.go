// internal/app.go
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jmoiron/sqlx"

	router "user-directory/internal/api"
	"user-directory/internal/api/handler"
	custommw "user-directory/internal/api/middleware"
	"user-directory/internal/config"
	"user-directory/internal/repository"
	"user-directory/internal/repository/postgres"
	"user-directory/internal/service"
	"user-directory/internal/util"
	"user-directory/pkg/db"
)

// Application holds all the initialized components of the application.
type Application struct {
	Config *config.AppConfig
	Logger *slog.Logger
	DB     *sqlx.DB

	// Repositories
	UserRepository      repository.UserRepository
	APIClientRepository repository.APIClientRepository

	// Services
	UserService service.UserService

	// HTTP API
	HTTPHandler http.Handler
}

// NewApplication creates a new Application instance.
func NewApplication() *Application {
	return &Application{}
}

// Initialize initializes all application components.
func (app *Application) Initialize(ctx context.Context) error {
	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	app.Config = cfg

	// 2. Initialize Logger
	util.InitLogger()
	app.Logger = util.GetLogger()
	app.Logger.Info("Application configuration loaded successfully.", "environment", cfg.Environment)

	// 3. Connect to Database
	database, err := db.NewPostgresDB(app.Config.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = database
	app.Logger.Info("Database connection established.")

	// 4. Initialize Repositories
	app.UserRepository = postgres.NewUserRepository(app.DB)
	app.APIClientRepository = postgres.NewAPIClientRepository(app.DB)
	app.Logger.Info("Repositories initialized.")

	// 5. Initialize Services
	app.UserService = service.NewUserService(
		app.DB, // This is the DBExecutor
		app.UserRepository,
		service.NewBcryptHasher(),
	)
	app.Logger.Info("Services initialized.")

	// 6. Initialize HTTP Handlers and Router
	// The diagnostic bypass never applies in production mode.
	userHandler := handler.NewUserHandler(app.UserService, app.Logger)
	gate := custommw.APIKeyAuth(app.APIClientRepository, app.DB, !cfg.IsProduction())
	app.HTTPHandler = router.NewRouter(userHandler, gate, app.Logger, !cfg.IsProduction())
	app.Logger.Info("HTTP router and handlers initialized.")

	return nil
}

// Shutdown gracefully shuts down application resources.
func (app *Application) Shutdown(ctx context.Context) error {
	app.Logger.Info("Shutting down application...")
	if app.DB != nil {
		if err := app.DB.Close(); err != nil {
			app.Logger.Error("Failed to close database connection", "error", err)
			return fmt.Errorf("failed to close database connection: %w", err)
		}
		app.Logger.Info("Database connection closed.")
	}
	app.Logger.Info("Application shut down gracefully.")
	return nil
}
