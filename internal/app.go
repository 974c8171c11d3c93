// internal/app.go
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/Paulodemoc/torochallenge/internal/api"
	"github.com/Paulodemoc/torochallenge/internal/api/handler"
	"github.com/Paulodemoc/torochallenge/internal/config"
	"github.com/Paulodemoc/torochallenge/internal/domain"
	"github.com/Paulodemoc/torochallenge/internal/quotes"
	"github.com/Paulodemoc/torochallenge/internal/repository"
	"github.com/Paulodemoc/torochallenge/internal/repository/postgres"
	"github.com/Paulodemoc/torochallenge/internal/service"
	"github.com/Paulodemoc/torochallenge/internal/util"
	"github.com/Paulodemoc/torochallenge/pkg/db"
)

// Application holds all the initialized components of the application.
// Collaborators are constructed explicitly at startup and passed in; there
// are no lazily-resolved singletons.
type Application struct {
	Config *config.AppConfig
	Logger *slog.Logger
	DB     *sqlx.DB

	// Repositories
	UserRepository    repository.UserRepository
	AccountRepository repository.AccountRepository
	HoldingRepository repository.HoldingRepository

	// Quote source
	QuoteSource quotes.Source

	// Services
	UserService    service.UserService
	FundsService   service.FundsService
	TradingService service.TradingService

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
	app.Logger.Info("Application configuration loaded successfully.")

	// 3. Connect to Database and ensure schema
	database, err := db.NewPostgresDB(app.Config.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = database
	if err := postgres.Migrate(ctx, app.DB); err != nil {
		return fmt.Errorf("failed to migrate database schema: %w", err)
	}
	app.Logger.Info("Database connection established.")

	// 4. Initialize Repositories
	app.UserRepository = postgres.NewUserRepository(app.DB)
	app.AccountRepository = postgres.NewAccountRepository(app.DB)
	app.HoldingRepository = postgres.NewHoldingRepository(app.DB)
	app.Logger.Info("Repositories initialized.")

	// 5. Initialize Quote Source
	if app.Config.QuotesURL != "" {
		app.QuoteSource = quotes.NewHTTPSource(app.Config.QuotesURL)
		app.Logger.Info("Quote source initialized.", "url", app.Config.QuotesURL)
	} else {
		// No feed configured; serve a fixed snapshot so the API stays usable.
		app.QuoteSource = quotes.NewStaticSource([]domain.Quote{
			{StockCode: "ABC", Name: "Alphabet Chemical Co.", Price: decimal.NewFromInt(15)},
			{StockCode: "DEF", Name: "Defiant Energy Fund", Price: decimal.NewFromInt(5)},
		})
		app.Logger.Info("Quote source initialized with fixed snapshot; set QUOTES_URL for a live feed.")
	}

	// 6. Initialize Services
	app.UserService = service.NewUserService(
		app.DB, // This is the DBTxBeginner
		app.DB, // This is the DBExecutor
		app.UserRepository,
		app.AccountRepository,
		app.Config.JWTSecret,
		app.Config.JWTTTL,
		db.BeginTx,
		db.CommitTx,
		db.RollbackTx,
	)
	app.FundsService = service.NewFundsService(
		app.DB,
		app.DB,
		app.AccountRepository,
		db.BeginTx,
		db.CommitTx,
		db.RollbackTx,
	)
	app.TradingService = service.NewTradingService(
		app.DB,
		app.DB,
		app.UserRepository,
		app.AccountRepository,
		app.HoldingRepository,
		app.QuoteSource,
		db.BeginTx,
		db.CommitTx,
		db.RollbackTx,
	)
	app.Logger.Info("Services initialized.")

	// 7. Initialize HTTP Handlers and Router
	userHandler := handler.NewUserHandler(app.UserService, app.Logger)
	accountHandler := handler.NewAccountHandler(app.FundsService, app.Logger)
	stockHandler := handler.NewStockHandler(app.TradingService, app.Logger)
	app.HTTPHandler = api.NewRouter(userHandler, accountHandler, stockHandler, app.Config.JWTSecret, app.Logger)
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
