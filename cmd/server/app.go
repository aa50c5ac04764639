package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/ruslex/ruslex-api/internal/config"
	"github.com/ruslex/ruslex-api/internal/platform/postgres"
	"github.com/ruslex/ruslex-api/internal/service"
	"github.com/ruslex/ruslex-api/internal/service/auth"
	"github.com/ruslex/ruslex-api/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	// Configuration
	config *config.Config

	// Core services
	logger *slog.Logger
	db     *sql.DB

	// Stores (using interfaces for proper abstraction)
	userStore      store.UserStore
	verbStore      store.VerbStore
	nounStore      store.NounStore
	verbGroupStore store.VerbGroupStore
	nounGroupStore store.NounGroupStore
	linkStore      store.StudentLinkStore

	// Service interfaces
	jwtService       auth.JWTService
	passwordHasher   auth.PasswordHasher
	verbService      service.VerbService
	nounService      service.NounService
	verbGroupService service.VerbGroupService
	nounGroupService service.NounGroupService
	studentService   service.StudentService
	userService      service.UserService
}

// newApplication creates a new application instance with all dependencies initialized.
// It accepts core dependencies like configuration, logger, and database connection that
// must be established before application initialization.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	// Initialize JWT service
	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	// Initialize password hasher
	app.passwordHasher = auth.NewBcryptHasher()

	// Initialize stores
	app.userStore = postgres.NewUserStore(db, logger)
	app.verbStore = postgres.NewVerbStore(db, logger)
	app.nounStore = postgres.NewNounStore(db, logger)
	app.verbGroupStore = postgres.NewVerbGroupStore(db, logger)
	app.nounGroupStore = postgres.NewNounGroupStore(db, logger)
	app.linkStore = postgres.NewStudentLinkStore(db, logger)

	// Initialize services
	app.verbService, err = service.NewVerbService(app.verbStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create verb service: %w", err)
	}

	app.nounService, err = service.NewNounService(app.nounStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create noun service: %w", err)
	}

	app.verbGroupService, err = service.NewVerbGroupService(
		app.verbGroupStore,
		app.verbStore,
		app.linkStore,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create verb group service: %w", err)
	}

	app.nounGroupService, err = service.NewNounGroupService(
		app.nounGroupStore,
		app.nounStore,
		app.linkStore,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create noun group service: %w", err)
	}

	app.studentService, err = service.NewStudentService(
		app.userStore,
		app.linkStore,
		app.verbGroupStore,
		app.nounGroupStore,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create student service: %w", err)
	}

	app.userService, err = service.NewUserService(app.userStore, app.passwordHasher, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create user service: %w", err)
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	err := app.startHTTPServer(ctx, router)
	if err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
