package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"catalogbot/internal/config"
	"catalogbot/internal/handler"
	"catalogbot/internal/httpapi"
	"catalogbot/internal/render"
	"catalogbot/internal/repository/postgres"
	"catalogbot/internal/service"

	"github.com/golang-migrate/migrate/v4"
	postgresdb "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const pruneInterval = 12 * time.Hour

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := newLogger(cfg.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting catalog bot", zap.Bool("debug", cfg.Debug))

	// Connect to database with retries
	db, err := connectDatabase(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connection established")

	// Run migrations
	if err := runMigrations(db, logger); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Initialize repositories
	userRepo := postgres.NewUserRepo(db)
	languageRepo := postgres.NewLanguageRepo(db)
	categoryRepo := postgres.NewCategoryRepo(db)
	itemRepo := postgres.NewItemRepo(db)
	infoRepo := postgres.NewInfoRepo(db)
	messageRepo := postgres.NewMessageRepo(db)

	// Message templates: database edits first, built-in file second
	sources := []service.MessageSource{service.NewDBMessages(messageRepo)}
	fileMessages, err := service.LoadFileMessages(cfg.MessagesFile)
	if err != nil {
		logger.Warn("Built-in messages not loaded", zap.String("path", cfg.MessagesFile), zap.Error(err))
	} else {
		sources = append(sources, fileMessages)
	}
	messages := service.NewMessageCatalog(languageRepo, sources...)

	// Initialize services
	sessions := service.NewConversationStore()
	services := handler.Services{
		Users:      service.NewUserService(userRepo, languageRepo, logger),
		Onboarding: service.NewOnboardingService(userRepo, languageRepo, sessions, logger),
		Navigator:  service.NewNavigator(categoryRepo, itemRepo, infoRepo, logger),
		Stats:      service.NewStatsService(userRepo, cfg.LaunchDate, logger),
		Messages:   messages,
	}

	// Initialize Telegram bot; failed updates are reported by the handler once it exists
	var h *handler.Handler
	bot, err := tele.NewBot(botSettings(cfg, errorReporter(&h, logger)))
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	if cfg.BotUsername == "" {
		cfg.BotUsername = bot.Me.Username
	}

	logger.Info("Telegram bot initialized", zap.String("username", cfg.BotUsername))

	// Initialize handler
	transport := render.NewTeleTransport(bot)
	presenter := render.NewPresenter(transport, messages, render.MediaResolver{
		BaseURL: cfg.MediaBaseURL,
		Dir:     cfg.MediaDir,
	}, logger)

	h = handler.NewHandler(bot, services, transport, presenter, handler.Options{
		BotUsername:    cfg.BotUsername,
		OperatorChatID: cfg.OperatorChatID,
	}, logger)
	h.RegisterHandlers()

	logger.Info("Handlers registered")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start session cleanup job in background
	go runCleanupJob(ctx, services.Onboarding, cfg.StateMaxIdle, logger)

	// Start report endpoints
	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           httpapi.NewRouter(services.Stats, logger),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		logger.Info("HTTP server started", zap.String("addr", cfg.HTTPAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server failed", zap.Error(err))
		}
	}()

	// Start bot in background
	go func() {
		logger.Info("Bot started successfully")
		bot.Start()
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan

	logger.Info("Shutdown signal received, stopping bot...")

	// Graceful shutdown
	bot.Stop()
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Warn("HTTP server shutdown failed", zap.Error(err))
	}

	logger.Info("Bot stopped gracefully")
}

func botSettings(cfg *config.Config, onError func(error, tele.Context)) tele.Settings {
	return tele.Settings{
		Token:   cfg.BotToken,
		Poller:  &tele.LongPoller{Timeout: cfg.LongPollTimeout},
		OnError: onError,
	}
}

// errorReporter routes failed updates to the handler h points at
func errorReporter(h **handler.Handler, logger *zap.Logger) func(error, tele.Context) {
	return func(err error, c tele.Context) {
		if *h == nil {
			logger.Error("Update failed before handlers were registered", zap.Error(err))
			return
		}
		(*h).OnError(err, c)
	}
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// connectDatabase connects to PostgreSQL with retries
func connectDatabase(cfg *config.Config, logger *zap.Logger) (*sqlx.DB, error) {
	var db *sqlx.DB
	var err error

	maxRetries := 30
	retryDelay := 2 * time.Second

	for i := 0; i < maxRetries; i++ {
		db, err = sqlx.Open("postgres", cfg.DSN())
		if err != nil {
			logger.Warn("Failed to open database connection",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			time.Sleep(retryDelay)
			continue
		}

		// Test connection
		if err = db.Ping(); err != nil {
			logger.Warn("Failed to ping database",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			db.Close()
			time.Sleep(retryDelay)
			continue
		}

		// Connection successful
		db.SetMaxOpenConns(cfg.Database.MaxConns)
		db.SetMaxIdleConns(cfg.Database.MaxConns / 2)
		db.SetConnMaxLifetime(5 * time.Minute)

		return db, nil
	}

	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", maxRetries, err)
}

// runMigrations runs database migrations
func runMigrations(db *sqlx.DB, logger *zap.Logger) error {
	driver, err := postgresdb.WithInstance(db.DB, &postgresdb.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres",
		driver,
	)
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}

	err = m.Up()
	switch {
	case errors.Is(err, migrate.ErrNoChange):
		logger.Info("No new migrations to apply")
	case err != nil:
		return fmt.Errorf("failed to run migrations: %w", err)
	default:
		logger.Info("Migrations applied successfully")
	}

	return nil
}

// runCleanupJob drops abandoned dialogues periodically
func runCleanupJob(ctx context.Context, onboarding *service.OnboardingService, maxIdle time.Duration, logger *zap.Logger) {
	ticker := time.NewTicker(pruneInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Cleanup job stopped")
			return
		case <-ticker.C:
			logger.Info("Running scheduled cleanup")
			onboarding.PruneIdle(maxIdle)
		}
	}
}
