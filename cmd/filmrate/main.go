package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"filmrate/internal/api"
	"filmrate/internal/config"
	"filmrate/internal/domain"
	"filmrate/internal/service"
	"filmrate/internal/store"
)

func newLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Log.Level)}
	if strings.ToLower(cfg.Log.Format) == "text" {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}

func parseLevel(s string) slog.Leveler {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func connectToDB(dbURL string, logger *slog.Logger) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", dbURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)
	logger.Info("Connected to PostgreSQL database")
	return db, nil
}

func main() {
	cfg := config.New()
	logger := newLogger(cfg)
	validate := domain.NewValidator()

	var (
		filmStore store.FilmStore
		userStore store.UserStore
	)
	switch cfg.Storage {
	case config.StorageMemory:
		logger.Info("Using in-memory storage")
		filmStore = store.NewMemoryFilmStore()
		userStore = store.NewMemoryUserStore()
	default:
		db, err := connectToDB(cfg.DB.URL, logger)
		if err != nil {
			logger.Error("Failed to initialize database connection", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer func() {
			if err := db.Close(); err != nil {
				logger.Error("Failed to close database connection", slog.String("error", err.Error()))
			}
		}()

		if err := store.EnsureSchema(context.Background(), db, logger); err != nil {
			logger.Error("Failed to ensure database schema", slog.String("error", err.Error()))
			os.Exit(1)
		}

		filmStore, err = store.NewPostgresFilmStore(db, logger)
		if err != nil {
			logger.Error("Failed to initialize film store", slog.String("error", err.Error()))
			os.Exit(1)
		}
		userStore, err = store.NewPostgresUserStore(db, logger)
		if err != nil {
			logger.Error("Failed to initialize user store", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	filmService := service.NewFilmService(filmStore, userStore, logger)
	userService := service.NewUserService(userStore, logger)

	filmHandler := api.NewFilmHandler(filmService, logger, validate)
	userHandler := api.NewUserHandler(userService, logger, validate)
	router := api.NewRouter(filmHandler, userHandler, logger)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTP.Port,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("HTTP server starting", slog.String("port", cfg.HTTP.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server ListenAndServe() failed", slog.String("error", err.Error()))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("HTTP server shutdown failed", slog.String("error", err.Error()))
	} else {
		logger.Info("HTTP server gracefully stopped")
	}
}
