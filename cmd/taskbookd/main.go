// Command taskbookd is the taskbook server daemon: signup/login, JWT
// authentication, and the per-user task REST API over a SQLite database.
package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "modernc.org/sqlite"

	"github.com/GoCodeAlone/taskbook/auth"
	"github.com/GoCodeAlone/taskbook/config"
	"github.com/GoCodeAlone/taskbook/internal/version"
	"github.com/GoCodeAlone/taskbook/server"
	"github.com/GoCodeAlone/taskbook/task"
	"github.com/GoCodeAlone/taskbook/user"
)

var configPath = flag.String("config", "", "path to YAML config file (optional)")

func main() {
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel(cfg.LogLevel),
	}))

	logger.Info("starting taskbookd",
		"version", version.Version,
		"commit", version.Commit,
	)

	db, err := sql.Open("sqlite", cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database %s: %v", cfg.DBPath, err)
	}
	// modernc.org/sqlite does not support concurrent writers.
	db.SetMaxOpenConns(1)
	defer db.Close() //nolint:errcheck

	tasks, err := task.NewSQLiteStore(db)
	if err != nil {
		log.Fatalf("Failed to init task store: %v", err)
	}
	users, err := user.NewSQLiteStore(db)
	if err != nil {
		log.Fatalf("Failed to init user store: %v", err)
	}

	srv := server.New(*cfg, version.Version, logger)
	tokens := auth.NewTokenManager(srv.JWTSecret(), cfg.Auth.TokenTTL)
	srv.SetAuthService(auth.NewService(users, tokens))
	srv.SetTaskStore(tasks)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		log.Fatalf("Server error: %v", err)
	case sig := <-sigCh:
		logger.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Stop(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
	logger.Info("shutdown complete")
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.FromEnv(), nil
	}
	return config.Load(path)
}

func logLevel(name string) slog.Level {
	switch name {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
