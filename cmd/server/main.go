// Command server runs the twitter-clone backend: a JSON REST API over SQLite
// with api-key authentication, a public tweet feed, likes, follows, and media
// uploads.
//
// Startup order:
//  1. Load .env (best effort) and the environment configuration.
//  2. Configure zerolog (level, optional pretty console output).
//  3. Open/migrate/seed the SQLite database.
//  4. Set up OpenTelemetry tracing (optional) including GORM query spans.
//  5. Build the Gin engine, register routes, and serve with graceful
//     shutdown on SIGINT/SIGTERM.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	_ "github.com/tbourn/go-twitter-backend/docs"
	"github.com/tbourn/go-twitter-backend/internal/config"
	httpapi "github.com/tbourn/go-twitter-backend/internal/http"
	"github.com/tbourn/go-twitter-backend/internal/observability"
	"github.com/tbourn/go-twitter-backend/internal/repo"
	"github.com/tbourn/go-twitter-backend/internal/sysutil"
)

// version is stamped at build time via -ldflags "-X main.version=...".
var version = "dev"

// shutdownGrace bounds how long in-flight requests may finish after a
// termination signal before the server is forcibly closed.
const shutdownGrace = 10 * time.Second

// @title           go-twitter-backend API
// @version         1.0
// @description     Twitter-clone REST backend: tweets, likes, follows, media.
// @BasePath        /api
//
// @securityDefinitions.apikey ApiKeyAuth
// @in   header
// @name Api-Key
func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.MustLoad()

	// Logging
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	sysutil.SetLogLevel(cfg.LogLevel)
	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	// Database
	db, err := repo.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("open database")
	}
	if err := repo.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("migrate schema")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Seed.Enabled {
		if u, err := repo.SeedDemoUser(ctx, db, cfg.Seed.Name, cfg.Seed.APIKey); err != nil {
			log.Warn().Err(err).Msg("seed demo user")
		} else {
			log.Info().Uint("user_id", u.ID).Str("name", u.Name).Msg("demo user ready")
		}
	}

	// Tracing (optional)
	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, version)
	if err != nil {
		log.Fatal().Err(err).Msg("setup tracing")
	}
	defer func() {
		c, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownOTel(c); err != nil {
			log.Warn().Err(err).Msg("tracing shutdown")
		}
	}()
	if err := observability.TraceDB(db, cfg.OTEL); err != nil {
		log.Fatal().Err(err).Msg("instrument database")
	}

	// HTTP
	gin.SetMode(cfg.GinMode)
	engine := gin.New()
	httpapi.RegisterRoutes(engine, db, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("version", version).Msg("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
		_ = srv.Close()
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Info().Msg("stopped")
}
