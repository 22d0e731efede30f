package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/mpetrov/secureapp/internal/config"
	"github.com/mpetrov/secureapp/internal/server"
	"github.com/mpetrov/secureapp/internal/storage/postgres"
)

func main() {
	loadLocalEnv()

	cfg, err := config.Load()
	if err != nil {
		logger := bootstrapLogger()
		logger.Fatal().Err(err).Msg("load config")
	}

	log := newLogger(cfg.LogLevel)

	ctx := context.Background()
	store, err := postgres.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("init database")
	}
	defer store.Close()

	// Schema initialization is an explicit step, not an import-time side
	// effect.
	if err := store.Migrate(ctx); err != nil {
		log.Fatal().Err(err).Msg("run migrations")
	}

	srv := server.New(cfg, log, store)

	go func() {
		log.Info().Str("addr", cfg.HTTPAddress()).Msg("server listening")
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("http server error")
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		log.Error().Err(err).Msg("graceful shutdown error")
	}
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(os.Stdout).Level(lvl).With().Timestamp().Logger()
}

func bootstrapLogger() zerolog.Logger {
	return zerolog.New(os.Stdout).With().Timestamp().Logger()
}

func loadLocalEnv() {
	if err := godotenv.Load(); err != nil {
		logger := bootstrapLogger()
		logger.Info().Msg("no .env file found; relying on existing environment")
	}
}
