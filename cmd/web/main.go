package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/farmacia-institucional/tutelas-portal/internal/core/service"
	"github.com/farmacia-institucional/tutelas-portal/internal/infrastructure/backend"
	"github.com/farmacia-institucional/tutelas-portal/internal/infrastructure/config"
	"github.com/farmacia-institucional/tutelas-portal/internal/infrastructure/session"
	"github.com/farmacia-institucional/tutelas-portal/internal/web"
	"github.com/farmacia-institucional/tutelas-portal/pkg/logger"
)

func main() {
	// Optional in production; local development keeps settings in .env.
	_ = godotenv.Load()

	cfg, err := config.Load(context.Background())
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	appLogger := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Development(),
	})

	client := backend.New(backend.Options{
		BaseURL:   cfg.Backend.URL,
		PublicURL: cfg.Backend.PublicURL,
		Timeout:   cfg.Backend.Timeout(),
		Logger:    appLogger.With().Str("component", "backend").Logger(),
	})

	authService := service.NewAuthService(client, appLogger.With().Str("component", "auth").Logger())
	tutelaService := service.NewTutelaService(client, appLogger.With().Str("component", "tutelas").Logger())
	userService := service.NewUserService(client, appLogger.With().Str("component", "users").Logger())

	router, err := web.NewRouter(web.Dependencies{
		Auth:     authService,
		Tutelas:  tutelaService,
		Users:    userService,
		Probe:    client,
		Evidence: client,
		SessionOpts: session.Options{
			Secure: cfg.Session.CookieSecure,
			TTL:    cfg.Session.TTL(),
		},
		Logger: appLogger,
	})
	if err != nil {
		appLogger.Fatal().Err(err).Msg("failed to build router")
	}

	go func() {
		addr := ":" + cfg.Port
		appLogger.Info().Str("addr", addr).Str("env", cfg.Env).Msg("portal listening")
		if err := router.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal().Err(err).Msg("server stopped")
		}
	}()

	waitForShutdown(appLogger)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := router.Shutdown(shutdownCtx); err != nil {
		appLogger.Error().Err(err).Msg("shutdown incomplete")
	}
}

func waitForShutdown(log zerolog.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	log.Info().Str("signal", sig.String()).Msg("shutting down")
}
