package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/99minutos/marketplace-roles/internal/api"
	"github.com/99minutos/marketplace-roles/internal/core/service"
	"github.com/99minutos/marketplace-roles/internal/infrastructure/config"
	"github.com/99minutos/marketplace-roles/internal/infrastructure/directory"
	"github.com/99minutos/marketplace-roles/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.Development(),
		Service: "marketplace-roles",
	})

	users, err := directory.New(cfg.Directory.Records()...)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid user directory")
	}

	tokens := service.NewTokenService(users, cfg.Token.SigningSecret)
	if !tokens.Signed() {
		log.Warn().Msg("TOKEN_SIGNING_SECRET not set: issuing unsigned tokens, role claims are not verified")
	}

	e := api.NewRouter(api.Deps{Tokens: tokens, Log: log})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Int("users", users.Len()).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
