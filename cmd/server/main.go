package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	webAdapter "invoice-generator/internal/adapters/web"
	"invoice-generator/internal/bootstrap"
	"invoice-generator/internal/config"
	"invoice-generator/internal/obs"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	log.Logger = obs.NewLogger(cfg.LogFormat, cfg.LogLevel).With().Str("env", cfg.AppEnv).Logger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	startCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	rt, err := bootstrap.New(startCtx, cfg)
	cancel()
	if err != nil {
		log.Fatal().Err(err).Msg("initialise application")
	}
	defer rt.Close()

	metrics := promhttp.HandlerFor(rt.Registry, promhttp.HandlerOpts{})
	srv := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           webAdapter.NewHandler(rt.Service, cfg.AllowedOrigins, metrics),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Str("backends", rt.String()).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown")
	}
}
