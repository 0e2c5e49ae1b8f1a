package main

import (
	"os"

	"github.com/rs/zerolog/log"

	"invoice-generator/internal/config"
	"invoice-generator/internal/obs"
	"invoice-generator/internal/store"
)

// Applies the embedded file-history migrations to DATABASE_URL.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	log.Logger = obs.NewLoggerTo(os.Stderr, cfg.LogFormat, cfg.LogLevel)

	if cfg.DatabaseURL == "" {
		log.Fatal().Msg("DATABASE_URL is not set")
	}
	if err := store.Migrate(cfg.DatabaseURL); err != nil {
		log.Fatal().Err(err).Msg("migrate")
	}
	log.Info().Msg("migrations applied")
}
