package main

import (
	"bufio"
	"context"
	"os"

	"github.com/rs/zerolog/log"

	"invoice-generator/internal/adapters/cli"
	"invoice-generator/internal/adapters/repl"
	"invoice-generator/internal/bootstrap"
	"invoice-generator/internal/config"
	"invoice-generator/internal/obs"
)

// With arguments the binary runs one CLI command; without, it starts the REPL.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	// Logs go to stderr in console form so stdout stays clean for command output.
	log.Logger = obs.NewLoggerTo(os.Stderr, "console", cfg.LogLevel)

	ctx := context.Background()
	rt, err := bootstrap.New(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("initialise application")
	}
	defer rt.Close()

	if len(os.Args) > 1 {
		cli.Run(ctx, rt.Service, os.Args[1:])
		return
	}
	repl.Run(ctx, rt.Service, bufio.NewReader(os.Stdin))
}
