package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Cristiand11/portfolio-sub001/internal/config"
)

func newLogger(cfg *config.Config) zerolog.Logger {
	if cfg.IsDev() {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			Level(zerolog.DebugLevel).
			With().Timestamp().Logger()
	}
	return zerolog.New(os.Stdout).
		Level(zerolog.InfoLevel).
		With().Timestamp().Str("service", "clinic-scheduler").Logger()
}

func main() {
	cfg := config.Load()
	logger := newLogger(cfg)

	root := &cobra.Command{
		Use:           "clinic-scheduler",
		Short:         "Medical appointment scheduling API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newServeCmd(cfg, logger),
		newMigrateCmd(cfg, logger),
	)

	if err := root.ExecuteContext(context.Background()); err != nil {
		logger.Fatal().Err(err).Msg("command failed")
	}
}
