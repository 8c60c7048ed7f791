package main

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Cristiand11/portfolio-sub001/internal/config"
	dbpkg "github.com/Cristiand11/portfolio-sub001/internal/db"
)

func newMigrateCmd(cfg *config.Config, logger zerolog.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := dbpkg.NewDB(cfg)
			if err != nil {
				return err
			}
			if err := dbpkg.Migrate(db); err != nil {
				return err
			}
			logger.Info().Msg("schema up to date")
			return nil
		},
	}
}
