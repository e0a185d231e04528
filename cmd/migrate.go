package main

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/dtroode/profile-server/database"
	"github.com/dtroode/profile-server/internal/config"
	"github.com/dtroode/profile-server/internal/repository/postgres"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [up|down|status]",
		Short:     "Apply, roll back or inspect database migrations",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{database.CommandUp, database.CommandDown, database.CommandStatus},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewConfig()
			if err != nil {
				log.Fatalf("failed to parse config: %v", err)
			}

			db, err := postgres.NewSQLConnection(cmd.Context(), cfg.Database.DSN)
			if err != nil {
				return err
			}
			defer db.Close()

			return database.Run(cmd.Context(), db, args[0])
		},
	}
}
