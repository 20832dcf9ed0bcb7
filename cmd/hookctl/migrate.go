package main

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/garrettladley/terrahook/internal/config"
	"github.com/garrettladley/terrahook/internal/migrations/postgres"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := config.Read()
			if err != nil {
				return fmt.Errorf("failed to read config: %w", err)
			}
			if cfg.Database.URL == "" {
				return errors.New(config.EnvDatabaseURL + " is not set")
			}

			pool, err := pgxpool.New(ctx, cfg.Database.URL)
			if err != nil {
				return fmt.Errorf("failed to connect: %w", err)
			}
			defer pool.Close()

			applied, err := postgres.Apply(ctx, pool)
			if err != nil {
				return err
			}

			if len(applied) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Database is up to date")
				return nil
			}
			for _, name := range applied {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Applied %s\n", name)
			}
			return nil
		},
	}
}
