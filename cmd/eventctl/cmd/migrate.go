package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sakif/event-booking/internal/config"
	"github.com/sakif/event-booking/internal/repository/postgres"
)

func newMigrateCommand() *cobra.Command {
	var databaseURL string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the postgres schema",
		Long: `Apply or roll back postgres migrations.

The sqlite store creates its schema on open and needs no migrations.`,
	}
	cmd.PersistentFlags().StringVar(&databaseURL, "database-url", "", "postgres URL (default: DATABASE_URL)")

	resolveURL := func() (string, error) {
		if databaseURL != "" {
			return databaseURL, nil
		}
		var cfg config.StoreConfig
		if err := config.ParseEnv(&cfg); err != nil {
			return "", err
		}
		if cfg.DatabaseURL == "" {
			return "", errors.New("DATABASE_URL or --database-url is required")
		}
		return cfg.DatabaseURL, nil
	}

	up := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			url, err := resolveURL()
			if err != nil {
				return err
			}
			if err := postgres.MigrateUp(url); err != nil {
				return err
			}
			return printVersion(cmd, url)
		},
	}

	var steps int
	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if steps <= 0 {
				return fmt.Errorf("--steps must be positive, got %d", steps)
			}
			url, err := resolveURL()
			if err != nil {
				return err
			}
			if err := postgres.MigrateDown(url, steps); err != nil {
				return err
			}
			return printVersion(cmd, url)
		},
	}
	down.Flags().IntVar(&steps, "steps", 1, "number of migrations to roll back")

	version := &cobra.Command{
		Use:   "version",
		Short: "Print the current schema version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			url, err := resolveURL()
			if err != nil {
				return err
			}
			return printVersion(cmd, url)
		},
	}

	cmd.AddCommand(up, down, version)
	return cmd
}

func printVersion(cmd *cobra.Command, url string) error {
	v, dirty, err := postgres.MigrationVersion(url)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if dirty {
		fmt.Fprintf(out, "schema version %d (dirty)\n", v)
		return nil
	}
	fmt.Fprintf(out, "schema version %d\n", v)
	return nil
}
