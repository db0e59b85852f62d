package cmd

import (
	"errors"
	"strconv"

	"github.com/spf13/cobra"

	"rocketboost-admin/config"
	"rocketboost-admin/db"
)

// migrateCmd groups the schema migration commands
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply or roll back database migrations",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dsn, err := migrationDSN()
		if err != nil {
			return err
		}
		return db.MigrateUp(cmd.Context(), dsn)
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down [steps]",
	Short: "Roll back the last migration, or the last N",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		steps := 1
		if len(args) == 1 {
			n, err := strconv.Atoi(args[0])
			if err != nil || n < 1 {
				return errors.New("steps must be a positive number")
			}
			steps = n
		}
		dsn, err := migrationDSN()
		if err != nil {
			return err
		}
		return db.MigrateDown(cmd.Context(), dsn, steps)
	},
}

func init() {
	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateDownCmd)
}

func migrationDSN() (string, error) {
	cfg, err := config.Load()
	if err != nil {
		return "", err
	}
	if cfg.DatabaseURL == "" {
		return "", errors.New("DATABASE_URL (or DB_HOST, DB_USER, DB_NAME) is not set")
	}
	return cfg.DatabaseURL, nil
}
