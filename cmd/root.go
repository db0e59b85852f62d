// Package cmd provides the rocketboost command line.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"rocketboost-admin/config"
	"rocketboost-admin/logging"
)

var (
	ratesPath string
	verbose   bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "rocketboost",
	Short: "Rocket Boost admin API and price calculator",
	Long: `rocketboost runs the Rocket Boost admin API and exposes the price
calculator on the command line.

Examples:
  rocketboost serve
  rocketboost migrate up
  rocketboost quote ig:followers:1000 ig:likes:2000
  rocketboost refill-floor 1200 500`,
	SilenceUsage: true,
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&ratesPath, "rates", "", "pricing YAML (default: RATES_CONFIG_PATH or built-in rates)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(quoteCmd)
	rootCmd.AddCommand(refillFloorCmd)
	rootCmd.AddCommand(ratesCmd)
	rootCmd.AddCommand(hashPasswordCmd)
}

func initConfig() {
	config.LoadDotEnv()

	cfg := logging.Config{
		Level:  os.Getenv("LOG_LEVEL"),
		Format: os.Getenv("LOG_FORMAT"),
	}
	if cfg.Level == "" {
		cfg.Level = "info"
	}
	if verbose {
		cfg.Level = "debug"
	}
	if err := logging.Initialize(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}

	if ratesPath == "" {
		ratesPath = os.Getenv("RATES_CONFIG_PATH")
	}
}
