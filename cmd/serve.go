package cmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"rocketboost-admin/app"
	"rocketboost-admin/config"
	"rocketboost-admin/db"
	"rocketboost-admin/logging"
)

const shutdownTimeout = 15 * time.Second

var migrateOnStart bool

// serveCmd starts the HTTP API
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the admin API server",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&migrateOnStart, "migrate", false, "apply pending migrations before serving")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		return err
	}
	defer logging.Sync()

	if cfg.DatabaseURL == "" {
		return errors.New("DATABASE_URL (or DB_HOST, DB_USER, DB_NAME) is not set")
	}
	if ratesPath != "" {
		cfg.RatesConfigPath = ratesPath
	}

	if migrateOnStart {
		if err := db.MigrateUp(ctx, cfg.DatabaseURL); err != nil {
			return err
		}
	}

	database, err := db.InitDB(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.CloseDB()

	application, err := app.Initialize(ctx, cfg, database)
	if err != nil {
		return err
	}
	defer application.Close()

	// Listen on 0.0.0.0 to accept connections from all interfaces (required for Docker/Render)
	srv := &http.Server{
		Addr:              net.JoinHostPort("0.0.0.0", cfg.Port),
		Handler:           application.Handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		// quote documents are rendered by headless Chrome
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Sugar.Infof("🚀 Server starting on %s (env=%s, auth=%t)", srv.Addr, cfg.Env, cfg.AuthEnabled())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logging.Sugar.Info("🛑 Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	logging.Sugar.Info("✅ Server stopped")
	return nil
}
