package db

import (
	"context"
	"embed"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"

	"rocketboost-admin/logging"
)

//go:embed migrations/*.sql
var migrations embed.FS

// DB holds the database connection
var DB *sqlx.DB

// InitDB opens the connection pool and checks that the database answers
func InitDB(ctx context.Context, dsn string) (*sqlx.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("database connection variables not set. Set DATABASE_URL or DB_HOST, DB_USER, DB_NAME")
	}

	conn, err := sqlx.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	conn.SetMaxOpenConns(10)
	conn.SetMaxIdleConns(5)
	conn.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := conn.PingContext(pingCtx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	DB = conn
	logging.Sugar.Info("✓ Database connection established successfully")
	return conn, nil
}

// CloseDB closes the database connection
func CloseDB() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}

// MigrateUp applies every pending migration
func MigrateUp(ctx context.Context, dsn string) error {
	goose.SetBaseFS(migrations)

	conn, err := goose.OpenDBWithDriver("pgx", dsn)
	if err != nil {
		return fmt.Errorf("open db for migrations: %w", err)
	}
	defer func() { _ = conn.Close() }()

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}
	if err := goose.UpContext(ctx, conn, "migrations"); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	version, err := goose.GetDBVersionContext(ctx, conn)
	if err != nil {
		return fmt.Errorf("get version: %w", err)
	}
	logging.Sugar.Infof("✅ Migrations applied, schema version %d", version)
	return nil
}

// MigrateDown rolls back the last steps migrations
func MigrateDown(ctx context.Context, dsn string, steps int) error {
	goose.SetBaseFS(migrations)

	conn, err := goose.OpenDBWithDriver("pgx", dsn)
	if err != nil {
		return fmt.Errorf("open db for rollback: %w", err)
	}
	defer func() { _ = conn.Close() }()

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}

	for i := 0; i < steps; i++ {
		if err := goose.DownContext(ctx, conn, "migrations"); err != nil {
			return fmt.Errorf("rollback: %w", err)
		}
	}

	logging.Sugar.Infof("✅ Rolled back %d migration(s)", steps)
	return nil
}
