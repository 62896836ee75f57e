package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
)

// ConnectionConfig holds database connection configuration
type ConnectionConfig struct {
	DatabasePath    string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	AutoMigrate     bool
	Logger          *logrus.Logger
}

// DefaultConnectionConfig returns a default configuration
func DefaultConnectionConfig() *ConnectionConfig {
	return &ConnectionConfig{
		DatabasePath:    "./data/fitness.db",
		MaxOpenConns:    1, // SQLite works best with single connection
		MaxIdleConns:    1,
		ConnMaxLifetime: time.Hour,
		AutoMigrate:     true,
		Logger:          logrus.New(),
	}
}

// DSN returns the sqlite3 data source name for path
func DSN(path string) string {
	if path == ":memory:" {
		return "file::memory:?cache=shared&_foreign_keys=on"
	}
	return path + "?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000"
}

// Open opens the sqlite database, applies pending migrations when configured
// and verifies the connection
func Open(ctx context.Context, cfg *ConnectionConfig) (*sql.DB, error) {
	if cfg == nil {
		cfg = DefaultConnectionConfig()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logrus.New()
	}

	dbPath := cfg.DatabasePath
	if dbPath != ":memory:" {
		abs, err := filepath.Abs(dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to get absolute database path: %w", err)
		}
		dbPath = abs
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", DSN(dbPath))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	if dbPath == ":memory:" {
		// the shared-cache database lives only while a connection stays open
		db.SetMaxIdleConns(max(cfg.MaxIdleConns, 1))
		db.SetConnMaxLifetime(0)
	} else {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if cfg.AutoMigrate {
		if err := NewMigrationManager(dbPath, logger).RunMigrations(); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	logger.WithField("db_path", dbPath).Info("Database connection established")
	return db, nil
}

// HealthCheck runs a trivial query against db
func HealthCheck(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return fmt.Errorf("database connection not established")
	}

	var result int
	if err := db.QueryRowContext(ctx, "SELECT 1").Scan(&result); err != nil {
		return fmt.Errorf("test query failed: %w", err)
	}
	if result != 1 {
		return fmt.Errorf("test query returned unexpected result: %d", result)
	}
	return nil
}
