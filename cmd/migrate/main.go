package main

import (
	"context"
	"flag"
	"fmt"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"fitness-api/internal/config"
	"fitness-api/internal/database"
)

func main() {
	var (
		dbPath  = flag.String("db", config.GetEnv("SQLITE_PATH", "./data/fitness.db"), "Database file path")
		action  = flag.String("action", "up", "Migration action: up, down, status, validate")
		verbose = flag.Bool("verbose", false, "Enable verbose logging")
	)
	flag.Parse()

	logger := logrus.New()
	if *verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	absDBPath, err := filepath.Abs(*dbPath)
	if err != nil {
		logger.WithError(err).Fatal("Failed to get absolute database path")
	}

	logger.WithFields(logrus.Fields{
		"db_path": absDBPath,
		"action":  *action,
	}).Info("Starting migration tool")

	store := config.StoreConfig{Driver: config.StoreDriverSQLite, SQLitePath: absDBPath}
	if err := store.EnsureDirectories(); err != nil {
		logger.WithError(err).Fatal("Failed to prepare database directory")
	}

	manager := database.NewMigrationManager(absDBPath, logger)

	switch *action {
	case "up":
		if err := manager.RunMigrations(); err != nil {
			logger.WithError(err).Fatal("Migration up failed")
		}
	case "down":
		if err := manager.RollbackMigration(); err != nil {
			logger.WithError(err).Fatal("Migration down failed")
		}
	case "status":
		if err := showMigrationStatus(manager); err != nil {
			logger.WithError(err).Fatal("Failed to get migration status")
		}
	case "validate":
		if err := validateSchema(absDBPath, logger); err != nil {
			logger.WithError(err).Fatal("Schema validation failed")
		}
	default:
		logger.WithField("action", *action).Fatal("Unknown action. Use: up, down, status, validate")
	}

	logger.Info("Migration tool completed successfully")
}

func showMigrationStatus(manager *database.MigrationManager) error {
	status, err := manager.GetMigrationStatus()
	if err != nil {
		return fmt.Errorf("failed to get migration status: %w", err)
	}

	fmt.Printf("Migration Status:\n")
	fmt.Printf("  Version: %d\n", status.Version)
	fmt.Printf("  Applied: %t\n", status.Applied)
	fmt.Printf("  Dirty: %t\n", status.Dirty)
	return nil
}

func validateSchema(dbPath string, logger *logrus.Logger) error {
	cfg := database.DefaultConnectionConfig()
	cfg.DatabasePath = dbPath
	cfg.AutoMigrate = false
	cfg.Logger = logger

	db, err := database.Open(context.Background(), cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := database.ValidateSchema(db); err != nil {
		return err
	}

	fmt.Println("Schema validation passed successfully")
	return nil
}
