package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Store drivers
const (
	StoreDriverDynamoDB = "dynamodb"
	StoreDriverSQLite   = "sqlite"
	StoreDriverMemory   = "memory"
)

// StoreConfig holds user data store configuration
type StoreConfig struct {
	Driver     string
	Region     string
	UsersTable string
	Endpoint   string // optional DynamoDB endpoint override, e.g. DynamoDB Local
	SQLitePath string
}

// Validate checks the store configuration
func (c *StoreConfig) Validate() error {
	switch c.Driver {
	case StoreDriverDynamoDB:
		if c.UsersTable == "" {
			return fmt.Errorf("users table name is required for the dynamodb store")
		}
		if c.Region == "" {
			return fmt.Errorf("region is required for the dynamodb store")
		}
	case StoreDriverSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("sqlite path is required for the sqlite store")
		}
	case StoreDriverMemory:
	default:
		return fmt.Errorf("unsupported store driver %q", c.Driver)
	}
	return nil
}

// EnsureDirectories creates the directory holding the sqlite file
func (c *StoreConfig) EnsureDirectories() error {
	if c.Driver != StoreDriverSQLite || c.SQLitePath == ":memory:" {
		return nil
	}
	dir := filepath.Dir(c.SQLitePath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create database directory %s: %w", dir, err)
	}
	return nil
}
