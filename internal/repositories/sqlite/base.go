package sqlite

import (
	"context"
	"database/sql"
	"time"

	"fitness-api/internal/database"
	"fitness-api/internal/repositories"

	"github.com/sirupsen/logrus"
)

// BaseRepository runs statements against one table and logs each of them.
// Arguments are not logged since they carry user data.
type BaseRepository struct {
	db     *sql.DB
	table  string
	logger *logrus.Logger
}

// NewBaseRepository creates a new base repository
func NewBaseRepository(db *sql.DB, table string, logger *logrus.Logger) *BaseRepository {
	if logger == nil {
		logger = logrus.New()
	}
	return &BaseRepository{db: db, table: table, logger: logger}
}

func (r *BaseRepository) logStatement(op, userID string, started time.Time, err error) {
	entry := r.logger.WithFields(logrus.Fields{
		"operation":   op,
		"table":       r.table,
		"user_id":     userID,
		"duration_ms": time.Since(started).Milliseconds(),
	})
	if err != nil {
		entry.WithError(err).Error("sqlite_statement_failed")
		return
	}
	entry.Debug("sqlite_statement_executed")
}

// queryRow runs a single-row query. Scan errors are reported by the caller.
func (r *BaseRepository) queryRow(ctx context.Context, op, userID, query string, args ...interface{}) *sql.Row {
	started := time.Now()
	row := r.db.QueryRowContext(ctx, query, args...)
	r.logStatement(op, userID, started, row.Err())
	return row
}

// exec runs a statement and wraps any failure in a RepositoryError
func (r *BaseRepository) exec(ctx context.Context, op, userID, query string, args ...interface{}) (sql.Result, error) {
	started := time.Now()
	result, err := r.db.ExecContext(ctx, query, args...)
	r.logStatement(op, userID, started, err)
	if err != nil {
		return nil, repositories.NewRepositoryError(op, r.table, userID, err)
	}
	return result, nil
}

// HealthCheck runs a trivial query on the connection pool
func (r *BaseRepository) HealthCheck(ctx context.Context) error {
	started := time.Now()
	err := database.HealthCheck(ctx, r.db)
	r.logStatement("health_check", "", started, err)
	if err != nil {
		return repositories.NewRepositoryError("health_check", r.table, "", err)
	}
	return nil
}
