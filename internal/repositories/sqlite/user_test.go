package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"fitness-api/internal/database"
	"fitness-api/internal/models"
	"fitness-api/internal/repositories"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)

	cfg := database.DefaultConnectionConfig()
	cfg.DatabasePath = filepath.Join(t.TempDir(), "test.db")
	cfg.Logger = logger

	db, err := database.Open(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func newTestRepo(t *testing.T) *UserRepository {
	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)
	return NewUserRepository(setupTestDB(t), logger)
}

func TestUserRepository_RecordSubscription(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	now := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)

	err := repo.RecordSubscription(ctx, "user-1", models.SubscriptionUpdate{
		SubscriptionID: "sub_123",
		Status:         "ACTIVE",
		Plan:           models.PlanPremium,
		UpdatedAt:      now,
	})
	require.NoError(t, err)

	user, err := repo.GetByID(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "sub_123", user.SubscriptionID)
	assert.Equal(t, "ACTIVE", user.SubscriptionStatus)
	assert.Equal(t, models.PlanPremium, user.Plan)
	assert.Equal(t, models.FormatTimestamp(now), user.UpdatedAt)
}

func TestUserRepository_UpdatePaymentStatus(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	t.Run("ReceivedThenOverdueKeepsPaymentDate", func(t *testing.T) {
		require.NoError(t, repo.UpdatePaymentStatus(ctx, "user-2", models.PaymentStatusUpdate{
			Status:          models.SubscriptionActive,
			LastPaymentDate: "2026-10-01",
			UpdatedAt:       time.Now(),
		}))
		require.NoError(t, repo.UpdatePaymentStatus(ctx, "user-2", models.PaymentStatusUpdate{
			Status:    models.SubscriptionOverdue,
			UpdatedAt: time.Now(),
		}))

		user, err := repo.GetByID(ctx, "user-2")
		require.NoError(t, err)
		assert.Equal(t, string(models.SubscriptionOverdue), user.SubscriptionStatus)
		assert.Equal(t, "2026-10-01", user.LastPaymentDate)
	})

	t.Run("PreservesSubscription", func(t *testing.T) {
		require.NoError(t, repo.RecordSubscription(ctx, "user-3", models.SubscriptionUpdate{
			SubscriptionID: "sub_9", Status: "PENDING", Plan: models.PlanPremium, UpdatedAt: time.Now(),
		}))
		require.NoError(t, repo.UpdatePaymentStatus(ctx, "user-3", models.PaymentStatusUpdate{
			Status: models.SubscriptionActive, UpdatedAt: time.Now(),
		}))

		user, err := repo.GetByID(ctx, "user-3")
		require.NoError(t, err)
		assert.Equal(t, "sub_9", user.SubscriptionID)
		assert.Equal(t, string(models.SubscriptionActive), user.SubscriptionStatus)
	})
}

func TestUserRepository_GetByID(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.GetByID(ctx, "missing")
	assert.True(t, repositories.IsNotFound(err), "expected not found, got %v", err)

	_, err = repo.GetByID(ctx, "")
	assert.ErrorIs(t, err, repositories.ErrInvalidID)
}

func TestUserRepository_HealthCheck(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db, nil)
	require.NoError(t, repo.HealthCheck(context.Background()))

	require.NoError(t, db.Close())
	err := repo.HealthCheck(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "users: health_check")
}
