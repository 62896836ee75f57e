package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"fitness-api/internal/models"
	"fitness-api/internal/repositories"

	"github.com/sirupsen/logrus"
)

// UserRepository implements repositories.UserRepository for SQLite
type UserRepository struct {
	*BaseRepository
}

// NewUserRepository creates a new SQLite user repository
func NewUserRepository(db *sql.DB, logger *logrus.Logger) *UserRepository {
	return &UserRepository{
		BaseRepository: NewBaseRepository(db, "users", logger),
	}
}

// GetByID retrieves a user's subscription record
func (r *UserRepository) GetByID(ctx context.Context, userID string) (*models.UserAccount, error) {
	if err := repositories.CheckUserID("get_by_id", userID); err != nil {
		return nil, err
	}

	query := `
		SELECT user_id, subscription_id, subscription_status, plan,
			   last_payment_date, updated_at
		FROM users
		WHERE user_id = ?`

	row := r.queryRow(ctx, "get_by_id", userID, query, userID)

	user := &models.UserAccount{}
	err := row.Scan(
		&user.UserID,
		&user.SubscriptionID,
		&user.SubscriptionStatus,
		&user.Plan,
		&user.LastPaymentDate,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repositories.NotFoundError("user", userID)
		}
		return nil, repositories.NewRepositoryError("get_by_id", "user", userID, err)
	}

	return user, nil
}

// RecordSubscription stores a newly created subscription on the user
func (r *UserRepository) RecordSubscription(ctx context.Context, userID string, update models.SubscriptionUpdate) error {
	if err := repositories.CheckUserID("record_subscription", userID); err != nil {
		return err
	}

	query := `
		INSERT INTO users (user_id, subscription_id, subscription_status, plan, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			subscription_id = excluded.subscription_id,
			subscription_status = excluded.subscription_status,
			plan = excluded.plan,
			updated_at = excluded.updated_at`

	_, err := r.exec(ctx, "record_subscription", userID, query,
		userID,
		update.SubscriptionID,
		update.Status,
		update.Plan,
		models.FormatTimestamp(update.UpdatedAt),
	)
	return err
}

// UpdatePaymentStatus stores the outcome of a payment event on the user
func (r *UserRepository) UpdatePaymentStatus(ctx context.Context, userID string, update models.PaymentStatusUpdate) error {
	if err := repositories.CheckUserID("update_payment_status", userID); err != nil {
		return err
	}

	query := `
		INSERT INTO users (user_id, subscription_status, last_payment_date, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			subscription_status = excluded.subscription_status,
			last_payment_date = CASE WHEN excluded.last_payment_date = '' THEN users.last_payment_date ELSE excluded.last_payment_date END,
			updated_at = excluded.updated_at`

	_, err := r.exec(ctx, "update_payment_status", userID, query,
		userID,
		string(update.Status),
		update.LastPaymentDate,
		models.FormatTimestamp(update.UpdatedAt),
	)
	return err
}
