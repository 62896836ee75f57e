package memory

import (
	"context"
	"sync"

	"fitness-api/internal/models"
	"fitness-api/internal/repositories"
)

// UserRepository keeps user records in process memory. It backs local runs
// and tests that need no external store.
type UserRepository struct {
	mu    sync.RWMutex
	users map[string]models.UserAccount
}

// NewUserRepository creates an empty in-memory user repository
func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]models.UserAccount)}
}

// GetByID retrieves a copy of a user's subscription record
func (r *UserRepository) GetByID(ctx context.Context, userID string) (*models.UserAccount, error) {
	if err := repositories.CheckUserID("get_by_id", userID); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[userID]
	if !ok {
		return nil, repositories.NotFoundError("user", userID)
	}
	return &user, nil
}

// HealthCheck always succeeds
func (r *UserRepository) HealthCheck(ctx context.Context) error {
	return nil
}

// RecordSubscription stores a newly created subscription on the user
func (r *UserRepository) RecordSubscription(ctx context.Context, userID string, update models.SubscriptionUpdate) error {
	if err := repositories.CheckUserID("record_subscription", userID); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	user := r.users[userID]
	user.UserID = userID
	user.SubscriptionID = update.SubscriptionID
	user.SubscriptionStatus = update.Status
	user.Plan = update.Plan
	user.UpdatedAt = models.FormatTimestamp(update.UpdatedAt)
	r.users[userID] = user
	return nil
}

// UpdatePaymentStatus stores the outcome of a payment event on the user
func (r *UserRepository) UpdatePaymentStatus(ctx context.Context, userID string, update models.PaymentStatusUpdate) error {
	if err := repositories.CheckUserID("update_payment_status", userID); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	user := r.users[userID]
	user.UserID = userID
	user.SubscriptionStatus = string(update.Status)
	if update.LastPaymentDate != "" {
		user.LastPaymentDate = update.LastPaymentDate
	}
	user.UpdatedAt = models.FormatTimestamp(update.UpdatedAt)
	r.users[userID] = user
	return nil
}
