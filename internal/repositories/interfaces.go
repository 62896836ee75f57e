package repositories

import (
	"context"

	"fitness-api/internal/models"
)

// UserRepository persists the subscription state of users. Updates behave
// as upserts: recording state for an unknown user creates its record.
type UserRepository interface {
	// GetByID retrieves a user's subscription record
	GetByID(ctx context.Context, userID string) (*models.UserAccount, error)

	// RecordSubscription stores a newly created subscription on the user
	RecordSubscription(ctx context.Context, userID string, update models.SubscriptionUpdate) error

	// UpdatePaymentStatus stores the outcome of a payment event on the user
	UpdatePaymentStatus(ctx context.Context, userID string, update models.PaymentStatusUpdate) error

	// HealthCheck reports whether the backing store is reachable
	HealthCheck(ctx context.Context) error
}
