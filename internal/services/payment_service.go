package services

import (
	"context"
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"fitness-api/internal/models"
	"fitness-api/internal/repositories"
)

// paymentService implements the PaymentService interface
type paymentService struct {
	gateway      SubscriptionGateway
	users        repositories.UserRepository
	webhookToken string
	logger       *logrus.Logger
	now          func() time.Time
}

// NewPaymentService creates a new payment service instance
func NewPaymentService(gateway SubscriptionGateway, users repositories.UserRepository, webhookToken string, logger *logrus.Logger) PaymentService {
	if logger == nil {
		logger = logrus.New()
	}
	return &paymentService{
		gateway:      gateway,
		users:        users,
		webhookToken: webhookToken,
		logger:       logger,
		now:          time.Now,
	}
}

// CreateSubscription creates an Asaas subscription referencing userID and
// records it on the user
func (s *paymentService) CreateSubscription(ctx context.Context, userID string, req *models.CreateSubscriptionRequest) (*models.SubscriptionResult, error) {
	if req == nil {
		req = &models.CreateSubscriptionRequest{}
	}
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	sub, err := s.gateway.CreateSubscription(ctx, &AsaasSubscriptionRequest{
		Customer:          req.CustomerID,
		BillingType:       string(req.BillingType),
		Value:             req.Value,
		NextDueDate:       req.NextDueDate,
		Cycle:             string(req.Cycle),
		ExternalReference: userID,
	})
	if err != nil {
		return nil, err
	}

	if userID == "" {
		s.logger.WithField("subscription_id", sub.ID).Warn("subscription_created_without_user")
	} else {
		err := s.users.RecordSubscription(ctx, userID, models.SubscriptionUpdate{
			SubscriptionID: sub.ID,
			Status:         sub.Status,
			Plan:           models.PlanPremium,
			UpdatedAt:      s.now(),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to record subscription: %w", err)
		}
		s.logger.WithFields(logrus.Fields{
			"user_id":         userID,
			"subscription_id": sub.ID,
		}).Info("subscription_created_and_db_updated")
	}

	return &models.SubscriptionResult{SubscriptionID: sub.ID, Status: sub.Status}, nil
}

// GetSubscriptionStatus fetches the current status of a subscription
func (s *paymentService) GetSubscriptionStatus(ctx context.Context, subscriptionID string) (*models.SubscriptionStatus, error) {
	if err := models.ValidateRequired(subscriptionID, "subscriptionId"); err != nil {
		return nil, err
	}

	sub, err := s.gateway.GetSubscription(ctx, subscriptionID)
	if err != nil {
		return nil, err
	}

	return &models.SubscriptionStatus{
		SubscriptionID: sub.ID,
		Status:         sub.Status,
		Value:          sub.Value,
	}, nil
}

// VerifyWebhookToken compares token with the configured secret. An empty
// secret rejects every token.
func (s *paymentService) VerifyWebhookToken(token string) bool {
	if s.webhookToken == "" || token == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(s.webhookToken)) == 1
}

// HandleWebhook applies payment events to the referenced user
func (s *paymentService) HandleWebhook(ctx context.Context, event *models.WebhookEvent) (*models.WebhookResult, error) {
	if event == nil {
		event = &models.WebhookEvent{}
	}
	entry := s.logger.WithField("event_type", event.Event)
	entry.Info("webhook_received")

	userID := event.UserID()
	if userID == "" {
		paymentID := ""
		if event.Payment != nil {
			paymentID = event.Payment.ID
		}
		entry.WithField("payment_id", paymentID).Warn("webhook_missing_user_id")
		return &models.WebhookResult{Processed: false, Reason: models.ReasonMissingExternalReference}, nil
	}

	now := s.now()
	switch event.Event {
	case models.EventPaymentReceived:
		paidAt := event.Payment.PaymentDate
		if paidAt == "" {
			paidAt = models.FormatTimestamp(now)
		}
		err := s.users.UpdatePaymentStatus(ctx, userID, models.PaymentStatusUpdate{
			Status:          models.SubscriptionActive,
			LastPaymentDate: paidAt,
			UpdatedAt:       now,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to record payment: %w", err)
		}
		entry.WithField("user_id", userID).Info("payment_received_processed")

	case models.EventPaymentOverdue:
		err := s.users.UpdatePaymentStatus(ctx, userID, models.PaymentStatusUpdate{
			Status:    models.SubscriptionOverdue,
			UpdatedAt: now,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to record overdue payment: %w", err)
		}
		entry.WithField("user_id", userID).Info("payment_overdue_processed")

	default:
		entry.WithField("user_id", userID).Debug("webhook_event_ignored")
	}

	return &models.WebhookResult{Processed: true}, nil
}
