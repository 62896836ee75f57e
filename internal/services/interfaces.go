package services

import (
	"context"

	"fitness-api/internal/models"
)

// ChatService forwards user messages to an AI provider
type ChatService interface {
	Chat(ctx context.Context, userID string, req *models.ChatRequest) (*models.ChatResponse, error)
}

// ChatProvider is a single AI backend
type ChatProvider interface {
	Name() string
	Complete(ctx context.Context, message string) (string, error)
}

// PaymentService manages Asaas subscriptions and the webhook that reports on them
type PaymentService interface {
	CreateSubscription(ctx context.Context, userID string, req *models.CreateSubscriptionRequest) (*models.SubscriptionResult, error)
	GetSubscriptionStatus(ctx context.Context, subscriptionID string) (*models.SubscriptionStatus, error)
	VerifyWebhookToken(token string) bool
	HandleWebhook(ctx context.Context, event *models.WebhookEvent) (*models.WebhookResult, error)
}

// SubscriptionGateway is the payment processor API used by PaymentService
type SubscriptionGateway interface {
	CreateSubscription(ctx context.Context, req *AsaasSubscriptionRequest) (*AsaasSubscription, error)
	GetSubscription(ctx context.Context, subscriptionID string) (*AsaasSubscription, error)
}

// InsightsService reports user progress. Values are placeholders until
// analytics exist.
type InsightsService interface {
	GetProgress(ctx context.Context, userID string) (*models.ProgressInsights, error)
	GetMetrics(ctx context.Context, userID string) (*models.MetricsInsights, error)
}

// SalesService backs the sales endpoint
type SalesService interface {
	Info(ctx context.Context) (*models.SalesInfo, error)
}
