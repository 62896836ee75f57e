package handlers

import (
	"context"
	"net/http"

	"github.com/sirupsen/logrus"

	"fitness-api/internal/models"
	"fitness-api/internal/services"
	"fitness-api/pkg/lambda"
)

// WebhookTokenHeader carries the shared secret Asaas sends with every webhook
const WebhookTokenHeader = "asaas-access-token"

// PaymentsHandler handles Asaas subscriptions and payment webhooks
type PaymentsHandler struct {
	paymentService services.PaymentService
	logger         *logrus.Logger
}

// NewPaymentsHandler creates a new payments handler
func NewPaymentsHandler(paymentService services.PaymentService, logger *logrus.Logger) *PaymentsHandler {
	return &PaymentsHandler{paymentService: paymentService, logger: logger}
}

// Routes returns the payments route table
func (h *PaymentsHandler) Routes() []lambda.Route {
	return []lambda.Route{
		{Method: http.MethodPost, Pattern: "/webhook", Handler: h.HandleWebhook},
		{Method: http.MethodPost, Pattern: "/subscription", Handler: h.HandleCreateSubscription},
		{Method: http.MethodPost, Pattern: "/subscriptions", Handler: h.HandleCreateSubscription},
		{Method: http.MethodGet, Pattern: "/status/{subscriptionId}", Handler: h.HandleGetStatus},
		{Method: http.MethodGet, Pattern: "/status", Handler: h.HandleGetStatus},
	}
}

// Adapter builds the Lambda adapter for this handler
func (h *PaymentsHandler) Adapter() *lambda.Adapter {
	return lambda.NewAdapter(NamePayments, h.logger,
		lambda.WithErrorPrefix("failed to process payment request"),
		lambda.WithRoutes(h.Routes()...),
	)
}

// @Summary Receive an Asaas payment webhook
// @Tags payments
// @Accept json
// @Produce json
// @Security WebhookToken
// @Param event body models.WebhookEvent true "Asaas webhook event"
// @Success 200 {object} models.WebhookResult
// @Failure 401 {object} lambda.Envelope
// @Router /payments/webhook [post]
func (h *PaymentsHandler) HandleWebhook(ctx context.Context, req *lambda.Request) (*lambda.Result, error) {
	if !h.paymentService.VerifyWebhookToken(req.Header(WebhookTokenHeader)) {
		return nil, lambda.Unauthorized("invalid webhook token")
	}

	var event models.WebhookEvent
	if err := req.Bind(&event); err != nil {
		return nil, err
	}

	result, err := h.paymentService.HandleWebhook(ctx, &event)
	if err != nil {
		return nil, translateError(err)
	}
	return lambda.OK(result), nil
}

// @Summary Create a subscription
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.CreateSubscriptionRequest true "Subscription data"
// @Success 200 {object} models.SubscriptionResult
// @Failure 400 {object} lambda.Envelope
// @Failure 500 {object} lambda.Envelope
// @Router /payments/subscription [post]
func (h *PaymentsHandler) HandleCreateSubscription(ctx context.Context, req *lambda.Request) (*lambda.Result, error) {
	var body models.CreateSubscriptionRequest
	if err := req.Bind(&body); err != nil {
		return nil, err
	}

	result, err := h.paymentService.CreateSubscription(ctx, req.UserID, &body)
	if err != nil {
		return nil, translateError(err)
	}
	return lambda.OK(result), nil
}

// @Summary Get a subscription's status
// @Tags payments
// @Produce json
// @Param subscriptionId path string true "Asaas subscription id"
// @Success 200 {object} models.SubscriptionStatus
// @Failure 400 {object} lambda.Envelope
// @Failure 500 {object} lambda.Envelope
// @Router /payments/status/{subscriptionId} [get]
func (h *PaymentsHandler) HandleGetStatus(ctx context.Context, req *lambda.Request) (*lambda.Result, error) {
	subscriptionID := req.PathParam("subscriptionId")
	if subscriptionID == "" {
		return nil, lambda.BadRequest("subscriptionId is required")
	}

	status, err := h.paymentService.GetSubscriptionStatus(ctx, subscriptionID)
	if err != nil {
		return nil, translateError(err)
	}
	return lambda.OK(status), nil
}
