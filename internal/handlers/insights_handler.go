package handlers

import (
	"context"
	"net/http"

	"github.com/sirupsen/logrus"

	"fitness-api/internal/services"
	"fitness-api/pkg/lambda"
)

// InsightsHandler reports user progress
type InsightsHandler struct {
	insightsService services.InsightsService
	logger          *logrus.Logger
}

// NewInsightsHandler creates a new insights handler
func NewInsightsHandler(insightsService services.InsightsService, logger *logrus.Logger) *InsightsHandler {
	return &InsightsHandler{insightsService: insightsService, logger: logger}
}

// Routes returns the insights route table; both routes need a caller identity
func (h *InsightsHandler) Routes() []lambda.Route {
	return []lambda.Route{
		{Method: http.MethodGet, Pattern: "/progress", Handler: h.HandleProgress, RequireIdentity: true},
		{Method: http.MethodGet, Pattern: "/metrics", Handler: h.HandleMetrics, RequireIdentity: true},
	}
}

// Adapter builds the Lambda adapter for this handler
func (h *InsightsHandler) Adapter() *lambda.Adapter {
	return lambda.NewAdapter(NameInsights, h.logger,
		lambda.WithErrorPrefix("failed to process insights request"),
		lambda.WithRoutes(h.Routes()...),
	)
}

// @Summary Get progress insights
// @Tags insights
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.ProgressInsights
// @Failure 401 {object} lambda.Envelope
// @Router /insights/progress [get]
func (h *InsightsHandler) HandleProgress(ctx context.Context, req *lambda.Request) (*lambda.Result, error) {
	progress, err := h.insightsService.GetProgress(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	return lambda.OK(progress), nil
}

// @Summary Get metrics insights
// @Tags insights
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.MetricsInsights
// @Failure 401 {object} lambda.Envelope
// @Router /insights/metrics [get]
func (h *InsightsHandler) HandleMetrics(ctx context.Context, req *lambda.Request) (*lambda.Result, error) {
	metrics, err := h.insightsService.GetMetrics(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	return lambda.OK(metrics), nil
}
