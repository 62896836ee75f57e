package services

import (
	"context"

	"github.com/sirupsen/logrus"

	"fitness-api/internal/models"
)

// insightsService implements the InsightsService interface with placeholder values
type insightsService struct {
	logger *logrus.Logger
}

// NewInsightsService creates a new insights service instance
func NewInsightsService(logger *logrus.Logger) InsightsService {
	if logger == nil {
		logger = logrus.New()
	}
	return &insightsService{logger: logger}
}

func (s *insightsService) GetProgress(ctx context.Context, userID string) (*models.ProgressInsights, error) {
	s.logger.WithField("user_id", userID).Debug("progress_requested")
	return &models.ProgressInsights{}, nil
}

func (s *insightsService) GetMetrics(ctx context.Context, userID string) (*models.MetricsInsights, error) {
	s.logger.WithField("user_id", userID).Debug("metrics_requested")
	return &models.MetricsInsights{}, nil
}

// salesService implements the SalesService interface
type salesService struct{}

// NewSalesService creates a new sales service instance
func NewSalesService() SalesService {
	return &salesService{}
}

func (s *salesService) Info(ctx context.Context) (*models.SalesInfo, error) {
	return &models.SalesInfo{Message: "Sales endpoint"}, nil
}
