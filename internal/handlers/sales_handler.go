package handlers

import (
	"context"

	"github.com/sirupsen/logrus"

	"fitness-api/internal/services"
	"fitness-api/pkg/lambda"
)

// SalesHandler answers every request with the sales info
type SalesHandler struct {
	salesService services.SalesService
	logger       *logrus.Logger
}

// NewSalesHandler creates a new sales handler
func NewSalesHandler(salesService services.SalesService, logger *logrus.Logger) *SalesHandler {
	return &SalesHandler{salesService: salesService, logger: logger}
}

// Routes returns the sales route table, a single catch-all route
func (h *SalesHandler) Routes() []lambda.Route {
	return []lambda.Route{
		{Method: lambda.AnyMethod, Handler: h.HandleSales},
	}
}

// Adapter builds the Lambda adapter for this handler
func (h *SalesHandler) Adapter() *lambda.Adapter {
	return lambda.NewAdapter(NameSales, h.logger,
		lambda.WithErrorPrefix("failed to process sales request"),
		lambda.WithRoutes(h.Routes()...),
	)
}

// @Summary Sales endpoint
// @Tags sales
// @Produce json
// @Success 200 {object} models.SalesInfo
// @Router /sales [get]
func (h *SalesHandler) HandleSales(ctx context.Context, req *lambda.Request) (*lambda.Result, error) {
	info, err := h.salesService.Info(ctx)
	if err != nil {
		return nil, err
	}
	return lambda.OK(info), nil
}
