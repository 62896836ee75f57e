package handlers

import (
	"fmt"
	"sort"

	"fitness-api/pkg/lambda"
	"fitness-api/pkg/server"
)

// Handler names. Each one is a Lambda function and a local server prefix.
const (
	NameAI       = "ai"
	NamePayments = "payments"
	NameInsights = "insights"
	NameSales    = "sales"
)

// Names returns every handler name in sorted order
func Names() []string {
	names := []string{NameAI, NamePayments, NameInsights, NameSales}
	sort.Strings(names)
	return names
}

// NewAdapter builds the named handler's adapter from the container's services
func NewAdapter(name string, container *server.Container) (*lambda.Adapter, error) {
	if container == nil {
		return nil, fmt.Errorf("container cannot be nil")
	}

	switch name {
	case NameAI:
		return NewAIHandler(container.ChatService, container.Logger).Adapter(), nil
	case NamePayments:
		return NewPaymentsHandler(container.PaymentService, container.Logger).Adapter(), nil
	case NameInsights:
		return NewInsightsHandler(container.InsightsService, container.Logger).Adapter(), nil
	case NameSales:
		return NewSalesHandler(container.SalesService, container.Logger).Adapter(), nil
	default:
		return nil, fmt.Errorf("unknown handler %q", name)
	}
}

// NewAdapters builds every handler's adapter keyed by name
func NewAdapters(container *server.Container) (map[string]*lambda.Adapter, error) {
	adapters := make(map[string]*lambda.Adapter, 4)
	for _, name := range Names() {
		adapter, err := NewAdapter(name, container)
		if err != nil {
			return nil, err
		}
		adapters[name] = adapter
	}
	return adapters, nil
}
