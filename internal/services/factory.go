package services

import (
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"

	"fitness-api/internal/config"
	"fitness-api/internal/repositories"
)

// ServiceContainer holds all service instances
type ServiceContainer struct {
	ChatService     ChatService
	PaymentService  PaymentService
	InsightsService InsightsService
	SalesService    SalesService
}

// ServiceConfig holds configuration for services
type ServiceConfig struct {
	AI         config.AIConfig
	Payments   config.PaymentsConfig
	HTTPClient *http.Client
	Logger     *logrus.Logger

	// Providers overrides the AI providers built from AI, for tests
	Providers []ChatProvider
	// Gateway overrides the Asaas client built from Payments, for tests
	Gateway SubscriptionGateway
}

// NewServiceContainer creates a new service container with all services
func NewServiceContainer(users repositories.UserRepository, cfg *ServiceConfig) (*ServiceContainer, error) {
	if users == nil {
		return nil, fmt.Errorf("user repository cannot be nil")
	}
	if cfg == nil {
		cfg = &ServiceConfig{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logrus.New()
	}

	providers := cfg.Providers
	if providers == nil {
		providers = buildProviders(cfg.AI, logger)
	}
	defaultProvider := cfg.AI.DefaultProvider
	if defaultProvider == "" {
		defaultProvider = config.ProviderAnthropic
	}

	gateway := cfg.Gateway
	if gateway == nil {
		if cfg.Payments.AsaasAPIKey == "" {
			logger.Warn("ASAAS_API_KEY is not set; Asaas calls will be rejected upstream")
		}
		gateway = NewAsaasClient(cfg.Payments, cfg.HTTPClient, logger)
	}
	if cfg.Payments.WebhookToken == "" {
		logger.Warn("ASAAS_WEBHOOK_TOKEN is not set; every webhook will be rejected")
	}

	return &ServiceContainer{
		ChatService:     NewChatService(defaultProvider, logger, providers...),
		PaymentService:  NewPaymentService(gateway, users, cfg.Payments.WebhookToken, logger),
		InsightsService: NewInsightsService(logger),
		SalesService:    NewSalesService(),
	}, nil
}

// buildProviders creates a provider for every AI backend that has an API key
func buildProviders(cfg config.AIConfig, logger *logrus.Logger) []ChatProvider {
	var providers []ChatProvider
	if cfg.AnthropicAPIKey != "" {
		providers = append(providers, NewAnthropicProvider(cfg))
	} else {
		logger.Warn("ANTHROPIC_API_KEY is not set; anthropic provider disabled")
	}
	if cfg.OpenAIAPIKey != "" {
		providers = append(providers, NewOpenAIProvider(cfg))
	} else {
		logger.Warn("OPENAI_API_KEY is not set; openai provider disabled")
	}
	return providers
}

// Validate validates that all services are properly initialized
func (sc *ServiceContainer) Validate() error {
	if sc.ChatService == nil {
		return fmt.Errorf("chat service is nil")
	}
	if sc.PaymentService == nil {
		return fmt.Errorf("payment service is nil")
	}
	if sc.InsightsService == nil {
		return fmt.Errorf("insights service is nil")
	}
	if sc.SalesService == nil {
		return fmt.Errorf("sales service is nil")
	}
	return nil
}
