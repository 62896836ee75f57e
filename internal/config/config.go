package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Provider names accepted by the AI handler
const (
	ProviderAnthropic = "anthropic"
	ProviderOpenAI    = "openai"
)

// Config holds all configuration for the application
type Config struct {
	Environment string
	Port        string
	Stage       string
	Log         LogConfig
	AI          AIConfig
	Payments    PaymentsConfig
	Store       StoreConfig
	Auth        AuthConfig
	Secrets     SecretsConfig
}

// LogConfig holds logger configuration
type LogConfig struct {
	Level  string
	Format string // "json" or "text"
}

// AIConfig holds AI provider configuration
type AIConfig struct {
	DefaultProvider  string
	AnthropicAPIKey  string
	AnthropicBaseURL string
	AnthropicModel   string
	OpenAIAPIKey     string
	OpenAIBaseURL    string
	OpenAIModel      string
	MaxTokens        int
}

// PaymentsConfig holds Asaas configuration
type PaymentsConfig struct {
	AsaasAPIKey  string
	AsaasBaseURL string
	WebhookToken string
	HTTPTimeout  time.Duration
}

// AuthConfig holds the settings of the local development authorizer
type AuthConfig struct {
	JWTSecret   string
	Issuer      string
	ExpiryHours int
}

// SecretsConfig names Secrets Manager entries that override plain values
type SecretsConfig struct {
	AnthropicAPIKeyID string
	OpenAIAPIKeyID    string
	AsaasAPIKeyID     string
	WebhookTokenID    string
}

// Any reports whether at least one secret id is configured
func (s SecretsConfig) Any() bool {
	return s.AnthropicAPIKeyID != "" || s.OpenAIAPIKeyID != "" || s.AsaasAPIKeyID != "" || s.WebhookTokenID != ""
}

// Load loads configuration from environment variables and an optional .env file
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("PORT", "4000")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("STAGE", "dev")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("AI_DEFAULT_PROVIDER", ProviderAnthropic)
	v.SetDefault("ANTHROPIC_MODEL", "claude-3-5-sonnet-20241022")
	v.SetDefault("OPENAI_MODEL", "gpt-4")
	v.SetDefault("AI_MAX_TOKENS", 1024)
	v.SetDefault("ASAAS_BASE_URL", "https://api.asaas.com/v3")
	v.SetDefault("ASAAS_HTTP_TIMEOUT", "30s")
	v.SetDefault("AWS_REGION", "us-east-1")
	v.SetDefault("STORE_DRIVER", StoreDriverSQLite)
	v.SetDefault("DYNAMODB_USERS_TABLE", "users-table")
	v.SetDefault("SQLITE_PATH", "./data/fitness.db")
	v.SetDefault("JWT_ISSUER", "fitness-api")
	v.SetDefault("JWT_EXPIRY_HOURS", 24)

	config := &Config{
		Environment: v.GetString("ENVIRONMENT"),
		Port:        v.GetString("PORT"),
		Stage:       v.GetString("STAGE"),
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: strings.ToLower(v.GetString("LOG_FORMAT")),
		},
		AI: AIConfig{
			DefaultProvider:  strings.ToLower(v.GetString("AI_DEFAULT_PROVIDER")),
			AnthropicAPIKey:  v.GetString("ANTHROPIC_API_KEY"),
			AnthropicBaseURL: v.GetString("ANTHROPIC_BASE_URL"),
			AnthropicModel:   v.GetString("ANTHROPIC_MODEL"),
			OpenAIAPIKey:     v.GetString("OPENAI_API_KEY"),
			OpenAIBaseURL:    v.GetString("OPENAI_BASE_URL"),
			OpenAIModel:      v.GetString("OPENAI_MODEL"),
			MaxTokens:        v.GetInt("AI_MAX_TOKENS"),
		},
		Payments: PaymentsConfig{
			AsaasAPIKey:  v.GetString("ASAAS_API_KEY"),
			AsaasBaseURL: strings.TrimRight(v.GetString("ASAAS_BASE_URL"), "/"),
			WebhookToken: v.GetString("ASAAS_WEBHOOK_TOKEN"),
			HTTPTimeout:  v.GetDuration("ASAAS_HTTP_TIMEOUT"),
		},
		Store: StoreConfig{
			Driver:     strings.ToLower(v.GetString("STORE_DRIVER")),
			Region:     v.GetString("AWS_REGION"),
			UsersTable: v.GetString("DYNAMODB_USERS_TABLE"),
			Endpoint:   v.GetString("DYNAMODB_ENDPOINT"),
			SQLitePath: v.GetString("SQLITE_PATH"),
		},
		Auth: AuthConfig{
			JWTSecret:   v.GetString("JWT_SECRET"),
			Issuer:      v.GetString("JWT_ISSUER"),
			ExpiryHours: v.GetInt("JWT_EXPIRY_HOURS"),
		},
		Secrets: SecretsConfig{
			AnthropicAPIKeyID: v.GetString("ANTHROPIC_API_KEY_SECRET_ID"),
			OpenAIAPIKeyID:    v.GetString("OPENAI_API_KEY_SECRET_ID"),
			AsaasAPIKeyID:     v.GetString("ASAAS_API_KEY_SECRET_ID"),
			WebhookTokenID:    v.GetString("ASAAS_WEBHOOK_TOKEN_SECRET_ID"),
		},
	}

	if err := config.Store.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// IsProduction reports whether the environment is production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// GetEnv gets an environment variable with a fallback value
func GetEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
