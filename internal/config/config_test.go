package config

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

var configEnvVars = []string{
	"STORE_DRIVER",
	"SQLITE_PATH",
	"DYNAMODB_USERS_TABLE",
	"AWS_REGION",
	"AI_DEFAULT_PROVIDER",
	"AI_MAX_TOKENS",
	"ASAAS_BASE_URL",
	"ASAAS_WEBHOOK_TOKEN",
	"LOG_FORMAT",
}

func withCleanEnv(t *testing.T) {
	t.Helper()
	original := make(map[string]string)
	for _, key := range configEnvVars {
		original[key] = os.Getenv(key)
		os.Unsetenv(key)
	}
	t.Cleanup(func() {
		for key, value := range original {
			if value != "" {
				os.Setenv(key, value)
			} else {
				os.Unsetenv(key)
			}
		}
	})
}

func TestLoad(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		withCleanEnv(t)

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if cfg.Store.Driver != StoreDriverSQLite {
			t.Errorf("Expected default driver sqlite, got %s", cfg.Store.Driver)
		}
		if cfg.Store.UsersTable != "users-table" {
			t.Errorf("Expected default users table users-table, got %s", cfg.Store.UsersTable)
		}
		if cfg.AI.DefaultProvider != ProviderAnthropic {
			t.Errorf("Expected default provider anthropic, got %s", cfg.AI.DefaultProvider)
		}
		if cfg.AI.MaxTokens != 1024 {
			t.Errorf("Expected max tokens 1024, got %d", cfg.AI.MaxTokens)
		}
		if cfg.Payments.AsaasBaseURL != "https://api.asaas.com/v3" {
			t.Errorf("Expected default Asaas URL, got %s", cfg.Payments.AsaasBaseURL)
		}
	})

	t.Run("EnvironmentOverrides", func(t *testing.T) {
		withCleanEnv(t)
		os.Setenv("STORE_DRIVER", "MEMORY")
		os.Setenv("ASAAS_BASE_URL", "https://sandbox.asaas.com/api/v3/")
		os.Setenv("AI_DEFAULT_PROVIDER", "OpenAI")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if cfg.Store.Driver != StoreDriverMemory {
			t.Errorf("Expected driver memory, got %s", cfg.Store.Driver)
		}
		if cfg.Payments.AsaasBaseURL != "https://sandbox.asaas.com/api/v3" {
			t.Errorf("Expected trailing slash trimmed, got %s", cfg.Payments.AsaasBaseURL)
		}
		if cfg.AI.DefaultProvider != ProviderOpenAI {
			t.Errorf("Expected provider openai, got %s", cfg.AI.DefaultProvider)
		}
	})

	t.Run("UnsupportedDriver", func(t *testing.T) {
		withCleanEnv(t)
		os.Setenv("STORE_DRIVER", "postgres")

		if _, err := Load(); err == nil {
			t.Error("Expected error for unsupported driver")
		}
	})
}

func TestAdaptConfigForServerless(t *testing.T) {
	cfg := &Config{
		Log:   LogConfig{Format: "text"},
		Store: StoreConfig{Driver: StoreDriverSQLite, SQLitePath: "./data/fitness.db", Region: "us-east-1", UsersTable: "users-table"},
	}

	unchanged := AdaptConfigForServerless(cfg, false)
	if unchanged.Store.Driver != StoreDriverSQLite {
		t.Errorf("Expected sqlite outside Lambda, got %s", unchanged.Store.Driver)
	}

	adapted := AdaptConfigForServerless(cfg, true)
	if adapted.Store.Driver != StoreDriverDynamoDB {
		t.Errorf("Expected dynamodb in Lambda, got %s", adapted.Store.Driver)
	}
	if adapted.Log.Format != "json" {
		t.Errorf("Expected json log format in Lambda, got %s", adapted.Log.Format)
	}
}

func TestStoreConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		store   StoreConfig
		wantErr bool
	}{
		{"dynamodb ok", StoreConfig{Driver: StoreDriverDynamoDB, Region: "us-east-1", UsersTable: "users"}, false},
		{"dynamodb without table", StoreConfig{Driver: StoreDriverDynamoDB, Region: "us-east-1"}, true},
		{"sqlite without path", StoreConfig{Driver: StoreDriverSQLite}, true},
		{"memory", StoreConfig{Driver: StoreDriverMemory}, false},
		{"unknown", StoreConfig{Driver: "redis"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.store.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

type fakeSecrets struct {
	values map[string]string
	calls  int
}

func (f *fakeSecrets) GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error) {
	f.calls++
	value, ok := f.values[aws.ToString(params.SecretId)]
	if !ok {
		return nil, errors.New("secret not found")
	}
	return &secretsmanager.GetSecretValueOutput{SecretString: aws.String(value)}, nil
}

func TestResolveSecrets(t *testing.T) {
	t.Run("NoSecretIDs", func(t *testing.T) {
		cfg := &Config{}
		if err := ResolveSecrets(context.Background(), cfg, nil); err != nil {
			t.Errorf("Expected no error, got %v", err)
		}
	})

	t.Run("RawAndJSONValues", func(t *testing.T) {
		client := &fakeSecrets{values: map[string]string{
			"anthropic": "sk-ant-raw",
			"webhook":   `{"value":"hook-token"}`,
		}}
		cfg := &Config{
			AI:      AIConfig{AnthropicAPIKey: "from-env"},
			Secrets: SecretsConfig{AnthropicAPIKeyID: "anthropic", WebhookTokenID: "webhook"},
		}

		if err := ResolveSecrets(context.Background(), cfg, client); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if cfg.AI.AnthropicAPIKey != "sk-ant-raw" {
			t.Errorf("Expected sk-ant-raw, got %s", cfg.AI.AnthropicAPIKey)
		}
		if cfg.Payments.WebhookToken != "hook-token" {
			t.Errorf("Expected hook-token, got %s", cfg.Payments.WebhookToken)
		}
		if client.calls != 2 {
			t.Errorf("Expected 2 calls, got %d", client.calls)
		}
	})

	t.Run("MissingSecret", func(t *testing.T) {
		client := &fakeSecrets{values: map[string]string{}}
		cfg := &Config{Secrets: SecretsConfig{AsaasAPIKeyID: "asaas"}}

		if err := ResolveSecrets(context.Background(), cfg, client); err == nil {
			t.Error("Expected error for missing secret")
		}
	})
}
