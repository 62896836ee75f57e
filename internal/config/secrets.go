package config

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

// SecretsAPI is the subset of the Secrets Manager client used to resolve secrets
type SecretsAPI interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// ResolveSecrets replaces plain credentials with Secrets Manager values for
// every secret id that is configured. Values already set from the environment
// are overwritten.
func ResolveSecrets(ctx context.Context, cfg *Config, client SecretsAPI) error {
	if cfg == nil || !cfg.Secrets.Any() {
		return nil
	}
	if client == nil {
		return fmt.Errorf("secrets manager client is required when secret ids are configured")
	}

	targets := []struct {
		id  string
		dst *string
	}{
		{cfg.Secrets.AnthropicAPIKeyID, &cfg.AI.AnthropicAPIKey},
		{cfg.Secrets.OpenAIAPIKeyID, &cfg.AI.OpenAIAPIKey},
		{cfg.Secrets.AsaasAPIKeyID, &cfg.Payments.AsaasAPIKey},
		{cfg.Secrets.WebhookTokenID, &cfg.Payments.WebhookToken},
	}

	for _, target := range targets {
		if target.id == "" {
			continue
		}
		value, err := fetchSecret(ctx, client, target.id)
		if err != nil {
			return err
		}
		*target.dst = value
	}
	return nil
}

func fetchSecret(ctx context.Context, client SecretsAPI, id string) (string, error) {
	out, err := client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(id),
	})
	if err != nil {
		return "", fmt.Errorf("failed to read secret %s: %w", id, err)
	}
	if out.SecretString == nil {
		return "", fmt.Errorf("secret %s has no string value", id)
	}
	return parseSecretString(*out.SecretString), nil
}

// parseSecretString accepts either a raw value or a JSON object with a "value" key
func parseSecretString(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if strings.HasPrefix(trimmed, "{") {
		var doc struct {
			Value string `json:"value"`
		}
		if err := json.Unmarshal([]byte(trimmed), &doc); err == nil && doc.Value != "" {
			return doc.Value
		}
	}
	return trimmed
}
