package services

import (
	"context"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	openai "github.com/sashabaranov/go-openai"

	"fitness-api/internal/config"
)

// anthropicProvider sends messages through the Anthropic Messages API
type anthropicProvider struct {
	client    anthropic.Client
	model     string
	maxTokens int64
}

// NewAnthropicProvider creates the Anthropic chat provider
func NewAnthropicProvider(cfg config.AIConfig) ChatProvider {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.AnthropicAPIKey),
		option.WithMaxRetries(0),
	}
	if cfg.AnthropicBaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.AnthropicBaseURL))
	}
	return &anthropicProvider{
		client:    anthropic.NewClient(opts...),
		model:     cfg.AnthropicModel,
		maxTokens: int64(cfg.MaxTokens),
	}
}

func (p *anthropicProvider) Name() string { return config.ProviderAnthropic }

// Complete returns the text of the first content block
func (p *anthropicProvider) Complete(ctx context.Context, message string) (string, error) {
	resp, err := p.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(p.model),
		MaxTokens: p.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(message)),
		},
	})
	if err != nil {
		return "", &ProviderError{Provider: config.ProviderAnthropic, Err: err}
	}
	if len(resp.Content) == 0 || resp.Content[0].Type != "text" {
		return "", nil
	}
	return resp.Content[0].Text, nil
}

// openAIProvider sends messages through the OpenAI chat completions API
type openAIProvider struct {
	client    *openai.Client
	model     string
	maxTokens int
}

// NewOpenAIProvider creates the OpenAI chat provider
func NewOpenAIProvider(cfg config.AIConfig) ChatProvider {
	clientConfig := openai.DefaultConfig(cfg.OpenAIAPIKey)
	if cfg.OpenAIBaseURL != "" {
		clientConfig.BaseURL = cfg.OpenAIBaseURL
	}
	return &openAIProvider{
		client:    openai.NewClientWithConfig(clientConfig),
		model:     cfg.OpenAIModel,
		maxTokens: cfg.MaxTokens,
	}
}

func (p *openAIProvider) Name() string { return config.ProviderOpenAI }

// Complete returns the content of the first choice
func (p *openAIProvider) Complete(ctx context.Context, message string) (string, error) {
	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: message},
		},
		MaxTokens: p.maxTokens,
	})
	if err != nil {
		return "", &ProviderError{Provider: config.ProviderOpenAI, Err: err}
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}
