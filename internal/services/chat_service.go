package services

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"fitness-api/internal/models"
)

// chatService implements the ChatService interface
type chatService struct {
	providers       map[string]ChatProvider
	defaultProvider string
	logger          *logrus.Logger
}

// NewChatService creates a chat service over the given providers. Requests
// that name no provider use defaultProvider.
func NewChatService(defaultProvider string, logger *logrus.Logger, providers ...ChatProvider) ChatService {
	if logger == nil {
		logger = logrus.New()
	}
	byName := make(map[string]ChatProvider, len(providers))
	for _, p := range providers {
		if p != nil {
			byName[p.Name()] = p
		}
	}
	return &chatService{
		providers:       byName,
		defaultProvider: defaultProvider,
		logger:          logger,
	}
}

// Chat validates the request and forwards the message to the selected provider
func (s *chatService) Chat(ctx context.Context, userID string, req *models.ChatRequest) (*models.ChatResponse, error) {
	if req == nil {
		req = &models.ChatRequest{}
	}
	if err := models.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	name := req.Provider
	if name == "" {
		name = s.defaultProvider
	}
	provider, ok := s.providers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrProviderNotConfigured, name)
	}

	s.logger.WithFields(logrus.Fields{
		"user_id":        userID,
		"provider":       name,
		"message_length": len(req.Message),
	}).Info("processing_ai_request")

	reply, err := provider.Complete(ctx, req.Message)
	if err != nil {
		return nil, err
	}
	if reply == "" {
		reply = models.FallbackReply
	}

	s.logger.WithFields(logrus.Fields{
		"user_id":         userID,
		"provider":        name,
		"response_length": len(reply),
	}).Info("ai_response_generated")

	return &models.ChatResponse{Message: reply, Provider: name}, nil
}
