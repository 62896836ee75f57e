package handlers

import (
	"context"
	"net/http"

	"github.com/sirupsen/logrus"

	"fitness-api/internal/models"
	"fitness-api/internal/services"
	"fitness-api/pkg/lambda"
)

// AIHandler forwards chat messages to an AI provider
type AIHandler struct {
	chatService services.ChatService
	logger      *logrus.Logger
}

// NewAIHandler creates a new AI handler
func NewAIHandler(chatService services.ChatService, logger *logrus.Logger) *AIHandler {
	return &AIHandler{chatService: chatService, logger: logger}
}

// Routes returns the AI route table. Every POST is a chat request.
func (h *AIHandler) Routes() []lambda.Route {
	return []lambda.Route{
		{Method: http.MethodPost, Handler: h.HandleChat},
	}
}

// Adapter builds the Lambda adapter for this handler
func (h *AIHandler) Adapter() *lambda.Adapter {
	return lambda.NewAdapter(NameAI, h.logger,
		lambda.WithErrorPrefix("failed to process AI request"),
		lambda.WithRoutes(h.Routes()...),
	)
}

// @Summary Chat with an AI provider
// @Tags ai
// @Accept json
// @Produce json
// @Param request body models.ChatRequest true "Message and optional provider"
// @Success 200 {object} models.ChatResponse
// @Failure 400 {object} lambda.Envelope
// @Failure 500 {object} lambda.Envelope
// @Router /ai [post]
func (h *AIHandler) HandleChat(ctx context.Context, req *lambda.Request) (*lambda.Result, error) {
	var body models.ChatRequest
	if err := req.Bind(&body); err != nil {
		return nil, err
	}

	resp, err := h.chatService.Chat(ctx, req.UserID, &body)
	if err != nil {
		return nil, translateError(err)
	}
	return lambda.OK(resp), nil
}
