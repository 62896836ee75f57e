package models

// ChatRequest is the body accepted by the AI handler
type ChatRequest struct {
	Message  string `json:"message" validate:"required"`
	Provider string `json:"provider" validate:"omitempty,oneof=anthropic openai"`
}

// ChatResponse is the AI handler's reply
type ChatResponse struct {
	Message  string `json:"message"`
	Provider string `json:"provider"`
}

// FallbackReply is used when a provider answers without any text
const FallbackReply = "response unavailable"
