package handlers

// @title Fitness API
// @version 1.0
// @description Serverless handlers for AI chat, insights, Asaas subscriptions and sales, served locally through gin.

// @host localhost:4000
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and a token from /dev/token.

// @securityDefinitions.apikey WebhookToken
// @in header
// @name asaas-access-token

// @tag.name ai
// @tag.description AI chat proxy

// @tag.name payments
// @tag.description Asaas subscriptions and webhooks

// @tag.name insights
// @tag.description User progress insights

// @tag.name sales
// @tag.description Sales endpoint
