package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"fitness-api/internal/config"
	"fitness-api/internal/middleware"
	"fitness-api/pkg/lambda"
)

// RouterConfig holds everything the local server routes need
type RouterConfig struct {
	Adapters    map[string]*lambda.Adapter
	AuthService *middleware.AuthService
	Config      *config.Config
	Logger      *logrus.Logger

	// HealthCheck checks the backing store for /health; nil skips the check
	HealthCheck func(ctx context.Context) error
}

// SetupRoutes mounts every adapter under its name, plus health and swagger
func SetupRoutes(router *gin.Engine, cfg *RouterConfig) {
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/health", func(c *gin.Context) {
		if cfg.HealthCheck != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
			defer cancel()
			if err := cfg.HealthCheck(ctx); err != nil {
				cfg.Logger.WithError(err).Warn("health_check_failed")
				writeResponse(c, lambda.Failure(http.StatusServiceUnavailable, err.Error()))
				return
			}
		}
		writeResponse(c, lambda.Success(http.StatusOK, gin.H{
			"status":    "healthy",
			"mode":      config.GetDeploymentMode(),
			"stage":     cfg.Config.Stage,
			"handlers":  Names(),
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		}))
	})

	for _, name := range Names() {
		adapter, ok := cfg.Adapters[name]
		if !ok {
			continue
		}
		handler := AdapterHandler(adapter)
		router.Any("/"+name, handler)
		router.Any("/"+name+"/*path", handler)
	}
}

// SetupMiddleware configures the middleware chain for the local server
func SetupMiddleware(router *gin.Engine, cfg *RouterConfig) {
	router.Use(middleware.Recovery(cfg.Logger))
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.RequestSizeLimit(1 << 20))
	router.Use(middleware.RateLimiter(100, 200, cfg.Logger))
	router.Use(middleware.StructuredLogger(cfg.Logger))
	if cfg.AuthService != nil {
		router.Use(middleware.Authorizer(cfg.AuthService, cfg.Logger))
	}
}

// SetupDevelopmentRoutes adds a token endpoint so local callers can act as a user
func SetupDevelopmentRoutes(router *gin.Engine, cfg *RouterConfig) {
	if cfg.AuthService == nil {
		return
	}

	router.POST("/dev/token", func(c *gin.Context) {
		var body struct {
			UserID string `json:"user_id" binding:"required"`
			Email  string `json:"email"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			writeResponse(c, lambda.Failure(http.StatusBadRequest, "user_id is required"))
			return
		}

		token, err := cfg.AuthService.GenerateToken(body.UserID, body.Email)
		if err != nil {
			writeResponse(c, lambda.Failure(http.StatusInternalServerError, err.Error()))
			return
		}
		writeResponse(c, lambda.Success(http.StatusOK, gin.H{
			"token":      token,
			"token_type": "Bearer",
			"user_id":    body.UserID,
		}))
	})
}

// AdapterHandler serves a gin request through a Lambda adapter by turning it
// into the API Gateway event the deployed function would receive
func AdapterHandler(adapter *lambda.Adapter) gin.HandlerFunc {
	return func(c *gin.Context) {
		event, err := EventFromGin(c)
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				writeResponse(c, lambda.Failure(http.StatusRequestEntityTooLarge,
					fmt.Sprintf("request body exceeds maximum allowed size (%d bytes)", tooLarge.Limit)))
				return
			}
			writeResponse(c, lambda.Failure(http.StatusBadRequest, "failed to read request body: "+err.Error()))
			return
		}

		resp, _ := adapter.Handle(c.Request.Context(), event)
		for k, v := range resp.Headers {
			c.Header(k, v)
		}
		c.Data(resp.StatusCode, "application/json", []byte(resp.Body))
	}
}

// EventFromGin converts a gin request into an API Gateway proxy event. The
// authorizer set by the JWT middleware takes the place of Cognito's.
func EventFromGin(c *gin.Context) (events.APIGatewayProxyRequest, error) {
	var body []byte
	if c.Request.Body != nil {
		read, err := io.ReadAll(c.Request.Body)
		if err != nil {
			return events.APIGatewayProxyRequest{}, err
		}
		body = read
	}

	headers := make(map[string]string, len(c.Request.Header))
	for k, v := range c.Request.Header {
		headers[k] = strings.Join(v, ",")
	}

	query := make(map[string]string)
	for k, v := range c.Request.URL.Query() {
		if len(v) > 0 {
			query[k] = v[0]
		}
	}

	event := lambda.BuildEvent(lambda.EventOptions{
		Method:  c.Request.Method,
		Path:    c.Request.URL.Path,
		Body:    string(body),
		Headers: headers,
		Query:   query,
	})
	if requestID := c.GetString(middleware.RequestIDKey); requestID != "" {
		event.RequestContext.RequestID = requestID
	}
	event.RequestContext.Authorizer = middleware.AuthorizerFromContext(c)
	return event, nil
}

func writeResponse(c *gin.Context, resp *lambda.Response) {
	for k, v := range resp.Headers {
		c.Header(k, v)
	}
	c.Data(resp.StatusCode, "application/json", resp.Body)
}
