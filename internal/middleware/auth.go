package middleware

import (
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"

	"fitness-api/pkg/lambda"
)

// AuthorizerKey is the gin context key holding the API Gateway style authorizer map
const AuthorizerKey = "authorizer"

// Claims represents the JWT claims issued by the local server. The subject
// carries the user id, the same way a Cognito authorizer does.
type Claims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// AuthConfig holds authentication configuration
type AuthConfig struct {
	JWTSecret     string
	TokenDuration time.Duration
	Issuer        string
}

// AuthService issues and validates local development tokens
type AuthService struct {
	config *AuthConfig
	now    func() time.Time
}

// NewAuthService creates a new authentication service
func NewAuthService(config *AuthConfig) *AuthService {
	if config.TokenDuration == 0 {
		config.TokenDuration = 24 * time.Hour
	}
	if config.Issuer == "" {
		config.Issuer = "fitness-api"
	}
	return &AuthService{config: config, now: time.Now}
}

// GenerateToken signs a token whose subject is userID
func (a *AuthService) GenerateToken(userID, email string) (string, error) {
	if userID == "" {
		return "", fmt.Errorf("user id is required")
	}
	now := a.now()
	claims := &Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(a.config.TokenDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    a.config.Issuer,
			Subject:   userID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(a.config.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken validates a JWT token and returns the claims
func (a *AuthService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(a.config.JWTSecret), nil
	}, jwt.WithIssuer(a.config.Issuer))
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, fmt.Errorf("invalid token")
}

// Authorizer plays the role of the API Gateway authorizer for the local
// server. A valid bearer token puts its claims into the context; requests
// without a token pass through anonymously and an invalid token is rejected.
func Authorizer(authService *AuthService, logger *logrus.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		tokenParts := strings.Fields(authHeader)
		if len(tokenParts) != 2 || !strings.EqualFold(tokenParts[0], "Bearer") {
			abortWithFailure(c, 401, "invalid authorization header format, expected: Bearer <token>")
			return
		}

		claims, err := authService.ValidateToken(tokenParts[1])
		if err != nil {
			logger.WithFields(logrus.Fields{
				"error": err.Error(),
				"path":  c.Request.URL.Path,
			}).Warn("token_validation_failed")
			abortWithFailure(c, 401, "invalid or expired token")
			return
		}

		c.Set(AuthorizerKey, map[string]interface{}{
			"claims": map[string]interface{}{
				"sub":   claims.Subject,
				"email": claims.Email,
			},
		})
		c.Set("user_id", claims.Subject)
		c.Next()
	}
}

// AuthorizerFromContext returns the authorizer map set by Authorizer, or nil
func AuthorizerFromContext(c *gin.Context) map[string]interface{} {
	value, ok := c.Get(AuthorizerKey)
	if !ok {
		return nil
	}
	authorizer, _ := value.(map[string]interface{})
	return authorizer
}

// abortWithFailure writes a failure envelope and stops the chain
func abortWithFailure(c *gin.Context, status int, message string) {
	writeResponse(c, lambda.Failure(status, message))
	c.Abort()
}

func writeResponse(c *gin.Context, resp *lambda.Response) {
	for k, v := range resp.Headers {
		c.Header(k, v)
	}
	c.Data(resp.StatusCode, "application/json", resp.Body)
}
