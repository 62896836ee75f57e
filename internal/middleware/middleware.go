package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"fitness-api/pkg/lambda"
)

// CORS sets the same headers the Lambda envelopes carry and answers
// preflight requests with an empty success envelope
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		for k, v := range lambda.DefaultHeaders() {
			if k == "Content-Type" {
				continue
			}
			c.Header(k, v)
		}

		if c.Request.Method == http.MethodOptions {
			writeResponse(c, lambda.Success(http.StatusOK, nil))
			c.Abort()
			return
		}

		c.Next()
	}
}

// Recovery converts a panic outside the handlers into a 500 envelope
func Recovery(logger *logrus.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.WithFields(logrus.Fields{
					"panic":      fmt.Sprint(r),
					"path":       c.Request.URL.Path,
					"request_id": c.GetString(RequestIDKey),
				}).Error("server_panic")
				abortWithFailure(c, http.StatusInternalServerError, fmt.Sprintf("internal server error: %v", r))
			}
		}()
		c.Next()
	}
}
