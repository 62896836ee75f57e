package lambda

import (
	"context"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/aws/aws-lambda-go/events"
	"github.com/sirupsen/logrus"
)

// Adapter turns API Gateway events into route calls and route outcomes into
// envelopes. Every call to Serve yields exactly one Response.
type Adapter struct {
	name        string
	errorPrefix string
	routes      []Route
	logger      *logrus.Logger
}

// Option configures an Adapter
type Option func(*Adapter)

// WithErrorPrefix sets the text prepended to internal error messages
func WithErrorPrefix(prefix string) Option {
	return func(a *Adapter) {
		a.errorPrefix = prefix
	}
}

// WithRoutes appends routes in match order
func WithRoutes(routes ...Route) Option {
	return func(a *Adapter) {
		a.routes = append(a.routes, routes...)
	}
}

// NewAdapter creates an adapter; name is used as the log event prefix
func NewAdapter(name string, logger *logrus.Logger, opts ...Option) *Adapter {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	a := &Adapter{
		name:        name,
		errorPrefix: fmt.Sprintf("failed to process %s request", name),
		logger:      logger,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Handle is the aws-lambda-go entry point. The error is always nil; failures
// are reported through the envelope.
func (a *Adapter) Handle(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	return a.Serve(ctx, NewRequest(event)).ToProxyResponse(), nil
}

// Serve dispatches a normalized request
func (a *Adapter) Serve(ctx context.Context, req *Request) *Response {
	entry := a.logger.WithFields(logrus.Fields{
		"method":     req.Method,
		"path":       req.Path,
		"user_id":    req.UserID,
		"request_id": req.RequestID,
	})
	entry.Info(a.name + "_lambda_invoked")

	for _, route := range a.routes {
		captured, ok := route.match(req.Method, req.Path)
		if !ok {
			continue
		}
		matched := req.withPathParams(captured)
		if route.RequireIdentity && matched.UserID == "" {
			return a.fail(entry, Unauthorized(MsgUnauthenticated))
		}

		result, err := a.run(ctx, route.Handler, matched)
		if err != nil {
			return a.fail(entry, err)
		}
		if result == nil {
			return Success(http.StatusOK, nil)
		}
		return Success(result.StatusCode, result.Data)
	}

	if req.Method == http.MethodOptions {
		return Success(http.StatusOK, nil)
	}
	return a.fail(entry, NotFound(MsgRouteNotFound))
}

// run calls the route function and converts a panic into an error so that a
// single bad invocation cannot take the process down.
func (a *Adapter) run(ctx context.Context, fn RouteFunc, req *Request) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.WithFields(logrus.Fields{
				"panic": fmt.Sprint(r),
				"stack": string(debug.Stack()),
			}).Error(a.name + "_lambda_panic")
			result = nil
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn(ctx, req)
}

func (a *Adapter) fail(entry *logrus.Entry, err error) *Response {
	status := StatusFor(err)
	message := messageFor(err, a.errorPrefix)

	fields := logrus.Fields{
		"error":       err.Error(),
		"status_code": status,
	}
	if status >= http.StatusInternalServerError {
		entry.WithFields(fields).Error(a.name + "_lambda_error")
	} else {
		entry.WithFields(fields).Warn(a.name + "_lambda_error")
	}
	return Failure(status, message)
}
