package lambda

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aws/aws-lambda-go/events"
)

// Request represents a normalized API Gateway event for serverless functions
type Request struct {
	Method      string                 `json:"method"`
	Path        string                 `json:"path"`
	Headers     map[string]string      `json:"headers"`
	QueryParams map[string]string      `json:"query_params"`
	Body        []byte                 `json:"body"`
	PathParams  map[string]string      `json:"path_params"`
	Authorizer  map[string]interface{} `json:"authorizer,omitempty"`
	RequestID   string                 `json:"request_id,omitempty"`
	UserID      string                 `json:"user_id,omitempty"`
}

// Response represents a generic HTTP response for serverless functions
type Response struct {
	StatusCode int               `json:"status_code"`
	Headers    map[string]string `json:"headers"`
	Body       []byte            `json:"body"`
}

// Envelope is the JSON body shared by every handler response
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Result is what a route function returns on success
type Result struct {
	StatusCode int
	Data       interface{}
}

// OK wraps data in a 200 result
func OK(data interface{}) *Result {
	return &Result{StatusCode: 200, Data: data}
}

// Created wraps data in a 201 result
func Created(data interface{}) *Result {
	return &Result{StatusCode: 201, Data: data}
}

// NewRequest converts an API Gateway proxy event into a Request
func NewRequest(event events.APIGatewayProxyRequest) *Request {
	body := []byte(event.Body)
	if event.IsBase64Encoded {
		if decoded, err := decodeBase64(event.Body); err == nil {
			body = decoded
		}
	}

	req := &Request{
		Method:      strings.ToUpper(event.HTTPMethod),
		Path:        event.Path,
		Headers:     copyStrings(event.Headers),
		QueryParams: copyStrings(event.QueryStringParameters),
		Body:        body,
		PathParams:  copyStrings(event.PathParameters),
		Authorizer:  event.RequestContext.Authorizer,
		RequestID:   event.RequestContext.RequestID,
	}
	req.UserID = ResolveUserID(req.Authorizer, req.PathParams)
	return req
}

// Header returns a header value using a case-insensitive name lookup
func (r *Request) Header(name string) string {
	if v, ok := r.Headers[name]; ok {
		return v
	}
	for k, v := range r.Headers {
		if strings.EqualFold(k, name) {
			return v
		}
	}
	return ""
}

// PathParam returns a path parameter or an empty string
func (r *Request) PathParam(name string) string {
	return r.PathParams[name]
}

// QueryParam returns a query string parameter or an empty string
func (r *Request) QueryParam(name string) string {
	return r.QueryParams[name]
}

// Bind decodes the JSON body into v. A missing, malformed or non-object body
// leaves v untouched, as if the body were an empty object.
func (r *Request) Bind(v interface{}) error {
	if !isJSONObject(r.Body) {
		return nil
	}
	if err := json.Unmarshal(r.Body, v); err != nil {
		return BadRequest(fmt.Sprintf("invalid request body: %v", err))
	}
	return nil
}

// withPathParams returns a shallow copy of r whose path parameters include
// the captured values. Parameters already supplied by the gateway win.
func (r *Request) withPathParams(captured map[string]string) *Request {
	if len(captured) == 0 {
		return r
	}
	clone := *r
	clone.PathParams = make(map[string]string, len(r.PathParams)+len(captured))
	for k, v := range captured {
		clone.PathParams[k] = v
	}
	for k, v := range r.PathParams {
		clone.PathParams[k] = v
	}
	clone.UserID = ResolveUserID(clone.Authorizer, clone.PathParams)
	return &clone
}

func isJSONObject(body []byte) bool {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return false
	}
	return json.Valid(trimmed)
}

func copyStrings(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
