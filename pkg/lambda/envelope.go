package lambda

import (
	"encoding/json"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
)

// DefaultHeaders returns the headers attached to every envelope
func DefaultHeaders() map[string]string {
	return map[string]string{
		"Content-Type":                 "application/json",
		"Access-Control-Allow-Origin":  "*",
		"Access-Control-Allow-Headers": "Content-Type,Authorization,asaas-access-token",
		"Access-Control-Allow-Methods": "GET,POST,PUT,DELETE,OPTIONS",
	}
}

// Success builds a success envelope. A nil payload is sent as an empty object.
func Success(status int, data interface{}) *Response {
	if status < 200 || status > 299 {
		status = http.StatusOK
	}
	if data == nil {
		data = map[string]interface{}{}
	}
	return newResponse(status, Envelope{Success: true, Data: data})
}

// Failure builds an error envelope. Non-error statuses are promoted to 500 so
// the success flag always agrees with the status code.
func Failure(status int, message string) *Response {
	if status < 400 {
		status = http.StatusInternalServerError
	}
	return newResponse(status, Envelope{Success: false, Error: message})
}

func newResponse(status int, envelope Envelope) *Response {
	body, err := json.Marshal(envelope)
	if err != nil {
		status = http.StatusInternalServerError
		body, _ = json.Marshal(Envelope{Success: false, Error: "failed to encode response: " + err.Error()})
	}
	return &Response{
		StatusCode: status,
		Headers:    DefaultHeaders(),
		Body:       body,
	}
}

// ToProxyResponse converts a Response into the API Gateway proxy shape
func (r *Response) ToProxyResponse() events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode: r.StatusCode,
		Headers:    r.Headers,
		Body:       string(r.Body),
	}
}

// Envelope decodes the response body
func (r *Response) Envelope() (*Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(r.Body, &env); err != nil {
		return nil, err
	}
	return &env, nil
}
