package lambda

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/aws"
	awslambda "github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/lambda/types"
)

// InvokeAPI is the subset of the Lambda service client used by Invoker
type InvokeAPI interface {
	Invoke(ctx context.Context, params *awslambda.InvokeInput, optFns ...func(*awslambda.Options)) (*awslambda.InvokeOutput, error)
}

// Invoker sends synthetic API Gateway events to deployed functions
type Invoker struct {
	client InvokeAPI
}

// NewInvoker creates an Invoker
func NewInvoker(client InvokeAPI) *Invoker {
	return &Invoker{client: client}
}

// Invoke calls a function synchronously and decodes its proxy response
func (i *Invoker) Invoke(ctx context.Context, functionName string, event events.APIGatewayProxyRequest) (*events.APIGatewayProxyResponse, error) {
	if functionName == "" {
		return nil, fmt.Errorf("function name is required")
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("marshaling Lambda event: %w", err)
	}

	output, err := i.client.Invoke(ctx, &awslambda.InvokeInput{
		FunctionName:   aws.String(functionName),
		InvocationType: types.InvocationTypeRequestResponse,
		Payload:        payload,
	})
	if err != nil {
		return nil, fmt.Errorf("invoking Lambda function: %w", err)
	}

	if output.FunctionError != nil {
		return nil, fmt.Errorf("lambda function error: %s: %s", *output.FunctionError, string(output.Payload))
	}

	var resp events.APIGatewayProxyResponse
	if err := json.Unmarshal(output.Payload, &resp); err != nil {
		return nil, fmt.Errorf("parsing Lambda response: %w", err)
	}
	return &resp, nil
}

// EventOptions describes a synthetic API Gateway event
type EventOptions struct {
	Method     string
	Path       string
	Body       string
	Headers    map[string]string
	Query      map[string]string
	PathParams map[string]string
	Subject    string
}

// BuildEvent assembles an API Gateway proxy event. A non-empty Subject is
// placed where a Cognito authorizer would put the "sub" claim.
func BuildEvent(opts EventOptions) events.APIGatewayProxyRequest {
	method := strings.ToUpper(opts.Method)
	if method == "" {
		method = "GET"
	}

	event := events.APIGatewayProxyRequest{
		Resource:              opts.Path,
		Path:                  opts.Path,
		HTTPMethod:            method,
		Headers:               opts.Headers,
		QueryStringParameters: opts.Query,
		PathParameters:        opts.PathParams,
		Body:                  opts.Body,
		RequestContext: events.APIGatewayProxyRequestContext{
			RequestID:        fmt.Sprintf("invoke-%d", time.Now().UnixNano()),
			Stage:            "local",
			HTTPMethod:       method,
			Path:             opts.Path,
			RequestTimeEpoch: time.Now().UnixMilli(),
		},
	}

	if opts.Subject != "" {
		event.RequestContext.Authorizer = map[string]interface{}{
			"claims": map[string]interface{}{"sub": opts.Subject},
		}
	}
	return event
}
