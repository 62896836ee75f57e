package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awslambda "github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/spf13/cobra"

	"fitness-api/internal/config"
	"fitness-api/internal/handlers"
	"fitness-api/pkg/lambda"
	"fitness-api/pkg/server"
)

var (
	httpMethod   string
	data         string
	headers      []string
	queryParams  []string
	subject      string
	functionName string
	region       string
	include      bool
)

var rootCmd *cobra.Command

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd = &cobra.Command{
		Use:   "invoke <handler> [path]",
		Short: "Send an API Gateway event to a handler",
		Long: `invoke builds the API Gateway proxy event a deployed function would receive
and runs it through the named handler in process, or through a deployed
function when --function is given.`,
		Args:         cobra.RangeArgs(1, 2),
		ValidArgs:    handlers.Names(),
		RunE:         runInvoke,
		SilenceUsage: true,
	}

	rootCmd.Flags().StringVarP(&httpMethod, "request", "X", "GET", "HTTP method")
	rootCmd.Flags().StringVarP(&data, "data", "d", "", "Request body")
	rootCmd.Flags().StringSliceVarP(&headers, "header", "H", []string{}, "Header as 'Name: value' (can be used multiple times)")
	rootCmd.Flags().StringSliceVarP(&queryParams, "param", "p", []string{}, "Query parameter as key=value (can be used multiple times)")
	rootCmd.Flags().StringVar(&subject, "sub", "", "User id placed in the authorizer's sub claim")
	rootCmd.Flags().StringVar(&functionName, "function", "", "Deployed function name or ARN; runs in process when empty")
	rootCmd.Flags().StringVar(&region, "region", "", "AWS region for --function")
	rootCmd.Flags().BoolVarP(&include, "include", "i", false, "Print the status code and headers")
}

func runInvoke(cmd *cobra.Command, args []string) error {
	name := args[0]
	path := "/" + name
	if len(args) == 2 {
		path = "/" + name + "/" + strings.TrimPrefix(args[1], "/")
	}

	if data != "" && !cmd.Flags().Changed("request") {
		httpMethod = "POST"
	}

	headerMap, err := parsePairs(headers, ":")
	if err != nil {
		return err
	}
	queryMap, err := parsePairs(queryParams, "=")
	if err != nil {
		return err
	}

	event := lambda.BuildEvent(lambda.EventOptions{
		Method:  httpMethod,
		Path:    path,
		Body:    data,
		Headers: headerMap,
		Query:   queryMap,
		Subject: subject,
	})

	ctx := cmd.Context()
	var resp *events.APIGatewayProxyResponse
	if functionName != "" {
		resp, err = invokeRemote(ctx, event)
	} else {
		resp, err = invokeLocal(ctx, name, event)
	}
	if err != nil {
		return err
	}

	return printResponse(cmd, resp)
}

func invokeLocal(ctx context.Context, name string, event events.APIGatewayProxyRequest) (*events.APIGatewayProxyResponse, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	container, err := server.NewContainer(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize container: %w", err)
	}
	defer container.Close()

	adapter, err := handlers.NewAdapter(name, container)
	if err != nil {
		return nil, err
	}

	resp, err := adapter.Handle(ctx, event)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func invokeRemote(ctx context.Context, event events.APIGatewayProxyRequest) (*events.APIGatewayProxyResponse, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	invoker := lambda.NewInvoker(awslambda.NewFromConfig(awsCfg))
	return invoker.Invoke(ctx, functionName, event)
}

func printResponse(cmd *cobra.Command, resp *events.APIGatewayProxyResponse) error {
	out := cmd.OutOrStdout()
	if include {
		fmt.Fprintf(out, "Status: %d\n", resp.StatusCode)
		for k, v := range resp.Headers {
			fmt.Fprintf(out, "%s: %s\n", k, v)
		}
		fmt.Fprintln(out)
	}

	var pretty interface{}
	if err := json.Unmarshal([]byte(resp.Body), &pretty); err != nil {
		fmt.Fprintln(out, resp.Body)
		return nil
	}
	encoded, err := json.MarshalIndent(pretty, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(out, string(encoded))
	return nil
}

func parsePairs(values []string, sep string) (map[string]string, error) {
	out := make(map[string]string, len(values))
	for _, value := range values {
		key, val, ok := strings.Cut(value, sep)
		if !ok {
			return nil, fmt.Errorf("invalid value %q, expected key%svalue", value, sep)
		}
		out[strings.TrimSpace(key)] = strings.TrimSpace(val)
	}
	return out, nil
}
