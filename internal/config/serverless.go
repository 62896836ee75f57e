package config

import (
	"os"
	"sync"
)

// Runtime describes the Lambda environment the process was started in
type Runtime struct {
	Lambda       bool
	FunctionName string
	Region       string
}

var (
	detected   Runtime
	detectOnce sync.Once
)

// DetectRuntime reads the Lambda environment variables once per process
func DetectRuntime() Runtime {
	detectOnce.Do(func() {
		name := os.Getenv("AWS_LAMBDA_FUNCTION_NAME")
		detected = Runtime{
			Lambda:       name != "",
			FunctionName: name,
			Region:       os.Getenv("AWS_REGION"),
		}
	})
	return detected
}

// IsServerlessMode returns true inside AWS Lambda
func IsServerlessMode() bool {
	return DetectRuntime().Lambda
}

// GetDeploymentMode returns "serverless" inside Lambda and "server" otherwise
func GetDeploymentMode() string {
	if IsServerlessMode() {
		return "serverless"
	}
	return "server"
}

// AdaptConfigForServerless moves the user store to DynamoDB and logs to JSON
// when serverless is true. Lambda has no durable local disk for sqlite.
func AdaptConfigForServerless(cfg *Config, serverless bool) *Config {
	if !serverless {
		return cfg
	}
	cfg.Store.Driver = StoreDriverDynamoDB
	cfg.Log.Format = "json"
	if cfg.Store.Region == "" {
		cfg.Store.Region = DetectRuntime().Region
	}
	return cfg
}

// GetOptimizedConfig loads configuration and adapts it to the runtime
func GetOptimizedConfig() (*Config, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}

	cfg = AdaptConfigForServerless(cfg, IsServerlessMode())
	if err := cfg.Store.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
