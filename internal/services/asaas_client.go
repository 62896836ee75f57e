package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"fitness-api/internal/config"
)

const asaasProvider = "Asaas"

// AsaasSubscriptionRequest is the body of POST /subscriptions
type AsaasSubscriptionRequest struct {
	Customer          string  `json:"customer"`
	BillingType       string  `json:"billingType"`
	Value             float64 `json:"value"`
	NextDueDate       string  `json:"nextDueDate"`
	Cycle             string  `json:"cycle"`
	ExternalReference string  `json:"externalReference,omitempty"`
}

// AsaasSubscription is the subset of an Asaas subscription the handlers use
type AsaasSubscription struct {
	ID                string  `json:"id"`
	Status            string  `json:"status"`
	Value             float64 `json:"value"`
	Customer          string  `json:"customer,omitempty"`
	ExternalReference string  `json:"externalReference,omitempty"`
}

// AsaasClient calls the Asaas REST API
type AsaasClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *logrus.Logger
}

// NewAsaasClient creates an Asaas client. A nil httpClient gets one with the
// configured timeout.
func NewAsaasClient(cfg config.PaymentsConfig, httpClient *http.Client, logger *logrus.Logger) *AsaasClient {
	if httpClient == nil {
		timeout := cfg.HTTPTimeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &AsaasClient{
		baseURL:    strings.TrimRight(cfg.AsaasBaseURL, "/"),
		apiKey:     cfg.AsaasAPIKey,
		httpClient: httpClient,
		logger:     logger,
	}
}

// CreateSubscription creates a recurring charge
func (c *AsaasClient) CreateSubscription(ctx context.Context, req *AsaasSubscriptionRequest) (*AsaasSubscription, error) {
	var out AsaasSubscription
	if err := c.do(ctx, http.MethodPost, "/subscriptions", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetSubscription fetches a subscription by id
func (c *AsaasClient) GetSubscription(ctx context.Context, subscriptionID string) (*AsaasSubscription, error) {
	var out AsaasSubscription
	if err := c.do(ctx, http.MethodGet, "/subscriptions/"+url.PathEscape(subscriptionID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *AsaasClient) do(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode Asaas request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to build Asaas request: %w", err)
	}
	req.Header.Set("access_token", c.apiKey)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &ProviderError{Provider: asaasProvider, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &ProviderError{Provider: asaasProvider, StatusCode: resp.StatusCode, Err: err}
	}

	c.logger.WithFields(logrus.Fields{
		"method":      method,
		"path":        path,
		"status_code": resp.StatusCode,
		"latency_ms":  time.Since(start).Milliseconds(),
	}).Debug("asaas_request")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &ProviderError{Provider: asaasProvider, StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return &ProviderError{Provider: asaasProvider, StatusCode: resp.StatusCode, Err: fmt.Errorf("invalid response body: %w", err)}
	}
	return nil
}
