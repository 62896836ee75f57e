package services

import (
	"errors"
	"fmt"
)

// ErrProviderNotConfigured is returned when the chosen AI provider has no credentials
var ErrProviderNotConfigured = errors.New("provider not configured")

// ProviderError reports a failed call to an upstream API
type ProviderError struct {
	Provider   string
	StatusCode int
	Body       string
	Err        error
}

func (e *ProviderError) Error() string {
	switch {
	case e.Body != "":
		return fmt.Sprintf("%s API error: %s", e.Provider, e.Body)
	case e.Err != nil:
		return fmt.Sprintf("%s API error: %v", e.Provider, e.Err)
	default:
		return fmt.Sprintf("%s API error: status %d", e.Provider, e.StatusCode)
	}
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
