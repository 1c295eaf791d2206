package llmprovider

import (
	"errors"
	"fmt"
)

// Manager errors.
var (
	ErrNoProvidersConfigured = errors.New("no providers configured")
	ErrAllProvidersFailed    = errors.New("all providers failed")
)

// Failure kinds. Every *ProviderError wraps exactly one of these.
var (
	ErrProviderTimeout      = errors.New("provider timeout")
	ErrProviderUnauthorized = errors.New("provider unauthorized")
	ErrProviderRateLimited  = errors.New("provider rate limited")
	ErrEmptyResponse        = errors.New("empty provider response")
	ErrUpstream             = errors.New("upstream failure")
)

// ProviderError tags a failure with the provider that produced it.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

func retryable(err error) bool {
	return !errors.Is(err, ErrProviderUnauthorized)
}
