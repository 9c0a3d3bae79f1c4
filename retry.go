package lingoroute

import (
	"context"
	"errors"
	"time"
)

// The core never retries on its own: callers that need resilience wrap
// providers with RetryProvider (or their own policy) before registration.

// RetryConfig holds configuration for retry behavior.
type RetryConfig struct {
	MaxRetries int           // Maximum number of retry attempts
	BaseDelay  time.Duration // Initial delay between retries
	MaxDelay   time.Duration // Maximum delay between retries
}

// DefaultRetryConfig returns sensible defaults for retry behavior.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries: 3,
		BaseDelay:  1 * time.Second,
		MaxDelay:   30 * time.Second,
	}
}

// RetryFunc is a function that can be retried.
type RetryFunc[T any] func() (T, error)

// WithRetry executes a function with exponential backoff retry.
func WithRetry[T any](ctx context.Context, cfg RetryConfig, fn RetryFunc[T]) (T, error) {
	var lastErr error
	var zero T

	for attempt := 0; attempt <= cfg.MaxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		default:
		}

		result, err := fn()
		if err == nil {
			return result, nil
		}

		lastErr = err

		if !IsRetryable(err) {
			return zero, err
		}

		// Don't sleep after the last attempt
		if attempt < cfg.MaxRetries {
			delay := cfg.BaseDelay * time.Duration(1<<attempt)
			if delay > cfg.MaxDelay {
				delay = cfg.MaxDelay
			}

			select {
			case <-ctx.Done():
				return zero, ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return zero, lastErr
}

// IsRetryable checks if an error is retryable.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	var providerErr *ProviderError
	if errors.As(err, &providerErr) {
		return providerErr.Retryable
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	return false
}

// RetryProvider wraps a Provider with exponential backoff retry. Only the
// single-text path is wrapped; a wrapped batch provider is dispatched one
// text at a time.
type RetryProvider struct {
	provider Provider
	config   RetryConfig
}

// NewRetryProvider creates a provider with retry logic.
func NewRetryProvider(provider Provider, cfg RetryConfig) *RetryProvider {
	return &RetryProvider{
		provider: provider,
		config:   cfg,
	}
}

// Name returns the wrapped provider's name.
func (p *RetryProvider) Name() ProviderName {
	return p.provider.Name()
}

// Translate implements Provider with retry logic.
func (p *RetryProvider) Translate(ctx context.Context, req ProviderRequest) (string, error) {
	return WithRetry(ctx, p.config, func() (string, error) {
		return p.provider.Translate(ctx, req)
	})
}
