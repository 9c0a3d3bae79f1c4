package lingoroute

import (
	"context"
	"time"

	"github.com/sony/gobreaker"
)

// BreakerConfig configures the circuit-breaker provider wrapper.
type BreakerConfig struct {
	// ConsecutiveFailures trips the circuit once that many provider calls
	// fail in a row (default: 5).
	ConsecutiveFailures uint32
	// OpenTimeout is how long the circuit stays open before allowing a
	// probe request (default: 60s).
	OpenTimeout time.Duration
}

// BreakerProvider wraps a Provider with a circuit breaker so a failing
// provider stops receiving traffic instead of burning the caller's timeout
// budget on every request.
type BreakerProvider struct {
	provider Provider
	cb       *gobreaker.CircuitBreaker
}

// NewBreakerProvider creates a circuit-breaking provider wrapper.
func NewBreakerProvider(provider Provider, cfg BreakerConfig) *BreakerProvider {
	failures := cfg.ConsecutiveFailures
	if failures == 0 {
		failures = 5
	}

	timeout := cfg.OpenTimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    string(provider.Name()),
		Timeout: timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
	})

	return &BreakerProvider{provider: provider, cb: cb}
}

// Name returns the wrapped provider's name.
func (p *BreakerProvider) Name() ProviderName {
	return p.provider.Name()
}

// Translate implements Provider. While the circuit is open, calls fail
// immediately with a retryable ProviderError.
func (p *BreakerProvider) Translate(ctx context.Context, req ProviderRequest) (string, error) {
	out, err := p.cb.Execute(func() (interface{}, error) {
		return p.provider.Translate(ctx, req)
	})
	if err != nil {
		if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
			return "", &ProviderError{
				Provider:  p.provider.Name(),
				Message:   "circuit breaker open",
				Cause:     err,
				Retryable: true,
			}
		}
		return "", err
	}
	return out.(string), nil
}

// State returns the current circuit state.
func (p *BreakerProvider) State() gobreaker.State {
	return p.cb.State()
}
