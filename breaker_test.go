package lingoroute

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker"
)

func TestBreakerProvider_OpensAfterConsecutiveFailures(t *testing.T) {
	inner := newSingleMock(ProviderOpenAI)
	inner.failOn = "x"
	p := NewBreakerProvider(inner, BreakerConfig{
		ConsecutiveFailures: 2,
		OpenTimeout:         time.Minute,
	})

	for i := 0; i < 2; i++ {
		if _, err := p.Translate(context.Background(), ProviderRequest{Text: "x"}); err == nil {
			t.Fatalf("call %d should fail", i)
		}
	}

	if p.State() != gobreaker.StateOpen {
		t.Fatalf("circuit should be open, got %v", p.State())
	}

	// Open circuit: fail fast without touching the provider.
	callsBefore := inner.callCount
	_, err := p.Translate(context.Background(), ProviderRequest{Text: "x"})
	if err == nil {
		t.Fatal("open circuit should fail")
	}
	if inner.callCount != callsBefore {
		t.Error("open circuit should not reach the provider")
	}

	var pe *ProviderError
	if !errors.As(err, &pe) || !pe.Retryable {
		t.Errorf("open-circuit failure should be a retryable ProviderError, got %v", err)
	}
}

func TestBreakerProvider_PassesThroughSuccess(t *testing.T) {
	inner := newSingleMock(ProviderOpenAI)
	inner.reply = func(string) string { return "bien" }
	p := NewBreakerProvider(inner, BreakerConfig{})

	out, err := p.Translate(context.Background(), ProviderRequest{Text: "good"})
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if out != "bien" {
		t.Errorf("got %q, want bien", out)
	}
	if p.State() != gobreaker.StateClosed {
		t.Errorf("circuit should stay closed, got %v", p.State())
	}
}
