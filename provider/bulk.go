package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/lingoroute/lingoroute"
)

const defaultBulkTimeout = 30 * time.Second

// BulkProvider calls a dedicated translation endpoint with explicit source
// and target parameters. Unlike the LLM providers it supports true
// multi-text batch submission in a single call.
type BulkProvider struct {
	endpoint string
	client   *http.Client
}

// BulkConfig holds configuration for the bulk-translate provider.
type BulkConfig struct {
	Endpoint string        // Translation endpoint URL (required)
	Timeout  time.Duration // Per-request timeout (default: 30s)
}

// NewBulkProvider creates a new bulk-translate provider.
func NewBulkProvider(cfg BulkConfig) *BulkProvider {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultBulkTimeout
	}

	return &BulkProvider{
		endpoint: cfg.Endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

// Name implements Provider.
func (p *BulkProvider) Name() lingoroute.ProviderName {
	return lingoroute.ProviderBulk
}

type bulkRequest struct {
	Text   []string `json:"text"`
	Source string   `json:"source"`
	Target string   `json:"target"`
	APIKey string   `json:"api_key,omitempty"`
}

type bulkResponse struct {
	Translations []string `json:"translations"`
	Error        string   `json:"error,omitempty"`
}

// Translate translates a single text.
func (p *BulkProvider) Translate(ctx context.Context, req Request) (string, error) {
	results, err := p.TranslateBatch(ctx, BatchRequest{
		Texts:      []string{req.Text},
		SourceLang: req.SourceLang,
		TargetLang: req.TargetLang,
		APIKey:     req.APIKey,
	})
	if err != nil {
		return "", err
	}
	return results[0], nil
}

// TranslateBatch submits every text in one call. The endpoint returns
// translated strings in input order.
func (p *BulkProvider) TranslateBatch(ctx context.Context, req BatchRequest) ([]string, error) {
	if req.APIKey == "" {
		return nil, &lingoroute.MissingAPIKeyError{Provider: p.Name()}
	}

	body, err := json.Marshal(bulkRequest{
		Text:   req.Texts,
		Source: req.SourceLang,
		Target: req.TargetLang,
		APIKey: req.APIKey,
	})
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("User-Agent", lingoroute.UserAgent())

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, &lingoroute.ProviderError{
			Provider:  p.Name(),
			Message:   "bulk-translate request failed",
			Cause:     err,
			Retryable: isRetryableError(err),
		}
	}
	defer resp.Body.Close()

	var out bulkResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, &lingoroute.InvalidResponseError{
			Provider: p.Name(),
			Message:  "response is not valid JSON",
		}
	}

	if out.Error != "" {
		return nil, &lingoroute.ProviderError{
			Provider:  p.Name(),
			Message:   out.Error,
			Retryable: resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500,
		}
	}

	if out.Translations == nil {
		return nil, &lingoroute.InvalidResponseError{
			Provider: p.Name(),
			Message:  "response missing translations field",
		}
	}
	if len(out.Translations) != len(req.Texts) {
		return nil, &lingoroute.InvalidResponseError{
			Provider: p.Name(),
			Message:  "translation count does not match input count",
		}
	}

	return out.Translations, nil
}

// Verify BulkProvider implements BatchProvider
var _ BatchProvider = (*BulkProvider)(nil)
