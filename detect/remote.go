package detect

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// HTTPFallback calls a remote language-detection endpoint. The endpoint
// takes {"text": ...} and answers {"language": "xx"}; an "error" field in
// the response body is treated as a detection failure.
type HTTPFallback struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

// HTTPFallbackConfig configures the remote detection fallback.
type HTTPFallbackConfig struct {
	Endpoint string        // Detection endpoint URL (required)
	APIKey   string        // Optional bearer token
	Timeout  time.Duration // Request timeout (default: 10s)
}

// NewHTTPFallback creates a remote detection fallback.
func NewHTTPFallback(cfg HTTPFallbackConfig) *HTTPFallback {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPFallback{
		endpoint: cfg.Endpoint,
		apiKey:   cfg.APIKey,
		client:   &http.Client{Timeout: timeout},
	}
}

type detectRequest struct {
	Text string `json:"text"`
}

type detectResponse struct {
	Language string `json:"language"`
	Error    string `json:"error,omitempty"`
}

// DetectLanguage implements Fallback.
func (f *HTTPFallback) DetectLanguage(ctx context.Context, text string) (string, error) {
	body, err := json.Marshal(detectRequest{Text: text})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if f.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+f.apiKey)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("remote detection request: %w", err)
	}
	defer resp.Body.Close()

	var out detectResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("remote detection response: %w", err)
	}
	if out.Error != "" {
		return "", fmt.Errorf("remote detection: %s", out.Error)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("remote detection: unexpected status %d", resp.StatusCode)
	}
	if out.Language == "" {
		return "", fmt.Errorf("remote detection: response missing language")
	}

	return out.Language, nil
}

// Verify HTTPFallback implements Fallback
var _ Fallback = (*HTTPFallback)(nil)
