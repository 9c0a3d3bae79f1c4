package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/lingoroute/lingoroute"
)

const (
	defaultAnthropicURL     = "https://api.anthropic.com/v1/messages"
	defaultAnthropicModel   = "claude-3-5-haiku-latest"
	anthropicVersion        = "2023-06-01"
	defaultAnthropicTimeout = 60 * time.Second
)

// AnthropicProvider translates via the Anthropic messages endpoint: same
// instruction pattern as the chat provider, different request/response
// envelope (max-tokens in, content array out).
type AnthropicProvider struct {
	model     string
	maxTokens int
	endpoint  string
	client    *http.Client
}

// AnthropicConfig holds configuration for the Anthropic provider.
type AnthropicConfig struct {
	Model     string        // Model to use (default: claude-3-5-haiku-latest)
	MaxTokens int           // Completion budget (default: 1024)
	Endpoint  string        // Custom endpoint (optional)
	Timeout   time.Duration // Per-request timeout (default: 60s)
}

// NewAnthropicProvider creates a new Anthropic provider.
func NewAnthropicProvider(cfg AnthropicConfig) *AnthropicProvider {
	model := cfg.Model
	if model == "" {
		model = defaultAnthropicModel
	}

	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 1024
	}

	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = defaultAnthropicURL
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultAnthropicTimeout
	}

	return &AnthropicProvider{
		model:     model,
		maxTokens: maxTokens,
		endpoint:  endpoint,
		client:    &http.Client{Timeout: timeout},
	}
}

// Name implements Provider.
func (p *AnthropicProvider) Name() lingoroute.ProviderName {
	return lingoroute.ProviderAnthropic
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type anthropicResponse struct {
	Content []anthropicContent `json:"content"`
	Error   *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Translate translates one text using the Anthropic messages API.
func (p *AnthropicProvider) Translate(ctx context.Context, req Request) (string, error) {
	if req.APIKey == "" {
		return "", &lingoroute.MissingAPIKeyError{Provider: p.Name()}
	}

	body, err := json.Marshal(anthropicRequest{
		Model:     p.model,
		MaxTokens: p.maxTokens,
		Messages: []anthropicMessage{
			{Role: "user", Content: instruction(req.Text, req.SourceLang, req.TargetLang)},
		},
	})
	if err != nil {
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", req.APIKey)
	httpReq.Header.Set("anthropic-version", anthropicVersion)
	httpReq.Header.Set("User-Agent", lingoroute.UserAgent())

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return "", &lingoroute.ProviderError{
			Provider:  p.Name(),
			Message:   "messages request failed",
			Cause:     err,
			Retryable: isRetryableError(err),
		}
	}
	defer resp.Body.Close()

	var out anthropicResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", &lingoroute.InvalidResponseError{
			Provider: p.Name(),
			Message:  "response is not valid JSON",
		}
	}

	if out.Error != nil {
		return "", &lingoroute.ProviderError{
			Provider:  p.Name(),
			Message:   out.Error.Message,
			Retryable: resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500,
		}
	}

	for _, c := range out.Content {
		if c.Type == "text" {
			return strings.TrimSpace(c.Text), nil
		}
	}

	return "", &lingoroute.InvalidResponseError{
		Provider: p.Name(),
		Message:  "response contains no text content",
	}
}

// Verify AnthropicProvider implements Provider
var _ Provider = (*AnthropicProvider)(nil)
