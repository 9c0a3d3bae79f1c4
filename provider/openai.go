package provider

import (
	"context"
	"strings"
	"time"

	"github.com/lingoroute/lingoroute"
	"github.com/sashabaranov/go-openai"
)

// OpenAIProvider translates via OpenAI's chat-completion endpoint: a
// translation instruction goes in as the user message, the first choice's
// content comes out.
type OpenAIProvider struct {
	model       string
	temperature float32
	baseURL     string
	timeout     time.Duration
}

// OpenAIConfig holds configuration for the OpenAI provider.
type OpenAIConfig struct {
	Model       string        // Model to use (default: "gpt-4o-mini")
	Temperature float32       // Sampling temperature (default: 0.3)
	BaseURL     string        // Custom base URL (optional)
	Timeout     time.Duration // Per-request timeout (default: 60s)
}

// NewOpenAIProvider creates a new OpenAI provider. The API key arrives with
// each request; the provider holds no credentials.
func NewOpenAIProvider(cfg OpenAIConfig) *OpenAIProvider {
	model := cfg.Model
	if model == "" {
		model = "gpt-4o-mini"
	}

	temperature := cfg.Temperature
	if temperature == 0 {
		temperature = 0.3
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	return &OpenAIProvider{
		model:       model,
		temperature: temperature,
		baseURL:     cfg.BaseURL,
		timeout:     timeout,
	}
}

// Name implements Provider.
func (p *OpenAIProvider) Name() lingoroute.ProviderName {
	return lingoroute.ProviderOpenAI
}

// Translate translates one text using OpenAI.
func (p *OpenAIProvider) Translate(ctx context.Context, req Request) (string, error) {
	if req.APIKey == "" {
		return "", &lingoroute.MissingAPIKeyError{Provider: p.Name()}
	}

	config := openai.DefaultConfig(req.APIKey)
	if p.baseURL != "" {
		config.BaseURL = p.baseURL
	}
	client := openai.NewClientWithConfig(config)

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: instruction(req.Text, req.SourceLang, req.TargetLang),
			},
		},
		Temperature: p.temperature,
	})
	if err != nil {
		return "", &lingoroute.ProviderError{
			Provider:  p.Name(),
			Message:   "chat completion failed",
			Cause:     err,
			Retryable: isRetryableError(err),
		}
	}

	if len(resp.Choices) == 0 {
		return "", &lingoroute.InvalidResponseError{
			Provider: p.Name(),
			Message:  "response contains no choices",
		}
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// Verify OpenAIProvider implements Provider
var _ Provider = (*OpenAIProvider)(nil)
