package provider

import (
	"context"

	"github.com/lingoroute/lingoroute"
)

// MockProvider is a counting mock for tests. It satisfies BatchProvider;
// tests that need the sequential dispatch path use a local single-text mock.
type MockProvider struct {
	ProviderName lingoroute.ProviderName // Name to report (default: "openai")
	Translations map[string]string       // Map of source text to translation
	Err          error                   // Error to return from every call

	CallCount  int      // Number of single-text calls
	BatchCalls int      // Number of batch calls
	LastTexts  []string // Texts from the most recent call
	LastKey    string   // API key from the most recent call
}

// NewMockProvider creates a mock with a few default translations.
func NewMockProvider() *MockProvider {
	return &MockProvider{
		Translations: map[string]string{
			"Hello":       "Hola",
			"World":       "Mundo",
			"Hello World": "Hola Mundo",
		},
	}
}

// Name implements Provider.
func (m *MockProvider) Name() lingoroute.ProviderName {
	if m.ProviderName != "" {
		return m.ProviderName
	}
	return lingoroute.ProviderOpenAI
}

// Translate returns the mapped translation, or the text wrapped in brackets.
func (m *MockProvider) Translate(ctx context.Context, req Request) (string, error) {
	m.CallCount++
	m.LastTexts = []string{req.Text}
	m.LastKey = req.APIKey

	if m.Err != nil {
		return "", m.Err
	}
	return m.translate(req.Text), nil
}

// TranslateBatch translates every text in one recorded call.
func (m *MockProvider) TranslateBatch(ctx context.Context, req BatchRequest) ([]string, error) {
	m.BatchCalls++
	m.LastTexts = append([]string(nil), req.Texts...)
	m.LastKey = req.APIKey

	if m.Err != nil {
		return nil, m.Err
	}

	results := make([]string, len(req.Texts))
	for i, text := range req.Texts {
		results[i] = m.translate(text)
	}
	return results, nil
}

func (m *MockProvider) translate(text string) string {
	if translation, ok := m.Translations[text]; ok {
		return translation
	}
	return "[" + text + "]"
}

// Reset clears counters and recorded state.
func (m *MockProvider) Reset() {
	m.CallCount = 0
	m.BatchCalls = 0
	m.LastTexts = nil
	m.LastKey = ""
}

// Verify MockProvider implements BatchProvider
var _ BatchProvider = (*MockProvider)(nil)
