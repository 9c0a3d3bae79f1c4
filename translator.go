package lingoroute

import (
	"context"
	"html"
)

// ProviderName identifies a registered translation provider. The set of
// valid names is closed: every name must map to a registered implementation
// when the Translator is constructed.
type ProviderName string

const (
	// ProviderOpenAI is the chat-completion style provider.
	ProviderOpenAI ProviderName = "openai"
	// ProviderAnthropic is the messages style provider.
	ProviderAnthropic ProviderName = "anthropic"
	// ProviderBulk is the dedicated bulk-translate endpoint provider.
	ProviderBulk ProviderName = "bulk"
)

// ProviderRequest is a single-text translation request handed to a provider.
// The API key is resolved by the Translator before dispatch; providers never
// store keys themselves.
type ProviderRequest struct {
	Text       string
	SourceLang string
	TargetLang string
	APIKey     string
}

// BatchRequest is a multi-text request for providers with native batch
// submission. Results must preserve input order.
type BatchRequest struct {
	Texts      []string
	SourceLang string
	TargetLang string
	APIKey     string
}

// Provider is the interface for remote translation backends.
type Provider interface {
	Name() ProviderName
	Translate(ctx context.Context, req ProviderRequest) (string, error)
}

// BatchProvider is implemented by providers that can submit several texts in
// one remote call. Providers without it are called once per text.
type BatchProvider interface {
	Provider
	TranslateBatch(ctx context.Context, req BatchRequest) ([]string, error)
}

// KeyResolver returns the API key for a provider, optionally varied by the
// caller's context ID. The second return is false when no key is configured.
type KeyResolver func(name ProviderName, contextID string) (string, bool)

// ProviderResolver maps a context ID to a provider override. The second
// return is false when the context has no override and the default applies.
type ProviderResolver func(contextID string) (ProviderName, bool)

// registration records a provider's batch capability once at construction,
// so dispatch never probes per call.
type registration struct {
	single Provider
	batch  BatchProvider // nil when the provider has no native batch
}

// Translator routes translation requests to the configured provider. It
// validates the target language, resolves the active provider and its API
// key, and normalizes provider output (HTML entity decoding).
type Translator struct {
	providers   map[ProviderName]registration
	defaultName ProviderName
	keys        KeyResolver
	overrides   ProviderResolver
}

// TranslatorOption is a functional option for configuring the Translator.
type TranslatorOption func(*Translator)

// WithProviderOverrides sets the per-context provider resolver.
func WithProviderOverrides(resolver ProviderResolver) TranslatorOption {
	return func(t *Translator) {
		t.overrides = resolver
	}
}

// NewTranslator creates a Translator with the given default provider, key
// resolver, and provider implementations. It fails if the default name has
// no registered implementation.
func NewTranslator(defaultName ProviderName, keys KeyResolver, providers []Provider, opts ...TranslatorOption) (*Translator, error) {
	t := &Translator{
		providers:   make(map[ProviderName]registration, len(providers)),
		defaultName: defaultName,
		keys:        keys,
	}

	for _, p := range providers {
		reg := registration{single: p}
		if bp, ok := p.(BatchProvider); ok {
			reg.batch = bp
		}
		t.providers[p.Name()] = reg
	}

	if _, ok := t.providers[defaultName]; !ok {
		return nil, &InvalidProviderError{Name: defaultName}
	}

	for _, opt := range opts {
		opt(t)
	}

	return t, nil
}

// Translate translates a single text from sourceLang to targetLang using the
// provider selected for contextID. No network call is made for unsupported
// target languages.
func (t *Translator) Translate(ctx context.Context, text, sourceLang, targetLang, contextID string) (string, error) {
	reg, key, err := t.resolve(targetLang, contextID)
	if err != nil {
		return "", err
	}

	out, err := reg.single.Translate(ctx, ProviderRequest{
		Text:       text,
		SourceLang: sourceLang,
		TargetLang: targetLang,
		APIKey:     key,
	})
	if err != nil {
		return "", err
	}

	return html.UnescapeString(out), nil
}

// BatchTranslate translates texts in order. Providers with native batch
// submission receive one call; others are called sequentially, aborting the
// whole batch on the first error.
func (t *Translator) BatchTranslate(ctx context.Context, texts []string, sourceLang, targetLang, contextID string) ([]string, error) {
	reg, key, err := t.resolve(targetLang, contextID)
	if err != nil {
		return nil, err
	}

	if len(texts) == 0 {
		return []string{}, nil
	}

	if reg.batch != nil {
		results, err := reg.batch.TranslateBatch(ctx, BatchRequest{
			Texts:      texts,
			SourceLang: sourceLang,
			TargetLang: targetLang,
			APIKey:     key,
		})
		if err != nil {
			return nil, err
		}
		if len(results) != len(texts) {
			return nil, &InvalidResponseError{
				Provider: reg.single.Name(),
				Message:  "batch result count does not match input count",
			}
		}
		for i, r := range results {
			results[i] = html.UnescapeString(r)
		}
		return results, nil
	}

	results := make([]string, len(texts))
	for i, text := range texts {
		out, err := reg.single.Translate(ctx, ProviderRequest{
			Text:       text,
			SourceLang: sourceLang,
			TargetLang: targetLang,
			APIKey:     key,
		})
		if err != nil {
			return nil, err
		}
		results[i] = html.UnescapeString(out)
	}
	return results, nil
}

// DefaultProvider returns the configured default provider name.
func (t *Translator) DefaultProvider() ProviderName {
	return t.defaultName
}

// resolve validates the target language and returns the active provider
// registration and API key for contextID.
func (t *Translator) resolve(targetLang, contextID string) (registration, string, error) {
	if !IsSupported(targetLang) {
		return registration{}, "", &UnsupportedLanguageError{Lang: targetLang}
	}

	name := t.defaultName
	if t.overrides != nil {
		if override, ok := t.overrides(contextID); ok {
			name = override
		}
	}

	reg, ok := t.providers[name]
	if !ok {
		return registration{}, "", &InvalidProviderError{Name: name}
	}

	key, ok := t.keys(name, contextID)
	if !ok || key == "" {
		return registration{}, "", &MissingAPIKeyError{Provider: name}
	}

	return reg, key, nil
}
