package lingoroute

import "context"

// TranslationStore is the cache surface the orchestrator needs. The cache
// package provides bounded TTL-aware implementations.
type TranslationStore interface {
	// Get returns a cached translation. The second return is false on miss
	// (including expired entries).
	Get(text, sourceLang, targetLang string) (string, bool)

	// Set stores a translation.
	Set(text, sourceLang, targetLang, translation string) error
}

// LanguageDetector classifies the source language of a text. The detect
// package provides a pattern-based implementation.
type LanguageDetector interface {
	Detect(ctx context.Context, text string, allowRemoteFallback bool) (string, error)
}

// TranslationEngine dispatches translation requests to a remote provider.
// *Translator is the standard implementation.
type TranslationEngine interface {
	Translate(ctx context.Context, text, sourceLang, targetLang, contextID string) (string, error)
	BatchTranslate(ctx context.Context, texts []string, sourceLang, targetLang, contextID string) ([]string, error)
}

// Request describes one translation. SourceLang may be empty, in which case
// the source language is detected. ContextID selects provider and API-key
// overrides and carries no other identity.
type Request struct {
	Text       string
	SourceLang string
	TargetLang string
	ContextID  string
}

// Service composes detection, caching, and provider dispatch. All calls are
// synchronous; callers own retries, backoff, and outer timeouts.
type Service struct {
	engine   TranslationEngine
	detector LanguageDetector
	store    TranslationStore
}

// ServiceOption is a functional option for configuring the Service.
type ServiceOption func(*Service)

// WithDetector sets the source-language detector. Without one, requests with
// an empty source language assume English.
func WithDetector(d LanguageDetector) ServiceOption {
	return func(s *Service) {
		s.detector = d
	}
}

// WithStore sets the translation cache. Without one, every request reaches
// the provider.
func WithStore(store TranslationStore) ServiceOption {
	return func(s *Service) {
		s.store = store
	}
}

// NewService creates a Service around the given engine.
func NewService(engine TranslationEngine, opts ...ServiceOption) *Service {
	s := &Service{engine: engine}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Translate returns req.Text translated into req.TargetLang. Identity
// translations (source == target) return the text unchanged without touching
// the cache or any provider. Cache misses reach the provider, and successful
// results are written back; provider failures are never cached.
func (s *Service) Translate(ctx context.Context, req Request) (string, error) {
	source := s.resolveSource(ctx, req)

	if SameLanguage(source, req.TargetLang) {
		return req.Text, nil
	}

	if s.store != nil {
		if cached, ok := s.store.Get(req.Text, source, req.TargetLang); ok {
			return cached, nil
		}
	}

	translated, err := s.engine.Translate(ctx, req.Text, source, req.TargetLang, req.ContextID)
	if err != nil {
		return "", err
	}

	if s.store != nil {
		_ = s.store.Set(req.Text, source, req.TargetLang, translated) // Ignore cache set errors
	}

	return translated, nil
}

// BatchTranslate translates texts into targetLang, preserving input order.
// Cached texts are served locally; only the misses are sent to the provider,
// in their relative order. The batch aborts on the first provider error.
func (s *Service) BatchTranslate(ctx context.Context, texts []string, req Request) ([]string, error) {
	if len(texts) == 0 {
		return []string{}, nil
	}

	source := req.SourceLang
	if source == "" {
		source = s.resolveSource(ctx, Request{Text: texts[0], TargetLang: req.TargetLang})
	}

	if SameLanguage(source, req.TargetLang) {
		out := make([]string, len(texts))
		copy(out, texts)
		return out, nil
	}

	results := make([]string, len(texts))
	var missIndexes []int

	for i, text := range texts {
		if s.store != nil {
			if cached, ok := s.store.Get(text, source, req.TargetLang); ok {
				results[i] = cached
				continue
			}
		}
		missIndexes = append(missIndexes, i)
	}

	if len(missIndexes) == 0 {
		return results, nil
	}

	missing := make([]string, len(missIndexes))
	for i, idx := range missIndexes {
		missing[i] = texts[idx]
	}

	translated, err := s.engine.BatchTranslate(ctx, missing, source, req.TargetLang, req.ContextID)
	if err != nil {
		return nil, err
	}

	for i, idx := range missIndexes {
		results[idx] = translated[i]
		if s.store != nil {
			_ = s.store.Set(texts[idx], source, req.TargetLang, translated[i])
		}
	}

	return results, nil
}

// resolveSource returns the request's source language, detecting it when
// absent. Detection failures fall back to English: translation proceeds even
// when classification is inconclusive.
func (s *Service) resolveSource(ctx context.Context, req Request) string {
	if req.SourceLang != "" {
		return req.SourceLang
	}
	if s.detector == nil {
		return "en"
	}
	lang, err := s.detector.Detect(ctx, req.Text, false)
	if err != nil || lang == "" {
		return "en"
	}
	return lang
}
