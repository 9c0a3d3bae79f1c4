package detect

import (
	"context"
	"fmt"
	"strings"
	"sync"

	lingua "github.com/pemistahl/lingua-go"
)

// LinguaFallback is an in-process statistical fallback built on lingua-go.
// It avoids a network round trip at the cost of loading language models on
// first use.
type LinguaFallback struct {
	once     sync.Once
	detector lingua.LanguageDetector
}

// NewLinguaFallback creates the statistical fallback. Model loading is
// deferred until the first detection.
func NewLinguaFallback() *LinguaFallback {
	return &LinguaFallback{}
}

// DetectLanguage implements Fallback.
func (f *LinguaFallback) DetectLanguage(ctx context.Context, text string) (string, error) {
	sample := strings.TrimSpace(text)
	if sample == "" {
		return "", ErrEmptyText
	}

	f.once.Do(func() {
		f.detector = lingua.NewLanguageDetectorBuilder().
			FromAllLanguages().
			Build()
	})

	language, exists := f.detector.DetectLanguageOf(sample)
	if !exists {
		return "", fmt.Errorf("language not recognized")
	}

	code := strings.ToLower(language.IsoCode639_1().String())
	if len(code) != 2 {
		return "", fmt.Errorf("language %s has no ISO 639-1 code", language)
	}
	return code, nil
}

// Verify LinguaFallback implements Fallback
var _ Fallback = (*LinguaFallback)(nil)
