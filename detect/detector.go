// Package detect classifies the source language of a text using a static
// pattern table, with optional fallback to a remote or statistical detector.
package detect

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"golang.org/x/net/html"
)

// ErrEmptyText is returned when there is nothing to classify.
var ErrEmptyText = errors.New("cannot detect language of empty text")

const (
	// sampleLimit bounds classification cost; detection is stable on small
	// samples.
	sampleLimit = 1000

	// matchThreshold is the minimum pattern-match count for a local
	// classification to win.
	matchThreshold = 3
)

// Score is one language's match count for a sample.
type Score struct {
	Lang    string
	Matches int
}

// Fallback is consulted when no local pattern reaches the match threshold.
type Fallback interface {
	DetectLanguage(ctx context.Context, text string) (string, error)
}

// Detector classifies text against a registered pattern table. The table is
// read-only at runtime except through RegisterPattern.
type Detector struct {
	mu       sync.RWMutex
	patterns map[string]Matcher
	fallback Fallback
}

// Option configures a Detector.
type Option func(*Detector)

// WithFallback sets the detector consulted when local patterns are
// inconclusive and the caller allows it.
func WithFallback(fb Fallback) Option {
	return func(d *Detector) {
		d.fallback = fb
	}
}

// New creates a Detector with the built-in pattern table.
func New(opts ...Option) *Detector {
	d := &Detector{patterns: defaultPatterns()}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// RegisterPattern adds or replaces the matcher for a language code. This is
// an administrative call; request traffic never mutates the table.
func (d *Detector) RegisterPattern(lang string, m Matcher) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.patterns[lang] = m
}

// Detect classifies text. A language wins locally only with at least three
// pattern matches. Below the threshold, the fallback is consulted when
// allowed (its errors propagate); otherwise the result defaults to "en" —
// a deliberate business rule, not an error path.
func (d *Detector) Detect(ctx context.Context, text string, allowRemoteFallback bool) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyText
	}

	scores := d.score(Sample(text))
	if len(scores) > 0 && scores[0].Matches >= matchThreshold {
		return scores[0].Lang, nil
	}

	if allowRemoteFallback && d.fallback != nil {
		return d.fallback.DetectLanguage(ctx, text)
	}

	return "en", nil
}

// DetectMultiple returns every language with at least one pattern match,
// ranked by match count.
func (d *Detector) DetectMultiple(text string) []Score {
	return d.score(Sample(text))
}

// IsLanguage reports whether text matches lang's pattern at least minMatches
// times. Non-positive minMatches uses the standard threshold.
func (d *Detector) IsLanguage(text, lang string, minMatches int) bool {
	if minMatches <= 0 {
		minMatches = matchThreshold
	}

	d.mu.RLock()
	m, ok := d.patterns[lang]
	d.mu.RUnlock()
	if !ok {
		return false
	}

	return m.Matches(Sample(text)) >= minMatches
}

// Confidence returns the ratio of lang's pattern matches to the sample's
// word count, clamped to [0,1].
func (d *Detector) Confidence(text, lang string) float64 {
	sample := Sample(text)

	words := len(strings.Fields(sample))
	if words == 0 {
		return 0
	}

	d.mu.RLock()
	m, ok := d.patterns[lang]
	d.mu.RUnlock()
	if !ok {
		return 0
	}

	ratio := float64(m.Matches(sample)) / float64(words)
	if ratio > 1 {
		ratio = 1
	}
	return ratio
}

// score runs every registered matcher against the sample. Ties break
// alphabetically so results are deterministic.
func (d *Detector) score(sample string) []Score {
	d.mu.RLock()
	defer d.mu.RUnlock()

	var scores []Score
	for lang, m := range d.patterns {
		if n := m.Matches(sample); n > 0 {
			scores = append(scores, Score{Lang: lang, Matches: n})
		}
	}

	sort.Slice(scores, func(i, j int) bool {
		if scores[i].Matches != scores[j].Matches {
			return scores[i].Matches > scores[j].Matches
		}
		return scores[i].Lang < scores[j].Lang
	})
	return scores
}

// Sample strips markup from text and truncates it to the classification
// sample size.
func Sample(text string) string {
	if strings.ContainsRune(text, '<') {
		text = stripMarkup(text)
	}

	runes := 0
	for i := range text {
		if runes == sampleLimit {
			return text[:i]
		}
		runes++
	}
	return text
}

// stripMarkup extracts the text content of an HTML fragment, skipping
// script and style bodies.
func stripMarkup(s string) string {
	var b strings.Builder
	skip := map[string]bool{"script": true, "style": true, "noscript": true}

	z := html.NewTokenizer(strings.NewReader(s))
	depth := 0
	for {
		switch z.Next() {
		case html.ErrorToken:
			return b.String()
		case html.StartTagToken:
			name, _ := z.TagName()
			if skip[string(name)] {
				depth++
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			if skip[string(name)] && depth > 0 {
				depth--
			}
		case html.TextToken:
			if depth == 0 {
				b.Write(z.Text())
				b.WriteByte(' ')
			}
		}
	}
}
