// Package cache provides bounded, TTL-aware translation caches keyed by a
// deterministic fingerprint of (source language, target language, text).
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// DefaultTTL is the fixed lifespan of cache entries unless configured
// otherwise.
const DefaultTTL = 30 * 24 * time.Hour

// Entry is one cached translation. Entries are replaced wholesale, never
// edited in place.
type Entry struct {
	Key         string    `json:"key"`
	Translation string    `json:"translation"`
	CreatedAt   time.Time `json:"created_at"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Expired reports whether the entry must be treated as absent at time now.
func (e Entry) Expired(now time.Time) bool {
	return !e.ExpiresAt.After(now)
}

// Stats describes the state of a store. HitRate covers the owning process's
// lifetime only; counters are never persisted.
type Stats struct {
	Total     int     `json:"total"`
	Expired   int     `json:"expired"`
	SizeBytes int     `json:"size_bytes"`
	Hits      uint64  `json:"hits"`
	Misses    uint64  `json:"misses"`
	HitRate   float64 `json:"hit_rate"`
}

// Store is a bounded TTL-aware translation cache.
type Store interface {
	// Get returns the cached translation for (text, sourceLang, targetLang).
	// Expired entries are misses even while physically present. Every
	// lookup updates the hit/miss counters.
	Get(text, sourceLang, targetLang string) (string, bool)

	// Set inserts or overwrites the entry for (text, sourceLang, targetLang).
	Set(text, sourceLang, targetLang, translation string) error

	// CleanupExpired removes every expired entry and returns the removed
	// count. Intended to run on a periodic external trigger.
	CleanupExpired() int

	// Prune evicts the oldest-created entries until at most maxEntries
	// remain, returning the evicted count.
	Prune(maxEntries int) int

	// Clear removes all entries.
	Clear()

	// Warm loads precomputed entries, returning the number accepted.
	Warm(entries []Entry) int

	// Snapshot returns all non-expired entries.
	Snapshot() []Entry

	// Stats returns store statistics.
	Stats() Stats
}

// Fingerprint computes the deterministic cache key for a translation. The
// digest covers the raw text bytes: whitespace and case variants are
// distinct entries, preserving exact formatting fidelity. It is
// content-addressed, not cryptographically load-bearing.
func Fingerprint(text, sourceLang, targetLang string) string {
	h := sha256.New()
	h.Write([]byte(sourceLang))
	h.Write([]byte{0})
	h.Write([]byte(targetLang))
	h.Write([]byte{0})
	h.Write([]byte(text))
	return hex.EncodeToString(h.Sum(nil))
}
