package cache

import (
	"sort"
	"sync"
	"time"
)

// MemoryStore is a thread-safe in-memory translation cache. Every mutation
// is a per-key upsert under one mutex, so concurrent writers can never
// clobber each other's inserts, and no lock is ever held across network I/O.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]Entry
	ttl     time.Duration
	hits    uint64
	misses  uint64

	now func() time.Time // test hook
}

// MemoryConfig configures a MemoryStore.
type MemoryConfig struct {
	// TTL is the fixed entry lifespan (default: DefaultTTL).
	TTL time.Duration
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore(cfg MemoryConfig) *MemoryStore {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{
		entries: make(map[string]Entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get retrieves a cached translation. Expired entries count as misses even
// while still physically present; removal is left to CleanupExpired.
func (s *MemoryStore) Get(text, sourceLang, targetLang string) (string, bool) {
	key := Fingerprint(text, sourceLang, targetLang)

	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[key]
	if !ok || entry.Expired(s.now()) {
		s.misses++
		return "", false
	}

	s.hits++
	return entry.Translation, true
}

// Set inserts or overwrites the entry for (text, sourceLang, targetLang).
func (s *MemoryStore) Set(text, sourceLang, targetLang, translation string) error {
	key := Fingerprint(text, sourceLang, targetLang)
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = Entry{
		Key:         key,
		Translation: translation,
		CreatedAt:   now,
		ExpiresAt:   now.Add(s.ttl),
	}
	return nil
}

// CleanupExpired removes every expired entry, returning the removed count.
func (s *MemoryStore) CleanupExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for key, entry := range s.entries {
		if entry.Expired(now) {
			delete(s.entries, key)
			removed++
		}
	}
	return removed
}

// Prune evicts the oldest-created entries until at most maxEntries remain.
func (s *MemoryStore) Prune(maxEntries int) int {
	if maxEntries < 0 {
		maxEntries = 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	excess := len(s.entries) - maxEntries
	if excess <= 0 {
		return 0
	}

	all := make([]Entry, 0, len(s.entries))
	for _, entry := range s.entries {
		all = append(all, entry)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.Before(all[j].CreatedAt)
	})

	for _, entry := range all[:excess] {
		delete(s.entries, entry.Key)
	}
	return excess
}

// Clear removes all entries. Counters are untouched: they track process
// lifetime, not store content.
func (s *MemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]Entry)
}

// Warm loads precomputed entries. Entries already expired are rejected.
func (s *MemoryStore) Warm(entries []Entry) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	accepted := 0
	for _, entry := range entries {
		if entry.Key == "" || entry.Expired(now) {
			continue
		}
		s.entries[entry.Key] = entry
		accepted++
	}
	return accepted
}

// WarmRaw loads one precomputed translation under its natural fingerprint.
func (s *MemoryStore) WarmRaw(text, sourceLang, targetLang, translation string, expiresAt time.Time) {
	key := Fingerprint(text, sourceLang, targetLang)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = Entry{
		Key:         key,
		Translation: translation,
		CreatedAt:   s.now(),
		ExpiresAt:   expiresAt,
	}
}

// Snapshot returns all non-expired entries.
func (s *MemoryStore) Snapshot() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	result := make([]Entry, 0, len(s.entries))
	for _, entry := range s.entries {
		if entry.Expired(now) {
			continue
		}
		result = append(result, entry)
	}
	return result
}

// Len returns the number of entries (including expired ones).
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Stats returns store statistics.
func (s *MemoryStore) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	stats := Stats{
		Total:  len(s.entries),
		Hits:   s.hits,
		Misses: s.misses,
	}
	for _, entry := range s.entries {
		if entry.Expired(now) {
			stats.Expired++
		}
		stats.SizeBytes += len(entry.Key) + len(entry.Translation)
	}
	if total := s.hits + s.misses; total > 0 {
		stats.HitRate = float64(s.hits) / float64(total)
	}
	return stats
}

// Verify MemoryStore implements Store
var _ Store = (*MemoryStore)(nil)
