package cache

import (
	"context"
	"encoding/json"
	"sort"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore is a Redis-backed translation cache. Every entry lives under
// its own key, so writes are atomic per-key server-side: concurrent writers
// on different texts can never overwrite each other.
type RedisStore struct {
	client    *redis.Client
	ttl       time.Duration
	keyPrefix string
	hits      atomic.Uint64
	misses    atomic.Uint64
}

// RedisConfig holds configuration for the Redis store.
type RedisConfig struct {
	URL       string        // Redis connection URL (e.g., "redis://localhost:6379")
	TTL       time.Duration // Entry lifespan (default: DefaultTTL)
	KeyPrefix string        // Prefix for all keys (default: "lingoroute:")
}

// redisEntry is the serialized per-key payload. CreatedAt is kept so Prune
// can order evictions without relying on Redis metadata.
type redisEntry struct {
	Translation string    `json:"t"`
	CreatedAt   time.Time `json:"c"`
	ExpiresAt   time.Time `json:"e"`
}

// NewRedisStore creates a Redis store and verifies the connection.
func NewRedisStore(cfg RedisConfig) (*RedisStore, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return NewRedisStoreFromClient(client, cfg.TTL, cfg.KeyPrefix), nil
}

// NewRedisStoreFromClient creates a RedisStore from an existing client.
func NewRedisStoreFromClient(client *redis.Client, ttl time.Duration, keyPrefix string) *RedisStore {
	if keyPrefix == "" {
		keyPrefix = "lingoroute:"
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &RedisStore{
		client:    client,
		ttl:       ttl,
		keyPrefix: keyPrefix,
	}
}

// Get retrieves a cached translation from Redis.
func (s *RedisStore) Get(text, sourceLang, targetLang string) (string, bool) {
	ctx := context.Background()
	key := s.keyPrefix + Fingerprint(text, sourceLang, targetLang)

	val, err := s.client.Get(ctx, key).Result()
	if err != nil {
		// redis.Nil and transport errors both surface as cache misses
		s.misses.Add(1)
		return "", false
	}

	var entry redisEntry
	if err := json.Unmarshal([]byte(val), &entry); err != nil {
		s.misses.Add(1)
		return "", false
	}
	if !entry.ExpiresAt.After(time.Now()) {
		s.misses.Add(1)
		return "", false
	}

	s.hits.Add(1)
	return entry.Translation, true
}

// Set stores a translation in Redis with the configured TTL.
func (s *RedisStore) Set(text, sourceLang, targetLang, translation string) error {
	ctx := context.Background()
	key := s.keyPrefix + Fingerprint(text, sourceLang, targetLang)
	now := time.Now()

	payload, err := json.Marshal(redisEntry{
		Translation: translation,
		CreatedAt:   now,
		ExpiresAt:   now.Add(s.ttl),
	})
	if err != nil {
		return err
	}

	return s.client.Set(ctx, key, string(payload), s.ttl).Err()
}

// CleanupExpired scans for entries Redis has not yet reaped whose recorded
// expiry has passed, and deletes them. Redis enforces per-key TTLs on its
// own, so this usually returns 0.
func (s *RedisStore) CleanupExpired() int {
	removed := 0
	now := time.Now()
	s.scan(func(key string, entry redisEntry) {
		if !entry.ExpiresAt.After(now) {
			if s.client.Del(context.Background(), key).Err() == nil {
				removed++
			}
		}
	})
	return removed
}

// Prune evicts the oldest-created entries until at most maxEntries remain.
func (s *RedisStore) Prune(maxEntries int) int {
	if maxEntries < 0 {
		maxEntries = 0
	}

	type keyed struct {
		key       string
		createdAt time.Time
	}
	var all []keyed
	s.scan(func(key string, entry redisEntry) {
		all = append(all, keyed{key: key, createdAt: entry.CreatedAt})
	})

	excess := len(all) - maxEntries
	if excess <= 0 {
		return 0
	}

	sort.Slice(all, func(i, j int) bool {
		return all[i].createdAt.Before(all[j].createdAt)
	})

	removed := 0
	for _, k := range all[:excess] {
		if s.client.Del(context.Background(), k.key).Err() == nil {
			removed++
		}
	}
	return removed
}

// Clear removes all entries under the store's key prefix.
func (s *RedisStore) Clear() {
	s.scan(func(key string, entry redisEntry) {
		_ = s.client.Del(context.Background(), key).Err()
	})
}

// Warm loads precomputed entries, returning the number accepted.
func (s *RedisStore) Warm(entries []Entry) int {
	ctx := context.Background()
	now := time.Now()
	accepted := 0

	for _, entry := range entries {
		if entry.Key == "" || entry.Expired(now) {
			continue
		}
		payload, err := json.Marshal(redisEntry{
			Translation: entry.Translation,
			CreatedAt:   entry.CreatedAt,
			ExpiresAt:   entry.ExpiresAt,
		})
		if err != nil {
			continue
		}
		ttl := time.Until(entry.ExpiresAt)
		if s.client.Set(ctx, s.keyPrefix+entry.Key, payload, ttl).Err() == nil {
			accepted++
		}
	}
	return accepted
}

// Snapshot returns all non-expired entries.
func (s *RedisStore) Snapshot() []Entry {
	var result []Entry
	now := time.Now()
	s.scan(func(key string, entry redisEntry) {
		if !entry.ExpiresAt.After(now) {
			return
		}
		result = append(result, Entry{
			Key:         key[len(s.keyPrefix):],
			Translation: entry.Translation,
			CreatedAt:   entry.CreatedAt,
			ExpiresAt:   entry.ExpiresAt,
		})
	})
	return result
}

// Stats returns store statistics.
func (s *RedisStore) Stats() Stats {
	stats := Stats{
		Hits:   s.hits.Load(),
		Misses: s.misses.Load(),
	}
	now := time.Now()
	s.scan(func(key string, entry redisEntry) {
		stats.Total++
		stats.SizeBytes += len(key) - len(s.keyPrefix) + len(entry.Translation)
		if !entry.ExpiresAt.After(now) {
			stats.Expired++
		}
	})
	if total := stats.Hits + stats.Misses; total > 0 {
		stats.HitRate = float64(stats.Hits) / float64(total)
	}
	return stats
}

// scan iterates every entry under the key prefix.
func (s *RedisStore) scan(fn func(key string, entry redisEntry)) {
	ctx := context.Background()
	iter := s.client.Scan(ctx, 0, s.keyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		val, err := s.client.Get(ctx, key).Result()
		if err != nil {
			continue
		}
		var entry redisEntry
		if err := json.Unmarshal([]byte(val), &entry); err != nil {
			continue
		}
		fn(key, entry)
	}
}

// Close closes the Redis connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// Ping tests the Redis connection.
func (s *RedisStore) Ping() error {
	return s.client.Ping(context.Background()).Err()
}

// Verify RedisStore implements Store
var _ Store = (*RedisStore)(nil)
