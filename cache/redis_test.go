package cache

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
)

func redisPayload(t *testing.T, translation string, createdAt, expiresAt time.Time) string {
	t.Helper()
	data, err := json.Marshal(redisEntry{
		Translation: translation,
		CreatedAt:   createdAt,
		ExpiresAt:   expiresAt,
	})
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	return string(data)
}

func TestRedisStore_Get_Hit(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()

	s := NewRedisStoreFromClient(db, time.Hour, "test:")
	key := "test:" + Fingerprint("Hello", "en", "es")
	now := time.Now()

	mock.ExpectGet(key).SetVal(redisPayload(t, "Hola", now, now.Add(time.Hour)))

	val, ok := s.Get("Hello", "en", "es")
	if !ok {
		t.Error("expected cache hit")
	}
	if val != "Hola" {
		t.Errorf("got %q, want Hola", val)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestRedisStore_Get_Miss(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()

	s := NewRedisStoreFromClient(db, time.Hour, "test:")
	key := "test:" + Fingerprint("Hello", "en", "es")

	mock.ExpectGet(key).RedisNil()

	if _, ok := s.Get("Hello", "en", "es"); ok {
		t.Error("expected cache miss")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestRedisStore_Get_Expired(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()

	s := NewRedisStoreFromClient(db, time.Hour, "test:")
	key := "test:" + Fingerprint("stale", "en", "es")
	now := time.Now()

	// Redis has not reaped the key yet, but the recorded expiry has passed.
	mock.ExpectGet(key).SetVal(redisPayload(t, "vieja", now.Add(-2*time.Hour), now.Add(-time.Hour)))

	if _, ok := s.Get("stale", "en", "es"); ok {
		t.Error("entry past its recorded expiry must be a miss")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestRedisStore_Set(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()

	s := NewRedisStoreFromClient(db, time.Hour, "test:")
	key := "test:" + Fingerprint("Hello", "en", "es")

	mock.Regexp().ExpectSet(key, `^\{.*"t":"Hola".*\}$`, time.Hour).SetVal("OK")

	if err := s.Set("Hello", "en", "es", "Hola"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestRedisStore_Snapshot(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()

	s := NewRedisStoreFromClient(db, time.Hour, "test:")
	key := "test:" + Fingerprint("Hello", "en", "es")
	now := time.Now()

	mock.ExpectScan(0, "test:*", 0).SetVal([]string{key}, 0)
	mock.ExpectGet(key).SetVal(redisPayload(t, "Hola", now, now.Add(time.Hour)))

	entries := s.Snapshot()
	if len(entries) != 1 {
		t.Fatalf("Snapshot returned %d entries, want 1", len(entries))
	}
	if entries[0].Translation != "Hola" {
		t.Errorf("Translation = %q, want Hola", entries[0].Translation)
	}
	if entries[0].Key != Fingerprint("Hello", "en", "es") {
		t.Error("snapshot keys should have the store prefix removed")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestRedisStore_DefaultPrefix(t *testing.T) {
	db, _ := redismock.NewClientMock()
	defer db.Close()

	s := NewRedisStoreFromClient(db, 0, "")
	if s.keyPrefix != "lingoroute:" {
		t.Errorf("default prefix = %q, want lingoroute:", s.keyPrefix)
	}
	if s.ttl != DefaultTTL {
		t.Errorf("default ttl = %v, want %v", s.ttl, DefaultTTL)
	}
}
