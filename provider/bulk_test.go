package provider

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lingoroute/lingoroute"
)

func TestBulkProvider_TranslateBatch(t *testing.T) {
	var captured bulkRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"translations":["uno","dos","tres"]}`))
	}))
	defer srv.Close()

	p := NewBulkProvider(BulkConfig{Endpoint: srv.URL})

	got, err := p.TranslateBatch(context.Background(), BatchRequest{
		Texts:      []string{"one", "two", "three"},
		SourceLang: "en",
		TargetLang: "es",
		APIKey:     "bulk-key",
	})
	if err != nil {
		t.Fatalf("TranslateBatch failed: %v", err)
	}

	want := []string{"uno", "dos", "tres"}
	if len(got) != len(want) {
		t.Fatalf("got %d translations, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("translation[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	if len(captured.Text) != 3 || captured.Text[0] != "one" {
		t.Errorf("request texts = %v", captured.Text)
	}
	if captured.Source != "en" || captured.Target != "es" {
		t.Errorf("request languages = %q -> %q", captured.Source, captured.Target)
	}
	if captured.APIKey != "bulk-key" {
		t.Errorf("request api_key = %q", captured.APIKey)
	}
}

func TestBulkProvider_Translate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"translations":["hola"]}`))
	}))
	defer srv.Close()

	p := NewBulkProvider(BulkConfig{Endpoint: srv.URL})

	got, err := p.Translate(context.Background(), Request{Text: "hello", SourceLang: "en", TargetLang: "es", APIKey: "k"})
	if err != nil {
		t.Fatalf("Translate failed: %v", err)
	}
	if got != "hola" {
		t.Errorf("got %q, want hola", got)
	}
}

func TestBulkProvider_MissingKey(t *testing.T) {
	p := NewBulkProvider(BulkConfig{Endpoint: "http://localhost:0"})

	_, err := p.TranslateBatch(context.Background(), BatchRequest{Texts: []string{"a"}, TargetLang: "es"})

	var missing *lingoroute.MissingAPIKeyError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingAPIKeyError, got %v", err)
	}
	if missing.Provider != lingoroute.ProviderBulk {
		t.Errorf("error names provider %q", missing.Provider)
	}
}

func TestBulkProvider_ErrorField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"error":"backend overloaded"}`))
	}))
	defer srv.Close()

	p := NewBulkProvider(BulkConfig{Endpoint: srv.URL})

	_, err := p.TranslateBatch(context.Background(), BatchRequest{Texts: []string{"a"}, TargetLang: "es", APIKey: "k"})

	var perr *lingoroute.ProviderError
	if !errors.As(err, &perr) {
		t.Fatalf("expected ProviderError, got %v", err)
	}
	if perr.Message != "backend overloaded" {
		t.Errorf("message = %q", perr.Message)
	}
	if !perr.Retryable {
		t.Error("503 responses should be retryable")
	}
}

func TestBulkProvider_MissingTranslationsField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	p := NewBulkProvider(BulkConfig{Endpoint: srv.URL})

	_, err := p.TranslateBatch(context.Background(), BatchRequest{Texts: []string{"a"}, TargetLang: "es", APIKey: "k"})

	var invalid *lingoroute.InvalidResponseError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidResponseError, got %v", err)
	}
	if invalid.Message != "response missing translations field" {
		t.Errorf("message = %q", invalid.Message)
	}
}

func TestBulkProvider_CountMismatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"translations":["uno"]}`))
	}))
	defer srv.Close()

	p := NewBulkProvider(BulkConfig{Endpoint: srv.URL})

	_, err := p.TranslateBatch(context.Background(), BatchRequest{Texts: []string{"one", "two"}, TargetLang: "es", APIKey: "k"})

	var invalid *lingoroute.InvalidResponseError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidResponseError, got %v", err)
	}
}
