package provider

import (
	"context"
	"testing"
)

func TestMockProvider(t *testing.T) {
	m := NewMockProvider()

	got, err := m.Translate(context.Background(), Request{
		Text:       "Hello",
		SourceLang: "en",
		TargetLang: "es",
		APIKey:     "k",
	})
	if err != nil {
		t.Fatalf("MockProvider.Translate failed: %v", err)
	}
	if got != "Hola" {
		t.Errorf("got %q, want Hola", got)
	}

	got, err = m.Translate(context.Background(), Request{Text: "unmapped", TargetLang: "es", APIKey: "k"})
	if err != nil {
		t.Fatalf("MockProvider.Translate failed: %v", err)
	}
	if got != "[unmapped]" {
		t.Errorf("got %q, want bracketed passthrough", got)
	}

	batch, err := m.TranslateBatch(context.Background(), BatchRequest{
		Texts:      []string{"Hello", "World"},
		TargetLang: "es",
		APIKey:     "k",
	})
	if err != nil {
		t.Fatalf("MockProvider.TranslateBatch failed: %v", err)
	}
	if batch[0] != "Hola" || batch[1] != "Mundo" {
		t.Errorf("got %v", batch)
	}

	if m.CallCount != 2 || m.BatchCalls != 1 {
		t.Errorf("counters = %d single / %d batch", m.CallCount, m.BatchCalls)
	}

	m.Reset()
	if m.CallCount != 0 || m.BatchCalls != 0 || m.LastTexts != nil || m.LastKey != "" {
		t.Error("Reset should clear recorded state")
	}
}
