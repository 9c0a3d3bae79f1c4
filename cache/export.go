package cache

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"
)

// ExportFormat is the JSON structure for cache export/import. Hit/miss
// counters are deliberately excluded: they are process-lifetime state, not
// cache content.
type ExportFormat struct {
	Version    string            `json:"version"`
	ExportedAt string            `json:"exported_at"`
	Entries    []Entry           `json:"entries"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

// Export writes the store's non-expired entries to w in JSON format.
func Export(store Store, w io.Writer, metadata map[string]string) error {
	export := ExportFormat{
		Version:    "1.0",
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Entries:    store.Snapshot(),
		Metadata:   metadata,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(export); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}

	return nil
}

// ExportToFile exports the store to a file.
// The path is provided by the caller and is intentionally user-controlled.
func ExportToFile(store Store, path string, metadata map[string]string) error {
	f, err := os.Create(path) // #nosec G304 - path is intentionally user-provided
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer f.Close()

	return Export(store, f, metadata)
}

// ImportResult contains statistics about an import operation.
type ImportResult struct {
	Version  string
	Metadata map[string]string
	Imported int
	Skipped  int
}

// Import reads entries from r into the store. With merge false the store is
// cleared first; with merge true imported entries are upserted over the
// existing ones. Expired entries in the payload are skipped.
func Import(store Store, r io.Reader, merge bool) (*ImportResult, error) {
	var export ExportFormat
	if err := json.NewDecoder(r).Decode(&export); err != nil {
		return nil, fmt.Errorf("decoding JSON: %w", err)
	}

	if !merge {
		store.Clear()
	}

	accepted := store.Warm(export.Entries)

	return &ImportResult{
		Version:  export.Version,
		Metadata: export.Metadata,
		Imported: accepted,
		Skipped:  len(export.Entries) - accepted,
	}, nil
}

// ImportFromFile imports cache entries from a file.
// The path is provided by the caller and is intentionally user-controlled.
func ImportFromFile(store Store, path string, merge bool) (*ImportResult, error) {
	f, err := os.Open(path) // #nosec G304 - path is intentionally user-provided
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	return Import(store, f, merge)
}
