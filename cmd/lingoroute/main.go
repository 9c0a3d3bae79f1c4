// Command lingoroute translates text from files or stdin.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/lingoroute/lingoroute"
	"github.com/lingoroute/lingoroute/cache"
	"github.com/lingoroute/lingoroute/detect"
	"github.com/lingoroute/lingoroute/provider"
)

// Build-time variables (can be overridden with ldflags)
var (
	version   = lingoroute.Version
	commit    = lingoroute.GitCommit
	buildDate = lingoroute.BuildDate
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("lingoroute", flag.ContinueOnError)
	fs.SetOutput(stderr)

	// Flags
	targetLang := fs.String("target", "", "Target language code (e.g., es, ja)")
	sourceLang := fs.String("source", "", "Source language code (detected when empty)")
	providerName := fs.String("provider", "openai", "Translation provider: openai, anthropic, bulk")
	model := fs.String("model", "", "Model override for LLM providers")
	bulkURL := fs.String("bulk-url", "", "Bulk-translate endpoint URL (default: BULK_TRANSLATE_URL env)")
	redisURL := fs.String("redis", "", "Redis URL for a shared cache (default: REDIS_URL env)")
	cacheFile := fs.String("cache", "", "Cache file to load before and save after translating")
	cacheTTL := fs.Duration("cache-ttl", cache.DefaultTTL, "Cache entry TTL")
	detectOnly := fs.Bool("detect", false, "Detect the input language instead of translating")
	stats := fs.Bool("stats", false, "Print cache statistics after translating")
	showVersion := fs.Bool("version", false, "Show version")
	jsonOutput := fs.Bool("json", false, "Output result as JSON")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *showVersion {
		fmt.Fprintf(stdout, "%s %s\n", lingoroute.Name, version)
		if commit != "unknown" && commit != "" {
			fmt.Fprintf(stdout, "  commit:  %s\n", commit)
		}
		if buildDate != "unknown" && buildDate != "" {
			fmt.Fprintf(stdout, "  built:   %s\n", buildDate)
		}
		return nil
	}

	input, err := readInput(fs.Args())
	if err != nil {
		return err
	}

	if *detectOnly {
		return runDetect(input, stdout, *jsonOutput)
	}

	if *targetLang == "" {
		fs.Usage()
		return fmt.Errorf("--target is required")
	}

	endpoint := *bulkURL
	if endpoint == "" {
		endpoint = os.Getenv("BULK_TRANSLATE_URL")
	}

	translator, err := lingoroute.NewTranslator(
		lingoroute.ProviderName(*providerName),
		envKeyResolver,
		[]lingoroute.Provider{
			provider.NewOpenAIProvider(provider.OpenAIConfig{Model: *model}),
			provider.NewAnthropicProvider(provider.AnthropicConfig{Model: *model}),
			provider.NewBulkProvider(provider.BulkConfig{Endpoint: endpoint}),
		},
	)
	if err != nil {
		return err
	}

	store, err := newStore(*redisURL, *cacheTTL)
	if err != nil {
		return err
	}
	if *cacheFile != "" {
		if _, err := os.Stat(*cacheFile); err == nil {
			if _, err := cache.ImportFromFile(store, *cacheFile, true); err != nil {
				return fmt.Errorf("loading cache: %w", err)
			}
		}
	}

	svc := lingoroute.NewService(translator,
		lingoroute.WithStore(store),
		lingoroute.WithDetector(detect.New()),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	result, err := svc.Translate(ctx, lingoroute.Request{
		Text:       input,
		SourceLang: *sourceLang,
		TargetLang: *targetLang,
	})
	if err != nil {
		return err
	}

	if *cacheFile != "" {
		if err := cache.ExportToFile(store, *cacheFile, nil); err != nil {
			return fmt.Errorf("saving cache: %w", err)
		}
	}

	if *jsonOutput {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]string{
			"target":      *targetLang,
			"translation": result,
		})
	}

	fmt.Fprintln(stdout, result)

	if *stats {
		s := store.Stats()
		fmt.Fprintf(stderr, "cache: %d entries, %d hits, %d misses (%.0f%% hit rate)\n",
			s.Total, s.Hits, s.Misses, s.HitRate*100)
	}

	return nil
}

// newStore returns a Redis-backed cache when a URL is configured, otherwise
// an in-memory one.
func newStore(redisURL string, ttl time.Duration) (cache.Store, error) {
	if redisURL == "" {
		redisURL = os.Getenv("REDIS_URL")
	}
	if redisURL == "" {
		return cache.NewMemoryStore(cache.MemoryConfig{TTL: ttl}), nil
	}

	store, err := cache.NewRedisStore(cache.RedisConfig{URL: redisURL, TTL: ttl})
	if err != nil {
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}
	return store, nil
}

// runDetect classifies the input language and prints the result.
func runDetect(input string, stdout io.Writer, jsonOutput bool) error {
	d := detect.New()

	lang, err := d.Detect(context.Background(), input, false)
	if err != nil {
		return err
	}

	if jsonOutput {
		scores := d.DetectMultiple(input)
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]interface{}{
			"language": lang,
			"scores":   scores,
		})
	}

	fmt.Fprintln(stdout, lang)
	return nil
}

// readInput returns the contents of the named file, or stdin with no args.
func readInput(args []string) (string, error) {
	if len(args) == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return strings.TrimRight(string(data), "\n"), nil
	}

	data, err := os.ReadFile(args[0]) // #nosec G304 - CLI tool reads user-specified files
	if err != nil {
		return "", fmt.Errorf("reading file: %w", err)
	}
	return strings.TrimRight(string(data), "\n"), nil
}

// envKeyResolver resolves provider API keys from the environment. The bulk
// endpoint key is optional in many deployments but still required here so a
// misconfigured run fails before any network call.
func envKeyResolver(name lingoroute.ProviderName, contextID string) (string, bool) {
	var key string
	switch name {
	case lingoroute.ProviderOpenAI:
		key = os.Getenv("OPENAI_API_KEY")
	case lingoroute.ProviderAnthropic:
		key = os.Getenv("ANTHROPIC_API_KEY")
	case lingoroute.ProviderBulk:
		key = os.Getenv("BULK_TRANSLATE_API_KEY")
	}
	return key, key != ""
}
