// Package provider implements the remote translation backends.
package provider

import (
	"strings"

	"github.com/lingoroute/lingoroute"
)

// Provider is the interface for translation backends.
// This is an alias to the main package interface for convenience.
type Provider = lingoroute.Provider

// BatchProvider is an alias to the main package interface.
type BatchProvider = lingoroute.BatchProvider

// Request is an alias to the main package type.
type Request = lingoroute.ProviderRequest

// BatchRequest is an alias to the main package type.
type BatchRequest = lingoroute.BatchRequest

// isRetryableError classifies transport-level failures worth retrying.
func isRetryableError(err error) bool {
	errStr := strings.ToLower(err.Error())
	retryablePatterns := []string{
		"rate limit",
		"timeout",
		"deadline exceeded",
		"connection refused",
		"connection reset",
		"temporary",
		"503",
		"502",
		"429",
	}

	for _, pattern := range retryablePatterns {
		if strings.Contains(errStr, pattern) {
			return true
		}
	}
	return false
}

// instruction builds the natural-language translation prompt shared by the
// chat-completion and messages providers.
func instruction(text, sourceLang, targetLang string) string {
	source := lingoroute.GetLanguageName(sourceLang)
	target := lingoroute.GetLanguageName(targetLang)
	return "Translate the following text from " + source + " to " + target +
		". Respond with only the translation, nothing else.\n\n" + text
}
