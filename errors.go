package lingoroute

import "fmt"

// UnsupportedLanguageError indicates a target language this core cannot
// translate into. It is returned before any network call is made.
type UnsupportedLanguageError struct {
	Lang string
}

func (e *UnsupportedLanguageError) Error() string {
	return fmt.Sprintf("unsupported language: %q", e.Lang)
}

// MissingAPIKeyError indicates no API key could be resolved for a provider.
type MissingAPIKeyError struct {
	Provider ProviderName
}

func (e *MissingAPIKeyError) Error() string {
	return fmt.Sprintf("missing API key for provider %q", e.Provider)
}

// InvalidProviderError indicates a provider name with no registered
// implementation (misconfiguration, not a runtime failure).
type InvalidProviderError struct {
	Name ProviderName
}

func (e *InvalidProviderError) Error() string {
	return fmt.Sprintf("invalid provider: %q", e.Name)
}

// ProviderError indicates a remote provider failure: the API reported an
// error, the transport failed, or the call timed out.
type ProviderError struct {
	Provider  ProviderName
	Message   string
	Cause     error
	Retryable bool // Whether the operation can be retried
}

func (e *ProviderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("provider %s: %s: %v", e.Provider, e.Message, e.Cause)
	}
	return fmt.Sprintf("provider %s: %s", e.Provider, e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// InvalidResponseError indicates a provider response that parsed but did not
// contain the expected result field, or contained the wrong number of results.
type InvalidResponseError struct {
	Provider ProviderName
	Message  string
}

func (e *InvalidResponseError) Error() string {
	return fmt.Sprintf("invalid response from %s: %s", e.Provider, e.Message)
}
