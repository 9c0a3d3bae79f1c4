package detect

import (
	"net/url"
	"strings"

	"github.com/lingoroute/lingoroute"
)

// DetectFromURL infers a language from a URL's first path segment
// ("/en/pricing") or subdomain ("en.example.com"). It is meant for routing
// decisions made before any content is fetched, and returns "" when the URL
// carries no recognizable hint.
func DetectFromURL(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return ""
	}

	for _, segment := range strings.Split(u.Path, "/") {
		if segment == "" {
			continue
		}
		if lang, ok := asLangCode(segment); ok {
			return lang
		}
		break // only the first segment is a language hint
	}

	host := u.Hostname()
	if labels := strings.Split(host, "."); len(labels) > 2 {
		if lang, ok := asLangCode(labels[0]); ok {
			return lang
		}
	}

	return ""
}

// asLangCode reports whether a path segment or host label names a supported
// language. Locale forms ("pt-br") are reduced to their base code.
func asLangCode(s string) (string, bool) {
	base := lingoroute.BaseLang(s)
	if len(base) != 2 || !lingoroute.IsSupported(base) {
		return "", false
	}

	// A bare "en" or "en-us" style token, not a word that happens to start
	// with two letters.
	if len(s) != 2 && !strings.ContainsAny(s, "-_") {
		return "", false
	}
	return base, true
}
