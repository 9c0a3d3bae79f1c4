package lingoroute

import "strings"

// LanguageNames maps ISO 639-1 codes to human-readable names for provider
// prompts and error messages.
var LanguageNames = map[string]string{
	"en": "English",
	"es": "Spanish",
	"fr": "French",
	"de": "German",
	"it": "Italian",
	"pt": "Portuguese",
	"nl": "Dutch",
	"pl": "Polish",
	"sv": "Swedish",
	"da": "Danish",
	"no": "Norwegian",
	"fi": "Finnish",
	"cs": "Czech",
	"ro": "Romanian",
	"hu": "Hungarian",
	"el": "Greek",
	"tr": "Turkish",
	"ru": "Russian",
	"uk": "Ukrainian",
	"bg": "Bulgarian",
	"ar": "Arabic",
	"he": "Hebrew",
	"fa": "Persian",
	"hi": "Hindi",
	"th": "Thai",
	"vi": "Vietnamese",
	"id": "Indonesian",
	"ms": "Malay",
	"zh": "Chinese",
	"ja": "Japanese",
	"ko": "Korean",
}

// BaseLang extracts the base language code from a locale tag
// (e.g., "en" from "en_US" or "pt-BR").
func BaseLang(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if idx := strings.IndexAny(lang, "-_"); idx >= 0 {
		lang = lang[:idx]
	}
	return lang
}

// IsSupported reports whether translations into lang are available.
// Locale variants of supported languages are accepted ("pt_BR", "zh-TW").
func IsSupported(lang string) bool {
	_, ok := LanguageNames[BaseLang(lang)]
	return ok
}

// GetLanguageName returns the human-readable name for a language code.
// Falls back to the code itself if not found.
func GetLanguageName(lang string) string {
	if name, ok := LanguageNames[BaseLang(lang)]; ok {
		return name
	}
	return lang
}

// SameLanguage reports whether two codes denote the same base language,
// ignoring case and locale region ("en" == "en_US").
func SameLanguage(a, b string) bool {
	return BaseLang(a) == BaseLang(b)
}
