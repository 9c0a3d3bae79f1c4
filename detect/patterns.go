package detect

import "regexp"

// Matcher counts occurrences of a language's signature in a text sample.
type Matcher interface {
	Matches(sample string) int
}

// regexpMatcher counts non-overlapping matches of a compiled expression.
type regexpMatcher struct {
	re *regexp.Regexp
}

func (m *regexpMatcher) Matches(sample string) int {
	return len(m.re.FindAllStringIndex(sample, -1))
}

// NewWordListMatcher builds a matcher that counts whole-word occurrences of
// a language's function words, case-insensitively. Suited to Latin-alphabet
// languages, where script alone says nothing.
func NewWordListMatcher(words ...string) Matcher {
	pattern := `(?i)\b(?:`
	for i, w := range words {
		if i > 0 {
			pattern += "|"
		}
		pattern += regexp.QuoteMeta(w)
	}
	pattern += `)\b`
	return &regexpMatcher{re: regexp.MustCompile(pattern)}
}

// NewScriptMatcher builds a matcher that counts code points belonging to a
// Unicode script class, e.g. "Han" or "Cyrillic". Three characters of a
// distinctive script are as telling as three function words.
func NewScriptMatcher(scripts ...string) Matcher {
	pattern := `[`
	for _, s := range scripts {
		pattern += `\p{` + s + `}`
	}
	pattern += `]`
	return &regexpMatcher{re: regexp.MustCompile(pattern)}
}

// defaultPatterns is the built-in language pattern table: function-word
// lists for Latin-script languages, script classes for the rest.
func defaultPatterns() map[string]Matcher {
	return map[string]Matcher{
		"en": NewWordListMatcher("the", "and", "is", "are", "was", "were", "have", "has", "not", "with", "this", "that", "for", "you"),
		"es": NewWordListMatcher("el", "la", "los", "las", "es", "son", "que", "una", "por", "con", "para", "pero", "como", "está"),
		"fr": NewWordListMatcher("le", "la", "les", "des", "une", "est", "et", "qui", "dans", "pour", "pas", "vous", "avec", "sur", "ce"),
		"de": NewWordListMatcher("der", "die", "das", "und", "ist", "nicht", "ein", "eine", "ich", "sie", "mit", "für", "auf", "wir", "haben"),
		"it": NewWordListMatcher("il", "lo", "gli", "che", "di", "una", "per", "con", "non", "sono", "del", "della", "anche", "più"),
		"pt": NewWordListMatcher("os", "as", "um", "uma", "não", "com", "para", "por", "em", "mais", "foi", "são", "você", "até"),
		"nl": NewWordListMatcher("de", "het", "een", "van", "niet", "met", "voor", "dat", "zijn", "op", "aan", "ook", "maar"),
		"ru": NewScriptMatcher("Cyrillic"),
		"ar": NewScriptMatcher("Arabic"),
		"he": NewScriptMatcher("Hebrew"),
		"zh": NewScriptMatcher("Han"),
		"ja": NewScriptMatcher("Hiragana", "Katakana"),
		"ko": NewScriptMatcher("Hangul"),
		"hi": NewScriptMatcher("Devanagari"),
		"th": NewScriptMatcher("Thai"),
		"el": NewScriptMatcher("Greek"),
	}
}
