// Package normalizer handles headword folding, tag canonicalization and
// definition cleanup.
package normalizer

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"vocabparse/internal/schema"
)

// charMap maps letters that do not decompose under NFD to ASCII equivalents.
var charMap = map[rune]string{
	'ß': "ss",
	'æ': "ae", 'Æ': "ae",
	'œ': "oe", 'Œ': "oe",
	'ø': "o", 'Ø': "o",
	'ł': "l", 'Ł': "l",
	'ı': "i",
}

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

var alphaPattern = regexp.MustCompile(`^[a-z]+$`)

// NormalizeWord folds a headword to lowercase ASCII where possible.
func NormalizeWord(word string) string {
	var mapped strings.Builder
	mapped.Grow(len(word))
	for _, r := range strings.TrimSpace(word) {
		if ascii, ok := charMap[r]; ok {
			mapped.WriteString(ascii)
			continue
		}
		mapped.WriteRune(unicode.ToLower(r))
	}

	folded, _, err := transform.String(stripMarks, mapped.String())
	if err != nil {
		return mapped.String()
	}
	return folded
}

// IsValidHeadword checks if a normalized headword is ASCII a-z only.
func IsValidHeadword(word string) bool {
	return alphaPattern.MatchString(word)
}

// NormalizeAndValidate normalizes word and returns it if valid, else empty string.
func NormalizeAndValidate(word string) string {
	normalized := NormalizeWord(word)
	if IsValidHeadword(normalized) {
		return normalized
	}
	return ""
}

// NormalizeTag maps a raw parenthesized tag like "adj." or "v. tr." to a
// canonical part of speech. Unrecognized tags come back trimmed; an empty tag
// yields PartOfSpeechNone.
func NormalizeTag(tag string) schema.PartOfSpeech {
	raw := strings.TrimSpace(tag)
	lower := strings.ToLower(raw)

	switch {
	case lower == "":
		return schema.PartOfSpeechNone
	case strings.Contains(lower, "adj"):
		return schema.PartOfSpeechAdjective
	case strings.Contains(lower, "adv"):
		return schema.PartOfSpeechAdverb
	case strings.HasPrefix(lower, "n.") || lower == "n" || strings.Contains(lower, "noun"):
		return schema.PartOfSpeechNoun
	case strings.HasPrefix(lower, "v.") || lower == "v" || strings.Contains(lower, "verb"):
		return schema.PartOfSpeechVerb
	case strings.Contains(lower, "prep"):
		return schema.PartOfSpeechPreposition
	case strings.Contains(lower, "conj"):
		return schema.PartOfSpeechConjunction
	}
	return schema.PartOfSpeech(raw)
}

// DefaultStopwords are tokens a complete definition never ends on.
var DefaultStopwords = []string{
	"the", "a", "an",
	"which", "that", "when", "where", "who", "what", "how",
	"are", "is", "was", "were", "be", "not",
	"to", "of", "in", "on", "at", "for", "with", "from",
	"and", "or", "but", "so", "if", "as",
}

// Articles never end a definition, even one followed by an example.
var Articles = []string{"the", "a", "an"}

// StopwordSet builds a lookup set from words, lower-cased.
func StopwordSet(words []string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[strings.ToLower(strings.TrimSpace(w))] = true
	}
	return set
}

// TrimFragment drops trailing stopwords one at a time. The last remaining
// token is never removed, so a non-empty input stays non-empty.
func TrimFragment(text string, stopwords map[string]bool) string {
	text = strings.TrimSpace(text)
	for {
		idx := strings.LastIndexFunc(text, unicode.IsSpace)
		if idx < 0 {
			return text
		}
		_, size := utf8.DecodeRuneInString(text[idx:])
		last := text[idx+size:]
		if !stopwords[strings.ToLower(last)] {
			return text
		}
		text = strings.TrimRightFunc(text[:idx], unicode.IsSpace)
	}
}

// TrimPunctuation strips trailing commas and then a single trailing period.
func TrimPunctuation(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimRight(text, ",")
	text = strings.TrimSpace(text)
	text = strings.TrimSuffix(text, ".")
	return strings.TrimSpace(text)
}
