// Package extract turns one aggregated entry block into a vocabulary entry.
//
// A block looks like "<word> (<tag>) <definition> (<Example sentence.>)".
// The body is scanned once, tracking parenthesis depth, to find the example
// span, cut off entries that were merged onto the same line, and drop
// parentheticals the source left unclosed.
package extract

import (
	"strings"

	"vocabparse/internal/normalizer"
	"vocabparse/internal/schema"
)

// Policy is the configurable heuristic shared by example detection and
// merged-entry rejection.
type Policy struct {
	// MinExampleLength is the rune count a span's content must exceed to
	// count as an example sentence.
	MinExampleLength int
	// RequireCapitalExample requires example content to start uppercase.
	RequireCapitalExample bool
	// Stopwords are trimmed off the end of definitions without an example.
	Stopwords []string
	// KnownMergeTags only cuts a merged entry whose tag normalizes to a
	// known part of speech, so lowercase asides like "(tactless)" stay.
	KnownMergeTags bool
}

// DefaultPolicy returns the thresholds the SAT word list is tuned for.
func DefaultPolicy() Policy {
	return Policy{
		MinExampleLength:      10,
		RequireCapitalExample: true,
		Stopwords:             normalizer.DefaultStopwords,
	}
}

// FailReason says why a block produced no entry.
type FailReason string

const (
	ReasonNone            FailReason = ""
	ReasonNoHeader        FailReason = "no headword and tag"
	ReasonInvalidWord     FailReason = "headword is not alphabetic"
	ReasonEmptyDefinition FailReason = "empty definition"
)

// Analysis is the full outcome of extracting one block.
type Analysis struct {
	Entry  schema.VocabularyEntry
	OK     bool
	Reason FailReason
	// State is where the body scan ended.
	State State
	// Merged is set when a second entry was cut off the body.
	Merged bool
}

// Extractor applies a Policy to entry blocks. It is safe for concurrent use.
type Extractor struct {
	policy    Policy
	stopwords map[string]bool
	articles  map[string]bool
}

// NewExtractor creates an extractor for policy.
func NewExtractor(policy Policy) *Extractor {
	return &Extractor{
		policy:    policy,
		stopwords: normalizer.StopwordSet(policy.Stopwords),
		articles:  normalizer.StopwordSet(normalizer.Articles),
	}
}

// Policy returns the policy the extractor was built with.
func (x *Extractor) Policy() Policy {
	return x.policy
}

// Extract parses text into an entry. ok is false for unparsable blocks,
// which callers skip.
func (x *Extractor) Extract(text string) (schema.VocabularyEntry, bool) {
	a := x.Analyze(text)
	return a.Entry, a.OK
}

// Analyze is Extract with the scanner's diagnostics attached.
func (x *Extractor) Analyze(text string) Analysis {
	h, ok := splitHeader(text)
	if !ok {
		return Analysis{Reason: ReasonNoHeader, State: AwaitingTag}
	}

	word := normalizer.NormalizeAndValidate(h.word)
	if word == "" {
		return Analysis{Reason: ReasonInvalidWord, State: AwaitingTag}
	}

	body := x.scanBody(h.rest)
	a := Analysis{State: body.state, Merged: body.merged}

	definition, example := x.split(body)
	if definition == "" {
		a.Reason = ReasonEmptyDefinition
		return a
	}

	a.OK = true
	a.Entry = schema.VocabularyEntry{
		Word:            word,
		PartOfSpeech:    normalizer.NormalizeTag(h.tag),
		Definition:      definition,
		ExampleSentence: example,
	}
	return a
}

// split separates definition and example. The last balanced span that
// passes the policy, and does not open the body, is the example.
func (x *Extractor) split(body layout) (definition, example string) {
	for i := len(body.spans) - 1; i >= 0; i-- {
		sp := body.spans[i]
		if sp.open == 0 {
			break
		}
		content := body.text[sp.open+1 : sp.close]
		if !x.looksLikeExample(content) {
			continue
		}
		definition = normalizer.TrimPunctuation(x.trimBeforeExample(body.text[:sp.open]))
		return definition, strings.TrimSpace(content)
	}

	text := body.text
	if body.openAt >= 0 {
		text = text[:body.openAt]
	}
	text = normalizer.TrimFragment(text, x.stopwords)
	return normalizer.TrimPunctuation(text), ""
}

// trimBeforeExample keeps a trailing preposition ("easy to talk to") but
// drops a dangling article and the stopwords leading up to it
// ("openness of the").
func (x *Extractor) trimBeforeExample(text string) string {
	text = strings.TrimSpace(text)
	trimmed := normalizer.TrimFragment(text, x.articles)
	if trimmed == text {
		return text
	}
	return normalizer.TrimFragment(trimmed, x.stopwords)
}
