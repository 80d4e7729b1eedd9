package extract

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"vocabparse/internal/normalizer"
)

// State is a position in the block scanning state machine.
type State int

const (
	// AwaitingTag: reading the headword and its parenthesized tag.
	AwaitingTag State = iota
	// InDefinition: at paren depth zero inside the entry body.
	InDefinition
	// InBalancedParen: inside a parenthetical span that has not closed yet.
	InBalancedParen
	// TrailingIncomplete: the body ended inside an unclosed span.
	TrailingIncomplete
)

func (s State) String() string {
	switch s {
	case AwaitingTag:
		return "AwaitingTag"
	case InDefinition:
		return "InDefinition"
	case InBalancedParen:
		return "InBalancedParen"
	case TrailingIncomplete:
		return "TrailingIncomplete"
	}
	return "Unknown"
}

var (
	// mergedEntry matches the start of a second "word (tag) text" entry.
	mergedEntry = regexp.MustCompile(`^\s+(\p{L}+)\s*\(([^()]+)\)\s*\p{Ll}`)
	// secondSense marks where a numbered second sense begins.
	secondSense = regexp.MustCompile(`\s2\.`)
)

// header is the result of the AwaitingTag phase.
type header struct {
	word string
	tag  string
	rest string
}

// splitHeader reads "<word> (tag) rest" or "<word> 1. (tag) rest 2. ...".
// Only the first numbered sense is kept.
func splitHeader(text string) (header, bool) {
	text = strings.TrimSpace(text)

	i := 0
	for i < len(text) {
		r, size := utf8.DecodeRuneInString(text[i:])
		if !unicode.IsLetter(r) {
			break
		}
		i += size
	}
	if i == 0 {
		return header{}, false
	}
	word := text[:i]

	j := skipSpace(text, i)
	numbered := strings.HasPrefix(text[j:], "1.")
	if numbered {
		j = skipSpace(text, j+2)
	}
	if j >= len(text) || text[j] != '(' {
		return header{}, false
	}

	closing := strings.IndexByte(text[j+1:], ')')
	if closing <= 0 {
		return header{}, false
	}
	tag := text[j+1 : j+1+closing]

	k := j + 1 + closing + 1
	if k >= len(text) || !isSpace(text[k]) {
		return header{}, false
	}
	rest := strings.TrimSpace(text[k:])

	if numbered {
		if loc := secondSense.FindStringIndex(rest); loc != nil {
			rest = strings.TrimSpace(rest[:loc[0]])
		}
	}
	if rest == "" {
		return header{}, false
	}

	return header{word: word, tag: tag, rest: rest}, true
}

// span is a balanced top-level parenthetical: indexes of "(" and its ")".
type span struct {
	open  int
	close int
}

// layout describes the body after scanning.
type layout struct {
	text   string // body, truncated at a merged entry if one was found
	spans  []span
	openAt int // outermost unclosed "(" in text, or -1
	state  State
	merged bool
}

// scanBody walks the entry body tracking paren depth. It truncates the body
// at the first merged entry that is not inside an example sentence.
func (x *Extractor) scanBody(rest string) layout {
	out := layout{openAt: -1, state: InDefinition}

	depth := 0
	spanOpen := -1
	pendingCut := -1

	for i := 0; i < len(rest); i++ {
		c := rest[i]

		switch out.state {
		case InDefinition:
			switch {
			case c == '(':
				out.state = InBalancedParen
				depth = 1
				spanOpen = i
				pendingCut = -1
			case isSpace(c) && x.mergedAt(rest, i):
				out.text = rest[:i]
				out.merged = true
				return out
			}

		case InBalancedParen:
			switch {
			case c == '(':
				depth++
			case c == ')':
				depth--
				if depth > 0 {
					continue
				}
				if pendingCut >= 0 && !x.looksLikeExample(rest[spanOpen+1:i]) {
					out.text = rest[:pendingCut]
					out.merged = true
					out.openAt = spanOpen
					out.state = TrailingIncomplete
					return out
				}
				out.spans = append(out.spans, span{open: spanOpen, close: i})
				out.state = InDefinition
				spanOpen = -1
				pendingCut = -1
			case isSpace(c) && pendingCut < 0 && x.mergedAt(rest, i):
				pendingCut = i
			}
		}
	}

	out.text = rest
	if out.state == InBalancedParen {
		if pendingCut >= 0 {
			out.text = rest[:pendingCut]
			out.merged = true
		}
		out.openAt = spanOpen
		out.state = TrailingIncomplete
	}
	return out
}

// mergedAt reports whether a second entry starts at the whitespace at rest[i].
// Capitalized words are treated as proper nouns inside a sentence. Any
// non-empty tag counts, as it does for a block's own header, unless the
// policy restricts merges to known parts of speech.
func (x *Extractor) mergedAt(rest string, i int) bool {
	m := mergedEntry.FindStringSubmatch(rest[i:])
	if m == nil {
		return false
	}
	r, _ := utf8.DecodeRuneInString(m[1])
	if unicode.IsUpper(r) {
		return false
	}
	tag := normalizer.NormalizeTag(m[2])
	if tag == "" {
		return false
	}
	return !x.policy.KnownMergeTags || tag.IsCanonical()
}

// looksLikeExample applies the example-sentence policy to span content.
func (x *Extractor) looksLikeExample(content string) bool {
	content = strings.TrimSpace(content)
	if content == "" {
		return false
	}
	if x.policy.RequireCapitalExample {
		r, _ := utf8.DecodeRuneInString(content)
		if !unicode.IsUpper(r) {
			return false
		}
	}
	return utf8.RuneCountInString(content) > x.policy.MinExampleLength
}

func skipSpace(s string, i int) int {
	for i < len(s) && isSpace(s[i]) {
		i++
	}
	return i
}

// isSpace matches the RE2 \s class.
func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}
