// Package schema defines vocabulary entry and store file structures for vocabparse.
package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// PartOfSpeech is a canonical part-of-speech tag. Unrecognized source tags are
// kept verbatim, so values outside the constants below can occur.
type PartOfSpeech string

const (
	PartOfSpeechNone        PartOfSpeech = ""
	PartOfSpeechNoun        PartOfSpeech = "noun"
	PartOfSpeechVerb        PartOfSpeech = "verb"
	PartOfSpeechAdjective   PartOfSpeech = "adjective"
	PartOfSpeechAdverb      PartOfSpeech = "adverb"
	PartOfSpeechPreposition PartOfSpeech = "preposition"
	PartOfSpeechConjunction PartOfSpeech = "conjunction"
)

// IsCanonical reports whether p is one of the closed set of tags.
func (p PartOfSpeech) IsCanonical() bool {
	switch p {
	case PartOfSpeechNoun, PartOfSpeechVerb, PartOfSpeechAdjective,
		PartOfSpeechAdverb, PartOfSpeechPreposition, PartOfSpeechConjunction:
		return true
	}
	return false
}

// VocabularyEntry is one parsed dictionary entry.
type VocabularyEntry struct {
	Word            string
	PartOfSpeech    PartOfSpeech
	Definition      string
	ExampleSentence string
}

// HasExample reports whether an example sentence was detected.
func (e VocabularyEntry) HasExample() bool {
	return e.ExampleSentence != ""
}

// entryJSON is the wire form; absent fields are null rather than omitted.
type entryJSON struct {
	Word            string  `json:"word"`
	PartOfSpeech    *string `json:"partOfSpeech"`
	Definition      string  `json:"definition"`
	ExampleSentence *string `json:"exampleSentence"`
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// MarshalJSON implements custom JSON marshaling.
func (e VocabularyEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal(entryJSON{
		Word:            e.Word,
		PartOfSpeech:    nullable(string(e.PartOfSpeech)),
		Definition:      e.Definition,
		ExampleSentence: nullable(e.ExampleSentence),
	})
}

// UnmarshalJSON implements custom JSON unmarshaling.
func (e *VocabularyEntry) UnmarshalJSON(data []byte) error {
	var raw entryJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*e = VocabularyEntry{Word: raw.Word, Definition: raw.Definition}
	if raw.PartOfSpeech != nil {
		e.PartOfSpeech = PartOfSpeech(*raw.PartOfSpeech)
	}
	if raw.ExampleSentence != nil {
		e.ExampleSentence = *raw.ExampleSentence
	}
	return nil
}

// Vocabulary is the final, sorted and deduplicated entry collection.
type Vocabulary []VocabularyEntry

// Errors returned by Validate and Load.
var (
	ErrUnsorted        = errors.New("entries are not sorted by word")
	ErrDuplicateWord   = errors.New("duplicate word")
	ErrEmptyDefinition = errors.New("empty definition")
	ErrEmptyStore      = errors.New("vocabulary file holds no entries")
)

// Validate checks the collection invariants: sorted, unique words, non-empty definitions.
func (v Vocabulary) Validate() error {
	for i, e := range v {
		if e.Definition == "" {
			return fmt.Errorf("%w: %q", ErrEmptyDefinition, e.Word)
		}
		if i == 0 {
			continue
		}
		prev := v[i-1].Word
		if prev == e.Word {
			return fmt.Errorf("%w: %q", ErrDuplicateWord, e.Word)
		}
		if prev > e.Word {
			return fmt.Errorf("%w: %q before %q", ErrUnsorted, prev, e.Word)
		}
	}
	return nil
}

// Sort orders entries ascending by word.
func (v Vocabulary) Sort() {
	sort.Slice(v, func(i, j int) bool {
		return v[i].Word < v[j].Word
	})
}

// Words returns the headwords in collection order.
func (v Vocabulary) Words() []string {
	words := make([]string, len(v))
	for i, e := range v {
		words[i] = e.Word
	}
	return words
}

// Save writes the vocabulary as an indented JSON array. Non-ASCII text is kept verbatim.
// The array goes to a temp file in the same directory that is renamed over
// filePath, so a failed save leaves any previous file untouched.
func (v Vocabulary) Save(filePath string) error {
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	file, err := os.CreateTemp(dir, "."+filepath.Base(filePath)+"-*.tmp")
	if err != nil {
		return err
	}
	tmpPath := file.Name()

	if err := v.encode(file); err != nil {
		file.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := file.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, filePath); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}

func (v Vocabulary) encode(file *os.File) error {
	if err := file.Chmod(0644); err != nil {
		return err
	}
	if v == nil {
		v = Vocabulary{}
	}

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(v)
}

// Load reads a vocabulary file written by Save. The file must exist and hold a
// non-empty array.
func Load(filePath string) (Vocabulary, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read vocabulary file: %w", err)
	}

	var v Vocabulary
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("failed to parse vocabulary file %s: %w", filePath, err)
	}
	if len(v) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyStore, filePath)
	}
	return v, nil
}
