// Package export renders a vocabulary as CSV or YAML.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"vocabparse/internal/schema"
)

// Format is an export encoding.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatYAML Format = "yaml"
)

// Formats lists every supported format.
var Formats = []Format{FormatCSV, FormatYAML}

// ParseFormat accepts csv, yaml or yml.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "csv":
		return FormatCSV, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unknown export format %q (want csv or yaml)", s)
}

// WriteFile renders vocab to path, creating its directory.
func WriteFile(path string, vocab schema.Vocabulary, format Format) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create export dir: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	if err := Write(file, vocab, format); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// Write renders vocab to w in format.
func Write(w io.Writer, vocab schema.Vocabulary, format Format) error {
	switch format {
	case FormatCSV:
		return WriteCSV(w, vocab)
	case FormatYAML:
		return WriteYAML(w, vocab)
	}
	return fmt.Errorf("unknown export format %q", format)
}

var csvHeader = []string{"word", "part_of_speech", "definition", "example_sentence"}

// WriteCSV writes a header row then one row per entry. Absent fields are
// empty cells.
func WriteCSV(w io.Writer, vocab schema.Vocabulary) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for _, e := range vocab {
		row := []string{e.Word, string(e.PartOfSpeech), e.Definition, e.ExampleSentence}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing CSV row %s: %w", e.Word, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV parses output of WriteCSV.
func ReadCSV(r io.Reader) (schema.Vocabulary, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(csvHeader)

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading CSV: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("reading CSV: missing header")
	}

	vocab := make(schema.Vocabulary, 0, len(rows)-1)
	for _, row := range rows[1:] {
		vocab = append(vocab, schema.VocabularyEntry{
			Word:            row[0],
			PartOfSpeech:    schema.PartOfSpeech(row[1]),
			Definition:      row[2],
			ExampleSentence: row[3],
		})
	}
	return vocab, nil
}

// record is the YAML form; absent fields are null, matching the JSON file.
type record struct {
	Word            string  `yaml:"word"`
	PartOfSpeech    *string `yaml:"partOfSpeech"`
	Definition      string  `yaml:"definition"`
	ExampleSentence *string `yaml:"exampleSentence"`
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// WriteYAML writes vocab as a YAML sequence.
func WriteYAML(w io.Writer, vocab schema.Vocabulary) error {
	records := make([]record, len(vocab))
	for i, e := range vocab {
		records[i] = record{
			Word:            e.Word,
			PartOfSpeech:    optional(string(e.PartOfSpeech)),
			Definition:      e.Definition,
			ExampleSentence: optional(e.ExampleSentence),
		}
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return enc.Close()
}

// ReadYAML parses output of WriteYAML.
func ReadYAML(r io.Reader) (schema.Vocabulary, error) {
	var records []record
	if err := yaml.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("unmarshaling YAML: %w", err)
	}

	vocab := make(schema.Vocabulary, len(records))
	for i, rec := range records {
		vocab[i] = schema.VocabularyEntry{Word: rec.Word, Definition: rec.Definition}
		if rec.PartOfSpeech != nil {
			vocab[i].PartOfSpeech = schema.PartOfSpeech(*rec.PartOfSpeech)
		}
		if rec.ExampleSentence != nil {
			vocab[i].ExampleSentence = *rec.ExampleSentence
		}
	}
	return vocab, nil
}
