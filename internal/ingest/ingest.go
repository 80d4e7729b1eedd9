// Package ingest reads the raw word list and extracts vocabulary entries
// from it.
package ingest

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"vocabparse/internal/extract"
	"vocabparse/internal/schema"
)

// ErrInputNotFound is returned when the input file does not exist.
var ErrInputNotFound = errors.New("input file not found")

// IngestConfig configures ingestion behavior.
type IngestConfig struct {
	Policy    extract.Policy
	Workers   int // parallel extraction workers (<= 1 = sequential)
	ChunkSize int // blocks per worker job
}

// DefaultConfig returns default ingestion config.
func DefaultConfig() IngestConfig {
	return IngestConfig{
		Policy:    extract.DefaultPolicy(),
		Workers:   1,
		ChunkSize: 500,
	}
}

// Unparsed records a block that produced no entry.
type Unparsed struct {
	Line   int
	Text   string
	Reason extract.FailReason
}

// IngestResult holds the result of ingesting a word list.
type IngestResult struct {
	Entries    []schema.VocabularyEntry
	SourcePath string

	TotalLines       int
	TotalBlocks      int
	TotalParsed      int
	TotalMerged      int // blocks truncated at a second entry
	TotalTruncated   int // blocks ending in an unclosed parenthetical
	TotalWithExample int
	NoiseLines       int
	Unparsed         []Unparsed
	Parallel         bool
}

// Aggregation is the Line Aggregator output for one input.
type Aggregation struct {
	Blocks     []RawBlock
	SourcePath string
	Lines      int
	Noise      int
}

// ReadFile aggregates the word list at filePath into blocks.
func ReadFile(filePath string) (*Aggregation, error) {
	if _, err := os.Stat(filePath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrInputNotFound, filePath)
		}
		return nil, fmt.Errorf("failed to stat input: %w", err)
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open input: %w", err)
	}
	defer file.Close()

	agg, err := Read(file)
	if err != nil {
		return nil, err
	}

	agg.SourcePath = filePath
	if abs, err := filepath.Abs(filePath); err == nil {
		agg.SourcePath = abs
	}
	return agg, nil
}

// Read aggregates r into blocks.
func Read(r io.Reader) (*Aggregation, error) {
	scanner := NewBlockScanner(r)
	agg := &Aggregation{}
	for scanner.Scan() {
		agg.Blocks = append(agg.Blocks, scanner.Block())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	agg.Lines = scanner.Lines()
	agg.Noise = scanner.Noise()
	return agg, nil
}

// IngestFile reads and extracts the word list at filePath.
func IngestFile(filePath string, config IngestConfig) (*IngestResult, error) {
	agg, err := ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	return ExtractBlocks(agg, config, nil), nil
}

// IngestReader aggregates r into blocks and extracts an entry from each.
func IngestReader(r io.Reader, config IngestConfig) (*IngestResult, error) {
	agg, err := Read(r)
	if err != nil {
		return nil, err
	}
	return ExtractBlocks(agg, config, nil), nil
}

// ExtractBlocks extracts an entry from each aggregated block. Entries keep
// input order whether or not the worker pool is used.
func ExtractBlocks(agg *Aggregation, config IngestConfig, callback ProgressCallback) *IngestResult {
	blocks := agg.Blocks
	x := extract.NewExtractor(config.Policy)

	result := &IngestResult{
		SourcePath:  agg.SourcePath,
		TotalLines:  agg.Lines,
		TotalBlocks: len(blocks),
		NoiseLines:  agg.Noise,
		Parallel:    config.UsesParallel(len(blocks)),
	}

	var analyses []extract.Analysis
	if result.Parallel {
		analyses = ParallelExtract(blocks, x, config.Workers, config.ChunkSize, callback)
	} else {
		analyses = SequentialExtract(blocks, x)
	}

	result.Entries = make([]schema.VocabularyEntry, 0, len(blocks))
	for i, a := range analyses {
		if a.Merged {
			result.TotalMerged++
		}
		if a.State == extract.TrailingIncomplete {
			result.TotalTruncated++
		}
		if !a.OK {
			result.Unparsed = append(result.Unparsed, Unparsed{
				Line:   blocks[i].Line,
				Text:   blocks[i].Text,
				Reason: a.Reason,
			})
			continue
		}
		if a.Entry.HasExample() {
			result.TotalWithExample++
		}
		result.Entries = append(result.Entries, a.Entry)
	}
	result.TotalParsed = len(result.Entries)

	return result
}

// SequentialExtract analyzes blocks in order on the calling goroutine.
func SequentialExtract(blocks []RawBlock, x *extract.Extractor) []extract.Analysis {
	analyses := make([]extract.Analysis, len(blocks))
	for i, b := range blocks {
		analyses[i] = x.Analyze(b.Text)
	}
	return analyses
}

// UsesParallel reports whether extracting n blocks goes through the worker
// pool. Small inputs stay sequential.
func (c IngestConfig) UsesParallel(n int) bool {
	return c.Workers > 1 && c.ChunkSize > 0 && n >= c.ChunkSize*2
}
