// Package builder merges extracted entries into the final vocabulary file.
package builder

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"vocabparse/internal/schema"
)

// DedupPolicy decides which entry survives when a headword repeats.
type DedupPolicy int

const (
	// DedupFirst keeps the first occurrence in input order.
	DedupFirst DedupPolicy = iota
	// DedupLongest lets a later duplicate win when its definition is
	// strictly longer.
	DedupLongest
)

func (p DedupPolicy) String() string {
	switch p {
	case DedupFirst:
		return "first"
	case DedupLongest:
		return "longest"
	}
	return fmt.Sprintf("DedupPolicy(%d)", int(p))
}

// ParseDedupPolicy parses "first" or "longest".
func ParseDedupPolicy(s string) (DedupPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "first":
		return DedupFirst, nil
	case "longest":
		return DedupLongest, nil
	}
	return DedupFirst, fmt.Errorf("unknown dedup policy %q (want first or longest)", s)
}

// Merge deduplicates entries by word and sorts the result ascending.
// Merging an already merged vocabulary returns it unchanged.
func Merge(entries []schema.VocabularyEntry, policy DedupPolicy) schema.Vocabulary {
	byWord := make(map[string]int, len(entries))
	merged := make(schema.Vocabulary, 0, len(entries))

	for _, e := range entries {
		idx, ok := byWord[e.Word]
		if !ok {
			byWord[e.Word] = len(merged)
			merged = append(merged, e)
			continue
		}
		if policy == DedupLongest && definitionLen(e) > definitionLen(merged[idx]) {
			merged[idx] = e
		}
	}

	merged.Sort()
	return merged
}

func definitionLen(e schema.VocabularyEntry) int {
	return utf8.RuneCountInString(e.Definition)
}

// BuildStats holds statistics from a build operation.
type BuildStats struct {
	TotalInput     int
	TotalWords     int
	Duplicates     int
	WithExample    int
	ByPartOfSpeech map[string]int
	FilesWritten   []string
}

// NewBuildStats creates a new BuildStats.
func NewBuildStats() *BuildStats {
	return &BuildStats{
		ByPartOfSpeech: make(map[string]int),
	}
}

// VocabularyBuilder collects entries and writes the merged store file.
type VocabularyBuilder struct {
	OutputPath string
	Policy     DedupPolicy
	entries    []schema.VocabularyEntry
}

// NewVocabularyBuilder creates a new VocabularyBuilder.
func NewVocabularyBuilder(outputPath string, policy DedupPolicy) *VocabularyBuilder {
	return &VocabularyBuilder{
		OutputPath: outputPath,
		Policy:     policy,
	}
}

// AddEntries appends entries in input order.
func (b *VocabularyBuilder) AddEntries(entries []schema.VocabularyEntry) {
	b.entries = append(b.entries, entries...)
}

// Len returns the number of entries added so far.
func (b *VocabularyBuilder) Len() int {
	return len(b.entries)
}

// Merge deduplicates and sorts the collected entries without writing them.
func (b *VocabularyBuilder) Merge() (schema.Vocabulary, *BuildStats) {
	vocab := Merge(b.entries, b.Policy)
	return vocab, Stats(vocab, len(b.entries))
}

// Write saves vocab to OutputPath and records the file in stats.
func (b *VocabularyBuilder) Write(vocab schema.Vocabulary, stats *BuildStats) error {
	if err := vocab.Save(b.OutputPath); err != nil {
		return fmt.Errorf("failed to write vocabulary: %w", err)
	}
	stats.FilesWritten = append(stats.FilesWritten, b.OutputPath)
	return nil
}

// Build merges the collected entries and writes them to OutputPath.
func (b *VocabularyBuilder) Build() (schema.Vocabulary, *BuildStats, error) {
	vocab, stats := b.Merge()
	if err := b.Write(vocab, stats); err != nil {
		return vocab, stats, err
	}
	return vocab, stats, nil
}

// Stats summarizes a merged vocabulary built from total input entries.
func Stats(vocab schema.Vocabulary, total int) *BuildStats {
	stats := NewBuildStats()
	stats.TotalInput = total
	stats.TotalWords = len(vocab)
	stats.Duplicates = total - len(vocab)

	for _, e := range vocab {
		pos := string(e.PartOfSpeech)
		if pos == "" {
			pos = "none"
		}
		stats.ByPartOfSpeech[pos]++
		if e.HasExample() {
			stats.WithExample++
		}
	}
	return stats
}
