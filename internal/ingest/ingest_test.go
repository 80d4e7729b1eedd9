package ingest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vocabparse/internal/extract"
	"vocabparse/internal/schema"
)

const sampleList = `SAT WORDS WITH DEFINITIONS

affable (adj.) friendly and easy
to talk to (He was affable and warm.)

gregarious (adj.) fond of the company of others
abate (v.) to decrease in intensity (Storms often
aesthetic (adj.) relating to beauty agile (adj.) able to move quickly
agile (adj.)
`

func TestIngestReader(t *testing.T) {
	result, err := IngestReader(strings.NewReader(sampleList), DefaultConfig())
	require.NoError(t, err)

	assert.Equal(t, 5, result.TotalBlocks)
	assert.Equal(t, 4, result.TotalParsed)
	assert.Equal(t, 1, result.TotalMerged)
	assert.Equal(t, 1, result.TotalTruncated)
	assert.Equal(t, 1, result.TotalWithExample)
	assert.Equal(t, 1, result.NoiseLines)
	assert.False(t, result.Parallel)

	words := make([]string, len(result.Entries))
	for i, e := range result.Entries {
		words[i] = e.Word
	}
	assert.Equal(t, []string{"affable", "gregarious", "abate", "aesthetic"}, words)

	assert.Equal(t, schema.VocabularyEntry{
		Word:            "affable",
		PartOfSpeech:    schema.PartOfSpeechAdjective,
		Definition:      "friendly and easy to talk to",
		ExampleSentence: "He was affable and warm.",
	}, result.Entries[0])

	require.Len(t, result.Unparsed, 1)
	assert.Equal(t, Unparsed{Line: 9, Text: "agile (adj.)", Reason: extract.ReasonNoHeader}, result.Unparsed[0])
}

func TestIngestFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "sats.txt")
	require.NoError(t, os.WriteFile(path, []byte(sampleList), 0644))

	result, err := IngestFile(path, DefaultConfig())
	require.NoError(t, err)
	assert.Len(t, result.Entries, 4)
	assert.True(t, filepath.IsAbs(result.SourcePath))
}

func TestIngestFileMissing(t *testing.T) {
	_, err := IngestFile(filepath.Join(t.TempDir(), "missing.txt"), DefaultConfig())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInputNotFound))
	assert.Contains(t, err.Error(), "missing.txt")
}

func generateList(n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		word := wordFor(i)
		switch i % 4 {
		case 0:
			fmt.Fprintf(&b, "%s (adj.) quality number %d\n(The %s thing was plain.)\n\n", word, i, word)
		case 1:
			fmt.Fprintf(&b, "%s (v.) to act in the\n", word)
		case 2:
			fmt.Fprintf(&b, "%s (n.) a thing (Unfinished\n", word)
		default:
			fmt.Fprintf(&b, "%s (adj.)\n", word)
		}
	}
	return b.String()
}

// wordFor maps i to a unique lowercase headword.
func wordFor(i int) string {
	var b []byte
	for {
		b = append(b, byte('a'+i%26))
		i /= 26
		if i == 0 {
			break
		}
	}
	return "w" + string(b)
}

func TestParallelMatchesSequential(t *testing.T) {
	input := generateList(4000)

	seqConfig := DefaultConfig()
	seq, err := IngestReader(strings.NewReader(input), seqConfig)
	require.NoError(t, err)
	assert.False(t, seq.Parallel)

	parConfig := DefaultConfig()
	parConfig.Workers = 4
	parConfig.ChunkSize = 250
	par, err := IngestReader(strings.NewReader(input), parConfig)
	require.NoError(t, err)
	assert.True(t, par.Parallel)

	assert.Equal(t, seq.Entries, par.Entries)
	assert.Equal(t, seq.Unparsed, par.Unparsed)
	assert.Equal(t, 3000, par.TotalParsed)
	assert.Equal(t, 1000, par.TotalTruncated)
}

func TestParallelFallsBackForSmallInput(t *testing.T) {
	config := DefaultConfig()
	config.Workers = 4
	config.ChunkSize = 500

	result, err := IngestReader(strings.NewReader(generateList(100)), config)
	require.NoError(t, err)
	assert.False(t, result.Parallel)
	assert.Equal(t, 75, result.TotalParsed)
}

func TestParallelExtractProgress(t *testing.T) {
	blocks, err := ReadBlocks(strings.NewReader(generateList(1000)))
	require.NoError(t, err)

	x := extract.NewExtractor(extract.DefaultPolicy())

	var calls, lastTotal int
	analyses := ParallelExtract(blocks, x, 3, 100, func(done, total int) {
		calls++
		lastTotal = total
	})

	assert.Len(t, analyses, len(blocks))
	assert.Equal(t, 10, calls)
	assert.Equal(t, 10, lastTotal)
	assert.Equal(t, SequentialExtract(blocks, x), analyses)
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sats.txt")
	require.NoError(t, os.WriteFile(path, []byte(sampleList), 0644))

	agg, err := ReadFile(path)
	require.NoError(t, err)
	assert.Len(t, agg.Blocks, 5)
	assert.Equal(t, 1, agg.Noise)
	assert.Equal(t, 9, agg.Lines)

	result := ExtractBlocks(agg, DefaultConfig(), nil)
	assert.Equal(t, agg.SourcePath, result.SourcePath)
	assert.Equal(t, 4, result.TotalParsed)
}

func TestUsesParallel(t *testing.T) {
	tests := []struct {
		name   string
		config IngestConfig
		blocks int
		want   bool
	}{
		{"single worker", IngestConfig{Workers: 1, ChunkSize: 10}, 100, false},
		{"below two chunks", IngestConfig{Workers: 4, ChunkSize: 10}, 19, false},
		{"two chunks", IngestConfig{Workers: 4, ChunkSize: 10}, 20, true},
		{"no chunk size", IngestConfig{Workers: 4}, 100, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.config.UsesParallel(tt.blocks))
		})
	}
}
