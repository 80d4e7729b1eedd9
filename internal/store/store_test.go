package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vocabparse/internal/schema"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "data", "vocab.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleVocab() schema.Vocabulary {
	return schema.Vocabulary{
		{Word: "abate", PartOfSpeech: schema.PartOfSpeechVerb, Definition: "to lessen"},
		{Word: "affable", PartOfSpeech: schema.PartOfSpeechAdjective, Definition: "friendly and easy to talk to", ExampleSentence: "He was affable and warm."},
		{Word: "gregarious", PartOfSpeech: schema.PartOfSpeechAdjective, Definition: "fond of the company of others"},
		{Word: "hark", Definition: "listen"},
	}
}

func TestDifficultyOf(t *testing.T) {
	tests := []struct {
		name     string
		entry    schema.VocabularyEntry
		expected Difficulty
	}{
		{"short word short definition", schema.VocabularyEntry{Word: "abate", Definition: "to lessen"}, DifficultyEasy},
		{"short word at definition limit", schema.VocabularyEntry{Word: "abate", Definition: strings.Repeat("x", 50)}, DifficultyEasy},
		{"short word longer definition", schema.VocabularyEntry{Word: "abate", Definition: strings.Repeat("x", 51)}, DifficultyMedium},
		{"medium word", schema.VocabularyEntry{Word: "affable", Definition: "friendly"}, DifficultyMedium},
		{"long word", schema.VocabularyEntry{Word: "gregarious", Definition: "social"}, DifficultyHard},
		{"long definition", schema.VocabularyEntry{Word: "abate", Definition: strings.Repeat("x", 100)}, DifficultyHard},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DifficultyOf(tt.entry))
		})
	}
}

func TestParseDifficulty(t *testing.T) {
	for _, s := range []string{"", "easy", "Medium", " hard "} {
		_, err := ParseDifficulty(s)
		assert.NoError(t, err, s)
	}
	_, err := ParseDifficulty("extreme")
	assert.Error(t, err)
}

func TestNewStoreCreatesSchema(t *testing.T) {
	s := testStore(t)

	var count int
	err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name = 'words'`,
	).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestImport(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	summary, err := s.Import(ctx, sampleVocab())
	require.NoError(t, err)
	assert.Equal(t, ImportSummary{Imported: 4, Skipped: 0, Total: 4}, summary)

	words, err := s.List(ctx, Filter{})
	require.NoError(t, err)
	require.Len(t, words, 4)

	assert.Equal(t, Word{
		VocabularyEntry: schema.VocabularyEntry{
			Word:            "affable",
			PartOfSpeech:    schema.PartOfSpeechAdjective,
			Definition:      "friendly and easy to talk to",
			ExampleSentence: "He was affable and warm.",
		},
		Difficulty: DifficultyMedium,
	}, words[1])
	assert.Equal(t, schema.PartOfSpeechNone, words[3].PartOfSpeech)

	var pos sql.NullString
	require.NoError(t, s.db.QueryRow(`SELECT part_of_speech FROM words WHERE word = 'hark'`).Scan(&pos))
	assert.False(t, pos.Valid, "absent part of speech is stored as NULL")
}

func TestImportReplacesRows(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	_, err := s.Import(ctx, sampleVocab())
	require.NoError(t, err)

	summary, err := s.Import(ctx, []schema.VocabularyEntry{
		{Word: "zeal", PartOfSpeech: schema.PartOfSpeechNoun, Definition: "great energy"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Total)

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestImportSkipsInvalid(t *testing.T) {
	s := testStore(t)

	summary, err := s.Import(context.Background(), []schema.VocabularyEntry{
		{Word: " Abate ", Definition: "to lessen"},
		{Word: "abate", Definition: "to reduce"},
		{Word: "", Definition: "orphan"},
		{Word: "agile"},
	})
	require.NoError(t, err)
	assert.Equal(t, ImportSummary{Imported: 1, Skipped: 3, Total: 1}, summary)

	words, err := s.List(context.Background(), Filter{})
	require.NoError(t, err)
	require.Len(t, words, 1)
	assert.Equal(t, "abate", words[0].Word)
	assert.Equal(t, "to lessen", words[0].Definition)
}

func TestImportCancelled(t *testing.T) {
	s := testStore(t)
	_, err := s.Import(context.Background(), sampleVocab())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = s.Import(ctx, nil)
	assert.Error(t, err)

	n, err := s.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, n, "failed import leaves previous rows")
}

func TestListFilter(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	_, err := s.Import(ctx, sampleVocab())
	require.NoError(t, err)

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"all", Filter{}, []string{"abate", "affable", "gregarious", "hark"}},
		{"easy", Filter{Difficulty: DifficultyEasy}, []string{"abate", "hark"}},
		{"hard", Filter{Difficulty: DifficultyHard}, []string{"gregarious"}},
		{"limit", Filter{Limit: 2}, []string{"abate", "affable"}},
		{"easy limit", Filter{Difficulty: DifficultyEasy, Limit: 1}, []string{"abate"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			words, err := s.List(ctx, tt.filter)
			require.NoError(t, err)

			got := make([]string, len(words))
			for i, w := range words {
				got[i] = w.Word
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
