package similarity

import (
	"fmt"
	"reflect"
	"testing"

	"vocabparse/internal/schema"
)

func vocabOf(words ...string) schema.Vocabulary {
	v := make(schema.Vocabulary, len(words))
	for i, w := range words {
		v[i] = schema.VocabularyEntry{Word: w, Definition: "definition of " + w}
	}
	return v
}

func matchWords(matches []Match) []string {
	words := make([]string, len(matches))
	for i, m := range matches {
		words[i] = m.Entry.Word
	}
	return words
}

func TestLevenshteinDistance(t *testing.T) {
	tests := []struct {
		s1, s2   string
		expected int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"abate", "abate", 0},
		{"kitten", "sitting", 3},
		{"abate", "abase", 1},
		{"affable", "afable", 1},
		{"affable", "ineffable", 3},
		{"naïve", "naive", 1},
	}

	for _, tt := range tests {
		result := LevenshteinDistance(tt.s1, tt.s2)
		if result != tt.expected {
			t.Errorf("LevenshteinDistance(%q, %q) = %d, want %d", tt.s1, tt.s2, result, tt.expected)
		}
		if reverse := LevenshteinDistance(tt.s2, tt.s1); reverse != result {
			t.Errorf("LevenshteinDistance is not symmetric for (%q, %q): %d vs %d", tt.s1, tt.s2, result, reverse)
		}
	}
}

func TestIndexInsert(t *testing.T) {
	idx := Build(vocabOf("abate", "abase", "abash", "agile", "affable"))
	if idx.Size() != 5 {
		t.Errorf("Size() = %d, want 5", idx.Size())
	}

	idx.Insert(schema.VocabularyEntry{Word: "abate", Definition: "other"})
	idx.Insert(schema.VocabularyEntry{})
	if idx.Size() != 5 {
		t.Errorf("Size() after duplicate = %d, want 5", idx.Size())
	}

	e, ok := idx.Lookup("abate")
	if !ok || e.Definition != "definition of abate" {
		t.Errorf("Lookup(abate) = %+v, %v; want first entry kept", e, ok)
	}
	if _, ok := idx.Lookup("abbot"); ok {
		t.Error("Lookup(abbot) = true, want false")
	}
}

func TestIndexSearch(t *testing.T) {
	idx := Build(vocabOf("abate", "abase", "abash", "abet", "agile", "affable", "zeal"))

	tests := []struct {
		query    string
		maxDist  int
		expected []string
	}{
		{"abate", 0, []string{"abate"}},
		{"abate", 1, []string{"abate", "abase"}},
		{"abate", 2, []string{"abate", "abase", "abash", "abet"}},
		{"afable", 1, []string{"affable"}},
		{"quixotic", 1, []string{}},
	}

	for _, tt := range tests {
		got := matchWords(idx.Search(tt.query, tt.maxDist))
		if !reflect.DeepEqual(got, tt.expected) {
			t.Errorf("Search(%q, %d) = %v, want %v", tt.query, tt.maxDist, got, tt.expected)
		}
	}
}

func TestIndexSearchOrdering(t *testing.T) {
	idx := Build(vocabOf("zest", "best", "test", "rest", "tent"))

	matches := idx.Search("test", 1)
	got := matchWords(matches)
	want := []string{"test", "best", "rest", "tent", "zest"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Search order = %v, want %v", got, want)
	}
	for _, m := range matches {
		if d := LevenshteinDistance("test", m.Entry.Word); d != m.Distance {
			t.Errorf("Match %q reports distance %d, actual %d", m.Entry.Word, m.Distance, d)
		}
	}
}

func TestIndexSearchMatchesBruteForce(t *testing.T) {
	words := generateWords(500)
	idx := Build(vocabOf(words...))

	for _, query := range []string{"abatf", "wordc", "helpq", "zz"} {
		want := 0
		for _, w := range words {
			if LevenshteinDistance(query, w) <= 2 {
				want++
			}
		}
		if got := len(idx.Search(query, 2)); got != want {
			t.Errorf("Search(%q, 2) returned %d matches, brute force found %d", query, got, want)
		}
	}
}

func TestIndexSearchEmpty(t *testing.T) {
	idx := NewIndex()
	if got := idx.Search("abate", 1); len(got) != 0 {
		t.Errorf("Search on empty index returned %v", got)
	}

	idx = Build(vocabOf("abate"))
	if got := idx.Search("", 1); len(got) != 0 {
		t.Errorf("Search with empty query returned %v", got)
	}
}

func BenchmarkLevenshteinDistance(b *testing.B) {
	for i := 0; i < b.N; i++ {
		LevenshteinDistance("affable", "ineffable")
	}
}

func BenchmarkIndexSearch(b *testing.B) {
	idx := Build(vocabOf(generateWords(10000)...))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		idx.Search("abate", 2)
	}
}

// generateWords creates n distinct test words.
func generateWords(n int) []string {
	base := []string{"abate", "word", "help", "agile", "zeal", "candor"}
	words := make([]string, n)
	for i := 0; i < n; i++ {
		words[i] = fmt.Sprintf("%s%c%c", base[i%len(base)], 'a'+rune(i%26), 'a'+rune((i/26)%26))
	}
	return words
}
