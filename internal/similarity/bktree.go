// Package similarity provides fuzzy headword lookup using a BK-tree.
package similarity

import (
	"sort"

	"vocabparse/internal/schema"
)

// Index is a BK-tree over headwords. Each node carries its vocabulary entry,
// so a fuzzy match returns the definition directly.
type Index struct {
	root  *bkNode
	exact map[string]schema.VocabularyEntry
}

type bkNode struct {
	entry    schema.VocabularyEntry
	children map[int]*bkNode
}

// NewIndex creates an empty index.
func NewIndex() *Index {
	return &Index{exact: make(map[string]schema.VocabularyEntry)}
}

// Build indexes every entry of vocab.
func Build(vocab schema.Vocabulary) *Index {
	idx := NewIndex()
	for _, e := range vocab {
		idx.Insert(e)
	}
	return idx
}

// Insert adds an entry keyed by its word. A word already present keeps its
// first entry.
func (t *Index) Insert(e schema.VocabularyEntry) {
	if e.Word == "" {
		return
	}
	if _, ok := t.exact[e.Word]; ok {
		return
	}
	t.exact[e.Word] = e

	node := &bkNode{entry: e, children: make(map[int]*bkNode)}
	if t.root == nil {
		t.root = node
		return
	}

	current := t.root
	for {
		dist := LevenshteinDistance(e.Word, current.entry.Word)
		child, exists := current.children[dist]
		if !exists {
			current.children[dist] = node
			return
		}
		current = child
	}
}

// Match is a search hit with its edit distance from the query.
type Match struct {
	Entry    schema.VocabularyEntry `json:"entry"`
	Distance int                    `json:"distance"`
}

// Search finds entries within maxDistance edits of query, closest first and
// alphabetical within a distance.
func (t *Index) Search(query string, maxDistance int) []Match {
	if t.root == nil || query == "" {
		return nil
	}

	var matches []Match
	t.searchNode(t.root, query, maxDistance, &matches)

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Distance != matches[j].Distance {
			return matches[i].Distance < matches[j].Distance
		}
		return matches[i].Entry.Word < matches[j].Entry.Word
	})
	return matches
}

func (t *Index) searchNode(node *bkNode, query string, maxDistance int, matches *[]Match) {
	dist := LevenshteinDistance(query, node.entry.Word)
	if dist <= maxDistance {
		*matches = append(*matches, Match{Entry: node.entry, Distance: dist})
	}

	// triangle inequality bounds the children worth visiting
	for childDist, child := range node.children {
		if childDist >= dist-maxDistance && childDist <= dist+maxDistance {
			t.searchNode(child, query, maxDistance, matches)
		}
	}
}

// Lookup returns the entry for an exact headword.
func (t *Index) Lookup(word string) (schema.VocabularyEntry, bool) {
	e, ok := t.exact[word]
	return e, ok
}

// Size returns the number of indexed words.
func (t *Index) Size() int {
	return len(t.exact)
}

// LevenshteinDistance calculates the edit distance between two strings
// using two rows of the matrix.
func LevenshteinDistance(s1, s2 string) int {
	if s1 == s2 {
		return 0
	}

	r1 := []rune(s1)
	r2 := []rune(s2)
	if len(r1) > len(r2) {
		r1, r2 = r2, r1
	}
	if len(r1) == 0 {
		return len(r2)
	}

	prev := make([]int, len(r1)+1)
	curr := make([]int, len(r1)+1)
	for i := range prev {
		prev[i] = i
	}

	for j := 1; j <= len(r2); j++ {
		curr[0] = j
		for i := 1; i <= len(r1); i++ {
			cost := 1
			if r1[i-1] == r2[j-1] {
				cost = 0
			}
			curr[i] = min(prev[i]+1, curr[i-1]+1, prev[i-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[len(r1)]
}
