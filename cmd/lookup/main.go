// vocabparse-lookup - Fuzzy headword lookup over the vocabulary file.
// Usage: vocabparse-lookup [options] <word>
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"vocabparse/internal/config"
	"vocabparse/internal/normalizer"
	"vocabparse/internal/schema"
	"vocabparse/internal/similarity"

	"github.com/spf13/pflag"
)

func main() {
	vocabPath := pflag.StringP("vocab", "f", config.DefaultOutput(), "Vocabulary JSON file")
	maxDistance := pflag.IntP("distance", "n", 2, "Maximum edit distance")
	limit := pflag.IntP("limit", "l", 10, "Maximum results to show")
	jsonOutput := pflag.BoolP("json", "j", false, "Output as JSON")

	pflag.Parse()

	if pflag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: vocabparse-lookup [options] <word>")
		fmt.Fprintln(os.Stderr, "\nOptions:")
		pflag.PrintDefaults()
		os.Exit(1)
	}

	query := normalizer.NormalizeWord(pflag.Arg(0))

	vocab, err := schema.Load(*vocabPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	index := similarity.Build(vocab)
	results := index.Search(query, *maxDistance)

	if *limit > 0 && len(results) > *limit {
		results = results[:*limit]
	}

	if *jsonOutput {
		output := struct {
			Query   string             `json:"query"`
			MaxDist int                `json:"max_distance"`
			Count   int                `json:"count"`
			Results []similarity.Match `json:"results"`
		}{
			Query:   query,
			MaxDist: *maxDistance,
			Count:   len(results),
			Results: results,
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(output); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if len(results) == 0 {
		fmt.Printf("No matches found for %q within distance %d\n", query, *maxDistance)
		return
	}

	fmt.Printf("Matches for %q (max distance: %d):\n\n", query, *maxDistance)
	for _, r := range results {
		fmt.Println(formatEntry(r))
	}
	fmt.Printf("\n%d result(s) found (%d words indexed)\n", len(results), index.Size())
}

func formatEntry(m similarity.Match) string {
	var b strings.Builder
	fmt.Fprintf(&b, "  %s", m.Entry.Word)
	if m.Entry.PartOfSpeech != schema.PartOfSpeechNone {
		fmt.Fprintf(&b, " (%s)", m.Entry.PartOfSpeech)
	}
	if m.Distance > 0 {
		fmt.Fprintf(&b, " [distance %d]", m.Distance)
	}
	fmt.Fprintf(&b, "\n    %s", m.Entry.Definition)
	if m.Entry.HasExample() {
		fmt.Fprintf(&b, "\n    e.g. %s", m.Entry.ExampleSentence)
	}
	return b.String()
}
