// vocabparse-import - Load the vocabulary file into the SQLite words table.
// Usage: vocabparse-import [--db <path>] [--list [--difficulty easy|medium|hard] [--limit n]]
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"vocabparse/internal/config"
	"vocabparse/internal/schema"
	"vocabparse/internal/store"
	"vocabparse/internal/ui"

	"github.com/pterm/pterm"
	"github.com/spf13/pflag"
)

type options struct {
	vocabPath  string
	dbPath     string
	list       bool
	difficulty string
	limit      int
	quiet      bool
}

func main() {
	var opts options
	pflag.StringVarP(&opts.vocabPath, "input", "i", config.DefaultOutput(), "Vocabulary JSON file")
	pflag.StringVarP(&opts.dbPath, "db", "d", config.DefaultDatabase(), "SQLite database path")
	pflag.BoolVarP(&opts.list, "list", "l", false, "List stored words instead of importing")
	pflag.StringVar(&opts.difficulty, "difficulty", "", "Filter listed words by difficulty (easy, medium, hard)")
	pflag.IntVarP(&opts.limit, "limit", "n", 20, "Maximum words to list (0 = all)")
	pflag.BoolVarP(&opts.quiet, "quiet", "q", false, "Suppress progress output")
	pflag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := run(ctx, opts, os.Stdout)
	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run imports or lists words. Deferred cleanup always runs before main
// decides the exit code.
func run(ctx context.Context, opts options, out io.Writer) error {
	term := ui.New(opts.quiet, false)

	db, err := store.NewStore(opts.dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	if opts.list {
		d, err := store.ParseDifficulty(opts.difficulty)
		if err != nil {
			return err
		}
		words, err := db.List(ctx, store.Filter{Difficulty: d, Limit: opts.limit})
		if err != nil {
			return err
		}
		return printWords(out, words)
	}

	vocab, err := schema.Load(opts.vocabPath)
	if err != nil {
		return err
	}

	spinner := term.Spinner(fmt.Sprintf("Importing %d words...", len(vocab)))
	summary, err := db.Import(ctx, vocab)
	spinner.Stop()
	if err != nil {
		return err
	}

	term.Stats("Import", []ui.Stat{
		{Name: "Imported", Value: summary.Imported},
		{Name: "Skipped", Value: summary.Skipped},
		{Name: "Total in database", Value: summary.Total},
	})
	term.Success(fmt.Sprintf("Words table ready in %s", db.Path()))
	return nil
}

func printWords(out io.Writer, words []store.Word) error {
	if len(words) == 0 {
		_, err := fmt.Fprintln(out, "No words stored")
		return err
	}

	data := pterm.TableData{{"Word", "Part of Speech", "Difficulty", "Definition"}}
	for _, w := range words {
		data = append(data, []string{w.Word, string(w.PartOfSpeech), string(w.Difficulty), w.Definition})
	}
	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, table)
	return err
}
