// Package store loads the vocabulary file into a SQLite words table.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	_ "github.com/mattn/go-sqlite3"

	"vocabparse/internal/schema"
)

// Difficulty is a coarse rating derived from headword and definition length.
type Difficulty string

const (
	DifficultyAny    Difficulty = ""
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// ParseDifficulty accepts easy, medium, hard, or the empty string for any.
func ParseDifficulty(s string) (Difficulty, error) {
	switch d := Difficulty(strings.ToLower(strings.TrimSpace(s))); d {
	case DifficultyAny, DifficultyEasy, DifficultyMedium, DifficultyHard:
		return d, nil
	}
	return DifficultyAny, fmt.Errorf("difficulty must be easy, medium, or hard: %q", s)
}

// DifficultyOf rates an entry: short words with short definitions are easy,
// long words or long definitions are hard.
func DifficultyOf(e schema.VocabularyEntry) Difficulty {
	wordLen := utf8.RuneCountInString(e.Word)
	defLen := utf8.RuneCountInString(e.Definition)

	switch {
	case wordLen <= 5 && defLen <= 50:
		return DifficultyEasy
	case wordLen >= 10 || defLen >= 100:
		return DifficultyHard
	}
	return DifficultyMedium
}

// Word is one row of the words table.
type Word struct {
	schema.VocabularyEntry
	Difficulty Difficulty
}

// Store manages the vocabulary SQLite database.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens or creates the database at path and its schema.
func NewStore(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS words (
			word TEXT PRIMARY KEY,
			part_of_speech TEXT,
			definition TEXT NOT NULL,
			example_sentence TEXT,
			difficulty TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_words_difficulty ON words(difficulty)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// ImportSummary holds counts from an import run.
type ImportSummary struct {
	Imported int
	Skipped  int
	Total    int // rows in the table afterwards
}

// Import replaces every row with entries in one transaction. Entries
// missing a word or definition are skipped, as are repeated words.
func (s *Store) Import(ctx context.Context, entries []schema.VocabularyEntry) (ImportSummary, error) {
	var summary ImportSummary

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return summary, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM words`); err != nil {
		return summary, fmt.Errorf("clearing words: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR IGNORE INTO words (word, part_of_speech, definition, example_sentence, difficulty)
		 VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return summary, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range entries {
		word := strings.ToLower(strings.TrimSpace(e.Word))
		if word == "" || e.Definition == "" {
			summary.Skipped++
			continue
		}
		e.Word = word

		res, err := stmt.ExecContext(ctx,
			word,
			nullString(string(e.PartOfSpeech)),
			e.Definition,
			nullString(e.ExampleSentence),
			string(DifficultyOf(e)),
		)
		if err != nil {
			return summary, fmt.Errorf("inserting word %s: %w", word, err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			summary.Skipped++
			continue
		}
		summary.Imported++
	}

	if err := tx.QueryRowContext(ctx, `SELECT count(*) FROM words`).Scan(&summary.Total); err != nil {
		return summary, fmt.Errorf("counting words: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return summary, fmt.Errorf("committing import: %w", err)
	}
	return summary, nil
}

// Filter narrows List results.
type Filter struct {
	Difficulty Difficulty
	Limit      int // <= 0 means no limit
}

// List returns rows matching filter, ordered by word.
func (s *Store) List(ctx context.Context, filter Filter) ([]Word, error) {
	var (
		query strings.Builder
		args  []interface{}
	)
	query.WriteString(`SELECT word, part_of_speech, definition, example_sentence, difficulty FROM words`)
	if filter.Difficulty != DifficultyAny {
		query.WriteString(` WHERE difficulty = ?`)
		args = append(args, string(filter.Difficulty))
	}
	query.WriteString(` ORDER BY word`)
	if filter.Limit > 0 {
		query.WriteString(` LIMIT ?`)
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying words: %w", err)
	}
	defer rows.Close()

	var words []Word
	for rows.Next() {
		var (
			w          Word
			pos, ex    sql.NullString
			difficulty string
		)
		if err := rows.Scan(&w.Word, &pos, &w.Definition, &ex, &difficulty); err != nil {
			return nil, fmt.Errorf("scanning word: %w", err)
		}
		w.PartOfSpeech = schema.PartOfSpeech(pos.String)
		w.ExampleSentence = ex.String
		w.Difficulty = Difficulty(difficulty)
		words = append(words, w)
	}
	return words, rows.Err()
}

// Count returns the number of rows in the words table.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM words`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting words: %w", err)
	}
	return n, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
