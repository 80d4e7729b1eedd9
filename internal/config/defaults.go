// Package config provides centralized configuration defaults for vocabparse.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"vocabparse/internal/extract"
)

// ConfigFile represents the structure of config.toml
type ConfigFile struct {
	Defaults Defaults `toml:"defaults"`
	Extract  Extract  `toml:"extract"`
	Store    Store    `toml:"store"`

	// baseDir is the directory config.toml was found in.
	baseDir string
}

// Defaults holds all default values
type Defaults struct {
	Input     string `toml:"input"`
	Output    string `toml:"output"`
	Dedup     string `toml:"dedup"`
	Parallel  bool   `toml:"parallel"`
	Workers   int    `toml:"workers"`
	ChunkSize int    `toml:"chunk_size"`
	Quiet     bool   `toml:"quiet"`
	Verbose   bool   `toml:"verbose"`
	Metrics   bool   `toml:"metrics"`
}

// Extract holds the entry extractor policy.
type Extract struct {
	MinExampleLength      int      `toml:"min_example_length"`
	RequireCapitalExample bool     `toml:"require_capital_example"`
	Stopwords             []string `toml:"stopwords"`
	KnownMergeTags        bool     `toml:"known_merge_tags"`
}

// Policy converts the section to an extractor policy. An empty stopword
// list selects the built-in one.
func (e Extract) Policy() extract.Policy {
	p := extract.DefaultPolicy()
	p.MinExampleLength = e.MinExampleLength
	p.RequireCapitalExample = e.RequireCapitalExample
	p.KnownMergeTags = e.KnownMergeTags
	if len(e.Stopwords) > 0 {
		p.Stopwords = e.Stopwords
	}
	return p
}

// Store holds the SQLite import target.
type Store struct {
	Database string `toml:"database"`
}

// Hardcoded fallback defaults (used if config.toml not found)
var fallbackDefaults = Defaults{
	Input:     "../Downloads/sats_words_with_definitions.txt",
	Output:    "data/sats_vocab.json",
	Dedup:     "first",
	Parallel:  true,
	Workers:   0,
	ChunkSize: 500,
	Quiet:     false,
	Verbose:   false,
	Metrics:   false,
}

var fallbackExtract = Extract{
	MinExampleLength:      10,
	RequireCapitalExample: true,
}

var fallbackStore = Store{
	Database: "data/vocab.db",
}

// loaded holds the parsed config (nil if not loaded yet)
var loaded *ConfigFile

// Load reads config.toml from the project root
func Load() *ConfigFile {
	if loaded != nil {
		return loaded
	}

	// Try to find config.toml by walking up from executable or cwd
	paths := []string{
		"config.toml",
		"../config.toml",
		"../../config.toml",
	}

	// Also try from executable location
	if exe, err := os.Executable(); err == nil {
		dir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(dir, "config.toml"),
			filepath.Join(dir, "..", "config.toml"),
			filepath.Join(dir, "..", "..", "config.toml"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if cfg, err := LoadFile(path); err == nil {
				loaded = cfg
				return loaded
			}
		}
	}

	// Return fallback if config.toml not found
	loaded = Fallback()
	return loaded
}

// LoadFile decodes a single config file. Keys it leaves out keep their
// fallback values.
func LoadFile(path string) (*ConfigFile, error) {
	cfg := Fallback()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}
	if abs, err := filepath.Abs(filepath.Dir(path)); err == nil {
		cfg.baseDir = abs
	}
	return cfg, nil
}

// Fallback returns the hardcoded configuration.
func Fallback() *ConfigFile {
	cfg := &ConfigFile{
		Defaults: fallbackDefaults,
		Extract:  fallbackExtract,
		Store:    fallbackStore,
	}
	if wd, err := os.Getwd(); err == nil {
		cfg.baseDir = wd
	}
	return cfg
}

// BaseDir is the project directory relative paths resolve against.
func (c *ConfigFile) BaseDir() string {
	return c.baseDir
}

// Resolve makes a relative path absolute against the project directory.
func (c *ConfigFile) Resolve(path string) string {
	if path == "" || filepath.IsAbs(path) || c.baseDir == "" {
		return path
	}
	return filepath.Join(c.baseDir, path)
}

// Convenience accessors that load config on first access
var (
	DefaultBaseDir   = func() string { return Load().BaseDir() }
	DefaultInput     = func() string { return Load().Resolve(Load().Defaults.Input) }
	DefaultOutput    = func() string { return Load().Resolve(Load().Defaults.Output) }
	DefaultDedup     = func() string { return Load().Defaults.Dedup }
	DefaultParallel  = func() bool { return Load().Defaults.Parallel }
	DefaultWorkers   = func() int { return Load().Defaults.Workers }
	DefaultChunkSize = func() int { return Load().Defaults.ChunkSize }
	DefaultQuiet     = func() bool { return Load().Defaults.Quiet }
	DefaultVerbose   = func() bool { return Load().Defaults.Verbose }
	DefaultMetrics   = func() bool { return Load().Defaults.Metrics }
	DefaultDatabase  = func() string { return Load().Resolve(Load().Store.Database) }
	DefaultPolicy    = func() extract.Policy { return Load().Extract.Policy() }
)

// MaxWorkers is the cap for parallel workers
const MaxWorkers = 8
