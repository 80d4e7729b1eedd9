// vocabparse-export - Render the vocabulary file as CSV or YAML.
// Usage: vocabparse-export [-f csv|yaml|all] [-o <output-dir>]
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"vocabparse/internal/config"
	"vocabparse/internal/export"
	"vocabparse/internal/schema"

	"github.com/spf13/pflag"
)

func main() {
	vocabPath := pflag.StringP("input", "i", config.DefaultOutput(), "Vocabulary JSON file")
	outputDir := pflag.StringP("output", "o", "", "Output directory (default: <input dir>/export)")
	format := pflag.StringP("format", "f", "all", "Export format: csv, yaml or all")
	toStdout := pflag.Bool("stdout", false, "Write a single format to stdout")
	pflag.Parse()

	formats, err := parseFormats(*format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	vocab, err := schema.Load(*vocabPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *toStdout {
		if len(formats) != 1 {
			fmt.Fprintln(os.Stderr, "Error: --stdout needs a single --format")
			os.Exit(1)
		}
		if err := export.Write(os.Stdout, vocab, formats[0]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if *outputDir == "" {
		*outputDir = filepath.Join(filepath.Dir(*vocabPath), "export")
	}

	base := strings.TrimSuffix(filepath.Base(*vocabPath), filepath.Ext(*vocabPath))

	fmt.Printf("Exporting %s\n\n", *vocabPath)
	for _, f := range formats {
		path := filepath.Join(*outputDir, base+"."+string(f))
		if err := export.WriteFile(path, vocab, f); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("  %s: %d words -> %s\n", f, len(vocab), path)
	}
	fmt.Printf("\nOutput: %s/\n", *outputDir)
}

func parseFormats(s string) ([]export.Format, error) {
	if strings.EqualFold(strings.TrimSpace(s), "all") {
		return export.Formats, nil
	}
	f, err := export.ParseFormat(s)
	if err != nil {
		return nil, err
	}
	return []export.Format{f}, nil
}
