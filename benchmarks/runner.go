// Benchmark runner for vocabparse.
// Run with: go run runner.go [options]
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

type Config struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Parallel bool   `json:"parallel"`
	Workers  int    `json:"workers"`
	Dedup    string `json:"dedup,omitempty"`
}

type Group struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Input       string   `json:"input"`
	Configs     []Config `json:"configs"`
}

type ConfigFile struct {
	Groups []Group `json:"groups"`
}

type BenchmarkResult struct {
	ConfigID   string  `json:"config_id"`
	Group      string  `json:"group"`
	Input      string  `json:"input"`
	DurationMs int64   `json:"duration_ms"`
	Throughput float64 `json:"throughput"`
	Blocks     int     `json:"blocks"`
	Entries    int     `json:"entries"`
	Parallel   bool    `json:"parallel"`
	Workers    int     `json:"workers"`
}

func main() {
	configPath := flag.String("config", "configs.json", "Path to benchmark configs")
	outputDir := flag.String("output", "results", "Output directory for results")
	group := flag.String("group", "", "Run only this group (empty = all)")
	iterations := flag.Int("iterations", 1, "Number of iterations per config")
	flag.Parse()

	data, err := os.ReadFile(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading config: %v\n", err)
		os.Exit(1)
	}

	var cfg ConfigFile
	if err := json.Unmarshal(data, &cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing config: %v\n", err)
		os.Exit(1)
	}

	binary := findBinary()
	if binary == "" {
		fmt.Fprintln(os.Stderr, "Error: vocabparse binary not found. Build with 'go build -o vocabparse ./cmd' first.")
		os.Exit(1)
	}

	scratch, err := os.MkdirTemp("", "vocabparse-bench-")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating scratch dir: %v\n", err)
		os.Exit(1)
	}
	defer os.RemoveAll(scratch)

	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output dir: %v\n", err)
		os.Exit(1)
	}

	var results []BenchmarkResult
	total := countConfigs(cfg.Groups, *group)
	current := 0

	for _, g := range cfg.Groups {
		if *group != "" && g.Name != *group {
			continue
		}

		fmt.Printf("\n=== Group: %s (%s) ===\n", g.Name, g.Description)
		fmt.Printf("Input: %s\n", g.Input)

		for _, c := range g.Configs {
			current++
			fmt.Printf("\n[%d/%d] Running: %s\n", current, total, c.Name)

			var durations []int64
			var lastResult BenchmarkResult

			for i := 0; i < *iterations; i++ {
				if *iterations > 1 {
					fmt.Printf("  Iteration %d/%d...", i+1, *iterations)
				}

				output := filepath.Join(scratch, c.ID, "sats_vocab.json")
				result, err := runBenchmark(binary, g, c, output)
				if err != nil {
					fmt.Printf(" ERROR: %v\n", err)
					continue
				}

				durations = append(durations, result.DurationMs)
				lastResult = result

				if *iterations > 1 {
					fmt.Printf(" %dms\n", result.DurationMs)
				} else {
					fmt.Printf("  Duration: %dms, Blocks: %d, Entries: %d\n",
						result.DurationMs, result.Blocks, result.Entries)
				}
			}

			if len(durations) > 0 {
				if *iterations > 1 {
					var sum int64
					for _, d := range durations {
						sum += d
					}
					lastResult.DurationMs = sum / int64(len(durations))
					fmt.Printf("  Average: %dms\n", lastResult.DurationMs)
				}
				results = append(results, lastResult)
			}
		}
	}

	resultsFile := filepath.Join(*outputDir, fmt.Sprintf("benchmark_%s.json",
		time.Now().Format("2006-01-02_15-04-05")))

	output := map[string]interface{}{
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
		"iterations": *iterations,
		"results":    results,
	}

	data, _ = json.MarshalIndent(output, "", "  ")
	if err := os.WriteFile(resultsFile, data, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing results: %v\n", err)
	} else {
		fmt.Printf("\nResults written to: %s\n", resultsFile)
	}

	printSummary(results)
}

func findBinary() string {
	candidates := []string{
		"../vocabparse",
		"../vocabparse.exe",
		"vocabparse",
		"vocabparse.exe",
	}

	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c
		}
	}

	path, err := exec.LookPath("vocabparse")
	if err == nil {
		return path
	}

	return ""
}

func countConfigs(groups []Group, filter string) int {
	count := 0
	for _, g := range groups {
		if filter != "" && g.Name != filter {
			continue
		}
		count += len(g.Configs)
	}
	return count
}

func runBenchmark(binary string, g Group, c Config, output string) (BenchmarkResult, error) {
	args := []string{
		"--benchmark",
		"--input", g.Input,
		"--output", output,
		"--workers", fmt.Sprintf("%d", c.Workers),
	}

	if c.Parallel {
		args = append(args, "--parallel")
	} else {
		args = append(args, "--parallel=false")
	}
	if c.Dedup != "" {
		args = append(args, "--dedup", c.Dedup)
	}

	cmd := exec.Command(binary, args...)
	out, err := cmd.Output()
	if err != nil {
		return BenchmarkResult{}, fmt.Errorf("command failed: %w", err)
	}

	var result struct {
		RunID      string  `json:"run_id"`
		DurationMs int64   `json:"duration_ms"`
		Throughput float64 `json:"throughput"`
		Blocks     int     `json:"blocks"`
		Entries    int     `json:"entries"`
		Files      int     `json:"files"`
		Parallel   bool    `json:"parallel"`
		Workers    int     `json:"workers"`
	}

	if err := json.Unmarshal(out, &result); err != nil {
		return BenchmarkResult{}, fmt.Errorf("failed to parse output: %w (output: %s)", err, string(out))
	}

	return BenchmarkResult{
		ConfigID:   c.ID,
		Group:      g.Name,
		Input:      g.Input,
		DurationMs: result.DurationMs,
		Throughput: result.Throughput,
		Blocks:     result.Blocks,
		Entries:    result.Entries,
		Parallel:   result.Parallel,
		Workers:    result.Workers,
	}, nil
}

func printSummary(results []BenchmarkResult) {
	if len(results) == 0 {
		return
	}

	fmt.Println("\n" + strings.Repeat("=", 70))
	fmt.Println("BENCHMARK SUMMARY")
	fmt.Println(strings.Repeat("=", 70))
	fmt.Printf("%-30s %10s %10s %8s\n", "Config", "Duration", "Entries", "Speedup")
	fmt.Println(strings.Repeat("-", 70))

	groups := make(map[string][]BenchmarkResult)
	var order []string
	for _, r := range results {
		if _, ok := groups[r.Group]; !ok {
			order = append(order, r.Group)
		}
		groups[r.Group] = append(groups[r.Group], r)
	}

	for _, groupName := range order {
		groupResults := groups[groupName]
		fmt.Printf("\n[%s]\n", groupName)

		// Sequential run is the baseline
		var baseline int64
		for _, r := range groupResults {
			if !r.Parallel {
				baseline = r.DurationMs
				break
			}
		}

		for _, r := range groupResults {
			speedup := "-"
			if baseline > 0 && r.DurationMs > 0 {
				speedup = fmt.Sprintf("%.2fx", float64(baseline)/float64(r.DurationMs))
			}

			name := r.ConfigID
			if len(name) > 30 {
				name = name[:27] + "..."
			}

			fmt.Printf("%-30s %8dms %10d %8s\n",
				name, r.DurationMs, r.Entries, speedup)
		}
	}

	fmt.Println(strings.Repeat("=", 70))
}
