// vocabparse CLI - SAT word list parser.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"vocabparse/internal/builder"
	"vocabparse/internal/config"
	"vocabparse/internal/ingest"
	"vocabparse/internal/metrics"
	"vocabparse/internal/ui"

	"github.com/pterm/pterm"
	"github.com/spf13/pflag"
)

func main() {
	// Flags
	input := pflag.StringP("input", "i", config.DefaultInput(), "Raw SAT word list")
	output := pflag.StringP("output", "o", config.DefaultOutput(), "Vocabulary JSON file to write")
	dedup := pflag.String("dedup", config.DefaultDedup(), "Duplicate headword policy (first, longest)")
	quiet := pflag.BoolP("quiet", "q", config.DefaultQuiet(), "Suppress progress output")
	verbose := pflag.BoolP("verbose", "v", config.DefaultVerbose(), "Verbose logging")
	writeMetrics := pflag.Bool("metrics", config.DefaultMetrics(), "Write metrics next to the output file")
	benchmark := pflag.Bool("benchmark", false, "Run in benchmark mode (JSON output only)")

	// Parallel processing flags
	parallel := pflag.BoolP("parallel", "p", config.DefaultParallel(), "Enable parallel extraction")
	workers := pflag.IntP("workers", "w", config.DefaultWorkers(), "Number of extraction workers (0 = auto)")

	pflag.Parse()

	policy, err := builder.ParseDedupPolicy(*dedup)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	*workers = resolveWorkers(*parallel, *workers)

	term := ui.New(*quiet || *benchmark, *verbose)
	fail := func(err error) {
		if *quiet || *benchmark {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		} else {
			term.Error(err.Error())
		}
		os.Exit(1)
	}

	if !*benchmark {
		term.Banner()
	}

	collector := metrics.NewCollector()
	collector.SetConfigMap(map[string]interface{}{
		"input":      *input,
		"output":     *output,
		"dedup":      policy.String(),
		"parallel":   *parallel,
		"workers":    *workers,
		"chunk_size": config.DefaultChunkSize(),
	})

	if !*benchmark {
		term.Config(ui.RunConfig{
			BaseDir: config.DefaultBaseDir(),
			Input:   *input,
			Output:  *output,
			Dedup:   policy.String(),
			Workers: *workers,
		})
	}

	// Phase 1: Aggregate lines into blocks
	collector.StartStage(metrics.StageAggregate)
	if !*benchmark {
		term.Phase(1, 3, "Aggregating entry blocks")
	}

	agg, err := ingest.ReadFile(*input)
	if err != nil {
		if errors.Is(err, ingest.ErrInputNotFound) {
			fail(fmt.Errorf("%v (use --input or set defaults.input in config.toml)", err))
		}
		fail(err)
	}

	collector.EndStage(metrics.StageAggregate)
	collector.SetStageCounter(metrics.StageAggregate, "lines", int64(agg.Lines))
	collector.SetStageCounter(metrics.StageAggregate, "blocks", int64(len(agg.Blocks)))
	collector.SetStageCounter(metrics.StageAggregate, "noise_lines", int64(agg.Noise))

	if !*benchmark {
		term.Status("read", "ok", fmt.Sprintf("%d lines, %d blocks", agg.Lines, len(agg.Blocks)))
		if agg.Noise > 0 {
			term.Status("read", "skip", fmt.Sprintf("%d lines before the first entry", agg.Noise))
		}
	}

	// Phase 2: Extract entries
	collector.StartStage(metrics.StageExtract)
	if !*benchmark {
		term.Phase(2, 3, "Extracting entries")
	}

	ingestConfig := ingest.IngestConfig{
		Policy:    config.DefaultPolicy(),
		Workers:   *workers,
		ChunkSize: config.DefaultChunkSize(),
	}

	var callback ingest.ProgressCallback
	if !*benchmark && ingestConfig.UsesParallel(len(agg.Blocks)) {
		term.Info(fmt.Sprintf("Parallel mode: %d workers", *workers))
		chunks := (len(agg.Blocks) + ingestConfig.ChunkSize - 1) / ingestConfig.ChunkSize
		bar := term.Progress("Extracting", chunks)
		callback = func(done, total int) {
			bar.Increment()
			if done == total {
				bar.Stop()
			}
		}
	}

	result := ingest.ExtractBlocks(agg, ingestConfig, callback)

	collector.EndStage(metrics.StageExtract)
	collector.SetStageCounter(metrics.StageExtract, "parsed", int64(result.TotalParsed))
	collector.SetStageCounter(metrics.StageExtract, "unparsed", int64(len(result.Unparsed)))
	collector.SetStageCounter(metrics.StageExtract, "merged", int64(result.TotalMerged))
	collector.SetStageCounter(metrics.StageExtract, "truncated", int64(result.TotalTruncated))
	collector.SetStageCounter(metrics.StageExtract, "with_example", int64(result.TotalWithExample))

	if term.Verbose() {
		for _, u := range result.Unparsed {
			term.Debug(fmt.Sprintf("line %d: %s: %q", u.Line, u.Reason, excerpt(u.Text)))
		}
	}

	if !*benchmark {
		term.Status("extract", "ok", fmt.Sprintf("%d entries parsed", result.TotalParsed))
		if n := len(result.Unparsed); n > 0 {
			term.Status("extract", "skip", fmt.Sprintf("%d blocks unparsable", n))
		}
		if result.TotalMerged > 0 {
			term.Status("extract", "info", fmt.Sprintf("%d blocks cut at a merged entry", result.TotalMerged))
		}
	}

	// Phase 3: Merge and write
	collector.StartStage(metrics.StageMerge)
	if !*benchmark {
		term.Phase(3, 3, "Merging vocabulary")
	}

	vocabBuilder := builder.NewVocabularyBuilder(*output, policy)
	vocabBuilder.AddEntries(result.Entries)
	vocab, stats := vocabBuilder.Merge()

	collector.EndStage(metrics.StageMerge)
	collector.SetStageCounter(metrics.StageMerge, "words", int64(stats.TotalWords))
	collector.SetStageCounter(metrics.StageMerge, "duplicates", int64(stats.Duplicates))

	collector.StartStage(metrics.StageWrite)
	var spinner *pterm.SpinnerPrinter
	if !*benchmark {
		spinner = term.Spinner("Writing vocabulary file...")
	}
	err = vocabBuilder.Write(vocab, stats)
	if spinner != nil {
		spinner.Stop()
	}
	if err != nil {
		fail(err)
	}
	collector.EndStage(metrics.StageWrite)
	collector.SetStageCounter(metrics.StageWrite, "files", int64(len(stats.FilesWritten)))

	if !*benchmark {
		term.Stats("Vocabulary", []ui.Stat{
			{Name: "Blocks", Value: result.TotalBlocks},
			{Name: "Parsed", Value: result.TotalParsed},
			{Name: "Unparsable", Value: len(result.Unparsed)},
			{Name: "Duplicates dropped", Value: stats.Duplicates},
			{Name: "Words", Value: stats.TotalWords},
			{Name: "With example", Value: stats.WithExample},
		})
		term.PartOfSpeechStats(stats.ByPartOfSpeech)
		term.Success(fmt.Sprintf("Wrote %s", *output))
	}

	runMetrics := collector.Finalize(int64(result.TotalBlocks), int64(stats.TotalWords), len(stats.FilesWritten))

	if *writeMetrics || *benchmark {
		reporter := metrics.NewReporter(filepath.Dir(*output))

		previousRun, _ := reporter.GetLastRun()

		if err := reporter.Write(runMetrics); err != nil {
			if !*benchmark {
				term.Warning(fmt.Sprintf("Failed to write metrics: %v", err))
			}
		} else if !*benchmark {
			term.Debug(fmt.Sprintf("Metrics written: %s", runMetrics.RunID))
		}

		if previousRun != nil && !*benchmark {
			if comparison := metrics.CompareRuns(runMetrics, previousRun); comparison != nil {
				term.Info(metrics.FormatComparison(comparison))
			}
		}
	}

	if *benchmark {
		fmt.Printf(`{"run_id":"%s","duration_ms":%d,"throughput":%.2f,"blocks":%d,"entries":%d,"files":%d,"parallel":%t,"workers":%d}`,
			runMetrics.RunID,
			runMetrics.Totals.DurationMs,
			runMetrics.Totals.Throughput,
			runMetrics.Totals.BlocksRead,
			runMetrics.Totals.EntriesWritten,
			runMetrics.Totals.FilesWritten,
			result.Parallel,
			*workers,
		)
		fmt.Println()
		return
	}

	term.FinalReport(stats.TotalWords, len(stats.FilesWritten),
		collector.GetStageDuration(metrics.StageAggregate)+
			collector.GetStageDuration(metrics.StageExtract)+
			collector.GetStageDuration(metrics.StageMerge)+
			collector.GetStageDuration(metrics.StageWrite))
	term.Done()
}

// resolveWorkers returns 1 when parallel extraction is off and picks a CPU
// based count for 0.
func resolveWorkers(parallel bool, workers int) int {
	if !parallel {
		return 1
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > config.MaxWorkers {
		workers = config.MaxWorkers
	}
	return workers
}

func excerpt(text string) string {
	const limit = 60
	r := []rune(text)
	if len(r) <= limit {
		return text
	}
	return string(r[:limit]) + "..."
}
