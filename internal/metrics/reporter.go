package metrics

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Reporter handles metrics output and history tracking.
type Reporter struct {
	outputDir   string
	historyFile string
}

// NewReporter creates a reporter writing under <outputDir>/metrics.
func NewReporter(outputDir string) *Reporter {
	metricsDir := filepath.Join(outputDir, "metrics")
	return &Reporter{
		outputDir:   metricsDir,
		historyFile: filepath.Join(metricsDir, "history.jsonl"),
	}
}

// Dir returns the metrics directory.
func (r *Reporter) Dir() string {
	return r.outputDir
}

// Write writes run metrics to latest.json, run_<id>.json and the history log.
func (r *Reporter) Write(metrics *RunMetrics) error {
	if err := os.MkdirAll(r.outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create metrics dir: %w", err)
	}

	// latest.json is overwritten each run
	latestPath := filepath.Join(r.outputDir, "latest.json")
	if err := r.writeJSON(latestPath, metrics); err != nil {
		return fmt.Errorf("failed to write latest.json: %w", err)
	}

	timestampedPath := filepath.Join(
		r.outputDir,
		fmt.Sprintf("run_%s.json", metrics.RunID),
	)
	if err := r.writeJSON(timestampedPath, metrics); err != nil {
		return fmt.Errorf("failed to write timestamped file: %w", err)
	}

	if err := r.appendHistory(metrics); err != nil {
		return fmt.Errorf("failed to append history: %w", err)
	}

	return nil
}

func (r *Reporter) writeJSON(path string, metrics *RunMetrics) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	return encoder.Encode(metrics)
}

func (r *Reporter) appendHistory(metrics *RunMetrics) error {
	file, err := os.OpenFile(r.historyFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer file.Close()

	line, err := json.Marshal(metrics)
	if err != nil {
		return err
	}

	_, err = file.Write(append(line, '\n'))
	return err
}

// ReadHistory reads the last N runs from history.
func (r *Reporter) ReadHistory(limit int) ([]*RunMetrics, error) {
	file, err := os.Open(r.historyFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer file.Close()

	var runs []*RunMetrics
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		var run RunMetrics
		if err := json.Unmarshal(scanner.Bytes(), &run); err != nil {
			continue // skip malformed lines
		}
		runs = append(runs, &run)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if limit > 0 && len(runs) > limit {
		runs = runs[len(runs)-limit:]
	}

	return runs, nil
}

// GetLastRun returns the most recent run from history.
func (r *Reporter) GetLastRun() (*RunMetrics, error) {
	runs, err := r.ReadHistory(1)
	if err != nil || len(runs) == 0 {
		return nil, err
	}
	return runs[0], nil
}

// HistorySummary is a condensed view of a historical run.
type HistorySummary struct {
	RunID      string    `json:"run_id"`
	Timestamp  time.Time `json:"timestamp"`
	Input      string    `json:"input"`
	Entries    int64     `json:"entries"`
	DurationMs int64     `json:"duration_ms"`
	Throughput float64   `json:"throughput"`
}

// Summarize condenses a run for history listings.
func Summarize(run *RunMetrics) HistorySummary {
	s := HistorySummary{
		RunID:     run.RunID,
		Timestamp: run.Timestamp,
	}
	if input, ok := run.Config["input"].(string); ok {
		s.Input = input
	}
	if run.Totals != nil {
		s.Entries = run.Totals.EntriesWritten
		s.DurationMs = run.Totals.DurationMs
		s.Throughput = run.Totals.Throughput
	}
	return s
}

// Comparison is the difference between two runs.
type Comparison struct {
	CurrentRunID   string  `json:"current_run_id"`
	PreviousRunID  string  `json:"previous_run_id"`
	SpeedupFactor  float64 `json:"speedup_factor"`
	TimeSavedMs    int64   `json:"time_saved_ms"`
	EntriesDiff    int64   `json:"entries_diff"`
	ThroughputDiff float64 `json:"throughput_diff"`
}

// CompareRuns compares two runs and returns the difference.
func CompareRuns(current, previous *RunMetrics) *Comparison {
	if current == nil || previous == nil || current.Totals == nil || previous.Totals == nil {
		return nil
	}

	speedup := float64(1)
	if current.Totals.DurationMs > 0 {
		speedup = float64(previous.Totals.DurationMs) / float64(current.Totals.DurationMs)
	}

	return &Comparison{
		CurrentRunID:   current.RunID,
		PreviousRunID:  previous.RunID,
		SpeedupFactor:  speedup,
		TimeSavedMs:    previous.Totals.DurationMs - current.Totals.DurationMs,
		EntriesDiff:    current.Totals.EntriesWritten - previous.Totals.EntriesWritten,
		ThroughputDiff: current.Totals.Throughput - previous.Totals.Throughput,
	}
}

// FormatComparison returns a human-readable comparison string.
func FormatComparison(c *Comparison) string {
	if c == nil {
		return "No previous run to compare"
	}

	direction := "faster"
	if c.SpeedupFactor < 1 {
		direction = "slower"
	}

	return fmt.Sprintf(
		"%.2fx %s than previous run (%+dms, %+d entries, %+.0f blocks/sec)",
		c.SpeedupFactor,
		direction,
		-c.TimeSavedMs, // saved = previous - current
		c.EntriesDiff,
		c.ThroughputDiff,
	)
}
