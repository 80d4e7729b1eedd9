// Package ui provides terminal UI components using pterm.
package ui

import (
	"fmt"
	"sort"
	"time"

	"github.com/pterm/pterm"
)

// Theme colors for consistent styling
var (
	ColorPrimary   = pterm.FgCyan
	ColorSecondary = pterm.FgLightBlue
	ColorSuccess   = pterm.FgGreen
	ColorWarning   = pterm.FgYellow
	ColorError     = pterm.FgRed
	ColorMuted     = pterm.FgGray
)

// UI wraps pterm components for vocabparse.
type UI struct {
	quiet   bool
	verbose bool
}

// New creates a new UI instance.
func New(quiet, verbose bool) *UI {
	if quiet {
		pterm.DisableOutput()
	}
	if verbose {
		pterm.EnableDebugMessages()
	}
	return &UI{quiet: quiet, verbose: verbose}
}

// Verbose reports whether debug output is on.
func (u *UI) Verbose() bool {
	return u.verbose
}

// Banner prints the application banner.
func (u *UI) Banner() {
	pterm.DefaultBigText.WithLetters(
		pterm.NewLettersFromStringWithStyle("vocab", pterm.NewStyle(ColorPrimary)),
		pterm.NewLettersFromStringWithStyle("parse", pterm.NewStyle(ColorSecondary)),
	).Render()

	pterm.DefaultCenter.Println(
		ColorMuted.Sprint("SAT Word List Parser"),
	)
	fmt.Println()
}

// RunConfig is the configuration summary shown before a run.
type RunConfig struct {
	BaseDir string
	Input   string
	Output  string
	Dedup   string
	Workers int
}

// Config prints the configuration summary.
func (u *UI) Config(cfg RunConfig) {
	pterm.DefaultSection.Println("Configuration")

	workers := "sequential"
	if cfg.Workers > 1 {
		workers = fmt.Sprintf("%d", cfg.Workers)
	}

	data := [][]string{
		{"Project", cfg.BaseDir},
		{"Input", cfg.Input},
		{"Output", cfg.Output},
		{"Dedup", cfg.Dedup},
		{"Workers", workers},
	}

	pterm.DefaultTable.WithData(data).Render()
	fmt.Println()
}

// Phase prints a phase header.
func (u *UI) Phase(number int, total int, name string) {
	pterm.DefaultSection.WithLevel(2).Println(
		fmt.Sprintf("[%d/%d] %s", number, total, name),
	)
}

// Spinner creates a spinner for long operations.
func (u *UI) Spinner(message string) *pterm.SpinnerPrinter {
	spinner, _ := pterm.DefaultSpinner.
		WithRemoveWhenDone(true).
		Start(message)
	return spinner
}

// Progress creates a progress bar.
func (u *UI) Progress(title string, total int) *pterm.ProgressbarPrinter {
	pb, _ := pterm.DefaultProgressbar.
		WithTotal(total).
		WithTitle(title).
		WithShowElapsedTime(true).
		WithShowCount(true).
		Start()
	return pb
}

// Status prints a labelled status line.
func (u *UI) Status(label string, status string, details string) {
	prefix := ColorPrimary.Sprintf("[%s]", label)
	switch status {
	case "ok":
		pterm.Success.Println(prefix, details)
	case "skip":
		pterm.Warning.Println(prefix, details)
	case "error":
		pterm.Error.Println(prefix, details)
	case "info":
		pterm.Info.Println(prefix, details)
	default:
		fmt.Printf("%s %s\n", prefix, details)
	}
}

// Stat is one row of a statistics table.
type Stat struct {
	Name  string
	Value interface{}
}

// Stats prints statistics in a table, in the order given.
func (u *UI) Stats(title string, stats []Stat) {
	pterm.DefaultSection.WithLevel(2).Println(title)

	var data [][]string
	for _, s := range stats {
		data = append(data, []string{s.Name, fmt.Sprintf("%v", s.Value)})
	}

	pterm.DefaultTable.WithData(data).Render()
	fmt.Println()
}

// PartOfSpeechStats prints entry counts per part of speech, largest first.
func (u *UI) PartOfSpeechStats(byPOS map[string]int) {
	if len(byPOS) == 0 {
		return
	}

	tags := make([]string, 0, len(byPOS))
	for tag := range byPOS {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool {
		if byPOS[tags[i]] != byPOS[tags[j]] {
			return byPOS[tags[i]] > byPOS[tags[j]]
		}
		return tags[i] < tags[j]
	})

	data := pterm.TableData{{"Part of Speech", "Words"}}
	for _, tag := range tags {
		data = append(data, []string{tag, fmt.Sprintf("%d", byPOS[tag])})
	}

	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	fmt.Println()
}

// FinalReport prints the final summary report.
func (u *UI) FinalReport(totalWords int, filesWritten int, duration time.Duration) {
	pterm.DefaultSection.Println("Summary")

	seconds := duration.Seconds()
	if seconds <= 0 {
		seconds = 1e-9
	}

	panel := pterm.DefaultBox.WithTitle("Results").Sprint(
		fmt.Sprintf(
			"  Total Words:    %s\n"+
				"  Files Written:  %s\n"+
				"  Duration:       %s\n"+
				"  Throughput:     %s words/sec",
			ColorSuccess.Sprintf("%d", totalWords),
			ColorPrimary.Sprintf("%d", filesWritten),
			ColorWarning.Sprint(duration.Round(time.Millisecond)),
			pterm.FgMagenta.Sprintf("%.0f", float64(totalWords)/seconds),
		),
	)
	fmt.Println(panel)
}

// Success prints a success message.
func (u *UI) Success(message string) {
	pterm.Success.Println(message)
}

// Error prints an error message.
func (u *UI) Error(message string) {
	pterm.Error.Println(message)
}

// Warning prints a warning message.
func (u *UI) Warning(message string) {
	pterm.Warning.Println(message)
}

// Info prints an info message.
func (u *UI) Info(message string) {
	pterm.Info.Println(message)
}

// Debug prints a debug message (only in verbose mode).
func (u *UI) Debug(message string) {
	if u.verbose {
		pterm.Debug.Println(message)
	}
}

// Separator prints a visual separator.
func (u *UI) Separator() {
	pterm.DefaultBasicText.Println(ColorMuted.Sprint("─────────────────────────────────────────────────────────────"))
}

// Done prints the completion message.
func (u *UI) Done() {
	fmt.Println()
	pterm.DefaultCenter.Println(
		ColorSuccess.Sprint("✓ Done!"),
	)
}
