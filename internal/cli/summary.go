package cli

import (
	"fmt"
	"strings"

	"github.com/orderlens/orderlens/internal/fileutil"
)

// RunSummary is what every command prints when it finishes: one text line
// plus optional detail lines, or the whole struct with --json.
type RunSummary struct {
	Mode       string         `json:"mode"`
	RunID      string         `json:"run_id,omitempty"`
	Source     string         `json:"source,omitempty"`
	Output     string         `json:"output,omitempty"`
	Engine     string         `json:"engine,omitempty"`
	DryRun     bool           `json:"dry_run,omitempty"`
	DurationMS int64          `json:"duration_ms"`
	Counts     map[string]int `json:"counts"`
	Problems   []string       `json:"problems,omitempty"`
	Details    any            `json:"details,omitempty"`
}

type BuildSummary struct {
	Mode       string       `json:"mode"`
	RunID      string       `json:"run_id,omitempty"`
	DurationMS int64        `json:"duration_ms"`
	Stages     []RunSummary `json:"stages"`
}

func PrintRunSummary(summary RunSummary, asJSON bool) error {
	if asJSON {
		return fileutil.PrintJSON(summary)
	}

	mode := summary.Mode
	if summary.DryRun {
		mode += " (dry-run)"
	}
	parts := []string{mode + ":"}
	if summary.Engine != "" {
		parts = append(parts, fmt.Sprintf("engine=%s", summary.Engine))
	}
	for _, key := range fileutil.KeysSorted(summary.Counts) {
		parts = append(parts, fmt.Sprintf("%s=%d", key, summary.Counts[key]))
	}
	parts = append(parts, fmt.Sprintf("duration=%dms", summary.DurationMS))
	fmt.Println(strings.Join(parts, " "))

	if summary.Output != "" {
		fmt.Printf("output: %s\n", summary.Output)
	}
	if len(summary.Problems) > 0 {
		fmt.Printf("problems (%d): %s\n", len(summary.Problems), SummarizePaths(summary.Problems, 8))
	}
	return nil
}

func PrintBuildSummary(summary BuildSummary, asJSON bool) error {
	if asJSON {
		return fileutil.PrintJSON(summary)
	}
	for _, stage := range summary.Stages {
		if err := PrintRunSummary(stage, false); err != nil {
			return err
		}
	}
	fmt.Printf("build complete in %dms (%d stages)\n", summary.DurationMS, len(summary.Stages))
	return nil
}

func SummarizePaths(paths []string, max int) string {
	if len(paths) <= max {
		return strings.Join(paths, ", ")
	}
	return fmt.Sprintf("%s ... (+%d more)", strings.Join(paths[:max], ", "), len(paths)-max)
}
