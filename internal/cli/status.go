package cli

import (
	"time"

	"github.com/orderlens/orderlens/internal/tagging"
	"github.com/spf13/cobra"
)

// RunStatus reports how much of the corpus is classified. It never writes.
func RunStatus(cmd *cobra.Command, args []string) error {
	start := time.Now()
	rt, err := runtimeFor(cmd)
	if err != nil {
		return err
	}
	asJSON, err := OptionalBoolFlag(cmd, "json")
	if err != nil {
		return err
	}

	dir, err := requireDir(argOr(args, rt.cfg.Paths.PublishedDir))
	if err != nil {
		return err
	}
	matcher, err := loadIgnore(dir)
	if err != nil {
		return err
	}
	status, err := tagging.CorpusStatus(dir, matcher)
	if err != nil {
		return err
	}

	summary := RunSummary{
		Mode:       "status",
		RunID:      rt.runID,
		Source:     dir,
		DurationMS: time.Since(start).Milliseconds(),
		Counts: map[string]int{
			"total":        status.Total,
			"classified":   status.Classified,
			"unclassified": status.Unclassified,
			"invalid":      status.Invalid,
		},
		Details: status,
	}
	for _, p := range status.Problems {
		summary.Problems = append(summary.Problems, p.File)
	}
	return PrintRunSummary(summary, asJSON)
}
