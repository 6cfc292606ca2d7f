package cli

import (
	"time"

	"github.com/orderlens/orderlens/internal/tagging"
	"github.com/spf13/cobra"
)

// RunMerge applies classify-result-*.json manifests produced outside this
// tool to the case files in the corpus.
func RunMerge(cmd *cobra.Command, args []string) error {
	start := time.Now()
	rt, err := runtimeFor(cmd)
	if err != nil {
		return err
	}
	asJSON, err := OptionalBoolFlag(cmd, "json")
	if err != nil {
		return err
	}
	manifestDir, err := StringFlagOr(cmd, "manifests", rt.cfg.Paths.OutputDir)
	if err != nil {
		return err
	}

	corpusDir, err := requireDir(argOr(args, rt.cfg.Paths.PublishedDir))
	if err != nil {
		return err
	}
	manifestDir, err = requireDir(manifestDir)
	if err != nil {
		return err
	}

	result, mergeErr := tagging.Merge(commandContext(cmd), manifestDir, corpusDir, rt.logger)
	summary := RunSummary{
		Mode:       "merge",
		RunID:      rt.runID,
		Source:     manifestDir,
		Output:     corpusDir,
		DurationMS: time.Since(start).Milliseconds(),
		Counts: map[string]int{
			"manifests": result.Manifests,
			"total":     result.Total,
			"merged":    result.Merged,
			"errors":    result.Errors,
		},
		Details: result,
	}
	for _, f := range result.Failed {
		summary.Problems = append(summary.Problems, f.File)
	}
	if err := PrintRunSummary(summary, asJSON); err != nil {
		return err
	}
	return mergeErr
}
