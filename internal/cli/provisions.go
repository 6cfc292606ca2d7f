package cli

import (
	"context"
	"errors"
	"time"

	"github.com/orderlens/orderlens/internal/shard"
	"github.com/spf13/cobra"
)

func RunProvisions(cmd *cobra.Command, args []string) error {
	rt, err := runtimeFor(cmd)
	if err != nil {
		return err
	}
	asJSON, err := OptionalBoolFlag(cmd, "json")
	if err != nil {
		return err
	}
	files, err := StringFlagOr(cmd, "files", rt.cfg.Paths.PublishedDir)
	if err != nil {
		return err
	}
	out, err := StringFlagOr(cmd, "out", rt.cfg.Paths.ProvisionsDir)
	if err != nil {
		return err
	}

	summary, err := provisionsStage(commandContext(cmd), rt, files, out)
	if summary.Counts != nil {
		if printErr := PrintRunSummary(summary, asJSON); printErr != nil {
			return printErr
		}
	}
	return err
}

// provisionsStage writes the per-tag shards. When some case files are still
// unclassified the shards are written anyway and shard.ErrUnclassified is
// returned alongside a complete summary.
func provisionsStage(ctx context.Context, rt *runtime, filesDir, outDir string) (RunSummary, error) {
	start := time.Now()
	summary := RunSummary{Mode: "provisions", RunID: rt.runID}

	src, err := requireDir(filesDir)
	if err != nil {
		return summary, err
	}
	summary.Source = src
	matcher, err := loadIgnore(src)
	if err != nil {
		return summary, err
	}

	builder := &shard.Builder{Logger: rt.logger, Ignore: matcher}
	report, runErr := builder.Run(ctx, src, outDir)
	if runErr != nil && !errors.Is(runErr, shard.ErrUnclassified) {
		return summary, runErr
	}

	summary.Output = outDir
	summary.DurationMS = time.Since(start).Milliseconds()
	summary.Counts = map[string]int{
		"files":         report.Files,
		"cases":         report.Cases,
		"provisions":    report.Provisions,
		"shards":        report.Shards,
		"shard_entries": report.ShardEntries,
		"unclassified":  len(report.Unclassified),
		"skipped":       len(report.Skipped),
		"removed":       len(report.Removed),
	}
	summary.Problems = append(summary.Problems, report.Unclassified...)
	for _, f := range report.Skipped {
		summary.Problems = append(summary.Problems, f.File)
	}
	summary.Details = report
	return summary, runErr
}
