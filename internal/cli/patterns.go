package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/orderlens/orderlens/internal/pattern"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func RunPatterns(cmd *cobra.Command, args []string) error {
	rt, err := runtimeFor(cmd)
	if err != nil {
		return err
	}
	asJSON, err := OptionalBoolFlag(cmd, "json")
	if err != nil {
		return err
	}
	provisionsDir, err := StringFlagOr(cmd, "provisions", rt.cfg.Paths.ProvisionsDir)
	if err != nil {
		return err
	}
	out, err := StringFlagOr(cmd, "out", rt.cfg.Paths.OutputDir)
	if err != nil {
		return err
	}
	opts := patternOptions(rt)
	if opts.FullTextLimit, err = IntFlagOr(cmd, "full-text-limit", opts.FullTextLimit); err != nil {
		return err
	}

	summary, err := patternsStage(rt, provisionsDir, out, opts)
	if err != nil {
		return err
	}
	return PrintRunSummary(summary, asJSON)
}

func patternOptions(rt *runtime) pattern.Options {
	p := rt.cfg.Patterns
	return pattern.Options{
		MinCases:       p.MinCases,
		MinPrefixWords: p.MinPrefixWords,
		FullTextLimit:  p.FullTextLimit,
		PreviewChars:   p.PreviewChars,
	}
}

func patternsStage(rt *runtime, provisionsDir, outDir string, opts pattern.Options) (RunSummary, error) {
	start := time.Now()
	summary := RunSummary{Mode: "patterns", RunID: rt.runID}

	dir, err := requireDir(provisionsDir)
	if err != nil {
		return summary, err
	}
	summary.Source = dir

	records, files, err := pattern.LoadStatutoryShards(dir)
	if err != nil {
		return summary, err
	}
	rt.logger.Info("loaded statutory shards", zap.Int("shards", len(files)), zap.Int("provisions", len(records)))

	groups, stats := pattern.Detect(records, opts)
	file := pattern.NewFile(groups, time.Now())

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return summary, fmt.Errorf("failed to create output dir %s: %w", outDir, err)
	}
	path, err := pattern.Write(outDir, file)
	if err != nil {
		return summary, fmt.Errorf("failed to write %s: %w", pattern.FileName, err)
	}
	rt.logger.Info("wrote patterns",
		zap.Int("patterns", file.TotalPatterns),
		zap.Int("variants", file.TotalVariants),
		zap.Int("merged", stats.Merged),
	)

	summary.Output = path
	summary.DurationMS = time.Since(start).Milliseconds()
	summary.Counts = map[string]int{
		"shards":       len(files),
		"provisions":   stats.Provisions,
		"title_groups": stats.TitleGroups,
		"merged":       stats.Merged,
		"patterns":     file.TotalPatterns,
		"variants":     file.TotalVariants,
	}
	summary.Details = stats
	return summary, nil
}
