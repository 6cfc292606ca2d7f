package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/orderlens/orderlens/internal/classify"
	"github.com/orderlens/orderlens/internal/summary"
	"github.com/orderlens/orderlens/internal/tagcache"
	"github.com/orderlens/orderlens/internal/taxonomy"
	"github.com/spf13/cobra"
)

type summarizeOptions struct {
	source    string
	published string
	out       string
	publish   bool
}

// RunSummarize builds ftc-cases.json from the raw corpus. Tags missing from
// a source file are recovered from its published copy.
func RunSummarize(cmd *cobra.Command, args []string) error {
	rt, err := runtimeFor(cmd)
	if err != nil {
		return err
	}
	asJSON, err := OptionalBoolFlag(cmd, "json")
	if err != nil {
		return err
	}
	opts, err := parseSummarizeOptions(cmd, rt)
	if err != nil {
		return err
	}

	result, err := summarizeStage(commandContext(cmd), rt, opts)
	if err != nil {
		return err
	}
	return PrintRunSummary(result, asJSON)
}

func parseSummarizeOptions(cmd *cobra.Command, rt *runtime) (summarizeOptions, error) {
	var (
		opts summarizeOptions
		err  error
	)
	if opts.source, err = StringFlagOr(cmd, "source", rt.cfg.Paths.CorpusDir); err != nil {
		return opts, err
	}
	if opts.published, err = StringFlagOr(cmd, "published", rt.cfg.Paths.PublishedDir); err != nil {
		return opts, err
	}
	if opts.out, err = StringFlagOr(cmd, "out", rt.cfg.Paths.OutputDir); err != nil {
		return opts, err
	}
	if opts.publish, err = OptionalBoolFlag(cmd, "publish"); err != nil {
		return opts, err
	}
	return opts, nil
}

func summarizeStage(ctx context.Context, rt *runtime, opts summarizeOptions) (RunSummary, error) {
	start := time.Now()
	result := RunSummary{Mode: "summary", RunID: rt.runID}

	source, err := requireDir(opts.source)
	if err != nil {
		return result, err
	}
	result.Source = source
	matcher, err := loadIgnore(source)
	if err != nil {
		return result, err
	}

	builder := &summary.Builder{
		Classifier: classify.New(taxonomy.DefaultRules()),
		Tags:       tagcache.Open(opts.published, rt.logger),
		Logger:     rt.logger,
		Ignore:     matcher,
	}
	payload, report, err := builder.Build(ctx, source)
	if err != nil {
		return result, err
	}

	if err := os.MkdirAll(opts.out, 0755); err != nil {
		return result, fmt.Errorf("failed to create output dir %s: %w", opts.out, err)
	}
	path, err := summary.Write(opts.out, payload)
	if err != nil {
		return result, fmt.Errorf("failed to write %s: %w", summary.FileName, err)
	}
	result.Output = path

	if opts.publish {
		if err := os.MkdirAll(opts.published, 0755); err != nil {
			return result, fmt.Errorf("failed to create published dir %s: %w", opts.published, err)
		}
		report.Published, err = summary.Publish(source, opts.published, payload.Cases, rt.logger)
		if err != nil {
			return result, fmt.Errorf("failed to publish case files: %w", err)
		}
	}

	result.DurationMS = time.Since(start).Milliseconds()
	result.Counts = map[string]int{
		"files":     report.Files,
		"processed": report.Processed,
		"cases":     report.Cases,
		"tagged":    report.Tagged,
		"skipped":   len(report.Skipped),
		"published": report.Published,
	}
	for _, f := range report.Skipped {
		result.Problems = append(result.Problems, f.File)
	}
	result.Details = report
	return result, nil
}
