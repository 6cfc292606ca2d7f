package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/orderlens/orderlens/internal/classify"
	"github.com/orderlens/orderlens/internal/llm"
	"github.com/orderlens/orderlens/internal/tagging"
	"github.com/orderlens/orderlens/internal/taxonomy"
	"github.com/spf13/cobra"
)

const (
	engineRules = "rules"
	engineLLM   = "llm"
)

type classifyOptions struct {
	dir     string
	engine  string
	dryRun  bool
	limit   int
	workers int
	asJSON  bool
}

func RunClassify(cmd *cobra.Command, args []string) error {
	rt, err := runtimeFor(cmd)
	if err != nil {
		return err
	}
	opts, err := parseClassifyOptions(cmd, args, rt)
	if err != nil {
		return err
	}

	summary, err := classifyStage(commandContext(cmd), rt, opts)
	if summary.Counts != nil {
		if printErr := PrintRunSummary(summary, opts.asJSON); printErr != nil {
			return printErr
		}
	}
	return err
}

func parseClassifyOptions(cmd *cobra.Command, args []string, rt *runtime) (classifyOptions, error) {
	opts := classifyOptions{dir: argOr(args, rt.cfg.Paths.PublishedDir)}
	var err error
	if opts.engine, err = ParseEngine(cmd); err != nil {
		return opts, err
	}
	if opts.dryRun, err = OptionalBoolFlag(cmd, "dry-run"); err != nil {
		return opts, err
	}
	if opts.limit, err = IntFlagOr(cmd, "limit", 0); err != nil {
		return opts, err
	}
	if opts.workers, err = IntFlagOr(cmd, "workers", rt.cfg.Tagging.Workers); err != nil {
		return opts, err
	}
	if opts.asJSON, err = OptionalBoolFlag(cmd, "json"); err != nil {
		return opts, err
	}
	if opts.limit < 0 || opts.workers < 0 {
		return opts, fmt.Errorf("--limit and --workers must be >= 0")
	}
	return opts, nil
}

func newClassifier(rt *runtime, engine string) (tagging.Classifier, error) {
	rules := classify.New(taxonomy.DefaultRules())
	if engine != engineLLM {
		return tagging.RuleClassifier{Rules: rules}, nil
	}
	client, err := llm.NewOpenAIClient(llm.ClientConfig{
		APIKey:    rt.cfg.LLM.APIKey,
		Model:     rt.cfg.LLM.Model,
		BaseURL:   rt.cfg.LLM.BaseURL,
		MaxTokens: rt.cfg.LLM.MaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create llm client: %w", err)
	}
	return llm.NewClassifier(client, rules, rt.cfg.LLM.Pace, rt.logger), nil
}

func classifyStage(ctx context.Context, rt *runtime, opts classifyOptions) (RunSummary, error) {
	start := time.Now()
	summary := RunSummary{Mode: "classify", RunID: rt.runID, Engine: opts.engine, DryRun: opts.dryRun}

	dir, err := requireDir(opts.dir)
	if err != nil {
		return summary, err
	}
	summary.Source = dir
	matcher, err := loadIgnore(dir)
	if err != nil {
		return summary, err
	}
	classifier, err := newClassifier(rt, opts.engine)
	if err != nil {
		return summary, err
	}

	files, err := tagging.ListCaseFiles(dir, matcher)
	if err != nil {
		return summary, err
	}
	total := len(files)
	if opts.limit > 0 && opts.limit < total {
		total = opts.limit
	}
	progress := newClassifyProgress(total, opts.asJSON)

	pipeline := &tagging.Pipeline{
		Classifier:     classifier,
		Logger:         rt.logger,
		Ignore:         matcher,
		Workers:        opts.workers,
		ErrorThreshold: rt.cfg.Tagging.ErrorThreshold,
		DryRun:         opts.dryRun,
		Limit:          opts.limit,
		Progress:       progress.Update,
	}
	result, runErr := pipeline.Run(ctx, dir)
	progress.Done(result)

	summary.DurationMS = time.Since(start).Milliseconds()
	summary.Counts = map[string]int{
		"total":      result.Total,
		"classified": result.Classified,
		"skipped":    result.Skipped,
		"errors":     result.Errors,
	}
	for _, f := range result.Failed {
		summary.Problems = append(summary.Problems, f.File)
	}
	summary.Details = result

	if runErr != nil {
		if errors.Is(runErr, tagging.ErrErrorRate) {
			return summary, fmt.Errorf("classify failed: %w", runErr)
		}
		return summary, runErr
	}
	return summary, nil
}
