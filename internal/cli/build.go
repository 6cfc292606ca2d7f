package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// RunBuild runs the whole pipeline over the configured directories:
// summary (publishing new cases), classify, provisions, patterns. When
// classify tagged anything the summary is rebuilt so it carries the new
// tags.
func RunBuild(cmd *cobra.Command, args []string) error {
	start := time.Now()
	rt, err := runtimeFor(cmd)
	if err != nil {
		return err
	}
	asJSON, err := OptionalBoolFlag(cmd, "json")
	if err != nil {
		return err
	}
	engine, err := ParseEngine(cmd)
	if err != nil {
		return err
	}
	ctx := commandContext(cmd)
	paths := rt.cfg.Paths

	build := BuildSummary{Mode: "build", RunID: rt.runID}
	finish := func(stageErr error) error {
		build.DurationMS = time.Since(start).Milliseconds()
		if err := PrintBuildSummary(build, asJSON); err != nil {
			return err
		}
		return stageErr
	}

	summarize := summarizeOptions{
		source:    paths.CorpusDir,
		published: paths.PublishedDir,
		out:       paths.OutputDir,
		publish:   true,
	}
	stage, err := summarizeStage(ctx, rt, summarize)
	if err != nil {
		return finish(fmt.Errorf("summary stage: %w", err))
	}
	build.Stages = append(build.Stages, stage)

	stage, err = classifyStage(ctx, rt, classifyOptions{
		dir:     paths.PublishedDir,
		engine:  engine,
		workers: rt.cfg.Tagging.Workers,
		asJSON:  asJSON,
	})
	if stage.Counts != nil {
		build.Stages = append(build.Stages, stage)
	}
	if err != nil {
		return finish(fmt.Errorf("classify stage: %w", err))
	}

	if stage.Counts["classified"] > 0 {
		summarize.publish = false
		stage, err = summarizeStage(ctx, rt, summarize)
		if err != nil {
			return finish(fmt.Errorf("summary stage: %w", err))
		}
		build.Stages = append(build.Stages, stage)
	}

	stage, err = provisionsStage(ctx, rt, paths.PublishedDir, paths.ProvisionsDir)
	if stage.Counts != nil {
		build.Stages = append(build.Stages, stage)
	}
	if err != nil {
		return finish(fmt.Errorf("provisions stage: %w", err))
	}

	stage, err = patternsStage(rt, paths.ProvisionsDir, paths.OutputDir, patternOptions(rt))
	if err != nil {
		return finish(fmt.Errorf("patterns stage: %w", err))
	}
	build.Stages = append(build.Stages, stage)
	return finish(nil)
}
