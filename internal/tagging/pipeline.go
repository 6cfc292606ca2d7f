// Package tagging applies classifications to the case corpus in place.
package tagging

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/orderlens/orderlens/internal/casefile"
	"github.com/orderlens/orderlens/internal/classify"
	"github.com/orderlens/orderlens/internal/fileutil"
	"github.com/orderlens/orderlens/internal/ignore"
	"github.com/orderlens/orderlens/internal/taxonomy"
)

// DefaultErrorThreshold is the failed-file fraction above which a run is
// reported as failed.
const DefaultErrorThreshold = 0.05

// ErrErrorRate means too many files failed for the run to be trusted.
var ErrErrorRate = errors.New("error rate exceeds threshold")

// Classifier produces the tags for one unclassified case.
type Classifier interface {
	Classify(ctx context.Context, doc *casefile.Document) (casefile.Classification, error)
}

// RuleClassifier adapts the keyword rule engine to Classifier.
type RuleClassifier struct {
	Rules *classify.Classifier
}

func (r RuleClassifier) Classify(_ context.Context, doc *casefile.Document) (casefile.Classification, error) {
	return r.Rules.Classify(doc.Case), nil
}

type Pipeline struct {
	Classifier Classifier
	Logger     *zap.Logger
	Ignore     *ignore.Matcher

	// Workers bounds concurrent files; zero or one is sequential.
	Workers        int
	ErrorThreshold float64
	DryRun         bool
	// Limit caps the number of files considered; zero means all.
	Limit int

	// Progress, when set, is called after each file completes with the
	// running tally. Calls are serialized; Total counts finished files.
	Progress func(file string, tally Tally)
}

// Tally is a running count of finished files by outcome.
type Tally struct {
	Total      int
	Classified int
	Skipped    int
	Errors     int
}

func (t *Tally) add(out outcome) {
	t.Total++
	switch out {
	case outcomeClassified:
		t.Classified++
	case outcomeSkipped:
		t.Skipped++
	case outcomeFailed:
		t.Errors++
	}
}

type FileError struct {
	File  string `json:"file"`
	Error string `json:"error"`
}

type Result struct {
	Total      int         `json:"total"`
	Classified int         `json:"classified"`
	Skipped    int         `json:"skipped"`
	Errors     int         `json:"errors"`
	Failed     []FileError `json:"failed,omitempty"`
}

func (r Result) ErrorRate() float64 {
	if r.Total == 0 {
		return 0
	}
	return float64(r.Errors) / float64(r.Total)
}

type outcome int

const (
	outcomeClassified outcome = iota
	outcomeSkipped
	outcomeFailed
)

type fileResult struct {
	outcome outcome
	err     error
}

// Run tags every unclassified case file in dir. Per-file failures are
// logged and counted without stopping the batch. When the failed fraction
// exceeds ErrorThreshold the result is returned with ErrErrorRate.
func (p *Pipeline) Run(ctx context.Context, dir string) (Result, error) {
	logger := p.logger()
	if p.Classifier == nil {
		return Result{}, fmt.Errorf("tagging pipeline has no classifier")
	}

	files, err := ListCaseFiles(dir, p.Ignore)
	if err != nil {
		return Result{}, err
	}
	if p.Limit > 0 && len(files) > p.Limit {
		files = files[:p.Limit]
	}

	results := make([]fileResult, len(files))
	var (
		mu    sync.Mutex
		tally Tally
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, p.Workers))
	for i, name := range files {
		i, name := i, name
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out, err := p.processFile(gctx, filepath.Join(dir, name))
			results[i] = fileResult{outcome: out, err: err}
			switch out {
			case outcomeClassified:
				logger.Info("classified", zap.String("file", name))
			case outcomeSkipped:
				logger.Info("skipped", zap.String("file", name), zap.String("reason", "already classified"))
			case outcomeFailed:
				logger.Error("failed", zap.String("file", name), zap.Error(err))
			}
			if p.Progress != nil {
				mu.Lock()
				tally.add(out)
				p.Progress(name, tally)
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	result := Result{Total: len(files)}
	for i, r := range results {
		switch r.outcome {
		case outcomeClassified:
			result.Classified++
		case outcomeSkipped:
			result.Skipped++
		case outcomeFailed:
			result.Errors++
			result.Failed = append(result.Failed, FileError{File: files[i], Error: r.err.Error()})
		}
	}

	threshold := p.ErrorThreshold
	if threshold <= 0 {
		threshold = DefaultErrorThreshold
	}
	if result.ErrorRate() > threshold {
		return result, fmt.Errorf("%w: %d/%d files failed (threshold %.0f%%)", ErrErrorRate, result.Errors, result.Total, threshold*100)
	}
	return result, nil
}

func (p *Pipeline) processFile(ctx context.Context, path string) (outcome, error) {
	doc, err := casefile.Read(path)
	if err != nil {
		return outcomeFailed, err
	}
	if doc.IsClassified() {
		return outcomeSkipped, nil
	}

	cls, err := p.Classifier.Classify(ctx, doc)
	if err != nil {
		return outcomeFailed, fmt.Errorf("classify %s: %w", doc.Name, err)
	}
	doc.Apply(cls)

	p.logger().Debug("tags",
		zap.String("file", doc.Name),
		zap.Strings("statutory_topics", taxonomy.Strings(cls.StatutoryTopics)),
		zap.Strings("practice_areas", taxonomy.Strings(cls.PracticeAreas)),
		zap.Strings("industry_sectors", taxonomy.Strings(cls.IndustrySectors)),
	)

	if p.DryRun {
		return outcomeClassified, nil
	}
	if err := fileutil.WriteJSONAtomic(path, doc.Raw()); err != nil {
		return outcomeFailed, err
	}
	return outcomeClassified, nil
}

func (p *Pipeline) logger() *zap.Logger {
	if p.Logger == nil {
		return zap.NewNop()
	}
	return p.Logger
}

// ListCaseFiles returns the sorted *.json entries of dir that the matcher
// does not exclude.
func ListCaseFiles(dir string, matcher *ignore.Matcher) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read corpus %s: %w", dir, err)
	}
	if matcher == nil {
		matcher = ignore.NewMatcher(nil)
	}

	var files []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") || matcher.Ignored(name) {
			continue
		}
		files = append(files, name)
	}
	sort.Strings(files)
	return files, nil
}
