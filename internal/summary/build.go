package summary

import (
	"context"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/orderlens/orderlens/internal/casefile"
	"github.com/orderlens/orderlens/internal/classify"
	"github.com/orderlens/orderlens/internal/fileutil"
	"github.com/orderlens/orderlens/internal/ignore"
	"github.com/orderlens/orderlens/internal/tagcache"
	"github.com/orderlens/orderlens/internal/tagging"
	"github.com/orderlens/orderlens/internal/taxonomy"
)

// FileName is the summary artifact's name inside the output directory.
const FileName = "ftc-cases.json"

type Payload struct {
	GeneratedAt string                          `json:"generated_at"`
	TotalCases  int                             `json:"total_cases"`
	Cases       []CaseSummary                   `json:"cases"`
	Groupings   Groupings                       `json:"groupings"`
	Analysis    map[string]map[string]Narrative `json:"analysis"`
}

type Report struct {
	Files     int                 `json:"files"`
	Processed int                 `json:"processed"`
	Cases     int                 `json:"cases"`
	Skipped   []tagging.FileError `json:"skipped,omitempty"`
	// Tagged counts deduplicated cases with at least one statutory topic.
	Tagged    int `json:"tagged"`
	Published int `json:"published"`
}

type Builder struct {
	Classifier *classify.Classifier
	Tags       *tagcache.Cache
	Logger     *zap.Logger
	Ignore     *ignore.Matcher
	Now        func() time.Time
}

// Build summarizes every case file in sourceDir. Files that cannot be
// parsed or dated are logged and left out; they never fail the build.
func (b *Builder) Build(ctx context.Context, sourceDir string) (Payload, Report, error) {
	logger := b.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	classifier := b.Classifier
	if classifier == nil {
		classifier = classify.New(taxonomy.DefaultRules())
	}

	files, err := tagging.ListCaseFiles(sourceDir, b.Ignore)
	if err != nil {
		return Payload{}, Report{}, err
	}

	report := Report{Files: len(files)}
	all := make([]CaseSummary, 0, len(files))
	for _, name := range files {
		if err := ctx.Err(); err != nil {
			return Payload{}, report, err
		}
		doc, err := casefile.Read(filepath.Join(sourceDir, name))
		if err == nil {
			var summary CaseSummary
			summary, err = Summarize(doc, classifier, b.Tags)
			if err == nil {
				all = append(all, summary)
				continue
			}
		}
		logger.Warn("skipping case file", zap.String("file", name), zap.Error(err))
		report.Skipped = append(report.Skipped, tagging.FileError{File: name, Error: err.Error()})
	}
	report.Processed = len(all)

	cases := Dedupe(all)
	report.Cases = len(cases)
	for _, c := range cases {
		if len(c.StatutoryTopics) > 0 {
			report.Tagged++
		}
	}
	logger.Info("summarized cases",
		zap.Int("processed", report.Processed),
		zap.Int("unique", report.Cases),
		zap.Int("tagged", report.Tagged),
	)

	groupings := Group(cases)
	payload := Payload{
		GeneratedAt: b.now().UTC().Format(time.RFC3339Nano),
		TotalCases:  len(cases),
		Cases:       cases,
		Groupings:   groupings,
		Analysis:    Analyze(groupings),
	}
	return payload, report, nil
}

// Write stores the payload at outDir/ftc-cases.json.
func Write(outDir string, payload Payload) (string, error) {
	path := filepath.Join(outDir, FileName)
	return path, fileutil.WriteJSONAtomic(path, payload)
}

// Publish copies each case's source file to publishedDir/<id>.json unless a
// copy is already there, so tags written to published copies survive.
func Publish(sourceDir, publishedDir string, cases []CaseSummary, logger *zap.Logger) (int, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	copied := 0
	for _, c := range cases {
		src := filepath.Join(sourceDir, c.SourceFilename)
		dst := filepath.Join(publishedDir, c.ID+".json")
		ok, err := fileutil.CopyIfMissing(src, dst)
		if err != nil {
			return copied, err
		}
		if ok {
			copied++
			logger.Debug("published", zap.String("file", c.SourceFilename), zap.String("id", c.ID))
		}
	}
	return copied, nil
}

func (b *Builder) now() time.Time {
	if b.Now != nil {
		return b.Now()
	}
	return time.Now()
}
