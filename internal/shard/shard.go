package shard

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/orderlens/orderlens/internal/casefile"
	"github.com/orderlens/orderlens/internal/fileutil"
	"github.com/orderlens/orderlens/internal/ignore"
	"github.com/orderlens/orderlens/internal/tagging"
	"github.com/orderlens/orderlens/internal/taxonomy"
)

const (
	ManifestFile = "manifest.json"
	fileSuffix   = "-provisions.json"
	otherSlug    = "other"
	otherLabel   = "Other"
)

// ErrUnclassified means some case files had no tags yet. Shards are still
// written for the classified ones.
var ErrUnclassified = errors.New("case files not yet classified")

// Dimension is one tag axis provisions are sharded along.
type Dimension struct {
	Category string
	Prefix   string
	Labels   func(ProvisionRecord) []string
}

// Dimensions lists the shard axes. Statutory shards carry no prefix.
func Dimensions() []Dimension {
	return []Dimension{
		{Category: "statutory_topic", Prefix: "", Labels: func(r ProvisionRecord) []string { return r.StatutoryTopics }},
		{Category: "practice_area", Prefix: "pa-", Labels: func(r ProvisionRecord) []string { return r.PracticeAreas }},
		{Category: "remedy_type", Prefix: "rt-", Labels: func(r ProvisionRecord) []string { return r.RemedyTypes }},
	}
}

type Shard struct {
	Topic           string            `json:"topic"`
	GeneratedAt     string            `json:"generated_at"`
	TotalProvisions int               `json:"total_provisions"`
	Provisions      []ProvisionRecord `json:"provisions"`

	file     string
	category string
	label    string
}

func (s Shard) File() string { return s.file }

type ManifestEntry struct {
	File     string `json:"file"`
	Category string `json:"category"`
	Slug     string `json:"slug"`
	Label    string `json:"label"`
	Count    int    `json:"count"`
}

type Manifest struct {
	GeneratedAt string          `json:"generated_at"`
	TotalShards int             `json:"total_shards"`
	Shards      []ManifestEntry `json:"shards"`
}

// Split fans records out along every dimension. A record with N labels in
// a dimension lands in N shards; one with none lands in that dimension's
// "other" shard. Shards keep first-seen order within each dimension.
func Split(records []ProvisionRecord, generatedAt string) []Shard {
	var shards []Shard
	for _, dim := range Dimensions() {
		index := make(map[string]int)
		var dimShards []Shard
		for _, record := range records {
			labels := dim.Labels(record)
			if len(labels) == 0 {
				labels = []string{otherLabel}
			}
			for _, label := range fileutil.Dedupe(labels) {
				slug := taxonomy.Slug(label)
				if slug == "" {
					slug = otherSlug
				}
				i, ok := index[slug]
				if !ok {
					i = len(dimShards)
					index[slug] = i
					dimShards = append(dimShards, Shard{
						Topic:       slug,
						GeneratedAt: generatedAt,
						file:        dim.Prefix + slug + fileSuffix,
						category:    dim.Category,
						label:       label,
					})
				}
				dimShards[i].Provisions = append(dimShards[i].Provisions, record)
				dimShards[i].TotalProvisions++
			}
		}
		shards = append(shards, dimShards...)
	}
	return shards
}

func BuildManifest(shards []Shard, generatedAt string) Manifest {
	manifest := Manifest{GeneratedAt: generatedAt, TotalShards: len(shards), Shards: make([]ManifestEntry, 0, len(shards))}
	for _, s := range shards {
		manifest.Shards = append(manifest.Shards, ManifestEntry{
			File:     s.file,
			Category: s.category,
			Slug:     s.Topic,
			Label:    s.label,
			Count:    s.TotalProvisions,
		})
	}
	return manifest
}

type Report struct {
	Files        int                 `json:"files"`
	Cases        int                 `json:"cases"`
	Provisions   int                 `json:"provisions"`
	Shards       int                 `json:"shards"`
	ShardEntries int                 `json:"shard_entries"`
	Unclassified []string            `json:"unclassified,omitempty"`
	Skipped      []tagging.FileError `json:"skipped,omitempty"`
	Removed      []string            `json:"removed,omitempty"`
}

type Builder struct {
	Logger *zap.Logger
	Ignore *ignore.Matcher
	Now    func() time.Time
}

// Collect reads every classified case in dir as provision records.
// Unclassified files are reported, not read; unparseable or undated files
// are skipped with a warning.
func (b *Builder) Collect(ctx context.Context, dir string) ([]ProvisionRecord, Report, error) {
	logger := b.logger()
	files, err := tagging.ListCaseFiles(dir, b.Ignore)
	if err != nil {
		return nil, Report{}, err
	}

	report := Report{Files: len(files)}
	var records []ProvisionRecord
	for _, name := range files {
		if err := ctx.Err(); err != nil {
			return nil, report, err
		}
		doc, err := casefile.Read(filepath.Join(dir, name))
		if err != nil {
			logger.Warn("skipping case file", zap.String("file", name), zap.Error(err))
			report.Skipped = append(report.Skipped, tagging.FileError{File: name, Error: err.Error()})
			continue
		}
		if !doc.IsClassified() {
			logger.Warn("case file not yet classified", zap.String("file", name))
			report.Unclassified = append(report.Unclassified, name)
			continue
		}
		date, year, err := casefile.ResolveDate(doc.Case.CaseInfo, name)
		if err != nil {
			logger.Warn("skipping case file", zap.String("file", name), zap.Error(err))
			report.Skipped = append(report.Skipped, tagging.FileError{File: name, Error: err.Error()})
			continue
		}
		report.Cases++
		records = append(records, Records(doc, date, year)...)
	}
	report.Provisions = len(records)
	return records, report, nil
}

// Run shards the corpus in srcDir into outDir. It returns ErrUnclassified
// after writing when any case file lacked tags.
func (b *Builder) Run(ctx context.Context, srcDir, outDir string) (Report, error) {
	records, report, err := b.Collect(ctx, srcDir)
	if err != nil {
		return report, err
	}

	generatedAt := b.now().UTC().Format(time.RFC3339Nano)
	shards := Split(records, generatedAt)
	report.Shards = len(shards)
	for _, s := range shards {
		report.ShardEntries += s.TotalProvisions
	}

	removed, err := Write(outDir, shards, BuildManifest(shards, generatedAt))
	report.Removed = removed
	if err != nil {
		return report, err
	}
	b.logger().Info("wrote provision shards",
		zap.Int("shards", report.Shards),
		zap.Int("provisions", report.Provisions),
		zap.Int("shard_entries", report.ShardEntries),
	)

	if n := len(report.Unclassified); n > 0 {
		return report, fmt.Errorf("%w: %d file(s), run classify first", ErrUnclassified, n)
	}
	return report, nil
}

// Write stores every shard and the manifest in outDir, then removes shard
// files from earlier runs that this run did not produce.
func Write(outDir string, shards []Shard, manifest Manifest) ([]string, error) {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", outDir, err)
	}

	written := make(map[string]bool, len(shards))
	for _, s := range shards {
		if err := fileutil.WriteJSONAtomic(filepath.Join(outDir, s.file), s); err != nil {
			return nil, err
		}
		written[s.file] = true
	}
	if err := fileutil.WriteJSONAtomic(filepath.Join(outDir, ManifestFile), manifest); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(outDir)
	if err != nil {
		return nil, err
	}
	var removed []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, fileSuffix) || written[name] {
			continue
		}
		if err := os.Remove(filepath.Join(outDir, name)); err != nil {
			return removed, fmt.Errorf("failed to remove stale shard %s: %w", name, err)
		}
		removed = append(removed, name)
	}
	return removed, nil
}

// IsStatutoryShard reports whether name is a statutory-topic shard file.
func IsStatutoryShard(name string) bool {
	return strings.HasSuffix(name, fileSuffix) &&
		!strings.HasPrefix(name, "pa-") &&
		!strings.HasPrefix(name, "rt-")
}

func (b *Builder) logger() *zap.Logger {
	if b.Logger == nil {
		return zap.NewNop()
	}
	return b.Logger
}

func (b *Builder) now() time.Time {
	if b.Now != nil {
		return b.Now()
	}
	return time.Now()
}
