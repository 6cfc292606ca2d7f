package tagging

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/orderlens/orderlens/internal/casefile"
	"github.com/orderlens/orderlens/internal/fileutil"
	"github.com/orderlens/orderlens/internal/taxonomy"
)

const manifestPrefix = "classify-result-"

var (
	// ErrNoManifests means the manifest directory holds no classify-result files.
	ErrNoManifests = errors.New("no classify-result-*.json manifests found")
	// ErrMergeFailed means at least one manifest entry could not be applied.
	ErrMergeFailed = errors.New("merge finished with errors")
)

// ManifestEntry is one externally produced classification.
type ManifestEntry struct {
	File            string              `json:"file" validate:"required"`
	StatutoryTopics []string            `json:"statutory_topics" validate:"min=1,dive,statutory_topic"`
	PracticeAreas   []string            `json:"practice_areas" validate:"min=1,dive,practice_area"`
	IndustrySectors []string            `json:"industry_sectors" validate:"min=1,dive,industry_sector"`
	Provisions      []ManifestProvision `json:"provisions" validate:"dive"`
}

type ManifestProvision struct {
	N               casefile.FlexString `json:"n"`
	StatutoryTopics []string            `json:"statutory_topics" validate:"min=1,dive,statutory_topic"`
	PracticeAreas   []string            `json:"practice_areas" validate:"min=1,dive,practice_area"`
	RemedyTypes     []string            `json:"remedy_types" validate:"min=1,dive,remedy_type"`
}

// Classification converts the entry into the form casefile.Document.Apply takes.
func (e ManifestEntry) Classification() casefile.Classification {
	cls := casefile.Classification{
		StatutoryTopics: taxonomy.Parse[taxonomy.StatutoryTopic](e.StatutoryTopics),
		PracticeAreas:   taxonomy.Parse[taxonomy.PracticeArea](e.PracticeAreas),
		IndustrySectors: taxonomy.Parse[taxonomy.IndustrySector](e.IndustrySectors),
	}
	for _, p := range e.Provisions {
		cls.Provisions = append(cls.Provisions, casefile.ProvisionClassification{
			Number:          p.N.String(),
			StatutoryTopics: taxonomy.Parse[taxonomy.StatutoryTopic](p.StatutoryTopics),
			PracticeAreas:   taxonomy.Parse[taxonomy.PracticeArea](p.PracticeAreas),
			RemedyTypes:     taxonomy.Parse[taxonomy.RemedyType](p.RemedyTypes),
		})
	}
	return cls
}

type MergeResult struct {
	Manifests int         `json:"manifests"`
	Total     int         `json:"total"`
	Merged    int         `json:"merged"`
	Errors    int         `json:"errors"`
	Failed    []FileError `json:"failed,omitempty"`
}

// Merge applies every classify-result-*.json manifest in manifestDir to the
// case files in corpusDir. Unlike Run, it overwrites existing tags. Any
// failed entry makes the whole merge return ErrMergeFailed after the
// remaining entries have been applied.
func Merge(ctx context.Context, manifestDir, corpusDir string, logger *zap.Logger) (MergeResult, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	manifests, err := listManifests(manifestDir)
	if err != nil {
		return MergeResult{}, err
	}
	if len(manifests) == 0 {
		return MergeResult{}, fmt.Errorf("%w in %s", ErrNoManifests, manifestDir)
	}

	result := MergeResult{Manifests: len(manifests)}
	for _, name := range manifests {
		var entries []ManifestEntry
		if err := fileutil.ReadJSON(filepath.Join(manifestDir, name), &entries); err != nil {
			return result, fmt.Errorf("failed to read manifest %s: %w", name, err)
		}
		logger.Info("processing manifest", zap.String("manifest", name), zap.Int("entries", len(entries)))
		result.Total += len(entries)

		for _, entry := range entries {
			if err := ctx.Err(); err != nil {
				return result, err
			}
			if err := mergeEntry(corpusDir, entry); err != nil {
				logger.Error("failed", zap.String("file", entry.File), zap.Error(err))
				result.Errors++
				result.Failed = append(result.Failed, FileError{File: entry.File, Error: err.Error()})
				continue
			}
			result.Merged++
		}
	}

	if result.Errors > 0 {
		return result, fmt.Errorf("%w: %d of %d entries failed", ErrMergeFailed, result.Errors, result.Total)
	}
	return result, nil
}

func mergeEntry(corpusDir string, entry ManifestEntry) error {
	if err := taxonomy.Validator().Struct(entry); err != nil {
		return fmt.Errorf("invalid manifest entry: %w", err)
	}
	if entry.File != filepath.Base(entry.File) || strings.HasPrefix(entry.File, ".") {
		return fmt.Errorf("manifest file %q must name a file inside the corpus", entry.File)
	}

	path := filepath.Join(corpusDir, entry.File)
	doc, err := casefile.Read(path)
	if err != nil {
		return err
	}
	doc.Apply(entry.Classification())
	return fileutil.WriteJSONAtomic(path, doc.Raw())
}

func listManifests(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest dir %s: %w", dir, err)
	}
	var names []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, manifestPrefix) || !strings.HasSuffix(name, ".json") {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
