package pattern

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/orderlens/orderlens/internal/fileutil"
	"github.com/orderlens/orderlens/internal/shard"
)

// FileName is the pattern artifact's name inside the output directory.
const FileName = "ftc-patterns.json"

type File struct {
	GeneratedAt   string  `json:"generated_at"`
	TotalPatterns int     `json:"total_patterns"`
	TotalVariants int     `json:"total_variants"`
	Patterns      []Group `json:"patterns"`
}

// LoadStatutoryShards reads the provisions of every statutory-topic shard in
// dir. Practice-area and remedy shards are skipped since every provision is
// already in some statutory shard. A provision in several topic shards is
// returned once, keyed by case id and provision number.
func LoadStatutoryShards(dir string) ([]shard.ProvisionRecord, []string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read provisions dir %s: %w", dir, err)
	}
	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && shard.IsStatutoryShard(entry.Name()) {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)

	seen := make(map[string]bool)
	var records []shard.ProvisionRecord
	for _, name := range files {
		var s shard.Shard
		if err := fileutil.ReadJSON(filepath.Join(dir, name), &s); err != nil {
			return nil, files, fmt.Errorf("failed to read shard %s: %w", name, err)
		}
		for _, p := range s.Provisions {
			if seen[p.Key()] {
				continue
			}
			seen[p.Key()] = true
			records = append(records, p)
		}
	}
	return records, files, nil
}

// NewFile wraps detected groups into the published artifact.
func NewFile(groups []Group, generatedAt time.Time) File {
	total := 0
	for _, g := range groups {
		total += g.VariantCount
	}
	if groups == nil {
		groups = []Group{}
	}
	return File{
		GeneratedAt:   generatedAt.UTC().Format(time.RFC3339Nano),
		TotalPatterns: len(groups),
		TotalVariants: total,
		Patterns:      groups,
	}
}

func Write(outDir string, file File) (string, error) {
	path := filepath.Join(outDir, FileName)
	return path, fileutil.WriteJSONAtomic(path, file)
}
