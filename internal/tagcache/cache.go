// Package tagcache recovers classification tags from previously published
// case copies, so the summary can be rebuilt without re-running the
// classifier.
package tagcache

import (
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"github.com/orderlens/orderlens/internal/casefile"
	"github.com/orderlens/orderlens/internal/taxonomy"
)

// Cache reads <dir>/<case id>.json on first lookup and memoizes the result.
// Lookups never fail: an absent, unreadable, or untagged copy yields an
// empty classification and ok=false.
type Cache struct {
	dir    string
	logger *zap.Logger

	mu      sync.Mutex
	entries map[string]entry
}

type entry struct {
	cls casefile.Classification
	ok  bool
}

func Open(dir string, logger *zap.Logger) *Cache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cache{
		dir:     dir,
		logger:  logger,
		entries: make(map[string]entry),
	}
}

func (c *Cache) Path(id string) string {
	return filepath.Join(c.dir, id+".json")
}

func (c *Cache) Lookup(id string) (casefile.Classification, bool) {
	if c == nil || c.dir == "" {
		return casefile.Classification{}, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[id]; ok {
		return e.cls, e.ok
	}
	e := c.load(id)
	c.entries[id] = e
	return e.cls, e.ok
}

func (c *Cache) load(id string) entry {
	path := c.Path(id)
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			c.logger.Debug("published copy unreadable", zap.String("file", path), zap.Error(err))
		}
		return entry{}
	}

	doc, err := casefile.Decode(filepath.Base(path), data)
	if err != nil {
		c.logger.Debug("published copy invalid", zap.String("file", path), zap.Error(err))
		return entry{}
	}
	if !doc.IsClassified() {
		return entry{}
	}
	return entry{cls: FromCase(doc.Case), ok: true}
}

// FromCase extracts the tags already stored in a case.
func FromCase(cs casefile.Case) casefile.Classification {
	var cls casefile.Classification
	if cs.CaseInfo != nil {
		cls.StatutoryTopics = taxonomy.Parse[taxonomy.StatutoryTopic](cs.CaseInfo.StatutoryTopics)
		cls.PracticeAreas = taxonomy.Parse[taxonomy.PracticeArea](cs.CaseInfo.PracticeAreas)
		cls.IndustrySectors = taxonomy.Parse[taxonomy.IndustrySector](cs.CaseInfo.IndustrySectors)
	}
	for _, p := range cs.Order.Provisions {
		cls.Provisions = append(cls.Provisions, casefile.ProvisionClassification{
			Number:          p.ProvisionNumber.String(),
			StatutoryTopics: taxonomy.Parse[taxonomy.StatutoryTopic](p.StatutoryTopics),
			PracticeAreas:   taxonomy.Parse[taxonomy.PracticeArea](p.PracticeAreas),
			RemedyTypes:     taxonomy.Parse[taxonomy.RemedyType](p.RemedyTypes),
		})
	}
	return cls
}
