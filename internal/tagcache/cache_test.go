package tagcache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/orderlens/orderlens/internal/taxonomy"
)

func TestLookupReadsPublishedCopy(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "acme.json"), `{
  "case_info": {"statutory_topics": ["COPPA"], "practice_areas": ["Privacy"], "industry_sectors": ["Technology"]},
  "order": {"provisions": [{"provision_number": 1, "statutory_topics": ["COPPA"], "remedy_types": ["Prohibition"]}]}
}`)

	cache := Open(dir, zap.NewNop())
	cls, ok := cache.Lookup("acme")
	require.True(t, ok)
	assert.Equal(t, []taxonomy.StatutoryTopic{taxonomy.COPPA}, cls.StatutoryTopics)
	require.Len(t, cls.Provisions, 1)
	assert.Equal(t, "1", cls.Provisions[0].Number)
	assert.Equal(t, []taxonomy.RemedyType{taxonomy.Prohibition}, cls.Provisions[0].RemedyTypes)

	// Memoized: removing the file does not change the answer.
	require.NoError(t, os.Remove(filepath.Join(dir, "acme.json")))
	_, ok = cache.Lookup("acme")
	assert.True(t, ok)
}

func TestLookupNeverErrors(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "broken.json"), `{"case_info": `)
	writeFile(t, filepath.Join(dir, "untagged.json"), `{"case_info": {"docket_number": "C-1"}}`)

	cache := Open(dir, nil)
	for _, id := range []string{"missing", "broken", "untagged"} {
		cls, ok := cache.Lookup(id)
		assert.False(t, ok, id)
		assert.Empty(t, cls.StatutoryTopics, id)
	}

	var unset *Cache
	_, ok := unset.Lookup("anything")
	assert.False(t, ok)

	_, ok = Open("", nil).Lookup("anything")
	assert.False(t, ok)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write file %s: %v", path, err)
	}
}
