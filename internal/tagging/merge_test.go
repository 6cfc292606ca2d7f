package tagging

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const twoProvisionCase = `{
  "case_info": {"docket_number": "C-9", "statutory_topics": ["Section 5 Only"]},
  "order": {"provisions": [
    {"provision_number": 1, "title": "Prohibited Misrepresentations"},
    {"provision_number": "2", "title": "Recordkeeping", "remedy_types": ["Recordkeeping"]},
    {"provision_number": 3, "title": "Acknowledgment", "practice_areas": null}
  ]}
}`

func TestMergeAppliesManifests(t *testing.T) {
	manifestDir := t.TempDir()
	corpusDir := filepath.Join(manifestDir, "ftc-files")
	mustWriteFile(t, filepath.Join(corpusDir, "acme.json"), twoProvisionCase)
	mustWriteFile(t, filepath.Join(manifestDir, "classify-result-01.json"), `[
  {
    "file": "acme.json",
    "statutory_topics": ["COPPA"],
    "practice_areas": ["Privacy"],
    "industry_sectors": ["Technology"],
    "provisions": [{"n": "1", "statutory_topics": ["COPPA"], "practice_areas": ["Privacy"], "remedy_types": ["Prohibition"]}]
  }
]`)

	result, err := Merge(context.Background(), manifestDir, corpusDir, nil)
	require.NoError(t, err)
	assert.Equal(t, MergeResult{Manifests: 1, Total: 1, Merged: 1}, result)
	assert.False(t, hasTmp(t, corpusDir))

	raw := readRaw(t, filepath.Join(corpusDir, "acme.json"))
	info := raw["case_info"].(map[string]any)
	assert.Equal(t, []any{"COPPA"}, info["statutory_topics"])
	assert.Equal(t, []any{"Technology"}, info["industry_sectors"])

	provisions := raw["order"].(map[string]any)["provisions"].([]any)
	first := provisions[0].(map[string]any)
	assert.Equal(t, []any{"Prohibition"}, first["remedy_types"])

	second := provisions[1].(map[string]any)
	assert.Equal(t, []any{"Recordkeeping"}, second["remedy_types"])
	assert.Equal(t, []any{"COPPA"}, second["statutory_topics"])
	assert.Equal(t, []any{"Privacy"}, second["practice_areas"])

	third := provisions[2].(map[string]any)
	assert.Equal(t, []any{"Privacy"}, third["practice_areas"])
	assert.Equal(t, []any{"Other"}, third["remedy_types"])
}

func TestMergeRejectsBadEntries(t *testing.T) {
	manifestDir := t.TempDir()
	corpusDir := t.TempDir()
	mustWriteFile(t, filepath.Join(corpusDir, "acme.json"), twoProvisionCase)
	mustWriteFile(t, filepath.Join(manifestDir, "classify-result-02.json"), `[
  {"file": "acme.json", "statutory_topics": ["Made Up Act"], "practice_areas": [], "industry_sectors": [], "provisions": []},
  {"file": "../escape.json", "statutory_topics": [], "practice_areas": [], "industry_sectors": [], "provisions": []},
  {"file": "missing.json", "statutory_topics": ["COPPA"], "practice_areas": ["Privacy"], "industry_sectors": ["Technology"], "provisions": []},
  {"file": "acme.json", "statutory_topics": ["COPPA"], "practice_areas": ["Privacy"], "industry_sectors": [], "provisions": []},
  {"file": "acme.json", "statutory_topics": ["COPPA"], "practice_areas": ["Privacy"], "industry_sectors": ["Technology"],
   "provisions": [{"n": 1, "statutory_topics": ["COPPA"], "practice_areas": ["Privacy"], "remedy_types": []}]},
  {"file": "acme.json", "statutory_topics": ["COPPA"], "practice_areas": ["Privacy"], "industry_sectors": ["Technology"],
   "provisions": [{"n": 1, "remedy_types": ["Prohibition"]}]}
]`)

	result, err := Merge(context.Background(), manifestDir, corpusDir, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMergeFailed))
	assert.Equal(t, 6, result.Errors)
	assert.Zero(t, result.Merged)

	doc := readRaw(t, filepath.Join(corpusDir, "acme.json"))
	assert.Equal(t, []any{"Section 5 Only"}, doc["case_info"].(map[string]any)["statutory_topics"])
}

func TestMergeWithoutManifests(t *testing.T) {
	_, err := Merge(context.Background(), t.TempDir(), t.TempDir(), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoManifests))
}
