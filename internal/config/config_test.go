package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"ORDERLENS_CORPUS_DIR", "ORDERLENS_PUBLISHED_DIR", "ORDERLENS_OUTPUT_DIR",
		"ORDERLENS_PROVISIONS_DIR", "ORDERLENS_LOG_LEVEL", "ORDERLENS_ERROR_THRESHOLD",
		"OPENAI_API_KEY", "OPENAI_MODEL", "OPENAI_BASE_URL",
	} {
		t.Setenv(name, "")
	}
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	clearEnv(t)
	chdir(t, t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, 0.05, cfg.Tagging.ErrorThreshold)
	assert.Equal(t, 300*time.Millisecond, cfg.LLM.Pace)
}

func TestLoadFileThenEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(`
paths:
  corpus_dir: corpus
tagging:
  workers: 4
llm:
  pace: 1s
patterns:
  full_text_limit: 10
logging:
  level: debug
  json: true
`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("OPENAI_API_KEY=sk-from-dotenv\n"), 0644))
	// .env never overrides a variable that is already set, even to "".
	require.NoError(t, os.Unsetenv("OPENAI_API_KEY"))
	t.Setenv("ORDERLENS_CORPUS_DIR", "env-corpus")
	t.Setenv("ORDERLENS_ERROR_THRESHOLD", "0.2")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "env-corpus", cfg.Paths.CorpusDir)
	assert.Equal(t, "public/data/ftc-files", cfg.Paths.PublishedDir)
	assert.Equal(t, 4, cfg.Tagging.Workers)
	assert.Equal(t, 0.2, cfg.Tagging.ErrorThreshold)
	assert.Equal(t, time.Second, cfg.LLM.Pace)
	assert.Equal(t, "sk-from-dotenv", cfg.LLM.APIKey)
	assert.Equal(t, 10, cfg.Patterns.FullTextLimit)
	assert.Equal(t, 3, cfg.Patterns.MinCases)
	assert.Equal(t, LoggingConfig{Level: "debug", JSON: true}, cfg.Logging)
}

func TestLoadRejectsBadInput(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	chdir(t, dir)

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err, "explicit config path must exist")

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("tagging: [oops"), 0644))
	_, err = Load(bad)
	assert.Error(t, err)

	t.Setenv("ORDERLENS_ERROR_THRESHOLD", "lots")
	_, err = Load("")
	assert.ErrorContains(t, err, "ORDERLENS_ERROR_THRESHOLD")

	t.Setenv("ORDERLENS_ERROR_THRESHOLD", "1.5")
	_, err = Load("")
	assert.ErrorContains(t, err, "error_threshold")

	// Zero would silently fall back to the 5% default.
	t.Setenv("ORDERLENS_ERROR_THRESHOLD", "0")
	_, err = Load("")
	assert.ErrorContains(t, err, "error_threshold")

	zero := filepath.Join(dir, "zero.yaml")
	require.NoError(t, os.WriteFile(zero, []byte("tagging:\n  error_threshold: 0\n"), 0644))
	t.Setenv("ORDERLENS_ERROR_THRESHOLD", "")
	_, err = Load(zero)
	assert.ErrorContains(t, err, "error_threshold")
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir for older Go).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
