package fileutil

import (
	"errors"
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSONAtomicReplacesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "case.json")
	mustWriteFile(t, path, `{"old": true}`)

	require.NoError(t, WriteJSONAtomic(path, map[string]any{"url": "https://example.com/?a=1&b=<2>"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"url\": \"https://example.com/?a=1&b=<2>\"\n}\n", string(data))
	assertNoTempFiles(t, dir)
}

func TestWriteAtomicInterruptedLeavesOriginal(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "case.json")
	original := "{\n  \"case_info\": {\"docket_number\": \"C-1\"}\n}\n"
	mustWriteFile(t, path, original)

	crash := errors.New("killed")
	restore := writeTemp
	writeTemp = func(w io.Writer, data []byte) error {
		_, _ = w.Write(data[:len(data)/2])
		return crash
	}
	t.Cleanup(func() { writeTemp = restore })

	err := WriteJSONAtomic(path, map[string]any{"case_info": map[string]any{"statutory_topics": []string{"COPPA"}}})
	require.ErrorIs(t, err, crash)

	data, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	assert.Equal(t, original, string(data))
	assertNoTempFiles(t, dir)
}

func TestWriteJSONAtomicRejectsUnencodable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.json")
	mustWriteFile(t, path, "{}")

	err := WriteJSONAtomic(path, map[string]any{"bad": math.Inf(1)})
	require.Error(t, err)

	data, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	assert.Equal(t, "{}", string(data))
}

func TestCheckRoundTrip(t *testing.T) {
	assert.NoError(t, checkRoundTrip([]byte(`{"a": [1, 2.5, "x"]}`)))
	assert.ErrorIs(t, checkRoundTrip([]byte(`{"a": `)), ErrRoundTrip)
}

func TestCopyIfMissing(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.json")
	dst := filepath.Join(dir, "published", "dst.json")
	mustWriteFile(t, src, "first")

	copied, err := CopyIfMissing(src, dst)
	require.NoError(t, err)
	assert.True(t, copied)

	mustWriteFile(t, src, "second")
	copied, err = CopyIfMissing(src, dst)
	require.NoError(t, err)
	assert.False(t, copied)

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "first", string(data))
}

func TestCounterTopBreaksTiesByFirstSeen(t *testing.T) {
	c := NewCounter[string]()
	for _, key := range []string{"b", "a", "c", "a", "d", "b", "e", "f"} {
		c.Add(key)
	}
	assert.Equal(t, []string{"b", "a", "c", "d", "e"}, c.Top(5))
	assert.Equal(t, 2, c.Count("a"))
}

func TestDedupePreservesOrder(t *testing.T) {
	assert.Equal(t, []string{"x", "y", "z"}, Dedupe([]string{"x", "y", "x", "z", "y"}))
}

func assertNoTempFiles(t *testing.T, dir string) {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(dir, "*.tmp"))
	if err != nil {
		t.Fatalf("failed to glob temp files: %v", err)
	}
	if len(matches) > 0 {
		t.Fatalf("expected no temp files, found %v", matches)
	}
}

func mustWriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create directory %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write file %s: %v", path, err)
	}
}
