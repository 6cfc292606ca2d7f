package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/orderlens/orderlens/internal/tagging"
)

func TestClassifyProgressShowsOutcomeCounts(t *testing.T) {
	var buf bytes.Buffer
	progress := &classifyProgress{out: &buf, enabled: true, total: 3, start: time.Now()}

	progress.Update("07.19_acme.json", tagging.Tally{Total: 1, Classified: 1})
	progress.Update("broken.json", tagging.Tally{Total: 2, Classified: 1, Errors: 1})
	progress.Done(tagging.Result{Total: 3, Classified: 1, Skipped: 1, Errors: 1})

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\r")
	assert.Len(t, lines, 4)
	assert.Equal(t, "- classify 1/3 [classified=1 skipped=0 errors=0] 07.19_acme.json", lines[1])
	assert.Equal(t, `\ classify 2/3 [classified=1 skipped=0 errors=1] broken.json`, strings.TrimRight(lines[2], " "))
	assert.True(t, strings.HasPrefix(lines[3], "classify complete: 3 files [classified=1 skipped=1 errors=1] in "))
}

func TestClassifyProgressSilentWhenDisabled(t *testing.T) {
	var buf bytes.Buffer
	progress := &classifyProgress{out: &buf, total: 1, start: time.Now()}

	progress.Update("07.19_acme.json", tagging.Tally{Total: 1, Classified: 1})
	progress.Done(tagging.Result{Total: 1, Classified: 1})
	assert.Empty(t, buf.String())
}
