package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/orderlens/orderlens/internal/tagging"
)

// classifyProgress redraws one stderr line per finished case file with
// the running outcome counts of a classify run.
type classifyProgress struct {
	out     io.Writer
	enabled bool
	total   int
	start   time.Time
	spinner int
	lastLen int
}

// newClassifyProgress stays silent when stderr is not a terminal or when
// output is JSON.
func newClassifyProgress(total int, asJSON bool) *classifyProgress {
	fd := os.Stderr.Fd()
	return &classifyProgress{
		out:     os.Stderr,
		enabled: (isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)) && !asJSON,
		total:   total,
		start:   time.Now(),
	}
}

// Update matches tagging.Pipeline.Progress.
func (p *classifyProgress) Update(file string, tally tagging.Tally) {
	if !p.enabled {
		return
	}
	frames := [4]string{"-", "\\", "|", "/"}
	frame := frames[p.spinner%len(frames)]
	p.spinner++

	file = strings.TrimSpace(file)
	if len(file) > 60 {
		file = "..." + file[len(file)-57:]
	}
	done := fmt.Sprint(tally.Total)
	if p.total > 0 {
		done = fmt.Sprintf("%d/%d", tally.Total, p.total)
	}
	p.draw(fmt.Sprintf("%s classify %s %s %s", frame, done, outcomeCounts(tally), file))
}

func (p *classifyProgress) Done(result tagging.Result) {
	if !p.enabled {
		return
	}
	tally := tagging.Tally{
		Total:      result.Total,
		Classified: result.Classified,
		Skipped:    result.Skipped,
		Errors:     result.Errors,
	}
	elapsed := time.Since(p.start).Round(time.Millisecond)
	p.draw(fmt.Sprintf("classify complete: %d files %s in %s", result.Total, outcomeCounts(tally), elapsed))
	fmt.Fprintln(p.out)
}

func outcomeCounts(t tagging.Tally) string {
	return fmt.Sprintf("[classified=%d skipped=%d errors=%d]", t.Classified, t.Skipped, t.Errors)
}

func (p *classifyProgress) draw(status string) {
	if p.lastLen > len(status) {
		status += strings.Repeat(" ", p.lastLen-len(status))
	}
	p.lastLen = len(status)
	fmt.Fprintf(p.out, "\r%s", status)
}
