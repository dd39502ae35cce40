package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/vidbatch/internal/client/models"
)

const barWidth = 20

// progressLine redraws a single terminal line in place. Calling next starts
// a fresh line for the following item.
type progressLine struct {
	w      io.Writer
	active bool
	width  int
}

func newProgressLine(w io.Writer) *progressLine {
	return &progressLine{w: w}
}

func (p *progressLine) draw(text string) {
	pad := ""
	if n := p.width - len(text); n > 0 {
		pad = strings.Repeat(" ", n)
	}
	fmt.Fprintf(p.w, "\r%s%s", text, pad)
	p.width = len(text)
	p.active = true
}

// next terminates the current line, if any.
func (p *progressLine) next() {
	if p.active {
		fmt.Fprintln(p.w)
	}
	p.active = false
	p.width = 0
}

func bar(percent int) string {
	percent = min(max(percent, 0), 100)
	filled := percent * barWidth / 100
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", barWidth-filled) + "]"
}

// uploadProgress renders one updating line per file of an upload batch.
type uploadProgress struct {
	line    *progressLine
	current int
	total   int
}

func newUploadProgress(w io.Writer, total int) *uploadProgress {
	return &uploadProgress{line: newProgressLine(w), current: -1, total: total}
}

func (u *uploadProgress) update(i int, name string, percent int) {
	if i != u.current {
		u.line.next()
		u.current = i
	}
	u.line.draw(fmt.Sprintf("(%d/%d) %s %s %3d%%", i+1, u.total, name, bar(percent), percent))
}

func (u *uploadProgress) done() { u.line.next() }

// jobProgress renders the latest job snapshot on one line.
type jobProgress struct {
	line *progressLine
}

func newJobProgress(w io.Writer) *jobProgress {
	return &jobProgress{line: newProgressLine(w)}
}

func (j *jobProgress) update(job models.Job) {
	text := fmt.Sprintf("%s %-10s %s %3d%%", shortID(job.ID), job.Status, bar(job.Percent()), job.Percent())
	if job.Message != "" {
		text += " " + job.Message
	}
	j.line.draw(text)
}

func (j *jobProgress) done() { j.line.next() }

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
