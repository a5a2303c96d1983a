package utils

import (
	"io"

	"github.com/schollz/progressbar/v3"
)

// ProgressReporter defines methods for reporting progress.
type ProgressReporter interface {
	// SetTotal reinitializes the progress bar with the new total count.
	SetTotal(total int)
	// Increment increases the progress by one.
	Increment()
}

// BarProgressReporter is a concrete implementation using progressbar.
type BarProgressReporter struct {
	description string
	writer      io.Writer
	bar         *progressbar.ProgressBar
	total       int
}

// NewBarProgressReporter creates a new BarProgressReporter drawing to writer.
func NewBarProgressReporter(writer io.Writer, total int, description string) *BarProgressReporter {
	p := &BarProgressReporter{description: description, writer: writer}
	p.SetTotal(total)
	return p
}

// SetTotal reinitializes the progress bar with the new total count.
func (p *BarProgressReporter) SetTotal(total int) {
	p.total = total
	p.bar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(p.writer),
		progressbar.OptionSetDescription(p.description),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionThrottle(100e6),
		progressbar.OptionSetRenderBlankState(true),
	)
}

// Increment increases the progress bar by one.
func (p *BarProgressReporter) Increment() {
	_ = p.bar.Add(1)
}

// NoopProgressReporter discards progress, used when output is not a terminal.
type NoopProgressReporter struct{}

func (NoopProgressReporter) SetTotal(total int) {}

func (NoopProgressReporter) Increment() {}
