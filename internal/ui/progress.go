// Package ui renders batch progress on the terminal.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

const barWidth = 40

var labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

// ProgressBar writes an in-place progress bar to a terminal. It
// implements ports.ProgressReporter and is safe for concurrent
// Advance calls from parallel render workers.
type ProgressBar struct {
	mu    sync.Mutex
	w     io.Writer
	bar   progress.Model
	total int
	done  int
	label string
}

// NewProgressBar creates a reporter writing to w; a nil writer
// defaults to stdout.
func NewProgressBar(w io.Writer) *ProgressBar {
	if w == nil {
		w = os.Stdout
	}

	bar := progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
	bar.Width = barWidth

	return &ProgressBar{w: w, bar: bar}
}

// Start implements ports.ProgressReporter.
func (p *ProgressBar) Start(total int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.total = total
	p.done = 0
	p.label = ""
	p.render()
}

// Advance implements ports.ProgressReporter. Progress never moves
// backwards even when parallel workers report out of order.
func (p *ProgressBar) Advance(done, total int, label string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if done <= p.done {
		return
	}

	p.done = done
	p.total = total
	p.label = label
	p.render()
}

// Finish implements ports.ProgressReporter.
func (p *ProgressBar) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.done = p.total
	p.label = "done"
	p.render()
	fmt.Fprintln(p.w)
}

// render redraws the bar in place. Callers hold the mutex.
func (p *ProgressBar) render() {
	fraction := 1.0
	if p.total > 0 {
		fraction = float64(p.done) / float64(p.total)
	}

	line := fmt.Sprintf("\r%s %3.0f%% %s",
		p.bar.ViewAs(fraction),
		fraction*100,
		labelStyle.Render(p.label),
	)

	// Pad to clear leftovers from a longer previous label.
	fmt.Fprint(p.w, line+strings.Repeat(" ", 4))
}
