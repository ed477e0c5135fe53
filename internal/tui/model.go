// Copyright (c) rigup-cli 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package tui

import (
	"strings"
	"time"

	bprogress "github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rigup-cli/rigup/internal/progress"
	"github.com/rigup-cli/rigup/internal/runner"
)

// JobStatus represents the current state of a job row in the dashboard.
type JobStatus int

const (
	StatusPending JobStatus = iota
	StatusRunning
	StatusSucceeded
	StatusFailed
)

// String returns a string representation of the job status.
func (s JobStatus) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusRunning:
		return "running"
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

const (
	// maxPaneLines bounds the tail kept for each output pane.
	maxPaneLines = 256

	defaultWidth = 80
	minBarWidth  = 10
	maxBarWidth  = 40
	totalLabel   = "Total"
)

// jobRow holds the display state for a single job.
type jobRow struct {
	title  string
	total  int
	done   int
	status JobStatus
	detail string // argv of the running command, then the finish message
	bar    bprogress.Model
}

func (r *jobRow) percent() float64 {
	if r.total == 0 {
		return 1
	}

	return float64(r.done) / float64(r.total)
}

// outputPane tails one output stream of the current command.
type outputPane struct {
	name    string
	lines   []string
	partial string
}

func (p *outputPane) reset() {
	p.lines = p.lines[:0]
	p.partial = ""
}

// write appends streamed text, reassembling lines across chunk boundaries.
func (p *outputPane) write(text string) {
	p.partial += text
	for {
		idx := strings.IndexByte(p.partial, '\n')
		if idx < 0 {
			break
		}

		p.lines = append(p.lines, p.partial[:idx])
		p.partial = p.partial[idx+1:]
	}

	if len(p.lines) > maxPaneLines {
		p.lines = p.lines[len(p.lines)-maxPaneLines:]
	}
}

// tail returns the last n complete lines plus any unterminated remainder.
func (p *outputPane) tail(n int) []string {
	lines := p.lines
	if p.partial != "" {
		lines = append(lines[:len(lines):len(lines)], p.partial)
	}

	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}

	return lines
}

// Model is the bubbletea model for the installation dashboard.
type Model struct {
	rows       []jobRow
	totalBar   bprogress.Model
	aggDone    int
	aggTotal   int
	titleWidth int

	stdout outputPane
	stderr outputPane

	width   int
	height  int
	started time.Time
	elapsed time.Duration

	quitting bool
	done     bool
	runErr   error

	styles *Styles
}

// Styles contains all the styling for the dashboard.
type Styles struct {
	Title        lipgloss.Style
	Pending      lipgloss.Style
	Running      lipgloss.Style
	Success      lipgloss.Style
	Failed       lipgloss.Style
	Counter      lipgloss.Style
	Help         lipgloss.Style
	StdoutBorder lipgloss.Style
	StderrBorder lipgloss.Style
	PaneTitle    lipgloss.Style
}

// NewStyles creates the default styling for the dashboard.
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12")),
		Pending: lipgloss.NewStyle().
			Foreground(lipgloss.Color("8")),
		Running: lipgloss.NewStyle().
			Foreground(lipgloss.Color("11")),
		Success: lipgloss.NewStyle().
			Foreground(lipgloss.Color("10")),
		Failed: lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Bold(true),
		Counter: lipgloss.NewStyle().
			Foreground(lipgloss.Color("7")),
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color("8")),
		StdoutBorder: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("10")),
		StderrBorder: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("9")),
		PaneTitle: lipgloss.NewStyle().
			Bold(true),
	}
}

// NewModel creates a dashboard model for the given job queue.
func NewModel(jobs []runner.Job) *Model {
	rows := make([]jobRow, 0, len(jobs))
	titleWidth := len(totalLabel)
	aggTotal := 0

	for _, job := range jobs {
		if len(job.Title) > titleWidth {
			titleWidth = len(job.Title)
		}

		aggTotal += job.Total()
		rows = append(rows, jobRow{
			title: job.Title,
			total: job.Total(),
			bar:   newBar(),
		})
	}

	return &Model{
		rows:       rows,
		totalBar:   newBar(),
		aggTotal:   aggTotal,
		titleWidth: titleWidth,
		stdout:     outputPane{name: "stdout"},
		stderr:     outputPane{name: "stderr"},
		width:      defaultWidth,
		started:    time.Now(),
		styles:     NewStyles(),
	}
}

func newBar() bprogress.Model {
	return bprogress.New(
		bprogress.WithDefaultGradient(),
		bprogress.WithoutPercentage(),
	)
}

// applyEvent folds a progress event into the display state. Counters come
// from the event snapshots, never from shared state.
func (m *Model) applyEvent(event progress.Event) tea.Cmd {
	row := m.row(event.JobIndex)

	switch event.Type {
	case progress.EventCommandStarted:
		if row != nil {
			row.status = StatusRunning
			row.detail = event.Message
		}

		m.stdout.reset()
		m.stderr.reset()

	case progress.EventOutput:
		if event.Data.IsStderr {
			m.stderr.write(event.Data.Line)
		} else {
			m.stdout.write(event.Data.Line)
		}

	case progress.EventCommandCompleted:
		if row != nil {
			row.done = event.Data.JobCompleted
		}

		m.aggDone = event.Data.AggregateCompleted
		m.aggTotal = event.Data.AggregateTotal

	case progress.EventJobFinished:
		if row != nil {
			row.status = StatusSucceeded
			row.detail = event.Message
		}

	case progress.EventRunCompleted:
		m.done = true
		return tea.Quit

	case progress.EventRunFailed:
		m.done = true
		m.runErr = event.Data.Err
		m.failRunningRow()

		return tea.Quit
	}

	return nil
}

func (m *Model) row(i int) *jobRow {
	if i < 0 || i >= len(m.rows) {
		return nil
	}

	return &m.rows[i]
}

func (m *Model) failRunningRow() {
	for i := range m.rows {
		if m.rows[i].status == StatusRunning {
			m.rows[i].status = StatusFailed
			return
		}
	}
}
