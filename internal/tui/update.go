// Copyright (c) rigup-cli 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rigup-cli/rigup/internal/progress"
)

const (
	tickInterval     = time.Second
	elapsedRounding  = time.Second
	paneContentLines = 8
	paneChromeWidth  = 2 // rounded border, left and right
)

// ProgressEventMsg wraps a progress event for the tea framework.
type ProgressEventMsg struct {
	Event progress.Event
}

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init implements bubbletea.Model.Init.
func (m *Model) Init() tea.Cmd {
	return tick()
}

// Update implements bubbletea.Model.Update.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}

		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeBars()

		return m, nil

	case tickMsg:
		if m.done || m.quitting {
			return m, nil
		}

		m.elapsed = time.Since(m.started)

		return m, tick()

	case ProgressEventMsg:
		return m, m.applyEvent(msg.Event)
	}

	return m, nil
}

func (m *Model) resizeBars() {
	// title, bar, counter and a space between each
	barWidth := m.width - m.titleWidth - len(counter(999, 999)) - 4
	if barWidth < minBarWidth {
		barWidth = minBarWidth
	}

	if barWidth > maxBarWidth {
		barWidth = maxBarWidth
	}

	for i := range m.rows {
		m.rows[i].bar.Width = barWidth
	}

	m.totalBar.Width = barWidth
}

// View implements bubbletea.Model.View.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("rigup"))
	b.WriteString(m.styles.Counter.Render(
		fmt.Sprintf("  %s elapsed", m.elapsed.Round(elapsedRounding))))
	b.WriteString("\n\n")

	for i := range m.rows {
		m.renderRow(&b, &m.rows[i])
	}

	b.WriteString("\n")
	m.renderTotal(&b)
	b.WriteString("\n\n")
	b.WriteString(m.renderPanes())
	b.WriteString("\n")
	b.WriteString(m.footer())
	b.WriteString("\n")

	return b.String()
}

func (m *Model) renderRow(b *strings.Builder, row *jobRow) {
	b.WriteString(m.statusStyle(row.status).Render(pad(row.title, m.titleWidth)))
	b.WriteString(" ")
	b.WriteString(row.bar.ViewAs(row.percent()))
	b.WriteString(" ")
	b.WriteString(m.styles.Counter.Render(counter(row.done, row.total)))

	if row.detail != "" {
		b.WriteString("  ")

		switch row.status {
		case StatusSucceeded:
			b.WriteString(m.styles.Success.Render(row.detail))
		case StatusFailed:
			b.WriteString(m.styles.Failed.Render(row.detail))
		default:
			b.WriteString(m.styles.Running.Render(row.detail))
		}
	}

	b.WriteString("\n")
}

func (m *Model) renderTotal(b *strings.Builder) {
	pct := 1.0
	if m.aggTotal > 0 {
		pct = float64(m.aggDone) / float64(m.aggTotal)
	}

	b.WriteString(m.styles.Title.Render(pad(totalLabel, m.titleWidth)))
	b.WriteString(" ")
	b.WriteString(m.totalBar.ViewAs(pct))
	b.WriteString(" ")
	b.WriteString(m.styles.Counter.Render(counter(m.aggDone, m.aggTotal)))
	b.WriteString("\n")
}

func (m *Model) renderPanes() string {
	paneWidth := m.width/2 - paneChromeWidth - 1
	if paneWidth < minBarWidth {
		paneWidth = minBarWidth
	}

	out := m.renderPane(&m.stdout, m.styles.StdoutBorder, paneWidth)
	err := m.renderPane(&m.stderr, m.styles.StderrBorder, paneWidth)

	return lipgloss.JoinHorizontal(lipgloss.Top, out, " ", err)
}

func (m *Model) renderPane(pane *outputPane, border lipgloss.Style, width int) string {
	var b strings.Builder

	b.WriteString(m.styles.PaneTitle.Render(pane.name))
	b.WriteString("\n")

	for _, line := range pane.tail(paneContentLines) {
		b.WriteString(truncate(line, width))
		b.WriteString("\n")
	}

	return border.Width(width).Height(paneContentLines + 1).Render(b.String())
}

func (m *Model) footer() string {
	switch {
	case m.quitting:
		return m.styles.Failed.Render("aborting, waiting for the current command to stop")
	case m.done && m.runErr != nil:
		return m.styles.Failed.Render("installation failed: " + m.runErr.Error())
	case m.done:
		return m.styles.Success.Render("all packages installed")
	default:
		return m.styles.Help.Render("q to abort")
	}
}

func (m *Model) statusStyle(s JobStatus) lipgloss.Style {
	switch s {
	case StatusRunning:
		return m.styles.Running
	case StatusSucceeded:
		return m.styles.Success
	case StatusFailed:
		return m.styles.Failed
	default:
		return m.styles.Pending
	}
}

func counter(done, total int) string {
	return fmt.Sprintf("%d/%d", done, total)
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}

	return s + strings.Repeat(" ", width-len(s))
}

func truncate(s string, width int) string {
	if len(s) <= width {
		return s
	}

	if width <= 1 {
		return s[:width]
	}

	return s[:width-1] + "…"
}
