// Copyright (c) rigup-cli 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package tui

import (
	"context"
	"errors"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rigup-cli/rigup/internal/progress"
	"github.com/rigup-cli/rigup/internal/runner"
)

// ErrTUI is returned when the terminal UI itself fails.
var ErrTUI = errors.New("terminal ui error")

// TUIReporter implements progress.Reporter and forwards events to the
// dashboard. Send is safe from the orchestrator goroutine; bubbletea drops
// messages once the program has stopped.
type TUIReporter struct {
	program *tea.Program
	closed  bool
	mutex   sync.RWMutex
}

// NewTUIReporter creates a new dashboard progress reporter.
func NewTUIReporter(program *tea.Program) *TUIReporter {
	return &TUIReporter{
		program: program,
	}
}

// Report implements progress.Reporter.
func (tr *TUIReporter) Report(event progress.Event) {
	tr.mutex.RLock()
	defer tr.mutex.RUnlock()

	if tr.closed || tr.program == nil {
		return
	}

	tr.program.Send(ProgressEventMsg{Event: event})
}

// Close implements progress.Reporter.
func (tr *TUIReporter) Close() {
	tr.mutex.Lock()
	defer tr.mutex.Unlock()
	tr.closed = true
}

// Runner couples the dashboard with an orchestrator run.
type Runner struct {
	model    *Model
	program  *tea.Program
	reporter *TUIReporter
}

// NewRunner creates a dashboard runner for the given job queue. The
// program uses the inline renderer so the final frame stays in the
// scrollback after exit.
func NewRunner(jobs []runner.Job) *Runner {
	model := NewModel(jobs)
	program := tea.NewProgram(model)

	return &Runner{
		model:    model,
		program:  program,
		reporter: NewTUIReporter(program),
	}
}

// Reporter returns the progress reporter feeding this dashboard. Wire it
// into the orchestrator before calling Run.
func (r *Runner) Reporter() progress.Reporter {
	return r.reporter
}

// Run executes the orchestrator while the dashboard is on screen. The
// dashboard quits itself when the run completes or fails; if the user
// aborts first, the run context is cancelled and the in-flight command
// is killed. The orchestrator's error is returned unmodified.
func (r *Runner) Run(ctx context.Context, orch *runner.Orchestrator) error {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	runDone := make(chan error, 1)

	go func() {
		runDone <- orch.Run(runCtx)
	}()

	_, tuiErr := r.program.Run()

	// Either the run already finished, or the user quit and the
	// orchestrator must be stopped before we can collect its error.
	cancel()

	err := <-runDone

	r.reporter.Close()

	if tuiErr != nil {
		return errors.Join(ErrTUI, tuiErr)
	}

	return err
}
