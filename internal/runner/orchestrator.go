// Copyright (c) rigup-cli 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runner

import (
	"context"
	"errors"
	"time"

	"github.com/rigup-cli/rigup/internal/ctxlog"
	"github.com/rigup-cli/rigup/internal/progress"
)

// StreamFunc executes one command, streaming output into the sinks. It is a
// seam for tests; the default is ExecuteStreaming.
type StreamFunc func(ctx context.Context, command Command, stdout, stderr Sink) error

// Orchestrator drives the job queue through the streaming executor and the
// progress tracker, emitting a progress event after every state mutation.
// Execution is strictly sequential: one command at a time, in job-list order,
// command-list order within each job. The run stops at the first failure.
type Orchestrator struct {
	tracker  *Tracker
	reporter progress.Reporter
	stream   StreamFunc
	stdout   *Buffer
	stderr   *Buffer
}

// OrchestratorOption configures an Orchestrator.
type OrchestratorOption func(*Orchestrator)

// WithStreamFunc replaces the streaming executor, used by tests to inject a
// fake that records invocations.
func WithStreamFunc(f StreamFunc) OrchestratorOption {
	return func(o *Orchestrator) {
		o.stream = f
	}
}

// NewOrchestrator creates an orchestrator for the given job list. A nil
// reporter disables progress events.
func NewOrchestrator(jobs []Job, reporter progress.Reporter, opts ...OrchestratorOption) (*Orchestrator, error) {
	tracker, err := NewTracker(jobs)
	if err != nil {
		return nil, err
	}

	if reporter == nil {
		reporter = progress.NewNullReporter()
	}

	o := &Orchestrator{
		tracker:  tracker,
		reporter: reporter,
		stream:   ExecuteStreaming,
		stdout:   &Buffer{},
		stderr:   &Buffer{},
	}

	for _, opt := range opts {
		opt(o)
	}

	return o, nil
}

// Tracker exposes the orchestrator's progress tracker for read access.
func (o *Orchestrator) Tracker() *Tracker {
	return o.tracker
}

// Run executes every pending command in queue order. It returns nil when all
// jobs complete, or the first failure unmodified (fail-fast: no further
// commands run). Output buffers are reset before each command so stale
// output never bleeds into the next command's display.
func (o *Orchestrator) Run(ctx context.Context) error {
	logger := ctxlog.Logger(ctx)

	for {
		if err := context.Cause(ctx); err != nil {
			err = errors.Join(ErrRunInterrupted, err)
			o.reportRunFailed(err)

			return err
		}

		idx, job, err := o.tracker.CurrentJob()
		if errors.Is(err, ErrNoCurrentJob) {
			o.report(-1, progress.EventRunCompleted, "all jobs completed", progress.EventData{})

			return nil
		}

		command, err := o.tracker.CurrentCommand()
		if err != nil {
			return err
		}

		o.stdout.Reset()
		o.stderr.Reset()

		o.report(idx, progress.EventCommandStarted, command.String(), progress.EventData{})
		logger.Debug("executing command", "job", job.Title, "command", command.String())

		outSink := &reportingSink{buf: o.stdout, reporter: o.reporter, jobIndex: idx}
		errSink := &reportingSink{buf: o.stderr, reporter: o.reporter, jobIndex: idx, isStderr: true}

		if err := o.stream(ctx, command, outSink, errSink); err != nil {
			o.reportRunFailed(err)
			logger.Debug("command failed, aborting run", "job", job.Title, "error", err)

			return err
		}

		if err := o.tracker.Advance(idx); err != nil {
			o.reportRunFailed(err)

			return err
		}

		o.report(idx, progress.EventCommandCompleted, command.String(), progress.EventData{})

		if o.tracker.JobFinished(idx) {
			o.report(idx, progress.EventJobFinished, job.FinishMessage, progress.EventData{})
			logger.Info("job finished", "job", job.Title, "message", job.FinishMessage)
		}
	}
}

// report emits an event carrying a snapshot of the progress counters.
func (o *Orchestrator) report(jobIndex int, et progress.EventType, msg string, data progress.EventData) {
	data.AggregateCompleted, data.AggregateTotal = o.tracker.Aggregate()

	if jobIndex >= 0 {
		data.JobCompleted = o.tracker.Completed(jobIndex)
		data.JobTotal = o.tracker.Jobs()[jobIndex].Total()
	}

	o.reporter.Report(progress.Event{
		JobIndex:  jobIndex,
		Type:      et,
		Message:   msg,
		Timestamp: time.Now(),
		Data:      data,
	})
}

func (o *Orchestrator) reportRunFailed(err error) {
	o.report(-1, progress.EventRunFailed, err.Error(), progress.EventData{Err: err})
}

// reportingSink appends to the capture buffer and forwards each chunk as an
// output event. Only the pipe reader goroutine writes to it, one command at
// a time, so the buffer's own locking suffices.
type reportingSink struct {
	buf      *Buffer
	reporter progress.Reporter
	jobIndex int
	isStderr bool
}

var _ Sink = (*reportingSink)(nil)

// Append implements Sink.
func (s *reportingSink) Append(text string) {
	s.buf.Append(text)

	s.reporter.Report(progress.Event{
		JobIndex:  s.jobIndex,
		Type:      progress.EventOutput,
		Timestamp: time.Now(),
		Data: progress.EventData{
			Line:     text,
			IsStderr: s.isStderr,
		},
	})
}

// String exposes the captured text so a ProcessFailure can carry it.
func (s *reportingSink) String() string {
	return s.buf.String()
}
