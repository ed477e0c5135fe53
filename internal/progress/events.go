// Copyright (c) rigup-cli 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package progress

import (
	"time"
)

// Event represents a real-time update from the run orchestrator.
type Event struct {
	JobIndex  int       // Index of the job this event relates to, -1 for run-level events
	Type      EventType // Event type indicating what happened
	Message   string    // Human-readable status message (pending argv, finish message, failure summary)
	Timestamp time.Time // When the event occurred
	Data      EventData // Type-specific data
}

// EventType represents the type of progress event.
type EventType int

const (
	// EventCommandStarted indicates a command has begun execution.
	// Renderers clear their output panes on this event.
	EventCommandStarted EventType = iota
	// EventOutput indicates a new stdout/stderr line is available.
	EventOutput
	// EventCommandCompleted indicates a command finished successfully and
	// the progress counters advanced.
	EventCommandCompleted
	// EventJobFinished indicates every command of a job has completed.
	EventJobFinished
	// EventRunCompleted indicates the whole run finished successfully.
	EventRunCompleted
	// EventRunFailed indicates the run stopped at the first command failure.
	EventRunFailed
)

// String implements the Stringer interface for EventType.
func (et EventType) String() string {
	switch et {
	case EventCommandStarted:
		return "command started"
	case EventOutput:
		return "output"
	case EventCommandCompleted:
		return "command completed"
	case EventJobFinished:
		return "job finished"
	case EventRunCompleted:
		return "run completed"
	case EventRunFailed:
		return "run failed"
	default:
		return "unknown"
	}
}

// EventData contains type-specific information for progress events.
type EventData struct {
	// For EventOutput
	Line     string // The output line, newline included
	IsStderr bool   // True if this is stderr output

	// Counter snapshot, populated on every event type except EventOutput
	JobCompleted       int // Completed commands of the event's job
	JobTotal           int // Total commands of the event's job
	AggregateCompleted int // Completed commands across all jobs
	AggregateTotal     int // Total commands across all jobs

	// For EventRunFailed
	Err error // The failure that stopped the run
}

// Reporter is the interface for sending progress events.
type Reporter interface {
	// Report sends a progress event. Implementations should be non-blocking
	// and handle the case where the receiver might not be listening.
	Report(event Event)
	// Close signals that no more events will be sent and cleans up resources.
	Close()
}

// NullReporter is a no-op implementation of Reporter, used when progress
// reporting is not needed.
type NullReporter struct{}

// Report implements Reporter.Report by doing nothing.
func (nr *NullReporter) Report(Event) {}

// Close implements Reporter.Close by doing nothing.
func (nr *NullReporter) Close() {}

// NewNullReporter creates a new NullReporter.
func NewNullReporter() Reporter {
	return &NullReporter{}
}
