// Copyright (c) rigup-cli 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package progress

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/rigup-cli/rigup/internal/ctxlog"
)

// ChannelReporter implements Reporter using a Go channel. It provides a
// thread-safe way to deliver progress events to a single consumer.
type ChannelReporter struct {
	ch     chan Event
	ctx    context.Context
	cancel context.CancelFunc
	once   sync.Once
}

// NewChannelReporter creates a new ChannelReporter with the specified buffer
// size. A larger buffer reduces the chance of dropping events under load.
func NewChannelReporter(ctx context.Context, bufferSize int) *ChannelReporter {
	reporterCtx, cancel := context.WithCancel(ctx)

	return &ChannelReporter{
		ch:     make(chan Event, bufferSize),
		ctx:    reporterCtx,
		cancel: cancel,
	}
}

// Report implements Reporter.Report. It sends the event to the channel in a
// non-blocking manner; if the channel is full or closed the event is dropped.
func (cr *ChannelReporter) Report(event Event) {
	select {
	case <-cr.ctx.Done():
		return
	default:
	}

	select {
	case cr.ch <- event:
	case <-cr.ctx.Done():
	default:
	}
}

// Close implements Reporter.Close. It closes the channel and cancels the
// reporter's context.
func (cr *ChannelReporter) Close() {
	cr.once.Do(func() {
		cr.cancel()
		close(cr.ch)
	})
}

// Events returns a read-only channel of progress events.
func (cr *ChannelReporter) Events() <-chan Event {
	return cr.ch
}

// LogReporter implements Reporter by writing one log line per event through
// the context logger. It is the renderer used when no TUI is available
// (non-terminal stdout or --no-tui).
type LogReporter struct {
	ctx context.Context
}

// NewLogReporter creates a new LogReporter logging through the given context.
func NewLogReporter(ctx context.Context) *LogReporter {
	return &LogReporter{ctx: ctx}
}

// Report implements Reporter.Report.
func (lr *LogReporter) Report(event Event) {
	logger := ctxlog.Logger(lr.ctx)

	switch event.Type {
	case EventCommandStarted:
		logger.Info("running", "command", event.Message,
			"progress", aggregateString(event))
	case EventOutput:
		// Live output lines are debug-only in log mode; the captured
		// streams are printed in full if the command fails.
		logger.Debug("output", "stderr", event.Data.IsStderr,
			"line", strings.TrimRight(event.Data.Line, "\n"))
	case EventCommandCompleted:
		logger.Debug("command completed", "progress", aggregateString(event))
	case EventJobFinished:
		logger.Info("job finished", "message", event.Message)
	case EventRunCompleted:
		logger.Info("all jobs completed", "progress", aggregateString(event))
	case EventRunFailed:
		logger.Error("run failed", "error", event.Data.Err)
	}
}

// Close implements Reporter.Close.
func (lr *LogReporter) Close() {}

func aggregateString(event Event) string {
	return fmt.Sprintf("%d/%d", event.Data.AggregateCompleted, event.Data.AggregateTotal)
}
