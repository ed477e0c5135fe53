// Copyright (c) rigup-cli 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package progress

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/rigup-cli/rigup/internal/ctxlog"
	"github.com/stretchr/testify/assert"
)

func TestLogReporterLogsEvents(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := slog.New(ctxlog.NewPrettyHandler(&slog.HandlerOptions{
		Level: slog.LevelDebug,
	}, ctxlog.WithDestinationWriter(buf)))

	lr := NewLogReporter(ctxlog.New(context.Background(), logger))
	defer lr.Close()

	lr.Report(Event{
		Type:    EventCommandStarted,
		Message: "sudo apt update -y",
		Data:    EventData{AggregateTotal: 3},
	})
	lr.Report(Event{
		Type: EventOutput,
		Data: EventData{Line: "Reading package lists...\n"},
	})
	lr.Report(Event{
		Type: EventRunFailed,
		Data: EventData{Err: errors.New("process failed")},
	})

	out := buf.String()
	assert.Contains(t, out, "sudo apt update -y")
	assert.Contains(t, out, "0/3")
	assert.Contains(t, out, "Reading package lists...")
	assert.NotContains(t, out, "Reading package lists...\\n", "trailing newline is trimmed")
	assert.Contains(t, out, "run failed")
}
