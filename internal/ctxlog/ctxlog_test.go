// Copyright (c) rigup-cli 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package ctxlog

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerReturnsDefaultWhenUnset(t *testing.T) {
	logger := Logger(context.Background())
	require.NotNil(t, logger)
	assert.Same(t, DefaultLogger, logger)
}

func TestNewAndLoggerRoundTrip(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := slog.New(NewPrettyHandler(&slog.HandlerOptions{
		Level: slog.LevelDebug,
	}, WithDestinationWriter(buf)))

	ctx := New(context.Background(), logger)
	assert.Same(t, logger, Logger(ctx))

	Info(ctx, "hello", "key", "value")
	assert.Contains(t, buf.String(), "hello")
	assert.Contains(t, buf.String(), "value")
}

func TestNewForTUIWritesToBuffer(t *testing.T) {
	buf := &bytes.Buffer{}
	ctx := NewForTUI(context.Background(), buf)

	Logger(ctx).Error("boom", "detail", "pipe burst")
	assert.Contains(t, buf.String(), "boom")
	assert.Contains(t, buf.String(), "pipe burst")
}

func TestPrettyHandlerSuppressesDefaultKeys(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := slog.New(NewPrettyHandler(&slog.HandlerOptions{
		Level: slog.LevelDebug,
	}, WithDestinationWriter(buf)))

	logger.Warn("message only")

	out := buf.String()
	assert.Contains(t, out, "message only")
	assert.NotContains(t, out, `"msg"`)
	assert.NotContains(t, out, `"level"`)
}
