// Copyright (c) rigup-cli 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runner

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

// recordingSink records every appended chunk, for asserting arrival order.
type recordingSink struct {
	mu     sync.Mutex
	chunks []string
}

func (s *recordingSink) Append(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.chunks = append(s.chunks, text)
}

func (s *recordingSink) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return strings.Join(s.chunks, "")
}

func TestExecuteStreamingInterleavedStreams(t *testing.T) {
	skipOnWindows(t)
	defer goleak.VerifyNone(t)

	const n = 20

	script := fmt.Sprintf("i=1; while [ $i -le %d ]; do echo out$i; echo err$i 1>&2; i=$((i+1)); done", n)

	stdout := &recordingSink{}
	stderr := &recordingSink{}

	err := ExecuteStreaming(context.Background(), NewCommand("sh", "-c", script), stdout, stderr)
	require.NoError(t, err)

	// Every line of each stream arrives, in order per stream, regardless of
	// the interleaving between the two.
	outLines := strings.Split(strings.TrimSuffix(stdout.String(), "\n"), "\n")
	errLines := strings.Split(strings.TrimSuffix(stderr.String(), "\n"), "\n")
	require.Len(t, outLines, n)
	require.Len(t, errLines, n)

	for i := range n {
		assert.Equal(t, fmt.Sprintf("out%d", i+1), outLines[i])
		assert.Equal(t, fmt.Sprintf("err%d", i+1), errLines[i])
	}
}

func TestExecuteStreamingFailureCarriesSinkContents(t *testing.T) {
	skipOnWindows(t)
	defer goleak.VerifyNone(t)

	stdout := &Buffer{}
	stderr := &Buffer{}

	err := ExecuteStreaming(context.Background(),
		NewCommand("sh", "-c", "echo partial; echo broken 1>&2; exit 7"), stdout, stderr)
	require.Error(t, err)

	var failure *ProcessFailure

	require.ErrorAs(t, err, &failure)
	assert.Equal(t, 7, failure.ExitCode)
	assert.Equal(t, "partial\n", failure.Stdout)
	assert.Equal(t, "broken\n", failure.Stderr)
}

func TestExecuteStreamingCancellationKillsChild(t *testing.T) {
	skipOnWindows(t)
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		time.Sleep(100 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	err := ExecuteStreaming(ctx, NewCommand("sleep", "30"), &Buffer{}, &Buffer{})
	elapsed := time.Since(start)

	require.ErrorIs(t, err, ErrRunInterrupted)
	require.ErrorIs(t, err, context.Canceled)
	assert.Less(t, elapsed, 5*time.Second, "child must be killed, not waited for")
}

func TestExecuteStreamingFastExitDoesNotTruncateOutput(t *testing.T) {
	skipOnWindows(t)
	defer goleak.VerifyNone(t)

	stdout := &Buffer{}

	// A command that exits immediately after writing: the readers must be
	// joined before the outcome is reported, so nothing may be lost.
	err := ExecuteStreaming(context.Background(),
		NewCommand("sh", "-c", "echo last words"), stdout, &Buffer{})
	require.NoError(t, err)
	assert.Equal(t, "last words\n", stdout.String())
}

func TestExecuteStreamingEmptyCommand(t *testing.T) {
	err := ExecuteStreaming(context.Background(), Command{}, &Buffer{}, &Buffer{})
	require.ErrorIs(t, err, ErrEmptyCommand)
}

func TestBufferResetClearsContents(t *testing.T) {
	b := &Buffer{}
	b.Append("stale output\n")
	require.Positive(t, b.Len())

	b.Reset()
	assert.Zero(t, b.Len())
	assert.Empty(t, b.String())
}
