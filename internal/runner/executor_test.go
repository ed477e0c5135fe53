// Copyright (c) rigup-cli 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runner

import (
	"context"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func skipOnWindows(t *testing.T) {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("skipping shell-based test on windows")
	}
}

func TestExecuteSuccess(t *testing.T) {
	skipOnWindows(t)

	out, err := Execute(context.Background(), NewCommand("echo", "hello"), nil)
	require.NoError(t, err)
	assert.Equal(t, "hello", out, "trailing newline is stripped")
}

func TestExecuteFailure(t *testing.T) {
	skipOnWindows(t)

	cmd := NewCommand("sh", "-c", "echo out; echo err 1>&2; exit 3")

	_, err := Execute(context.Background(), cmd, nil)
	require.Error(t, err)

	var failure *ProcessFailure

	require.ErrorAs(t, err, &failure)
	assert.Equal(t, 3, failure.ExitCode)
	assert.Equal(t, cmd, failure.Command)
	assert.Equal(t, "out\n", failure.Stdout)
	assert.Equal(t, "err\n", failure.Stderr)
	assert.Contains(t, failure.Error(), "exit code 3")
}

func TestExecuteStdin(t *testing.T) {
	skipOnWindows(t)

	out, err := Execute(context.Background(), NewCommand("cat"), []byte("fed via stdin"))
	require.NoError(t, err)
	assert.Equal(t, "fed via stdin", out)
}

func TestExecuteNotFound(t *testing.T) {
	_, err := Execute(context.Background(), NewCommand("/not/a/real/command"), nil)
	require.ErrorIs(t, err, ErrCouldNotStartProcess)
}

func TestExecuteEmptyCommand(t *testing.T) {
	_, err := Execute(context.Background(), Command{}, nil)
	require.ErrorIs(t, err, ErrEmptyCommand)
}
