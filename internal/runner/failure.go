// Copyright (c) rigup-cli 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runner

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyCommand is returned when a command with no program name is executed.
	ErrEmptyCommand = errors.New("command has no program name")
	// ErrCouldNotStartProcess is returned when the process could not be started.
	ErrCouldNotStartProcess = errors.New("could not start process")
	// ErrFailedToCreatePipe is returned when the operating system pipe could not be created.
	ErrFailedToCreatePipe = errors.New("failed to create pipe")
	// ErrRunInterrupted is returned when the run context is cancelled while a
	// command is in flight. The child process is killed and both output
	// readers are joined before this error propagates.
	ErrRunInterrupted = errors.New("run interrupted")
)

// ProcessFailure reports a command that exited non-zero. It carries the
// command, the exit code and both captured streams so the operator can
// diagnose which external tool failed and why. It is never retried.
type ProcessFailure struct {
	Command  Command
	ExitCode int
	Stdout   string
	Stderr   string
}

// Error implements the error interface.
func (f *ProcessFailure) Error() string {
	return fmt.Sprintf("process failed: %s (exit code %d)", f.Command, f.ExitCode)
}
