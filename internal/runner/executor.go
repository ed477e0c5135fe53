// Copyright (c) rigup-cli 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runner

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"

	"github.com/rigup-cli/rigup/internal/ctxlog"
)

// Execute runs the command as a child process with stdout and stderr fully
// captured, blocking until it exits. The optional stdin bytes are fed to the
// process's standard input. On exit code 0 it returns the captured stdout
// with a single trailing newline stripped. On non-zero exit it returns a
// *ProcessFailure carrying both captured streams.
func Execute(ctx context.Context, command Command, stdin []byte) (string, error) {
	if command.Empty() {
		return "", ErrEmptyCommand
	}

	logger := ctxlog.Logger(ctx).With("command", command.String())
	logger.Debug("executing captured command")

	ecmd := exec.CommandContext(ctx, command.Path, command.Args...)
	if stdin != nil {
		ecmd.Stdin = bytes.NewReader(stdin)
	}

	var outBuf, errBuf bytes.Buffer

	ecmd.Stdout = &outBuf
	ecmd.Stderr = &errBuf

	err := ecmd.Run()

	if ctxErr := context.Cause(ctx); ctxErr != nil {
		return "", errors.Join(ErrRunInterrupted, ctxErr)
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			logger.Debug("process exited non-zero", "exitCode", exitErr.ExitCode())

			return "", &ProcessFailure{
				Command:  command,
				ExitCode: exitErr.ExitCode(),
				Stdout:   outBuf.String(),
				Stderr:   errBuf.String(),
			}
		}

		return "", errors.Join(ErrCouldNotStartProcess, err)
	}

	logger.Debug("process completed", "stdoutBytes", outBuf.Len())

	return strings.TrimSuffix(outBuf.String(), "\n"), nil
}
