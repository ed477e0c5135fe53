// Copyright (c) rigup-cli 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package elevate ensures privileged commands can run without repeated
// interactive prompts during a run. It probes with a non-interactive
// privileged no-op; if the probe fails it performs one interactive
// privileged no-op up front, caching the credentials.
package elevate

import (
	"context"
	"errors"
	"os"
	"os/exec"

	"github.com/rigup-cli/rigup/internal/ctxlog"
	"github.com/rigup-cli/rigup/internal/runner"
)

// ErrElevationFailed is returned when privileged access could not be obtained.
var ErrElevationFailed = errors.New("could not obtain elevated privileges")

const elevationProgram = "sudo"

// Command seams, stubbed in tests.
var (
	probeCommand   = runner.NewCommand(elevationProgram, "-n", "true")
	promptCommand  = runner.NewCommand(elevationProgram, "true")
	runInteractive = func(ctx context.Context, command runner.Command) error {
		ecmd := exec.CommandContext(ctx, command.Path, command.Args...)
		ecmd.Stdin = os.Stdin
		ecmd.Stdout = os.Stdout
		ecmd.Stderr = os.Stderr

		return ecmd.Run()
	}
)

// NeedsElevation reports whether any scheduled command elevates privileges.
func NeedsElevation(jobs []runner.Job) bool {
	for _, job := range jobs {
		for _, command := range job.Commands {
			if command.Path == elevationProgram {
				return true
			}
		}
	}

	return false
}

// Ensure is the pre-run elevation check: a precondition of the run, not part
// of the per-command loop. It returns nil once credentials are cached.
func Ensure(ctx context.Context) error {
	if _, err := runner.Execute(ctx, probeCommand, nil); err == nil {
		ctxlog.Debug(ctx, "elevated credentials already cached")
		return nil
	}

	ctxlog.Info(ctx, "checking for sudo access (may request your password)")

	if err := runInteractive(ctx, promptCommand); err != nil {
		return errors.Join(ErrElevationFailed, err)
	}

	return nil
}
