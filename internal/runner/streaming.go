// Copyright (c) rigup-cli 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runner

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"sync"

	"github.com/rigup-cli/rigup/internal/ctxlog"
)

// ExecuteStreaming runs the command with pipes for stdout and stderr and two
// concurrent readers that append each decoded line to the corresponding sink
// as it arrives, making output live rather than buffered-then-shown.
//
// The readers run as real goroutines because pipe reads block: a
// single-threaded design would deadlock if both pipes filled simultaneously.
// Both readers are always joined before any outcome is reported, so a fast
// exit can never truncate the captured output used for error messages.
//
// If the context is cancelled while the command runs, the child process is
// killed, the readers are joined, and ErrRunInterrupted propagates with the
// cancellation cause. On non-zero exit the returned *ProcessFailure carries
// the final sink contents.
func ExecuteStreaming(ctx context.Context, command Command, stdout, stderr Sink) error {
	if command.Empty() {
		return ErrEmptyCommand
	}

	logger := ctxlog.Logger(ctx).With("command", command.String())

	ecmd := exec.Command(command.Path, command.Args...)

	outPipe, err := ecmd.StdoutPipe()
	if err != nil {
		return errors.Join(ErrFailedToCreatePipe, err)
	}

	errPipe, err := ecmd.StderrPipe()
	if err != nil {
		return errors.Join(ErrFailedToCreatePipe, err)
	}

	if err := ecmd.Start(); err != nil {
		return errors.Join(ErrCouldNotStartProcess, err)
	}

	logger.Debug("process started", "pid", ecmd.Process.Pid)

	var wg sync.WaitGroup

	wg.Add(2)

	go drainLines(outPipe, stdout, &wg)
	go drainLines(errPipe, stderr, &wg)

	// Watchdog: kill the child if the run is cancelled while it is in flight.
	done := make(chan struct{})
	interrupted := make(chan error, 1)

	go func() {
		select {
		case <-ctx.Done():
			logger.Info("run cancelled, killing process", "pid", ecmd.Process.Pid)
			killProcess(ctx, ecmd.Process)
			interrupted <- context.Cause(ctx)
		case <-done:
			interrupted <- nil
		}
	}()

	// Join the readers before reaping the process. Killing the child closes
	// the pipes, so this wait is bounded by the child's own lifetime.
	wg.Wait()

	err = ecmd.Wait()

	close(done)

	if cause := <-interrupted; cause != nil {
		return errors.Join(ErrRunInterrupted, cause)
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			logger.Debug("process exited non-zero", "exitCode", exitErr.ExitCode())

			return &ProcessFailure{
				Command:  command,
				ExitCode: exitErr.ExitCode(),
				Stdout:   sinkContents(stdout),
				Stderr:   sinkContents(stderr),
			}
		}

		return err
	}

	logger.Debug("process completed")

	return nil
}

// drainLines reads the pipe line-wise and appends each line, newline
// included, to the sink until the pipe is exhausted.
func drainLines(r io.Reader, sink Sink, wg *sync.WaitGroup) {
	defer wg.Done()

	br := bufio.NewReader(r)

	for {
		line, err := br.ReadString('\n')
		if line != "" {
			sink.Append(line)
		}

		if err != nil {
			return
		}
	}
}

func killProcess(ctx context.Context, ps *os.Process) {
	if err := ps.Kill(); err != nil {
		if errors.Is(err, os.ErrProcessDone) {
			ctxlog.Logger(ctx).Debug("process already done", "pid", ps.Pid)
			return
		}

		ctxlog.Logger(ctx).Error("process kill error", "pid", ps.Pid, "error", err)

		return
	}

	ctxlog.Logger(ctx).Info("process killed", "pid", ps.Pid)
}
