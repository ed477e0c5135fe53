// Copyright (c) rigup-cli 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package signalbroker

import (
	"context"
	"os"

	"github.com/rigup-cli/rigup/internal/ctxlog"
)

// exit allows tests to intercept the forced termination path.
var exit = os.Exit

const forcedExitCode = 130

// Watch monitors the signal channel. The first signal cancels the context,
// which aborts the run cleanly: the in-flight child process is killed and
// its output readers are joined before the process exits. A second signal
// forcefully terminates the process.
func Watch(ctx context.Context, sigCh chan os.Signal, cancel context.CancelFunc) {
	received := false

	for sig := range sigCh {
		if received {
			ctxlog.Logger(ctx).Error("watchdog", "detail", "received second signal, forcefully terminating", "signal", sig.String())
			exit(forcedExitCode)

			return
		}

		received = true

		ctxlog.Logger(ctx).Info("watchdog", "detail", "received signal, cancelling run", "signal", sig.String())
		cancel()
	}
}
