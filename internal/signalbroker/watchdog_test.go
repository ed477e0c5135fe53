// Copyright (c) rigup-cli 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package signalbroker

import (
	"context"
	"os"
	"sync"
	"syscall"
	"testing"
	"time"

	"github.com/prashantv/gostub"
	"github.com/rigup-cli/rigup/internal/ctxlog"
	"github.com/stretchr/testify/assert"
)

func TestWatchFirstSignalCancels(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ctx = ctxlog.New(ctx, ctxlog.DefaultLogger)

	sigCh := make(chan os.Signal, 1)

	var wg sync.WaitGroup

	wg.Add(1)

	go func() {
		defer wg.Done()
		Watch(ctx, sigCh, cancel)
	}()

	sigCh <- syscall.SIGTERM

	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("context was not cancelled after first signal")
	}

	close(sigCh)
	wg.Wait()
}

func TestWatchSecondSignalForcesExit(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ctx = ctxlog.New(ctx, ctxlog.DefaultLogger)

	exitCode := -1
	stubs := gostub.Stub(&exit, func(code int) { exitCode = code })

	defer stubs.Reset()

	sigCh := make(chan os.Signal, 2)
	sigCh <- syscall.SIGINT
	sigCh <- syscall.SIGINT
	close(sigCh)

	Watch(ctx, sigCh, cancel)

	assert.Equal(t, forcedExitCode, exitCode, "expected forced exit on second signal")
}
