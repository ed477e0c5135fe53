// Copyright (c) rigup-cli 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package main is the entry point for the rigup command-line application.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rigup-cli/rigup"
	"github.com/rigup-cli/rigup/cmd"
	"github.com/rigup-cli/rigup/internal/ctxlog"
	"github.com/rigup-cli/rigup/internal/signalbroker"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	ctx = ctxlog.New(ctx, ctxlog.DefaultLogger)
	defer cancel()

	sigCh := signalbroker.New(ctx)

	go signalbroker.Watch(ctx, sigCh, cancel)

	cmd.RootCmd.Version = fmt.Sprintf("%s (commit: %s)", rigup.Version, rigup.Commit)

	err := cmd.RootCmd.Run(ctx, os.Args)

	// Check if the context was cancelled (e.g., due to signals)
	if ctx.Err() != nil {
		ctxlog.Logger(ctx).Error("run terminated due to cancellation", "error", ctx.Err())
		os.Exit(1)
	}

	if err != nil {
		ctxlog.Logger(ctx).Error("run failed", "error", err)
		os.Exit(1)
	}
}
