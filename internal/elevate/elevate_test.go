// Copyright (c) rigup-cli 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package elevate

import (
	"context"
	"errors"
	"testing"

	"github.com/prashantv/gostub"
	"github.com/rigup-cli/rigup/internal/runner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureProbeSucceeds(t *testing.T) {
	stubs := gostub.Stub(&probeCommand, runner.NewCommand("true"))
	defer stubs.Reset()

	prompted := false
	stubs.Stub(&runInteractive, func(context.Context, runner.Command) error {
		prompted = true
		return nil
	})

	require.NoError(t, Ensure(context.Background()))
	assert.False(t, prompted, "no interactive prompt when credentials are cached")
}

func TestEnsurePromptsOnceWhenProbeFails(t *testing.T) {
	stubs := gostub.Stub(&probeCommand, runner.NewCommand("false"))
	defer stubs.Reset()

	prompts := 0
	stubs.Stub(&runInteractive, func(context.Context, runner.Command) error {
		prompts++
		return nil
	})

	require.NoError(t, Ensure(context.Background()))
	assert.Equal(t, 1, prompts)
}

func TestEnsureInteractiveFailure(t *testing.T) {
	stubs := gostub.Stub(&probeCommand, runner.NewCommand("false"))
	defer stubs.Reset()

	stubs.Stub(&runInteractive, func(context.Context, runner.Command) error {
		return errors.New("denied")
	})

	err := Ensure(context.Background())
	require.ErrorIs(t, err, ErrElevationFailed)
}

func TestNeedsElevation(t *testing.T) {
	withSudo := []runner.Job{{
		Title:    "apt",
		Commands: []runner.Command{runner.NewCommand("sudo", "apt", "update", "-y")},
	}}
	withoutSudo := []runner.Job{{
		Title:    "pip",
		Commands: []runner.Command{runner.NewCommand("python3", "-m", "pip", "install", "-U", "black")},
	}}

	assert.True(t, NeedsElevation(withSudo))
	assert.False(t, NeedsElevation(withoutSudo))
}
