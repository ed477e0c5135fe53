// Copyright (c) rigup-cli 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package color

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsColorCapable(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	assert.False(t, isColorCapable(), "expected color output to be disabled")

	t.Setenv("FORCE_COLOR", "1")
	assert.False(t, isColorCapable(), "NO_COLOR takes precedence over FORCE_COLOR")

	t.Setenv("NO_COLOR", "")
	assert.True(t, isColorCapable(), "expected color output to be enabled as FORCE_COLOR is set")
}

func TestControlString(t *testing.T) {
	assert.Equal(t, "\033[1m", ControlString(Bold))
	assert.Equal(t, "\033[1;31m", ControlString(Bold, FgRed))
}
