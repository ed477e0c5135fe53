// Copyright (c) rigup-cli 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package tui renders the live installation dashboard: one progress bar
// per job, an aggregate bar, and bordered stdout/stderr panes that tail
// the output of the command currently running.
package tui
