// Copyright (c) rigup-cli 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package progress defines the events emitted by the run orchestrator and
// the Reporter interface used to deliver them to renderers. Every state
// mutation of a run (command started, output line, command completed, job
// finished, run completed or failed) produces one event carrying a snapshot
// of the progress counters, so a renderer never needs shared access to the
// orchestrator's state.
package progress
