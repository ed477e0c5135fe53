// Copyright (c) rigup-cli 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoJobs() []Job {
	return []Job{
		{
			Title: "apt",
			Commands: []Command{
				NewCommand("sudo", "apt", "update", "-y"),
				NewCommand("sudo", "apt", "install", "-y", "ripgrep"),
			},
			FinishMessage: "1 package installed",
		},
		{
			Title: "pip",
			Commands: []Command{
				NewCommand("python3", "-m", "pip", "install", "-U", "black"),
			},
			FinishMessage: "1 package installed",
		},
	}
}

func TestNewTrackerEmptyJobList(t *testing.T) {
	_, err := NewTracker(nil)
	require.ErrorIs(t, err, ErrEmptyJobList)
}

func TestTrackerVisitsJobsInOrder(t *testing.T) {
	tracker, err := NewTracker(twoJobs())
	require.NoError(t, err)

	idx, job, err := tracker.CurrentJob()
	require.NoError(t, err)
	assert.Equal(t, 0, idx)
	assert.Equal(t, "apt", job.Title)

	cmd, err := tracker.CurrentCommand()
	require.NoError(t, err)
	assert.Equal(t, "sudo apt update -y", cmd.String())

	require.NoError(t, tracker.Advance(0))

	cmd, err = tracker.CurrentCommand()
	require.NoError(t, err)
	assert.Equal(t, "sudo apt install -y ripgrep", cmd.String())

	require.NoError(t, tracker.Advance(0))
	assert.True(t, tracker.JobFinished(0))

	idx, job, err = tracker.CurrentJob()
	require.NoError(t, err)
	assert.Equal(t, 1, idx)
	assert.Equal(t, "pip", job.Title)

	require.NoError(t, tracker.Advance(1))

	_, _, err = tracker.CurrentJob()
	assert.ErrorIs(t, err, ErrNoCurrentJob, "all jobs complete")

	_, err = tracker.CurrentCommand()
	assert.ErrorIs(t, err, ErrNoCurrentJob)

	done, total := tracker.Aggregate()
	assert.Equal(t, 3, done)
	assert.Equal(t, 3, total)
}

func TestTrackerAdvanceFinishedJob(t *testing.T) {
	tracker, err := NewTracker([]Job{
		{Title: "brew", Commands: []Command{NewCommand("brew", "update")}},
	})
	require.NoError(t, err)

	require.NoError(t, tracker.Advance(0))

	err = tracker.Advance(0)
	require.ErrorIs(t, err, ErrJobAlreadyDone)

	err = tracker.Advance(5)
	require.ErrorIs(t, err, ErrJobAlreadyDone, "out of range index is an invariant violation")
}

func TestTrackerSkipsZeroCommandJobs(t *testing.T) {
	tracker, err := NewTracker([]Job{
		{Title: "empty"},
		{Title: "snap", Commands: []Command{NewCommand("sudo", "snap", "refresh")}},
	})
	require.NoError(t, err)

	idx, job, err := tracker.CurrentJob()
	require.NoError(t, err)
	assert.Equal(t, 1, idx, "zero-command job trivially completes with progress 0/0")
	assert.Equal(t, "snap", job.Title)

	require.NoError(t, tracker.Advance(1))

	_, _, err = tracker.CurrentJob()
	assert.ErrorIs(t, err, ErrNoCurrentJob)
}
