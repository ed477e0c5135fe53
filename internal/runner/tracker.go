// Copyright (c) rigup-cli 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runner

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrNoCurrentJob is the control condition meaning "run complete": every
	// job's completed count equals its total. It is not a real error and must
	// never be confused with a command failure.
	ErrNoCurrentJob = errors.New("no current job: all jobs complete")
	// ErrEmptyJobList is returned when a tracker is created with no jobs.
	// An empty run is a programming error, not a recoverable condition.
	ErrEmptyJobList = errors.New("job list is empty")
	// ErrJobAlreadyDone is returned when a finished job is advanced.
	// This is an invariant violation and aborts the run.
	ErrJobAlreadyDone = errors.New("job already finished")
)

// Tracker maintains per-job and aggregate progress counters for a fixed,
// ordered list of jobs. Jobs are visited strictly in list order; progress
// only ever moves forward. The tracker is mutated only by the orchestrator
// goroutine, so no locking is required.
type Tracker struct {
	jobs           []Job
	completed      []int
	aggregateDone  int
	aggregateTotal int
}

// NewTracker creates a tracker for the given job list. Jobs with zero
// commands trivially complete with progress 0/0 and are never current.
func NewTracker(jobs []Job) (*Tracker, error) {
	if len(jobs) == 0 {
		return nil, ErrEmptyJobList
	}

	total := 0
	for _, j := range jobs {
		total += j.Total()
	}

	return &Tracker{
		jobs:           slices.Clone(jobs),
		completed:      make([]int, len(jobs)),
		aggregateTotal: total,
	}, nil
}

// Jobs returns the tracked job list, in order.
func (t *Tracker) Jobs() []Job {
	return t.jobs
}

// CurrentJob returns the index and value of the first job, in list order,
// whose completed count is less than its total. It returns ErrNoCurrentJob
// when every job is finished.
func (t *Tracker) CurrentJob() (int, Job, error) {
	for i, j := range t.jobs {
		if t.completed[i] < j.Total() {
			return i, j, nil
		}
	}

	return 0, Job{}, ErrNoCurrentJob
}

// CurrentCommand returns the next pending command: the command at index
// "completed" within the current job's command list.
func (t *Tracker) CurrentCommand() (Command, error) {
	i, j, err := t.CurrentJob()
	if err != nil {
		return Command{}, err
	}

	return j.Commands[t.completed[i]], nil
}

// Advance increments job i's completed counter and the aggregate counter by
// one. Advancing an already finished job is an invariant violation.
func (t *Tracker) Advance(i int) error {
	if i < 0 || i >= len(t.jobs) {
		return fmt.Errorf("%w: job index %d out of range", ErrJobAlreadyDone, i)
	}

	if t.completed[i] >= t.jobs[i].Total() {
		return fmt.Errorf("%w: %q", ErrJobAlreadyDone, t.jobs[i].Title)
	}

	t.completed[i]++
	t.aggregateDone++

	return nil
}

// Completed returns job i's completed command count.
func (t *Tracker) Completed(i int) int {
	return t.completed[i]
}

// JobFinished reports whether job i has completed all of its commands.
func (t *Tracker) JobFinished(i int) bool {
	return t.completed[i] >= t.jobs[i].Total()
}

// Aggregate returns the total completed and total expected command counts
// across all jobs.
func (t *Tracker) Aggregate() (done, total int) {
	return t.aggregateDone, t.aggregateTotal
}
