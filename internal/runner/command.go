// Copyright (c) rigup-cli 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package runner

import (
	"slices"
	"strings"
)

// Command is one external program invocation: an ordered token sequence of
// program name and arguments. Tokens are handed directly to the process
// creation primitive and never pass through a shell, so no quoting or
// injection issues can arise. A Command is immutable once constructed.
type Command struct {
	Path string   // The program to run (name or full path).
	Args []string // Arguments to the program, not including the program name.
}

// NewCommand creates a Command from its tokens.
func NewCommand(path string, args ...string) Command {
	return Command{Path: path, Args: slices.Clone(args)}
}

// Tokens returns the full argv, program name first.
func (c Command) Tokens() []string {
	return slices.Concat([]string{c.Path}, c.Args)
}

// String renders the argv for display.
func (c Command) String() string {
	return strings.Join(c.Tokens(), " ")
}

// Empty reports whether the command has no program name.
func (c Command) Empty() bool {
	return c.Path == ""
}

// Job is a named, ordered group of Commands sharing one completion message.
// Jobs are created once by collaborators and are immutable; the runner only
// reads them.
type Job struct {
	Title         string    // Display label for the job.
	Commands      []Command // Commands run sequentially, in order.
	FinishMessage string    // Shown when every command of the job completed.
}

// Total returns the number of commands in the job.
func (j Job) Total() int {
	return len(j.Commands)
}
