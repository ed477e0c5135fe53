// Copyright (c) rigup-cli 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package cmd contains the command-line interface (CLI) for the module.
package cmd

import (
	"os"

	"github.com/rigup-cli/rigup/cmd/install"
	"github.com/rigup-cli/rigup/cmd/plan"
	"github.com/urfave/cli/v3"
)

// RootCmd is the root command for the CLI. Running rigup without a
// subcommand installs, so that "rigup ~/dotfiles" just works.
var RootCmd = &cli.Command{
	Commands: []*cli.Command{
		install.InstallCmd,
		plan.PlanCmd,
	},
	Writer:    os.Stdout,
	ErrWriter: os.Stderr,
	Name:      "rigup",
	Description: `Rigup bootstraps a machine from plain-text package lists. Drop
apt.txt, brew.txt, pip.txt or snap.txt into a requirements directory, one
package per line, and rigup drives the corresponding package managers with
live progress. A managers.yaml file in the same directory can add or
override package manager command templates.`,
	Usage:     "rigup install [BASEDIR]",
	Copyright: "Copyright (c) rigup-cli 2025. All rights reserved.",
	Arguments: install.InstallCmd.Arguments,
	Flags:     install.InstallCmd.Flags,
	Action:    install.InstallCmd.Action,

	EnableShellCompletion: true,
}
