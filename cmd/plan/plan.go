// Copyright (c) rigup-cli 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package plan implements the plan command, which prints the job queue
// that install would run without executing anything.
package plan

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/rigup-cli/rigup/internal/color"
	"github.com/rigup-cli/rigup/internal/requirements"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v3"
)

const (
	baseDirArg          = "basedir"
	requirementsDirFlag = "requirements-dir"

	defaultRequirementsDir = "requirements"
)

// PlanCmd prints the commands that install would run.
var PlanCmd = &cli.Command{
	Name:        "plan",
	Description: "Print the commands that install would run, without executing them.",
	Arguments: []cli.Argument{
		&cli.StringArg{
			Name:      baseDirArg,
			UsageText: "[BASEDIR]",
			Config: cli.StringConfig{
				TrimSpace: true,
			},
		},
	},
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    requirementsDirFlag,
			Aliases: []string{"r"},
			Usage:   "Directory holding the package list files (overrides BASEDIR/requirements)",
		},
	},
	Action: actionFunc,
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	dir := cmd.String(requirementsDirFlag)
	if dir == "" {
		baseDir := cmd.StringArg(baseDirArg)
		if baseDir == "" {
			baseDir = "."
		}

		dir = filepath.Join(baseDir, defaultRequirementsDir)
	}

	jobs, err := requirements.InstallJobs(ctx, afero.NewOsFs(), dir)
	if err != nil {
		return cli.Exit(fmt.Sprintf("failed to load package lists from %s: %s", dir, err.Error()), 1)
	}

	if len(jobs) == 0 {
		fmt.Fprintf(cmd.Writer, "nothing to install: no package lists found in %s\n", dir)
		return nil
	}

	for _, job := range jobs {
		fmt.Fprintln(cmd.Writer, color.Colorize(job.Title, color.Bold))

		for _, command := range job.Commands {
			fmt.Fprintf(cmd.Writer, "  %s\n", command.String())
		}
	}

	return nil
}
