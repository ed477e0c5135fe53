// Copyright (c) rigup-cli 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package install implements the install command: load package lists,
// obtain sudo up front if needed, then run the job queue with live
// progress.
package install

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/rigup-cli/rigup/internal/color"
	"github.com/rigup-cli/rigup/internal/ctxlog"
	"github.com/rigup-cli/rigup/internal/elevate"
	"github.com/rigup-cli/rigup/internal/progress"
	"github.com/rigup-cli/rigup/internal/requirements"
	"github.com/rigup-cli/rigup/internal/runner"
	"github.com/rigup-cli/rigup/internal/tui"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

const (
	baseDirArg          = "basedir"
	noTUIFlag           = "no-tui"
	requirementsDirFlag = "requirements-dir"

	// defaultRequirementsDir is resolved relative to the base directory.
	defaultRequirementsDir = "requirements"
)

// InstallCmd installs every package named in the requirements directory.
var InstallCmd = &cli.Command{
	Name:        "install",
	Description: "Install the packages listed in the requirements directory.",
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
		&cli.BoolFlag{
			Name:        noTUIFlag,
			Usage:       "Disable the live dashboard and log progress events instead",
			Value:       false,
			DefaultText: "false",
		},
		&cli.StringFlag{
			Name:    requirementsDirFlag,
			Aliases: []string{"r"},
			Usage:   "Directory holding the package list files (overrides BASEDIR/requirements)",
		},
	},
	Action: actionFunc,
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	dir := requirementsDir(cmd)

	jobs, err := requirements.InstallJobs(ctx, afero.NewOsFs(), dir)
	if err != nil {
		return cli.Exit(fmt.Sprintf("failed to load package lists from %s: %s", dir, err.Error()), 1)
	}

	if len(jobs) == 0 {
		fmt.Fprintf(cmd.Writer, "nothing to install: no package lists found in %s\n", dir)
		return nil
	}

	// Prompt for sudo before the dashboard owns the terminal.
	if elevate.NeedsElevation(jobs) {
		if err := elevate.Ensure(ctx); err != nil {
			return cli.Exit(err.Error(), 1)
		}
	}

	if useTUI(cmd) {
		err = runWithDashboard(ctx, cmd, jobs)
	} else {
		err = runWithLogs(ctx, cmd, jobs)
	}

	if err != nil {
		return exitWithFailure(cmd, err)
	}

	fmt.Fprintln(cmd.Writer, color.Colorize("all packages installed", color.FgGreen, color.Bold))

	return nil
}

// requirementsDir resolves the directory to scan: an explicit
// --requirements-dir wins, otherwise BASEDIR/requirements.
func requirementsDir(cmd *cli.Command) string {
	if dir := cmd.String(requirementsDirFlag); dir != "" {
		return dir
	}

	baseDir := cmd.StringArg(baseDirArg)
	if baseDir == "" {
		baseDir = "."
	}

	return filepath.Join(baseDir, defaultRequirementsDir)
}

func useTUI(cmd *cli.Command) bool {
	return !cmd.Bool(noTUIFlag) && term.IsTerminal(int(os.Stdout.Fd()))
}

// runWithDashboard owns the terminal for the duration of the run, so log
// output is buffered and replayed to stderr afterwards.
func runWithDashboard(ctx context.Context, cmd *cli.Command, jobs []runner.Job) error {
	var logBuf bytes.Buffer

	ctx = ctxlog.NewForTUI(ctx, &logBuf)

	dashboard := tui.NewRunner(jobs)

	orch, err := runner.NewOrchestrator(jobs, dashboard.Reporter())
	if err != nil {
		return err
	}

	runErr := dashboard.Run(ctx, orch)

	if logBuf.Len() > 0 {
		fmt.Fprint(cmd.ErrWriter, logBuf.String())
	}

	return runErr
}

func runWithLogs(ctx context.Context, cmd *cli.Command, jobs []runner.Job) error {
	// Log lines are the only progress display in this mode; make them
	// visible unless the operator pinned a level.
	if os.Getenv("RIGUP_LOG_LEVEL") == "" {
		ctxlog.LevelVar.Set(slog.LevelInfo)
	}

	reporter := progress.NewLogReporter(ctx)
	defer reporter.Close()

	orch, err := runner.NewOrchestrator(jobs, reporter)
	if err != nil {
		return err
	}

	return orch.Run(ctx)
}

// exitWithFailure renders the failure on stderr and converts it into a
// non-zero exit. For a process failure the captured output is replayed in
// full, stdout and stderr separated, since the dashboard only showed a
// tail.
func exitWithFailure(cmd *cli.Command, err error) error {
	var pf *runner.ProcessFailure
	if errors.As(err, &pf) {
		writeProcessFailure(cmd, pf)
		return cli.Exit("", 1)
	}

	if errors.Is(err, runner.ErrRunInterrupted) {
		return cli.Exit(color.Colorize("installation interrupted", color.FgYellow), 1)
	}

	return cli.Exit(err.Error(), 1)
}

func writeProcessFailure(cmd *cli.Command, pf *runner.ProcessFailure) {
	w := cmd.ErrWriter

	fmt.Fprintln(w, color.Colorize(
		fmt.Sprintf("command failed: %s (exit code %d)", pf.Command.String(), pf.ExitCode),
		color.FgRed, color.Bold))

	if pf.Stdout != "" {
		fmt.Fprintln(w, color.Colorize("stdout:", color.FgGreen, color.Bold))
		writeBlock(w, pf.Stdout)
	}

	if pf.Stderr != "" {
		fmt.Fprintln(w, color.Colorize("stderr:", color.FgRed, color.Bold))
		writeBlock(w, pf.Stderr)
	}
}

func writeBlock(w io.Writer, text string) {
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}

	fmt.Fprint(w, text)
}
