// Copyright (c) rigup-cli 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package requirements turns declarative package lists into runnable jobs.
// A requirements directory holds one file per package manager (apt.txt,
// brew.txt, pip.txt, snap.txt, plus any declared in managers.yaml); each
// present file becomes one job whose commands install the listed packages.
package requirements

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/rigup-cli/rigup/internal/ctxlog"
	"github.com/rigup-cli/rigup/internal/runner"
	"github.com/spf13/afero"
)

// Read returns the requirement lines of the given file. Blank lines and
// lines whose first non-space character is '#' are ignored.
func Read(fs afero.Fs, path string) ([]string, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("reading requirements file %s: %w", path, err)
	}

	var pkgs []string

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		pkgs = append(pkgs, line)
	}

	return pkgs, nil
}

// InstallJobs builds one job per requirements file present in dir, in
// template order. Absent files are skipped with a warning; unreadable files
// are accumulated and returned as a single error alongside the jobs that
// could be built.
func InstallJobs(ctx context.Context, fs afero.Fs, dir string) ([]runner.Job, error) {
	templates, err := LoadTemplates(fs, dir)
	if err != nil {
		return nil, err
	}

	var (
		jobs []runner.Job
		errs *multierror.Error
	)

	for _, tmpl := range templates {
		path := filepath.Join(dir, tmpl.File)

		exists, err := afero.Exists(fs, path)
		if err != nil {
			errs = multierror.Append(errs, err)
			continue
		}

		if !exists {
			ctxlog.Warn(ctx, "requirements file not found, skipping",
				"manager", tmpl.Name, "path", path)

			continue
		}

		pkgs, err := Read(fs, path)
		if err != nil {
			errs = multierror.Append(errs, err)
			continue
		}

		if len(pkgs) == 0 {
			ctxlog.Warn(ctx, "requirements file has no packages, skipping",
				"manager", tmpl.Name, "path", path)

			continue
		}

		jobs = append(jobs, runner.Job{
			Title:         tmpl.Name,
			Commands:      tmpl.Commands(pkgs),
			FinishMessage: finishMessage(len(pkgs)),
		})
	}

	return jobs, errs.ErrorOrNil()
}

func finishMessage(n int) string {
	if n == 1 {
		return "1 package installed"
	}

	return fmt.Sprintf("%d packages installed", n)
}
