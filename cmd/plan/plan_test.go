// Copyright (c) rigup-cli 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package plan

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

func newTestCmd(out *bytes.Buffer) *cli.Command {
	return &cli.Command{
		Name:      "plan",
		Arguments: []cli.Argument{&cli.StringArg{Name: baseDirArg}},
		Flags: []cli.Flag{
			&cli.StringFlag{Name: requirementsDirFlag, Aliases: []string{"r"}},
		},
		Action: actionFunc,
		Writer: out,
	}
}

func TestPlanCmd_PrintsJobQueue(t *testing.T) {
	var out bytes.Buffer

	dir := t.TempDir()
	reqDir := filepath.Join(dir, defaultRequirementsDir)
	require.NoError(t, os.MkdirAll(reqDir, 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(reqDir, "pip.txt"), []byte("black\n# ruff is commented out\nmypy\n"), 0o644))
	require.NoError(t, os.WriteFile(
		filepath.Join(reqDir, "apt.txt"), []byte("ripgrep\n"), 0o644))

	cmd := newTestCmd(&out)

	err := cmd.Run(context.Background(), []string{"plan", dir})

	require.NoError(t, err)

	rendered := out.String()
	assert.Contains(t, rendered, "apt")
	assert.Contains(t, rendered, "sudo apt update -y")
	assert.Contains(t, rendered, "sudo apt install -y ripgrep")
	assert.Contains(t, rendered, "python3 -m pip install -U black")
	assert.Contains(t, rendered, "python3 -m pip install -U mypy")
	assert.NotContains(t, rendered, "ruff")

	// apt runs before pip
	assert.Less(t,
		bytes.Index(out.Bytes(), []byte("apt install")),
		bytes.Index(out.Bytes(), []byte("pip install")))
}

func TestPlanCmd_NothingToInstall(t *testing.T) {
	var out bytes.Buffer

	dir := t.TempDir()
	cmd := newTestCmd(&out)

	err := cmd.Run(context.Background(), []string{"plan", dir})

	require.NoError(t, err)
	assert.Contains(t, out.String(), "nothing to install")
}

func TestPlanCmd_RequirementsDirFlag(t *testing.T) {
	var out bytes.Buffer

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "brew.txt"), []byte("jq\n"), 0o644))

	cmd := newTestCmd(&out)

	err := cmd.Run(context.Background(), []string{"plan", "-r", dir})

	require.NoError(t, err)
	assert.Contains(t, out.String(), "brew install jq")
}
