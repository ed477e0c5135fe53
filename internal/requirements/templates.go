// Copyright (c) rigup-cli 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package requirements

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"

	"github.com/goccy/go-yaml"
	"github.com/hashicorp/go-multierror"
	"github.com/rigup-cli/rigup/internal/runner"
	"github.com/spf13/afero"
)

// PackagePlaceholder is the token in an install template that is replaced
// with each requirement.
const PackagePlaceholder = "{package}"

// ManagersFile is the optional per-directory file declaring extra or
// replacement package manager templates.
const ManagersFile = "managers.yaml"

var (
	// ErrInvalidTemplate is returned when a manager template is malformed.
	ErrInvalidTemplate = errors.New("invalid manager template")
	// ErrReadManagers is returned when the managers file cannot be read or parsed.
	ErrReadManagers = errors.New("failed to read managers file")
)

// Template declares how one package manager turns a requirements list into
// commands: the setup commands run once, then the install template runs per
// requirement with the placeholder substituted. Templates are swappable
// collaborator data; the runner never interprets them.
type Template struct {
	Name    string     `yaml:"name"`    // Job title, e.g. "apt"
	File    string     `yaml:"file"`    // Requirements file name, e.g. "apt.txt"
	Setup   [][]string `yaml:"setup"`   // Commands run once before installs
	Install []string   `yaml:"install"` // Per-package argv containing PackagePlaceholder
}

// Commands builds the ordered command list for the given requirements.
func (t Template) Commands(pkgs []string) []runner.Command {
	commands := make([]runner.Command, 0, len(t.Setup)+len(pkgs))

	for _, argv := range t.Setup {
		commands = append(commands, runner.NewCommand(argv[0], argv[1:]...))
	}

	for _, pkg := range pkgs {
		argv := make([]string, len(t.Install))
		for i, token := range t.Install {
			if token == PackagePlaceholder {
				token = pkg
			}

			argv[i] = token
		}

		commands = append(commands, runner.NewCommand(argv[0], argv[1:]...))
	}

	return commands
}

// Validate checks the template invariants: a name, a requirements file, and
// an install argv that contains the package placeholder.
func (t Template) Validate() error {
	switch {
	case t.Name == "":
		return fmt.Errorf("%w: missing name", ErrInvalidTemplate)
	case t.File == "":
		return fmt.Errorf("%w: manager %q has no requirements file", ErrInvalidTemplate, t.Name)
	case len(t.Install) == 0:
		return fmt.Errorf("%w: manager %q has no install template", ErrInvalidTemplate, t.Name)
	case !slices.Contains(t.Install, PackagePlaceholder):
		return fmt.Errorf("%w: manager %q install template has no %s token",
			ErrInvalidTemplate, t.Name, PackagePlaceholder)
	}

	for _, argv := range t.Setup {
		if len(argv) == 0 {
			return fmt.Errorf("%w: manager %q has an empty setup command", ErrInvalidTemplate, t.Name)
		}
	}

	return nil
}

// BuiltinTemplates returns the stock package manager templates.
func BuiltinTemplates() []Template {
	return []Template{
		{
			Name: "apt",
			File: "apt.txt",
			Setup: [][]string{
				{"sudo", "apt", "update", "-y"},
				{"sudo", "apt", "upgrade", "-y"},
			},
			Install: []string{"sudo", "apt", "install", "-y", PackagePlaceholder},
		},
		{
			Name:    "brew",
			File:    "brew.txt",
			Setup:   [][]string{{"brew", "update"}},
			Install: []string{"brew", "install", PackagePlaceholder},
		},
		{
			Name:    "pip",
			File:    "pip.txt",
			Install: []string{"python3", "-m", "pip", "install", "-U", PackagePlaceholder},
		},
		{
			Name:    "snap",
			File:    "snap.txt",
			Setup:   [][]string{{"sudo", "snap", "refresh"}},
			Install: []string{"sudo", "snap", "install", "--classic", PackagePlaceholder},
		},
	}
}

type managersDoc struct {
	Managers []Template `yaml:"managers"`
}

// LoadTemplates returns the builtin templates merged with any declared in
// the directory's managers.yaml: a custom template with a builtin's name
// replaces it, others are appended in declaration order.
func LoadTemplates(fs afero.Fs, dir string) ([]Template, error) {
	templates := BuiltinTemplates()

	path := filepath.Join(dir, ManagersFile)

	exists, err := afero.Exists(fs, path)
	if err != nil {
		return nil, errors.Join(ErrReadManagers, err)
	}

	if !exists {
		return templates, nil
	}

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, errors.Join(ErrReadManagers, err)
	}

	var doc managersDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Join(ErrReadManagers, err)
	}

	var errs *multierror.Error

	for _, custom := range doc.Managers {
		if err := custom.Validate(); err != nil {
			errs = multierror.Append(errs, err)
			continue
		}

		replaced := false

		for i, t := range templates {
			if t.Name == custom.Name {
				templates[i] = custom
				replaced = true

				break
			}
		}

		if !replaced {
			templates = append(templates, custom)
		}
	}

	return templates, errs.ErrorOrNil()
}
