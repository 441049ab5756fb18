package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
)

const projectFileName = "declc.toml"

const noProjectMessage = "no declc.toml found\nplease list the declaration files explicitly, e.g.:\n  declc check base.decl.toml"

type projectManifest struct {
	Path   string
	Root   string
	Config projectConfig
}

type projectConfig struct {
	Project projectSection `toml:"project"`
}

type projectSection struct {
	Name   string   `toml:"name"`
	Inputs []string `toml:"inputs"`
}

// findProjectFile walks up from startDir looking for declc.toml.
func findProjectFile(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, projectFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

func loadProjectManifest(startDir string) (*projectManifest, bool, error) {
	path, ok, err := findProjectFile(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := loadProjectConfig(path)
	if err != nil {
		return nil, true, err
	}
	return &projectManifest{Path: path, Root: filepath.Dir(path), Config: cfg}, true, nil
}

func loadProjectConfig(path string) (projectConfig, error) {
	var cfg projectConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return projectConfig{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("project") {
		return projectConfig{}, fmt.Errorf("%s: missing [project]", path)
	}
	if !meta.IsDefined("project", "name") || strings.TrimSpace(cfg.Project.Name) == "" {
		return projectConfig{}, fmt.Errorf("%s: missing [project].name", path)
	}
	if !meta.IsDefined("project", "inputs") || len(cfg.Project.Inputs) == 0 {
		return projectConfig{}, fmt.Errorf("%s: missing [project].inputs", path)
	}
	return cfg, nil
}

// inputFiles expands the input patterns relative to the project root. The
// result is sorted and free of duplicates.
func (m *projectManifest) inputFiles() ([]string, error) {
	var files []string
	for _, pattern := range m.Config.Project.Inputs {
		abs := filepath.Join(m.Root, filepath.FromSlash(pattern))
		matches, err := filepath.Glob(abs)
		if err != nil {
			return nil, fmt.Errorf("%s: bad input pattern %q: %w", m.Path, pattern, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("%s: input pattern %q matches no files", m.Path, pattern)
		}
		files = append(files, matches...)
	}
	slices.Sort(files)
	return slices.Compact(files), nil
}

// resolveInputs returns args, or the project's inputs when args is empty.
func resolveInputs(args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	manifest, ok, err := loadProjectManifest(wd)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.New(noProjectMessage)
	}
	return manifest.inputFiles()
}
