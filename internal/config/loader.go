package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the config file name looked up in the working and
// home directories.
const DefaultConfigFile = ".repoexplain.yaml"

// File mirrors the YAML config file. Unset keys leave the defaults alone.
type File struct {
	APIURL           string              `yaml:"api_url"`
	Branches         []string            `yaml:"branches"`
	Timeout          string              `yaml:"timeout"`
	UserAgent        string              `yaml:"user_agent"`
	PurposeMaxLength int                 `yaml:"purpose_max_length"`
	FetchMetadata    *bool               `yaml:"fetch_metadata"`
	FetchTree        *bool               `yaml:"fetch_tree"`
	Stack            map[string][]string `yaml:"stack"`
}

// LoadConfigFile reads and parses a YAML config file. A missing file
// yields ErrConfigNotFound.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // user-provided config path is intentional
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, err
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &f, nil
}

// FindConfigFile returns the config file to load, searching in order:
// the explicit path, ./.repoexplain.yaml, the XDG config file and
// ~/.repoexplain.yaml. An explicit path is returned even if it does not
// exist so that loading it reports the error. Returns "" when nothing is
// found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		return configPath
	}

	var candidates []string
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, DefaultConfigFile))
	}
	candidates = append(candidates, XDGConfigFile())
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, DefaultConfigFile))
	}

	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && !info.IsDir() {
			return c
		}
	}
	return ""
}

// Apply copies the keys set in f onto cfg.
func (f *File) Apply(cfg *Config) error {
	if f.APIURL != "" {
		cfg.APIURL = f.APIURL
	}
	if len(f.Branches) > 0 {
		cfg.Branches = append([]string(nil), f.Branches...)
	}
	if f.Timeout != "" {
		d, err := time.ParseDuration(f.Timeout)
		if err != nil {
			return fmt.Errorf("%w: %q: %w", ErrInvalidTimeout, f.Timeout, err)
		}
		cfg.Timeout = d
	}
	if f.UserAgent != "" {
		cfg.UserAgent = f.UserAgent
	}
	if f.PurposeMaxLength != 0 {
		cfg.PurposeMaxLength = f.PurposeMaxLength
	}
	if f.FetchMetadata != nil {
		cfg.FetchMetadata = *f.FetchMetadata
	}
	if f.FetchTree != nil {
		cfg.FetchTree = *f.FetchTree
	}
	if len(f.Stack) > 0 {
		if cfg.StackKeywords == nil {
			cfg.StackKeywords = make(map[string][]string, len(f.Stack))
		}
		for tech, keywords := range f.Stack {
			cfg.StackKeywords[tech] = append(cfg.StackKeywords[tech], keywords...)
		}
	}
	return nil
}
