// Package config holds the runtime configuration of repoexplain: built-in
// defaults, an optional YAML file, and the validation applied after env
// and flag overrides.
package config

import (
	"fmt"
	"net/url"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/UnitVectorY-Labs/repoexplain/internal/analyzer"
	"github.com/UnitVectorY-Labs/repoexplain/internal/fetcher"
	"github.com/UnitVectorY-Labs/repoexplain/internal/report"
	"github.com/adrg/xdg"
)

const (
	// AppName is used for the XDG config directory.
	AppName = "repoexplain"

	// DefaultAPIURL is the public GitHub REST endpoint.
	DefaultAPIURL = "https://api.github.com/"

	DefaultTimeout   = fetcher.DefaultTimeout
	DefaultUserAgent = fetcher.DefaultUserAgent
)

// DefaultBranches are the README branch candidates, in order.
var DefaultBranches = fetcher.DefaultBranches

// Config is the resolved configuration for one run.
type Config struct {
	Token            string
	APIURL           string
	Branch           string
	Branches         []string
	Timeout          time.Duration
	UserAgent        string
	PurposeMaxLength int
	FetchMetadata    bool
	FetchTree        bool

	// StackKeywords adds keyword rules to the analyzer: technology name to
	// keywords.
	StackKeywords map[string][]string

	JSONReport     bool
	MarkdownReport bool
	Render         bool
	Verbose        bool

	ConfigFilePath string
}

// NewConfig returns a Config populated with defaults.
func NewConfig() *Config {
	return &Config{
		APIURL:           DefaultAPIURL,
		Branches:         append([]string(nil), DefaultBranches...),
		Timeout:          DefaultTimeout,
		UserAgent:        DefaultUserAgent,
		PurposeMaxLength: analyzer.DefaultPurposeMaxLength,
		FetchMetadata:    true,
		FetchTree:        true,
	}
}

// Validate checks the configuration after all overrides are applied.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	if len(c.Branches) == 0 {
		return ErrNoBranches
	}
	for _, b := range c.Branches {
		if strings.TrimSpace(b) == "" {
			return ErrNoBranches
		}
	}
	u, err := url.Parse(c.APIURL)
	if err != nil || !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %q", ErrInvalidAPIURL, c.APIURL)
	}
	if c.PurposeMaxLength <= 0 {
		return ErrInvalidPurposeLength
	}
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}
	return nil
}

// Format returns the selected report format.
func (c *Config) Format() report.Format {
	switch {
	case c.JSONReport:
		return report.FormatJSON
	case c.MarkdownReport:
		return report.FormatMarkdown
	default:
		return report.FormatText
	}
}

// StackRules converts StackKeywords into analyzer rules, ordered by
// technology name.
func (c *Config) StackRules() []analyzer.StackRule {
	names := make([]string, 0, len(c.StackKeywords))
	for name := range c.StackKeywords {
		names = append(names, name)
	}
	sort.Strings(names)

	rules := make([]analyzer.StackRule, 0, len(names))
	for _, name := range names {
		rules = append(rules, analyzer.StackRule{Technology: name, Keywords: c.StackKeywords[name]})
	}
	return rules
}

// XDGConfigFile returns the per-user config file path,
// e.g. ~/.config/repoexplain/config.yaml on Linux.
func XDGConfigFile() string {
	return filepath.Join(xdg.ConfigHome, AppName, "config.yaml")
}
