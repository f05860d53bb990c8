package config

import "errors"

// Configuration errors returned by Config.Validate and the loader.
var (
	// ErrInvalidTimeout is returned when the HTTP timeout is not positive.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrNoBranches is returned when the branch candidate list is empty or
	// contains a blank name.
	ErrNoBranches = errors.New("invalid branches: at least one non-empty branch name is required")

	// ErrInvalidAPIURL is returned when the API base URL is not an absolute
	// http(s) URL.
	ErrInvalidAPIURL = errors.New("invalid API URL: must be an absolute http or https URL")

	// ErrInvalidPurposeLength is returned when the purpose bound is not positive.
	ErrInvalidPurposeLength = errors.New("invalid purpose max length: must be positive")

	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are set.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrConfigNotFound is returned when an explicitly named config file
	// does not exist.
	ErrConfigNotFound = errors.New("configuration file not found")
)
