package models

import "errors"

// ErrInvalidReference is returned when a repository reference is not in
// owner/repo form. It is detected before any network access.
var ErrInvalidReference = errors.New("invalid repository reference: expected owner/repo")
