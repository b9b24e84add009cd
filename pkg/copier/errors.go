package copier

import (
	"errors"
)

var (
	// ErrValidation is returned when required input is missing or malformed
	ErrValidation = errors.New("validation error")
	// ErrNotFound is returned when the source comment or issue cannot be fetched
	ErrNotFound = errors.New("not found")
	// ErrPullRequest is returned when asked to copy a pull request
	ErrPullRequest = errors.New("pull requests cannot be copied")
)
