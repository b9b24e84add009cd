package vcs

import (
	"errors"
)

const (
	DefaultAuthor = "unknown"
)

var (
	// ErrInvalidRepo is returned when an owner/repo reference cannot be normalized
	ErrInvalidRepo = errors.New("invalid repository reference")
)

// Comment is a single issue comment as returned by the VCS.
type Comment struct {
	ID       int64
	Body     string
	HTMLURL  string
	Author   string
	IssueURL string
}

// Issue is an issue (or pull request, see IsPullRequest) as returned by the VCS.
type Issue struct {
	Number        int
	Title         string
	Body          string
	HTMLURL       string
	Labels        []string
	IsPullRequest bool
}

// NewIssue is the payload used to open an issue.
type NewIssue struct {
	Title  string   `json:"title"`
	Body   string   `json:"body"`
	Labels []string `json:"labels,omitempty"`
}

// NewComment is the payload used to post a comment on an issue.
type NewComment struct {
	Body string `json:"body"`
}
