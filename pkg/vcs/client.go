package vcs

import (
	"context"
)

// IssueReader fetches issues and comments from a repository.
type IssueReader interface {
	// GetIssueComment fetches a single comment by its id
	GetIssueComment(ctx context.Context, owner, repo string, commentID int64) (*Comment, error)
	// GetIssue fetches an issue (or pull request) by number
	GetIssue(ctx context.Context, owner, repo string, number int) (*Issue, error)
	// GetIssueComments returns the first page of comments of an issue, oldest first
	GetIssueComments(ctx context.Context, owner, repo string, number int) ([]*Comment, error)
}

// IssueWriter creates issues and comments in a repository.
type IssueWriter interface {
	// CreateIssue opens a new issue and returns it as created
	CreateIssue(ctx context.Context, owner, repo string, issue NewIssue) (*Issue, error)
	// CreateComment posts a comment on an existing issue
	CreateComment(ctx context.Context, owner, repo string, number int, comment NewComment) (*Comment, error)
}

// Client represents a VCS client
type Client interface {
	IssueReader
	IssueWriter

	// GetName returns the VCS client name (e.g. "github")
	GetName() string
}
