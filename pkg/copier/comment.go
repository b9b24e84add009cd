package copier

import (
	"context"
	"fmt"
	"path"
	"strconv"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/zapier/ghcopy/pkg/commentlink"
	"github.com/zapier/ghcopy/pkg/vcs"
)

const (
	commentCopyTitlePrefix = "[Comment Copy] "
	commentCopyFallback    = "Copied comment"
)

type CommentOptions struct {
	Link        string
	TargetOwner string
	TargetRepo  string
	Language    string
}

// CopyComment opens a new issue in the target repository holding the
// (translated) comment the link points to.
func (c *Copier) CopyComment(ctx context.Context, opts CommentOptions, sink Sink) (*vcs.Issue, error) {
	ctx, span := tracer.Start(ctx, "CopyComment")
	defer span.End()

	if opts.Link == "" {
		return nil, errors.Wrap(ErrValidation, "--comment-link is required")
	}
	if err := requireSettings(
		setting{"to-owner", opts.TargetOwner},
		setting{"to-repo", opts.TargetRepo},
		setting{"lang", opts.Language},
	); err != nil {
		return nil, err
	}

	link, err := commentlink.Parse(opts.Link)
	if err != nil {
		return nil, err
	}

	commentID, err := strconv.ParseInt(link.CommentID, 10, 64)
	if err != nil {
		return nil, errors.Wrapf(commentlink.ErrInvalidLink, "comment id %s: %s", link.CommentID, err)
	}

	comment, err := c.reader.GetIssueComment(ctx, link.Owner, link.Repo, commentID)
	if err != nil || comment == nil {
		return nil, notFound(fmt.Sprintf("comment %s in %s/%s", link.CommentID, link.Owner, link.Repo), err)
	}

	sourceIssue, err := c.parentIssue(ctx, link, comment)
	if err != nil {
		return nil, err
	}

	payload, err := c.buildCommentIssue(ctx, opts, link, comment, sourceIssue)
	if err != nil {
		return nil, err
	}

	return sink.CreateIssue(ctx, opts.TargetOwner, opts.TargetRepo, payload)
}

// parentIssue fetches the issue a comment belongs to. Comments without an
// issue url have no parent, which is not an error.
func (c *Copier) parentIssue(ctx context.Context, link commentlink.Link, comment *vcs.Comment) (*vcs.Issue, error) {
	if comment.IssueURL == "" {
		return nil, nil
	}

	number, err := strconv.Atoi(path.Base(comment.IssueURL))
	if err != nil {
		log.Warn().Str("issue_url", comment.IssueURL).Msg("cannot read issue number from issue url, skipping source issue")
		return nil, nil
	}

	issue, err := c.reader.GetIssue(ctx, link.Owner, link.Repo, number)
	if err != nil {
		return nil, notFound(fmt.Sprintf("issue #%d in %s/%s", number, link.Owner, link.Repo), err)
	}
	return issue, nil
}

func (c *Copier) buildCommentIssue(ctx context.Context, opts CommentOptions, link commentlink.Link, comment *vcs.Comment, sourceIssue *vcs.Issue) (vcs.NewIssue, error) {
	translated, err := c.translator.Translate(ctx, comment.Body, opts.Language)
	if err != nil {
		return vcs.NewIssue{}, errors.Wrap(err, "failed to translate comment")
	}

	sourceURL := comment.HTMLURL
	if sourceURL == "" {
		sourceURL = opts.Link
	}

	header := fmt.Sprintf("**Original comment by @%s**  \n[View source](%s)", comment.Author, sourceURL)
	if sourceIssue != nil && sourceIssue.Number != 0 {
		header += fmt.Sprintf("  \nFrom: `%s/%s#%d`", link.Owner, link.Repo, sourceIssue.Number)
	}

	title := commentCopyFallback
	if sourceIssue != nil && sourceIssue.Title != "" {
		title, err = c.translator.Translate(ctx, sourceIssue.Title, opts.Language)
		if err != nil {
			return vcs.NewIssue{}, errors.Wrap(err, "failed to translate issue title")
		}
	}

	return vcs.NewIssue{
		Title: commentCopyTitlePrefix + title,
		Body:  header + "\n\n" + translated,
	}, nil
}
