package copier

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/zapier/ghcopy/pkg/vcs"
)

type IssueOptions struct {
	Number      int
	SourceOwner string
	SourceRepo  string
	TargetOwner string
	TargetRepo  string
	// Language may be empty, in which case text is copied untranslated
	Language string
}

type IssueResult struct {
	Issue    *vcs.Issue
	Comments []*vcs.Comment
}

// CopyIssue copies an issue and all of its comments (first page) from the
// source to the target repository. Nothing is rolled back when a later step
// fails: comments created before the failure stay.
func (c *Copier) CopyIssue(ctx context.Context, opts IssueOptions, sink Sink) (*IssueResult, error) {
	ctx, span := tracer.Start(ctx, "CopyIssue")
	defer span.End()

	if opts.Number <= 0 {
		return nil, errors.Wrapf(ErrValidation, "invalid issue number %d", opts.Number)
	}
	if err := requireSettings(
		setting{"from-owner", opts.SourceOwner},
		setting{"from-repo", opts.SourceRepo},
		setting{"to-owner", opts.TargetOwner},
		setting{"to-repo", opts.TargetRepo},
	); err != nil {
		return nil, err
	}

	issue, err := c.reader.GetIssue(ctx, opts.SourceOwner, opts.SourceRepo, opts.Number)
	if err != nil || issue == nil {
		return nil, notFound(fmt.Sprintf("issue #%d in %s/%s", opts.Number, opts.SourceOwner, opts.SourceRepo), err)
	}
	if issue.IsPullRequest {
		fmt.Fprintf(c.out, "❌ Issue #%d is a pull request. Skipping.\n", opts.Number)
		return nil, errors.Wrapf(ErrPullRequest, "#%d", opts.Number)
	}

	payload, err := c.buildIssue(ctx, issue, opts.Language)
	if err != nil {
		return nil, err
	}

	created, err := sink.CreateIssue(ctx, opts.TargetOwner, opts.TargetRepo, payload)
	if err != nil {
		return nil, err
	}
	result := &IssueResult{Issue: created}

	comments, err := c.reader.GetIssueComments(ctx, opts.SourceOwner, opts.SourceRepo, opts.Number)
	if err != nil {
		return result, errors.Wrapf(err, "failed to list comments of #%d", opts.Number)
	}

	if len(comments) == 0 {
		fmt.Fprintln(c.out, "ℹ️ No comments to copy.")
		return result, nil
	}

	var rows []summaryRow
	for _, comment := range comments {
		log.Debug().Str("author", comment.Author).Int64("comment_id", comment.ID).Msg("copying comment")

		translated, err := c.translator.Translate(ctx, comment.Body, opts.Language)
		if err != nil {
			return result, errors.Wrapf(err, "failed to translate comment by %s", comment.Author)
		}

		body := fmt.Sprintf("**Original comment by %s**:\n\n%s", comment.Author, translated)
		copied, err := sink.CreateComment(ctx, opts.TargetOwner, opts.TargetRepo, created.Number, vcs.NewComment{Body: body})
		if err != nil {
			return result, err
		}

		result.Comments = append(result.Comments, copied)
		rows = append(rows, summaryRow{author: comment.Author, source: comment.HTMLURL, copied: copied.HTMLURL})
	}

	renderSummary(c.out, rows)
	return result, nil
}

func (c *Copier) buildIssue(ctx context.Context, issue *vcs.Issue, language string) (vcs.NewIssue, error) {
	title, err := c.translator.Translate(ctx, issue.Title, language)
	if err != nil {
		return vcs.NewIssue{}, errors.Wrap(err, "failed to translate issue title")
	}

	body, err := c.translator.Translate(ctx, issue.Body, language)
	if err != nil {
		return vcs.NewIssue{}, errors.Wrap(err, "failed to translate issue body")
	}

	payload := vcs.NewIssue{
		Title: title,
		Body:  fmt.Sprintf("**Copied from original issue:** [#%d](%s)\n\n%s", issue.Number, issue.HTMLURL, body),
	}
	if len(issue.Labels) > 0 {
		payload.Labels = issue.Labels
	}
	return payload, nil
}
