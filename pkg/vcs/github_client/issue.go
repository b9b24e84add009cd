package github_client

import (
	"context"
	"strconv"

	"github.com/google/go-github/v62/github"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"

	"github.com/zapier/ghcopy/pkg"
	"github.com/zapier/ghcopy/pkg/vcs"
	"github.com/zapier/ghcopy/telemetry"
)

type IssuesServices interface {
	Get(ctx context.Context, owner string, repo string, number int) (*github.Issue, *github.Response, error)
	Create(ctx context.Context, owner string, repo string, issue *github.IssueRequest) (*github.Issue, *github.Response, error)
	GetComment(ctx context.Context, owner string, repo string, commentID int64) (*github.IssueComment, *github.Response, error)
	ListComments(ctx context.Context, owner string, repo string, number int, opts *github.IssueListCommentsOptions) ([]*github.IssueComment, *github.Response, error)
	CreateComment(ctx context.Context, owner string, repo string, number int, comment *github.IssueComment) (*github.IssueComment, *github.Response, error)
}

type IssuesService struct {
	IssuesServices
}

func (c *Client) GetIssueComment(ctx context.Context, owner, repo string, commentID int64) (*vcs.Comment, error) {
	ctx, span := tracer.Start(ctx, "GetIssueComment")
	defer span.End()
	span.SetAttributes(attribute.String("repo", owner+"/"+repo), attribute.Int64("comment_id", commentID))

	log.Debug().Str("repo", owner+"/"+repo).Int64("comment_id", commentID).Msg("fetching issue comment")

	comment, resp, err := c.googleClient.Issues.GetComment(ctx, owner, repo, commentID)
	if err != nil {
		telemetry.SetError(span, err, "Get issue comment")
		return nil, newAPIError("get comment "+strconv.FormatInt(commentID, 10), resp, err)
	}

	return toComment(comment), nil
}

func (c *Client) GetIssue(ctx context.Context, owner, repo string, number int) (*vcs.Issue, error) {
	ctx, span := tracer.Start(ctx, "GetIssue")
	defer span.End()
	span.SetAttributes(attribute.String("repo", owner+"/"+repo), attribute.Int("issue", number))

	log.Debug().Str("repo", owner+"/"+repo).Int("issue", number).Msg("fetching issue")

	issue, resp, err := c.googleClient.Issues.Get(ctx, owner, repo, number)
	if err != nil {
		telemetry.SetError(span, err, "Get issue")
		return nil, newAPIError("get issue #"+strconv.Itoa(number), resp, err)
	}

	return toIssue(issue), nil
}

// GetIssueComments returns the comments of an issue as the API pages them.
// Only the first page is read; longer threads are truncated.
func (c *Client) GetIssueComments(ctx context.Context, owner, repo string, number int) ([]*vcs.Comment, error) {
	ctx, span := tracer.Start(ctx, "GetIssueComments")
	defer span.End()
	span.SetAttributes(attribute.String("repo", owner+"/"+repo), attribute.Int("issue", number))

	comments, resp, err := c.googleClient.Issues.ListComments(ctx, owner, repo, number, nil)
	if err != nil {
		telemetry.SetError(span, err, "List issue comments")
		return nil, newAPIError("list comments of #"+strconv.Itoa(number), resp, err)
	}

	if resp != nil && resp.NextPage != 0 {
		log.Warn().Str("repo", owner+"/"+repo).Int("issue", number).Msg("issue has more comments than fit in one page, only the first page is copied")
	}

	result := make([]*vcs.Comment, 0, len(comments))
	for _, comment := range comments {
		result = append(result, toComment(comment))
	}
	return result, nil
}

func (c *Client) CreateIssue(ctx context.Context, owner, repo string, issue vcs.NewIssue) (*vcs.Issue, error) {
	ctx, span := tracer.Start(ctx, "CreateIssue")
	defer span.End()
	span.SetAttributes(attribute.String("repo", owner+"/"+repo))

	req := &github.IssueRequest{
		Title: pkg.Pointer(issue.Title),
		Body:  pkg.Pointer(issue.Body),
	}
	if len(issue.Labels) > 0 {
		labels := issue.Labels
		req.Labels = &labels
	}

	created, resp, err := c.googleClient.Issues.Create(ctx, owner, repo, req)
	if err != nil {
		telemetry.SetError(span, err, "Create issue")
		return nil, newAPIError("create issue", resp, err)
	}

	log.Debug().Str("repo", owner+"/"+repo).Int("issue", created.GetNumber()).Msg("issue created")
	return toIssue(created), nil
}

func (c *Client) CreateComment(ctx context.Context, owner, repo string, number int, comment vcs.NewComment) (*vcs.Comment, error) {
	ctx, span := tracer.Start(ctx, "CreateComment")
	defer span.End()
	span.SetAttributes(attribute.String("repo", owner+"/"+repo), attribute.Int("issue", number))

	created, resp, err := c.googleClient.Issues.CreateComment(ctx, owner, repo, number, &github.IssueComment{
		Body: pkg.Pointer(comment.Body),
	})
	if err != nil {
		telemetry.SetError(span, err, "Create issue comment")
		return nil, newAPIError("create comment on #"+strconv.Itoa(number), resp, err)
	}

	return toComment(created), nil
}

func toComment(comment *github.IssueComment) *vcs.Comment {
	author := comment.GetUser().GetLogin()
	if author == "" {
		author = vcs.DefaultAuthor
	}

	return &vcs.Comment{
		ID:       comment.GetID(),
		Body:     comment.GetBody(),
		HTMLURL:  comment.GetHTMLURL(),
		Author:   author,
		IssueURL: comment.GetIssueURL(),
	}
}

func toIssue(issue *github.Issue) *vcs.Issue {
	var labels []string
	for _, label := range issue.Labels {
		labels = append(labels, label.GetName())
	}

	return &vcs.Issue{
		Number:        issue.GetNumber(),
		Title:         issue.GetTitle(),
		Body:          issue.GetBody(),
		HTMLURL:       issue.GetHTMLURL(),
		Labels:        labels,
		IsPullRequest: issue.IsPullRequest(),
	}
}
