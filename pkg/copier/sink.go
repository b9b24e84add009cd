package copier

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"

	"github.com/zapier/ghcopy/pkg/vcs"
	"github.com/zapier/ghcopy/telemetry"
)

// DryRunIssueNumber stands in for the number of an issue a dry run did not create.
const DryRunIssueNumber = 9999

// Sink receives every write a flow wants to perform.
type Sink interface {
	CreateIssue(ctx context.Context, owner, repo string, issue vcs.NewIssue) (*vcs.Issue, error)
	CreateComment(ctx context.Context, owner, repo string, number int, comment vcs.NewComment) (*vcs.Comment, error)
}

// NewSink returns a sink that writes through writer, or only prints to out when
// dryRun is set.
func NewSink(writer vcs.IssueWriter, out io.Writer, dryRun bool) Sink {
	if dryRun {
		return &DryRunSink{out: out}
	}
	return &LiveSink{writer: writer, out: out}
}

type LiveSink struct {
	writer vcs.IssueWriter
	out    io.Writer
}

func (s *LiveSink) CreateIssue(ctx context.Context, owner, repo string, issue vcs.NewIssue) (*vcs.Issue, error) {
	created, err := s.writer.CreateIssue(ctx, owner, repo, issue)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create issue in %s/%s", owner, repo)
	}

	recordCreated(ctx, telemetry.MetricIssuesCreated, owner, repo)
	fmt.Fprintf(s.out, "✅ Created new issue: %s\n", created.HTMLURL)
	return created, nil
}

func (s *LiveSink) CreateComment(ctx context.Context, owner, repo string, number int, comment vcs.NewComment) (*vcs.Comment, error) {
	created, err := s.writer.CreateComment(ctx, owner, repo, number, comment)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create comment on %s/%s#%d", owner, repo, number)
	}

	recordCreated(ctx, telemetry.MetricCommentsCreated, owner, repo)
	fmt.Fprintf(s.out, "🗨️ Copied a comment to %s/%s#%d\n", owner, repo, number)
	return created, nil
}

func recordCreated(ctx context.Context, metric, owner, repo string) {
	if err := telemetry.RecordCounterInt(ctx, metric, 1, attribute.String("repo", owner+"/"+repo)); err != nil {
		log.Warn().Err(err).Str("metric", metric).Msg("failed to record metric")
	}
}

// DryRunSink prints what would be written and never calls the VCS.
type DryRunSink struct {
	out io.Writer
}

func (s *DryRunSink) CreateIssue(_ context.Context, owner, repo string, issue vcs.NewIssue) (*vcs.Issue, error) {
	fmt.Fprintf(s.out, "[DRY RUN] Would create issue in %s/%s:\n", owner, repo)

	enc := json.NewEncoder(s.out)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(issue); err != nil {
		return nil, errors.Wrap(err, "failed to print issue")
	}

	return &vcs.Issue{
		Number: DryRunIssueNumber,
		Title:  issue.Title,
		Body:   issue.Body,
		Labels: issue.Labels,
	}, nil
}

func (s *DryRunSink) CreateComment(_ context.Context, owner, repo string, number int, comment vcs.NewComment) (*vcs.Comment, error) {
	fmt.Fprintf(s.out, "[DRY RUN] Would copy comment to %s/%s#%d:\n%s\n\n", owner, repo, number, comment.Body)
	return &vcs.Comment{Body: comment.Body}, nil
}
