package copier

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zapier/ghcopy/pkg/vcs"
)

func TestNewSink(t *testing.T) {
	out := &bytes.Buffer{}
	assert.IsType(t, &LiveSink{}, NewSink(&recordingWriter{}, out, false))
	assert.IsType(t, &DryRunSink{}, NewSink(&recordingWriter{}, out, true))
}

func TestDryRunSink_CreateIssue(t *testing.T) {
	out := &bytes.Buffer{}
	sink := NewSink(nil, out, true)

	issue, err := sink.CreateIssue(context.Background(), "me", "dst", vcs.NewIssue{
		Title: "<b>Title</b>",
		Body:  "Body",
	})
	require.NoError(t, err)
	assert.Equal(t, DryRunIssueNumber, issue.Number)
	assert.Empty(t, issue.HTMLURL)

	expected := "[DRY RUN] Would create issue in me/dst:\n" +
		"{\n" +
		"    \"title\": \"<b>Title</b>\",\n" +
		"    \"body\": \"Body\"\n" +
		"}\n"
	assert.Equal(t, expected, out.String())
}

func TestDryRunSink_CreateComment(t *testing.T) {
	out := &bytes.Buffer{}
	sink := NewSink(nil, out, true)

	comment, err := sink.CreateComment(context.Background(), "me", "dst", DryRunIssueNumber, vcs.NewComment{Body: "hello"})
	require.NoError(t, err)
	assert.Equal(t, "hello", comment.Body)
	assert.Equal(t, "[DRY RUN] Would copy comment to me/dst#9999:\nhello\n\n", out.String())
}

func TestLiveSink(t *testing.T) {
	out := &bytes.Buffer{}
	writer := &recordingWriter{}
	sink := NewSink(writer, out, false)

	issue, err := sink.CreateIssue(context.Background(), "me", "dst", vcs.NewIssue{Title: "t", Body: "b", Labels: []string{"bug"}})
	require.NoError(t, err)
	assert.Equal(t, 101, issue.Number)

	_, err = sink.CreateComment(context.Background(), "me", "dst", issue.Number, vcs.NewComment{Body: "c"})
	require.NoError(t, err)

	assert.Len(t, writer.issues, 1)
	assert.Len(t, writer.comments, 1)
	assert.Equal(t, "✅ Created new issue: https://github.com/me/dst/issues/101\n🗨️ Copied a comment to me/dst#101\n", out.String())
}

func TestLiveSink_Errors(t *testing.T) {
	out := &bytes.Buffer{}
	sink := NewSink(&recordingWriter{err: errors.New("boom")}, out, false)

	_, err := sink.CreateIssue(context.Background(), "me", "dst", vcs.NewIssue{Title: "t"})
	assert.ErrorContains(t, err, "failed to create issue in me/dst: boom")

	_, err = sink.CreateComment(context.Background(), "me", "dst", 3, vcs.NewComment{Body: "c"})
	assert.ErrorContains(t, err, "failed to create comment on me/dst#3: boom")
	assert.Empty(t, out.String())
}
