// Package commentlink extracts the repository and comment id from links to
// GitHub issue comments.
package commentlink

import (
	"errors"
	"regexp"

	pkgerrors "github.com/pkg/errors"
)

// ErrInvalidLink is returned when a link does not point to an issue comment.
var ErrInvalidLink = errors.New("invalid comment link")

var (
	reRepo = regexp.MustCompile(`github\.com/([^/]+)/([^/]+)/issues/`)

	// tried in order, first match wins
	reCommentID = []*regexp.Regexp{
		regexp.MustCompile(`issuecomment-(\d+)`),
		regexp.MustCompile(`/issues/comments/(\d+)`),
	}
)

// Link identifies a single issue comment.
type Link struct {
	Owner     string
	Repo      string
	CommentID string
}

// Parse accepts both the browser form
// (https://github.com/OWNER/REPO/issues/N#issuecomment-ID) and the api-ish form
// (https://github.com/OWNER/REPO/issues/comments/ID).
func Parse(link string) (Link, error) {
	m := reRepo.FindStringSubmatch(link)
	if len(m) != 3 {
		return Link{}, pkgerrors.Wrapf(ErrInvalidLink, "%q: cannot find owner/repo", link)
	}

	for _, re := range reCommentID {
		if id := re.FindStringSubmatch(link); len(id) == 2 {
			return Link{Owner: m[1], Repo: m[2], CommentID: id[1]}, nil
		}
	}

	return Link{}, pkgerrors.Wrapf(ErrInvalidLink, "%q: cannot find comment id", link)
}
