package vcs

import (
	"fmt"
	"net/url"
	"strings"

	giturls "github.com/chainguard-dev/git-urls"
	"github.com/pkg/errors"
)

// ParseRepo normalizes a repository reference into its owner and name. It accepts
// "owner/repo" as well as clone urls over https or ssh.
func ParseRepo(ref string) (string, string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", "", errors.Wrap(ErrInvalidRepo, "empty reference")
	}

	path := ref
	if strings.Contains(ref, "://") || strings.Contains(ref, "@") {
		var parser func(string) (*url.URL, error)
		if strings.HasPrefix(ref, "http") {
			parser = url.Parse
		} else {
			parser = giturls.Parse
		}

		result, err := parser(ref)
		if err != nil {
			return "", "", errors.Wrapf(ErrInvalidRepo, "%s: %s", ref, err)
		}
		path = result.Path
	}

	path = strings.TrimPrefix(path, "/")
	path = strings.TrimSuffix(path, "/")
	path = strings.TrimSuffix(path, ".git")
	parts := strings.Split(path, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", errors.Wrap(ErrInvalidRepo, fmt.Sprintf("%s: expected owner/repo", ref))
	}

	return parts[0], parts[1], nil
}

// ResolveRepo combines an owner and a repo setting. The repo may itself be a full
// reference ("owner/repo" or a clone url), in which case it wins over owner.
func ResolveRepo(owner, repo string) (string, string, error) {
	if strings.Contains(repo, "/") || strings.Contains(repo, "@") {
		return ParseRepo(repo)
	}
	return owner, repo, nil
}
