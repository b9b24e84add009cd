package github_client

import (
	"fmt"
	"io"

	"github.com/google/go-github/v62/github"
	"github.com/pkg/errors"
)

// APIError is returned for every failed GitHub call, whether GitHub answered with
// a non-2xx status or the request never completed (StatusCode is 0 then).
type APIError struct {
	Op         string
	StatusCode int
	Body       string
	Err        error
}

func (e *APIError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("github %s failed: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("github %s failed with status %d: %s", e.Op, e.StatusCode, e.Body)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

func newAPIError(op string, resp *github.Response, err error) error {
	apiErr := &APIError{Op: op, Err: err}
	if resp == nil || resp.Response == nil {
		return apiErr
	}

	apiErr.StatusCode = resp.StatusCode
	if resp.Body != nil {
		if b, readErr := io.ReadAll(resp.Body); readErr == nil {
			apiErr.Body = string(b)
		}
	}

	var ghErr *github.ErrorResponse
	if apiErr.Body == "" && errors.As(err, &ghErr) {
		apiErr.Body = ghErr.Message
	}

	return apiErr
}
