package vcs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRepo(t *testing.T) {
	testcases := []struct {
		name, input                 string
		expectedOwner, expectedRepo string
	}{
		{
			name:          "plain owner and repo",
			input:         "acme/dst",
			expectedOwner: "acme",
			expectedRepo:  "dst",
		},
		{
			name:          "github.com over ssh",
			input:         "git@github.com:zapier/ghcopy.git",
			expectedOwner: "zapier",
			expectedRepo:  "ghcopy",
		},
		{
			name:          "github.com over https",
			input:         "https://github.com/zapier/ghcopy.git",
			expectedOwner: "zapier",
			expectedRepo:  "ghcopy",
		},
		{
			name:          "github.com with https with username without .git",
			input:         "https://djeebus@github.com/zapier/ghcopy",
			expectedOwner: "zapier",
			expectedRepo:  "ghcopy",
		},
	}

	for _, tc := range testcases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			owner, repo, err := ParseRepo(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.expectedOwner, owner)
			assert.Equal(t, tc.expectedRepo, repo)
		})
	}
}

func TestParseRepoInvalid(t *testing.T) {
	for _, input := range []string{"", "acme", "a/b/c", "https://github.com/acme"} {
		t.Run(input, func(t *testing.T) {
			_, _, err := ParseRepo(input)
			assert.ErrorIs(t, err, ErrInvalidRepo)
		})
	}
}

func TestResolveRepo(t *testing.T) {
	tests := map[string]struct {
		owner, repo                 string
		expectedOwner, expectedRepo string
	}{
		"separate owner and repo": {
			owner: "acme", repo: "dst",
			expectedOwner: "acme", expectedRepo: "dst",
		},
		"repo carries the owner": {
			owner: "ignored", repo: "other/dst",
			expectedOwner: "other", expectedRepo: "dst",
		},
		"repo is a clone url": {
			owner: "", repo: "git@github.com:other/dst.git",
			expectedOwner: "other", expectedRepo: "dst",
		},
		"both empty": {},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			owner, repo, err := ResolveRepo(test.owner, test.repo)
			require.NoError(t, err)
			assert.Equal(t, test.expectedOwner, owner)
			assert.Equal(t, test.expectedRepo, repo)
		})
	}
}
