package github_client

import (
	"net/http"

	"github.com/bradleyfalzon/ghinstallation/v2"
	"github.com/google/go-github/v62/github"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"golang.org/x/oauth2"

	"github.com/zapier/ghcopy/pkg"
	"github.com/zapier/ghcopy/pkg/config"
)

var tracer = otel.Tracer("pkg/vcs/github_client")

const (
	acceptHeader = "application/vnd.github+json"
	apiVersion   = "2022-11-28"
)

var ErrMissingCredentials = errors.New("github token or github app credentials need to be set")

type Client struct {
	googleClient *GClient
}

// GClient is a struct that holds the services for the GitHub client
type GClient struct {
	Issues IssuesServices
}

// CreateGithubClient creates a new GitHub client using either the auth token or
// the GitHub App installation configured. We can't validate the credentials at
// this point, so if they exist we assume they work.
func CreateGithubClient(cfg config.Config) (*Client, error) {
	var (
		err          error
		transport    http.RoundTripper = http.DefaultTransport
		googleClient *github.Client
	)

	switch {
	case cfg.UsesGithubApp():
		log.Debug().Int64("app_id", cfg.GithubAppID).Msg("authenticating as github app installation")
		itr, err := ghinstallation.New(transport, cfg.GithubAppID, cfg.GithubInstallationID, []byte(cfg.GithubPrivateKey))
		if err != nil {
			return nil, errors.Wrap(err, "failed to create github app transport")
		}
		if cfg.GithubBaseURL != "" {
			itr.BaseURL = cfg.GithubBaseURL
		}
		transport = itr
	case cfg.GithubToken != "":
		log.Debug().Msgf("Token Length - %d", len(cfg.GithubToken))
		transport = &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.GithubToken}),
			Base:   transport,
		}
	default:
		return nil, ErrMissingCredentials
	}

	tc := &http.Client{Transport: &headerTransport{base: transport}}

	githubUrl := cfg.GithubBaseURL
	githubUploadUrl := cfg.GithubUploadURL
	// we need both urls to be set for github enterprise
	if githubUrl == "" || githubUploadUrl == "" {
		googleClient = github.NewClient(tc)
	} else {
		googleClient, err = github.NewClient(tc).WithEnterpriseURLs(githubUrl, githubUploadUrl)
		if err != nil {
			return nil, errors.Wrap(err, "failed to create github enterprise client")
		}
	}

	return newClient(googleClient), nil
}

func newClient(googleClient *github.Client) *Client {
	googleClient.UserAgent = pkg.UserAgent()
	return &Client{
		googleClient: &GClient{
			Issues: IssuesService{googleClient.Issues},
		},
	}
}

func (c *Client) GetName() string {
	return "github"
}

// headerTransport pins the media type and api version on every request.
type headerTransport struct {
	base http.RoundTripper
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("X-GitHub-Api-Version", apiVersion)
	return t.base.RoundTrip(req)
}
