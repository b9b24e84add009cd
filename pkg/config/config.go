package config

import (
	"github.com/creasty/defaults"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"gopkg.in/dealancer/validate.v2"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// Config is built once at startup from flags, environment and the optional
// defaults file, then handed to every client and flow.
type Config struct {
	LogLevel string `mapstructure:"log-level" default:"info"`

	GithubToken          string `mapstructure:"github-token"`
	GithubBaseURL        string `mapstructure:"github-base-url"`
	GithubUploadURL      string `mapstructure:"github-upload-url"`
	GithubAppID          int64  `mapstructure:"github-app-id"`
	GithubInstallationID int64  `mapstructure:"github-installation-id"`
	GithubPrivateKey     string `mapstructure:"github-private-key"`

	// source repository for copy:issue; falls back to the target when unset
	SourceOwner string `mapstructure:"from-owner"`
	SourceRepo  string `mapstructure:"from-repo"`

	TargetOwner string `mapstructure:"to-owner"`
	TargetRepo  string `mapstructure:"to-repo"`
	Language    string `mapstructure:"lang"`

	TranslationProvider   string `mapstructure:"translation-provider" default:"gemini" validate:"one_of=gemini,openai"`
	TranslationAPIKey     string `mapstructure:"translation-api-key"`
	TranslationModel      string `mapstructure:"translation-model"`
	TranslationBaseURL    string `mapstructure:"translation-base-url"`
	TranslationMaxRetries int    `mapstructure:"translation-max-retries" validate:"gte=0"`

	OtelEnabled       bool   `mapstructure:"otel-enabled"`
	OtelCollectorHost string `mapstructure:"otel-collector-host"`
	OtelCollectorPort string `mapstructure:"otel-collector-port"`
}

func New(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, errors.Wrap(err, "failed to unmarshal config")
	}

	if err := defaults.Set(&cfg); err != nil {
		return cfg, errors.Wrap(err, "failed to set config defaults")
	}

	if err := validate.Validate(&cfg); err != nil {
		return cfg, errors.Wrap(err, "invalid config")
	}

	return cfg, nil
}

// Source returns the repository issues are copied from.
func (c Config) Source() (string, string) {
	owner, repo := c.SourceOwner, c.SourceRepo
	if owner == "" {
		owner = c.TargetOwner
	}
	if repo == "" {
		repo = c.TargetRepo
	}
	return owner, repo
}

// UsesGithubApp reports whether GitHub App installation credentials are configured.
func (c Config) UsesGithubApp() bool {
	return c.GithubAppID != 0 && c.GithubInstallationID != 0 && c.GithubPrivateKey != ""
}
