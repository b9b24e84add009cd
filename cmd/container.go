package cmd

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"github.com/zapier/ghcopy/pkg"
	"github.com/zapier/ghcopy/pkg/config"
	"github.com/zapier/ghcopy/pkg/container"
	"github.com/zapier/ghcopy/pkg/translate"
	"github.com/zapier/ghcopy/pkg/vcs"
	"github.com/zapier/ghcopy/pkg/vcs/github_client"
	"github.com/zapier/ghcopy/telemetry"
)

func newContainer(cfg config.Config) (container.Container, error) {
	var err error

	var ctr = container.Container{
		Config: cfg,
	}

	if ctr.VcsClient, err = github_client.CreateGithubClient(cfg); err != nil {
		return ctr, errors.Wrap(err, "failed to create vcs client")
	}

	if ctr.Translator, err = translate.New(cfg); err != nil {
		return ctr, errors.Wrap(err, "failed to create translator")
	}

	return ctr, nil
}

// loadConfig builds the config from flags, environment and the defaults file,
// normalizing repository references.
func loadConfig(v *viper.Viper) (config.Config, error) {
	cfg, err := config.New(v)
	if err != nil {
		return cfg, err
	}

	if cfg.TargetOwner, cfg.TargetRepo, err = vcs.ResolveRepo(cfg.TargetOwner, cfg.TargetRepo); err != nil {
		return cfg, errors.Wrap(err, "invalid to-repo")
	}
	if cfg.SourceOwner, cfg.SourceRepo, err = vcs.ResolveRepo(cfg.SourceOwner, cfg.SourceRepo); err != nil {
		return cfg, errors.Wrap(err, "invalid from-repo")
	}

	return cfg, nil
}

// withContainer runs fn with a fully wired container, flushing telemetry once
// fn returns.
func withContainer(ctx context.Context, fn func(context.Context, container.Container) error) error {
	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return err
	}

	t, err := telemetry.Init(ctx, "ghcopy", pkg.GitTag, pkg.GitCommit, cfg.OtelEnabled, cfg.OtelCollectorHost, cfg.OtelCollectorPort)
	if err != nil {
		log.Warn().Err(err).Msg("failed to initialize telemetry, continuing without it")
	}
	defer t.Shutdown(context.Background())

	ctr, err := newContainer(cfg)
	if err != nil {
		return err
	}

	return fn(ctx, ctr)
}
