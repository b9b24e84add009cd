package cmd

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zapier/ghcopy/pkg/config"
	"github.com/zapier/ghcopy/pkg/copier"
	"github.com/zapier/ghcopy/pkg/vcs"
)

func TestLoadConfig(t *testing.T) {
	tests := map[string]struct {
		settings    map[string]any
		targetOwner string
		targetRepo  string
		sourceOwner string
		sourceRepo  string
	}{
		"plain names": {
			settings:    map[string]any{"to-owner": "me", "to-repo": "dst"},
			targetOwner: "me",
			targetRepo:  "dst",
		},
		"clone url": {
			settings:    map[string]any{"to-repo": "https://github.com/me/dst.git", "from-repo": "git@github.com:acme/src.git"},
			targetOwner: "me",
			targetRepo:  "dst",
			sourceOwner: "acme",
			sourceRepo:  "src",
		},
		"owner slash repo": {
			settings:    map[string]any{"to-owner": "ignored", "to-repo": "me/dst"},
			targetOwner: "me",
			targetRepo:  "dst",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			v := viper.New()
			for key, value := range tc.settings {
				v.Set(key, value)
			}

			cfg, err := loadConfig(v)
			require.NoError(t, err)
			assert.Equal(t, tc.targetOwner, cfg.TargetOwner)
			assert.Equal(t, tc.targetRepo, cfg.TargetRepo)
			assert.Equal(t, tc.sourceOwner, cfg.SourceOwner)
			assert.Equal(t, tc.sourceRepo, cfg.SourceRepo)
			assert.Equal(t, config.ProviderGemini, cfg.TranslationProvider)
		})
	}
}

func TestLoadConfig_InvalidRepo(t *testing.T) {
	v := viper.New()
	v.Set("to-repo", "https://github.com/only-owner")

	_, err := loadConfig(v)
	assert.ErrorIs(t, err, vcs.ErrInvalidRepo)
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	filename := filepath.Join(dir, "defaults.yaml")
	require.NoError(t, os.WriteFile(filename, []byte(`
target:
  owner: me
  repo: dst
lang: ja
translation:
  provider: openai
`), 0o600))

	v := viper.New()
	v.Set("config", filename)
	v.Set("lang", "fr")
	require.NoError(t, loadConfigFile(v))

	cfg, err := loadConfig(v)
	require.NoError(t, err)
	assert.Equal(t, "me", cfg.TargetOwner)
	assert.Equal(t, "dst", cfg.TargetRepo)
	assert.Equal(t, "fr", cfg.Language)
	assert.Equal(t, config.ProviderOpenAI, cfg.TranslationProvider)
}

func TestLoadConfigFile_Missing(t *testing.T) {
	v := viper.New()
	v.Set("config", filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, loadConfigFile(v))
}

func TestCopyIssueCmd_InvalidNumber(t *testing.T) {
	RootCmd.SetOut(io.Discard)
	RootCmd.SetErr(io.Discard)
	RootCmd.SetArgs([]string{"copy:issue", "abc"})
	t.Cleanup(func() { RootCmd.SetArgs(nil) })

	err := RootCmd.Execute()
	assert.ErrorIs(t, err, copier.ErrValidation)
}

func TestVersionCmd(t *testing.T) {
	out := &bytes.Buffer{}
	RootCmd.SetOut(out)
	RootCmd.SetErr(io.Discard)
	RootCmd.SetArgs([]string{"version"})
	t.Cleanup(func() { RootCmd.SetArgs(nil) })

	require.NoError(t, RootCmd.Execute())
	assert.Contains(t, out.String(), "Version:")
}
