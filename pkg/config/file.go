package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/creasty/defaults"
	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"gopkg.in/dealancer/validate.v2"
	"gopkg.in/yaml.v3"
)

const FilenamePrefix = `.ghcopy`

var FileExtensions = []string{".yaml", ".yml"}

var ErrConfigFileNotFound = errors.New("config file not found")

// File holds per-project defaults. Flags and environment variables always win
// over values found here.
type File struct {
	Source      RepoRef         `yaml:"source"`
	Target      RepoRef         `yaml:"target"`
	Language    string          `yaml:"lang"`
	Translation TranslationFile `yaml:"translation"`
}

type RepoRef struct {
	Owner string `yaml:"owner"`
	Repo  string `yaml:"repo"`
}

type TranslationFile struct {
	Provider   string `default:"gemini" validate:"one_of=gemini,openai" yaml:"provider"`
	Model      string `yaml:"model"`
	BaseURL    string `yaml:"baseUrl"`
	MaxRetries int    `validate:"gte=0"        yaml:"maxRetries"`
}

// SearchFile looks for a config file in dir, trying every supported extension.
func SearchFile(dir string) (string, error) {
	for _, ext := range FileExtensions {
		fn := filepath.Join(dir, FilenamePrefix+ext)
		fi, err := os.Stat(fn)
		if err != nil && !os.IsNotExist(err) {
			log.Warn().Err(err).Str("filename", fn).Msg("error while attempting to read config file")
			continue
		}
		if fi != nil && !fi.IsDir() {
			return fn, nil
		}
	}

	return "", ErrConfigFileNotFound
}

func LoadFile(file string) (*File, error) {
	b, err := os.ReadFile(file)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "could not read config file %s", file)
	}
	return LoadBytes(b)
}

func LoadBytes(b []byte) (*File, error) {
	f := &File{}
	if err := defaults.Set(f); err != nil {
		return nil, pkgerrors.Wrap(err, "failed to set defaults for config file")
	}

	if err := yaml.Unmarshal(b, f); err != nil {
		return nil, fmt.Errorf("could not parse config file (%s.yaml): %v", FilenamePrefix, err)
	}

	if err := validate.Validate(f); err != nil {
		return nil, err
	}

	return f, nil
}

// ApplyDefaults registers the file values as viper defaults, so that flags and
// environment variables keep precedence.
func (f *File) ApplyDefaults(v *viper.Viper) {
	set := func(key, value string) {
		if value != "" {
			v.SetDefault(key, value)
		}
	}

	set("from-owner", f.Source.Owner)
	set("from-repo", f.Source.Repo)
	set("to-owner", f.Target.Owner)
	set("to-repo", f.Target.Repo)
	set("lang", f.Language)
	set("translation-provider", f.Translation.Provider)
	set("translation-model", f.Translation.Model)
	set("translation-base-url", f.Translation.BaseURL)
	if f.Translation.MaxRetries > 0 {
		v.SetDefault("translation-max-retries", f.Translation.MaxRetries)
	}
}
