package container

import (
	"github.com/zapier/ghcopy/pkg/config"
	"github.com/zapier/ghcopy/pkg/translate"
	"github.com/zapier/ghcopy/pkg/vcs"
)

// Container holds the clients shared by every command of one invocation.
type Container struct {
	Config config.Config

	VcsClient  vcs.Client
	Translator translate.Translator
}
