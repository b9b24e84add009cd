package cmd

import (
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zapier/ghcopy/pkg/config"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "ghcopy",
	Short: "Copy GitHub issues and comments",
	Long: `Copies a GitHub issue comment into a new issue, or a whole issue with its comments,
into another repository, optionally translating the text on the way.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogOutput()
		return loadConfigFile(viper.GetViper())
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.CheckErr(RootCmd.Execute())
}

const envPrefix = "ghcopy"

var envKeyReplacer = strings.NewReplacer("-", "_")

func init() {
	// allows environment variables to use _ instead of -
	viper.SetEnvKeyReplacer(envKeyReplacer) // to-owner becomes TO_OWNER
	viper.SetEnvPrefix(envPrefix)           // lang becomes GHCOPY_LANG
	viper.AutomaticEnv()                    // read in environment variables that match

	flags := RootCmd.PersistentFlags()
	stringFlag(flags, "log-level", "Set the log output level.",
		newStringOpts().
			withChoices(
				zerolog.LevelErrorValue,
				zerolog.LevelWarnValue,
				zerolog.LevelInfoValue,
				zerolog.LevelDebugValue,
				zerolog.LevelTraceValue,
			).
			withDefault("info").
			withShortHand("l"),
	)
	stringFlag(flags, "config", "Path to a defaults file. Looks for .ghcopy.yaml in the working directory when unset.")

	stringFlag(flags, "github-token", "GitHub API token.")
	stringFlag(flags, "github-base-url", "GitHub API base url, for GitHub Enterprise.")
	stringFlag(flags, "github-upload-url", "GitHub upload url, for GitHub Enterprise.")
	int64Flag(flags, "github-app-id", "GitHub App id, used instead of a token together with an installation id and private key.")
	int64Flag(flags, "github-installation-id", "GitHub App installation id.")
	stringFlag(flags, "github-private-key", "GitHub App private key (PEM).")

	stringFlag(flags, "from-owner", "Owner of the repository issues are copied from. Defaults to the target owner.")
	stringFlag(flags, "from-repo", "Repository issues are copied from. Defaults to the target repository.")
	stringFlag(flags, "to-owner", "Owner of the repository to copy into.")
	stringFlag(flags, "to-repo", "Repository to copy into. Also accepts owner/repo or a clone url.")
	stringFlag(flags, "lang", "Language to translate into, such as ja or English.")

	stringFlag(flags, "translation-provider", "Generative-language API used for translation.",
		newStringOpts().
			withChoices(config.ProviderGemini, config.ProviderOpenAI).
			withDefault(config.ProviderGemini))
	stringFlag(flags, "translation-api-key", "API key of the translation provider. Translation is skipped when unset.")
	stringFlag(flags, "translation-model", "Model used for translation. Defaults to the provider's default model.")
	stringFlag(flags, "translation-base-url", "Base url of the translation provider API.")
	int64Flag(flags, "translation-max-retries", "Retries for rate limited or failing translation requests.")

	stringFlag(flags, "otel-collector-port", "The OpenTelemetry collector port.")
	stringFlag(flags, "otel-collector-host", "The OpenTelemetry collector host.")
	boolFlag(flags, "otel-enabled", "Enable OpenTelemetry.")

	panicIfError(viper.BindPFlags(flags))
}

func setupLogOutput() {
	output := zerolog.ConsoleWriter{Out: os.Stderr}
	log.Logger = log.Output(output).With().Str("run_id", uuid.NewString()).Logger()

	// Default level is info, unless debug flag is present
	levelFlag := viper.GetString("log-level")
	level, err := zerolog.ParseLevel(levelFlag)
	if err != nil {
		level = zerolog.InfoLevel
	}

	zerolog.SetGlobalLevel(level)
	log.Debug().Msg("Debug level logging enabled.")
	log.Trace().Msg("Trace level logging enabled.")
}

// loadConfigFile registers the values of the defaults file, if any, as viper
// defaults.
func loadConfigFile(v *viper.Viper) error {
	filename := v.GetString("config")
	if filename == "" {
		var err error
		filename, err = config.SearchFile(".")
		if errors.Is(err, config.ErrConfigFileNotFound) {
			log.Debug().Msg("no config file found")
			return nil
		}
		if err != nil {
			return err
		}
	}

	file, err := config.LoadFile(filename)
	if err != nil {
		return err
	}

	log.Debug().Str("filename", filename).Msg("loaded config file")
	file.ApplyDefaults(v)
	return nil
}

func panicIfError(err error) {
	if err != nil {
		panic(err)
	}
}
