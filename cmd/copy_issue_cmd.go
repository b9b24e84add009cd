package cmd

import (
	"context"
	"strconv"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/zapier/ghcopy/pkg/container"
	"github.com/zapier/ghcopy/pkg/copier"
)

var copyIssueCmd = &cobra.Command{
	Use:   "copy:issue <issue-number>",
	Short: "Copy an issue and its comments",
	Long: `Creates a copy of an issue, with its labels and comments, in the target repository.
Text is translated when --lang is set. Pull requests are refused.`,
	Example: `  ghcopy copy:issue 7 --from-owner=acme --from-repo=src --to-owner=me --to-repo=dst --lang=ja`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		number, err := strconv.Atoi(args[0])
		if err != nil {
			return errors.Wrapf(copier.ErrValidation, "issue number must be an integer, got %q", args[0])
		}
		dryRun, _ := cmd.Flags().GetBool("dry-run")

		return withContainer(cmd.Context(), func(ctx context.Context, ctr container.Container) error {
			sourceOwner, sourceRepo := ctr.Config.Source()
			log.Debug().
				Int("issue", number).
				Str("source", sourceOwner+"/"+sourceRepo).
				Bool("dry_run", dryRun).
				Msg("copying issue")

			out := cmd.OutOrStdout()
			c := copier.New(ctr.VcsClient, ctr.Translator, out)
			_, err := c.CopyIssue(ctx, copier.IssueOptions{
				Number:      number,
				SourceOwner: sourceOwner,
				SourceRepo:  sourceRepo,
				TargetOwner: ctr.Config.TargetOwner,
				TargetRepo:  ctr.Config.TargetRepo,
				Language:    ctr.Config.Language,
			}, copier.NewSink(ctr.VcsClient, out, dryRun))
			return err
		})
	},
}

func init() {
	RootCmd.AddCommand(copyIssueCmd)

	flags := copyIssueCmd.Flags()
	flags.Bool("dry-run", false, "Print the issue and comments that would be created instead of creating them.")
}
