package cmd

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/zapier/ghcopy/pkg/container"
	"github.com/zapier/ghcopy/pkg/copier"
)

var copyCommentCmd = &cobra.Command{
	Use:   "copy:comment",
	Short: "Copy an issue comment into a new issue",
	Long: `Creates an issue in the target repository holding the translated comment the link points to.
Both https://github.com/o/r/issues/5#issuecomment-42 and https://github.com/o/r/issues/comments/42 links are accepted.`,
	Example: `  ghcopy copy:comment --comment-link=https://github.com/acme/src/issues/5#issuecomment-42 --to-owner=me --to-repo=dst --lang=ja`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		link, _ := cmd.Flags().GetString("comment-link")
		dryRun, _ := cmd.Flags().GetBool("dry-run")

		return withContainer(cmd.Context(), func(ctx context.Context, ctr container.Container) error {
			log.Debug().Str("link", link).Bool("dry_run", dryRun).Msg("copying comment")

			out := cmd.OutOrStdout()
			c := copier.New(ctr.VcsClient, ctr.Translator, out)
			_, err := c.CopyComment(ctx, copier.CommentOptions{
				Link:        link,
				TargetOwner: ctr.Config.TargetOwner,
				TargetRepo:  ctr.Config.TargetRepo,
				Language:    ctr.Config.Language,
			}, copier.NewSink(ctr.VcsClient, out, dryRun))
			return err
		})
	},
}

func init() {
	RootCmd.AddCommand(copyCommentCmd)

	flags := copyCommentCmd.Flags()
	flags.String("comment-link", "", "Link to the issue comment to copy.")
	flags.Bool("dry-run", false, "Print the issue that would be created instead of creating it.")
}
