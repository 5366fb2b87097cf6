package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sparkhub/sparkhub-cli/pkg/api"
)

var replyTo int64

var commentCmd = &cobra.Command{
	Use:   "comment <projectId> <text>",
	Short: "Comment on a project",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(func(a *app) error {
			projectID, err := parseID(args[0])
			if err != nil {
				return err
			}
			req := api.CommentCreateRequest{Content: args[1], ParentID: replyTo}
			comment, err := a.client.CreateComment(cmd.Context(), projectID, req)
			if err != nil {
				return err
			}
			fmt.Printf("Comment %d posted\n", comment.ID)
			return nil
		})
	},
}

var likeCmd = &cobra.Command{
	Use:   "like <commentId>",
	Short: "Like a comment",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(func(a *app) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return a.client.LikeComment(cmd.Context(), id)
		})
	},
}

var unlikeCmd = &cobra.Command{
	Use:   "unlike <commentId>",
	Short: "Remove your like from a comment",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(func(a *app) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return a.client.UnlikeComment(cmd.Context(), id)
		})
	},
}

func init() {
	commentCmd.Flags().Int64Var(&replyTo, "reply-to", 0, "reply to an existing comment")
	rootCmd.AddCommand(commentCmd)
	rootCmd.AddCommand(likeCmd)
	rootCmd.AddCommand(unlikeCmd)
}
