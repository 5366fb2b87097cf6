package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

var favoritesCmd = &cobra.Command{
	Use:   "favorites",
	Short: "Manage your favorite projects",
}

var favoritesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your favorites",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(func(a *app) error {
			if err := a.visit("/my-favorites"); err != nil {
				return err
			}
			favorites, err := a.client.MyFavorites(cmd.Context())
			if err != nil {
				return err
			}
			return render(a, favorites, func(w io.Writer) {
				tw := table(w)
				fmt.Fprintln(tw, "ID\tTITLE\tSTATUS\tFUNDED")
				for _, p := range favorites {
					fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n",
						p.ID, p.Title, projectStatusText(p.Status),
						fundingPercent(p.CurrentAmount, p.GoalAmount))
				}
				_ = tw.Flush()
			})
		})
	},
}

var favoritesAddCmd = &cobra.Command{
	Use:   "add <projectId>",
	Short: "Favorite a project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(func(a *app) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.client.AddFavorite(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Printf("Project %d added to favorites\n", id)
			return nil
		})
	},
}

var favoritesRemoveCmd = &cobra.Command{
	Use:   "remove <projectId>",
	Short: "Remove a project from your favorites",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(func(a *app) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.client.RemoveFavorite(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Printf("Project %d removed from favorites\n", id)
			return nil
		})
	},
}

func init() {
	favoritesCmd.AddCommand(favoritesListCmd)
	favoritesCmd.AddCommand(favoritesAddCmd)
	favoritesCmd.AddCommand(favoritesRemoveCmd)
	rootCmd.AddCommand(favoritesCmd)
}
