package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/sparkhub/sparkhub-cli/pkg/api"
)

var payNow bool

var backCmd = &cobra.Command{
	Use:   "back <rewardId>",
	Short: "Back a project reward",
	Long: `Pledge against a reward tier. The backing starts unpaid; settle it
immediately with --pay or later with "sparkhub backings pay <id>".`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(func(a *app) error {
			rewardID, err := parseID(args[0])
			if err != nil {
				return err
			}
			backing, err := a.client.CreateBacking(cmd.Context(), api.BackingCreateRequest{RewardID: rewardID})
			if err != nil {
				return err
			}
			fmt.Printf("Backing %d created (%.2f, %s)\n",
				backing.ID, backing.BackingAmount, backingStatusText(backing.Status))

			if payNow {
				if err := a.client.PayBacking(cmd.Context(), backing.ID); err != nil {
					return err
				}
				fmt.Printf("Backing %d paid\n", backing.ID)
			}
			return nil
		})
	},
}

var backingsCmd = &cobra.Command{
	Use:   "backings",
	Short: "Manage your backings",
}

var backingsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your backings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(func(a *app) error {
			if err := a.visit("/my-backings"); err != nil {
				return err
			}
			backings, err := a.client.MyBackings(cmd.Context())
			if err != nil {
				return err
			}
			return render(a, backings, func(w io.Writer) {
				tw := table(w)
				fmt.Fprintln(tw, "ID\tPROJECT\tREWARD\tAMOUNT\tSTATUS\tWHEN")
				for _, b := range backings {
					fmt.Fprintf(tw, "%d\t%d\t%d\t%.2f\t%s\t%s\n",
						b.ID, b.ProjectID, b.RewardID, b.BackingAmount,
						backingStatusText(b.Status), b.CreateTime)
				}
				_ = tw.Flush()
			})
		})
	},
}

var backingsPayCmd = &cobra.Command{
	Use:   "pay <id>",
	Short: "Pay a pending backing",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(func(a *app) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.client.PayBacking(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Printf("Backing %d paid\n", id)
			return nil
		})
	},
}

func init() {
	backCmd.Flags().BoolVar(&payNow, "pay", false, "pay immediately after backing")
	backingsCmd.AddCommand(backingsListCmd)
	backingsCmd.AddCommand(backingsPayCmd)
	rootCmd.AddCommand(backCmd)
	rootCmd.AddCommand(backingsCmd)
}
