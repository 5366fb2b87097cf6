package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/sparkhub/sparkhub-cli/pkg/api"
)

var (
	notifPage     int
	notifPageSize int
	notifFilter   string
)

var notificationsCmd = &cobra.Command{
	Use:     "notifications",
	Aliases: []string{"inbox"},
	Short:   "Read your inbox",
}

var notificationsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List notifications",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(func(a *app) error {
			if err := a.visit("/notifications"); err != nil {
				return err
			}
			page, err := a.notifications.List(cmd.Context(), api.NotificationListParams{
				PageNum:  notifPage,
				PageSize: notifPageSize,
				Filter:   api.NotificationFilter(notifFilter),
			})
			if err != nil {
				return err
			}
			return render(a, page, func(w io.Writer) {
				for _, n := range page.List {
					marker := " "
					if !n.IsRead {
						marker = "*"
					}
					from := n.SenderUsername
					if from == "" {
						from = "system"
					}
					fmt.Fprintf(w, "%s [%d] %s: %s (%s)\n", marker, n.ID, from, n.Content, n.CreateTime)
				}
				fmt.Fprintf(w, "page %d/%d, %d notifications\n", page.PageNum, page.Pages, page.Total)
			})
		})
	},
}

var notificationsUnreadCmd = &cobra.Command{
	Use:   "unread",
	Short: "Show the unread count",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(func(a *app) error {
			n, err := a.notifications.SyncUnread(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("%d unread\n", n)
			return nil
		})
	},
}

var notificationsReadCmd = &cobra.Command{
	Use:   "read <id>",
	Short: "Mark a notification read",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(func(a *app) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			// The badge is refreshed from the backend afterwards, so the
			// already-read case needs no local bookkeeping here.
			if err := a.notifications.MarkRead(cmd.Context(), id, false); err != nil {
				return err
			}
			if _, err := a.notifications.SyncUnread(cmd.Context()); err != nil {
				return err
			}
			return nil
		})
	},
}

var notificationsReadAllCmd = &cobra.Command{
	Use:   "read-all",
	Short: "Mark every notification read",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(func(a *app) error {
			return a.notifications.MarkAllRead(cmd.Context())
		})
	},
}

func init() {
	notificationsListCmd.Flags().IntVar(&notifPage, "page", 1, "page number")
	notificationsListCmd.Flags().IntVar(&notifPageSize, "page-size", 20, "notifications per page")
	notificationsListCmd.Flags().StringVar(&notifFilter, "filter", "all", "filter: all, unread, system, or interaction")

	notificationsCmd.AddCommand(notificationsListCmd)
	notificationsCmd.AddCommand(notificationsUnreadCmd)
	notificationsCmd.AddCommand(notificationsReadCmd)
	notificationsCmd.AddCommand(notificationsReadAllCmd)
	rootCmd.AddCommand(notificationsCmd)
}
