package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage your account",
}

var profileEmailCmd = &cobra.Command{
	Use:   "set-email <email>",
	Short: "Change your account email",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(func(a *app) error {
			if err := a.visit("/profile"); err != nil {
				return err
			}
			if err := a.profile.UpdateEmail(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Println("Email updated")
			return nil
		})
	},
}

var profilePasswordCmd = &cobra.Command{
	Use:   "set-password",
	Short: "Change your account password",
	Long: `Change your account password. The current and new passwords are
prompted for. On success the session is cleared: log in again with the
new password.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(func(a *app) error {
			if err := a.visit("/profile"); err != nil {
				return err
			}
			oldPassword, err := readPassword("Current password: ")
			if err != nil {
				return err
			}
			newPassword, err := readPassword("New password: ")
			if err != nil {
				return err
			}
			if err := a.profile.UpdatePassword(cmd.Context(), oldPassword, newPassword); err != nil {
				return err
			}
			fmt.Println("Password updated, log in again")
			return nil
		})
	},
}

var profileAvatarCmd = &cobra.Command{
	Use:   "set-avatar <url>",
	Short: "Change your avatar",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(func(a *app) error {
			if err := a.visit("/profile"); err != nil {
				return err
			}
			user, err := a.profile.UpdateAvatar(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Println("Avatar updated:", user.Avatar)
			return nil
		})
	},
}

func init() {
	profileCmd.AddCommand(profileEmailCmd)
	profileCmd.AddCommand(profilePasswordCmd)
	profileCmd.AddCommand(profileAvatarCmd)
	rootCmd.AddCommand(profileCmd)
}
