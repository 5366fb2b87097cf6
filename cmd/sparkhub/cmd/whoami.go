package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/sparkhub/sparkhub-cli/internal/domain/session"
	"github.com/sparkhub/sparkhub-cli/pkg/api"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(func(a *app) error {
			if !a.sess.IsAuthenticated() {
				fmt.Println("Not logged in")
				return nil
			}
			user := a.sess.User()

			type sessionInfo struct {
				Username    string   `json:"username" yaml:"username"`
				Email       string   `json:"email" yaml:"email"`
				Avatar      string   `json:"avatar,omitempty" yaml:"avatar,omitempty"`
				Roles       []string `json:"roles" yaml:"roles"`
				Unread      int      `json:"unread" yaml:"unread"`
				TokenExpiry string   `json:"tokenExpiry,omitempty" yaml:"tokenExpiry,omitempty"`
			}
			info := sessionInfo{
				Username: user.Username,
				Email:    user.Email,
				Avatar:   api.ResolveAssetURL(a.cfg.ResolvedAssetOrigin(), user.Avatar),
				Unread:   a.sess.UnreadCount(),
			}
			for _, r := range user.Roles {
				info.Roles = append(info.Roles, r.Name)
			}
			if exp, ok := session.TokenExpiry(a.sess.Token()); ok {
				info.TokenExpiry = exp.Local().Format(time.RFC3339)
			}

			return render(a, info, func(w io.Writer) {
				fmt.Fprintf(w, "Logged in as %s <%s>\n", info.Username, info.Email)
				fmt.Fprintf(w, "  Roles:  %v\n", info.Roles)
				if info.Avatar != "" {
					fmt.Fprintf(w, "  Avatar: %s\n", info.Avatar)
				}
				fmt.Fprintf(w, "  Unread: %d\n", info.Unread)
				if info.TokenExpiry != "" {
					fmt.Fprintf(w, "  Token expires: %s\n", info.TokenExpiry)
				}
			})
		})
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}
