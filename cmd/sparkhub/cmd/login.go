package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/sparkhub/sparkhub-cli/pkg/api"
)

var loginCmd = &cobra.Command{
	Use:   "login [username]",
	Short: "Log in and store the session",
	Long: `Log in to SparkHub and store the session locally.

The password is read from the terminal without echo, or from stdin when
it is not a terminal (for scripting).`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(func(a *app) error {
			if err := a.visit("/login"); err != nil {
				return err
			}

			username := ""
			if len(args) == 1 {
				username = args[0]
			}
			username, password, err := readCredentials(username)
			if err != nil {
				return err
			}

			user, err := a.auth.Login(cmd.Context(), username, password)
			if err != nil {
				return err
			}
			fmt.Printf("Logged in as %s\n", user.Username)
			return nil
		})
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and clear the stored session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(func(a *app) error {
			if err := a.auth.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Println("Logged out")
			return nil
		})
	},
}

var registerCmd = &cobra.Command{
	Use:   "register <username> <email>",
	Short: "Create a new account",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(func(a *app) error {
			if err := a.visit("/register"); err != nil {
				return err
			}
			password, err := readPassword("Password: ")
			if err != nil {
				return err
			}
			req := registerRequest(args[0], args[1], password)
			if err := a.auth.Register(cmd.Context(), req); err != nil {
				return err
			}
			fmt.Println("Account created, log in with: sparkhub login", args[0])
			return nil
		})
	},
}

func registerRequest(username, email, password string) api.RegisterRequest {
	return api.RegisterRequest{Username: username, Email: email, Password: password}
}

func readCredentials(username string) (string, string, error) {
	reader := bufio.NewReader(os.Stdin)
	if username == "" {
		fmt.Fprint(os.Stderr, "Username: ")
		line, err := reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return "", "", err
		}
		username = strings.TrimSpace(line)
	}
	password, err := readPassword("Password: ")
	if err != nil {
		return "", "", err
	}
	return username, password, nil
}

func readPassword(prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		fmt.Fprint(os.Stderr, prompt)
		b, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
	// Piped input: read one line.
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(registerCmd)
}
