// Package cmd provides the CLI commands for the SparkHub client.
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sparkhub/sparkhub-cli/internal/adapter/outbound/rest"
	"github.com/sparkhub/sparkhub-cli/internal/config"
	"github.com/sparkhub/sparkhub-cli/internal/domain/nav"
)

var (
	cfgFile     string
	sessionPath string
	outputFlag  string
	metricsAddr string
	verbose     bool
)

var rootCmd = &cobra.Command{
	Use:   "sparkhub",
	Short: "SparkHub - crowdfunding platform client",
	Long: `sparkhub is the command-line client for the SparkHub crowdfunding
platform: browse and back projects, manage your own campaigns, and
moderate the platform as an admin.

Your login session is stored locally (default ~/.sparkhub/session.json)
and reused across invocations until the backend declares it expired.

Configuration:
  Config is loaded from sparkhub.yaml in the current directory,
  $HOME/.sparkhub/, or /etc/sparkhub/.

  Environment variables can override config values with the SPARKHUB_ prefix.
  Example: SPARKHUB_API_BASE_URL=https://sparkhub.example.com/api

Common commands:
  login        Log in and store the session
  projects     Browse and manage projects
  back         Back a project reward
  notifications  Read your inbox
  admin        Review projects and manage users (admins only)`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Errors that were already surfaced to the
// user as notifications (API failures, guard refusals) only set the exit
// code; everything else is printed.
func Execute() {
	err := rootCmd.Execute()
	if err == nil {
		return
	}
	if !alreadySurfaced(err) {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	os.Exit(1)
}

// alreadySurfaced reports whether the pipeline or the navigator has
// already shown this failure to the user.
func alreadySurfaced(err error) bool {
	return errors.Is(err, rest.ErrBusiness) ||
		errors.Is(err, rest.ErrTransport) ||
		errors.Is(err, nav.ErrNavigationDenied)
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./sparkhub.yaml)")
	rootCmd.PersistentFlags().StringVar(&sessionPath, "session", "", "session file (default: ~/.sparkhub/session.json)")
	rootCmd.PersistentFlags().StringVarP(&outputFlag, "output", "o", "", "output format: text, json, or yaml")
	rootCmd.PersistentFlags().StringVar(&metricsAddr, "metrics-addr", "", "serve prometheus metrics on this address")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func initConfig() {
	config.InitViper(cfgFile)
}
