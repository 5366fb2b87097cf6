package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent API calls",
	Long: `Show the most recent API calls recorded locally. Recording is off by
default; enable it with history.enabled in sparkhub.yaml or
SPARKHUB_HISTORY_ENABLED=true.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(func(a *app) error {
			if a.hist == nil {
				return fmt.Errorf("call history is disabled, set history.enabled: true")
			}
			entries, err := a.hist.Recent(cmd.Context(), historyLimit)
			if err != nil {
				return err
			}
			return render(a, entries, func(w io.Writer) {
				tw := table(w)
				fmt.Fprintln(tw, "WHEN\tMETHOD\tPATH\tSTATUS\tDURATION")
				for _, e := range entries {
					status := fmt.Sprintf("%d", e.Status)
					if e.Status == 0 {
						status = "no response"
					}
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
						e.At.Local().Format("2006-01-02 15:04:05"),
						e.Method, e.Path, status, e.Duration)
				}
				_ = tw.Flush()
			})
		})
	},
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "number of entries to show")
	rootCmd.AddCommand(historyCmd)
}
