package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"gopkg.in/yaml.v3"
)

// render writes v to stdout in the configured format. The text function
// renders the human-readable default; json and yaml marshal v directly.
func render(a *app, v any, text func(w io.Writer)) error {
	switch a.cfg.Output {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(os.Stdout)
		defer func() { _ = enc.Close() }()
		return enc.Encode(v)
	default:
		text(os.Stdout)
		return nil
	}
}

// table starts an aligned column writer for text output.
func table(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

// fundingPercent formats current/goal progress.
func fundingPercent(current, goal float64) string {
	if goal <= 0 {
		return "-"
	}
	return fmt.Sprintf("%.0f%%", current/goal*100)
}

// projectStatusText maps the numeric project status to a label.
func projectStatusText(status int) string {
	switch status {
	case 0:
		return "pending review"
	case 1:
		return "funding"
	case 2:
		return "successful"
	case 3:
		return "failed"
	default:
		return fmt.Sprintf("status %d", status)
	}
}

// backingStatusText maps the numeric backing status to a label.
func backingStatusText(status int) string {
	switch status {
	case 0:
		return "pending payment"
	case 1:
		return "paid"
	case 2:
		return "cancelled"
	default:
		return fmt.Sprintf("status %d", status)
	}
}
