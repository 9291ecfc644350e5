package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/iksnae/chatguard/internal"
	"github.com/spf13/cobra"
)

var (
	healthcheckVerbose bool
)

var (
	onlineStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	offlineStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))
)

// healthcheckCmd represents the healthcheck command
var healthcheckCmd = &cobra.Command{
	Use:   "healthcheck",
	Short: "Check whether the analysis backend is reachable",
	Long: `Call GET /api/health on the configured backend. Exits non-zero when the
backend does not answer 200.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		tr := newTranslator()
		w := cmd.OutOrStdout()
		client := newClient()

		_, _ = fmt.Fprintln(w, infoStyle.Render(tr.T(internal.KeySysChecking)))
		if healthcheckVerbose {
			_, _ = fmt.Fprintf(w, "   Backend: %s\n", client.BaseURL())
			_, _ = fmt.Fprintf(w, "   Timeout: %s\n", cfg.API.Timeout)
		}

		if !client.CheckHealth(context.Background()) {
			_, _ = fmt.Fprintln(w, offlineStyle.Render("● "+tr.T(internal.KeySysOffline)))
			return errors.New("backend is offline")
		}
		_, _ = fmt.Fprintln(w, onlineStyle.Render("● "+tr.T(internal.KeySysOnline)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(healthcheckCmd)
	healthcheckCmd.Flags().BoolVar(&healthcheckVerbose, "details", false, "Show the backend URL and timeout")
}
