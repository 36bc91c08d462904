// internal/commands/dash.go
package nexus

import (
	"github.com/spf13/cobra"

	"github.com/mwhite/nexus/cli"
)

// startDashboard is a function alias to cli.Start for launching the dashboard.
var startDashboard = cli.Start

// dashCmd represents the 'dash' command, which starts the interactive agent
// dashboard.
var dashCmd = &cobra.Command{
	Use:   "dash",
	Short: "Start the interactive agent dashboard",
	Long:  `The 'dash' command starts the interactive dashboard showing agent statuses, the analysis transcript, and the stored reports.`,
	Run: func(cmd *cobra.Command, args []string) {
		startDashboard(cmd.Context(), GetConfig())
	},
}

func init() {
	rootCmd.AddCommand(dashCmd)
}
