// internal/commands/reports.go
package nexus

import (
	"fmt"
	"strings"

	"github.com/k0kubun/pp"
	"github.com/spf13/cobra"

	"github.com/mwhite/nexus/internal/api"
	"github.com/mwhite/nexus/internal/pipeline"
	"github.com/mwhite/nexus/internal/reports"
)

var (
	reportsPage     int
	reportsLimit    int
	downloadOutFile string
)

// reportsCmd represents the 'reports' command group for working with stored
// analysis reports.
var reportsCmd = &cobra.Command{
	Use:   "reports",
	Short: "Group commands for stored analysis reports",
	Long:  `The 'reports' command groups subcommands that list, show, delete, and download analysis reports stored by the service.`,
}

// listReportsCmd implements 'reports list', which fetches a page of report
// summaries and prints one line per report.
var listReportsCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored reports",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		store := reports.NewStore(api.New(cfg), cfg.DownloadDir)

		limit := reportsLimit
		if limit <= 0 {
			limit = cfg.ReportPageLimit()
		}
		store.FetchReports(cmd.Context(), reportsPage, limit)
		snap := store.Snapshot()
		if snap.Err != "" {
			return fmt.Errorf("list reports: %s", snap.Err)
		}
		if snap.Reports == nil || len(snap.Reports.Reports) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No reports found.")
			return nil
		}

		for _, r := range snap.Reports.Reports {
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s + %s  [%s]  %s  %s\n",
				r.ReportID, r.CompanyName, r.PartnerCompany, r.Domain, r.Status,
				r.CreatedAt.Format("2006-01-02 15:04"))
		}
		fmt.Fprintf(cmd.OutOrStdout(), "\nPage %d (%d reports total)\n",
			snap.Reports.Page, snap.Reports.Total)
		return nil
	},
}

// showReportCmd implements 'reports show', which prints the full content of a
// single report.
var showReportCmd = &cobra.Command{
	Use:   "show <report-id>",
	Short: "Show a report's content",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		store := reports.NewStore(api.New(cfg), cfg.DownloadDir)

		detail := store.GetReport(cmd.Context(), args[0])
		if detail == nil {
			return fmt.Errorf("report %s could not be loaded", args[0])
		}
		if cfg.Debug {
			pp.Println(detail)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "# %s + %s (%s)\n\n", detail.CompanyName, detail.PartnerCompany, detail.Domain)
		fmt.Fprintf(cmd.OutOrStdout(), "Status: %s  |  Created: %s  |  Execution: %s\n\n",
			detail.Status, detail.CreatedAt.Format("2006-01-02 15:04"),
			pipeline.FormatExecutionTime(detail.ExecutionTimeMS))
		fmt.Fprintln(cmd.OutOrStdout(), strings.TrimSpace(detail.Content))
		return nil
	},
}

// deleteReportCmd implements 'reports delete'.
var deleteReportCmd = &cobra.Command{
	Use:   "delete <report-id>",
	Short: "Delete a stored report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		store := reports.NewStore(api.New(cfg), cfg.DownloadDir)

		if !store.DeleteReport(cmd.Context(), args[0]) {
			return fmt.Errorf("failed to delete report %s", args[0])
		}
		fmt.Fprintln(cmd.OutOrStdout(), successLabel("Deleted:"), args[0])
		return nil
	},
}

// downloadReportCmd implements 'reports download', which saves a report as a
// Markdown file.
var downloadReportCmd = &cobra.Command{
	Use:   "download <report-id>",
	Short: "Download a report as Markdown",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		store := reports.NewStore(api.New(cfg), cfg.DownloadDir)

		path, err := store.DownloadReport(cmd.Context(), args[0], downloadOutFile)
		if err != nil {
			return fmt.Errorf("download report %s: %w", args[0], err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), successLabel("Saved:"), path)
		return nil
	},
}

func init() {
	listReportsCmd.Flags().IntVar(&reportsPage, "page", 1, "page number to fetch")
	listReportsCmd.Flags().IntVar(&reportsLimit, "limit", 0, "reports per page (0 = configured default)")
	downloadReportCmd.Flags().StringVarP(&downloadOutFile, "output", "o", "", "output filename (default report_<id>.md)")

	reportsCmd.AddCommand(listReportsCmd)
	reportsCmd.AddCommand(showReportCmd)
	reportsCmd.AddCommand(deleteReportCmd)
	reportsCmd.AddCommand(downloadReportCmd)
	rootCmd.AddCommand(reportsCmd)
}
