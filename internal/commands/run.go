// internal/commands/run.go
package nexus

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/k0kubun/pp"
	"github.com/spf13/cobra"

	"github.com/mwhite/nexus/internal/agents"
	"github.com/mwhite/nexus/internal/api"
	"github.com/mwhite/nexus/internal/conversation"
	"github.com/mwhite/nexus/internal/pipeline"
)

var runDomain string

var (
	successLabel = color.New(color.FgGreen).SprintFunc()
	failureLabel = color.New(color.FgRed).SprintFunc()
)

// runCmd implements 'run', which drives the full analysis pipeline for a pair
// of companies and prints the resulting summary.
var runCmd = &cobra.Command{
	Use:   "run <company> <partner>",
	Short: "Run the collaboration analysis pipeline",
	Long:  `The 'run' command sends a company pair through the full agent pipeline and prints the generated collaboration analysis.`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		client := api.New(cfg)
		ctrl := pipeline.New(client, agents.GetInstance(), conversation.GetInstance(), cfg.Cooldown())

		req := api.PipelineRequest{
			CompanyName:    args[0],
			PartnerCompany: args[1],
			Domain:         runDomain,
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Analyzing %s + %s in the %s domain...\n\n", req.CompanyName, req.PartnerCompany, req.Domain)

		resp := ctrl.Run(cmd.Context(), req)
		snap := ctrl.Snapshot()
		if resp == nil {
			fmt.Fprintln(cmd.ErrOrStderr(), failureLabel("Pipeline failed:"), snap.Err)
			return errors.New(snap.Err)
		}

		if cfg.Debug {
			pp.Println(resp)
		}

		fmt.Fprintln(cmd.OutOrStdout(), pipeline.RunSummary(req, resp))
		fmt.Fprintln(cmd.OutOrStdout(), successLabel("Done:"), pipeline.FormatExecutionTime(resp.Metadata.ExecutionTimeMS))
		return nil
	},
}

func init() {
	runCmd.Flags().StringVarP(&runDomain, "domain", "d", "XR", fmt.Sprintf("collaboration domain (%s)", strings.Join(api.AvailableDomains, ", ")))
	rootCmd.AddCommand(runCmd)
}
