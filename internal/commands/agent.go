// internal/commands/agent.go
package nexus

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mwhite/nexus/internal/api"
	"github.com/mwhite/nexus/internal/pipeline"
)

var (
	agentDomain        string
	agentReportFile    string
	productReportFile  string
	researchReportFile string
)

// agentCmd represents the 'agent' command group for running individual agents
// outside the full pipeline.
var agentCmd = &cobra.Command{
	Use:   "agent",
	Short: "Group commands for running individual agents",
	Long:  `The 'agent' command groups subcommands that invoke a single agent endpoint instead of the full pipeline.`,
}

// agentResearchCmd implements 'agent research'.
var agentResearchCmd = &cobra.Command{
	Use:   "research <company> <partner>",
	Short: "Run only the research agent",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := api.New(GetConfig())
		resp, err := client.RunResearchAgent(cmd.Context(), api.ResearchAgentRequest{
			CompanyName:    args[0],
			PartnerCompany: args[1],
			Domain:         agentDomain,
		})
		if err != nil {
			return fmt.Errorf("research agent: %w", err)
		}
		return printAgentResponse(cmd, resp)
	},
}

// agentProductCmd implements 'agent product', which needs an existing research
// report as input.
var agentProductCmd = &cobra.Command{
	Use:   "product <company>",
	Short: "Run only the product agent",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		report, err := readReportFile(agentReportFile)
		if err != nil {
			return err
		}
		client := api.New(GetConfig())
		resp, err := client.RunProductAgent(cmd.Context(), api.ProductAgentRequest{
			ResearchReport: report,
			CompanyName:    args[0],
			Domain:         agentDomain,
		})
		if err != nil {
			return fmt.Errorf("product agent: %w", err)
		}
		return printAgentResponse(cmd, resp)
	},
}

// agentMarketingCmd implements 'agent marketing', which takes the product and
// research documents from the earlier stages as input.
var agentMarketingCmd = &cobra.Command{
	Use:   "marketing <company>",
	Short: "Run only the marketing agent",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		product, err := readReportFile(productReportFile)
		if err != nil {
			return err
		}
		research := ""
		if researchReportFile != "" {
			research, err = readReportFile(researchReportFile)
			if err != nil {
				return err
			}
		}
		client := api.New(GetConfig())
		resp, err := client.RunMarketingAgent(cmd.Context(), api.MarketingAgentRequest{
			ProductReport:  product,
			ResearchReport: research,
			CompanyName:    args[0],
			Domain:         agentDomain,
		})
		if err != nil {
			return fmt.Errorf("marketing agent: %w", err)
		}
		return printAgentResponse(cmd, resp)
	},
}

// readReportFile loads the prior-stage document a downstream agent consumes.
func readReportFile(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("an input file is required (use --input)")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read input file: %w", err)
	}
	return string(data), nil
}

func printAgentResponse(cmd *cobra.Command, resp *api.AgentResponse) error {
	if resp.Status != "completed" {
		msg := "agent reported failure"
		if resp.ErrorMessage != nil {
			msg = *resp.ErrorMessage
		}
		fmt.Fprintln(cmd.ErrOrStderr(), failureLabel(resp.AgentName+":"), msg)
		return fmt.Errorf("%s did not complete", resp.AgentName)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s finished in %s\n\n", resp.AgentName, pipeline.FormatExecutionTime(resp.ExecutionTimeMS))
	fmt.Fprintln(cmd.OutOrStdout(), strings.TrimSpace(resp.Content))
	return nil
}

func init() {
	agentCmd.PersistentFlags().StringVarP(&agentDomain, "domain", "d", "XR", "collaboration domain")
	agentProductCmd.Flags().StringVarP(&agentReportFile, "input", "i", "", "file containing the research report")
	agentMarketingCmd.Flags().StringVarP(&productReportFile, "input", "i", "", "file containing the product report")
	agentMarketingCmd.Flags().StringVar(&researchReportFile, "research", "", "optional file containing the research report")

	agentCmd.AddCommand(agentResearchCmd)
	agentCmd.AddCommand(agentProductCmd)
	agentCmd.AddCommand(agentMarketingCmd)
	rootCmd.AddCommand(agentCmd)
}
