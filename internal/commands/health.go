// internal/commands/health.go
package nexus

import (
	"fmt"
	"time"

	"github.com/k0kubun/pp"
	"github.com/spf13/cobra"

	"github.com/mwhite/nexus/internal/api"
)

// healthCmd implements 'health', which queries the service's health endpoint
// along with the liveness and readiness probes.
var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the analysis service's health",
	Long:  `The 'health' command queries the service health endpoint and the liveness and readiness probes, and prints the per-dependency status.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		client := api.New(cfg)

		live := client.CheckLive(cmd.Context())
		ready := client.CheckReady(cmd.Context())
		fmt.Fprintf(cmd.OutOrStdout(), "Live:  %s\n", probeLabel(live))
		fmt.Fprintf(cmd.OutOrStdout(), "Ready: %s\n", probeLabel(ready))

		health, err := client.GetHealth(cmd.Context())
		if err != nil {
			return fmt.Errorf("health check: %w", err)
		}
		if cfg.Debug {
			pp.Println(health)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "\nService %s (version %s, up %s)\n",
			checkLabel(health.Status), health.Version, time.Duration(health.Uptime*float64(time.Second)).Round(time.Second))
		fmt.Fprintf(cmd.OutOrStdout(), "  %-8s %s\n", "llm_api", checkLabel(health.Checks.LLMAPI))
		fmt.Fprintf(cmd.OutOrStdout(), "  %-8s %s\n", "storage", checkLabel(health.Checks.Storage))
		fmt.Fprintf(cmd.OutOrStdout(), "  %-8s %s\n", "memory", checkLabel(health.Checks.Memory))
		return nil
	},
}

func probeLabel(ok bool) string {
	if ok {
		return successLabel("ok")
	}
	return failureLabel("unreachable")
}

func checkLabel(status string) string {
	if status == "healthy" || status == "ok" {
		return successLabel(status)
	}
	return failureLabel(status)
}

func init() {
	rootCmd.AddCommand(healthCmd)
}
