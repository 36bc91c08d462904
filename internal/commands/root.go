// internal/commands/root.go
package nexus

import (
	"fmt"
	"os"
	"strconv"

	"github.com/mwhite/nexus/internal/appconfig"
	"github.com/mwhite/nexus/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile       string
	currentConfig *appconfig.Config
	appVersion    = "dev"
	appCommit     = "none"
	appDate       = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "nexus",
	Short: "nexus — terminal companion for the multi-agent collaboration analysis service",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := ensureConfigLoaded(); err != nil {
			return err
		}

		for _, name := range []string{"debug", "autoFetch"} {
			if !cmd.Flags().Changed(name) {
				val := viper.GetBool(name)
				_ = cmd.Flags().Set(name, strconv.FormatBool(val))
			}
		}
		for _, name := range []string{"apiUrl", "apiKey", "downloadDir", "logFile"} {
			if !cmd.Flags().Changed(name) {
				_ = cmd.Flags().Set(name, viper.GetString(name))
			}
		}
		if !cmd.Flags().Changed("cooldown") {
			_ = cmd.Flags().Set("cooldown", strconv.Itoa(viper.GetInt("cooldown")))
		}

		var cfg appconfig.Config
		if err := viper.Unmarshal(&cfg); err != nil {
			return fmt.Errorf("unmarshal config: %w", err)
		}
		cfg.ConfigPath = cfgFile
		cfg.ApplyEnv()
		currentConfig = &cfg

		if err := logging.Init(currentConfig.LogFilePath()); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", appVersion, appCommit, appDate)

	defer logging.Close()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", appconfig.DefaultConfigPath, "config file (e.g., config/config.json)")

	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().Bool("autoFetch", true, "fetch the report listing when the dashboard starts")
	rootCmd.PersistentFlags().String("apiUrl", "", "base URL of the analysis service")
	rootCmd.PersistentFlags().String("apiKey", "", "API key sent as X-API-Key")
	rootCmd.PersistentFlags().Int("cooldown", 0, "seconds before agent statuses reset after a run (0 = default)")
	rootCmd.PersistentFlags().String("downloadDir", "", "directory for downloaded reports")
	rootCmd.PersistentFlags().String("logFile", "", "path to the log file")

	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("autoFetch", rootCmd.PersistentFlags().Lookup("autoFetch"))
	_ = viper.BindPFlag("apiUrl", rootCmd.PersistentFlags().Lookup("apiUrl"))
	_ = viper.BindPFlag("apiKey", rootCmd.PersistentFlags().Lookup("apiKey"))
	_ = viper.BindPFlag("cooldown", rootCmd.PersistentFlags().Lookup("cooldown"))
	_ = viper.BindPFlag("downloadDir", rootCmd.PersistentFlags().Lookup("downloadDir"))
	_ = viper.BindPFlag("logFile", rootCmd.PersistentFlags().Lookup("logFile"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}
}

// ensureConfigLoaded reads the config and tolerates a missing file so the
// defaults can apply.
func ensureConfigLoaded() error {
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to load config: %w", err)
	}
	return nil
}

// GetConfig returns the loaded application configuration for other packages.
func GetConfig() *appconfig.Config {
	if currentConfig == nil {
		cfg := appconfig.Default()
		cfg.ApplyEnv()
		return &cfg
	}
	return currentConfig
}

// DebugEnabled returns true if debug mode is enabled.
func DebugEnabled() bool { return viper.GetBool("debug") }

// SetVersionInfo allows the main package to inject build-time variables.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}
