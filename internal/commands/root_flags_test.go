// internal/commands/root_flags_test.go
package nexus

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mwhite/nexus/internal/logging"
	"github.com/spf13/viper"
)

func resetFlag(cmdFlag string) {
	flag := rootCmd.PersistentFlags().Lookup(cmdFlag)
	if flag == nil {
		return
	}
	_ = flag.Value.Set(flag.DefValue)
	flag.Changed = false
}

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestPersistentPreRunEUsesFlagValues(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "nexus.log")
	configPath := writeTempConfig(t, "{}")

	prevCfgFile := cfgFile
	cfgFile = configPath
	viper.SetConfigFile(configPath)
	t.Cleanup(func() {
		cfgFile = prevCfgFile
		viper.SetConfigFile(prevCfgFile)
	})
	t.Cleanup(func() { _ = logging.Close() })

	for _, name := range []string{"debug", "autoFetch", "apiUrl", "apiKey", "cooldown", "downloadDir"} {
		resetFlag(name)
	}
	_ = rootCmd.PersistentFlags().Set("debug", "true")
	_ = rootCmd.PersistentFlags().Set("apiUrl", "http://api.example.test")
	_ = rootCmd.PersistentFlags().Set("apiKey", "secret")
	_ = rootCmd.PersistentFlags().Set("cooldown", "7")
	_ = rootCmd.PersistentFlags().Set("downloadDir", "downloads")
	_ = rootCmd.PersistentFlags().Set("logFile", logPath)

	if err := rootCmd.PersistentPreRunE(rootCmd, []string{}); err != nil {
		t.Fatalf("PersistentPreRunE error: %v", err)
	}

	if currentConfig == nil || currentConfig.ConfigPath != configPath {
		t.Fatalf("expected config loaded with path %s", configPath)
	}
	if !currentConfig.Debug {
		t.Fatalf("expected debug flag to flow into config: %+v", currentConfig)
	}
	if currentConfig.APIURL != "http://api.example.test" {
		t.Fatalf("expected apiUrl set, got %s", currentConfig.APIURL)
	}
	if currentConfig.APIKey != "secret" {
		t.Fatalf("expected apiKey set, got %s", currentConfig.APIKey)
	}
	if currentConfig.CooldownSeconds != 7 {
		t.Fatalf("expected cooldown set, got %d", currentConfig.CooldownSeconds)
	}
	if currentConfig.DownloadDir != "downloads" {
		t.Fatalf("expected downloadDir set, got %s", currentConfig.DownloadDir)
	}
}

func TestPersistentPreRunEConfigFileValues(t *testing.T) {
	configPath := writeTempConfig(t, `{"apiUrl":"http://from-file.test","cooldown":5,"autoFetch":false}`)

	prevCfgFile := cfgFile
	cfgFile = configPath
	viper.SetConfigFile(configPath)
	t.Cleanup(func() {
		cfgFile = prevCfgFile
		viper.SetConfigFile(prevCfgFile)
	})
	t.Cleanup(func() { _ = logging.Close() })

	for _, name := range []string{"debug", "autoFetch", "apiUrl", "apiKey", "cooldown", "downloadDir", "logFile"} {
		resetFlag(name)
	}

	if err := rootCmd.PersistentPreRunE(rootCmd, []string{}); err != nil {
		t.Fatalf("PersistentPreRunE error: %v", err)
	}

	if currentConfig.APIURL != "http://from-file.test" {
		t.Fatalf("expected apiUrl from file, got %s", currentConfig.APIURL)
	}
	if currentConfig.CooldownSeconds != 5 {
		t.Fatalf("expected cooldown from file, got %d", currentConfig.CooldownSeconds)
	}
	if currentConfig.AutoFetch {
		t.Fatalf("expected autoFetch disabled by file")
	}
}

func TestGetConfigFallsBackToDefaults(t *testing.T) {
	prev := currentConfig
	currentConfig = nil
	t.Cleanup(func() { currentConfig = prev })

	cfg := GetConfig()
	if cfg == nil {
		t.Fatal("expected default config")
	}
	if cfg.BaseURL() == "" {
		t.Fatal("expected default base URL")
	}
}
