// internal/appconfig/appconfig_test.go
package appconfig

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	cfg := Default()

	if cfg.BaseURL() != "http://localhost:8000" {
		t.Errorf("BaseURL default: got %q", cfg.BaseURL())
	}
	if cfg.PipelineRequestTimeout() != 300*time.Second {
		t.Errorf("PipelineRequestTimeout default: got %v", cfg.PipelineRequestTimeout())
	}
	if cfg.HealthRequestTimeout() != 10*time.Second {
		t.Errorf("HealthRequestTimeout default: got %v", cfg.HealthRequestTimeout())
	}
	if cfg.Cooldown() != 3*time.Second {
		t.Errorf("Cooldown default: got %v", cfg.Cooldown())
	}
	if cfg.ReportPageLimit() != 20 {
		t.Errorf("ReportPageLimit default: got %d", cfg.ReportPageLimit())
	}
	if cfg.LogFilePath() != "nexus.log" {
		t.Errorf("LogFilePath default: got %q", cfg.LogFilePath())
	}
	if !cfg.AutoFetch {
		t.Error("AutoFetch should default to true")
	}
}

func TestBaseURLTrimsTrailingSlash(t *testing.T) {
	cfg := Config{APIURL: "http://example.com/"}
	if cfg.BaseURL() != "http://example.com" {
		t.Fatalf("BaseURL: got %q", cfg.BaseURL())
	}
}

func TestLoadMissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("Load returned error for missing file: %v", err)
	}
	if cfg.BaseURL() != DefaultAPIURL {
		t.Fatalf("expected default base URL, got %q", cfg.BaseURL())
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	content := `{"apiUrl":"http://pipeline.internal:9000","apiKey":"secret","pipelineTimeout":60,"cooldown":1}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.BaseURL() != "http://pipeline.internal:9000" {
		t.Errorf("BaseURL: got %q", cfg.BaseURL())
	}
	if cfg.APIKey != "secret" {
		t.Errorf("APIKey: got %q", cfg.APIKey)
	}
	if cfg.PipelineRequestTimeout() != time.Minute {
		t.Errorf("PipelineRequestTimeout: got %v", cfg.PipelineRequestTimeout())
	}
	if cfg.Cooldown() != time.Second {
		t.Errorf("Cooldown: got %v", cfg.Cooldown())
	}
	if cfg.ConfigPath != path {
		t.Errorf("ConfigPath: got %q", cfg.ConfigPath)
	}
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for malformed config")
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("NEXUS_API_URL", "http://override:8080")
	t.Setenv("NEXUS_API_KEY", "env-key")

	cfg := Default()
	cfg.ApplyEnv()

	if cfg.BaseURL() != "http://override:8080" {
		t.Errorf("BaseURL after env override: got %q", cfg.BaseURL())
	}
	if cfg.APIKey != "env-key" {
		t.Errorf("APIKey after env override: got %q", cfg.APIKey)
	}
}
