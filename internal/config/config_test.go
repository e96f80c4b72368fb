package config

import (
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func configDir(t *testing.T) string {
	t.Helper()

	projectRoot, err := filepath.Abs("../../")
	if err != nil {
		t.Fatalf("failed to get project root: %v", err)
	}

	return filepath.Join(projectRoot, "etc") + string(filepath.Separator)
}

func TestReadConfig(t *testing.T) {
	cfg, err := ReadConfig(configDir(t))
	if err != nil {
		t.Fatalf("ReadConfig() error = %v", err)
	}

	if cfg.Title == "" {
		t.Error("Config.Title should not be empty")
	}

	if cfg.Webserver.Port == 0 {
		t.Error("Webserver.Port should not be 0")
	}

	if cfg.Webserver.URL == "" {
		t.Error("Webserver.URL should not be empty")
	}

	if cfg.Webserver.Session.ExpiryTime < time.Minute {
		t.Errorf("Session.ExpiryTime = %v, want at least a minute", cfg.Webserver.Session.ExpiryTime)
	}

	if cfg.DB.Host == "" {
		t.Error("DB.Host should not be empty")
	}
}

func TestReadConfigEnvOverride(t *testing.T) {
	t.Setenv("MUT_RESERVE_CONFIG_JSON", `{"Webserver":{"Port":9999,"URL":"http://example.com"},"DevMode":true}`)

	cfg, err := ReadConfig(configDir(t))
	if err != nil {
		t.Fatalf("ReadConfig() error = %v", err)
	}

	if cfg.Webserver.Port != 9999 {
		t.Errorf("env override lost: Port = %d, want 9999", cfg.Webserver.Port)
	}

	if !cfg.DevMode {
		t.Error("env override lost: DevMode should be true")
	}

	// fields absent from the override keep their toml values
	if cfg.DB.Host == "" {
		t.Error("DB.Host should survive a partial env override")
	}
}

func TestReadConfigEnvOverrideInvalidJSON(t *testing.T) {
	t.Setenv("MUT_RESERVE_CONFIG_JSON", "{not json")

	if _, err := ReadConfig(configDir(t)); err == nil {
		t.Fatal("expected error for malformed MUT_RESERVE_CONFIG_JSON")
	}
}

func TestValidate(t *testing.T) {
	base := Config{Webserver: Webserver{Port: 8080, URL: "http://localhost"}}
	if err := validate(&base); err != nil {
		t.Fatalf("validate() error = %v", err)
	}

	if base.Webserver.ShutDownTime != 5 {
		t.Errorf("ShutDownTime = %d, want default 5", base.Webserver.ShutDownTime)
	}

	explicit := Config{Webserver: Webserver{Port: 8080, URL: "http://localhost", ShutDownTime: 30}}
	if err := validate(&explicit); err != nil {
		t.Fatalf("validate() error = %v", err)
	}

	if explicit.Webserver.ShutDownTime != 30 {
		t.Errorf("ShutDownTime = %d, want configured 30", explicit.Webserver.ShutDownTime)
	}

	noPort := base
	noPort.Webserver.Port = 0

	if err := validate(&noPort); err == nil || !strings.Contains(err.Error(), "port") {
		t.Errorf("validate() = %v, want port error", err)
	}

	noURL := base
	noURL.Webserver.URL = ""

	if err := validate(&noURL); err == nil || !strings.Contains(err.Error(), "url") {
		t.Errorf("validate() = %v, want url error", err)
	}
}

func TestDumpConfig(t *testing.T) {
	cfg := Config{Title: "MUT Reserve", Webserver: Webserver{Port: 8080, URL: "http://localhost"}}

	out, err := DumpConfig(cfg)
	if err != nil {
		t.Fatalf("DumpConfig() error = %v", err)
	}

	if !strings.Contains(out, "MUT Reserve") {
		t.Errorf("toml dump missing title: %q", out)
	}

	jsonOut, err := DumpConfigJSON(cfg)
	if err != nil {
		t.Fatalf("DumpConfigJSON() error = %v", err)
	}

	if !strings.Contains(jsonOut, `"Port": 8080`) {
		t.Errorf("json dump missing port: %q", jsonOut)
	}
}
