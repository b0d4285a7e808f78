package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "config.yaml", `
server:
  addr: ":9000"
  api_token: "secret"
scoring:
  missed_weight: 3.5
gamelog:
  backend: sqlite
  path: rounds.db
metrics:
  prometheus_enabled: true
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Addr != ":9000" || cfg.Server.APIToken != "secret" {
		t.Errorf("server section: %+v", cfg.Server)
	}
	if cfg.Scoring.MissedWeight != 3.5 {
		t.Errorf("missed_weight = %v, want 3.5", cfg.Scoring.MissedWeight)
	}
	// untouched scoring fields keep their defaults
	if cfg.Scoring.NeglectWeight != 10.0 {
		t.Errorf("neglect_weight = %v, want default 10.0", cfg.Scoring.NeglectWeight)
	}
	if cfg.GameLog.Backend != "sqlite" || cfg.GameLog.Path != "rounds.db" {
		t.Errorf("gamelog section: %+v", cfg.GameLog)
	}
	if !cfg.Metrics.PrometheusEnabled || cfg.Metrics.PrometheusAddr != ":9090" {
		t.Errorf("metrics section: %+v", cfg.Metrics)
	}
	if cfg.Rounds.DefaultCoverageRadiusCells != 1 {
		t.Errorf("rounds defaults: %+v", cfg.Rounds)
	}
}

func TestLoadJSON(t *testing.T) {
	path := writeFile(t, "config.json", `{"server":{"addr":":7000"}}`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Addr != ":7000" {
		t.Errorf("addr = %s", cfg.Server.Addr)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	path := writeFile(t, "config.yaml", `server: {addr: ":8080"}`)
	if err := os.Setenv("DT_SERVER__ADDR", ":6000"); err != nil {
		t.Fatalf("setenv: %v", err)
	}
	defer func() { _ = os.Unsetenv("DT_SERVER__ADDR") }()
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Addr != ":6000" {
		t.Errorf("env override ignored, addr = %s", cfg.Server.Addr)
	}
}

func TestLoadRejectsBadSections(t *testing.T) {
	cases := map[string]string{
		"bad backend":     `gamelog: {backend: "csv"}`,
		"bad scoring":     `scoring: {missed_weight: -1}`,
		"bad metrics":     `metrics: {influx_enabled: true}`,
		"negative radius": `rounds: {default_coverage_radius_cells: -2}`,
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			path := writeFile(t, "config.yaml", content)
			if _, err := Load(path); err == nil {
				t.Errorf("expected error for %s", name)
			}
		})
	}
}

func TestLoadUnsupportedExtension(t *testing.T) {
	path := writeFile(t, "config.toml", `x = 1`)
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for toml config")
	}
}
