// Package config loads the service configuration from a YAML or JSON file
// with optional environment overrides.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/kilianp07/dispatch-trainer/core/metrics"
	"github.com/kilianp07/dispatch-trainer/core/scoring"
)

type Config struct {
	Server  ServerConfig   `json:"server"`
	Scoring scoring.Config `json:"scoring"`
	Rounds  RoundsConfig   `json:"rounds"`
	GameLog GameLogConfig  `json:"gamelog"`
	Metrics metrics.Config `json:"metrics"`
}

// Load reads the file at path and applies DT_ environment overrides, with
// "__" separating nesting levels (DT_SERVER__ADDR=:9000).
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	if err := k.Load(env.Provider("DT_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "dt_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.Server.SetDefaults()
	cfg.Scoring.SetDefaults()
	cfg.Rounds.SetDefaults()
	cfg.GameLog.SetDefaults()
	cfg.Metrics.SetDefaults()
	if err := cfg.Scoring.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Rounds.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.GameLog.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Metrics.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
