package model

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadScenario reads and validates a scenario file. JSON and YAML are
// supported, selected by extension.
func LoadScenario(path string) (*Scenario, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	ext := strings.ToLower(filepath.Ext(path))
	var sc Scenario
	switch ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &sc)
	case ".json":
		err = json.Unmarshal(b, &sc)
	default:
		return nil, fmt.Errorf("unsupported scenario format: %s", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("decode scenario %s: %w", path, err)
	}
	if err := sc.Validate(); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	return &sc, nil
}

// DecodeScenario reads a scenario from r in the given format ("json" or
// "yaml") and validates it.
func DecodeScenario(r io.Reader, format string) (*Scenario, error) {
	var sc Scenario
	switch strings.ToLower(format) {
	case "yaml", "yml":
		if err := yaml.NewDecoder(r).Decode(&sc); err != nil {
			return nil, err
		}
	case "json":
		if err := json.NewDecoder(r).Decode(&sc); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}
