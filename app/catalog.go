package app

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/kilianp07/dispatch-trainer/config"
	corelogger "github.com/kilianp07/dispatch-trainer/core/logger"
	"github.com/kilianp07/dispatch-trainer/core/model"
)

// loadScenarioDir reads every scenario file under cfg.ScenarioDir. Scenarios
// that omit their coverage radius get the configured default. A missing
// directory is not an error; the service can still serve logs and replays.
func loadScenarioDir(cfg config.RoundsConfig, log corelogger.Logger) (map[string]*model.Scenario, error) {
	entries, err := os.ReadDir(cfg.ScenarioDir)
	if err != nil {
		if os.IsNotExist(err) {
			log.Warnf("scenario dir %s not found, starting with empty catalog", cfg.ScenarioDir)
			return map[string]*model.Scenario{}, nil
		}
		return nil, err
	}
	catalog := make(map[string]*model.Scenario)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext != ".json" && ext != ".yaml" && ext != ".yml" {
			continue
		}
		sc, err := model.LoadScenario(filepath.Join(cfg.ScenarioDir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("scenario %s: %w", e.Name(), err)
		}
		if sc.Units.CoverageRadiusCells == 0 {
			sc.Units.CoverageRadiusCells = cfg.DefaultCoverageRadiusCells
		}
		if _, dup := catalog[sc.ScenarioID]; dup {
			return nil, fmt.Errorf("duplicate scenario id %s in %s", sc.ScenarioID, e.Name())
		}
		catalog[sc.ScenarioID] = sc
	}
	return catalog, nil
}

// Scenario returns a scenario from the catalog by id.
func (s *Service) Scenario(id string) (*model.Scenario, bool) {
	sc, ok := s.catalog[id]
	return sc, ok
}

// ScenarioIDs lists the catalog in stable order.
func (s *Service) ScenarioIDs() []string {
	ids := make([]string, 0, len(s.catalog))
	for id := range s.catalog {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// StartRound opens a session on a catalog scenario.
func (s *Service) StartRound(scenarioID string) (string, error) {
	sc, ok := s.catalog[scenarioID]
	if !ok {
		return "", fmt.Errorf("unknown scenario %s", scenarioID)
	}
	return s.Sessions.StartSession(sc)
}
