package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/kilianp07/dispatch-trainer/core/model"
	"github.com/kilianp07/dispatch-trainer/core/round"
	"github.com/kilianp07/dispatch-trainer/core/scoring"
	"github.com/kilianp07/dispatch-trainer/pkg/export"
)

var (
	replayPolicy string
	replayFormat string
)

var replayCmd = &cobra.Command{
	Use:   "replay <scenario-file>",
	Short: "Play a baseline policy through one round and print the record",
	Args:  cobra.ExactArgs(1),
	RunE:  replay,
}

func init() {
	replayCmd.Flags().StringVar(&replayPolicy, "policy", "model", "baseline policy to replay: recent or model")
	replayCmd.Flags().StringVar(&replayFormat, "format", "json", "output format: json or csv")
	rootCmd.AddCommand(replayCmd)
}

func replay(cmd *cobra.Command, args []string) error {
	sc, err := model.LoadScenario(args[0])
	if err != nil {
		return fmt.Errorf("load scenario: %w", err)
	}

	var cells []string
	switch replayPolicy {
	case "recent":
		cells = sc.Baselines.BaselineRecentPolicy
	case "model":
		cells = sc.Baselines.BaselineModelPolicy
	default:
		return fmt.Errorf("unknown policy %q", replayPolicy)
	}
	total := sc.Units.Total()
	if len(cells) < total {
		return fmt.Errorf("policy %s places %d units, scenario needs %d", replayPolicy, len(cells), total)
	}

	var cfg scoring.Config
	cfg.SetDefaults()
	st, err := round.Start(sc, cfg)
	if err != nil {
		return err
	}
	if st, err = st.SetPhase(round.PhaseDeploy); err != nil {
		return err
	}
	for i := 0; i < total; i++ {
		unitType := model.UnitPatrol
		if i >= sc.Units.PatrolCount {
			unitType = model.UnitEMS
		}
		if st, err = st.AddPlacement(i+1, unitType, cells[i]); err != nil {
			return fmt.Errorf("place unit %d on %s: %w", i+1, cells[i], err)
		}
	}
	if st, err = st.Commit(time.Now()); err != nil {
		return err
	}

	rec, err := st.Summary("")
	if err != nil {
		return err
	}
	switch replayFormat {
	case "json":
		if err := export.WriteJSON(cmd.OutOrStdout(), []round.Record{rec}); err != nil {
			return err
		}
	case "csv":
		if err := export.WriteCSV(cmd.OutOrStdout(), []round.Record{rec}); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown format %q", replayFormat)
	}

	if res, ok := st.Result(); ok {
		for _, line := range round.DebriefLines(res) {
			fmt.Fprintln(cmd.ErrOrStderr(), line)
		}
	}
	return nil
}
