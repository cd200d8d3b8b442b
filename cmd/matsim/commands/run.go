package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"
	"go.trai.ch/matsim/internal/app"
	"go.trai.ch/matsim/internal/core/domain"
	"go.trai.ch/matsim/internal/ui/style"
)

// stageOrder fixes the display order of the pipeline stages.
var stageOrder = []string{
	domain.StageDefects,
	domain.StageForceField,
	domain.StageElectronic,
	domain.StageImaging,
	domain.StagePrediction,
}

func (c *CLI) newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <identifier>",
		Short: "Run the comprehensive simulation for a material",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				// Display command usage help without returning an error
				_ = cmd.Help()
				return nil
			}
			noCache, _ := cmd.Flags().GetBool("no-cache")
			asJSON, _ := cmd.Flags().GetBool("json")

			result, err := c.app.Run(cmd.Context(), args[0], app.RunOptions{NoCache: noCache})
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			}

			renderResult(cmd.OutOrStdout(), result)
			return nil
		},
	}
	cmd.Flags().BoolP("no-cache", "n", false, "Bypass the result cache and force recomputation")
	cmd.Flags().BoolP("json", "j", false, "Print the full result as JSON")
	return cmd
}

func renderResult(w io.Writer, result *domain.ComprehensiveResult) {
	_, _ = fmt.Fprintf(w, "%s\n", result.Identifier)

	for _, stage := range stageOrder {
		status, ok := result.Stages[stage]
		if !ok {
			continue
		}
		line := fmt.Sprintf("  %s %-20s %s", stageIcon(status.State), stage, status.State)
		if status.Error != "" {
			line += " (" + status.Error + ")"
		}
		_, _ = fmt.Fprintln(w, line)
	}

	if result.Defects != nil {
		_, _ = fmt.Fprintf(w, "\ndefects: %d (concentration %.4f)\n",
			result.Defects.Count(), result.Defects.Concentration)
	}
	if result.ForceField != nil {
		_, _ = fmt.Fprintf(w, "total energy: %.6f\n", result.ForceField.Energy)
	}
	if len(result.Predictions) > 0 {
		_, _ = fmt.Fprintln(w, "\npredicted properties:")
		for _, name := range sortedKeys(result.Predictions) {
			_, _ = fmt.Fprintf(w, "  %s = %.6f\n", name, result.Predictions[name])
		}
	}
}

func stageIcon(state domain.StageState) string {
	switch state {
	case domain.StageOK:
		return style.Check
	case domain.StageFailed:
		return style.Cross
	case domain.StageTimedOut:
		return style.Warning
	default:
		return style.Circle
	}
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
