package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/terminally-online/seekertools/internal/chart"
	"github.com/terminally-online/seekertools/internal/gamemodel"
)

var modelCmd = &cobra.Command{
	Use:   "model",
	Short: "Plot the game economics model",
	Long: `Load the header-less game model CSV and draw one column against another
as a line chart.

Columns: Seizure, Eth, USD, Take, Refund, CumTake, ShardToEth, Prize, CumPrize.

Example:
  seekertools model --csv SeasonOneGameModel.csv --x Seizure --y Eth --out test.png`,
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logs.NewLogger("MODL")
		path := cfg.GetModelCSV(&flags)
		out := cfg.GetModelOut(&flags)
		x, y := cfg.GetModelX(&flags), cfg.GetModelY(&flags)

		m, err := gamemodel.Load(path)
		if err != nil {
			return err
		}
		log.Debugf("loaded %d rows from %s", len(m.Rows), path)

		xys, err := m.Series(x, y)
		if err != nil {
			return err
		}

		if err := chart.Line(xys, chart.Options{XLabel: x, YLabel: y}, out); err != nil {
			return fmt.Errorf("failed to plot %s: %w", path, err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s %s vs %s written to %s\n", okMark, y, x, out)
		return nil
	},
}

func init() {
	modelCmd.Flags().StringVar(&flags.ModelCSV, "csv", "", "game model CSV file")
	modelCmd.Flags().StringVarP(&flags.ModelOut, "out", "o", "", "output image file")
	modelCmd.Flags().StringVar(&flags.ModelX, "x", "", "column for the x axis")
	modelCmd.Flags().StringVar(&flags.ModelY, "y", "", "column for the y axis")
}
