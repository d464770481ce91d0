package cli

import (
	"fmt"

	"github.com/decred/slog"
	"github.com/spf13/cobra"

	"github.com/terminally-online/seekertools/internal/attributes"
	"github.com/terminally-online/seekertools/internal/chart"
)

var distTicks = []float64{0, 5, 10, 15, 20}

var distCmd = &cobra.Command{
	Use:   "dist",
	Short: "Plot the distribution of attribute points",
	Long: `Load a distribution file ({"<id>": {"aps": [...]}, ...}) and draw a histogram
of every attribute point it holds.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logs.NewLogger("DIST")
		path := cfg.GetDistFile(&flags)
		out := cfg.GetDistOut(&flags)

		set, err := attributes.Load(path)
		if err != nil {
			return err
		}
		traceRecords(log, set)

		values := set.AllAPs()
		if err := chart.Histogram(values, chart.Options{XTicks: distTicks}, out); err != nil {
			return fmt.Errorf("failed to plot %s: %w", path, err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s %d value(s) from %d record(s) written to %s\n", okMark, len(values), len(set), out)
		return nil
	},
}

func traceRecords(log slog.Logger, set attributes.Set) {
	for _, id := range set.IDs() {
		r := set[id]
		log.Debugf("%s: aps=%v alignment=%q", id, r.APs, r.Alignment)
	}
}

func init() {
	distCmd.Flags().StringVar(&flags.DistFile, "file", "", "distribution JSON file")
	distCmd.Flags().StringVarP(&flags.DistOut, "out", "o", "", "output image file")
}
