package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/terminally-online/seekertools/internal/attributes"
	"github.com/terminally-online/seekertools/internal/chart"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Plot seeker attribute points and alignments",
	Long: `Load the seeker attributes file and draw two charts: a histogram of every
attribute point, and a count of seekers per alignment.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logs.NewLogger("STAT")
		path := cfg.GetAttributesFile(&flags)
		apsOut := cfg.GetAPsOut(&flags)
		alignmentsOut := cfg.GetAlignmentsOut(&flags)
		w := cmd.OutOrStdout()

		set, err := attributes.Load(path)
		if err != nil {
			return err
		}
		traceRecords(log, set)

		if err := chart.Histogram(set.AllAPs(), chart.Options{}, apsOut); err != nil {
			return fmt.Errorf("failed to plot attribute points: %w", err)
		}
		fmt.Fprintf(w, "%s Attribute points written to %s\n", okMark, apsOut)

		err = chart.Categories(set.Alignments(), chart.Options{TickRotation: 15}, alignmentsOut)
		switch {
		case errors.Is(err, chart.ErrNoData):
			fmt.Fprintf(w, "%s No alignments in %s, skipped %s\n", warnMark, path, alignmentsOut)
		case err != nil:
			return fmt.Errorf("failed to plot alignments: %w", err)
		default:
			fmt.Fprintf(w, "%s Alignments written to %s\n", okMark, alignmentsOut)
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().StringVar(&flags.AttributesFile, "file", "", "attributes JSON file")
	statsCmd.Flags().StringVar(&flags.APsOut, "aps-out", "", "attribute points histogram file")
	statsCmd.Flags().StringVar(&flags.AlignmentsOut, "alignments-out", "", "alignments chart file")
}
