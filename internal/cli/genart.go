package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/terminally-online/seekertools/internal/bitmap"
)

var genartCmd = &cobra.Command{
	Use:   "genart",
	Short: "Draw bitmaps from integer arrays",
	Long: `Read every JSON array file in the data directory and draw it as a square
black and white bitmap: one row per integer, one pixel per bit, most
significant bit on the left, 1 bits black. Each image is written to the image
directory as <file>.bmp.

Encodings:
  dec32  decimal integers, 32x32 image
  hex64  hex strings, 64x64 image

Values wider than a row are an error unless --wrap is set, which keeps only
the low bits. Numbers written in exponent form (1e3) must always fit a row.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logs.NewLogger("GART")

		enc, err := bitmap.Get(cfg.GetEncoding(&flags))
		if err != nil {
			return fmt.Errorf("%w (available: %v)", err, bitmap.Names())
		}

		if cmd.Flags().Changed("wrap") {
			wrap, err := cmd.Flags().GetBool("wrap")
			if err != nil {
				return err
			}
			flags.Wrap = &wrap
		}
		policy := bitmap.Reject
		if cfg.GetWrap(&flags) {
			policy = bitmap.Wrap
		}

		r := &bitmap.Renderer{
			DataDir:  cfg.GetDataDir(&flags),
			ImgsDir:  cfg.GetImgsDir(&flags),
			Encoding: enc,
			Policy:   policy,
			Log:      log,
		}
		outputs, err := r.Run()
		w := cmd.OutOrStdout()
		for _, o := range outputs {
			fmt.Fprintf(w, "  %s %s (%d rows)\n", okMark, o.Path, o.Rows)
		}
		if err != nil {
			return err
		}

		fmt.Fprintf(w, "Generated %d image(s) in %s\n", len(outputs), r.ImgsDir)
		return nil
	},
}

func init() {
	genartCmd.Flags().StringVar(&flags.DataDir, "data-dir", "", "directory of JSON integer arrays")
	genartCmd.Flags().StringVar(&flags.ImgsDir, "imgs-dir", "", "directory to write bitmaps to")
	genartCmd.Flags().StringVar(&flags.Encoding, "encoding", "", "row encoding (dec32, hex64)")
	genartCmd.Flags().Bool("wrap", false, "keep the low bits of values wider than a row")
}
