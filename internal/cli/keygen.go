package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/terminally-online/seekertools/internal/keygen"
)

var keygenCmd = &cobra.Command{
	Use:   "keygen COUNT",
	Short: "Generate private keys and their addresses",
	Long: `Generate COUNT distinct secp256k1 private keys from a cryptographically
secure random source and print each with its checksummed address.

Keys are only printed; nothing is written to disk.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logs.NewLogger("KGEN")

		count, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("key count must be an integer: %w", err)
		}
		format, err := keygen.ParseFormat(cfg.GetKeyFormat(&flags))
		if err != nil {
			return err
		}

		pairs, err := keygen.Generate(count, nil)
		if err != nil {
			return err
		}
		log.Debugf("generated %d key pair(s)", len(pairs))

		return keygen.Write(cmd.OutOrStdout(), pairs, format)
	},
}

func init() {
	keygenCmd.Flags().StringVarP(&flags.KeyFormat, "format", "f", "", "output format (text, json)")
}
