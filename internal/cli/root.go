package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/terminally-online/seekertools/internal/config"
)

var (
	cfgFile string
	cfg     *config.Config
	flags   config.Flags
	version = "dev"
)

var rootCmd = &cobra.Command{
	Use:   "seekertools",
	Short: "Utilities for the Seekers game data and contracts",
	Long: `seekertools bundles the one-shot utilities used around the Seekers game:
charting the economics model and attribute data, drawing bitmaps from
integer arrays, generating key pairs and decoding contract event logs.

Each command reads its inputs, writes its output and exits.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "version" {
			return nil
		}

		var err error
		if _, statErr := os.Stat(cfgFile); os.IsNotExist(statErr) {
			cfg = &config.Config{}
		} else {
			cfg, err = config.Load(cfgFile)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
		}
		return setupLogging(cfg.GetLogLevel(&flags))
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "seekertools %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "seekertools.yaml", "config file path")
	rootCmd.PersistentFlags().StringVar(&flags.LogLevel, "log-level", "", "log level: trace, debug, info, warn, error, critical, off")

	rootCmd.AddCommand(modelCmd)
	rootCmd.AddCommand(distCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(genartCmd)
	rootCmd.AddCommand(keygenCmd)
	rootCmd.AddCommand(parselogCmd)
	rootCmd.AddCommand(versionCmd)
}

func SetVersion(v string) {
	version = v
}

func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func Root() *cobra.Command {
	return rootCmd
}
