package cli

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/spf13/cobra"

	"github.com/terminally-online/seekertools/internal/eventlog"
)

var parselogCmd = &cobra.Command{
	Use:   "parselog [TXHASH]",
	Short: "Decode a contract event from a transaction receipt",
	Long: `Fetch a transaction receipt from the node and decode one event of one game
contract from its logs.

The contract address comes from the addresses file written by the deploy
script (selected by --instance and --contract), and its ABI from the hardhat
build artifact under the artifacts directory.

Example:
  seekertools parselog --instance 1 --contract seasonOne --event Seized 0x376c...feeb`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		log := logs.NewLogger("PLOG")
		w := cmd.OutOrStdout()

		txArg := cfg.GetTxHash(&flags)
		if len(args) == 1 {
			txArg = args[0]
		}
		txHash, err := parseTxHash(txArg)
		if err != nil {
			return err
		}

		rpcURL, err := cfg.GetRPCURL(&flags)
		if err != nil {
			return err
		}
		instance := cfg.GetInstance(&flags)
		contract := cfg.GetContract(&flags)
		event := cfg.GetEvent(&flags)

		deployment, err := eventlog.LoadDeployment(cfg.GetAddressesFile(&flags), instance)
		if err != nil {
			return err
		}
		address, err := deployment.Address(contract)
		if err != nil {
			return err
		}

		artifact := eventlog.ArtifactPath(cfg.GetArtifactsDir(&flags), contract)
		contractABI, err := eventlog.LoadABI(artifact)
		if err != nil {
			return err
		}
		log.Debugf("%s at %s, abi from %s", contract, address, artifact)

		client, err := eventlog.Dial(ctx, rpcURL)
		if err != nil {
			return err
		}
		defer client.Close()

		p := &eventlog.Parser{Fetcher: client, Log: log}
		events, err := p.Parse(ctx, txHash, &eventlog.Decoder{ABI: contractABI, Address: address}, event)
		if err != nil {
			return err
		}

		if len(events) == 0 {
			fmt.Fprintf(w, "%s No %s events from %s in %s\n", warnMark, event, contract, txHash)
			return nil
		}
		for _, e := range events {
			fmt.Fprintln(w, e)
		}

		data, err := eventlog.MarshalEvents(events)
		if err != nil {
			return fmt.Errorf("failed to encode events: %w", err)
		}
		fmt.Fprintln(w, string(data))
		return nil
	},
}

func parseTxHash(s string) (common.Hash, error) {
	b, err := hexutil.Decode(s)
	if err != nil {
		return common.Hash{}, fmt.Errorf("invalid transaction hash %q: %w", s, err)
	}
	if len(b) != common.HashLength {
		return common.Hash{}, fmt.Errorf("invalid transaction hash %q: expected %d bytes, got %d", s, common.HashLength, len(b))
	}
	return common.BytesToHash(b), nil
}

func init() {
	parselogCmd.Flags().StringVar(&flags.RPCURL, "rpc", "", "node RPC endpoint")
	parselogCmd.Flags().StringVar(&flags.AddressesFile, "addresses", "", "deployed addresses JSON file")
	parselogCmd.Flags().StringVar(&flags.ArtifactsDir, "artifacts", "", "hardhat artifacts directory")
	parselogCmd.Flags().StringVar(&flags.Instance, "instance", "", "deployment instance key in the addresses file")
	parselogCmd.Flags().StringVar(&flags.Contract, "contract", "", "contract key (seasonOne, seekers, vault)")
	parselogCmd.Flags().StringVar(&flags.Event, "event", "", "event name to decode")
}
