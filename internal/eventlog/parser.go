package eventlog

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/decred/slog"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
)

// ReceiptFetcher is the part of a node client the parser uses.
type ReceiptFetcher interface {
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
}

var _ ReceiptFetcher = (*ethclient.Client)(nil)

// Dial connects to a node over http(s), ws(s) or an ipc socket path.
func Dial(ctx context.Context, url string) (*ethclient.Client, error) {
	client, err := ethclient.DialContext(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("unable to dial rpc %s: %w", url, err)
	}
	return client, nil
}

type Parser struct {
	Fetcher ReceiptFetcher
	Log     slog.Logger
}

func (p *Parser) logger() slog.Logger {
	if p.Log == nil {
		return slog.Disabled
	}
	return p.Log
}

// Parse fetches the receipt for txHash and decodes the named event from it.
func (p *Parser) Parse(ctx context.Context, txHash common.Hash, d *Decoder, event string) ([]Event, error) {
	log := p.logger()

	receipt, err := p.Fetcher.TransactionReceipt(ctx, txHash)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch receipt for %s: %w", txHash, err)
	}
	log.Debugf("receipt %s: status %d, block %v, %d log(s)", txHash, receipt.Status, receipt.BlockNumber, len(receipt.Logs))
	if receipt.Status == types.ReceiptStatusFailed {
		log.Warnf("transaction %s reverted", txHash)
	}

	events, err := d.Decode(receipt, event)
	if err != nil {
		return nil, err
	}
	log.Debugf("decoded %d %s event(s)", len(events), event)
	return events, nil
}

// MarshalEvents renders events as indented JSON with normalized arguments.
func MarshalEvents(events []Event) ([]byte, error) {
	type jsonEvent struct {
		Event            string         `json:"event"`
		Args             map[string]any `json:"args"`
		LogIndex         uint           `json:"logIndex"`
		TransactionIndex uint           `json:"transactionIndex"`
		TransactionHash  string         `json:"transactionHash"`
		Address          string         `json:"address"`
		BlockHash        string         `json:"blockHash"`
		BlockNumber      uint64         `json:"blockNumber"`
	}

	out := make([]jsonEvent, len(events))
	for i, e := range events {
		args, _ := Normalize(e.Args).(map[string]any)
		out[i] = jsonEvent{
			Event:            e.Event,
			Args:             args,
			LogIndex:         e.LogIndex,
			TransactionIndex: e.TransactionIndex,
			TransactionHash:  e.TransactionHash.Hex(),
			Address:          e.Address.Hex(),
			BlockHash:        e.BlockHash.Hex(),
			BlockNumber:      e.BlockNumber,
		}
	}
	return json.MarshalIndent(out, "", "  ")
}

// String prints an event on one line with its arguments sorted by name.
func (e Event) String() string {
	keys := make([]string, 0, len(e.Args))
	for k := range e.Args {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	fmt.Fprintf(&b, "%s(", e.Event)
	for i, k := range keys {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s=%v", k, Normalize(e.Args[k]))
	}
	fmt.Fprintf(&b, ") log %d in block %d from %s", e.LogIndex, e.BlockNumber, e.Address.Hex())
	return b.String()
}
