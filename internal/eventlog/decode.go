// Package eventlog fetches transaction receipts from a node and decodes the
// game contracts' event logs using their build artifacts.
package eventlog

import (
	"errors"
	"fmt"
	"math/big"
	"reflect"
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
)

var ErrUnknownEvent = errors.New("unknown event")

// Event is one decoded log entry.
type Event struct {
	Event            string         `json:"event"`
	Args             map[string]any `json:"args"`
	LogIndex         uint           `json:"logIndex"`
	TransactionIndex uint           `json:"transactionIndex"`
	TransactionHash  common.Hash    `json:"transactionHash"`
	Address          common.Address `json:"address"`
	BlockHash        common.Hash    `json:"blockHash"`
	BlockNumber      uint64         `json:"blockNumber"`
}

// Decoder decodes logs emitted by one contract. A zero Address accepts logs
// from any emitter.
type Decoder struct {
	ABI     abi.ABI
	Address common.Address
}

func (d *Decoder) event(name string) (abi.Event, error) {
	ev, ok := d.ABI.Events[name]
	if !ok {
		names := make([]string, 0, len(d.ABI.Events))
		for n := range d.ABI.Events {
			names = append(names, n)
		}
		sort.Strings(names)
		return abi.Event{}, fmt.Errorf("%w %q (available: %s)", ErrUnknownEvent, name, strings.Join(names, ", "))
	}
	return ev, nil
}

// Decode returns every log in the receipt that is an instance of the named
// event. Logs of other events or other contracts are ignored.
func (d *Decoder) Decode(receipt *types.Receipt, name string) ([]Event, error) {
	ev, err := d.event(name)
	if err != nil {
		return nil, err
	}
	if ev.Anonymous {
		return nil, fmt.Errorf("event %s is anonymous and cannot be matched by topic", name)
	}

	var events []Event
	for _, log := range receipt.Logs {
		if len(log.Topics) == 0 || log.Topics[0] != ev.ID {
			continue
		}
		if d.Address != (common.Address{}) && log.Address != d.Address {
			continue
		}

		args, err := decodeArgs(ev, log)
		if err != nil {
			return nil, fmt.Errorf("log %d: %w", log.Index, err)
		}
		events = append(events, Event{
			Event:            ev.Name,
			Args:             args,
			LogIndex:         log.Index,
			TransactionIndex: log.TxIndex,
			TransactionHash:  log.TxHash,
			Address:          log.Address,
			BlockHash:        log.BlockHash,
			BlockNumber:      log.BlockNumber,
		})
	}
	return events, nil
}

func decodeArgs(ev abi.Event, log *types.Log) (map[string]any, error) {
	args := make(map[string]any, len(ev.Inputs))
	if err := ev.Inputs.UnpackIntoMap(args, log.Data); err != nil {
		return nil, fmt.Errorf("failed to unpack data: %w", err)
	}

	var indexed abi.Arguments
	for _, arg := range ev.Inputs {
		if arg.Indexed {
			indexed = append(indexed, arg)
		}
	}
	if len(log.Topics)-1 != len(indexed) {
		return nil, fmt.Errorf("expected %d indexed topics, got %d", len(indexed), len(log.Topics)-1)
	}
	if err := abi.ParseTopicsIntoMap(args, indexed, log.Topics[1:]); err != nil {
		return nil, fmt.Errorf("failed to parse topics: %w", err)
	}
	return args, nil
}

// Normalize rewrites decoded ABI values into JSON friendly forms: addresses
// and hashes as hex, integers wider than 64 bits as decimal strings, byte
// strings and fixed byte arrays as 0x hex.
func Normalize(v any) any {
	switch x := v.(type) {
	case nil:
		return nil
	case common.Address:
		return x.Hex()
	case common.Hash:
		return x.Hex()
	case *big.Int:
		return x.String()
	case []byte:
		return hexutil.Encode(x)
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, val := range x {
			out[k] = Normalize(val)
		}
		return out
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			b := make([]byte, rv.Len())
			reflect.Copy(reflect.ValueOf(b), rv)
			return hexutil.Encode(b)
		}
		fallthrough
	case reflect.Slice:
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = Normalize(rv.Index(i).Interface())
		}
		return out
	case reflect.Struct:
		out := make(map[string]any, rv.NumField())
		t := rv.Type()
		for i := 0; i < rv.NumField(); i++ {
			f := t.Field(i)
			if !f.IsExported() {
				continue
			}
			key := f.Name
			if tag, _, _ := strings.Cut(f.Tag.Get("json"), ","); tag != "" {
				key = tag
			}
			out[key] = Normalize(rv.Field(i).Interface())
		}
		return out
	case reflect.Ptr:
		if rv.IsNil() {
			return nil
		}
		return Normalize(rv.Elem().Interface())
	}
	return v
}
