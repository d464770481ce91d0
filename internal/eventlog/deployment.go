package eventlog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

var (
	ErrUnknownInstance = errors.New("unknown deployment instance")
	ErrUnknownContract = errors.New("unknown contract")
)

// Deployment is one game instance as recorded in the addresses file by the
// deploy script.
type Deployment struct {
	DeployBlock uint64                    `json:"deployBlock"`
	Contracts   map[string]common.Address `json:"contracts"`
}

func (d Deployment) Address(contract string) (common.Address, error) {
	addr, ok := d.Contracts[contract]
	if !ok {
		names := make([]string, 0, len(d.Contracts))
		for name := range d.Contracts {
			names = append(names, name)
		}
		sort.Strings(names)
		return common.Address{}, fmt.Errorf("%w %q (available: %s)", ErrUnknownContract, contract, strings.Join(names, ", "))
	}
	return addr, nil
}

func readEntries(path string) (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read addresses file: %w", err)
	}
	var entries map[string]json.RawMessage
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return entries, nil
}

func isObject(raw json.RawMessage) bool {
	return bytes.HasPrefix(bytes.TrimSpace(raw), []byte("{"))
}

// LoadDeployments returns every instance in the addresses file. Top level
// entries that are not objects, such as library addresses, are skipped.
func LoadDeployments(path string) (map[string]Deployment, error) {
	entries, err := readEntries(path)
	if err != nil {
		return nil, err
	}

	deployments := make(map[string]Deployment)
	for key, raw := range entries {
		if !isObject(raw) {
			continue
		}
		var d Deployment
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, fmt.Errorf("instance %s: %w", key, err)
		}
		deployments[key] = d
	}
	return deployments, nil
}

func LoadDeployment(path, instance string) (Deployment, error) {
	entries, err := readEntries(path)
	if err != nil {
		return Deployment{}, err
	}

	raw, ok := entries[instance]
	if !ok || !isObject(raw) {
		return Deployment{}, fmt.Errorf("%w %q in %s", ErrUnknownInstance, instance, path)
	}
	var d Deployment
	if err := json.Unmarshal(raw, &d); err != nil {
		return Deployment{}, fmt.Errorf("instance %s: %w", instance, err)
	}
	return d, nil
}

// ArtifactPath locates the hardhat build artifact for a contract key, e.g.
// seasonOne becomes <dir>/contracts/SeasonOne.sol/SeasonOne.json.
func ArtifactPath(dir, contract string) string {
	name := contract
	if r, size := utf8.DecodeRuneInString(contract); r != utf8.RuneError {
		name = string(unicode.ToUpper(r)) + contract[size:]
	}
	return filepath.Join(dir, "contracts", name+".sol", name+".json")
}

// LoadABI reads the abi member of a hardhat artifact.
func LoadABI(path string) (abi.ABI, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return abi.ABI{}, fmt.Errorf("failed to read artifact: %w", err)
	}

	var artifact struct {
		ContractName string          `json:"contractName"`
		ABI          json.RawMessage `json:"abi"`
	}
	if err := json.Unmarshal(data, &artifact); err != nil {
		return abi.ABI{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if len(artifact.ABI) == 0 {
		return abi.ABI{}, fmt.Errorf("%s has no abi", path)
	}

	parsed, err := abi.JSON(bytes.NewReader(artifact.ABI))
	if err != nil {
		return abi.ABI{}, fmt.Errorf("failed to parse abi in %s: %w", path, err)
	}
	return parsed, nil
}
