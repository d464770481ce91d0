// Package keygen creates secp256k1 key pairs and their Ethereum addresses.
package keygen

import (
	"crypto/ecdsa"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// maxDraws bounds how many 32 byte draws one key may take before the random
// source is considered broken. An honest source needs more than one draw with
// probability about 2^-128.
const maxDraws = 64

type KeyPair struct {
	PrivateKey *ecdsa.PrivateKey
}

// PrivateHex is the 32 byte scalar as 64 hex characters, without 0x.
func (k KeyPair) PrivateHex() string {
	return hex.EncodeToString(crypto.FromECDSA(k.PrivateKey))
}

// PublicHex is the uncompressed public key, 65 bytes with the 0x04 prefix.
func (k KeyPair) PublicHex() string {
	return hex.EncodeToString(crypto.FromECDSAPub(&k.PrivateKey.PublicKey))
}

func (k KeyPair) CompressedHex() string {
	return hex.EncodeToString(crypto.CompressPubkey(&k.PrivateKey.PublicKey))
}

func (k KeyPair) Address() common.Address {
	return crypto.PubkeyToAddress(k.PrivateKey.PublicKey)
}

// Generate returns n distinct key pairs read from rnd, or from crypto/rand
// when rnd is nil. Draws that are not a valid secp256k1 scalar, or that repeat
// an earlier key, are discarded and drawn again.
func Generate(n int, rnd io.Reader) ([]KeyPair, error) {
	if n < 0 {
		return nil, fmt.Errorf("key count must not be negative, got %d", n)
	}
	if rnd == nil {
		rnd = rand.Reader
	}

	pairs := make([]KeyPair, 0, n)
	seen := make(map[common.Address]struct{}, n)
	buf := make([]byte, 32)
	for len(pairs) < n {
		key, err := draw(rnd, buf)
		if err != nil {
			return nil, fmt.Errorf("key %d: %w", len(pairs)+1, err)
		}
		addr := crypto.PubkeyToAddress(key.PublicKey)
		if _, dup := seen[addr]; dup {
			continue
		}
		seen[addr] = struct{}{}
		pairs = append(pairs, KeyPair{PrivateKey: key})
	}
	return pairs, nil
}

func draw(rnd io.Reader, buf []byte) (*ecdsa.PrivateKey, error) {
	for i := 0; i < maxDraws; i++ {
		if _, err := io.ReadFull(rnd, buf); err != nil {
			return nil, fmt.Errorf("failed to read random bytes: %w", err)
		}
		// ToECDSA rejects zero and values at or above the curve order.
		key, err := crypto.ToECDSA(buf)
		if err == nil {
			return key, nil
		}
	}
	return nil, fmt.Errorf("no valid private key after %d draws", maxDraws)
}

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatText, FormatJSON:
		return Format(s), nil
	}
	return "", fmt.Errorf("unknown format %q (available: text, json)", s)
}

const divider = "------------------------------------------------"

type jsonKeyPair struct {
	PrivateKey          string `json:"privateKey"`
	PublicKey           string `json:"publicKey"`
	CompressedPublicKey string `json:"compressedPublicKey"`
	Address             string `json:"address"`
}

func Write(w io.Writer, pairs []KeyPair, format Format) error {
	switch format {
	case FormatJSON:
		out := make([]jsonKeyPair, len(pairs))
		for i, k := range pairs {
			out[i] = jsonKeyPair{
				PrivateKey:          k.PrivateHex(),
				PublicKey:           k.PublicHex(),
				CompressedPublicKey: k.CompressedHex(),
				Address:             k.Address().Hex(),
			}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	case FormatText, "":
		for _, k := range pairs {
			if _, err := fmt.Fprintf(w, "%s\nPrivate key: %s\nPublic key: %s\n%s\n",
				divider, k.PrivateHex(), k.Address().Hex(), divider); err != nil {
				return err
			}
		}
		return nil
	}
	return fmt.Errorf("unknown format %q", format)
}
