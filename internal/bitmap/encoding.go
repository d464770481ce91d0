package bitmap

import (
	"encoding/json"
	"fmt"
	"math/big"
	"sort"
	"strings"
)

// Encoding describes how one JSON array element becomes an integer, and how
// many bits (pixels) each row of the image holds.
type Encoding interface {
	Name() string
	Bits() int
	Parse(raw json.RawMessage) (*big.Int, error)
}

var encodings = make(map[string]Encoding)

func Register(e Encoding) {
	encodings[e.Name()] = e
}

func Get(name string) (Encoding, error) {
	e, ok := encodings[name]
	if !ok {
		return nil, fmt.Errorf("unknown encoding: %s", name)
	}
	return e, nil
}

func Names() []string {
	var names []string
	for name := range encodings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func init() {
	Register(decimal{bits: 32})
	Register(hexadecimal{bits: 64})
}

// decimal accepts JSON numbers, or strings holding a base 10 integer.
type decimal struct {
	bits int
}

func (d decimal) Name() string { return fmt.Sprintf("dec%d", d.bits) }
func (d decimal) Bits() int    { return d.bits }

func (d decimal) Parse(raw json.RawMessage) (*big.Int, error) {
	s := strings.TrimSpace(string(raw))
	if strings.HasPrefix(s, `"`) {
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, err
		}
		s = strings.TrimSpace(s)
	}

	if !isDecimal(s) {
		return nil, fmt.Errorf("%q is not a decimal number", s)
	}
	if v, ok := new(big.Int).SetString(s, 10); ok {
		return v, nil
	}

	// Exponent or decimal point forms such as 1e3 or 7.0.
	f, ok := new(big.Float).SetString(s)
	if !ok {
		return nil, fmt.Errorf("%s is not a number", s)
	}
	if !f.IsInt() {
		return nil, fmt.Errorf("%s is not an integer", s)
	}
	if f.Sign() < 0 {
		return nil, fmt.Errorf("%w: %s", ErrNegative, s)
	}
	// MantExp is the bit length of the integer part, so the value stays
	// unbuilt when it cannot fit a row.
	if exp := f.MantExp(nil); exp > d.bits {
		return nil, fmt.Errorf("%w: %s needs %d bits, have %d", ErrOverflow, s, exp, d.bits)
	}
	v, _ := f.Int(nil)
	return v, nil
}

// isDecimal reports whether s is made only of a sign, base 10 digits, a
// decimal point and an exponent marker. Base prefixes like 0x and 0b, which
// big.Float would honour, are not.
func isDecimal(s string) bool {
	digits := false
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits = true
		case r == '+' || r == '-' || r == '.' || r == 'e' || r == 'E':
		default:
			return false
		}
	}
	return digits
}

// hexadecimal accepts JSON strings holding a base 16 integer, with or without
// a 0x prefix.
type hexadecimal struct {
	bits int
}

func (h hexadecimal) Name() string { return fmt.Sprintf("hex%d", h.bits) }
func (h hexadecimal) Bits() int    { return h.bits }

func (h hexadecimal) Parse(raw json.RawMessage) (*big.Int, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("%s is not a hex string", strings.TrimSpace(string(raw)))
	}
	s = strings.TrimSpace(s)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")

	v, ok := new(big.Int).SetString(s, 16)
	if !ok {
		return nil, fmt.Errorf("%q is not a hex integer", s)
	}
	if neg {
		v.Neg(v)
	}
	return v, nil
}
