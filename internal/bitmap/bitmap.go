// Package bitmap turns arrays of integers into black and white images, one
// row per integer, one pixel per bit with the most significant bit on the
// left. A 0 bit is white and a 1 bit is black.
package bitmap

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/color"
	"math/big"
	"os"
	"path/filepath"
	"sort"

	"github.com/decred/slog"
	"golang.org/x/image/bmp"
)

var (
	ErrOverflow = errors.New("value does not fit in row")
	ErrNegative = errors.New("negative value")
)

// Policy decides what happens to a value wider than a row.
type Policy int

const (
	// Reject fails with ErrOverflow.
	Reject Policy = iota
	// Wrap keeps only the low bits.
	Wrap
)

func (p Policy) String() string {
	switch p {
	case Reject:
		return "reject"
	case Wrap:
		return "wrap"
	}
	return fmt.Sprintf("Policy(%d)", int(p))
}

var (
	White = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Black = color.RGBA{A: 255}
)

// Row renders v as bits pixels, most significant bit first. true is black.
func Row(v *big.Int, bits int, policy Policy) ([]bool, error) {
	if v.Sign() < 0 {
		return nil, fmt.Errorf("%w: value of %d bits", ErrNegative, v.BitLen())
	}
	if v.BitLen() > bits {
		if policy != Wrap {
			return nil, fmt.Errorf("%w: value needs %d bits, have %d", ErrOverflow, v.BitLen(), bits)
		}
		mask := new(big.Int).Lsh(big.NewInt(1), uint(bits))
		v = new(big.Int).Mod(v, mask)
	}

	row := make([]bool, bits)
	for i := range row {
		row[i] = v.Bit(bits-1-i) == 1
	}
	return row, nil
}

// Encode draws a square image as wide as the encoding's bit count. Values past
// the last row do not fit and are counted in dropped.
func Encode(values []*big.Int, bits int, policy Policy) (img *image.RGBA, dropped int, err error) {
	img = image.NewRGBA(image.Rect(0, 0, bits, bits))
	for y := 0; y < bits; y++ {
		for x := 0; x < bits; x++ {
			img.SetRGBA(x, y, White)
		}
	}

	for y, v := range values {
		if y >= bits {
			return img, len(values) - bits, nil
		}
		row, err := Row(v, bits, policy)
		if err != nil {
			return nil, 0, fmt.Errorf("row %d: %w", y, err)
		}
		for x, black := range row {
			if black {
				img.SetRGBA(x, y, Black)
			}
		}
	}
	return img, 0, nil
}

// ParseArray reads a JSON array and converts every element with enc.
func ParseArray(data []byte, enc Encoding) ([]*big.Int, error) {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("expected a JSON array: %w", err)
	}

	values := make([]*big.Int, len(raws))
	for i, raw := range raws {
		v, err := enc.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		values[i] = v
	}
	return values, nil
}

// Renderer converts every file in DataDir into ImgsDir/<name>.bmp.
type Renderer struct {
	DataDir  string
	ImgsDir  string
	Encoding Encoding
	Policy   Policy
	Log      slog.Logger
}

type Output struct {
	Source  string
	Path    string
	Rows    int
	Dropped int
}

func (r *Renderer) logger() slog.Logger {
	if r.Log == nil {
		return slog.Disabled
	}
	return r.Log
}

func (r *Renderer) Run() ([]Output, error) {
	if r.Encoding == nil {
		return nil, fmt.Errorf("no encoding set")
	}
	log := r.logger()

	entries, err := os.ReadDir(r.DataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read data directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	if err := os.MkdirAll(r.ImgsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create image directory: %w", err)
	}

	var outputs []Output
	for _, name := range names {
		out, err := r.render(name)
		if err != nil {
			return outputs, fmt.Errorf("%s: %w", name, err)
		}
		if out.Dropped > 0 {
			log.Warnf("%s: %d value(s) past row %d were not drawn", name, out.Dropped, r.Encoding.Bits())
		}
		log.Debugf("%s -> %s (%d rows)", out.Source, out.Path, out.Rows)
		outputs = append(outputs, out)
	}
	return outputs, nil
}

func (r *Renderer) render(name string) (Output, error) {
	src := filepath.Join(r.DataDir, name)
	data, err := os.ReadFile(src)
	if err != nil {
		return Output{}, err
	}

	values, err := ParseArray(data, r.Encoding)
	if err != nil {
		return Output{}, err
	}

	bits := r.Encoding.Bits()
	img, dropped, err := Encode(values, bits, r.Policy)
	if err != nil {
		return Output{}, err
	}

	dst := filepath.Join(r.ImgsDir, name+".bmp")
	f, err := os.Create(dst)
	if err != nil {
		return Output{}, fmt.Errorf("failed to create image: %w", err)
	}
	if err := bmp.Encode(f, img); err != nil {
		_ = f.Close()
		return Output{}, fmt.Errorf("failed to encode image: %w", err)
	}
	if err := f.Close(); err != nil {
		return Output{}, err
	}

	rows := len(values) - dropped
	return Output{Source: src, Path: dst, Rows: rows, Dropped: dropped}, nil
}
