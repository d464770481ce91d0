// Package gamemodel loads the Season One game economics model, a header-less
// CSV with a fixed set of nine numeric columns.
package gamemodel

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/plot/plotter"
)

// Columns are the model's fields in file order.
var Columns = []string{
	"Seizure",
	"Eth",
	"USD",
	"Take",
	"Refund",
	"CumTake",
	"ShardToEth",
	"Prize",
	"CumPrize",
}

var ErrUnknownColumn = errors.New("unknown column")

// Row is one line of the model. Values are indexed like Columns.
type Row [9]float64

type Model struct {
	Rows []Row
}

func Load(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open model file: %w", err)
	}
	defer f.Close()

	m, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return m, nil
}

func Parse(r io.Reader) (*Model, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = len(Columns)
	reader.TrimLeadingSpace = true

	m := &Model{}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		var row Row
		for i, cell := range record {
			v, err := parseCell(cell)
			if err != nil {
				line, _ := reader.FieldPos(i)
				return nil, fmt.Errorf("line %d, column %s: %w", line, Columns[i], err)
			}
			row[i] = v
		}
		m.Rows = append(m.Rows, row)
	}
	return m, nil
}

// A blank cell is a missing value.
func parseCell(cell string) (float64, error) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return math.NaN(), nil
	}
	return strconv.ParseFloat(cell, 64)
}

func columnIndex(name string) (int, error) {
	for i, c := range Columns {
		if c == name {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w %q (available: %s)", ErrUnknownColumn, name, strings.Join(Columns, ", "))
}

func (m *Model) Column(name string) ([]float64, error) {
	idx, err := columnIndex(name)
	if err != nil {
		return nil, err
	}
	values := make([]float64, len(m.Rows))
	for i, row := range m.Rows {
		values[i] = row[idx]
	}
	return values, nil
}

// Series pairs two columns row by row for plotting.
func (m *Model) Series(x, y string) (plotter.XYs, error) {
	xs, err := m.Column(x)
	if err != nil {
		return nil, err
	}
	ys, err := m.Column(y)
	if err != nil {
		return nil, err
	}
	xys := make(plotter.XYs, len(xs))
	for i := range xs {
		xys[i].X = xs[i]
		xys[i].Y = ys[i]
	}
	return xys, nil
}
