package chart

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"gonum.org/v1/plot/plotter"
)

func assertNonEmptyFile(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("expected %s to exist: %v", path, err)
	}
	if info.Size() == 0 {
		t.Errorf("expected %s to be non-empty", path)
	}
}

func TestLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.png")
	xys := plotter.XYs{{X: 1, Y: 0.01}, {X: 2, Y: 0.02}, {X: 3, Y: math.NaN()}, {X: 4, Y: 0.08}}

	if err := Line(xys, Options{XLabel: "Seizure", YLabel: "Eth"}, path); err != nil {
		t.Fatalf("Line() error = %v", err)
	}
	assertNonEmptyFile(t, path)
}

func TestHistogram(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dist.png")
	values := []float64{0, 1, 1, 2, 3, 5, 8, 13, 20}

	if err := Histogram(values, Options{XTicks: []float64{0, 5, 10, 15, 20}}, path); err != nil {
		t.Fatalf("Histogram() error = %v", err)
	}
	assertNonEmptyFile(t, path)
}

func TestCategories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Alignments.png")
	labels := []string{"Lawful Good", "Chaotic Evil", "Lawful Good", "Neutral"}

	if err := Categories(labels, Options{TickRotation: 15}, path); err != nil {
		t.Fatalf("Categories() error = %v", err)
	}
	assertNonEmptyFile(t, path)
}

func TestEmptyInput(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		fn   func(path string) error
	}{
		{"line", func(path string) error { return Line(nil, Options{}, path) }},
		{"line all NaN", func(path string) error {
			return Line(plotter.XYs{{X: math.NaN(), Y: 1}}, Options{}, path)
		}},
		{"histogram", func(path string) error { return Histogram(nil, Options{}, path) }},
		{"categories", func(path string) error { return Categories(nil, Options{}, path) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".png")
			if err := tt.fn(path); !errors.Is(err, ErrNoData) {
				t.Errorf("expected ErrNoData, got %v", err)
			}
			if _, err := os.Stat(path); !os.IsNotExist(err) {
				t.Errorf("expected no file at %s", path)
			}
		})
	}
}

func TestCount(t *testing.T) {
	names, counts := Count([]string{"b", "a", "b", "c", "b"})

	if want := []string{"b", "a", "c"}; !reflect.DeepEqual(names, want) {
		t.Errorf("names = %v, want %v", names, want)
	}
	if want := (plotter.Values{3, 1, 1}); !reflect.DeepEqual(counts, want) {
		t.Errorf("counts = %v, want %v", counts, want)
	}
}
