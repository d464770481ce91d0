// Package attributes loads per-seeker attribute files: a JSON object mapping
// each entity id to its list of attribute points and an optional alignment.
package attributes

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
)

type Record struct {
	APs       []float64 `json:"aps"`
	Alignment string    `json:"alignment,omitempty"`
}

type Set map[string]Record

func Load(path string) (Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read attributes file: %w", err)
	}

	var s Set
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return s, nil
}

// IDs returns the entity ids with numeric ids first in numeric order,
// followed by the rest lexically.
func (s Set) IDs() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, aErr := strconv.ParseUint(ids[i], 10, 64)
		b, bErr := strconv.ParseUint(ids[j], 10, 64)
		switch {
		case aErr == nil && bErr == nil && a != b:
			return a < b
		case aErr == nil && bErr == nil:
			return ids[i] < ids[j]
		case aErr == nil:
			return true
		case bErr == nil:
			return false
		}
		return ids[i] < ids[j]
	})
	return ids
}

func (s Set) AllAPs() []float64 {
	var all []float64
	for _, id := range s.IDs() {
		all = append(all, s[id].APs...)
	}
	return all
}

// Alignments skips records without a label.
func (s Set) Alignments() []string {
	var labels []string
	for _, id := range s.IDs() {
		if a := s[id].Alignment; a != "" {
			labels = append(labels, a)
		}
	}
	return labels
}
