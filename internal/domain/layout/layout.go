// Package layout holds the table of supported boat sizes.
package layout

import (
	"fmt"
	"sort"
)

// Layout describes one boat size.
type Layout struct {
	Size    int `json:"size"`
	Benches int `json:"benches"`
}

// Table maps boat size to its layout. A Table is never mutated after New.
type Table struct {
	bySize map[int]Layout
}

// Standard bench counts for the two common dragon boats.
var standard = map[int]int{
	10: 5,
	20: 10,
}

// Default returns the standard DB10/DB20 table.
func Default() *Table {
	t, _ := New(standard)
	return t
}

// New builds a table from size -> bench count. Every size and bench count
// must be positive.
func New(benchesBySize map[int]int) (*Table, error) {
	if len(benchesBySize) == 0 {
		return nil, ErrEmptyTable
	}
	t := &Table{bySize: make(map[int]Layout, len(benchesBySize))}
	for size, benches := range benchesBySize {
		if size <= 0 || benches <= 0 {
			return nil, fmt.Errorf("%w: size %d benches %d", ErrInvalidLayout, size, benches)
		}
		t.bySize[size] = Layout{Size: size, Benches: benches}
	}
	return t, nil
}

// Lookup returns the layout for size or an error wrapping ErrUnsupportedBoatSize.
func (t *Table) Lookup(size int) (Layout, error) {
	l, ok := t.bySize[size]
	if !ok {
		return Layout{}, fmt.Errorf("%w: %d", ErrUnsupportedBoatSize, size)
	}
	return l, nil
}

// Benches is Lookup reduced to the bench count.
func (t *Table) Benches(size int) (int, error) {
	l, err := t.Lookup(size)
	if err != nil {
		return 0, err
	}
	return l.Benches, nil
}

// Supports reports whether size has a layout.
func (t *Table) Supports(size int) bool {
	_, ok := t.bySize[size]
	return ok
}

// All returns every layout ordered by size.
func (t *Table) All() []Layout {
	out := make([]Layout, 0, len(t.bySize))
	for _, l := range t.bySize {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Size < out[j].Size })
	return out
}

// Smallest returns the smallest boat size in the table.
func (t *Table) Smallest() int {
	return t.All()[0].Size
}
