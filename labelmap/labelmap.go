// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package labelmap builds mappings from a fine-grained label space (e.g. the 1000
// ImageNet classes) to a small set of coarse groups (e.g. "dog", "cat", "bird").
//
// A Mapping is a dense table over the whole fine label domain: every fine label maps
// either to a group index or to Unmapped. Loaders are expected to drop samples whose
// label maps to Unmapped; the mapping itself never filters data.
package labelmap

import (
	"fmt"
	"slices"
	"strings"

	"github.com/gomlx/robustsets"
)

// Unmapped marks fine-grained labels not covered by any group.
const Unmapped = -1

// Group names a set of fine-grained labels to be collapsed into one coarse label.
// It is either an explicit list of label indices or a half-open range [Lo, Hi);
// Indices takes precedence when non-empty.
type Group struct {
	// Name of the coarse label. When empty, Build synthesizes "group_<index>".
	Name string

	// Indices lists the fine labels of the group explicitly.
	Indices []int

	// Lo and Hi delimit the half-open range [Lo, Hi) of fine labels, used only
	// when Indices is empty.
	Lo, Hi int
}

// Range returns a Group covering the half-open range [lo, hi) of fine labels.
func Range(name string, lo, hi int) Group {
	return Group{Name: name, Lo: lo, Hi: hi}
}

// Explicit returns a Group covering exactly the given fine labels.
func Explicit(name string, indices ...int) Group {
	return Group{Name: name, Indices: indices}
}

// Mapping is an immutable total function from every fine label in [0, DomainSize())
// to a coarse group in [0, NumGroups()) or Unmapped.
type Mapping struct {
	table []int
	names []string
}

// Build creates a Mapping over a fine label domain of size domainSize.
//
// Groups are applied in declaration order and later groups overwrite earlier
// assignments: if a fine label appears in two groups, the last write wins. Overlaps
// are neither rejected nor reported -- downstream experiments rely on this override
// order.
//
// It fails if domainSize is not positive, no groups are given, or any group names a
// label outside [0, domainSize).
func Build(groups []Group, domainSize int) (*Mapping, error) {
	if domainSize <= 0 {
		return nil, robustsets.Errorf("label domain size must be positive, got %d", domainSize)
	}
	if len(groups) == 0 {
		return nil, robustsets.Errorf("at least one label group is required")
	}
	table := make([]int, domainSize)
	for i := range table {
		table[i] = Unmapped
	}
	names := make([]string, len(groups))
	for g, group := range groups {
		name := group.Name
		if name == "" {
			name = fmt.Sprintf("group_%d", g)
		}
		names[g] = name
		if len(group.Indices) > 0 {
			for _, fine := range group.Indices {
				if fine < 0 || fine >= domainSize {
					return nil, robustsets.Errorf("group %q: label %d out of range [0, %d)",
						name, fine, domainSize)
				}
				table[fine] = g
			}
			continue
		}
		if group.Lo < 0 || group.Hi > domainSize || group.Lo > group.Hi {
			return nil, robustsets.Errorf("group %q: range [%d, %d) not contained in [0, %d)",
				name, group.Lo, group.Hi, domainSize)
		}
		for fine := group.Lo; fine < group.Hi; fine++ {
			table[fine] = g
		}
	}
	return &Mapping{table: table, names: names}, nil
}

// DomainSize returns the size of the fine-grained label domain.
func (m *Mapping) DomainSize() int { return len(m.table) }

// NumGroups returns the number of coarse groups.
func (m *Mapping) NumGroups() int { return len(m.names) }

// GroupOf returns the coarse group of the given fine label, or Unmapped when the
// label belongs to no group or lies outside the domain.
func (m *Mapping) GroupOf(fine int) int {
	if fine < 0 || fine >= len(m.table) {
		return Unmapped
	}
	return m.table[fine]
}

// Contains reports whether the fine label maps to some coarse group.
func (m *Mapping) Contains(fine int) bool { return m.GroupOf(fine) != Unmapped }

// GroupName returns the human-readable name of the coarse group g.
func (m *Mapping) GroupName(g int) string { return m.names[g] }

// Names returns a copy of the ordered coarse group names.
func (m *Mapping) Names() []string { return slices.Clone(m.names) }

// Table returns a copy of the dense fine-to-coarse table, length DomainSize(),
// with Unmapped for uncovered labels.
func (m *Mapping) Table() []int { return slices.Clone(m.table) }

// CoarseCounts returns, per coarse group, how many fine labels map to it.
func (m *Mapping) CoarseCounts() []int {
	counts := make([]int, len(m.names))
	for _, g := range m.table {
		if g != Unmapped {
			counts[g]++
		}
	}
	return counts
}

// String returns a short description, e.g. "labelmap(dog, cat, ... 9 groups over 1000 labels)".
func (m *Mapping) String() string {
	const maxShown = 4
	shown := m.names
	ellipsis := ""
	if len(shown) > maxShown {
		shown = shown[:maxShown]
		ellipsis = ", ..."
	}
	return fmt.Sprintf("labelmap(%s%s: %d groups over %d labels)",
		strings.Join(shown, ", "), ellipsis, len(m.names), len(m.table))
}
