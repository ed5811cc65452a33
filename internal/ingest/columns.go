package ingest

import (
	"regexp"
	"strings"

	"github.com/KaramelBytes/incidentloom-cli/internal/normalize"
)

// Resolution is the outcome of mapping a canonical field onto a sheet: either a source
// column (Found) or none.
type Resolution struct {
	Column string
	Index  int
	Found  bool
}

// Value returns the trimmed cell of row under the resolved column. ok is false when the
// field has no column in this sheet.
func (r Resolution) Value(row []string) (string, bool) {
	if !r.Found {
		return "", false
	}
	if r.Index >= len(row) {
		return "", true
	}
	return strings.TrimSpace(row[r.Index]), true
}

// placeholderColumn matches titles spreadsheet tools invent for untitled columns.
var placeholderColumn = regexp.MustCompile(`^Unnamed(:\s*\d+)?$`)

// ColumnSet is the usable columns of one sheet after cleanup: titles normalized,
// placeholder and fully-empty columns excluded, duplicates reduced to the first
// occurrence.
type ColumnSet struct {
	names    []string
	index    map[string]int
	excluded []string
}

// NewColumnSet builds the column set from a header row and the data rows beneath it.
func NewColumnSet(header []string, data [][]string) *ColumnSet {
	cs := &ColumnSet{index: make(map[string]int)}
	for i, raw := range header {
		name := normalize.Text(raw)
		switch {
		case name == "" || placeholderColumn.MatchString(name):
			continue
		case columnEmpty(data, i):
			cs.excluded = append(cs.excluded, name)
			continue
		}
		if _, dup := cs.index[name]; dup {
			cs.excluded = append(cs.excluded, name)
			continue
		}
		cs.index[name] = i
		cs.names = append(cs.names, name)
	}
	return cs
}

func columnEmpty(data [][]string, col int) bool {
	for _, row := range data {
		if col < len(row) && strings.TrimSpace(row[col]) != "" {
			return false
		}
	}
	return true
}

// Names returns the usable column titles in sheet order.
func (c *ColumnSet) Names() []string { return append([]string(nil), c.names...) }

// Excluded returns titled columns dropped as empty or duplicate.
func (c *ColumnSet) Excluded() []string { return append([]string(nil), c.excluded...) }

// Resolve maps f to the highest-priority synonym present in the set.
func (c *ColumnSet) Resolve(f Field) Resolution {
	name, ok := ResolveColumn(c.names, f)
	if !ok {
		return Resolution{}
	}
	return c.lookup(name)
}

// Category returns both category columns. Callers take the newer column's value when it
// is non-blank for the record at hand and fall back to the legacy column otherwise.
func (c *ColumnSet) Category() (newer, legacy Resolution) {
	return c.lookup(newerCategoryColumn), c.lookup(legacyCategoryColumn)
}

func (c *ColumnSet) lookup(name string) Resolution {
	idx, ok := c.index[name]
	if !ok {
		return Resolution{}
	}
	return Resolution{Column: name, Index: idx, Found: true}
}

// ResolveColumn picks, from a sheet's column titles, the one carrying field f: the first
// synonym in priority order that is present.
func ResolveColumn(names []string, f Field) (string, bool) {
	present := make(map[string]struct{}, len(names))
	for _, n := range names {
		present[normalize.Text(n)] = struct{}{}
	}
	for _, syn := range synonyms[f] {
		if _, ok := present[syn]; ok {
			return syn, true
		}
	}
	return "", false
}
