package analysis

import (
	"github.com/KaramelBytes/incidentloom-cli/internal/ingest"
	"github.com/KaramelBytes/incidentloom-cli/internal/normalize"
)

// Filter selects records for a view. Empty lists place no restriction; From and To
// are inclusive and exclude records without a usable date when set.
type Filter struct {
	Years       []string
	Categories  []string
	Departments []string
	From        *normalize.Date
	To          *normalize.Date
}

// Match reports whether r passes every restriction of f.
func (f Filter) Match(r ingest.Record) bool {
	if !oneOf(r.SourceYear, f.Years) || !oneOf(r.Category, f.Categories) || !oneOf(r.Department, f.Departments) {
		return false
	}
	if f.From == nil && f.To == nil {
		return true
	}
	if r.DateStatus != normalize.DateOK {
		return false
	}
	if f.From != nil && r.Date.Before(*f.From) {
		return false
	}
	if f.To != nil && f.To.Before(r.Date) {
		return false
	}
	return true
}

// Apply returns the matching subset of ds in dataset order.
func (f Filter) Apply(ds *ingest.Dataset) *ingest.Dataset {
	return ds.Where(f.Match)
}

// IsZero reports whether f restricts nothing.
func (f Filter) IsZero() bool {
	return len(f.Years) == 0 && len(f.Categories) == 0 && len(f.Departments) == 0 && f.From == nil && f.To == nil
}

func oneOf(v string, allowed []string) bool {
	if len(allowed) == 0 {
		return true
	}
	for _, a := range allowed {
		if a == v {
			return true
		}
	}
	return false
}

// Years lists the distinct source years of ds in first-seen order.
func Years(ds *ingest.Dataset) []string {
	return distinct(ds, func(r ingest.Record) string { return r.SourceYear })
}

// Categories lists the distinct categories of ds in first-seen order.
func Categories(ds *ingest.Dataset) []string {
	return distinct(ds, func(r ingest.Record) string { return r.Category })
}

func distinct(ds *ingest.Dataset, key func(ingest.Record) string) []string {
	seen := map[string]struct{}{}
	var out []string
	for i := 0; i < ds.Len(); i++ {
		k := key(ds.At(i))
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}
