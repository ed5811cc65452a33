package analysis

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/KaramelBytes/incidentloom-cli/internal/ingest"
	"github.com/KaramelBytes/incidentloom-cli/internal/normalize"
)

// CategoryCount is one bucket of a count-by view.
type CategoryCount struct {
	Value string `json:"value" yaml:"value"`
	Count int    `json:"count" yaml:"count"`
}

// Summary holds the KPI and aggregation views of a (filtered) dataset.
type Summary struct {
	Name  string     `json:"name,omitempty" yaml:"name,omitempty"`
	Total int        `json:"total" yaml:"total"`
	Log   ingest.Log `json:"log,omitempty" yaml:"log,omitempty"`
	// TopCategory is the most frequent category; ties go to the smaller label.
	TopCategory string `json:"top_category,omitempty" yaml:"top_category,omitempty"`
	// ThisMonth counts records dated on or after the first day of the reference month.
	ThisMonth    int             `json:"this_month" yaml:"this_month"`
	MissingDates int             `json:"missing_dates" yaml:"missing_dates"`
	ByCategory   []CategoryCount `json:"by_category" yaml:"by_category"`
	ByYear       []CategoryCount `json:"by_year" yaml:"by_year"`
	ByDepartment []CategoryCount `json:"by_department" yaml:"by_department"`
	// ByMonth is keyed YYYY-MM in ascending order.
	ByMonth []CategoryCount `json:"by_month" yaml:"by_month"`
}

// Summarize computes the views over ds; now anchors the this-month count.
func Summarize(ds *ingest.Dataset, now time.Time) Summary {
	s := Summary{Total: ds.Len()}
	monthStart := normalize.Date{Year: now.Year(), Month: now.Month(), Day: 1}
	cats := map[string]int{}
	deps := map[string]int{}
	months := map[string]int{}
	years := map[string]int{}
	var yearOrder []string
	for i := 0; i < ds.Len(); i++ {
		r := ds.At(i)
		cats[r.Category]++
		deps[r.Department]++
		if _, ok := years[r.SourceYear]; !ok {
			yearOrder = append(yearOrder, r.SourceYear)
		}
		years[r.SourceYear]++
		if r.DateStatus != normalize.DateOK {
			s.MissingDates++
			continue
		}
		months[fmt.Sprintf("%04d-%02d", r.Date.Year, int(r.Date.Month))]++
		if !r.Date.Before(monthStart) {
			s.ThisMonth++
		}
	}
	s.ByCategory = topCounts(cats)
	s.ByDepartment = topCounts(deps)
	if len(s.ByCategory) > 0 {
		s.TopCategory = s.ByCategory[0].Value
	}
	// years keep sheet order
	for _, y := range yearOrder {
		s.ByYear = append(s.ByYear, CategoryCount{Value: y, Count: years[y]})
	}
	for m, c := range months {
		s.ByMonth = append(s.ByMonth, CategoryCount{Value: m, Count: c})
	}
	sort.Slice(s.ByMonth, func(i, j int) bool { return s.ByMonth[i].Value < s.ByMonth[j].Value })
	return s
}

func topCounts(m map[string]int) []CategoryCount {
	tops := make([]CategoryCount, 0, len(m))
	for k, v := range m {
		tops = append(tops, CategoryCount{Value: k, Count: v})
	}
	sort.Slice(tops, func(i, j int) bool {
		if tops[i].Count == tops[j].Count {
			return tops[i].Value < tops[j].Value
		}
		return tops[i].Count > tops[j].Count
	})
	return tops
}

// Markdown renders the summary as a compact report.
func (s Summary) Markdown() string {
	var b strings.Builder
	b.WriteString("[INCIDENT SUMMARY]\n")
	if s.Name != "" {
		b.WriteString(fmt.Sprintf("File: %s\n", s.Name))
	}
	b.WriteString(fmt.Sprintf("Total incidents: %d\n", s.Total))
	if s.TopCategory != "" {
		b.WriteString(fmt.Sprintf("Top category: %s\n", s.TopCategory))
	}
	b.WriteString(fmt.Sprintf("This month: %d\n", s.ThisMonth))
	if s.MissingDates > 0 {
		b.WriteString(fmt.Sprintf("Without usable date: %d\n", s.MissingDates))
	}
	if len(s.Log) > 0 {
		b.WriteString("\n[INGESTION LOG]\n")
		for _, line := range s.Log.Lines() {
			b.WriteString("- ")
			b.WriteString(line)
			b.WriteString("\n")
		}
	}
	writeCounts(&b, "BY CATEGORY", ingest.FieldCategory.Label(), s.ByCategory, s.Total)
	writeCounts(&b, "BY YEAR", ingest.SourceYearLabel, s.ByYear, s.Total)
	writeCounts(&b, "BY DEPARTMENT", ingest.FieldDepartment.Label(), s.ByDepartment, s.Total)
	writeCounts(&b, "BY MONTH", "月份", s.ByMonth, 0)
	return b.String()
}

func writeCounts(b *strings.Builder, title, column string, counts []CategoryCount, total int) {
	if len(counts) == 0 {
		return
	}
	b.WriteString(fmt.Sprintf("\n[%s]\n", title))
	if total > 0 {
		b.WriteString(fmt.Sprintf("| %s | 件數 | %% |\n| --- | --- | --- |\n", column))
	} else {
		b.WriteString(fmt.Sprintf("| %s | 件數 |\n| --- | --- |\n", column))
	}
	for _, c := range counts {
		if total > 0 {
			b.WriteString(fmt.Sprintf("| %s | %d | %.1f |\n", safeVal(c.Value), c.Count, float64(c.Count)*100/float64(total)))
		} else {
			b.WriteString(fmt.Sprintf("| %s | %d |\n", safeVal(c.Value), c.Count))
		}
	}
}

func safeVal(s string) string { return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/") }
