package ingest

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/incidentloom-cli/internal/normalize"
	"github.com/KaramelBytes/incidentloom-cli/internal/workbook"
)

// Options controls how sheets are transcoded.
type Options struct {
	// Header picks the header row; nil means ScanStrategy with defaults.
	Header HeaderStrategy
	// UnknownDepartment replaces absent or blank departments; empty means UnknownDepartment.
	UnknownDepartment string
	Dates             normalize.DateOptions
}

// DefaultOptions returns the bounded-scan header strategy and lenient date parsing.
func DefaultOptions() Options {
	return Options{
		Header:            ScanStrategy{Tokens: DefaultSignatureTokens, Limit: DefaultScanRows},
		UnknownDepartment: UnknownDepartment,
		Dates:             normalize.DefaultDateOptions(),
	}
}

func (o Options) header() HeaderStrategy {
	if o.Header == nil {
		return ScanStrategy{}
	}
	return o.Header
}

func (o Options) unknownDepartment() string {
	if o.UnknownDepartment == "" {
		return UnknownDepartment
	}
	return o.UnknownDepartment
}

// SheetResult is the transcoded output of one sheet.
type SheetResult struct {
	Outcome Outcome
	Records []Record
}

// columnMap is the per-sheet field resolution computed once the header is known.
type columnMap struct {
	id, date, department  Resolution
	newerCat, legacyCat   Resolution
	location, description Resolution
	severity, victim      Resolution
}

func mapColumns(cs *ColumnSet) columnMap {
	m := columnMap{
		id:          cs.Resolve(FieldID),
		date:        cs.Resolve(FieldDate),
		department:  cs.Resolve(FieldDepartment),
		location:    cs.Resolve(FieldLocation),
		description: cs.Resolve(FieldDescription),
		severity:    cs.Resolve(FieldSeverity),
		victim:      cs.Resolve(FieldVictim),
	}
	m.newerCat, m.legacyCat = cs.Category()
	return m
}

// TranscodeSheet turns one raw sheet into canonical records.
//
// The sheet moves Scanning -> HeaderFound -> Transcribing -> Done, or
// Scanning -> HeaderNotFound -> Skipped. Read errors and panics raised while working on
// the sheet end in Skipped with ErrUnreadableSheet; they never escape.
func TranscodeSheet(sheet workbook.Sheet, opt Options) (res SheetResult) {
	defer func() {
		if r := recover(); r != nil {
			res = SheetResult{Outcome: skipped(sheet.Name, fmt.Errorf("%w: %v", ErrUnreadableSheet, r))}
		}
	}()
	if sheet.Err != nil {
		return SheetResult{Outcome: skipped(sheet.Name, fmt.Errorf("%w: %v", ErrUnreadableSheet, sheet.Err))}
	}
	if strings.TrimSpace(sheet.Name) == "" {
		return SheetResult{Outcome: skipped(sheet.Name, fmt.Errorf("%w: sheet has no name", ErrUnreadableSheet))}
	}

	// Scanning
	strategy := opt.header()
	hdr, ok := strategy.Locate(sheet.Rows)
	if !ok {
		return SheetResult{Outcome: skipped(sheet.Name, fmt.Errorf("%w: %s", ErrHeaderNotFound, strategy))}
	}

	// HeaderFound
	data := sheet.Rows[hdr+1:]
	cols := mapColumns(NewColumnSet(sheet.Rows[hdr], data))

	// Transcribing
	var records []Record
	dropped := 0
	for i, row := range data {
		if blankRow(row) {
			continue
		}
		id, _ := cols.id.Value(row)
		if id == "" {
			dropped++
			continue
		}
		records = append(records, cols.record(row, id, sheet.Name, hdr+i+2, opt))
	}

	// Done
	return SheetResult{
		Outcome: success(sheet.Name, hdr, len(records), dropped),
		Records: records,
	}
}

func (m columnMap) record(row []string, id, sheet string, rowNum int, opt Options) Record {
	rec := Record{ID: id, SourceYear: sheet, Row: rowNum}

	rawDate, _ := m.date.Value(row)
	rec.Date, rec.DateStatus = normalize.ParseDate(rawDate, opt.Dates)

	rec.Department, _ = m.department.Value(row)
	if rec.Department == "" {
		rec.Department = opt.unknownDepartment()
	}

	// The newer category column wins only where it is filled in for this record.
	cat, _ := m.newerCat.Value(row)
	if normalize.IsBlank(cat) {
		cat, _ = m.legacyCat.Value(row)
	}
	rec.Category = normalize.Category(cat)

	rec.Location = optional(m.location, row)
	rec.Description = optional(m.description, row)
	rec.Severity = optional(m.severity, row)
	rec.Victim = optional(m.victim, row)
	return rec
}

func optional(r Resolution, row []string) Optional {
	v, ok := r.Value(row)
	return Optional{Value: v, Valid: ok}
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
