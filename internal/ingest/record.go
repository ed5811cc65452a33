package ingest

import "github.com/KaramelBytes/incidentloom-cli/internal/normalize"

// UnknownDepartment is filled in when a record has no department.
const UnknownDepartment = "未知單位"

// Optional is a pass-through text field; Valid is false when the sheet had no column
// for it.
type Optional struct {
	Value string `json:"value" yaml:"value"`
	Valid bool   `json:"valid" yaml:"valid"`
}

// Record is one normalized incident report. Records are built once by the sheet
// transcoder and handed out by value.
type Record struct {
	ID          string               `json:"id" yaml:"id"`
	Date        normalize.Date       `json:"date" yaml:"date"`
	DateStatus  normalize.DateStatus `json:"date_status" yaml:"date_status"`
	Department  string               `json:"department" yaml:"department"`
	Category    string               `json:"category" yaml:"category"`
	Location    Optional             `json:"location" yaml:"location"`
	Description Optional             `json:"description" yaml:"description"`
	Severity    Optional             `json:"severity" yaml:"severity"`
	Victim      Optional             `json:"victim" yaml:"victim"`
	SourceYear  string               `json:"source_year" yaml:"source_year"`
	// Row is the 1-based row number in the source sheet.
	Row int `json:"row" yaml:"row"`
}

// Text returns the record's value for f as display text and whether the field is
// populated at all for this record.
func (r Record) Text(f Field) (string, bool) {
	switch f {
	case FieldID:
		return r.ID, true
	case FieldDate:
		return r.Date.String(), r.DateStatus == normalize.DateOK
	case FieldDepartment:
		return r.Department, true
	case FieldCategory:
		return r.Category, true
	case FieldLocation:
		return r.Location.Value, r.Location.Valid
	case FieldDescription:
		return r.Description.Value, r.Description.Valid
	case FieldSeverity:
		return r.Severity.Value, r.Severity.Valid
	case FieldVictim:
		return r.Victim.Value, r.Victim.Valid
	default:
		return "", false
	}
}

// Dataset is the flat, ordered result of one ingestion: sheet order, then row order.
type Dataset struct {
	records []Record
}

// NewDataset copies records into a dataset.
func NewDataset(records []Record) *Dataset {
	return &Dataset{records: append([]Record(nil), records...)}
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.records)
}

// At returns the i-th record.
func (d *Dataset) At(i int) Record { return d.records[i] }

// Records returns a copy of all records.
func (d *Dataset) Records() []Record {
	if d == nil {
		return nil
	}
	return append([]Record(nil), d.records...)
}

// Where returns the records satisfying keep, preserving order.
func (d *Dataset) Where(keep func(Record) bool) *Dataset {
	out := &Dataset{}
	if d == nil {
		return out
	}
	for _, r := range d.records {
		if keep(r) {
			out.records = append(out.records, r)
		}
	}
	return out
}
