package ingest

import (
	"errors"
	"fmt"
)

var (
	// ErrHeaderNotFound means no row of the sheet qualified as the header.
	ErrHeaderNotFound = errors.New("header row not found")
	// ErrUnreadableSheet means the sheet could not be read or transcoded.
	ErrUnreadableSheet = errors.New("unreadable sheet")
)

// Status is the per-sheet ingestion result.
type Status int

const (
	StatusSuccess Status = iota
	StatusSkipped
)

func (s Status) String() string {
	if s == StatusSkipped {
		return "skipped"
	}
	return "success"
}

func (s Status) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Outcome describes what happened to one sheet.
type Outcome struct {
	Sheet   string `json:"sheet" yaml:"sheet"`
	Status  Status `json:"status" yaml:"status"`
	Records int    `json:"records" yaml:"records"`
	// Dropped counts non-blank rows discarded for a missing id.
	Dropped int `json:"dropped" yaml:"dropped"`
	// HeaderRow is the 0-based header row index, -1 when skipped.
	HeaderRow int    `json:"header_row" yaml:"header_row"`
	Reason    string `json:"reason,omitempty" yaml:"reason,omitempty"`
	Err       error  `json:"-" yaml:"-"`
}

func success(sheet string, header, records, dropped int) Outcome {
	return Outcome{Sheet: sheet, Status: StatusSuccess, Records: records, Dropped: dropped, HeaderRow: header}
}

func skipped(sheet string, err error) Outcome {
	return Outcome{Sheet: sheet, Status: StatusSkipped, HeaderRow: -1, Reason: err.Error(), Err: err}
}

// String renders the outcome as one display line.
func (o Outcome) String() string {
	if o.Status == StatusSkipped {
		return fmt.Sprintf("⚠ %s: skipped (%s)", o.Sheet, o.Reason)
	}
	s := fmt.Sprintf("✓ %s: %d records", o.Sheet, o.Records)
	if o.Dropped > 0 {
		s += fmt.Sprintf(", %d without id dropped", o.Dropped)
	}
	return s
}

// Log is the ordered list of per-sheet outcomes of one ingestion.
type Log []Outcome

// Lines renders each outcome for display.
func (l Log) Lines() []string {
	out := make([]string, len(l))
	for i, o := range l {
		out[i] = o.String()
	}
	return out
}

// Succeeded counts sheets that were transcoded.
func (l Log) Succeeded() int {
	n := 0
	for _, o := range l {
		if o.Status == StatusSuccess {
			n++
		}
	}
	return n
}

// NoUsableSheets reports an attempted ingestion where every sheet was skipped.
func (l Log) NoUsableSheets() bool { return len(l) > 0 && l.Succeeded() == 0 }
