package ingest

import (
	"fmt"
	"strings"

	"github.com/KaramelBytes/incidentloom-cli/internal/normalize"
)

// DefaultSignatureTokens mark a header row: the id, report-date and reporter-code titles.
var DefaultSignatureTokens = []string{"單號", "通報日期", "通報員編"}

// DefaultScanRows bounds the header search so stray matches deep in the data are ignored.
// Workbooks with longer preambles raise it through ScanStrategy.Limit.
const DefaultScanRows = 20

// HeaderStrategy picks the row holding column titles. ok is false when none qualifies.
type HeaderStrategy interface {
	Locate(rows [][]string) (index int, ok bool)
	String() string
}

// ScanStrategy searches the first Limit rows for a cell equal to one of Tokens.
type ScanStrategy struct {
	Tokens []string
	Limit  int
}

func (s ScanStrategy) Locate(rows [][]string) (int, bool) {
	tokens := s.Tokens
	if len(tokens) == 0 {
		tokens = DefaultSignatureTokens
	}
	limit := s.Limit
	if limit <= 0 {
		limit = DefaultScanRows
	}
	return LocateHeader(rows, tokens, limit)
}

func (s ScanStrategy) String() string {
	tokens := s.Tokens
	if len(tokens) == 0 {
		tokens = DefaultSignatureTokens
	}
	limit := s.Limit
	if limit <= 0 {
		limit = DefaultScanRows
	}
	return fmt.Sprintf("scan first %d rows for %s", limit, strings.Join(tokens, "/"))
}

// FixedStrategy always uses Row (0-based) as the header, provided the sheet has it.
type FixedStrategy struct {
	Row int
}

func (s FixedStrategy) Locate(rows [][]string) (int, bool) {
	if s.Row < 0 || s.Row >= len(rows) {
		return -1, false
	}
	return s.Row, true
}

func (s FixedStrategy) String() string { return fmt.Sprintf("fixed row %d", s.Row) }

// LocateHeader returns the index of the first of the leading limit rows containing a
// cell equal to any token.
func LocateHeader(rows [][]string, tokens []string, limit int) (int, bool) {
	want := make(map[string]struct{}, len(tokens))
	for _, tk := range tokens {
		if tk = normalize.Text(tk); tk != "" {
			want[tk] = struct{}{}
		}
	}
	for i, row := range rows {
		if i >= limit {
			break
		}
		for _, cell := range row {
			if _, ok := want[normalize.Text(cell)]; ok {
				return i, true
			}
		}
	}
	return -1, false
}
