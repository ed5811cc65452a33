package workbook

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

const utf8BOM = "\ufeff"

// csvReader treats a delimited export as a workbook with a single sheet named after
// the file stem (e.g. "112.csv" becomes sheet "112").
type csvReader struct{}

func (csvReader) CanRead(filename string) bool { return hasExt(filename, ".csv", ".tsv") }

func (csvReader) Read(r io.Reader, filename string) (*Workbook, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	if hasExt(filename, ".tsv") {
		cr.Comma = '\t'
	}
	base := filepath.Base(filename)
	sh := Sheet{Name: strings.TrimSuffix(base, filepath.Ext(base))}
	rows, err := readLines(cr)
	if err != nil {
		sh.Err = fmt.Errorf("read csv: %w", err)
	} else {
		sh.Rows = padRows(rows)
	}
	return &Workbook{Name: base, Sheets: []Sheet{sh}}, nil
}

// readLines returns one row per file line. encoding/csv skips blank lines, so they are
// put back as empty rows to keep header indexes and record row numbers aligned with the
// file; a record spanning several lines sits at the line where it starts.
func readLines(cr *csv.Reader) ([][]string, error) {
	var rows [][]string
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			return rows, nil
		}
		if err != nil {
			return nil, err
		}
		if len(rows) == 0 && len(rec) > 0 {
			rec[0] = strings.TrimPrefix(rec[0], utf8BOM)
		}
		line, _ := cr.FieldPos(0)
		for len(rows) < line-1 {
			rows = append(rows, nil)
		}
		rows = append(rows, rec)
	}
}
