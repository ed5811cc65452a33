package workbook

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

type xlsxReader struct{}

func (xlsxReader) CanRead(filename string) bool { return hasExt(filename, ".xlsx", ".xlsm") }

// Read loads every sheet with raw (unformatted) cell values so date cells arrive as
// serial numbers instead of locale-formatted text. A sheet that fails to load is kept
// with Err set; only an unreadable container fails the whole workbook.
func (xlsxReader) Read(r io.Reader, _ string) (*Workbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	wb := &Workbook{}
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		wb.Date1904 = *props.Date1904
	}
	for _, name := range f.GetSheetList() {
		wb.Sheets = append(wb.Sheets, readSheet(f, name))
	}
	return wb, nil
}

func readSheet(f *excelize.File, name string) (sh Sheet) {
	sh.Name = name
	defer func() {
		if r := recover(); r != nil {
			sh.Rows = nil
			sh.Err = fmt.Errorf("read sheet %q: %v", name, r)
		}
	}()
	rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		sh.Err = fmt.Errorf("read sheet %q: %w", name, err)
		return sh
	}
	sh.Rows = padRows(rows)
	return sh
}
