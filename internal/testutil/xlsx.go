// Package testutil builds workbook fixtures for tests across the repository.
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

// SheetData describes one tab of a generated workbook. Rows start at A1; nil rows are
// left empty.
type SheetData struct {
	Name string
	Rows [][]any
}

// WriteWorkbook saves an .xlsx with the given sheets (in order) under t.TempDir() and
// returns its path.
func WriteWorkbook(t testing.TB, filename string, sheets ...SheetData) string {
	t.Helper()
	return writeWorkbook(t, filename, false, sheets)
}

// WriteDate1904Workbook is WriteWorkbook for a workbook using the 1904 date system, in
// which serial 0 is 1904-01-01.
func WriteDate1904Workbook(t testing.TB, filename string, sheets ...SheetData) string {
	t.Helper()
	return writeWorkbook(t, filename, true, sheets)
}

func writeWorkbook(t testing.TB, filename string, date1904 bool, sheets []SheetData) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	if date1904 {
		if err := f.SetWorkbookProps(&excelize.WorkbookPropsOptions{Date1904: &date1904}); err != nil {
			t.Fatalf("set workbook props: %v", err)
		}
	}
	for i, sd := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sd.Name); err != nil {
				t.Fatalf("rename sheet: %v", err)
			}
		} else if _, err := f.NewSheet(sd.Name); err != nil {
			t.Fatalf("new sheet %q: %v", sd.Name, err)
		}
		for r, row := range sd.Rows {
			if row == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			if err != nil {
				t.Fatalf("cell name: %v", err)
			}
			vals := row
			if err := f.SetSheetRow(sd.Name, cell, &vals); err != nil {
				t.Fatalf("set row %d of %q: %v", r, sd.Name, err)
			}
		}
	}
	path := filepath.Join(t.TempDir(), filename)
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	return path
}

// IncidentWorkbook is the two-year fixture used by end-to-end tests: sheet "111" with
// its header on the first row and sheet "112" with a five-row preamble, a renamed date
// column and the newer category column (blank on one row).
func IncidentWorkbook(t testing.TB) string {
	t.Helper()
	return WriteWorkbook(t, "incidents.xlsx",
		SheetData{Name: "111", Rows: [][]any{
			{"單號", "通報日期", "事件類別", "發生部門"},
			{"A001", "2022/01/05", "病人跌倒造成跌倒事件", "7A病房"},
			{"A002", "2022-03-15", "給藥錯誤-藥物事件", " 急診 "},
			{"A003", "not a date", "未填寫", ""},
			{"", "2022/04/01", "跌倒事件", "7A病房"},
		}},
		SheetData{Name: "112", Rows: [][]any{
			{"112年度異常事件通報"},
			{"製表單位：品管中心"},
			{"資料期間：112/01-112/12"},
			{"備註：本表由系統匯出"},
			{"-"},
			{"單號", "日期", "新事件類別", "事件類別", "發生單位"},
			{"A001", "2023/01/22", "管路事件", "跌倒事件", "ICU"},
			{"B002", "2023-02-01 10:30:00", "", "藥物事件", "5B病房"},
			{"B003", "112/03/09", "自殺/自傷事件", "", ""},
		}},
	)
}
