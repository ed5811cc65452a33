package ingest

import (
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/KaramelBytes/incidentloom-cli/internal/normalize"
	"github.com/KaramelBytes/incidentloom-cli/internal/workbook"
)

func TestTranscodeSheetNoHeader(t *testing.T) {
	rows := make([][]string, 20)
	for i := range rows {
		rows[i] = []string{"備註", "資料"}
	}
	res := TranscodeSheet(workbook.Sheet{Name: "110", Rows: rows}, DefaultOptions())
	if res.Outcome.Status != StatusSkipped || !errors.Is(res.Outcome.Err, ErrHeaderNotFound) {
		t.Fatalf("outcome = %+v", res.Outcome)
	}
	if len(res.Records) != 0 || res.Outcome.HeaderRow != -1 {
		t.Fatalf("skipped sheet produced records: %+v", res)
	}
}

func TestTranscodeSheetHeaderBeyondScanBound(t *testing.T) {
	rows := make([][]string, 30)
	for i := range rows {
		rows[i] = []string{"備註", "資料"}
	}
	rows[22] = []string{"單號", "事件類別"}
	for i := 23; i < 30; i++ {
		rows[i] = []string{"C" + strconv.Itoa(i), "跌倒事件"}
	}
	sheet := workbook.Sheet{Name: "113", Rows: rows}

	res := TranscodeSheet(sheet, DefaultOptions())
	if res.Outcome.Status != StatusSkipped || !errors.Is(res.Outcome.Err, ErrHeaderNotFound) {
		t.Fatalf("outcome = %+v", res.Outcome)
	}
	want := "⚠ 113: skipped (header row not found: scan first 20 rows for 單號/通報日期/通報員編)"
	if got := res.Outcome.String(); got != want {
		t.Fatalf("line = %q, want %q", got, want)
	}

	opt := DefaultOptions()
	opt.Header = ScanStrategy{Limit: 25}
	res = TranscodeSheet(sheet, opt)
	if res.Outcome.Status != StatusSuccess || res.Outcome.HeaderRow != 22 || len(res.Records) != 7 {
		t.Fatalf("outcome with 25-row scan = %+v", res.Outcome)
	}
}

func TestTranscodeSheetUnreadable(t *testing.T) {
	res := TranscodeSheet(workbook.Sheet{Name: "bad", Err: errors.New("corrupt range")}, DefaultOptions())
	if res.Outcome.Status != StatusSkipped || !errors.Is(res.Outcome.Err, ErrUnreadableSheet) {
		t.Fatalf("outcome = %+v", res.Outcome)
	}
}

type panicStrategy struct{}

func (panicStrategy) Locate([][]string) (int, bool) { panic("boom") }
func (panicStrategy) String() string                { return "panic" }

func TestTranscodeSheetRecoversPanic(t *testing.T) {
	opt := DefaultOptions()
	opt.Header = panicStrategy{}
	res := TranscodeSheet(workbook.Sheet{Name: "111", Rows: [][]string{{"單號"}}}, opt)
	if res.Outcome.Status != StatusSkipped || !errors.Is(res.Outcome.Err, ErrUnreadableSheet) {
		t.Fatalf("outcome = %+v", res.Outcome)
	}
}

func TestTranscodeSheetFields(t *testing.T) {
	rows := [][]string{
		{"單號", "通報日期", "事件類別", "發生部門", "事件發生地點", "事件描述", "嚴重程度", "受影響對象"},
		{" A1 ", "2023/01/22", "病人跌倒造成跌倒事件", "", " 病房 ", "滑倒", "輕度", "病人"},
		{"   ", "2023/01/23", "跌倒事件", "ICU", "", "", "", ""},
		{"", "", "", "", "", "", "", ""},
		{"A2", "bad", "", "ICU", "", "", "", ""},
	}
	res := TranscodeSheet(workbook.Sheet{Name: "112", Rows: rows}, DefaultOptions())
	o := res.Outcome
	if o.Status != StatusSuccess || o.Records != 2 || o.Dropped != 1 || o.HeaderRow != 0 {
		t.Fatalf("outcome = %+v", o)
	}
	a1 := res.Records[0]
	if a1.ID != "A1" || a1.SourceYear != "112" || a1.Row != 2 {
		t.Fatalf("a1 identity = %+v", a1)
	}
	if a1.DateStatus != normalize.DateOK || a1.Date != (normalize.Date{Year: 2023, Month: time.January, Day: 22}) {
		t.Fatalf("a1 date = %v/%v", a1.Date, a1.DateStatus)
	}
	if a1.Category != "跌倒事件" || a1.Department != UnknownDepartment {
		t.Fatalf("a1 category/department = %q/%q", a1.Category, a1.Department)
	}
	if a1.Location != (Optional{Value: "病房", Valid: true}) || a1.Severity.Value != "輕度" || a1.Victim.Value != "病人" {
		t.Fatalf("a1 optional fields = %+v", a1)
	}
	a2 := res.Records[1]
	if a2.DateStatus != normalize.DateUnparseable || a2.Category != normalize.FallbackCategory {
		t.Fatalf("a2 = %+v", a2)
	}
}

func TestTranscodeSheetAbsentColumns(t *testing.T) {
	rows := [][]string{{"單號"}, {"A1"}}
	res := TranscodeSheet(workbook.Sheet{Name: "113", Rows: rows}, DefaultOptions())
	if len(res.Records) != 1 {
		t.Fatalf("records = %+v", res.Records)
	}
	r := res.Records[0]
	if r.Category != normalize.FallbackCategory || r.Department != UnknownDepartment {
		t.Fatalf("defaults not applied: %+v", r)
	}
	if r.DateStatus != normalize.DateMissing {
		t.Fatalf("date status = %v", r.DateStatus)
	}
	if r.Location.Valid || r.Description.Valid || r.Severity.Valid || r.Victim.Valid {
		t.Fatalf("absent columns should be invalid: %+v", r)
	}
}

func TestTranscodeSheetCategoryOverridePerRecord(t *testing.T) {
	rows := [][]string{
		{"單號", "新事件類別", "事件類別"},
		{"A1", "管路事件", "跌倒事件"},
		{"A2", "  ", "藥物事件"},
		{"A3", "", ""},
	}
	res := TranscodeSheet(workbook.Sheet{Name: "112", Rows: rows}, DefaultOptions())
	want := []string{"管路事件", "藥物事件", normalize.FallbackCategory}
	if len(res.Records) != len(want) {
		t.Fatalf("records = %+v", res.Records)
	}
	for i, w := range want {
		if res.Records[i].Category != w {
			t.Errorf("record %d category = %q, want %q", i, res.Records[i].Category, w)
		}
	}
}

func TestTranscodeSheetFixedHeader(t *testing.T) {
	rows := [][]string{
		{"title"},
		{"編號", "發生單位"},
		{"A1", "ICU"},
	}
	opt := DefaultOptions()
	opt.Header = FixedStrategy{Row: 1}
	opt.UnknownDepartment = "N/A"
	res := TranscodeSheet(workbook.Sheet{Name: "114", Rows: rows}, opt)
	// the id column is titled 編號 here, so every row lacks an id
	if res.Outcome.Status != StatusSuccess || res.Outcome.Records != 0 || res.Outcome.Dropped != 1 {
		t.Fatalf("outcome = %+v", res.Outcome)
	}
}

func TestTranscodeSheetUnnamed(t *testing.T) {
	res := TranscodeSheet(workbook.Sheet{Name: " ", Rows: [][]string{{"單號"}, {"A1"}}}, DefaultOptions())
	if res.Outcome.Status != StatusSkipped {
		t.Fatalf("unnamed sheet should be skipped: %+v", res.Outcome)
	}
}
