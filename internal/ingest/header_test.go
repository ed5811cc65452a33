package ingest

import "testing"

func TestLocateHeader(t *testing.T) {
	rows := [][]string{
		{"異常事件通報表", ""},
		{"", ""},
		{" 單號 ", "通報日期"},
		{"A1", "2023/01/01"},
	}
	idx, ok := LocateHeader(rows, DefaultSignatureTokens, DefaultScanRows)
	if !ok || idx != 2 {
		t.Fatalf("LocateHeader = %d,%v want 2,true", idx, ok)
	}
}

func TestLocateHeaderAnyToken(t *testing.T) {
	rows := [][]string{{"x"}, {"通報員編", "姓名"}}
	if idx, ok := LocateHeader(rows, DefaultSignatureTokens, 5); !ok || idx != 1 {
		t.Fatalf("LocateHeader = %d,%v want 1,true", idx, ok)
	}
}

func TestLocateHeaderExactCellMatch(t *testing.T) {
	// a cell merely mentioning the token is not a header
	rows := [][]string{{"請填寫單號欄位"}}
	if _, ok := LocateHeader(rows, DefaultSignatureTokens, 5); ok {
		t.Fatalf("substring match should not count")
	}
}

func TestLocateHeaderBoundedScan(t *testing.T) {
	rows := make([][]string, 30)
	for i := range rows {
		rows[i] = []string{"data"}
	}
	rows[22] = []string{"單號"}
	if _, ok := LocateHeader(rows, DefaultSignatureTokens, 20); ok {
		t.Fatalf("token beyond the first 20 rows must not be found")
	}
	if idx, ok := (ScanStrategy{}).Locate(rows); ok {
		t.Fatalf("default scan found row %d beyond the first %d rows", idx, DefaultScanRows)
	}
	if idx, ok := (ScanStrategy{Limit: 25}).Locate(rows); !ok || idx != 22 {
		t.Fatalf("scan of 25 rows = %d,%v want 22,true", idx, ok)
	}
}

func TestLocateHeaderIgnoresBlankTokens(t *testing.T) {
	rows := [][]string{{"", ""}}
	if _, ok := LocateHeader(rows, []string{" "}, 5); ok {
		t.Fatalf("blank token matched blank cell")
	}
}

func TestFixedStrategy(t *testing.T) {
	rows := [][]string{{"title"}, {"單號"}}
	if idx, ok := (FixedStrategy{Row: 1}).Locate(rows); !ok || idx != 1 {
		t.Fatalf("fixed = %d,%v", idx, ok)
	}
	if _, ok := (FixedStrategy{Row: 2}).Locate(rows); ok {
		t.Fatalf("fixed row beyond sheet should not be found")
	}
	if _, ok := (FixedStrategy{Row: -1}).Locate(rows); ok {
		t.Fatalf("negative fixed row should not be found")
	}
}
