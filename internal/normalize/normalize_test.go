package normalize

import (
	"testing"
	"time"
)

func TestCategory(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"病人跌倒造成跌倒事件", "跌倒事件"},
		{"未填寫", FallbackCategory},
		{"", FallbackCategory},
		{"   ", FallbackCategory},
		{"  藥物事件  ", "藥物事件"},
		{"管路事件(非計畫性拔管)", "管路事件"},
		{"其他", FallbackCategory},
		{"fall event", FallbackCategory},
		// full-width space folds away under NFKC
		{"　跌倒事件　", "跌倒事件"},
	}
	for _, tt := range tests {
		if got := Category(tt.in); got != tt.want {
			t.Errorf("Category(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCategoryIdempotent(t *testing.T) {
	inputs := []string{"病人跌倒造成跌倒事件", "未填寫", "藥物事件", "", "傷害行為事件-病人自傷"}
	for _, in := range inputs {
		once := Category(in)
		if !IsCanonicalCategory(once) {
			t.Fatalf("Category(%q) = %q is not canonical", in, once)
		}
		if twice := Category(once); twice != once {
			t.Fatalf("Category not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestParseDateExactFormats(t *testing.T) {
	want := Date{Year: 2023, Month: time.January, Day: 22}
	for _, in := range []string{
		"2023-01-22", "2023/01/22",
		"2023-01-22 08:15:00", "2023/01/22 08:15", "2023-01-22T23:59:59",
	} {
		got, st := ParseDate(in, DefaultDateOptions())
		if st != DateOK || got != want {
			t.Errorf("ParseDate(%q) = %v/%v, want %v/ok", in, got, st, want)
		}
	}
}

func TestParseDateLenient(t *testing.T) {
	opt := DefaultDateOptions()
	tests := []struct {
		in     string
		want   Date
		status DateStatus
	}{
		{"", Date{}, DateMissing},
		{"  ", Date{}, DateMissing},
		{"not a date", Date{}, DateUnparseable},
		{"通報於 2023/1/5 上午", Date{2023, time.January, 5}, DateOK},
		{"2023-02-30", Date{}, DateUnparseable},
		{"111/01/22", Date{2022, time.January, 22}, DateOK},
		{"44948", Date{2023, time.January, 22}, DateOK},
		{"20230122", Date{}, DateUnparseable},
	}
	for _, tt := range tests {
		got, st := ParseDate(tt.in, opt)
		if got != tt.want || st != tt.status {
			t.Errorf("ParseDate(%q) = %v/%v, want %v/%v", tt.in, got, st, tt.want, tt.status)
		}
	}
}

func TestParseDateOptionsOff(t *testing.T) {
	opt := DateOptions{}
	if _, st := ParseDate("44948", opt); st != DateUnparseable {
		t.Fatalf("serial without ExcelSerial: status %v", st)
	}
	got, st := ParseDate("111/01/22", opt)
	if st != DateOK || got.Year != 111 {
		t.Fatalf("ROC year without ROCYears: %v/%v", got, st)
	}
}

func TestDateHelpers(t *testing.T) {
	a := Date{2023, time.January, 22}
	b := Date{2023, time.February, 1}
	if !a.Before(b) || b.Before(a) || a.Before(a) {
		t.Fatalf("Before ordering broken")
	}
	if a.String() != "2023-01-22" {
		t.Fatalf("String = %q", a.String())
	}
	if (Date{}).String() != "" {
		t.Fatalf("zero date should render empty")
	}
	if DateOf(a.Time()) != a {
		t.Fatalf("Time/DateOf mismatch")
	}
}
