package normalize

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"
)

// Date is a calendar date without time of day or zone.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf truncates t to its calendar date.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// String renders the date as YYYY-MM-DD; the zero Date renders empty.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

func (d Date) IsZero() bool { return d == Date{} }

// Time returns midnight UTC of the date.
func (d Date) Time() time.Time { return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC) }

// Before reports whether d is strictly earlier than o.
func (d Date) Before(o Date) bool {
	if d.Year != o.Year {
		return d.Year < o.Year
	}
	if d.Month != o.Month {
		return d.Month < o.Month
	}
	return d.Day < o.Day
}

func (d Date) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// DateStatus records why a date is or is not present.
type DateStatus int

const (
	DateMissing DateStatus = iota
	DateOK
	DateUnparseable
)

func (s DateStatus) String() string {
	switch s {
	case DateOK:
		return "ok"
	case DateUnparseable:
		return "unparseable"
	default:
		return "missing"
	}
}

func (s DateStatus) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// DateOptions tunes the lenient parsing steps.
type DateOptions struct {
	// ROCYears treats years below 1911 as Minguo (ROC) years, e.g. 111/01/22 -> 2022-01-22.
	ROCYears bool
	// ExcelSerial accepts plain numbers as Excel date serials.
	ExcelSerial bool
	// Date1904 selects the 1904 date system for serials.
	Date1904 bool
}

// DefaultDateOptions returns the options used by the ingestion pipeline.
func DefaultDateOptions() DateOptions {
	return DateOptions{ROCYears: true, ExcelSerial: true}
}

const rocEpochOffset = 1911

var (
	dateLayouts = []string{
		"2006-01-02", "2006-01-02 15:04", "2006-01-02 15:04:05", "2006-01-02T15:04:05",
		"2006/01/02", "2006/01/02 15:04", "2006/01/02 15:04:05", "2006/01/02T15:04:05",
	}
	looseDate   = regexp.MustCompile(`(\d{1,4})[-/](\d{1,2})[-/](\d{1,2})`)
	excelSerial = regexp.MustCompile(`^\d{1,5}(\.\d+)?$`)
)

// ParseDate normalizes a raw cell to a calendar date. It never fails: blank input is
// DateMissing and anything it cannot read is DateUnparseable.
func ParseDate(raw string, opt DateOptions) (Date, DateStatus) {
	s := Text(raw)
	if s == "" {
		return Date{}, DateMissing
	}
	for _, l := range dateLayouts {
		if t, err := time.Parse(l, s); err == nil {
			return DateOf(t), DateOK
		}
	}
	if opt.ExcelSerial && excelSerial.MatchString(s) {
		if d, ok := fromSerial(s, opt.Date1904); ok {
			return d, DateOK
		}
	}
	if m := looseDate.FindStringSubmatch(s); m != nil {
		y, _ := strconv.Atoi(m[1])
		mo, _ := strconv.Atoi(m[2])
		day, _ := strconv.Atoi(m[3])
		if opt.ROCYears && y > 0 && y < rocEpochOffset {
			y += rocEpochOffset
		}
		if d, ok := calendarDate(y, mo, day); ok {
			return d, DateOK
		}
	}
	return Date{}, DateUnparseable
}

func fromSerial(s string, date1904 bool) (Date, bool) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 1 {
		return Date{}, false
	}
	t, err := excelize.ExcelDateToTime(v, date1904)
	if err != nil {
		return Date{}, false
	}
	return DateOf(t), true
}

func calendarDate(y, m, d int) (Date, bool) {
	if y < 1 || m < 1 || m > 12 || d < 1 {
		return Date{}, false
	}
	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	if t.Year() != y || int(t.Month()) != m || t.Day() != d {
		return Date{}, false
	}
	return DateOf(t), true
}
