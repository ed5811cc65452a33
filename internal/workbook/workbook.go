package workbook

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Sheet is one raw tab of an uploaded workbook: an untyped grid of cell texts.
// Err is set when the tab could not be read; Rows is then empty.
type Sheet struct {
	Name string
	Rows [][]string
	Err  error
}

// Workbook is the raw content of one uploaded file, sheets in workbook order.
type Workbook struct {
	Name   string
	Sheets []Sheet
	// Date1904 reports the workbook's date system for serial date cells.
	Date1904 bool
}

// Reader decodes one file format into a Workbook.
type Reader interface {
	CanRead(filename string) bool
	Read(r io.Reader, filename string) (*Workbook, error)
}

var registry []Reader

// Register adds a reader implementation to the registry.
func Register(r Reader) {
	registry = append(registry, r)
}

// ErrUnsupported indicates no registered reader handles the file extension.
var ErrUnsupported = errors.New("unsupported workbook format")

// Open reads the file at path with the first reader that accepts its name.
func Open(path string) (*Workbook, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read workbook: %w", err)
	}
	return OpenReader(bytes.NewReader(b), path)
}

// OpenReader decodes r, choosing the reader by filename extension.
func OpenReader(r io.Reader, filename string) (*Workbook, error) {
	for _, rd := range registry {
		if rd.CanRead(filename) {
			wb, err := rd.Read(r, filename)
			if err != nil {
				return nil, err
			}
			if wb.Name == "" {
				wb.Name = filepath.Base(filename)
			}
			return wb, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupported, filepath.Ext(filename))
}

// Supported reports whether some registered reader accepts filename.
func Supported(filename string) bool {
	for _, rd := range registry {
		if rd.CanRead(filename) {
			return true
		}
	}
	return false
}

// padRows squares the grid so every row has the width of the widest one.
func padRows(rows [][]string) [][]string {
	width := 0
	for _, r := range rows {
		if len(r) > width {
			width = len(r)
		}
	}
	for i, r := range rows {
		if len(r) < width {
			tmp := make([]string, width)
			copy(tmp, r)
			rows[i] = tmp
		}
	}
	return rows
}

func hasExt(filename string, exts ...string) bool {
	lower := strings.ToLower(filename)
	for _, e := range exts {
		if strings.HasSuffix(lower, e) {
			return true
		}
	}
	return false
}

func init() {
	Register(xlsxReader{})
	Register(csvReader{})
}
