package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/KaramelBytes/incidentloom-cli/internal/ingest"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/transform"
)

// Encoding selects the byte encoding of exported text.
type Encoding string

const (
	// EncodingUTF8BOM writes UTF-8 prefixed with a byte-order mark so spreadsheet tools
	// detect the encoding.
	EncodingUTF8BOM Encoding = "utf-8-bom"
	EncodingUTF8    Encoding = "utf-8"
	// EncodingBig5 writes Big5 for legacy Traditional Chinese spreadsheet setups;
	// characters outside Big5 are replaced.
	EncodingBig5 Encoding = "big5"
)

// ParseEncoding maps a user-supplied name to an Encoding.
func ParseEncoding(s string) (Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "utf-8-bom", "utf8-bom", "bom":
		return EncodingUTF8BOM, nil
	case "utf-8", "utf8":
		return EncodingUTF8, nil
	case "big5", "cp950":
		return EncodingBig5, nil
	default:
		return "", fmt.Errorf("unsupported encoding: %s (use utf-8-bom|utf-8|big5)", s)
	}
}

// Options controls delimited export.
type Options struct {
	Delimiter rune
	Encoding  Encoding
}

// DefaultOptions writes comma-separated UTF-8 with a BOM.
func DefaultOptions() Options {
	return Options{Delimiter: ',', Encoding: EncodingUTF8BOM}
}

// Columns returns the canonical fields populated by at least one record, in canonical
// order. Id, department and category are always populated.
func Columns(ds *ingest.Dataset) []ingest.Field {
	populated := map[ingest.Field]bool{
		ingest.FieldID: true, ingest.FieldDepartment: true, ingest.FieldCategory: true,
	}
	for i := 0; i < ds.Len(); i++ {
		r := ds.At(i)
		for _, f := range ingest.Fields {
			if populated[f] {
				continue
			}
			if _, ok := r.Text(f); ok {
				populated[f] = true
			}
		}
	}
	var cols []ingest.Field
	for _, f := range ingest.Fields {
		if populated[f] {
			cols = append(cols, f)
		}
	}
	return cols
}

// WriteCSV writes ds as delimited text: one row per record, one column per populated
// canonical field, then the source year.
func WriteCSV(w io.Writer, ds *ingest.Dataset, opt Options) error {
	if opt.Delimiter == 0 {
		opt.Delimiter = ','
	}
	var out io.Writer = w
	var closer io.Closer
	switch opt.Encoding {
	case "", EncodingUTF8BOM:
		if _, err := io.WriteString(w, "\ufeff"); err != nil {
			return fmt.Errorf("write bom: %w", err)
		}
	case EncodingUTF8:
	case EncodingBig5:
		tw := transform.NewWriter(w, encoding.ReplaceUnsupported(traditionalchinese.Big5.NewEncoder()))
		out, closer = tw, tw
	default:
		return fmt.Errorf("unsupported encoding: %s", opt.Encoding)
	}

	cols := Columns(ds)
	cw := csv.NewWriter(out)
	cw.Comma = opt.Delimiter
	header := make([]string, 0, len(cols)+1)
	for _, f := range cols {
		header = append(header, f.Label())
	}
	header = append(header, ingest.SourceYearLabel)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	row := make([]string, len(header))
	for i := 0; i < ds.Len(); i++ {
		r := ds.At(i)
		for j, f := range cols {
			row[j], _ = r.Text(f)
		}
		row[len(cols)] = r.SourceYear
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write record %s: %w", r.ID, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	if closer != nil {
		if err := closer.Close(); err != nil {
			return fmt.Errorf("flush encoder: %w", err)
		}
	}
	return nil
}
