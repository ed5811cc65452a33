package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/KaramelBytes/incidentloom-cli/internal/analysis"
	"github.com/KaramelBytes/incidentloom-cli/internal/ingest"
	"github.com/KaramelBytes/incidentloom-cli/internal/normalize"
	"github.com/KaramelBytes/incidentloom-cli/internal/session"
	"github.com/spf13/cobra"
)

// ingestFlags are shared by every command that loads a workbook.
type ingestFlags struct {
	headerStrategy string
	headerRow      int
	scanRows       int
	workers        int

	years       []string
	categories  []string
	departments []string
	from        string
	to          string
}

func addIngestFlags(cmd *cobra.Command, f *ingestFlags) {
	fl := cmd.Flags()
	fl.StringVar(&f.headerStrategy, "header-strategy", "", "header location: scan|fixed (overrides config)")
	fl.IntVar(&f.headerRow, "header-row", 0, "0-based header row for --header-strategy fixed")
	fl.IntVar(&f.scanRows, "scan-rows", 0, "rows searched for the header with the scan strategy")
	fl.IntVar(&f.workers, "workers", 0, "sheets transcoded concurrently (0 = GOMAXPROCS)")
	fl.StringSliceVar(&f.years, "year", nil, "keep only these source years (sheet names, repeatable)")
	fl.StringSliceVar(&f.categories, "category", nil, "keep only these categories (repeatable)")
	fl.StringSliceVar(&f.departments, "department", nil, "keep only these departments (repeatable)")
	fl.StringVar(&f.from, "from", "", "keep records dated on or after this date (YYYY-MM-DD)")
	fl.StringVar(&f.to, "to", "", "keep records dated on or before this date (YYYY-MM-DD)")
}

// requireFile distinguishes a missing argument from a workbook with no usable data.
func requireFile(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return errors.New("no file supplied: pass the path of an incident workbook")
	}
	if len(args) > 1 {
		return fmt.Errorf("expected one workbook, got %d arguments", len(args))
	}
	return nil
}

// buildPipeline combines config with any command flags the user set explicitly.
func buildPipeline(cmd *cobra.Command, f *ingestFlags) (*ingest.Pipeline, error) {
	c, err := currentConfig()
	if err != nil {
		return nil, err
	}
	changed := cmd.Flags().Changed
	strategy := c.HeaderStrategy
	if changed("header-strategy") {
		strategy = f.headerStrategy
	}
	scanRows := c.HeaderScanRows
	if changed("scan-rows") && f.scanRows > 0 {
		scanRows = f.scanRows
	}
	headerRow := c.HeaderFixedRow
	if changed("header-row") {
		headerRow = f.headerRow
		if !changed("header-strategy") {
			strategy = "fixed"
		}
	}
	workers := c.Workers
	if changed("workers") {
		workers = f.workers
	}

	var hs ingest.HeaderStrategy
	switch strings.ToLower(strings.TrimSpace(strategy)) {
	case "", "scan":
		hs = ingest.ScanStrategy{Tokens: c.SignatureTokens, Limit: scanRows}
	case "fixed":
		if headerRow < 0 {
			return nil, fmt.Errorf("invalid header row: %d", headerRow)
		}
		hs = ingest.FixedStrategy{Row: headerRow}
	default:
		return nil, fmt.Errorf("unsupported header strategy: %s (use scan|fixed)", strategy)
	}
	return &ingest.Pipeline{
		Options: ingest.Options{
			Header:            hs,
			UnknownDepartment: c.UnknownDepartment,
			Dates: normalize.DateOptions{
				ROCYears:    c.ROCYears,
				ExcelSerial: c.ExcelSerialDates,
			},
		},
		Workers: workers,
		Logger:  slog.Default(),
	}, nil
}

func buildFilter(f *ingestFlags) (analysis.Filter, error) {
	flt := analysis.Filter{Years: f.years, Categories: f.categories, Departments: f.departments}
	parse := func(name, raw string) (*normalize.Date, error) {
		if strings.TrimSpace(raw) == "" {
			return nil, nil
		}
		d, st := normalize.ParseDate(raw, normalize.DefaultDateOptions())
		if st != normalize.DateOK {
			return nil, fmt.Errorf("invalid --%s date: %s", name, raw)
		}
		return &d, nil
	}
	var err error
	if flt.From, err = parse("from", f.from); err != nil {
		return flt, err
	}
	if flt.To, err = parse("to", f.to); err != nil {
		return flt, err
	}
	return flt, nil
}

// loadSession ingests path with the command's effective options.
func loadSession(ctx context.Context, cmd *cobra.Command, path string, f *ingestFlags) (*session.Session, error) {
	p, err := buildPipeline(cmd, f)
	if err != nil {
		return nil, err
	}
	return session.Load(ctx, path, p)
}

// warnNoUsableData prints the notice for a workbook in which every sheet was skipped.
func warnNoUsableData(cmd *cobra.Command, s *session.Session) bool {
	if s.Log.Succeeded() > 0 {
		return false
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "⚠ No usable data in %s: no sheet had a recognizable header\n", s.Name())
	for _, line := range s.Log.Lines() {
		fmt.Fprintf(cmd.ErrOrStderr(), "  %s\n", line)
	}
	return true
}
