package ingest

import (
	"context"
	"log/slog"
	"runtime"

	"github.com/KaramelBytes/incidentloom-cli/internal/workbook"
	"golang.org/x/sync/errgroup"
)

// Pipeline transcodes every sheet of a workbook and merges the results.
type Pipeline struct {
	Options Options
	// Workers bounds concurrent sheet transcoding; <= 0 uses GOMAXPROCS.
	Workers int
	Logger  *slog.Logger
}

// NewPipeline returns a pipeline with default options.
func NewPipeline() *Pipeline {
	return &Pipeline{Options: DefaultOptions()}
}

// Run ingests wb. Sheets are independent and may be transcoded in parallel; the merged
// dataset and log are always in sheet order. The only error is ctx cancellation.
func (p *Pipeline) Run(ctx context.Context, wb *workbook.Workbook) (*Dataset, Log, error) {
	logger := p.Logger
	if logger == nil {
		logger = slog.Default()
	}
	workers := p.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	opt := p.Options
	opt.Dates.Date1904 = opt.Dates.Date1904 || wb.Date1904

	results := make([]SheetResult, len(wb.Sheets))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, sh := range wb.Sheets {
		i, sh := i, sh
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res := TranscodeSheet(sh, opt)
			results[i] = res
			o := res.Outcome
			if o.Status == StatusSkipped {
				logger.Warn("sheet skipped", "workbook", wb.Name, "sheet", o.Sheet, "reason", o.Reason)
			} else {
				logger.Debug("sheet transcoded", "workbook", wb.Name, "sheet", o.Sheet,
					"header_row", o.HeaderRow, "records", o.Records, "dropped", o.Dropped)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	ds, log := Merge(results)
	logger.Info("workbook ingested", "workbook", wb.Name, "sheets", len(log),
		"succeeded", log.Succeeded(), "records", ds.Len())
	return ds, log, nil
}
