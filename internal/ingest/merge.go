package ingest

// Merge concatenates per-sheet results in the order given. Records are not deduplicated
// across sheets: the same id under two source years is two incidents. When every sheet
// was skipped the dataset is empty, not nil, and the log carries each reason.
func Merge(results []SheetResult) (*Dataset, Log) {
	n := 0
	for _, r := range results {
		n += len(r.Records)
	}
	ds := &Dataset{records: make([]Record, 0, n)}
	log := make(Log, 0, len(results))
	for _, r := range results {
		ds.records = append(ds.records, r.Records...)
		log = append(log, r.Outcome)
	}
	return ds, log
}
