package ingestion

import (
	"fmt"
	"time"
)

// SourceKind identifies where a dataset came from
type SourceKind string

const (
	SourceUpload SourceKind = "upload"
	SourceText   SourceKind = "text"
	SourceSample SourceKind = "sample"
	SourceManual SourceKind = "manual"
)

// DropReason explains why normalization discarded a row
type DropReason string

const (
	DropMissingX    DropReason = "missing_x"
	DropNonNumericY DropReason = "non_numeric_y"
	DropNonFiniteY  DropReason = "non_finite_y"
)

// IngestionError describes one discarded row. It is informational: dropped rows
// never fail an ingestion.
type IngestionError struct {
	RowIndex  int        `json:"row_index"`
	Field     string     `json:"field"`
	Value     string     `json:"value"`
	ErrorType DropReason `json:"error_type"`
}

// String renders the drop for log lines
func (e IngestionError) String() string {
	return fmt.Sprintf("row %d: %s (%s=%q)", e.RowIndex, e.ErrorType, e.Field, e.Value)
}

// Report summarizes a normalization pass
type Report struct {
	RowsRead int              `json:"rows_read"`
	RowsKept int              `json:"rows_kept"`
	Dropped  []IngestionError `json:"dropped,omitempty"`
}

// DroppedCount returns how many rows were discarded
func (r Report) DroppedCount() int {
	return len(r.Dropped)
}

// CountBy tallies dropped rows per reason
func (r Report) CountBy() map[DropReason]int {
	counts := make(map[DropReason]int)
	for _, d := range r.Dropped {
		counts[d.ErrorType]++
	}
	return counts
}

// IngestionResult describes one completed ingestion into a session
type IngestionResult struct {
	SourceName string     `json:"source_name"`
	Source     SourceKind `json:"source"`
	Columns    int        `json:"columns"`
	Rows       int        `json:"rows"`
	DurationMs int64      `json:"duration_ms"`
}

// NewIngestionResult stamps the elapsed time since start
func NewIngestionResult(name string, kind SourceKind, columns, rows int, start time.Time) IngestionResult {
	return IngestionResult{
		SourceName: name,
		Source:     kind,
		Columns:    columns,
		Rows:       rows,
		DurationMs: time.Since(start).Milliseconds(),
	}
}
