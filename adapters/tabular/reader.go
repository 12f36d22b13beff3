package tabular

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"
	"time"

	"handchart/domain/chart"
	"handchart/domain/core"

	"github.com/xuri/excelize/v2"
)

const utf8BOM = "\ufeff"

// File types understood by DataReader
const (
	FileTypeCSV  = "csv"
	FileTypeXLSX = "xlsx"
)

// DataReader reads delimited text or Excel workbooks into a dataset
type DataReader struct {
	name     string
	fileType string
}

// NewDataReader picks the file type from the file name's extension.
// Unknown extensions are treated as delimited text.
func NewDataReader(filename string) *DataReader {
	ext := strings.ToLower(filepath.Ext(filename))
	fileType := FileTypeCSV
	if ext == ".xlsx" || ext == ".xlsm" {
		fileType = FileTypeXLSX
	}
	return &DataReader{name: filepath.Base(filename), fileType: fileType}
}

// SupportedExtension reports whether an upload with this name can be read
func SupportedExtension(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv", ".txt", ".tsv", ".xlsx", ".xlsm":
		return true
	}
	return false
}

// FileType returns "csv" or "xlsx"
func (r *DataReader) FileType() string {
	return r.fileType
}

// Read parses r according to the reader's file type. Malformed content
// degrades to an empty dataset; only an unsupported type is an error.
func (r *DataReader) Read(src io.Reader) (*chart.Dataset, error) {
	switch r.fileType {
	case FileTypeCSV:
		if strings.EqualFold(filepath.Ext(r.name), ".tsv") {
			return ParseDelimited(src, r.name, '\t'), nil
		}
		return Parse(src, r.name), nil
	case FileTypeXLSX:
		return ReadXLSX(src, r.name), nil
	default:
		return nil, fmt.Errorf("%w: %s", core.ErrUnsupportedFormat, r.fileType)
	}
}

// Parse reads comma-separated text whose first record holds the column names
func Parse(src io.Reader, name string) *chart.Dataset {
	return ParseDelimited(src, name, ',')
}

// ParseString is Parse over an in-memory string
func ParseString(text string, name string) *chart.Dataset {
	return Parse(strings.NewReader(text), name)
}

// ParseDelimited reads delimited text. Records may have any number of fields;
// quoting is lenient. A read error after the header keeps the rows read so far.
func ParseDelimited(src io.Reader, name string, delimiter rune) *chart.Dataset {
	readStart := time.Now()

	reader := csv.NewReader(src)
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var records [][]string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			log.Printf("[DataReader] stopping at unreadable record in %s: %v", name, err)
			break
		}
		records = append(records, record)
	}

	if len(records) == 0 {
		log.Printf("[DataReader] %s has no header row", name)
		return chart.EmptyDataset(name)
	}

	ds := processRows(records, name)
	log.Printf("[DataReader] %s read in %.2fms (%d columns, %d rows)",
		name, float64(time.Since(readStart).Nanoseconds())/1e6, len(ds.Columns), len(ds.Rows))
	return ds
}

// ReadXLSX reads the first sheet of an Excel workbook
func ReadXLSX(src io.Reader, name string) *chart.Dataset {
	startTime := time.Now()
	f, err := excelize.OpenReader(src)
	if err != nil {
		log.Printf("[DataReader] failed to open workbook %s: %v", name, err)
		return chart.EmptyDataset(name)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		log.Printf("[DataReader] workbook %s has no sheets", name)
		return chart.EmptyDataset(name)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		log.Printf("[DataReader] failed to read sheet %q of %s: %v", sheets[0], name, err)
		return chart.EmptyDataset(name)
	}

	// excelize returns empty slices for blank rows; drop them like the CSV path does
	records := make([][]string, 0, len(rows))
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		records = append(records, row)
	}
	if len(records) == 0 {
		return chart.EmptyDataset(name)
	}

	ds := processRows(records, name)
	log.Printf("[DataReader] sheet %q of %s read in %.2fms (%d columns, %d rows)",
		sheets[0], name, float64(time.Since(startTime).Nanoseconds())/1e6, len(ds.Columns), len(ds.Rows))
	return ds
}

// processRows keys every data record by the header names, positionally
func processRows(records [][]string, name string) *chart.Dataset {
	columns := headerColumns(records[0])

	rows := make([]chart.RawRow, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(chart.RawRow, len(columns))
		for j, cell := range record {
			if j >= len(columns) {
				break
			}
			row[columns[j]] = cell
		}
		rows = append(rows, row)
	}

	return chart.NewDataset(name, columns, rows)
}

// headerColumns trims names, names blank headers by position and suffixes
// duplicates with _1, _2 so every column stays addressable.
func headerColumns(header []string) []chart.Column {
	columns := make([]chart.Column, len(header))
	used := make(map[string]bool, len(header))

	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, utf8BOM)
		}
		h = strings.TrimSpace(h)
		if h == "" {
			h = fmt.Sprintf("column_%d", i+1)
		}

		name := h
		for n := 1; used[name]; n++ {
			name = fmt.Sprintf("%s_%d", h, n)
		}
		used[name] = true
		columns[i] = chart.Column(name)
	}
	return columns
}
