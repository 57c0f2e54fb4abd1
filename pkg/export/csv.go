package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// Grid defines tabular export content: a header row plus string cells.
type Grid struct {
	Headers []string
	Rows    [][]string
}

// CSVExporter renders grids into CSV bytes.
type CSVExporter struct{}

// NewCSVExporter builds a CSV exporter.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// Render produces CSV encoded bytes for the grid.
func (e *CSVExporter) Render(grid Grid) ([]byte, error) {
	if len(grid.Headers) == 0 {
		return nil, fmt.Errorf("csv requires at least one header")
	}
	buf := &bytes.Buffer{}
	writer := csv.NewWriter(buf)
	if err := writer.Write(grid.Headers); err != nil {
		return nil, fmt.Errorf("write csv headers: %w", err)
	}
	for _, row := range grid.Rows {
		record := make([]string, len(grid.Headers))
		copy(record, row)
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

// ParseCSV reads CSV bytes into a grid, treating the first row as the
// header. Short rows are padded to the header width.
func ParseCSV(data []byte) (Grid, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return Grid{}, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return Grid{}, fmt.Errorf("csv has no rows")
	}
	grid := Grid{Headers: records[0]}
	for _, row := range records[1:] {
		padded := make([]string, len(grid.Headers))
		copy(padded, row)
		grid.Rows = append(grid.Rows, padded)
	}
	return grid, nil
}
