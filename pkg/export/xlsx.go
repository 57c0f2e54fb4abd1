package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// XLSXExporter renders grids into xlsx workbooks and parses uploads.
type XLSXExporter struct{}

// NewXLSXExporter builds an xlsx exporter.
func NewXLSXExporter() *XLSXExporter {
	return &XLSXExporter{}
}

// Render writes the grid to the first sheet of a new workbook.
func (e *XLSXExporter) Render(grid Grid) ([]byte, error) {
	if len(grid.Headers) == 0 {
		return nil, fmt.Errorf("xlsx requires at least one header")
	}
	f := excelize.NewFile()
	defer f.Close() //nolint:errcheck

	sheet := f.GetSheetName(0)
	if err := writeRow(f, sheet, 1, grid.Headers); err != nil {
		return nil, err
	}
	for i, row := range grid.Rows {
		if err := writeRow(f, sheet, i+2, row); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("render xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

// ParseXLSX reads the first worksheet of an xlsx file into a grid with
// the first row as the header. Short rows are padded to the header
// width, matching the sheet-to-grid conversion of the dashboard.
func ParseXLSX(data []byte) (Grid, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return Grid{}, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close() //nolint:errcheck

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return Grid{}, fmt.Errorf("read xlsx rows: %w", err)
	}
	if len(rows) == 0 {
		return Grid{}, fmt.Errorf("xlsx has no rows")
	}

	grid := Grid{Headers: rows[0]}
	for _, row := range rows[1:] {
		padded := make([]string, len(grid.Headers))
		copy(padded, row)
		grid.Rows = append(grid.Rows, padded)
	}
	return grid, nil
}

func writeRow(f *excelize.File, sheet string, rowIdx int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowIdx)
	if err != nil {
		return fmt.Errorf("cell name: %w", err)
	}
	converted := make([]interface{}, len(values))
	for i, v := range values {
		converted[i] = v
	}
	if err := f.SetSheetRow(sheet, cell, &converted); err != nil {
		return fmt.Errorf("write xlsx row %d: %w", rowIdx, err)
	}
	return nil
}
