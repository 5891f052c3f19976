// Package sheet renders and parses the request and register workbooks.
package sheet

import (
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// DefaultSheetName is the name given to the single sheet of every generated workbook
const DefaultSheetName = "Register"

// Row heights of styled sheets
const (
	headerRowHeight = 24
	dataRowHeight   = 20
)

// ErrNoSheets is returned when a workbook holds no worksheet
var ErrNoSheets = errors.New("workbook has no sheets")

// Table describes one single-sheet workbook
type Table struct {
	SheetName string
	Preamble  []string // one cell per row in column A, above the header
	Headers   []string
	Widths    []float64
	Rows      [][]any
	Styled    bool // bold shaded header and bordered centred data cells
}

// Writer renders tables into xlsx bytes
type Writer struct {
	logger *zap.Logger
}

// NewWriter creates a new Writer
func NewWriter(logger *zap.Logger) *Writer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Writer{logger: logger}
}

// Build renders t and returns the serialized workbook
func (w *Writer) Build(t *Table) ([]byte, error) {
	file := excelize.NewFile()
	defer file.Close()

	sheet := t.SheetName
	if sheet == "" {
		sheet = DefaultSheetName
	}
	if err := file.SetSheetName(file.GetSheetName(0), sheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	// Preamble rows
	for i, line := range t.Preamble {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := file.SetCellValue(sheet, cell, line); err != nil {
			return nil, fmt.Errorf("failed to set preamble at row %d: %w", i+1, err)
		}
	}

	// Header row
	headerRow := len(t.Preamble) + 1
	cell, _ := excelize.CoordinatesToCellName(1, headerRow)
	headers := t.Headers
	if err := file.SetSheetRow(sheet, cell, &headers); err != nil {
		return nil, fmt.Errorf("failed to set header row: %w", err)
	}

	// Data rows
	for i, values := range t.Rows {
		row := headerRow + 1 + i
		cell, _ := excelize.CoordinatesToCellName(1, row)
		values := values
		if err := file.SetSheetRow(sheet, cell, &values); err != nil {
			return nil, fmt.Errorf("failed to set data row %d: %w", row, err)
		}
	}

	if err := w.setWidths(file, sheet, t.Widths); err != nil {
		return nil, err
	}

	if t.Styled {
		if err := w.applyStyles(file, sheet, headerRow, len(t.Headers), len(t.Rows)); err != nil {
			return nil, err
		}
	}

	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}

	w.logger.Debug("Workbook rendered",
		zap.String("sheet", sheet),
		zap.Int("preamble_rows", len(t.Preamble)),
		zap.Int("data_rows", len(t.Rows)),
		zap.Int("bytes", buf.Len()))

	return buf.Bytes(), nil
}

// setWidths applies per-column widths in character units
func (w *Writer) setWidths(file *excelize.File, sheet string, widths []float64) error {
	for i, width := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return fmt.Errorf("failed to resolve column %d: %w", i+1, err)
		}
		if err := file.SetColWidth(sheet, col, col, width); err != nil {
			return fmt.Errorf("failed to set width of column %s: %w", col, err)
		}
	}
	return nil
}

// applyStyles styles the header row and every cell of the data block, empty cells included
func (w *Writer) applyStyles(file *excelize.File, sheet string, headerRow, cols, rows int) error {
	if cols == 0 {
		return nil
	}

	headerStyle, err := file.NewStyle(headerStyleDef())
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	rowStyle, err := file.NewStyle(rowStyleDef())
	if err != nil {
		return fmt.Errorf("failed to create row style: %w", err)
	}

	first, _ := excelize.CoordinatesToCellName(1, headerRow)
	last, _ := excelize.CoordinatesToCellName(cols, headerRow)
	if err := file.SetCellStyle(sheet, first, last, headerStyle); err != nil {
		return fmt.Errorf("failed to style header row: %w", err)
	}
	if err := file.SetRowHeight(sheet, headerRow, headerRowHeight); err != nil {
		return fmt.Errorf("failed to set header height: %w", err)
	}

	if rows == 0 {
		return nil
	}

	first, _ = excelize.CoordinatesToCellName(1, headerRow+1)
	last, _ = excelize.CoordinatesToCellName(cols, headerRow+rows)
	if err := file.SetCellStyle(sheet, first, last, rowStyle); err != nil {
		return fmt.Errorf("failed to style data rows: %w", err)
	}
	for row := headerRow + 1; row <= headerRow+rows; row++ {
		if err := file.SetRowHeight(sheet, row, dataRowHeight); err != nil {
			return fmt.Errorf("failed to set height of row %d: %w", row, err)
		}
	}

	return nil
}
