package sheet

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ReadRows parses the first worksheet of an xlsx payload into raw cell strings.
// Trailing empty cells of a row are omitted, as excelize reports them.
func ReadRows(data []byte) ([][]string, error) {
	file, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer file.Close()

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoSheets
	}

	rows, err := file.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	return rows, nil
}

// IsBlank reports whether every cell of row is empty
func IsBlank(row []string) bool {
	for _, cell := range row {
		if cell != "" {
			return false
		}
	}
	return true
}
