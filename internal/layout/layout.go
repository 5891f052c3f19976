// Package layout holds the ordered column schemas of the request and register sheets.
// The same column list drives export (Row) and import (Apply), so the positional
// contract with the downstream access-control system lives in exactly one place.
package layout

import (
	"fmt"
	"time"

	"github.com/garyjia/badge-intake/internal/models"
)

// DateFormat is the effective-period format required by the request template
const DateFormat = "2006/01/02 15:04:05"

// Spreadsheet and archive naming
const (
	SheetName      = "Register"
	RequestSuffix  = "request.xlsx"
	RegisterSuffix = "register.xlsx"
	ArchiveExt     = ".zip"

	// column width = header length + widthPadding
	widthPadding = 10
)

// RowContext carries the values a column may compute instead of copying from the record
type RowContext struct {
	Index int // 0-based position of the record within the export
	Now   time.Time
}

// Column is one spreadsheet column bound to a record type
type Column[R any] struct {
	Header string

	// Value produces the cell written at export
	Value func(r R, rc RowContext) any

	// Assign restores the record field at import; nil means the column is computed
	// at export time and carries nothing back
	Assign func(r R, cell string)
}

// Sheet is an ordered column list, optionally preceded by a fixed preamble block
type Sheet[R any] struct {
	Preamble []string
	Columns  []Column[R]
}

// Headers returns the header labels in column order
func (s Sheet[R]) Headers() []string {
	headers := make([]string, len(s.Columns))
	for i, col := range s.Columns {
		headers[i] = col.Header
	}
	return headers
}

// Widths returns the column widths derived from header length
func (s Sheet[R]) Widths() []float64 {
	widths := make([]float64, len(s.Columns))
	for i, col := range s.Columns {
		widths[i] = float64(len(col.Header) + widthPadding)
	}
	return widths
}

// HeaderRow is the 1-based sheet row holding the header labels
func (s Sheet[R]) HeaderRow() int {
	return len(s.Preamble) + 1
}

// DataOffset is the number of rows before the first data row
func (s Sheet[R]) DataOffset() int {
	return len(s.Preamble) + 1
}

// Row renders r as one data row
func (s Sheet[R]) Row(r R, rc RowContext) []any {
	row := make([]any, len(s.Columns))
	for i, col := range s.Columns {
		row[i] = col.Value(r, rc)
	}
	return row
}

// Apply copies positional cells back onto r. Missing trailing cells read as empty.
func (s Sheet[R]) Apply(r R, cells []string) {
	for i, col := range s.Columns {
		if col.Assign == nil {
			continue
		}
		col.Assign(r, cellAt(cells, i))
	}
}

// Recovers reports whether any column restores a record field at import
func (s Sheet[R]) Recovers() bool {
	for _, col := range s.Columns {
		if col.Assign != nil {
			return true
		}
	}
	return false
}

// Layout binds the request and register sheets of one record kind
type Layout[R models.Record] struct {
	Kind     models.Kind
	New      func() R
	Request  Sheet[R]
	Register Sheet[R]
}

// ArchiveName names the downloadable archive: "<company> - <n> <kind>s register.zip"
func (l *Layout[R]) ArchiveName(company string, count int) string {
	return fmt.Sprintf("%s - %d %s register%s", company, count, l.Kind.Plural(), ArchiveExt)
}

// RequestFileName names the request spreadsheet inside the archive
func (l *Layout[R]) RequestFileName(company string, count int) string {
	return fmt.Sprintf("%s - %d %s %s", company, count, l.Kind.Plural(), RequestSuffix)
}

// RegisterFileName names the register spreadsheet inside the archive
func (l *Layout[R]) RegisterFileName(company string, count int) string {
	return fmt.Sprintf("%s - %d %s %s", company, count, l.Kind.Plural(), RegisterSuffix)
}

func cellAt(cells []string, i int) string {
	if i < len(cells) {
		return cells[i]
	}
	return ""
}

func field[R any](header string, get func(R) string, set func(R, string)) Column[R] {
	return Column[R]{
		Header: header,
		Value:  func(r R, _ RowContext) any { return get(r) },
		Assign: set,
	}
}

func computed[R any](header string, get func(R) string) Column[R] {
	return Column[R]{
		Header: header,
		Value:  func(r R, _ RowContext) any { return get(r) },
	}
}

func constant[R any](header, value string) Column[R] {
	return Column[R]{
		Header: header,
		Value:  func(R, RowContext) any { return value },
	}
}

func timestamp[R any](header string) Column[R] {
	return Column[R]{
		Header: header,
		Value:  func(_ R, rc RowContext) any { return rc.Now.Format(DateFormat) },
	}
}

func sequence[R any](header string) Column[R] {
	return Column[R]{
		Header: header,
		Value:  func(_ R, rc RowContext) any { return rc.Index + 1 },
	}
}
