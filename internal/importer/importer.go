// Package importer rebuilds a record set from an archive produced by the exporter.
package importer

import (
	"errors"
	"fmt"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"

	"github.com/garyjia/badge-intake/internal/archive"
	"github.com/garyjia/badge-intake/internal/layout"
	"github.com/garyjia/badge-intake/internal/metrics"
	"github.com/garyjia/badge-intake/internal/models"
	"github.com/garyjia/badge-intake/internal/naming"
	"github.com/garyjia/badge-intake/internal/sheet"
)

// Result is the materialized record set plus the gaps met while rebuilding it
type Result[R models.Record] struct {
	Records []R `json:"records"`

	// MissingDocuments counts required slots left empty because the archive
	// had no file under the canonical name
	MissingDocuments int `json:"missingDocuments"`

	// MissingRegisterRows counts records with no aligned register row
	MissingRegisterRows int `json:"missingRegisterRows"`
}

// Importer parses request/register spreadsheets and re-attaches documents
type Importer struct {
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// Option configures an Importer
type Option func(*Importer)

// WithMetrics counts imports by outcome
func WithMetrics(m *metrics.Metrics) Option {
	return func(im *Importer) { im.metrics = m }
}

// New creates a new Importer
func New(logger *zap.Logger, opts ...Option) *Importer {
	if logger == nil {
		logger = zap.NewNop()
	}
	im := &Importer{logger: logger}
	for _, opt := range opts {
		opt(im)
	}
	return im
}

// ImportEmployees rebuilds personal badge requests from an archive
func (im *Importer) ImportEmployees(filename string, data []byte) (*Result[*models.Employee], error) {
	return Import(im, layout.Employees, filename, data)
}

// ImportVehicles rebuilds vehicle badge requests from an archive
func (im *Importer) ImportVehicles(filename string, data []byte) (*Result[*models.Vehicle], error) {
	return Import(im, layout.Vehicles, filename, data)
}

// Import parses the archive named filename with layout l. Either the whole
// record set is returned or an error and no records.
func Import[R models.Record](im *Importer, l *layout.Layout[R], filename string, data []byte) (*Result[R], error) {
	result, err := parse(im, l, filename, data)
	if err != nil {
		im.logger.Warn("Import rejected",
			zap.String("kind", string(l.Kind)),
			zap.String("filename", filename),
			zap.Error(err))
		im.metrics.ObserveOperation(metrics.OpImport, string(l.Kind), metrics.OutcomeInvalid, 0)
		return nil, err
	}

	im.metrics.ObserveOperation(metrics.OpImport, string(l.Kind), metrics.OutcomeSuccess, len(result.Records))
	im.logger.Info("Import completed",
		zap.String("kind", string(l.Kind)),
		zap.String("filename", filename),
		zap.Int("record_count", len(result.Records)),
		zap.Int("missing_documents", result.MissingDocuments),
		zap.Int("missing_register_rows", result.MissingRegisterRows))

	return result, nil
}

func parse[R models.Record](im *Importer, l *layout.Layout[R], filename string, data []byte) (*Result[R], error) {
	// Step 1: Reject anything that is not a zip before parsing
	if !archive.HasArchiveExt(filename) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedExtension, filename)
	}

	zr, err := archive.NewReader(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArchive, err)
	}

	// Step 2: Locate and read the request sheet by suffix
	requestName, ok := zr.FindSuffix(layout.RequestSuffix)
	if !ok {
		return nil, ErrNoSpreadsheet
	}
	requestRows, err := readDataRows(zr, requestName, l.Request.DataOffset())
	if err != nil {
		return nil, err
	}

	// Step 3: Register sheet, only when it carries fields the request sheet lacks
	var registerRows [][]string
	if l.Register.Recovers() {
		registerName, ok := zr.FindSuffix(layout.RegisterSuffix)
		if !ok {
			return nil, ErrNoRegister
		}
		registerRows, err = readDataRows(zr, registerName, l.Register.DataOffset())
		if err != nil {
			return nil, err
		}
	}

	if len(requestRows) == 0 {
		return nil, ErrNoData
	}

	// Step 4: Rebuild records positionally, then re-attach documents
	result := &Result[R]{Records: make([]R, 0, len(requestRows))}
	for i, row := range requestRows {
		r := l.New()
		l.Request.Apply(r, row)

		if l.Register.Recovers() {
			if i < len(registerRows) {
				l.Register.Apply(r, registerRows[i])
			} else {
				result.MissingRegisterRows++
				im.logger.Warn("No register row for record",
					zap.Int("row", i+1))
			}
		}

		result.MissingDocuments += im.attachDocuments(zr, r, i)
		result.Records = append(result.Records, r)
	}

	return result, nil
}

// readDataRows returns the non-blank rows after the preamble and header block
func readDataRows(zr *archive.Reader, name string, offset int) ([][]string, error) {
	content, err := zr.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidSpreadsheet, name, err)
	}

	rows, err := sheet.ReadRows(content)
	if err != nil {
		if errors.Is(err, sheet.ErrNoSheets) {
			return nil, fmt.Errorf("%w: %s", ErrNoSpreadsheet, name)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidSpreadsheet, name, err)
	}

	if len(rows) <= offset {
		return nil, nil
	}

	var data [][]string
	for _, row := range rows[offset:] {
		if sheet.IsBlank(row) {
			continue
		}
		data = append(data, row)
	}
	return data, nil
}

// attachDocuments looks up every slot under its canonical name and returns the
// number of required slots that stayed empty
func (im *Importer) attachDocuments(zr *archive.Reader, r models.Record, index int) int {
	missing := 0
	for _, slot := range r.Slots() {
		path, err := naming.ArchivePath(r, slot)
		if err != nil || !zr.Has(path) {
			if isRequired(r, slot) {
				missing++
				im.logger.Warn("Required document not found in archive",
					zap.Int("row", index+1),
					zap.String("slot", string(slot)),
					zap.String("path", path))
			}
			continue
		}

		content, err := zr.ReadFile(path)
		if err != nil {
			missing++
			im.logger.Warn("Failed to read document from archive",
				zap.String("path", path),
				zap.Error(err))
			continue
		}

		name, _ := naming.DocumentName(r, slot)
		doc := models.NewDocument(name, mimetype.Detect(content).String(), content)
		if err := r.SetDocument(slot, doc); err != nil {
			im.logger.Warn("Failed to attach document",
				zap.String("slot", string(slot)),
				zap.Error(err))
		}
	}
	return missing
}

func isRequired(r models.Record, slot models.Slot) bool {
	for _, s := range r.RequiredSlots() {
		if s == slot {
			return true
		}
	}
	return false
}
