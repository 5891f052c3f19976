// Package exporter turns a validated record set into a downloadable badge archive.
package exporter

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/garyjia/badge-intake/internal/archive"
	"github.com/garyjia/badge-intake/internal/layout"
	"github.com/garyjia/badge-intake/internal/metrics"
	"github.com/garyjia/badge-intake/internal/models"
	"github.com/garyjia/badge-intake/internal/naming"
	"github.com/garyjia/badge-intake/internal/notification"
	"github.com/garyjia/badge-intake/internal/sheet"
	"github.com/garyjia/badge-intake/internal/validation"
)

// Result is a finished archive
type Result struct {
	Name        string
	Data        []byte
	RecordCount int
	Entries     []string
}

// Dispatcher receives one fire-and-forget message per successful export
type Dispatcher interface {
	Dispatch(msg notification.Message)
}

// Exporter builds request/register spreadsheets and the document folders into one zip
type Exporter struct {
	sheets     *sheet.Writer
	validator  *validation.Validator
	dispatcher Dispatcher
	metrics    *metrics.Metrics
	now        func() time.Time
	logger     *zap.Logger
}

// Option configures an Exporter
type Option func(*Exporter)

// WithValidator rejects invalid record sets before any packaging starts
func WithValidator(v *validation.Validator) Option {
	return func(e *Exporter) { e.validator = v }
}

// WithDispatcher announces every successful export
func WithDispatcher(d Dispatcher) Option {
	return func(e *Exporter) { e.dispatcher = d }
}

// WithMetrics counts exports by outcome
func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Exporter) { e.metrics = m }
}

// WithClock overrides the time written to the date columns
func WithClock(now func() time.Time) Option {
	return func(e *Exporter) { e.now = now }
}

// New creates a new Exporter
func New(logger *zap.Logger, opts ...Option) *Exporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &Exporter{
		sheets: sheet.NewWriter(logger),
		now:    time.Now,
		logger: logger,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExportEmployees packages personal badge requests
func (e *Exporter) ExportEmployees(employees []*models.Employee) (*Result, error) {
	return Export(e, layout.Employees, employees)
}

// ExportVehicles packages vehicle badge requests
func (e *Exporter) ExportVehicles(vehicles []*models.Vehicle) (*Result, error) {
	return Export(e, layout.Vehicles, vehicles)
}

// Export packages records with layout l. Nothing is returned unless every step succeeds.
func Export[R models.Record](e *Exporter, l *layout.Layout[R], records []R) (*Result, error) {
	kind := string(l.Kind)

	result, err := build(e, l, records)
	if err != nil {
		outcome := metrics.OutcomeError
		var verrs validation.Errors
		if errors.As(err, &verrs) || errors.Is(err, ErrNoRecords) {
			outcome = metrics.OutcomeInvalid
		}
		e.metrics.ObserveOperation(metrics.OpExport, kind, outcome, len(records))
		return nil, err
	}

	e.metrics.ObserveOperation(metrics.OpExport, kind, metrics.OutcomeSuccess, result.RecordCount)
	e.announce(l.Kind, records[0].Company(), result.RecordCount)

	return result, nil
}

func build[R models.Record](e *Exporter, l *layout.Layout[R], records []R) (*Result, error) {
	if len(records) == 0 {
		return nil, ErrNoRecords
	}

	company := records[0].Company()
	count := len(records)
	e.logger.Info("Starting export",
		zap.String("kind", string(l.Kind)),
		zap.String("company", company),
		zap.Int("record_count", count))

	// Step 1: Validate
	if e.validator != nil {
		if err := validation.Records(e.validator, records); err != nil {
			e.logger.Info("Export rejected by validation",
				zap.String("kind", string(l.Kind)),
				zap.Error(err))
			return nil, err
		}
	}

	zw := archive.NewWriter(e.logger)

	// Step 2: Create every slot folder, populated or not
	for _, slot := range l.New().Slots() {
		if err := zw.AddFolder(naming.Folder(slot)); err != nil {
			return nil, e.abort("create folder", fmt.Errorf("%w: %w", ErrArchiveWrite, err))
		}
	}

	// Step 3: Place documents under their canonical names
	for i, r := range records {
		for _, slot := range r.Slots() {
			doc := r.Document(slot)
			if doc.IsEmpty() {
				continue
			}
			name, err := naming.ArchivePath(r, slot)
			if err != nil {
				return nil, e.abort("name document", fmt.Errorf("record %d: %w", i+1, err))
			}
			if err := zw.AddFile(name, doc.Data); err != nil {
				return nil, e.abort("add document", fmt.Errorf("%w: %w", ErrArchiveWrite, err))
			}
		}
	}

	// Step 4: Render both sheets with one timestamp
	now := e.now()
	request, err := e.sheets.Build(table(l.Request, records, now, false))
	if err != nil {
		return nil, e.abort("build request sheet", fmt.Errorf("%w: %w", ErrSheetBuild, err))
	}
	register, err := e.sheets.Build(table(l.Register, records, now, true))
	if err != nil {
		return nil, e.abort("build register sheet", fmt.Errorf("%w: %w", ErrSheetBuild, err))
	}

	// Step 5: Add the spreadsheets, named after the first record's company
	if err := zw.AddFile(l.RequestFileName(company, count), request); err != nil {
		return nil, e.abort("add request sheet", fmt.Errorf("%w: %w", ErrArchiveWrite, err))
	}
	if err := zw.AddFile(l.RegisterFileName(company, count), register); err != nil {
		return nil, e.abort("add register sheet", fmt.Errorf("%w: %w", ErrArchiveWrite, err))
	}

	// Step 6: Serialize
	data, err := zw.Close()
	if err != nil {
		return nil, e.abort("serialize archive", fmt.Errorf("%w: %w", ErrArchiveWrite, err))
	}

	result := &Result{
		Name:        l.ArchiveName(company, count),
		Data:        data,
		RecordCount: count,
		Entries:     zw.Entries(),
	}

	e.logger.Info("Export completed",
		zap.String("archive_name", result.Name),
		zap.Int("record_count", result.RecordCount),
		zap.Int("entry_count", len(result.Entries)),
		zap.Int("bytes", len(result.Data)))

	return result, nil
}

func table[R any](s layout.Sheet[R], records []R, now time.Time, styled bool) *sheet.Table {
	rows := make([][]any, len(records))
	for i, r := range records {
		rows[i] = s.Row(r, layout.RowContext{Index: i, Now: now})
	}
	return &sheet.Table{
		SheetName: layout.SheetName,
		Preamble:  s.Preamble,
		Headers:   s.Headers(),
		Widths:    s.Widths(),
		Rows:      rows,
		Styled:    styled,
	}
}

func (e *Exporter) abort(step string, err error) error {
	e.logger.Error("Export aborted",
		zap.String("step", step),
		zap.Error(err))
	return err
}

// announce sends "New employee request submitted by AcmeCo for 2 employee(s)."
func (e *Exporter) announce(kind models.Kind, company string, count int) {
	if e.dispatcher == nil {
		return
	}
	e.dispatcher.Dispatch(notification.Message{
		Text:        fmt.Sprintf("New %s request submitted by %s for %d %s(s).", kind, company, count, kind),
		RequestType: kind.RequestType(),
		Timestamp:   e.now(),
	})
}
