// Package rename batch-renames badge photos against a spreadsheet name mapping.
package rename

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"

	"github.com/garyjia/badge-intake/internal/archive"
	"github.com/garyjia/badge-intake/internal/metrics"
	"github.com/garyjia/badge-intake/internal/naming"
	"github.com/garyjia/badge-intake/internal/sheet"
)

// Mapping spreadsheet headers
const (
	HeaderBadge     = "HFYC Number"
	HeaderFirstName = "First Name"
	HeaderLastName  = "Last Name"
)

const (
	archivePrefix = "renamed_images"
	metricsKind   = "image"
)

// identifierPattern finds the badge reference embedded in an uploaded file name
var identifierPattern = regexp.MustCompile(`HFYC-(\d+)`)

// ErrMissingColumn is returned when the mapping header lacks one of the expected labels
var ErrMissingColumn = errors.New("mapping spreadsheet is missing a required column")

// Mapping maps a badge reference such as "HFYC-0007" to "First+Last"
type Mapping map[string]string

// Image is one uploaded photo
type Image struct {
	OriginalName string
	NewName      string // empty when the image was not renamed
	ContentType  string
	Data         []byte
}

// Renamed reports whether a mapping entry matched the image
func (img Image) Renamed() bool {
	return img.NewName != ""
}

// ParseMapping reads the first sheet of an xlsx payload. The first row is the
// header; rows without a badge reference are ignored.
func ParseMapping(data []byte) (Mapping, error) {
	rows, err := sheet.ReadRows(data)
	if err != nil {
		return nil, fmt.Errorf("failed to read mapping spreadsheet: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, HeaderBadge)
	}

	columns := make(map[string]int, len(rows[0]))
	for i, header := range rows[0] {
		columns[strings.TrimSpace(header)] = i
	}
	for _, required := range []string{HeaderBadge, HeaderFirstName, HeaderLastName} {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, required)
		}
	}

	mapping := make(Mapping, len(rows)-1)
	for _, row := range rows[1:] {
		id := strings.TrimSpace(cell(row, columns[HeaderBadge]))
		if id == "" {
			continue
		}
		mapping[id] = cell(row, columns[HeaderFirstName]) + "+" + cell(row, columns[HeaderLastName])
	}
	return mapping, nil
}

// Rename returns a copy of images where every file name carrying a mapped
// badge reference gets NewName "<First+Last>_HFYC<digits>.jpg". Unmatched images
// are returned unchanged.
func Rename(images []Image, mapping Mapping) []Image {
	out := make([]Image, len(images))
	for i, img := range images {
		out[i] = img
		m := identifierPattern.FindStringSubmatch(img.OriginalName)
		if m == nil {
			continue
		}
		name, ok := mapping[m[0]]
		if !ok {
			continue
		}
		out[i].NewName = fmt.Sprintf("%s_%s%s", name, naming.BadgeNumber(m[1]), naming.DocumentExt)
	}
	return out
}

// Result is the packaged output of one rename run
type Result struct {
	Name    string
	Data    []byte
	Renamed []string
	Skipped []string // original names left out of the archive
}

// Renamer packages renamed images into a zip
type Renamer struct {
	metrics *metrics.Metrics
	now     func() time.Time
	logger  *zap.Logger
}

// NewRenamer creates a new Renamer
func NewRenamer(logger *zap.Logger, m *metrics.Metrics) *Renamer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Renamer{metrics: m, now: time.Now, logger: logger}
}

// Package renames images and zips only the renamed ones at the archive root.
// Images without a mapped badge reference are left out of the archive. When
// several images map to the same name the last one is kept.
func (r *Renamer) Package(images []Image, mapping Mapping) (*Result, error) {
	renamed := Rename(images, mapping)
	result := &Result{Name: fmt.Sprintf("%s%d%s", archivePrefix, r.now().UnixMilli(), archive.Ext)}

	last := make(map[string]int, len(renamed))
	for i, img := range renamed {
		if img.Renamed() {
			last[img.NewName] = i
		}
	}

	zw := archive.NewWriter(r.logger)
	for i, img := range renamed {
		if !img.Renamed() {
			result.Skipped = append(result.Skipped, img.OriginalName)
			continue
		}
		if last[img.NewName] != i {
			r.logger.Warn("Image replaced by a later upload with the same name",
				zap.String("original", img.OriginalName),
				zap.String("renamed", img.NewName))
			result.Skipped = append(result.Skipped, img.OriginalName)
			continue
		}
		if err := zw.AddFile(img.NewName, img.Data); err != nil {
			r.metrics.ObserveOperation(metrics.OpRename, metricsKind, metrics.OutcomeError, 0)
			return nil, fmt.Errorf("failed to add %s: %w", img.NewName, err)
		}
		result.Renamed = append(result.Renamed, img.NewName)
		r.logger.Debug("Renamed image",
			zap.String("original", img.OriginalName),
			zap.String("renamed", img.NewName),
			zap.String("content_type", contentType(img)))
	}

	data, err := zw.Close()
	if err != nil {
		r.metrics.ObserveOperation(metrics.OpRename, metricsKind, metrics.OutcomeError, 0)
		return nil, fmt.Errorf("failed to finalize archive: %w", err)
	}
	result.Data = data

	if len(result.Skipped) > 0 {
		r.logger.Warn("Images left out of the renamed archive",
			zap.Strings("skipped", result.Skipped))
	}
	r.logger.Info("Rename completed",
		zap.String("archive_name", result.Name),
		zap.Int("renamed", len(result.Renamed)),
		zap.Int("skipped", len(result.Skipped)))
	r.metrics.ObserveOperation(metrics.OpRename, metricsKind, metrics.OutcomeSuccess, len(result.Renamed))

	return result, nil
}

func contentType(img Image) string {
	if img.ContentType != "" {
		return img.ContentType
	}
	return mimetype.Detect(img.Data).String()
}

func cell(row []string, i int) string {
	if i < len(row) {
		return strings.TrimSpace(row[i])
	}
	return ""
}
