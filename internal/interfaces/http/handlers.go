package http

import (
	"context"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/garyjia/badge-intake/internal/exporter"
	"github.com/garyjia/badge-intake/internal/importer"
	"github.com/garyjia/badge-intake/internal/models"
	"github.com/garyjia/badge-intake/internal/notification"
	"github.com/garyjia/badge-intake/internal/rename"
	"github.com/garyjia/badge-intake/internal/validation"
	"github.com/garyjia/badge-intake/pkg/utils"
)

const (
	zipContentType = "application/zip"

	// maxLogMessageRunes caps relayed log text
	maxLogMessageRunes = 4000

	headerRenamed = "X-Renamed-Count"
	headerSkipped = "X-Skipped-Count"
)

// ExportService builds badge request archives
type ExportService interface {
	ExportEmployees(employees []*models.Employee) (*exporter.Result, error)
	ExportVehicles(vehicles []*models.Vehicle) (*exporter.Result, error)
}

// ImportService rebuilds records from badge request archives
type ImportService interface {
	ImportEmployees(filename string, data []byte) (*importer.Result[*models.Employee], error)
	ImportVehicles(filename string, data []byte) (*importer.Result[*models.Vehicle], error)
}

// RenameService packages renamed photos
type RenameService interface {
	Package(images []rename.Image, mapping rename.Mapping) (*rename.Result, error)
}

// Relay forwards a log message to the notification channel
type Relay interface {
	Send(ctx context.Context, msg notification.Message) error
}

// Services bundles the engines served over HTTP
type Services struct {
	Exporter ExportService
	Importer ImportService
	Renamer  RenameService
	Relay    Relay
}

// Handlers contains all HTTP request handlers
type Handlers struct {
	services Services
	version  string
	logger   *zap.Logger
}

// NewHandlers creates a new Handlers instance
func NewHandlers(services Services, version string, logger *zap.Logger) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{
		services: services,
		version:  version,
		logger:   logger,
	}
}

// Response represents a standard JSON response
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

// EmployeeExportRequest is the body of POST /api/employees/export
type EmployeeExportRequest struct {
	Employees []*models.Employee `json:"employees"`
}

// VehicleExportRequest is the body of POST /api/vehicles/export
type VehicleExportRequest struct {
	Vehicles []*models.Vehicle `json:"vehicles"`
}

// LogRequest is the body of POST /api/log
type LogRequest struct {
	Message     string `json:"message"`
	RequestType string `json:"requestType,omitempty"`
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().Format(time.RFC3339),
		Version:   h.version,
	})
}

// ExportEmployees handles POST /api/employees/export
func (h *Handlers) ExportEmployees(c *gin.Context) {
	var req EmployeeExportRequest
	if !h.bindJSON(c, &req) {
		return
	}
	result, err := h.services.Exporter.ExportEmployees(req.Employees)
	h.writeArchive(c, result, err)
}

// ExportVehicles handles POST /api/vehicles/export
func (h *Handlers) ExportVehicles(c *gin.Context) {
	var req VehicleExportRequest
	if !h.bindJSON(c, &req) {
		return
	}
	result, err := h.services.Exporter.ExportVehicles(req.Vehicles)
	h.writeArchive(c, result, err)
}

// ImportEmployees handles POST /api/employees/import
func (h *Handlers) ImportEmployees(c *gin.Context) {
	name, data, ok := h.readUpload(c, "archive")
	if !ok {
		return
	}
	result, err := h.services.Importer.ImportEmployees(name, data)
	h.writeImport(c, result, err)
}

// ImportVehicles handles POST /api/vehicles/import
func (h *Handlers) ImportVehicles(c *gin.Context) {
	name, data, ok := h.readUpload(c, "archive")
	if !ok {
		return
	}
	result, err := h.services.Importer.ImportVehicles(name, data)
	h.writeImport(c, result, err)
}

// RenameImages handles POST /api/rename
func (h *Handlers) RenameImages(c *gin.Context) {
	_, mappingData, ok := h.readUpload(c, "mapping")
	if !ok {
		return
	}
	mapping, err := rename.ParseMapping(mappingData)
	if err != nil {
		h.logger.Warn("Invalid mapping spreadsheet", zap.Error(err))
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		h.uploadError(c, err)
		return
	}
	images := make([]rename.Image, 0, len(form.File["images"]))
	for _, fh := range form.File["images"] {
		data, err := readFileHeader(fh)
		if err != nil {
			h.uploadError(c, err)
			return
		}
		images = append(images, rename.Image{
			OriginalName: fh.Filename,
			ContentType:  fh.Header.Get("Content-Type"),
			Data:         data,
		})
	}

	result, err := h.services.Renamer.Package(images, mapping)
	if err != nil {
		h.logger.Error("Failed to package renamed images", zap.Error(err))
		c.JSON(http.StatusInternalServerError, Response{Success: false, Error: "failed to package images"})
		return
	}

	c.Header(headerRenamed, strconv.Itoa(len(result.Renamed)))
	c.Header(headerSkipped, strconv.Itoa(len(result.Skipped)))
	h.sendZip(c, result.Name, result.Data)
}

// RelayLog handles POST /api/log
func (h *Handlers) RelayLog(c *gin.Context) {
	var req LogRequest
	if !h.bindJSON(c, &req) {
		return
	}
	text := utils.Truncate(utils.SanitizeText(req.Message), maxLogMessageRunes)
	if text == "" {
		c.JSON(http.StatusBadRequest, Response{Success: false, Error: notification.ErrEmptyMessage.Error()})
		return
	}

	msg := notification.Message{
		Text:        text,
		RequestType: utils.SanitizeText(req.RequestType),
		Timestamp:   time.Now(),
	}
	if err := h.services.Relay.Send(c.Request.Context(), msg); err != nil {
		h.logger.Error("Failed to relay log message", zap.Error(err))
		c.JSON(http.StatusInternalServerError, Response{Success: false, Error: "failed to send notification"})
		return
	}

	c.JSON(http.StatusOK, Response{Success: true})
}

func (h *Handlers) bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		h.logger.Warn("Invalid request body",
			zap.String("path", c.Request.URL.Path),
			zap.Error(err))
		c.JSON(statusForBodyError(err), Response{Success: false, Error: "invalid request body"})
		return false
	}
	return true
}

func (h *Handlers) readUpload(c *gin.Context, field string) (string, []byte, bool) {
	fh, err := c.FormFile(field)
	if err != nil {
		h.uploadError(c, err)
		return "", nil, false
	}
	data, err := readFileHeader(fh)
	if err != nil {
		h.uploadError(c, err)
		return "", nil, false
	}
	return fh.Filename, data, true
}

func (h *Handlers) uploadError(c *gin.Context, err error) {
	h.logger.Warn("Invalid upload",
		zap.String("path", c.Request.URL.Path),
		zap.Error(err))
	c.JSON(statusForBodyError(err), Response{Success: false, Error: "invalid upload"})
}

func (h *Handlers) writeArchive(c *gin.Context, result *exporter.Result, err error) {
	if err != nil {
		var verrs validation.Errors
		switch {
		case errors.As(err, &verrs):
			c.JSON(http.StatusUnprocessableEntity, Response{Success: false, Data: verrs, Error: "validation failed"})
		case errors.Is(err, exporter.ErrNoRecords):
			c.JSON(http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		default:
			h.logger.Error("Export failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, Response{Success: false, Error: "export failed"})
		}
		return
	}
	h.sendZip(c, result.Name, result.Data)
}

func (h *Handlers) writeImport(c *gin.Context, result interface{}, err error) {
	if err != nil {
		if isImportInputError(err) {
			c.JSON(http.StatusBadRequest, Response{Success: false, Error: err.Error()})
			return
		}
		h.logger.Error("Import failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, Response{Success: false, Error: "import failed"})
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: result})
}

func (h *Handlers) sendZip(c *gin.Context, name string, data []byte) {
	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	c.Data(http.StatusOK, zipContentType, data)
}

func isImportInputError(err error) bool {
	for _, target := range []error{
		importer.ErrUnsupportedExtension,
		importer.ErrInvalidArchive,
		importer.ErrNoSpreadsheet,
		importer.ErrNoRegister,
		importer.ErrInvalidSpreadsheet,
		importer.ErrNoData,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func statusForBodyError(err error) int {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusBadRequest
}

func readFileHeader(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
