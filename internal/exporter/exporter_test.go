package exporter

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/garyjia/badge-intake/internal/archive"
	"github.com/garyjia/badge-intake/internal/layout"
	"github.com/garyjia/badge-intake/internal/metrics"
	"github.com/garyjia/badge-intake/internal/models"
	"github.com/garyjia/badge-intake/internal/notification"
	"github.com/garyjia/badge-intake/internal/sheet"
	"github.com/garyjia/badge-intake/internal/validation"
)

var (
	photoBytes = []byte("\xff\xd8\xff\xe0\x00\x10JFIF\x00ali-photo")
	idBytes    = []byte("\xff\xd8\xff\xe0\x00\x10JFIF\x00ali-id")
	fixedNow   = time.Date(2025, 3, 9, 14, 30, 5, 0, time.UTC)
)

// mockDispatcher records dispatched messages
type mockDispatcher struct {
	mu       sync.Mutex
	messages []notification.Message
}

func (m *mockDispatcher) Dispatch(msg notification.Message) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, msg)
}

func aliHassan() *models.Employee {
	return &models.Employee{
		ID:         "0007",
		FirstName:  "Ali",
		LastName:   "Hassan",
		Contractor: "AcmeCo",
		Photo:      models.NewDocument("IMG_1.jpg", "image/jpeg", photoBytes),
		IDDocument: models.NewDocument("scan.jpg", "image/jpeg", idBytes),
	}
}

func completeEmployee() *models.Employee {
	e := aliHassan()
	e.Position = "Driller"
	e.IDDocumentNumber = "A1234567"
	e.Nationality = "Iraqi"
	e.AssociatedContractNumber = "PC-2024-001"
	e.ContractHoldingDepartment = "Drilling"
	e.EALetterNumber = "EA-17"
	e.NumberInEAList = "3"
	return e
}

func newTestExporter(opts ...Option) *Exporter {
	opts = append([]Option{WithClock(func() time.Time { return fixedNow })}, opts...)
	return New(zap.NewNop(), opts...)
}

func readSheet(t *testing.T, r *archive.Reader, suffix string) [][]string {
	t.Helper()
	name, ok := r.FindSuffix(suffix)
	require.True(t, ok, "no %s in archive", suffix)
	data, err := r.ReadFile(name)
	require.NoError(t, err)
	rows, err := sheet.ReadRows(data)
	require.NoError(t, err)
	return rows
}

// cell reads column i, tolerating the trailing blanks excelize drops
func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

func TestExporter_ExportEmployees(t *testing.T) {
	e := newTestExporter()

	result, err := e.ExportEmployees([]*models.Employee{aliHassan()})
	require.NoError(t, err)
	require.NotNil(t, result)

	r, err := archive.NewReader(result.Data)
	require.NoError(t, err)

	t.Run("archive is named after company and count", func(t *testing.T) {
		assert.Equal(t, "AcmeCo - 1 employees register.zip", result.Name)
		assert.Equal(t, 1, result.RecordCount)
	})

	t.Run("documents land under canonical names", func(t *testing.T) {
		photo, err := r.ReadFile("Photos/Ali+Hassan_HFYC0007.jpg")
		require.NoError(t, err)
		assert.Equal(t, photoBytes, photo)

		id, err := r.ReadFile("ID Documents/HFYC0007-ID Document.jpg")
		require.NoError(t, err)
		assert.Equal(t, idBytes, id)
	})

	t.Run("every folder exists even when empty", func(t *testing.T) {
		for _, folder := range []string{"Photos/", "ID Documents/", "Driving Licences/", "MOI Cards/"} {
			assert.Contains(t, result.Entries, folder)
		}
		for _, name := range r.Names() {
			assert.False(t, strings.HasPrefix(name, "Driving Licences/"), name)
			assert.False(t, strings.HasPrefix(name, "MOI Cards/"), name)
		}
	})

	t.Run("request sheet has preamble, header and badge number", func(t *testing.T) {
		rows := readSheet(t, r, layout.RequestSuffix)
		offset := layout.Employees.Request.DataOffset()

		require.Len(t, rows, offset+1)
		assert.Equal(t, layout.Employees.Request.Headers(), rows[offset-1])

		data := rows[offset]
		assert.Equal(t, "HFYC0007", data[0])
		assert.Equal(t, "Ali", data[1])
		assert.Equal(t, "Hassan", data[2])
		assert.Equal(t, "HALFAYA/Contractor/AcmeCo", data[3])
		assert.Equal(t, "2025/03/09 14:30:05", data[4])
		assert.Equal(t, "2025/03/09 14:30:05", data[6])
		assert.Equal(t, "Basic Person", data[7])
	})

	t.Run("register sheet has the sequence and formatted badge", func(t *testing.T) {
		rows := readSheet(t, r, layout.RegisterSuffix)

		require.Len(t, rows, 2)
		assert.Equal(t, layout.Employees.Register.Headers(), rows[0])
		assert.Equal(t, "1", rows[1][0])
		assert.Equal(t, "HFYC-0007", rows[1][5])
	})

	t.Run("spreadsheet file names", func(t *testing.T) {
		assert.True(t, r.Has("AcmeCo - 1 employees request.xlsx"))
		assert.True(t, r.Has("AcmeCo - 1 employees register.xlsx"))
	})
}

func TestExporter_RowsAreIndexedPositionally(t *testing.T) {
	first, second := aliHassan(), aliHassan()
	second.ID = "0008"
	second.FirstName = "Sara"

	result, err := newTestExporter().ExportEmployees([]*models.Employee{first, second})
	require.NoError(t, err)

	r, err := archive.NewReader(result.Data)
	require.NoError(t, err)

	rows := readSheet(t, r, layout.RegisterSuffix)
	require.Len(t, rows, 3)
	assert.Equal(t, "1", rows[1][0])
	assert.Equal(t, "2", rows[2][0])
	assert.Equal(t, "Sara", rows[2][1])
	assert.Equal(t, "AcmeCo - 2 employees register.zip", result.Name)
}

func TestExporter_ExportVehicles(t *testing.T) {
	v := &models.Vehicle{
		PlateNumber:     "12345-BSR",
		Make:            "Toyota",
		Model:           "Hilux",
		Contractor:      "AcmeCo",
		WakalaNumber:    "W-5",
		SoftskinArmored: models.Armored,
		RelatedPersons:  []string{"HFYC0001", "HFYC0002"},
		Photo:           models.NewDocument("car.jpg", "image/jpeg", photoBytes),
		Senewiyah:       models.NewDocument("sen.jpg", "image/jpeg", idBytes),
	}

	result, err := newTestExporter().ExportVehicles([]*models.Vehicle{v})
	require.NoError(t, err)

	r, err := archive.NewReader(result.Data)
	require.NoError(t, err)

	assert.Equal(t, "AcmeCo - 1 vehicles register.zip", result.Name)
	assert.True(t, r.Has("Photos/12345-BSR.jpg"))
	assert.True(t, r.Has("Senewiyahs/Toyota+Hilux_12345-BSR.jpg"))
	assert.Contains(t, result.Entries, "Wakalas/")
	assert.Contains(t, result.Entries, "Armored Vehicle Certificates/")

	request := readSheet(t, r, layout.RequestSuffix)
	data := request[layout.Vehicles.Request.DataOffset()]
	assert.Equal(t, "12345-BSR", data[0])
	assert.Equal(t, "HFYC0001,HFYC0002", data[12])

	register := readSheet(t, r, layout.RegisterSuffix)
	require.Len(t, register, 2)
	assert.Len(t, register[0], 33)
	assert.Equal(t, "Armored", register[1][6])
	assert.Equal(t, "W-5", register[1][8])
	assert.Equal(t, "HFYC0001", register[1][11])
	assert.Equal(t, "HFYC0002", register[1][12])
	assert.Equal(t, "", cell(register[1], 13))
}

func TestExporter_Failures(t *testing.T) {
	t.Run("empty record set", func(t *testing.T) {
		m := metrics.New()
		result, err := newTestExporter(WithMetrics(m)).ExportEmployees(nil)

		assert.ErrorIs(t, err, ErrNoRecords)
		assert.Nil(t, result)
	})

	t.Run("validation failure stops the export and notifies nobody", func(t *testing.T) {
		d := &mockDispatcher{}
		e := newTestExporter(
			WithValidator(validation.New(validation.DefaultDocumentRules())),
			WithDispatcher(d),
		)

		bad := completeEmployee()
		bad.Photo = nil
		result, err := e.ExportEmployees([]*models.Employee{completeEmployee(), bad})

		assert.Nil(t, result)
		var errs validation.Errors
		require.ErrorAs(t, err, &errs)
		assert.Equal(t, 1, errs[0].Index)
		assert.Equal(t, "photo", errs[0].Field)
		assert.Empty(t, d.messages)
	})

	t.Run("unsafe identity fields abort without a result", func(t *testing.T) {
		bad := aliHassan()
		bad.FirstName = "../etc"
		result, err := newTestExporter().ExportEmployees([]*models.Employee{bad})

		assert.ErrorIs(t, err, ErrArchiveWrite)
		assert.Nil(t, result)
	})
}

func TestExporter_Notification(t *testing.T) {
	d := &mockDispatcher{}
	e := newTestExporter(
		WithValidator(validation.New(validation.DefaultDocumentRules())),
		WithDispatcher(d),
	)

	_, err := e.ExportEmployees([]*models.Employee{completeEmployee(), completeEmployee()})
	require.NoError(t, err)

	require.Len(t, d.messages, 1)
	msg := d.messages[0]
	assert.Equal(t, "New employee request submitted by AcmeCo for 2 employee(s).", msg.Text)
	assert.Equal(t, "Personal Badge", msg.RequestType)
	assert.Equal(t, fixedNow, msg.Timestamp)
}
