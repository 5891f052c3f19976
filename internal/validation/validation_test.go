package validation

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garyjia/badge-intake/internal/models"
)

var (
	jpegBytes = []byte("\xff\xd8\xff\xe0\x00\x10JFIF\x00photo")
	pngBytes  = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	pdfBytes  = []byte("%PDF-1.4\n%âãÏÓ\n")
)

func validEmployee() *models.Employee {
	return &models.Employee{
		ID:                        "0007",
		FirstName:                 "Ali",
		LastName:                  "Hassan",
		Contractor:                "AcmeCo",
		Position:                  "Driller",
		IDDocumentNumber:          "A1234567",
		Nationality:               "Iraqi",
		AssociatedContractNumber:  "PC-2024-001",
		ContractHoldingDepartment: "Drilling",
		EALetterNumber:            "EA-17",
		NumberInEAList:            "3",
		Photo:                     models.NewDocument("photo.jpg", "image/jpeg", jpegBytes),
		IDDocument:                models.NewDocument("id.png", "image/png", pngBytes),
	}
}

func validVehicle() *models.Vehicle {
	return &models.Vehicle{
		PlateNumber:               "12345-BSR",
		Make:                      "Toyota",
		Model:                     "Hilux",
		Province:                  "Basra",
		Contractor:                "AcmeCo",
		SenewiyahNumber:           "S-99",
		SoftskinArmored:           models.Softskin,
		RelatedPersons:            []string{"HFYC0001", "HFYC0002"},
		AssociatedContractNumber:  "PC-2024-001",
		ContractHoldingDepartment: "Logistics",
		EALetterNumber:            "EA-17",
		NumberInEAList:            "4",
		Photo:                     models.NewDocument("car.jpg", "image/jpeg", jpegBytes),
		Senewiyah:                 models.NewDocument("sen.jpg", "image/jpeg", jpegBytes),
	}
}

func fields(errs Errors) []string {
	out := make([]string, 0, len(errs))
	for _, fe := range errs {
		out = append(out, fe.Field+":"+fe.Tag)
	}
	return out
}

func TestValidator_Employee(t *testing.T) {
	v := New(DefaultDocumentRules())

	t.Run("valid employee passes", func(t *testing.T) {
		assert.Empty(t, v.Record(0, validEmployee()))
	})

	tests := []struct {
		name   string
		mutate func(e *models.Employee)
		want   string
	}{
		{"missing id", func(e *models.Employee) { e.ID = "" }, "id:required"},
		{"id too long", func(e *models.Employee) { e.ID = "12345" }, "id:max"},
		{"id not numeric", func(e *models.Employee) { e.ID = "00a7" }, "id:number"},
		{"id with decimal point", func(e *models.Employee) { e.ID = "1.5" }, "id:number"},
		{"id with minus sign", func(e *models.Employee) { e.ID = "-12" }, "id:number"},
		{"id with plus sign", func(e *models.Employee) { e.ID = "+123" }, "id:number"},
		{"contractor with separator", func(e *models.Employee) { e.Contractor = "../X" }, "contractor:excludesall"},
		{"contractor with backslash", func(e *models.Employee) { e.Contractor = "Acme\\Co" }, "contractor:excludesall"},
		{"short first name", func(e *models.Employee) { e.FirstName = "A" }, "firstName:min"},
		{"last name with separator", func(e *models.Employee) { e.LastName = "Has/san" }, "lastName:excludesall"},
		{"missing photo", func(e *models.Employee) { e.Photo = nil }, "photo:required"},
		{"missing id document", func(e *models.Employee) { e.IDDocument = nil }, "idDocument:required"},
		{"empty photo bytes", func(e *models.Employee) { e.Photo = models.NewDocument("p.jpg", "", nil) }, "photo:required"},
		{"pdf driving license", func(e *models.Employee) {
			e.DrivingLicense = models.NewDocument("dl.pdf", "application/pdf", pdfBytes)
		}, "drivingLicense:mimetype"},
		{"missing ea letter", func(e *models.Employee) { e.EALetterNumber = "" }, "eaLetterNumber:required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := validEmployee()
			tt.mutate(e)

			errs := v.Record(2, e)

			require.NotEmpty(t, errs)
			assert.Contains(t, fields(errs), tt.want)
			for _, fe := range errs {
				assert.Equal(t, 2, fe.Index)
				assert.NotEmpty(t, fe.Message)
			}
		})
	}

	t.Run("subcontractor and optional documents may be absent", func(t *testing.T) {
		e := validEmployee()
		e.Subcontractor = ""
		e.DrivingLicense = nil
		e.MOICard = nil
		assert.Empty(t, v.Record(0, e))
	})
}

func TestValidator_Vehicle(t *testing.T) {
	v := New(DefaultDocumentRules())

	t.Run("valid vehicle passes", func(t *testing.T) {
		assert.Empty(t, v.Record(0, validVehicle()))
	})

	t.Run("related person pattern", func(t *testing.T) {
		for _, ref := range []string{"HFYC1", "hfyc0001", "HFYC00011", "", "ABCD0001"} {
			veh := validVehicle()
			veh.RelatedPersons = []string{ref}
			assert.Contains(t, fields(v.Record(0, veh)), "relatedPersons[0]:relatedperson", ref)
		}
	})

	t.Run("contractor with separator", func(t *testing.T) {
		veh := validVehicle()
		veh.Contractor = "Acme/Co"
		assert.Contains(t, fields(v.Record(0, veh)), "contractor:excludesall")
	})

	t.Run("related persons duplicate", func(t *testing.T) {
		veh := validVehicle()
		veh.RelatedPersons = []string{"HFYC0001", "HFYC0001"}
		assert.Contains(t, fields(v.Record(0, veh)), "relatedPersons:unique")
	})

	t.Run("twenty related persons accepted, twenty-one rejected", func(t *testing.T) {
		veh := validVehicle()
		veh.RelatedPersons = nil
		for i := 1; i <= models.MaxRelatedPersons; i++ {
			veh.RelatedPersons = append(veh.RelatedPersons, fmt.Sprintf("HFYC%04d", i))
		}
		assert.Empty(t, v.Record(0, veh))

		veh.RelatedPersons = append(veh.RelatedPersons, "HFYC0021")
		assert.Contains(t, fields(v.Record(0, veh)), "relatedPersons:max")
	})

	t.Run("classification must be known", func(t *testing.T) {
		veh := validVehicle()
		veh.SoftskinArmored = "Tank"
		assert.Contains(t, fields(v.Record(0, veh)), "softskinArmored:oneof")

		veh.SoftskinArmored = ""
		assert.Empty(t, v.Record(0, veh))
	})

	t.Run("senewiyah is required", func(t *testing.T) {
		veh := validVehicle()
		veh.Senewiyah = nil
		assert.Contains(t, fields(v.Record(0, veh)), "senewiyah:required")
	})
}

func TestValidator_Documents(t *testing.T) {
	t.Run("oversized document rejected", func(t *testing.T) {
		v := New(DocumentRules{MaxSize: 16})
		big := append(append([]byte{}, jpegBytes...), bytes.Repeat([]byte{0}, 32)...)

		err := v.Document(models.SlotPhoto, models.NewDocument("big.jpg", "", big))

		require.Error(t, err)
		var errs Errors
		require.ErrorAs(t, err, &errs)
		assert.Equal(t, "max", errs[0].Tag)
	})

	t.Run("allowed types are configurable", func(t *testing.T) {
		v := New(DocumentRules{AllowedTypes: []string{"application/pdf"}})
		assert.NoError(t, v.Document(models.SlotWakala, models.NewDocument("w.pdf", "", pdfBytes)))
		assert.Error(t, v.Document(models.SlotWakala, models.NewDocument("w.jpg", "", jpegBytes)))
	})

	t.Run("nil document is not checked", func(t *testing.T) {
		assert.NoError(t, New(DefaultDocumentRules()).Document(models.SlotMOICard, nil))
	})
}

func TestRecords(t *testing.T) {
	v := New(DefaultDocumentRules())

	t.Run("all valid returns nil", func(t *testing.T) {
		assert.NoError(t, Records(v, []*models.Employee{validEmployee(), validEmployee()}))
	})

	t.Run("errors carry the record index", func(t *testing.T) {
		bad := validEmployee()
		bad.FirstName = ""

		err := Records(v, []*models.Employee{validEmployee(), bad})

		var errs Errors
		require.ErrorAs(t, err, &errs)
		require.Len(t, errs, 1)
		assert.Equal(t, 1, errs[0].Index)
		assert.Equal(t, "firstName", errs[0].Field)
		assert.Contains(t, err.Error(), "record 2")
	})
}
