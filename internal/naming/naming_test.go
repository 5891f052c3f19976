package naming

import (
	"testing"

	"github.com/garyjia/badge-intake/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBadgeNumber(t *testing.T) {
	assert.Equal(t, "HFYC0007", BadgeNumber("0007"))
	assert.Equal(t, "HFYC12", BadgeNumber("12"))
	assert.Equal(t, "0007", BadgeSuffix("HFYC0007"))
	assert.Equal(t, "0007", BadgeSuffix(BadgeNumber("0007")))
}

func TestRegisterBadge(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "HFYC0007", want: "HFYC-0007"},
		{in: "HFYC12", want: "HFYC12"},
		{in: "", want: ""},
		{in: "HFYC1234X", want: "HFYC-1234X"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, RegisterBadge(tt.in))
		})
	}
}

func TestDocumentName_Employee(t *testing.T) {
	e := &models.Employee{ID: "0007", FirstName: "Ali", LastName: "Hassan"}

	tests := []struct {
		slot models.Slot
		want string
	}{
		{slot: models.SlotPhoto, want: "Ali+Hassan_HFYC0007.jpg"},
		{slot: models.SlotIDDocument, want: "HFYC0007-ID Document.jpg"},
		{slot: models.SlotDrivingLicense, want: "HFYC0007-Driving License.jpg"},
		{slot: models.SlotMOICard, want: "HFYC0007-MOI Card.jpg"},
	}
	for _, tt := range tests {
		t.Run(string(tt.slot), func(t *testing.T) {
			got, err := DocumentName(e, tt.slot)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			again, err := DocumentName(e, tt.slot)
			require.NoError(t, err)
			assert.Equal(t, got, again)
		})
	}

	_, err := DocumentName(e, models.SlotWakala)
	assert.ErrorIs(t, err, models.ErrUnknownSlot)
}

func TestDocumentName_Vehicle(t *testing.T) {
	v := &models.Vehicle{PlateNumber: "12345-B", Make: "Toyota", Model: "Hilux"}

	name, err := DocumentName(v, models.SlotPhoto)
	require.NoError(t, err)
	assert.Equal(t, "12345-B.jpg", name)

	for _, slot := range []models.Slot{models.SlotSenewiyah, models.SlotWakala, models.SlotArmoredCertificate} {
		name, err := DocumentName(v, slot)
		require.NoError(t, err)
		assert.Equal(t, "Toyota+Hilux_12345-B.jpg", name)
	}

	_, err = DocumentName(v, models.SlotIDDocument)
	assert.ErrorIs(t, err, models.ErrUnknownSlot)
}

func TestArchivePath(t *testing.T) {
	e := &models.Employee{ID: "0007", FirstName: "Ali", LastName: "Hassan"}

	p, err := ArchivePath(e, models.SlotPhoto)
	require.NoError(t, err)
	assert.Equal(t, "Photos/Ali+Hassan_HFYC0007.jpg", p)

	p, err = ArchivePath(e, models.SlotIDDocument)
	require.NoError(t, err)
	assert.Equal(t, "ID Documents/HFYC0007-ID Document.jpg", p)

	v := &models.Vehicle{PlateNumber: "77", Make: "Ford", Model: "F150"}
	p, err = ArchivePath(v, models.SlotArmoredCertificate)
	require.NoError(t, err)
	assert.Equal(t, "Armored Vehicle Certificates/Ford+F150_77.jpg", p)
}

func TestFolder_EverySlotHasFolder(t *testing.T) {
	for _, r := range []models.Record{&models.Employee{}, &models.Vehicle{}} {
		for _, slot := range r.Slots() {
			assert.NotEmpty(t, Folder(slot), "slot %s", slot)
		}
	}
}
