package models

import "errors"

// Kind identifies the record variant carried by an archive
type Kind string

const (
	KindEmployee Kind = "employee"
	KindVehicle  Kind = "vehicle"
)

// Plural returns the noun used in archive and spreadsheet file names
func (k Kind) Plural() string {
	switch k {
	case KindEmployee:
		return "employees"
	case KindVehicle:
		return "vehicles"
	default:
		return string(k) + "s"
	}
}

// RequestType returns the tag attached to outbound notifications
func (k Kind) RequestType() string {
	switch k {
	case KindEmployee:
		return "Personal Badge"
	case KindVehicle:
		return "Vehicle Badge"
	default:
		return string(k)
	}
}

// Slot names one document position on a record
type Slot string

// Document slots
const (
	// Employee slots
	SlotPhoto          Slot = "photo"
	SlotIDDocument     Slot = "idDocument"
	SlotDrivingLicense Slot = "drivingLicense"
	SlotMOICard        Slot = "moiCard"

	// Vehicle slots (SlotPhoto is shared)
	SlotSenewiyah          Slot = "senewiyah"
	SlotWakala             Slot = "wakala"
	SlotArmoredCertificate Slot = "armoredVehicleCertificate"
)

// ErrUnknownSlot is returned when a record does not own the requested slot
var ErrUnknownSlot = errors.New("slot not defined for record")

// Record is implemented by every badge-request variant
type Record interface {
	Kind() Kind

	// Slots lists the document slots in archive folder order
	Slots() []Slot

	// RequiredSlots lists the slots that must hold a document
	RequiredSlots() []Slot

	// Document returns the blob in slot, or nil when unpopulated
	Document(slot Slot) *Document

	// SetDocument replaces the blob in slot; nil clears it
	SetDocument(slot Slot, doc *Document) error

	// Company is the contractor name used to label the archive
	Company() string
}
