package models

import (
	"errors"
	"regexp"
)

// MaxRelatedPersons is the number of driver columns on the vehicle register
const MaxRelatedPersons = 20

// RelatedPersonPattern matches a badge reference such as HFYC0001
var RelatedPersonPattern = regexp.MustCompile(`^HFYC\d{4}$`)

// Related person list errors
var (
	ErrInvalidRelatedPerson   = errors.New("related person must use format HFYC0001")
	ErrDuplicateRelatedPerson = errors.New("related person already in the list")
	ErrRelatedPersonsLimit    = errors.New("maximum 20 related persons allowed")
	ErrRelatedPersonIndex     = errors.New("related person index out of range")
)

// Vehicle armour classification values
const (
	Softskin = "Softskin"
	Armored  = "Armored"
)

// Vehicle is a vehicle badge request
type Vehicle struct {
	PlateNumber string `json:"plateNumber" validate:"required,excludesall=/\\"`
	Make        string `json:"make" validate:"required,min=2,excludesall=/\\"`
	Model       string `json:"model" validate:"required,min=2,excludesall=/\\"`
	Province    string `json:"province" validate:"required,min=2"`

	Contractor                string   `json:"contractor" validate:"required,min=2,excludesall=/\\"`
	Subcontractor             string   `json:"subcontractor,omitempty"`
	SenewiyahNumber           string   `json:"senewiyahNumber" validate:"required"`
	WakalaNumber              string   `json:"wakalaNumber,omitempty"`
	SoftskinArmored           string   `json:"softskinArmored,omitempty" validate:"omitempty,oneof=Softskin Armored"`
	RelatedPersons            []string `json:"relatedPersons,omitempty" validate:"max=20,unique,dive,relatedperson"`
	AssociatedContractNumber  string   `json:"associatedPetroChinaContractNumber" validate:"required"`
	ContractHoldingDepartment string   `json:"contractHoldingPetroChinaDepartment" validate:"required"`
	EALetterNumber            string   `json:"eaLetterNumber" validate:"required"`
	NumberInEAList            string   `json:"numberInEaList" validate:"required"`

	Photo                     *Document `json:"photo,omitempty" validate:"required"`
	Senewiyah                 *Document `json:"senewiyah,omitempty" validate:"required"`
	Wakala                    *Document `json:"wakala,omitempty"`
	ArmoredVehicleCertificate *Document `json:"armoredVehicleCertificate,omitempty"`
}

var (
	vehicleSlots         = []Slot{SlotPhoto, SlotSenewiyah, SlotWakala, SlotArmoredCertificate}
	vehicleRequiredSlots = []Slot{SlotPhoto, SlotSenewiyah}
)

// Kind implements Record
func (v *Vehicle) Kind() Kind { return KindVehicle }

// Slots implements Record
func (v *Vehicle) Slots() []Slot { return vehicleSlots }

// RequiredSlots implements Record
func (v *Vehicle) RequiredSlots() []Slot { return vehicleRequiredSlots }

// Company implements Record
func (v *Vehicle) Company() string { return v.Contractor }

// Document implements Record
func (v *Vehicle) Document(slot Slot) *Document {
	switch slot {
	case SlotPhoto:
		return v.Photo
	case SlotSenewiyah:
		return v.Senewiyah
	case SlotWakala:
		return v.Wakala
	case SlotArmoredCertificate:
		return v.ArmoredVehicleCertificate
	}
	return nil
}

// SetDocument implements Record
func (v *Vehicle) SetDocument(slot Slot, doc *Document) error {
	switch slot {
	case SlotPhoto:
		v.Photo = doc
	case SlotSenewiyah:
		v.Senewiyah = doc
	case SlotWakala:
		v.Wakala = doc
	case SlotArmoredCertificate:
		v.ArmoredVehicleCertificate = doc
	default:
		return ErrUnknownSlot
	}
	return nil
}

// AddRelatedPerson appends ref after checking format, uniqueness and the list limit.
// Matching is case-sensitive.
func (v *Vehicle) AddRelatedPerson(ref string) error {
	if !RelatedPersonPattern.MatchString(ref) {
		return ErrInvalidRelatedPerson
	}
	for _, existing := range v.RelatedPersons {
		if existing == ref {
			return ErrDuplicateRelatedPerson
		}
	}
	if len(v.RelatedPersons) >= MaxRelatedPersons {
		return ErrRelatedPersonsLimit
	}
	v.RelatedPersons = append(v.RelatedPersons, ref)
	return nil
}

// RemoveRelatedPerson deletes the entry at index, preserving the order of the rest
func (v *Vehicle) RemoveRelatedPerson(index int) error {
	if index < 0 || index >= len(v.RelatedPersons) {
		return ErrRelatedPersonIndex
	}
	v.RelatedPersons = append(v.RelatedPersons[:index:index], v.RelatedPersons[index+1:]...)
	return nil
}
