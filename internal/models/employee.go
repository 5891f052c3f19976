package models

// Employee is a personal badge request
type Employee struct {
	// ID is the numeric badge suffix; the HFYC prefix is added by the naming engine
	ID        string `json:"id" validate:"required,number,max=4"`
	FirstName string `json:"firstName" validate:"required,min=2,excludesall=/\\"`
	LastName  string `json:"lastName" validate:"required,min=2,excludesall=/\\"`

	Contractor                string `json:"contractor" validate:"required,min=2,excludesall=/\\"`
	Subcontractor             string `json:"subcontractor,omitempty"`
	Position                  string `json:"position" validate:"required,min=2"`
	IDDocumentNumber          string `json:"idDocumentNumber" validate:"required"`
	Nationality               string `json:"nationality" validate:"required,min=2"`
	AssociatedContractNumber  string `json:"associatedPetroChinaContractNumber" validate:"required"`
	ContractHoldingDepartment string `json:"contractHoldingPetroChinaDepartment" validate:"required"`
	EALetterNumber            string `json:"eaLetterNumber" validate:"required"`
	NumberInEAList            string `json:"numberInEaList" validate:"required"`

	Photo          *Document `json:"photo,omitempty" validate:"required"`
	IDDocument     *Document `json:"idDocument,omitempty" validate:"required"`
	DrivingLicense *Document `json:"drivingLicense,omitempty"`
	MOICard        *Document `json:"moiCard,omitempty"`
}

var (
	employeeSlots         = []Slot{SlotPhoto, SlotIDDocument, SlotDrivingLicense, SlotMOICard}
	employeeRequiredSlots = []Slot{SlotPhoto, SlotIDDocument}
)

// Kind implements Record
func (e *Employee) Kind() Kind { return KindEmployee }

// Slots implements Record
func (e *Employee) Slots() []Slot { return employeeSlots }

// RequiredSlots implements Record
func (e *Employee) RequiredSlots() []Slot { return employeeRequiredSlots }

// Company implements Record
func (e *Employee) Company() string { return e.Contractor }

// Document implements Record
func (e *Employee) Document(slot Slot) *Document {
	switch slot {
	case SlotPhoto:
		return e.Photo
	case SlotIDDocument:
		return e.IDDocument
	case SlotDrivingLicense:
		return e.DrivingLicense
	case SlotMOICard:
		return e.MOICard
	}
	return nil
}

// SetDocument implements Record
func (e *Employee) SetDocument(slot Slot, doc *Document) error {
	switch slot {
	case SlotPhoto:
		e.Photo = doc
	case SlotIDDocument:
		e.IDDocument = doc
	case SlotDrivingLicense:
		e.DrivingLicense = doc
	case SlotMOICard:
		e.MOICard = doc
	default:
		return ErrUnknownSlot
	}
	return nil
}
