package layout

import (
	"fmt"
	"strings"

	"github.com/garyjia/badge-intake/internal/models"
)

type vehicle = *models.Vehicle

// relatedPersonsSep joins related persons into the single request-sheet cell
const relatedPersonsSep = ","

// Vehicles is the vehicle archive layout. Wakala number and armour class are only
// carried by the register sheet, so import reads both sheets for vehicles.
var Vehicles = &Layout[*models.Vehicle]{
	Kind:     models.KindVehicle,
	New:      func() *models.Vehicle { return &models.Vehicle{} },
	Request:  Sheet[*models.Vehicle]{Preamble: requestPreamble, Columns: vehicleRequestColumns},
	Register: Sheet[*models.Vehicle]{Columns: vehicleRegisterColumns()},
}

var vehicleRequestColumns = []Column[vehicle]{
	field("ID",
		func(v vehicle) string { return v.PlateNumber },
		func(v vehicle, s string) { v.PlateNumber = s }),
	field("First Name",
		func(v vehicle) string { return v.Make },
		func(v vehicle, s string) { v.Make = s }),
	field("Last Name",
		func(v vehicle) string { return v.Model },
		func(v vehicle, s string) { v.Model = s }),
	computed("Department",
		func(v vehicle) string { return departmentPrefix + v.Contractor }),
	timestamp[vehicle]("Start Time of Effective Period"),
	timestamp[vehicle]("End Time of Effective Period"),
	timestamp[vehicle]("Enrollment Date"),
	constant[vehicle]("Type", personType),
	constant[vehicle]("Is Vehicle", flagYes),
	field("Province",
		func(v vehicle) string { return v.Province },
		func(v vehicle, s string) { v.Province = s }),
	field("Company Name",
		func(v vehicle) string { return v.Contractor },
		func(v vehicle, s string) { v.Contractor = s }),
	field("Subcontractor Name",
		func(v vehicle) string { return v.Subcontractor },
		func(v vehicle, s string) { v.Subcontractor = s }),
	field("Related Persons",
		func(v vehicle) string { return strings.Join(v.RelatedPersons, relatedPersonsSep) },
		func(v vehicle, s string) { v.RelatedPersons = splitRelatedPersons(s) }),
	field("ID Document Number",
		func(v vehicle) string { return v.SenewiyahNumber },
		func(v vehicle, s string) { v.SenewiyahNumber = s }),
	field("Associated PCH Contract Number",
		func(v vehicle) string { return v.AssociatedContractNumber },
		func(v vehicle, s string) { v.AssociatedContractNumber = s }),
	field("Contract Holding PCH Department",
		func(v vehicle) string { return v.ContractHoldingDepartment },
		func(v vehicle, s string) { v.ContractHoldingDepartment = s }),
	constant[vehicle]("Comments", ""),
	field("EA Letter Number",
		func(v vehicle) string { return v.EALetterNumber },
		func(v vehicle, s string) { v.EALetterNumber = s }),
	field("Number in EA List",
		func(v vehicle) string { return v.NumberInEAList },
		func(v vehicle, s string) { v.NumberInEAList = s }),
}

func vehicleRegisterColumns() []Column[vehicle] {
	cols := []Column[vehicle]{
		computed("Contractor Holding Direct PCH Contract", func(v vehicle) string { return v.Contractor }),
		computed("Subcontractor (Where Applicable)", func(v vehicle) string { return v.Subcontractor }),
		computed("Plate No.", func(v vehicle) string { return v.PlateNumber }),
		computed("Province", func(v vehicle) string { return v.Province }),
		computed("Make", func(v vehicle) string { return v.Make }),
		computed("Model", func(v vehicle) string { return v.Model }),
		field("Armored / Softskin",
			func(v vehicle) string { return v.SoftskinArmored },
			func(v vehicle, s string) { v.SoftskinArmored = s }),
		computed("Senewiyah No.", func(v vehicle) string { return v.SenewiyahNumber }),
		field("Wakala No.",
			func(v vehicle) string { return v.WakalaNumber },
			func(v vehicle, s string) { v.WakalaNumber = s }),
		timestamp[vehicle]("Issue Date"),
		timestamp[vehicle]("Expiry Date"),
	}
	for i := 0; i < models.MaxRelatedPersons; i++ {
		cols = append(cols, driverColumn(i))
	}
	return append(cols,
		computed("EA Letter Number", func(v vehicle) string { return v.EALetterNumber }),
		constant[vehicle]("Comments", ""),
	)
}

func driverColumn(i int) Column[vehicle] {
	return computed(fmt.Sprintf("Driver %d", i+1), func(v vehicle) string {
		if i < len(v.RelatedPersons) {
			return v.RelatedPersons[i]
		}
		return ""
	})
}

func splitRelatedPersons(cell string) []string {
	var refs []string
	for _, part := range strings.Split(cell, relatedPersonsSep) {
		if part = strings.TrimSpace(part); part != "" {
			refs = append(refs, part)
		}
	}
	return refs
}
