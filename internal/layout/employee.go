package layout

import (
	"github.com/garyjia/badge-intake/internal/models"
	"github.com/garyjia/badge-intake/internal/naming"
)

type employee = *models.Employee

// Employees is the employee archive layout
var Employees = &Layout[*models.Employee]{
	Kind:     models.KindEmployee,
	New:      func() *models.Employee { return &models.Employee{} },
	Request:  Sheet[*models.Employee]{Preamble: requestPreamble, Columns: employeeRequestColumns},
	Register: Sheet[*models.Employee]{Columns: employeeRegisterColumns},
}

// Order is fixed by the access-control import template.
var employeeRequestColumns = []Column[employee]{
	field("ID",
		func(e employee) string { return naming.BadgeNumber(e.ID) },
		func(e employee, v string) { e.ID = naming.BadgeSuffix(v) }),
	field("First Name",
		func(e employee) string { return e.FirstName },
		func(e employee, v string) { e.FirstName = v }),
	field("Last Name",
		func(e employee) string { return e.LastName },
		func(e employee, v string) { e.LastName = v }),
	computed("Department",
		func(e employee) string { return departmentPrefix + e.Contractor }),
	timestamp[employee]("Start Time of Effective Period"),
	timestamp[employee]("End Time of Effective Period"),
	timestamp[employee]("Enrollment Date"),
	constant[employee]("Type", personType),
	field("Company Name",
		func(e employee) string { return e.Contractor },
		func(e employee, v string) { e.Contractor = v }),
	field("Subcontractor Name",
		func(e employee) string { return e.Subcontractor },
		func(e employee, v string) { e.Subcontractor = v }),
	field("ID Document Number",
		func(e employee) string { return e.IDDocumentNumber },
		func(e employee, v string) { e.IDDocumentNumber = v }),
	field("Nationality",
		func(e employee) string { return e.Nationality },
		func(e employee, v string) { e.Nationality = v }),
	constant[employee]("System Credential Number", ""),
	field("Associated PCH Contract Number",
		func(e employee) string { return e.AssociatedContractNumber },
		func(e employee, v string) { e.AssociatedContractNumber = v }),
	field("Contract Holding PCH Department",
		func(e employee) string { return e.ContractHoldingDepartment },
		func(e employee, v string) { e.ContractHoldingDepartment = v }),
	constant[employee]("Comments", ""),
	field("EA Letter Number",
		func(e employee) string { return e.EALetterNumber },
		func(e employee, v string) { e.EALetterNumber = v }),
	field("Number in EA List",
		func(e employee) string { return e.NumberInEAList },
		func(e employee, v string) { e.NumberInEAList = v }),
	constant[employee]("Access Revoked", flagNo),
	field("Position-",
		func(e employee) string { return e.Position },
		func(e employee, v string) { e.Position = v }),
	constant[employee]("Sponsor Badge", flagNo),
}

var employeeRegisterColumns = []Column[employee]{
	sequence[employee](""),
	computed("First Name", func(e employee) string { return e.FirstName }),
	computed("Last Name(s)", func(e employee) string { return e.LastName }),
	computed("ID Document Number", func(e employee) string { return e.IDDocumentNumber }),
	computed("Nationality", func(e employee) string { return e.Nationality }),
	computed("Badge Number", func(e employee) string { return naming.RegisterBadge(naming.BadgeNumber(e.ID)) }),
	constant[employee]("System Credential Number", ""),
	computed("POSITION", func(e employee) string { return e.Position }),
	computed("Contractor (Holding Direct PCH Contract)", func(e employee) string { return e.Contractor }),
	computed("Subcontractor (Where Applicable)", func(e employee) string { return e.Subcontractor }),
	computed("Associated PetroChina Contract Number", func(e employee) string { return e.AssociatedContractNumber }),
	computed("Contract Holding PetroChina Department", func(e employee) string { return e.ContractHoldingDepartment }),
	timestamp[employee]("Issue Date"),
	timestamp[employee]("Expiry Date"),
	constant[employee]("Comments (Security Department Only)", ""),
	computed("EA Letter Number", func(e employee) string { return e.EALetterNumber }),
	computed("Number in EA List", func(e employee) string { return e.NumberInEAList }),
	constant[employee]("Sponsor Badge", flagNo),
	constant[employee]("Access Revoked", flagNo),
}
