package layout

// requestPreamble is the rule block the access-control import template expects above
// the header row. "Rule" is the title row; the remaining lines are instructions.
var requestPreamble = []string{
	"Rule",
	"At least one of family name and given name is required.",
	"Once configured, the ID cannot be edited. Confirm the ID rule before setting an ID.",
	"Do NOT change the layout and column title in this template file. The importing may fail if changed.",
	"You can add persons to an existing departments. The department names should be separated by/. For example, import persons to Department A in All Departments. Format: All Departments/Department A.",
	"Start Time of Effective Period is used for Access Control Module and Time & Attendance Module. Format: yyyy/mm/dd hh:mm:ss.",
	"End Time of Effective Period is used for Access Control Module and Time & Attendance Module. Format: yyyy/mm/dd hh:mm:ss.",
	"The platform does not support adding or editing basic information (including ID, first name, last name, phone number, and remarks) about domain persons and domain group persons and the information about domain persons linked to person information.",
	"It supports editing the persons' additional information in a batch, the fields of which are already created in the system. Please enter the additional information according to the type. For single selection type, select one from the drop-down list.",
}

// Constant cell values of the request and register sheets
const (
	departmentPrefix = "HALFAYA/Contractor/"
	personType       = "Basic Person"
	flagNo           = "NO"
	flagYes          = "Yes"
)
