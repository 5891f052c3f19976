// Package naming derives badge identifiers and canonical document names from record fields.
// Export and import both call these functions; nothing here performs I/O.
package naming

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/garyjia/badge-intake/internal/models"
)

// BadgePrefix is prepended to every employee badge suffix
const BadgePrefix = "HFYC"

// DocumentExt is the extension given to every archived document
const DocumentExt = ".jpg"

var registerBadgePattern = regexp.MustCompile(`(\w{4})(\d{4})`)

// Archive folder per slot
var folders = map[models.Slot]string{
	models.SlotPhoto:              "Photos",
	models.SlotIDDocument:         "ID Documents",
	models.SlotDrivingLicense:     "Driving Licences",
	models.SlotMOICard:            "MOI Cards",
	models.SlotSenewiyah:          "Senewiyahs",
	models.SlotWakala:             "Wakalas",
	models.SlotArmoredCertificate: "Armored Vehicle Certificates",
}

// Labels used in employee document names
var employeeLabels = map[models.Slot]string{
	models.SlotIDDocument:     "ID Document",
	models.SlotDrivingLicense: "Driving License",
	models.SlotMOICard:        "MOI Card",
}

// BadgeNumber returns the full employee badge, e.g. "0007" -> "HFYC0007"
func BadgeNumber(suffix string) string {
	return BadgePrefix + suffix
}

// BadgeSuffix strips the prefix added by BadgeNumber
func BadgeSuffix(badge string) string {
	return strings.TrimPrefix(badge, BadgePrefix)
}

// RegisterBadge formats a badge for the register sheet: "HFYC0007" -> "HFYC-0007".
// Only the first match is rewritten; values that do not match are returned as-is.
func RegisterBadge(badge string) string {
	loc := registerBadgePattern.FindStringSubmatchIndex(badge)
	if loc == nil {
		return badge
	}
	return badge[:loc[0]] + badge[loc[2]:loc[3]] + "-" + badge[loc[4]:loc[5]] + badge[loc[1]:]
}

// Folder returns the archive folder that holds documents of slot
func Folder(slot models.Slot) string {
	return folders[slot]
}

// DocumentName returns the canonical file name of slot on r.
// The name depends only on the record's identity fields, so calling it at export and
// at import time yields the same string.
func DocumentName(r models.Record, slot models.Slot) (string, error) {
	switch rec := r.(type) {
	case *models.Employee:
		return employeeDocumentName(rec, slot)
	case *models.Vehicle:
		return vehicleDocumentName(rec, slot)
	default:
		return "", fmt.Errorf("unsupported record type %T", r)
	}
}

// ArchivePath joins the slot folder and the canonical name without cleaning the path
func ArchivePath(r models.Record, slot models.Slot) (string, error) {
	name, err := DocumentName(r, slot)
	if err != nil {
		return "", err
	}
	return Folder(slot) + "/" + name, nil
}

func employeeDocumentName(e *models.Employee, slot models.Slot) (string, error) {
	badge := BadgeNumber(e.ID)
	if slot == models.SlotPhoto {
		return fmt.Sprintf("%s+%s_%s%s", e.FirstName, e.LastName, badge, DocumentExt), nil
	}
	label, ok := employeeLabels[slot]
	if !ok {
		return "", fmt.Errorf("%w: %s", models.ErrUnknownSlot, slot)
	}
	return fmt.Sprintf("%s-%s%s", badge, label, DocumentExt), nil
}

func vehicleDocumentName(v *models.Vehicle, slot models.Slot) (string, error) {
	switch slot {
	case models.SlotPhoto:
		return v.PlateNumber + DocumentExt, nil
	case models.SlotSenewiyah, models.SlotWakala, models.SlotArmoredCertificate:
		return fmt.Sprintf("%s+%s_%s%s", v.Make, v.Model, v.PlateNumber, DocumentExt), nil
	default:
		return "", fmt.Errorf("%w: %s", models.ErrUnknownSlot, slot)
	}
}
