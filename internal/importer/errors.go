package importer

import "errors"

// Archive-structural errors. Any of them means no record was produced.
var (
	ErrUnsupportedExtension = errors.New("unsupported file type, expected a .zip archive")
	ErrInvalidArchive       = errors.New("file is not a readable zip archive")
	ErrNoSpreadsheet        = errors.New("no spreadsheet found in archive")
	ErrNoRegister           = errors.New("no register spreadsheet found in archive")
	ErrInvalidSpreadsheet   = errors.New("spreadsheet could not be read")
	ErrNoData               = errors.New("no valid data found in spreadsheet")
)
