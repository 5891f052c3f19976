package exporter

import "errors"

var (
	// Input errors
	ErrNoRecords = errors.New("no records to export")

	// Packaging errors
	ErrArchiveWrite = errors.New("failed to write archive")
	ErrSheetBuild   = errors.New("failed to build spreadsheet")
)
