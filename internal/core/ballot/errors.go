package ballot

import (
	perr "ballotbox/internal/platform/errors"
)

// Ingestion failure kinds
// match with errors.Is; the perr code on each decides the HTTP status
var (
	// ErrUnsupportedFileType means the upload's declared type is not a spreadsheet
	ErrUnsupportedFileType = perr.New(perr.ErrorCodeUnsupportedMedia, "unsupported file type")

	// ErrDecodeFailure means the bytes could not be read as a workbook
	ErrDecodeFailure = perr.New(perr.ErrorCodeInvalidArgument, "workbook could not be decoded")

	// ErrInvalidStructure means the table is empty or row one lacks a required column
	ErrInvalidStructure = perr.New(perr.ErrorCodeValidation, "invalid table structure")

	// ErrNoValidRows means every row was rejected
	ErrNoValidRows = perr.New(perr.ErrorCodeInvalidArgument, "no valid rows")

	// ErrRowRejected marks a single dropped row; it never leaves the pipeline
	ErrRowRejected = perr.New(perr.ErrorCodeValidation, "row rejected")
)

// Failf narrows one of the kinds above with a specific message
func Failf(kind error, format string, a ...any) error {
	return perr.Detailf(kind, format, a...)
}

func rejectf(format string, a ...any) error { return Failf(ErrRowRejected, format, a...) }
