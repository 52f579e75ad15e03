package workbook

import (
	"mime"
	"path/filepath"
	"strings"

	"ballotbox/internal/core/ballot"
)

// Accepted upload content types
const (
	MIMEXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	MIMEXLS  = "application/vnd.ms-excel"
)

var accepted = map[string]struct{}{
	MIMEXLSX: {},
	MIMEXLS:  {},
}

// Accepts reports whether contentType names a spreadsheet
// parameters such as charset are ignored
func Accepts(contentType string) bool {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	_, ok := accepted[strings.ToLower(mt)]
	return ok
}

// CheckType returns ErrUnsupportedFileType unless contentType is a spreadsheet type
func CheckType(contentType string) error {
	if Accepts(contentType) {
		return nil
	}
	if contentType == "" {
		return ballot.Failf(ballot.ErrUnsupportedFileType, "no content type given")
	}
	return ballot.Failf(ballot.ErrUnsupportedFileType, "content type %q is not a spreadsheet", contentType)
}

// TypeByExtension guesses the content type of a local file, for callers that have a path and no header
// unknown extensions give the empty string, which CheckType rejects
func TypeByExtension(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx":
		return MIMEXLSX
	case ".xls":
		return MIMEXLS
	default:
		return ""
	}
}
