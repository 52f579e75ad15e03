// Package workbook reads ballot sheets out of .xlsx and legacy .xls workbooks and writes the blank template
//
// Design choices:
// - Only the first sheet is read and its first row is the header.
// - Cells keep their type: numeric cells (dates included) decode as numbers so the
//   timestamp normalizer can read serials, everything else decodes as sanitized text.
// - Every named header column yields a key on every data row, blank cells become Empty.
// - Fully blank rows are skipped; they are formatting leftovers, not ballots.
// - The declared content type is checked before any bytes are parsed; the reader is then picked
//   from the file signature, so a mislabelled .xlsx still decodes.
// - .xls values arrive formatted, so untrimmed plain numbers decode as numbers and the rest as text.
package workbook
