package workbook

import (
	"bytes"
	"io"
	"strconv"

	"ballotbox/internal/core/ballot"
	"ballotbox/internal/core/normalize"
	"ballotbox/internal/platform/logger"

	"github.com/xuri/excelize/v2"
)

// DefaultMaxUnzipSize caps the inflated workbook size
const DefaultMaxUnzipSize int64 = 256 << 20

// Options tunes Decode
type Options struct {
	// MaxUnzipSize caps the total inflated size, 0 means DefaultMaxUnzipSize
	MaxUnzipSize int64
}

// Sheet is the decoded first sheet of a workbook
type Sheet struct {
	Name   string
	Header []string
	Table  ballot.RawTable
	// Date1904 is set when the workbook counts date serials from 1904
	Date1904 bool
	// Skipped counts fully blank data rows
	Skipped int
}

// Decode checks contentType and reads the first sheet of the workbook in r
// it fails with ErrUnsupportedFileType or ErrDecodeFailure; structural checks are left to ballot.Validate
func Decode(r io.Reader, contentType string, opt Options) (Sheet, error) {
	if err := CheckType(contentType); err != nil {
		return Sheet{}, err
	}
	return Read(r, opt)
}

// Read decodes the first sheet without looking at a content type
// legacy BIFF workbooks are recognised by their compound file signature, everything else goes to the xlsx reader
func Read(r io.Reader, opt Options) (Sheet, error) {
	limit := opt.MaxUnzipSize
	if limit <= 0 {
		limit = DefaultMaxUnzipSize
	}

	b, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return Sheet{}, ballot.Failf(ballot.ErrDecodeFailure, "read workbook: %v", err)
	}
	if int64(len(b)) > limit {
		return Sheet{}, ballot.Failf(ballot.ErrDecodeFailure, "workbook exceeds %d bytes", limit)
	}
	if bytes.HasPrefix(b, cfbMagic) {
		return readXLS(b)
	}
	return readXLSX(b, limit)
}

func readXLSX(b []byte, limit int64) (Sheet, error) {
	f, err := excelize.OpenReader(bytes.NewReader(b), excelize.Options{UnzipSizeLimit: limit})
	if err != nil {
		return Sheet{}, ballot.Failf(ballot.ErrDecodeFailure, "open workbook: %v", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			logger.Named("workbook").Warn().Err(cerr).Msg("close workbook")
		}
	}()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return Sheet{}, ballot.Failf(ballot.ErrDecodeFailure, "workbook has no sheets")
	}
	name := sheets[0]

	rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return Sheet{}, ballot.Failf(ballot.ErrDecodeFailure, "read sheet %q: %v", name, err)
	}
	out, err := tabulate(name, rows, func(col, sheetRow int, raw string) (ballot.Cell, error) {
		ref, err := excelize.CoordinatesToCellName(col+1, sheetRow)
		if err != nil {
			return ballot.Cell{}, err
		}
		typ, err := f.GetCellType(name, ref)
		if err != nil {
			return ballot.Cell{}, err
		}
		return typedCell(typ, raw), nil
	})
	if err != nil {
		return Sheet{}, err
	}
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		out.Date1904 = *props.Date1904
	}
	return out, nil
}

// cellFunc types the non-empty raw value at a 0-based column and 1-based sheet row
type cellFunc func(col, sheetRow int, raw string) (ballot.Cell, error)

// tabulate turns header-first string rows into a Sheet, skipping fully blank data rows
func tabulate(name string, rows [][]string, cell cellFunc) (Sheet, error) {
	out := Sheet{Name: name}
	if len(rows) == 0 {
		out.Table = ballot.RawTable{}
		return out, nil
	}

	out.Header = headerKeys(rows[0])
	out.Table = make(ballot.RawTable, 0, len(rows)-1)

	for i, raw := range rows[1:] {
		sheetRow := i + 2 // 1-based, after the header
		row, blank, err := decodeRow(sheetRow, out.Header, raw, cell)
		if err != nil {
			return Sheet{}, ballot.Failf(ballot.ErrDecodeFailure, "row %d: %v", sheetRow, err)
		}
		if blank {
			out.Skipped++
			continue
		}
		out.Table = append(out.Table, row)
	}
	return out, nil
}

// headerKeys returns the column key per header cell
// blank header cells give "" and are ignored; repeated names get _1, _2 suffixes so no column is lost
func headerKeys(cells []string) []string {
	keys := make([]string, len(cells))
	seen := make(map[string]int, len(cells))
	for i, c := range cells {
		name := normalize.Sanitize(c)
		if name == "" {
			continue
		}
		if n, dup := seen[name]; dup {
			seen[name] = n + 1
			name = name + "_" + strconv.Itoa(n+1)
		} else {
			seen[name] = 0
		}
		keys[i] = name
	}
	return keys
}

func decodeRow(sheetRow int, header, raw []string, cell cellFunc) (ballot.RawRow, bool, error) {
	row := make(ballot.RawRow, len(header))
	blank := true
	for col, key := range header {
		if key == "" {
			continue
		}
		if col >= len(raw) || raw[col] == "" {
			row[key] = ballot.Cell{}
			continue
		}
		blank = false

		c, err := cell(col, sheetRow, raw[col])
		if err != nil {
			return nil, false, err
		}
		row[key] = c
	}
	return row, blank, nil
}

// typedCell maps an excelize cell type and raw value onto a ballot cell
// unset is how excelize reports plain numeric cells without a t attribute
func typedCell(typ excelize.CellType, raw string) ballot.Cell {
	switch typ {
	case excelize.CellTypeUnset, excelize.CellTypeNumber, excelize.CellTypeDate:
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			return ballot.Number(v)
		}
	case excelize.CellTypeBool:
		switch raw {
		case "1":
			return ballot.Text("TRUE")
		case "0":
			return ballot.Text("FALSE")
		}
	}
	return ballot.Text(normalize.Sanitize(raw))
}
