package workbook

import (
	"bytes"
	"math"
	"strconv"
	"strings"

	"ballotbox/internal/core/ballot"
	"ballotbox/internal/core/normalize"

	"github.com/extrame/xls"
)

// cfbMagic opens every OLE2 compound file, which is how BIFF .xls workbooks are stored
var cfbMagic = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}

// readXLS decodes the first sheet of a BIFF workbook
// the format carries no reliable cell types through the reader so values are typed by xlsCell
func readXLS(b []byte) (out Sheet, err error) {
	// the reader panics on some truncated streams
	defer func() {
		if p := recover(); p != nil {
			out, err = Sheet{}, ballot.Failf(ballot.ErrDecodeFailure, "open xls workbook: %v", p)
		}
	}()

	wb, err := xls.OpenReader(bytes.NewReader(b), "utf-8")
	if err != nil {
		return Sheet{}, ballot.Failf(ballot.ErrDecodeFailure, "open xls workbook: %v", err)
	}
	if wb.NumSheets() == 0 {
		return Sheet{}, ballot.Failf(ballot.ErrDecodeFailure, "workbook has no sheets")
	}
	ws := wb.GetSheet(0)
	if ws == nil {
		return Sheet{}, ballot.Failf(ballot.ErrDecodeFailure, "workbook has no sheets")
	}

	rows := make([][]string, 0, int(ws.MaxRow)+1)
	for i := 0; i <= int(ws.MaxRow); i++ {
		r := ws.Row(i)
		if r == nil {
			rows = append(rows, nil)
			continue
		}
		cells := make([]string, r.LastCol())
		for c := range cells {
			cells[c] = r.Col(c)
		}
		rows = append(rows, cells)
	}
	return tabulate(ws.Name, rows, func(_, _ int, raw string) (ballot.Cell, error) {
		return xlsCell(raw), nil
	})
}

// xlsCell types a formatted BIFF value: an untrimmed finite number stays numeric, anything else is text
func xlsCell(raw string) ballot.Cell {
	if strings.TrimSpace(raw) == raw {
		if v, err := strconv.ParseFloat(raw, 64); err == nil && !math.IsNaN(v) && !math.IsInf(v, 0) {
			return ballot.Number(v)
		}
	}
	return ballot.Text(normalize.Sanitize(raw))
}
