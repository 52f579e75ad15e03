package workbook

import (
	"bytes"
	"time"

	"ballotbox/internal/core/ballot"
	"ballotbox/internal/core/timestamp"

	"github.com/xuri/excelize/v2"
)

// Template download metadata
const (
	TemplateFilename = "template-analisis-suara.xlsx"
	TemplateSheet    = "Template"
)

// column widths in characters, in RequiredColumns order
var templateWidths = []float64{20, 30, 20, 40}

var templateExamples = [][2]string{
	{"John Doe", "IT"},
	{"Jane Smith", "HR"},
}

var templateVotes = []string{
	"Kandidat 1, Kandidat 2",
	"Kandidat 2, Kandidat 3",
}

// Template builds the blank ballot workbook with a header row and two example ballots
// the example timestamps are now formatted as text in the canonical layout
func Template(now time.Time) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), TemplateSheet); err != nil {
		return nil, err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}

	header := make([]any, len(ballot.RequiredColumns))
	for i, c := range ballot.RequiredColumns {
		header[i] = c
	}
	if err := f.SetSheetRow(TemplateSheet, "A1", &header); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(TemplateSheet, "A1", "D1", bold); err != nil {
		return nil, err
	}

	stamp := now.Format(timestamp.Layout)
	for i, ex := range templateExamples {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []any{stamp, ex[0], ex[1], templateVotes[i]}
		if err := f.SetSheetRow(TemplateSheet, cell, &row); err != nil {
			return nil, err
		}
	}

	for i, w := range templateWidths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(TemplateSheet, col, col, w); err != nil {
			return nil, err
		}
	}

	return f.WriteToBuffer()
}
