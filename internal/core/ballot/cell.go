// Package ballot holds the ballot table model and the row rules that turn
// untrusted sheet rows into voter records
//
// A raw table is what a decoder produced from the first sheet of a workbook
// (or what a client posted as JSON). Nothing in it is trusted: keys may be
// missing, cells may be numbers where text was expected, and the vote cell is
// a comma separated list. Validate checks the header shape, NormalizeRow
// canonicalizes one row at a time.
package ballot

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// CellKind tags the dynamic type of a raw cell
type CellKind uint8

const (
	// CellEmpty is a blank or null cell
	CellEmpty CellKind = iota
	// CellNumber is a numeric cell, dates included (spreadsheets store them as serials)
	CellNumber
	// CellText is anything else, rendered as text
	CellText
)

// Cell is one raw cell value as decoded from a sheet
type Cell struct {
	Kind CellKind
	Num  float64
	Text string
}

// Number returns a numeric cell
func Number(v float64) Cell { return Cell{Kind: CellNumber, Num: v} }

// Text returns a text cell
func Text(s string) Cell { return Cell{Kind: CellText, Text: s} }

// IsEmpty reports whether the cell carries no value
func (c Cell) IsEmpty() bool { return c.Kind == CellEmpty }

// String renders the cell the way a sheet would show its raw value
func (c Cell) String() string {
	switch c.Kind {
	case CellNumber:
		return strconv.FormatFloat(c.Num, 'f', -1, 64)
	case CellText:
		return c.Text
	default:
		return ""
	}
}

// MarshalJSON writes numbers as JSON numbers, text as strings and empty as null
func (c Cell) MarshalJSON() ([]byte, error) {
	switch c.Kind {
	case CellNumber:
		return json.Marshal(c.Num)
	case CellText:
		return json.Marshal(c.Text)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON accepts numbers, strings, booleans and null
func (c *Cell) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*c = Cell{}
		return nil
	}
	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*c = Text(s)
	case 't', 'f':
		var v bool
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*c = Text(strconv.FormatBool(v))
	default:
		var f float64
		if err := json.Unmarshal(b, &f); err != nil {
			return err
		}
		*c = Number(f)
	}
	return nil
}

// RawRow is one untrusted row keyed by header name
// key presence matters: a missing key and a blank cell are different things to Validate
type RawRow map[string]Cell

// RawTable is the decoded first sheet, header row excluded
type RawTable []RawRow

// Text returns the trimmed text of a column, empty when absent
func (r RawRow) Text(col string) string {
	c, ok := r[col]
	if !ok {
		return ""
	}
	return trim(c.String())
}
