package ballot

import (
	"strings"
	"unicode"
)

// Required column names, matched case-sensitively against the header row
const (
	ColTimestamp = "Timestamp"
	ColNama      = "Nama"
	ColUnit      = "Unit"
	ColSuara     = "Suara"
)

// RequiredColumns lists the header names in sheet order
var RequiredColumns = []string{ColTimestamp, ColNama, ColUnit, ColSuara}

// VoterRecord is one canonical ballot row
// nama and unit are trimmed and non empty, suara holds at least one trimmed candidate
// timestamp is never empty
type VoterRecord struct {
	Timestamp string   `json:"timestamp" example:"15/03/2024 08:30:00"`
	Nama      string   `json:"nama" example:"John Doe"`
	Unit      string   `json:"unit" example:"IT"`
	Suara     []string `json:"suara" example:"Kandidat 1,Kandidat 2"`
}

// Voter is the roster entry kept per candidate
type Voter struct {
	Timestamp string `json:"timestamp" example:"15/03/2024 08:30:00"`
	Nama      string `json:"nama" example:"John Doe"`
	Unit      string `json:"unit" example:"IT"`
}

// Voter projects the record onto its roster entry
func (r VoterRecord) Voter() Voter {
	return Voter{Timestamp: r.Timestamp, Nama: r.Nama, Unit: r.Unit}
}

// TimestampNormalizer canonicalizes one raw timestamp cell
type TimestampNormalizer interface {
	Normalize(c Cell) string
}

// NormalizeRow turns one raw row into a VoterRecord
// rows without a name, a unit or at least one candidate are rejected with ErrRowRejected
func NormalizeRow(row RawRow, ts TimestampNormalizer) (VoterRecord, error) {
	rec := VoterRecord{
		Timestamp: ts.Normalize(row[ColTimestamp]),
		Nama:      row.Text(ColNama),
		Unit:      row.Text(ColUnit),
		Suara:     SplitVotes(row.Text(ColSuara)),
	}

	switch {
	case rec.Nama == "":
		return VoterRecord{}, rejectf("missing %s", ColNama)
	case rec.Unit == "":
		return VoterRecord{}, rejectf("missing %s", ColUnit)
	case len(rec.Suara) == 0:
		return VoterRecord{}, rejectf("missing %s", ColSuara)
	}
	return rec, nil
}

// SplitVotes splits a vote cell on commas and trims each candidate
// blank candidates ("A,,B" or a trailing comma) are dropped
func SplitVotes(s string) []string {
	if trim(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := trim(p); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// trim strips unicode space and a stray byte order mark, which spreadsheet exports like to leave on the first cell
func trim(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || r == '\uFEFF'
	})
}
