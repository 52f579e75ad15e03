package ballot

import "strings"

// Verdict is the tagged result of a structural check
type Verdict struct {
	Valid   bool
	Empty   bool
	Missing []string
}

// Err returns nil for a valid table, ErrInvalidStructure otherwise
func (v Verdict) Err() error {
	switch {
	case v.Valid:
		return nil
	case v.Empty:
		return Failf(ErrInvalidStructure, "table has no rows")
	default:
		return Failf(ErrInvalidStructure, "missing required columns: %s", strings.Join(v.Missing, ", "))
	}
}

// Validate checks that the table has rows and that row one carries every required column
// presence is by key, not value, and only row one is inspected
// later rows missing a key fall through to NormalizeRow and are treated as blank
func Validate(t RawTable) Verdict {
	if len(t) == 0 {
		return Verdict{Empty: true}
	}
	var missing []string
	for _, col := range RequiredColumns {
		if _, ok := t[0][col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return Verdict{Missing: missing}
	}
	return Verdict{Valid: true}
}
