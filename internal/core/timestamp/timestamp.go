// Package timestamp canonicalizes the Timestamp column of a ballot sheet
//
// Sheets export timestamps three ways: date serials, dd/MM/yyyy strings and
// whatever else the exporting tool felt like. Normalize tries an ordered list
// of parse attempts and formats the first hit as dd/MM/yyyy HH:mm:ss. When
// nothing parses the raw text is kept as is, so a row is never lost to a bad
// timestamp.
package timestamp

import (
	"math"
	"strings"
	"time"

	"ballotbox/internal/core/ballot"

	"github.com/araddon/dateparse"
	"github.com/xuri/excelize/v2"
)

// Layout is the canonical display format
const Layout = "02/01/2006 15:04:05"

// Missing is returned for blank cells so a record timestamp is never empty
const Missing = "-"

// day first layouts tried before generic parsing
// single digit day, month and hour are accepted by the Go parser for these verbs
var dayFirst = []string{
	"2/1/2006 15:04:05",
	"2/1/2006 15:04",
	"2/1/2006",
	"2-1-2006 15:04:05",
}

// serial bounds: 9999-12-31 is serial 2958465 in the 1900 system
const maxSerial = 2958466

// Options configures a Normalizer
type Options struct {
	// Location is the zone text timestamps are read and shown in, nil means time.Local
	Location *time.Location
	// Date1904 reads serials in the 1904 date system
	Date1904 bool
}

// Normalizer implements ballot.TimestampNormalizer
// it is immutable and safe for concurrent use
type Normalizer struct {
	loc      *time.Location
	date1904 bool
}

var _ ballot.TimestampNormalizer = (*Normalizer)(nil)

// New constructs a Normalizer
func New(opt Options) *Normalizer {
	loc := opt.Location
	if loc == nil {
		loc = time.Local
	}
	return &Normalizer{loc: loc, date1904: opt.Date1904}
}

// With1904 returns a copy that reads serials in the requested date system
func (n *Normalizer) With1904(on bool) *Normalizer {
	c := *n
	c.date1904 = on
	return &c
}

// attempt is one parse strategy; ok=false hands over to the next one
type attempt func(n *Normalizer, c ballot.Cell) (time.Time, bool)

var attempts = []attempt{
	fromSerial,
	fromCanonical,
	fromDayFirst,
	fromAnyFormat,
}

// Normalize returns the canonical form of c, or its raw text when no attempt parses
// a parse that lands outside years 1..9999 is treated as a miss and the raw text is kept
func (n *Normalizer) Normalize(c ballot.Cell) string {
	for _, try := range attempts {
		t, ok := try(n, c)
		if !ok {
			continue
		}
		if !inRange(t) {
			break
		}
		return t.Format(Layout)
	}
	return fallback(c)
}

// Parse is Normalize without the fallback, for callers that need the instant
func (n *Normalizer) Parse(c ballot.Cell) (time.Time, bool) {
	for _, try := range attempts {
		if t, ok := try(n, c); ok {
			return t, inRange(t)
		}
	}
	return time.Time{}, false
}

func fromSerial(n *Normalizer, c ballot.Cell) (time.Time, bool) {
	if c.Kind != ballot.CellNumber {
		return time.Time{}, false
	}
	v := c.Num
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 || v >= maxSerial {
		return time.Time{}, false
	}
	t, err := excelize.ExcelDateToTime(v, n.date1904)
	if err != nil {
		return time.Time{}, false
	}
	// serials carry wall clock time with float noise in the fraction
	return t.Round(time.Second), true
}

func fromCanonical(n *Normalizer, c ballot.Cell) (time.Time, bool) {
	s, ok := text(c)
	if !ok {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(Layout, s, n.loc)
	return t, err == nil
}

func fromDayFirst(n *Normalizer, c ballot.Cell) (time.Time, bool) {
	s, ok := text(c)
	if !ok {
		return time.Time{}, false
	}
	for _, layout := range dayFirst {
		if t, err := time.ParseInLocation(layout, s, n.loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func fromAnyFormat(n *Normalizer, c ballot.Cell) (time.Time, bool) {
	s, ok := text(c)
	if !ok {
		return time.Time{}, false
	}
	t, err := dateparse.ParseIn(s, n.loc,
		dateparse.PreferMonthFirst(false),
		dateparse.RetryAmbiguousDateWithSwap(true),
	)
	if err != nil {
		return time.Time{}, false
	}
	// explicit offsets are shown in the configured zone
	return t.In(n.loc), true
}

func text(c ballot.Cell) (string, bool) {
	if c.Kind != ballot.CellText {
		return "", false
	}
	s := strings.TrimSpace(c.Text)
	return s, s != ""
}

func inRange(t time.Time) bool {
	y := t.Year()
	return y >= 1 && y <= 9999
}

func fallback(c ballot.Cell) string {
	if strings.TrimSpace(c.String()) == "" {
		return Missing
	}
	return c.String()
}
