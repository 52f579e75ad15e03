// Package normalize folds free text into a comparison key for searching names, units and candidates
// Pipeline order
// 1 Sanitize control bytes and repair UTF-8
// 2 Unicode NFKC normalization
// 3 Case folding
// 4 Remove combining marks and format characters
// 5 Width fold fullwidth to ASCII
// 6 Collapse whitespace to single spaces and trim
package normalize

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// pool of fresh transformer chains
var chainPool = sync.Pool{
	New: func() any {
		// order matters and mirrors the documented pipeline
		return transform.Chain(
			norm.NFKC,
			cases.Fold(),                       // unicode case folding
			runes.Remove(runes.In(unicode.Mn)), // strip combining marks
			runes.Remove(runes.In(unicode.Cf)), // strip format chars ZWJ ZWNJ FEFF etc
			width.Fold,                         // map fullwidth forms to ASCII
		)
	},
}

// Fold returns the comparison key of s
// Fold is idempotent: Fold(Fold(s)) == Fold(s)
func Fold(s string) string {
	if s == "" {
		return ""
	}

	s = strings.ToValidUTF8(Sanitize(s), "")

	tr := chainPool.Get().(transform.Transformer)
	ns, _, _ := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)

	return collapseSpaces(ns)
}

// Contains reports whether needle occurs in haystack after folding both
// an empty needle matches everything
func Contains(haystack, needle string) bool {
	return ContainsFolded(haystack, Fold(needle))
}

// ContainsFolded is Contains for a needle that is already folded
// use it when one query is matched against many fields
func ContainsFolded(haystack, foldedNeedle string) bool {
	if foldedNeedle == "" {
		return true
	}
	return strings.Contains(Fold(haystack), foldedNeedle)
}

// collapseSpaces converts every whitespace run to a single ASCII space and trims the ends
func collapseSpaces(s string) string {
	if s == "" {
		return s
	}
	return strings.Join(strings.FieldsFunc(s, unicode.IsSpace), " ")
}
