package normalize

import (
	"strings"
	"unicode/utf8"
)

// Sanitize drops characters that should never reach storage or a search key
// NUL, ASCII controls other than tab and line breaks, DEL, C1 controls and invalid UTF-8
// strings without any of those are returned unchanged
func Sanitize(s string) string {
	if s == "" || clean(s) {
		return s
	}
	return strings.Map(func(r rune) rune {
		if keep(r) {
			return r
		}
		return -1
	}, s)
}

func clean(s string) bool {
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			return false
		}
		if !keep(r) {
			return false
		}
		i += size
	}
	return true
}

func keep(r rune) bool {
	switch {
	case r == '\n' || r == '\r' || r == '\t':
		return true
	case r < 0x20, r == 0x7F:
		return false
	case r >= 0x80 && r <= 0x9F:
		return false
	case r == utf8.RuneError:
		// strings.Map reports invalid bytes as RuneError
		return false
	}
	return true
}
