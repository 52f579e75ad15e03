// Package httpkit provides tiny HTTP helpers and adapters
package httpkit

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"

	perrs "ballotbox/internal/platform/errors"
)

// TokenFunc checks a bearer token and returns the operator it belongs to
type TokenFunc func(token string) (operator string, err error)

// Port implements middleware.AuthPort by reading Authorization and delegating to a TokenFunc
type Port struct {
	parse TokenFunc
}

// NewPortFunc builds a Port from a simple parser function
func NewPortFunc(fn TokenFunc) *Port {
	return &Port{parse: fn}
}

var errBadToken = errors.New("token mismatch")

// StaticToken accepts exactly one shared secret and names its holder operator
func StaticToken(secret, operator string) TokenFunc {
	want := []byte(secret)
	return func(tok string) (string, error) {
		if secret == "" || subtle.ConstantTimeCompare([]byte(tok), want) != 1 {
			return "", errBadToken
		}
		return operator, nil
	}
}

// Parse extracts the operator from an Authorization Bearer token
// returns unauthorized when the header is missing, malformed, or the parser returns an error
func (p *Port) Parse(r *http.Request) (string, error) {
	raw, err := BearerToken(r)
	if err != nil {
		return "", err
	}
	if p.parse == nil {
		return "", perrs.Unauthorizedf("invalid bearer token")
	}
	op, err := p.parse(raw)
	if err != nil {
		return "", perrs.Unauthorizedf("invalid bearer token")
	}
	return op, nil
}

// BearerToken returns the raw token from the Authorization header
// the scheme is matched case-insensitively and surrounding spaces are dropped
func BearerToken(r *http.Request) (string, error) {
	s := strings.TrimSpace(r.Header.Get("Authorization"))
	const prefix = "bearer"
	if len(s) < len(prefix) || !strings.EqualFold(s[:len(prefix)], prefix) {
		return "", perrs.Unauthorizedf("missing bearer token")
	}
	raw := strings.TrimSpace(s[len(prefix):])
	if raw == "" {
		return "", perrs.Unauthorizedf("missing bearer token")
	}
	return raw, nil
}
