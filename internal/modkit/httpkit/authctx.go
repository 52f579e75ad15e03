package httpkit

import (
	"net/http"

	perrs "ballotbox/internal/platform/errors"
	pnet "ballotbox/internal/platform/net"
)

// Operator returns the operator that passed the write guard
func Operator(r *http.Request) (string, error) {
	op := pnet.Operator(r.Context())
	if op == "" {
		return "", perrs.Unauthorizedf("missing bearer token")
	}
	return op, nil
}

// OperatorOr returns the guarded operator or fallback on open routes
func OperatorOr(r *http.Request, fallback string) string {
	if op, err := Operator(r); err == nil {
		return op
	}
	return fallback
}
