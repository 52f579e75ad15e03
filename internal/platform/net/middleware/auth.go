package middleware

import (
	"net/http"

	"ballotbox/internal/platform/logger"
	pnet "ballotbox/internal/platform/net"
)

// AuthPort resolves the operator behind a request
type AuthPort interface {
	// Parse returns the operator name or an error
	Parse(r *http.Request) (operator string, err error)
}

// Auth rejects requests the port refuses and tags the rest with the operator
// a nil port lets every request through
func Auth(p AuthPort, write func(w http.ResponseWriter, status int, body any)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if p == nil {
				next.ServeHTTP(w, r)
				return
			}
			op, err := p.Parse(r)
			if err != nil {
				status, body := pnet.Failure(err, pnet.RequestID(r.Context()))
				write(w, status, body)
				return
			}
			rid := pnet.RequestID(r.Context())
			ctx := pnet.WithRequest(r.Context(), rid, op)
			ctx = logger.WithRequest(ctx, rid, op)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
