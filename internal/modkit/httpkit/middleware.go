package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	phttp "ballotbox/internal/platform/net/http"
	"ballotbox/internal/platform/net/middleware"
)

// slowRequest marks access log lines at warn
const slowRequest = 500 * time.Millisecond

// CommonStack is the middleware every API scope runs, outermost first
func CommonStack() []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		middleware.RequestID(),
		middleware.RealIP(),
		middleware.RecoverJSON,
		middleware.AccessLog(slowRequest),
		middleware.NoCache(),
		middleware.CORS(middleware.CORSOptions{}),
		middleware.Compress(flate.BestSpeed),
		middleware.Heartbeat("/health"),
		middleware.StripSlashes(),
		middleware.Timeout(30 * time.Second),
	}
}

// Auth is the auth middleware writing refusals as JSON envelopes
func Auth(p middleware.AuthPort) func(http.Handler) http.Handler {
	return middleware.Auth(p, phttp.JSON)
}
