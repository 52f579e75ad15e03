package modkit

import (
	"net/http"

	"ballotbox/internal/modkit/httpkit"
	str "ballotbox/internal/platform/strings"
)

// Built is the resolved naming and mounting of one module
type Built struct {
	Name     string
	Prefix   string
	Mw       []func(http.Handler) http.Handler
	Register func(httpkit.Router)
}

// Build applies opts in order, later options win
func Build(opts ...Option) Built {
	var b Built
	for _, o := range opts {
		o(&b)
	}
	b.Mw = append([]func(http.Handler) http.Handler(nil), b.Mw...)
	return b
}

// Mount routes own under the prefix behind the module middleware, then any WithRegister routes
// it panics on an empty prefix
func (b Built) Mount(r httpkit.Router, own func(httpkit.Router)) {
	r.Route(str.MustPrefix(b.Prefix), func(rr httpkit.Router) {
		if len(b.Mw) > 0 {
			rr.Use(b.Mw...)
		}
		own(rr)
		if b.Register != nil {
			b.Register(rr)
		}
	})
}
