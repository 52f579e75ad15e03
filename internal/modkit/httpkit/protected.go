package httpkit

import (
	"ballotbox/internal/platform/net/middleware"
)

// Protected groups routes behind the auth port
// a nil port registers the routes unguarded
func Protected(r Router, p middleware.AuthPort, fn func(Router)) {
	r.Group(func(gr Router) {
		gr.Use(Auth(p))
		fn(gr)
	})
}
