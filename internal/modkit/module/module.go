// Package module is the module contract and the process wide port registry
package module

import phttp "ballotbox/internal/platform/net/http"

// Module mounts routes and exposes ports to other modules and the CLI
type Module interface {
	MountRoutes(r phttp.Router)
	Ports() any
	Name() string
}
