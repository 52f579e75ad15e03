// Package modkit builds API modules from shared deps and options
package modkit

import "ballotbox/internal/modkit/module"

// Module is the surface api.Mount composes
type Module = module.Module
