// Package module mounts the meta routes
package module

import (
	"time"

	"ballotbox/internal/core/version"
	"ballotbox/internal/modkit"
	"ballotbox/internal/modkit/httpkit"

	metahttp "ballotbox/internal/services/api/meta/http"
)

// Module serves /meta
type Module struct {
	built modkit.Built
	deps metahttp.Deps
}

// New builds the meta module; status may be nil when no ballot pipeline is mounted
func New(deps modkit.Deps, status metahttp.Status, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("meta"), modkit.WithPrefix("/meta")}, opts...)...)
	d := metahttp.Deps{ServiceName: version.Info().Service, StartedAt: time.Now(), Status: status}
	// typed nils must stay untyped so the probe reports skipped
	if deps.PG != nil {
		d.PG = deps.PG
	}
	if deps.RDS != nil {
		d.RDS = deps.RDS
	}
	return &Module{built: b, deps: d}
}

// MountRoutes mounts the meta routes under the prefix
func (m *Module) MountRoutes(r httpkit.Router) {
	m.built.Mount(r, func(rr httpkit.Router) { metahttp.Register(rr, m.deps) })
}

// Name is the registry key
func (m *Module) Name() string { return m.built.Name }

// Ports is nil, meta exposes nothing to other modules
func (m *Module) Ports() any { return nil }
