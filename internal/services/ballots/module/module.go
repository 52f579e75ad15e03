// Package module wires ballot ingestion into the API using modkit
package module

import (
	"context"
	"strings"

	"ballotbox/internal/modkit"
	"ballotbox/internal/modkit/httpkit"
	"ballotbox/internal/platform/logger"
	"ballotbox/internal/services/ballots/domain"
	ballotshttp "ballotbox/internal/services/ballots/http"
	"ballotbox/internal/services/ballots/repo"
	"ballotbox/internal/services/ballots/service"
)

// Ports exposes the service port for cross-module lookups and the CLI
type Ports struct {
	Service domain.ServicePort
}

// Module implements the ballots module
type Module struct {
	built modkit.Built

	hopt  ballotshttp.Options
	set   Settings
	store repo.Storage
	svc   *service.Svc
}

// migrator is implemented by backends that own a schema
type migrator interface {
	Migrate(ctx context.Context) error
}

// New constructs the ballots module from deps.Cfg
// it panics when the configured backend has no matching dep
func New(deps modkit.Deps, opts ...modkit.Option) *Module {
	return NewWith(deps, FromConfig(deps.Cfg), opts...)
}

// NewWith constructs the ballots module from explicit settings
func NewWith(deps modkit.Deps, set Settings, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("ballots"), modkit.WithPrefix("/ballots")}, opts...)...)

	st := openStorage(deps, set)
	svc := service.New(st, service.Config{
		Location: set.Location,
		Date1904: set.Date1904,
		PageSize: set.PageSize,
	})

	m := &Module{built: b, set: set, store: st, svc: svc}
	m.hopt = ballotshttp.Options{MaxUpload: set.MaxUploadBytes, MaxRows: set.MaxUploadBytes}
	if set.AdminToken != "" {
		m.hopt.Auth = httpkit.NewPortFunc(httpkit.StaticToken(set.AdminToken, "admin"))
	}
	return m
}

var openStorage = newStorage

func newStorage(deps modkit.Deps, set Settings) repo.Storage {
	switch strings.ToLower(set.Store) {
	case StorePG:
		if deps.PG == nil {
			panic("ballots: store pg requires deps.PG")
		}
		return repo.NewPG(deps.PG, repo.NewPGBinder(), set.Key)
	case StoreRedis:
		if deps.RDS == nil {
			panic("ballots: store redis requires deps.RDS")
		}
		return repo.NewRedis(deps.RDS, set.Key, set.RedisTTL)
	default:
		return repo.NewMemory()
	}
}

// Start migrates the backend schema and, when enabled, publishes the persisted ballots
func (m *Module) Start(ctx context.Context) error {
	if mg, ok := m.store.(migrator); ok {
		if err := mg.Migrate(ctx); err != nil {
			return err
		}
	}
	if !m.set.Warm {
		return nil
	}
	rep, err := m.svc.Reload(ctx)
	if err != nil {
		return err
	}
	logger.Named("ballots").Info().
		Str("store", m.set.Store).
		Bool("has_data", rep.HasData).
		Int("records", rep.RowsAccepted).
		Msg("ballots: started")
	return nil
}

// MountRoutes mounts the module routes under its prefix
func (m *Module) MountRoutes(r httpkit.Router) {
	m.built.Mount(r, func(rr httpkit.Router) { ballotshttp.Register(rr, m.svc, m.hopt) })
}

// Ports returns the module ports
func (m *Module) Ports() any { return Ports{Service: m.svc} }

// Settings returns the settings the module was built with
func (m *Module) Settings() Settings { return m.set }

// Service returns the ballots service
func (m *Module) Service() domain.ServicePort { return m.svc }

// Name returns the module name
func (m *Module) Name() string { return m.built.Name }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return m.built.Prefix }
