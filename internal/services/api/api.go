// Package api provides the HTTP API for the application
package api

import (
	"context"
	"time"

	"ballotbox/internal/platform/config"
	"ballotbox/internal/platform/logger"
	phttp "ballotbox/internal/platform/net/http"
	"ballotbox/internal/platform/store"

	"ballotbox/internal/modkit"
	"ballotbox/internal/modkit/httpkit"
	"ballotbox/internal/modkit/module"
	"ballotbox/internal/modkit/swaggerkit"

	ballotsmod "ballotbox/internal/services/ballots/module"

	metamod "ballotbox/internal/services/api/meta/module"
)

// startTimeout bounds schema migration and the warm reload at boot
const startTimeout = 30 * time.Second

// Options are the API options
type Options struct {
	// Config is the CORE_ view; modules add their own prefix under it
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool
}

// Mount mounts the API service onto the given router
// it returns an error when the ballot store cannot be migrated or reloaded
func Mount(ctx context.Context, r phttp.Router, opt Options) error {
	// shared deps for modules
	deps := modkit.Deps{Cfg: opt.Config}
	if opt.Store != nil {
		deps.PG = opt.Store.PG
		deps.RDS = opt.Store.RDS
	}
	if opt.Logger != nil {
		deps.Log = *opt.Logger
	}

	ballots := ballotsmod.New(deps)
	sctx, cancel := context.WithTimeout(ctx, startTimeout)
	defer cancel()
	if err := ballots.Start(sctx); err != nil {
		return err
	}

	status := func() (string, bool) {
		return ballots.Settings().Store, ballots.Service().Snapshot().HasData
	}

	mods := []module.Module{
		metamod.New(deps, status),
		ballots,
	}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(api httpkit.Router) {
		// Swagger + profiler
		swaggerkit.Mount(r, opt.EnableSwagger)
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		for _, m := range mods {
			// register each module's ports under its own name (for cross-module lookups)
			module.Register(m.Name(), m.Ports())

			// mount module routes under its Prefix()
			m.MountRoutes(api)
		}
	})
	return nil
}
