// Package api provides the HTTP API for the application
package api

import (
	"boostjar/internal/platform/config"
	"boostjar/internal/platform/logger"
	phttp "boostjar/internal/platform/net/http"
	"boostjar/internal/platform/store"

	"boostjar/internal/modkit"
	"boostjar/internal/modkit/httpkit"
	"boostjar/internal/modkit/module"
	"boostjar/internal/modkit/swaggerkit"

	metamod "boostjar/internal/services/api/meta/module"
	boostsmod "boostjar/internal/services/boosts/module"
	directorymod "boostjar/internal/services/directory/module"
	statsmod "boostjar/internal/services/stats/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	// shared deps for modules
	deps := modkit.Deps{
		Cfg: opt.Config,
		PG:  opt.Store.PG,
		CH:  opt.Store.CH,
	}

	// Construct the directory module first and extract its service port
	directory := directorymod.New(deps)
	dir := module.MustPortsOf[directorymod.Ports](directory).Service

	// Inject the directory into the boosts engine so plain-text mentions
	// resolve against the synced user roster
	boosts := boostsmod.New(
		deps,
		modkit.WithPorts(boostsmod.Ports{
			Directory: dir,
		}),
	)

	mods := []module.Module{
		metamod.New(deps),
		directory,
		boosts,
		statsmod.New(deps),
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
}
