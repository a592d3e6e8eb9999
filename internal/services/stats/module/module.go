// Package module wires the stats API into HTTP via modkit
package module

import (
	"net/http"

	"boostjar/internal/modkit"
	"boostjar/internal/modkit/httpkit"
	"boostjar/internal/platform/strings"
	"boostjar/internal/services/stats/domain"

	"boostjar/internal/adapters/rewards"

	statshttp "boostjar/internal/services/stats/http"
	"boostjar/internal/services/stats/repo"
	"boostjar/internal/services/stats/service"
)

// Ports exposes the service port for cross-module lookups
type Ports struct {
	Service domain.ServicePort
}

// Module implements the stats module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	ports     Ports
	swaggerOn bool

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc *service.Service
}

// New constructs the stats module
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append(
		[]modkit.Option{modkit.WithName("stats"), modkit.WithPrefix("/stats")},
		opts...,
	)...)

	rcfg := deps.Cfg.Prefix("REWARDS_")
	var rw service.RewardsStatsPort
	if base := rcfg.MayString("BASE_URL", ""); base != "" {
		rw = rewards.NewClient(rewards.Options{
			BaseURL: base,
			Token:   rcfg.MayString("TOKEN", ""),
		})
	}

	svc := service.New(repo.NewCH(deps.CH), rw)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = Ports{Service: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		statshttp.Register(r, m.svc)
		if external != nil {
			external(r)
		}
	}
	return m
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		if m.subrouter != nil {
			rr = m.subrouter(rr)
		}
		if m.register != nil {
			m.register(rr)
		}
	})
}

// Name is the module name
func (m *Module) Name() string { return strings.MustString(m.name, "module name") }

// Prefix is the module route prefix
func (m *Module) Prefix() string { return strings.MustPrefix(m.prefix) }

// Middlewares is the module middlewares
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
