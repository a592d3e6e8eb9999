// Package module wires the user directory into HTTP via modkit
package module

import (
	"context"
	"net/http"
	"time"

	"boostjar/internal/modkit"
	"boostjar/internal/modkit/httpkit"
	"boostjar/internal/modkit/repokit"
	"boostjar/internal/platform/strings"
	"boostjar/internal/services/directory/domain"

	"boostjar/internal/adapters/jira"

	dirhttp "boostjar/internal/services/directory/http"
	"boostjar/internal/services/directory/repo"
	"boostjar/internal/services/directory/service"
)

// SyncRunner is the loop surface worker binaries drive
type SyncRunner interface {
	RunSync(ctx context.Context, siteID string, interval time.Duration) error
}

// Ports exposes the service and worker surfaces for cross-module lookups
type Ports struct {
	Service domain.ServicePort
	Runner  SyncRunner
}

// Module implements the directory module
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

// New constructs the directory module
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append(
		[]modkit.Option{modkit.WithName("directory"), modkit.WithPrefix("/directory")},
		opts...,
	)...)

	jcfg := deps.Cfg.Prefix("JIRA_")
	var src domain.UserSource
	if base := jcfg.MayString("BASE_URL", ""); base != "" {
		src = userSource{c: jira.NewClient(jira.Options{
			BaseURL:  base,
			Email:    jcfg.MayString("EMAIL", ""),
			APIToken: jcfg.MayString("API_TOKEN", ""),
		})}
	}

	svc := service.New(
		service.Config{
			DefaultTeamID: deps.Cfg.Prefix("BOOSTS_").MayString("DEFAULT_TEAM_ID", ""),
		},
		repokit.TxRunner(deps.PG),
		repo.NewPG(),
		src,
	)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = Ports{Service: svc, Runner: svc}

	external := b.Register
	m.register = func(r httpkit.Router) {
		dirhttp.Register(r, m.svc)
		if external != nil {
			external(r)
		}
	}
	return m
}

// userSource adapts the Jira client to the directory's source port
type userSource struct{ c *jira.Client }

// SearchUsers implements domain.UserSource
func (s userSource) SearchUsers(ctx context.Context, query string, startAt, maxResults int) ([]domain.SourceUser, error) {
	page, err := s.c.SearchUsers(ctx, query, startAt, maxResults)
	if err != nil {
		return nil, err
	}
	out := make([]domain.SourceUser, 0, len(page))
	for _, u := range page {
		out = append(out, domain.SourceUser{
			AccountID:   u.AccountID,
			AccountType: u.AccountType,
			DisplayName: u.DisplayName,
			Email:       u.Email,
			Active:      u.Active,
		})
	}
	return out, nil
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
