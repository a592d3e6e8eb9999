// Package module wires the boosts engine into HTTP via modkit
package module

import (
	"context"
	"crypto/subtle"
	"net/http"

	"boostjar/internal/modkit"
	"boostjar/internal/modkit/httpkit"
	"boostjar/internal/modkit/repokit"
	perr "boostjar/internal/platform/errors"
	"boostjar/internal/platform/net/middleware"
	"boostjar/internal/platform/strings"
	"boostjar/internal/services/boosts/domain"

	"boostjar/internal/adapters/jira"
	"boostjar/internal/adapters/rewards"

	boostshttp "boostjar/internal/services/boosts/http"
	"boostjar/internal/services/boosts/repo"
	"boostjar/internal/services/boosts/service"
)

// Ports exposes the service port for cross-module lookups.
// Directory is injected by the composition root so the engine can
// resolve plain-text mentions against the synced user directory
type Ports struct {
	Service   domain.ServicePort
	Directory domain.DirectoryPort
}

// Module implements the boosts module
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

// New constructs the boosts module
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append(
		[]modkit.Option{modkit.WithName("boosts"), modkit.WithPrefix("/integrations/jira")},
		opts...,
	)...)

	var injected Ports
	if p, ok := b.Ports.(Ports); ok {
		injected = p
	}

	cfg := deps.Cfg
	bcfg := cfg.Prefix("BOOSTS_")
	rcfg := cfg.Prefix("REWARDS_")
	jcfg := cfg.Prefix("JIRA_")

	rw := rewards.NewClient(rewards.Options{
		BaseURL: rcfg.MustString("BASE_URL"),
		Token:   rcfg.MayString("TOKEN", ""),
		Timeout: bcfg.MayDuration("DISPATCH_TIMEOUT", 0),
	})

	var commenter domain.CommenterPort
	if base := jcfg.MayString("BASE_URL", ""); base != "" {
		commenter = jira.NewClient(jira.Options{
			BaseURL:  base,
			Email:    jcfg.MayString("EMAIL", ""),
			APIToken: jcfg.MayString("API_TOKEN", ""),
		})
	}

	svc := service.New(
		service.Config{
			Provider:        bcfg.MayString("PROVIDER", "jira"),
			DefaultTeamID:   bcfg.MayString("DEFAULT_TEAM_ID", ""),
			Amount:          bcfg.MayInt("AMOUNT", 1),
			Workers:         bcfg.MayInt("WORKERS", 16),
			Timeout:         bcfg.MayDuration("DISPATCH_TIMEOUT", 0),
			ConfirmComments: bcfg.MayBool("CONFIRM_COMMENTS", true),
		},
		repokit.TxRunner(deps.PG),
		repo.NewPG(),
		repo.NewFacts(deps.CH),
		dispatcher{c: rw},
		commenter,
		injected.Directory,
	)

	var auth middleware.AuthPort
	if secret := bcfg.MayString("SHARED_SECRET", ""); secret != "" {
		auth = tokenAuth{secret: secret}
	}

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		svc:       svc,
	}
	m.ports = Ports{Service: svc, Directory: injected.Directory}

	external := b.Register
	m.register = func(r httpkit.Router) {
		if auth != nil {
			httpkit.Protected(r, auth, func(gr httpkit.Router) {
				boostshttp.Register(gr, m.svc)
			})
		} else {
			boostshttp.Register(r, m.svc)
		}
		if external != nil {
			external(r)
		}
	}
	return m
}

// tokenAuth gates integration routes behind a shared secret header
type tokenAuth struct{ secret string }

// Parse implements middleware.AuthPort
func (a tokenAuth) Parse(r *http.Request) (string, string, error) {
	got := r.Header.Get("X-Integration-Token")
	if got == "" || subtle.ConstantTimeCompare([]byte(got), []byte(a.secret)) != 1 {
		return "", "", perr.Unauthorizedf("invalid integration token")
	}
	return "integration", "", nil
}

// dispatcher adapts the rewards client to the engine's port
type dispatcher struct{ c *rewards.Client }

// SendBoost implements domain.RewardsPort
func (d dispatcher) SendBoost(ctx context.Context, req domain.BoostRequest) (string, error) {
	rcpt, err := d.c.PostBoost(ctx, rewards.BoostPayload{
		Provider:       req.Provider,
		TeamID:         req.TeamID,
		ActorAccountID: req.ActorAccountID,
		Receivers:      []string{req.RecipientAccountID},
		BoostAmount:    req.Amount,
		Message:        req.Message,
		Context: rewards.BoostContext{
			TriggerType: string(req.TriggerKind),
			IssueKey:    req.IssueKey,
			CommentID:   req.CommentID,
		},
	})
	if err != nil {
		return "", err
	}
	if rcpt.Status != "" {
		return rcpt.Status, nil
	}
	return rcpt.ID, nil
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
