// Package http provides HTTP transport for the boosts engine
package http

import (
	"io"
	stdhttp "net/http"

	"boostjar/internal/modkit/httpkit"
	"boostjar/internal/platform/logger"
	"boostjar/internal/services/boosts/domain"
	svc "boostjar/internal/services/boosts/service"
)

// maxEventBody bounds webhook payload reads
const maxEventBody = 1 << 20

// Register mounts boosts endpoints on the given router
func Register(r httpkit.Router, s *svc.Service) {
	h := &handlers{svc: s}

	r.Post("/events", httpkit.Handle(h.webhook))
	httpkit.PostJSON[domain.ManualBoostInput](r, "/boosts", h.manualBoost)
}

type handlers struct{ svc *svc.Service }

// @Summary Ingest one platform webhook event
// @Tags Boosts
// @Accept json
// @Produce json
// @Success 200 {object} domain.ProcessReport "ok"
// @Router /integrations/jira/events [post]
func (h *handlers) webhook(r *stdhttp.Request) httpkit.Response {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxEventBody))
	if err != nil {
		return httpkit.Error(err)
	}

	// delivery is at-least-once and payloads vary by site config, so a
	// body this engine cannot read is a no-trigger event, not a 4xx the
	// platform would retry forever
	ev, err := domain.ParseWebhook(body)
	if err != nil {
		logger.C(r.Context()).Warn().Err(err).Msg("unreadable webhook payload")
		return httpkit.OK(domain.ProcessReport{Trigger: "none", AllOK: true})
	}

	report, err := h.svc.ProcessEvent(r.Context(), ev)
	if err != nil {
		return httpkit.Error(err)
	}
	return httpkit.OK(report)
}

// @Summary Dispatch one manual boost
// @Tags Boosts
// @Accept json
// @Produce json
// @Param payload body domain.ManualBoostInput true "Grant"
// @Success 200 {object} domain.ProcessReport "ok"
// @Router /integrations/jira/boosts [post]
func (h *handlers) manualBoost(r *stdhttp.Request, in domain.ManualBoostInput) (any, error) {
	return h.svc.ManualBoost(r.Context(), in)
}
