// Package http provides HTTP transport for the stats API
package http

import (
	stdhttp "net/http"

	"boostjar/internal/modkit/httpkit"
	"boostjar/internal/services/stats/domain"
	svc "boostjar/internal/services/stats/service"
)

// Register mounts stats endpoints on the given router.
// Query shapes go over POST JSON for composability
func Register(r httpkit.Router, s *svc.Service) {
	h := &handlers{svc: s}

	httpkit.PostJSON[domain.OutcomesInput](r, "/outcomes", h.outcomes)
	httpkit.PostJSON[domain.TopRecipientsInput](r, "/recipients/top", h.topRecipients)
	httpkit.PostJSON[userStatsInput](r, "/users", h.userStats)
}

type handlers struct{ svc *svc.Service }

type userStatsInput struct {
	AccountID string `json:"account_id" validate:"required,max=128"`
}

// @Summary Dispatch outcomes per day
// @Tags Stats
// @Accept json
// @Produce json
// @Param payload body domain.OutcomesInput true "Query"
// @Success 200 {object} domain.OutcomesResp "ok"
// @Router /stats/outcomes [post]
func (h *handlers) outcomes(r *stdhttp.Request, in domain.OutcomesInput) (any, error) {
	return h.svc.Outcomes(r.Context(), in)
}

// @Summary Recipients leaderboard
// @Tags Stats
// @Accept json
// @Produce json
// @Param payload body domain.TopRecipientsInput true "Query"
// @Success 200 {object} domain.TopRecipientsResp "ok"
// @Router /stats/recipients/top [post]
func (h *handlers) topRecipients(r *stdhttp.Request, in domain.TopRecipientsInput) (any, error) {
	return h.svc.TopRecipients(r.Context(), in)
}

// @Summary Reward totals for one user
// @Tags Stats
// @Accept json
// @Produce json
// @Param payload body userStatsInput true "User"
// @Success 200 {object} domain.UserStatsResp "ok"
// @Router /stats/users [post]
func (h *handlers) userStats(r *stdhttp.Request, in userStatsInput) (any, error) {
	return h.svc.UserStats(r.Context(), in.AccountID)
}
