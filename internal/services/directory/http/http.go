// Package http provides HTTP transport for the user directory
package http

import (
	stdhttp "net/http"

	"boostjar/internal/modkit/httpkit"
	"boostjar/internal/services/directory/domain"
	svc "boostjar/internal/services/directory/service"
)

// Register mounts directory endpoints on the given router
func Register(r httpkit.Router, s *svc.Service) {
	h := &handlers{svc: s}

	httpkit.PostJSON[domain.Installation](r, "/installations", h.upsertInstallation)
	httpkit.PostJSON[syncInput](r, "/sync", h.sync)
	httpkit.PostJSON[domain.ListUsersInput](r, "/users", h.listUsers)
}

type handlers struct{ svc *svc.Service }

type syncInput struct {
	SiteID string `json:"site_id" validate:"omitempty,max=128"`
}

// @Summary Register or update a site installation
// @Tags Directory
// @Accept json
// @Produce json
// @Param payload body domain.Installation true "Installation"
// @Success 200 {object} httpkit.Envelope "ok"
// @Router /directory/installations [post]
func (h *handlers) upsertInstallation(r *stdhttp.Request, in domain.Installation) (any, error) {
	if err := h.svc.UpsertInstallation(r.Context(), in); err != nil {
		return nil, err
	}
	return httpkit.NoContent(), nil
}

// @Summary Trigger a directory sync for a site
// @Tags Directory
// @Accept json
// @Produce json
// @Success 200 {object} domain.SyncReport "ok"
// @Router /directory/sync [post]
func (h *handlers) sync(r *stdhttp.Request, in syncInput) (any, error) {
	return h.svc.SyncUsers(r.Context(), in.SiteID)
}

// @Summary List synced users for a team
// @Tags Directory
// @Accept json
// @Produce json
// @Param payload body domain.ListUsersInput true "Filter"
// @Success 200 {object} httpkit.Envelope "ok"
// @Router /directory/users [post]
func (h *handlers) listUsers(r *stdhttp.Request, in domain.ListUsersInput) (any, error) {
	return h.svc.ListUsers(r.Context(), in)
}
