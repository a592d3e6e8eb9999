package service

import (
	"context"
	"time"

	"boostjar/internal/platform/logger"
)

// RunSync loops SyncUsers for one site until the context ends. The
// first sync runs immediately; failures are logged and the loop keeps
// going on the next tick
func (s *Service) RunSync(ctx context.Context, siteID string, interval time.Duration) error {
	log := logger.Named("directory-sync")
	if interval <= 0 {
		interval = time.Hour
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if _, err := s.SyncUsers(ctx, siteID); err != nil {
			log.Error().Err(err).Str("site_id", siteID).Msg("directory sync failed")
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
