// Package service implements the stats facade
package service

import (
	"context"

	"boostjar/internal/adapters/rewards"
	perr "boostjar/internal/platform/errors"
	"boostjar/internal/services/stats/domain"
	srepo "boostjar/internal/services/stats/repo"
)

// RewardsStatsPort fetches per-user totals from the rewards platform
type RewardsStatsPort interface {
	UserStats(ctx context.Context, accountID string) (rewards.UserStats, error)
}

// Service is the concrete implementation of domain.ServicePort
type Service struct {
	Repo    *srepo.CH
	Rewards RewardsStatsPort
}

// New constructs a stats service
func New(repo *srepo.CH, rw RewardsStatsPort) *Service {
	if repo == nil {
		panic("stats.Service requires a non-nil repo")
	}
	return &Service{Repo: repo, Rewards: rw}
}

// Outcomes returns the dispatch outcome series for a window
func (s *Service) Outcomes(ctx context.Context, in domain.OutcomesInput) (domain.OutcomesResp, error) {
	series, err := s.Repo.OutcomesByDay(ctx, in)
	if err != nil {
		return domain.OutcomesResp{}, err
	}
	return domain.OutcomesResp{Series: series}, nil
}

// TopRecipients returns the recipients leaderboard for a window
func (s *Service) TopRecipients(ctx context.Context, in domain.TopRecipientsInput) (domain.TopRecipientsResp, error) {
	items, err := s.Repo.TopRecipients(ctx, in)
	if err != nil {
		return domain.TopRecipientsResp{}, err
	}
	return domain.TopRecipientsResp{Items: items}, nil
}

// UserStats proxies one user's totals from the rewards platform
func (s *Service) UserStats(ctx context.Context, accountID string) (domain.UserStatsResp, error) {
	if accountID == "" {
		return domain.UserStatsResp{}, perr.InvalidArgf("account id is required")
	}
	if s.Rewards == nil {
		return domain.UserStatsResp{}, perr.Unavailablef("rewards platform not configured")
	}
	st, err := s.Rewards.UserStats(ctx, accountID)
	if err != nil {
		return domain.UserStatsResp{}, err
	}
	return domain.UserStatsResp{
		AccountID:     st.AccountID,
		BoostsGiven:   st.BoostsGiven,
		BoostsGot:     st.BoostsGot,
		CurrentPoints: st.CurrentPoints,
	}, nil
}
