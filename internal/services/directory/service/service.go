// Package service implements the user directory facade and sync
package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"boostjar/internal/modkit/repokit"
	perr "boostjar/internal/platform/errors"
	"boostjar/internal/platform/logger"
	"boostjar/internal/services/directory/domain"
	srepo "boostjar/internal/services/directory/repo"
)

// syncPageSize is the upstream directory page size
const syncPageSize = 50

// Config tunes the directory service
type Config struct {
	// DefaultTeamID backs sync runs for sites with no installation row
	DefaultTeamID string
}

// Service is the concrete implementation of domain.ServicePort
type Service struct {
	Cfg    Config
	DB     repokit.TxRunner
	Repo   repokit.Binder[srepo.Storage]
	Source domain.UserSource

	log logger.Logger
}

// New constructs a directory service
func New(cfg Config, db repokit.TxRunner, binder repokit.Binder[srepo.Storage], src domain.UserSource) *Service {
	if db == nil {
		panic("directory.Service requires a non-nil TxRunner")
	}
	if binder == nil {
		panic("directory.Service requires a non-nil repo Binder")
	}
	return &Service{
		Cfg:    cfg,
		DB:     db,
		Repo:   binder,
		Source: src,
		log:    *logger.Named("directory"),
	}
}

// UpsertInstallation registers or updates a site to team mapping
func (s *Service) UpsertInstallation(ctx context.Context, in domain.Installation) error {
	if in.SiteID == "" || in.TeamID == "" {
		return perr.InvalidArgf("site_id and team_id are required")
	}
	return s.DB.Tx(ctx, func(q repokit.Queryer) error {
		return s.Repo.Bind(q).UpsertInstallation(ctx, in)
	})
}

// ListUsers returns the synced directory entries for a team
func (s *Service) ListUsers(ctx context.Context, in domain.ListUsersInput) ([]domain.User, error) {
	if in.TeamID == "" {
		return nil, perr.InvalidArgf("team_id is required")
	}
	var out []domain.User
	err := s.DB.Tx(ctx, func(q repokit.Queryer) error {
		var e error
		out, e = s.Repo.Bind(q).ListUsers(ctx, in)
		return e
	})
	return out, err
}

// SyncUsers pulls the upstream user directory and upserts human, active
// entries. App and inactive accounts are skipped: they can never
// receive a boost
func (s *Service) SyncUsers(ctx context.Context, siteID string) (domain.SyncReport, error) {
	if s.Source == nil {
		return domain.SyncReport{}, perr.Unavailablef("no user source configured")
	}

	teamID, err := s.TeamFor(ctx, siteID)
	if err != nil {
		if !perr.IsCode(err, perr.ErrorCodeNotFound) || s.Cfg.DefaultTeamID == "" {
			return domain.SyncReport{}, err
		}
		teamID = s.Cfg.DefaultTeamID
	}

	rep := domain.SyncReport{RunID: uuid.NewString(), SiteID: siteID, TeamID: teamID}
	log := s.log.With().Str("run_id", rep.RunID).Str("team_id", teamID).Logger()

	for startAt := 0; ; startAt += syncPageSize {
		page, err := s.Source.SearchUsers(ctx, "", startAt, syncPageSize)
		if err != nil {
			return rep, err
		}
		rep.Fetched += len(page)

		batch := make([]domain.User, 0, len(page))
		for _, u := range page {
			if u.AccountType != "atlassian" || !u.Active || u.AccountID == "" {
				rep.Skipped++
				continue
			}
			batch = append(batch, domain.User{
				AccountID:   u.AccountID,
				DisplayName: u.DisplayName,
				Email:       u.Email,
				AccountType: u.AccountType,
				Active:      u.Active,
			})
		}

		if len(batch) > 0 {
			err := s.DB.Tx(ctx, func(q repokit.Queryer) error {
				n, e := s.Repo.Bind(q).UpsertUsers(ctx, teamID, batch)
				rep.Stored += n
				return e
			})
			if err != nil {
				return rep, err
			}
		}

		if len(page) < syncPageSize {
			break
		}
	}

	log.Info().Int("fetched", rep.Fetched).Int("stored", rep.Stored).Int("skipped", rep.Skipped).
		Msg("directory sync complete")
	return rep, nil
}

// LookupByName implements the boosts engine's directory port
func (s *Service) LookupByName(ctx context.Context, teamID, name string) (string, bool, error) {
	var (
		id string
		ok bool
	)
	err := s.DB.Tx(ctx, func(q repokit.Queryer) error {
		var e error
		id, ok, e = s.Repo.Bind(q).LookupByName(ctx, teamID, name)
		return e
	})
	return id, ok, err
}

// TeamFor maps a site id to its owning team
func (s *Service) TeamFor(ctx context.Context, siteID string) (string, error) {
	var teamID string
	err := s.DB.Tx(ctx, func(q repokit.Queryer) error {
		var e error
		teamID, e = s.Repo.Bind(q).TeamForSite(ctx, siteID)
		return e
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return "", perr.NotFoundf("no installation for site %s", siteID)
	}
	return teamID, err
}
