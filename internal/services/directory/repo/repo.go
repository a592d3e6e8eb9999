// Package repo provides the storage repository for the user directory
package repo

import (
	"context"
	"fmt"
	"strings"

	"boostjar/internal/modkit/repokit"
	"boostjar/internal/services/directory/domain"
)

type (
	pg     struct{ q repokit.Queryer }
	binder struct{}
)

// NewPG constructs a new repo binder for Postgres
func NewPG() repokit.Binder[Storage] { return binder{} }

// Bind implements repokit.Binder
func (binder) Bind(q repokit.Queryer) Storage { return &pg{q: q} }

// Storage defines the directory repository
type Storage interface {
	UpsertInstallation(ctx context.Context, in domain.Installation) error
	TeamForSite(ctx context.Context, siteID string) (string, error)
	UpsertUsers(ctx context.Context, teamID string, xs []domain.User) (int, error)
	ListUsers(ctx context.Context, in domain.ListUsersInput) ([]domain.User, error)
	LookupByName(ctx context.Context, teamID, name string) (string, bool, error)
}

// UpsertInstallation implements Storage
func (s *pg) UpsertInstallation(ctx context.Context, in domain.Installation) error {
	_, err := s.q.Exec(ctx, `
		INSERT INTO installations (site_id, team_id, base_url, installed_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (site_id) DO UPDATE
		SET team_id = EXCLUDED.team_id,
		    base_url = EXCLUDED.base_url`,
		in.SiteID, in.TeamID, in.BaseURL)
	return err
}

// TeamForSite implements Storage
func (s *pg) TeamForSite(ctx context.Context, siteID string) (string, error) {
	var teamID string
	err := s.q.QueryRow(ctx,
		`SELECT team_id FROM installations WHERE site_id = $1`, siteID,
	).Scan(&teamID)
	if err != nil {
		return "", err
	}
	return teamID, nil
}

// UpsertUsers implements Storage
func (s *pg) UpsertUsers(ctx context.Context, teamID string, xs []domain.User) (int, error) {
	if len(xs) == 0 {
		return 0, nil
	}

	var sb strings.Builder
	sb.WriteString(`INSERT INTO directory_users
		(team_id, account_id, display_name, email, account_type, active, synced_at) VALUES `)

	args := make([]any, 0, len(xs)*6)
	for i, u := range xs {
		if i > 0 {
			sb.WriteByte(',')
		}
		base := i*6 + 1
		fmt.Fprintf(&sb, "($%d,$%d,$%d,$%d,$%d,$%d,now())",
			base, base+1, base+2, base+3, base+4, base+5)
		args = append(args, teamID, u.AccountID, u.DisplayName, u.Email, u.AccountType, u.Active)
	}
	sb.WriteString(`
		ON CONFLICT (team_id, account_id) DO UPDATE
		SET display_name = EXCLUDED.display_name,
		    email = EXCLUDED.email,
		    account_type = EXCLUDED.account_type,
		    active = EXCLUDED.active,
		    synced_at = EXCLUDED.synced_at`)

	tag, err := s.q.Exec(ctx, sb.String(), args...)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}

// ListUsers implements Storage
func (s *pg) ListUsers(ctx context.Context, in domain.ListUsersInput) ([]domain.User, error) {
	limit := in.Limit
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	var sb strings.Builder
	sb.WriteString(`
		SELECT account_id, display_name, email, account_type, active, synced_at
		FROM directory_users
		WHERE team_id = $1`)
	args := []any{in.TeamID}
	if q := strings.TrimSpace(in.Query); q != "" {
		sb.WriteString(` AND display_name ILIKE $2`)
		args = append(args, "%"+q+"%")
	}
	fmt.Fprintf(&sb, ` ORDER BY display_name LIMIT %d`, limit)

	rows, err := s.q.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.AccountID, &u.DisplayName, &u.Email, &u.AccountType, &u.Active, &u.SyncedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// LookupByName implements Storage. A name matching more than one active
// user is ambiguous and reports not found
func (s *pg) LookupByName(ctx context.Context, teamID, name string) (string, bool, error) {
	rows, err := s.q.Query(ctx, `
		SELECT account_id FROM directory_users
		WHERE team_id = $1 AND active AND lower(display_name) = lower($2)
		LIMIT 2`, teamID, name)
	if err != nil {
		return "", false, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return "", false, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return "", false, err
	}
	if len(ids) != 1 {
		return "", false, nil
	}
	return ids[0], true, nil
}
