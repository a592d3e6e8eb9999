// Package repo provides storage for the boosts engine
package repo

import (
	"context"

	"boostjar/internal/modkit/repokit"
)

type (
	pg     struct{ q repokit.Queryer }
	binder struct{}
)

// NewPG constructs a new repo binder for Postgres
func NewPG() repokit.Binder[Storage] { return binder{} }

// Bind implements repokit.Binder
func (binder) Bind(q repokit.Queryer) Storage { return &pg{q: q} }

// Storage defines the boosts repository
type Storage interface {
	// ClaimEvent records key as processed and reports whether this call
	// won the claim. A false return means another delivery already
	// claimed it and dispatch must be skipped
	ClaimEvent(ctx context.Context, key, issueKey, triggerKind string) (bool, error)
}

// ClaimEvent implements Storage
func (s *pg) ClaimEvent(ctx context.Context, key, issueKey, triggerKind string) (bool, error) {
	tag, err := s.q.Exec(ctx, `
		INSERT INTO processed_events (event_key, issue_key, trigger_kind, seen_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (event_key) DO NOTHING`, key, issueKey, triggerKind)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}
