// Package repo queries the dispatch_events fact table in ClickHouse
package repo

import (
	"context"
	"time"

	perr "boostjar/internal/platform/errors"
	"boostjar/internal/platform/store"
	"boostjar/internal/services/stats/domain"
)

// CH is the columnar repository for dispatch facts
type CH struct{ ch store.Clickhouse }

// NewCH constructs the ClickHouse repository
func NewCH(ch store.Clickhouse) *CH { return &CH{ch: ch} }

func parseRange(r domain.TimeRange) (time.Time, time.Time, error) {
	start, err := time.Parse("2006-01-02", r.Start)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	endIncl, err := time.Parse("2006-01-02", r.End)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, endIncl.Add(24 * time.Hour), nil
}

// OutcomesByDay returns one bucket per day and outcome in the window
func (r *CH) OutcomesByDay(ctx context.Context, in domain.OutcomesInput) ([]domain.OutcomePoint, error) {
	if r.ch == nil {
		return nil, perr.Unavailablef("fact store not configured")
	}
	start, end, err := parseRange(in.Range)
	if err != nil {
		return nil, err
	}

	rows, err := r.ch.Query(ctx, `
		SELECT toString(toDate(created_at)) AS day, outcome, count() AS n
		FROM dispatch_events
		WHERE created_at >= ? AND created_at < ?
		  AND (? = '' OR team_id = ?)
		GROUP BY day, outcome
		ORDER BY day, outcome`,
		start, end, in.TeamID, in.TeamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.OutcomePoint
	for rows.Next() {
		var p domain.OutcomePoint
		var n uint64
		if err := rows.Scan(&p.Day, &p.Outcome, &n); err != nil {
			return nil, err
		}
		p.Count = int64(n)
		out = append(out, p)
	}
	return out, rows.Err()
}

// TopRecipients ranks recipients by delivered boosts in the window
func (r *CH) TopRecipients(ctx context.Context, in domain.TopRecipientsInput) ([]domain.RecipientRow, error) {
	if r.ch == nil {
		return nil, perr.Unavailablef("fact store not configured")
	}
	start, end, err := parseRange(in.Range)
	if err != nil {
		return nil, err
	}
	limit := in.Limit
	if limit <= 0 || limit > 200 {
		limit = 20
	}

	rows, err := r.ch.Query(ctx, `
		SELECT recipient_account_id, countIf(outcome = 'ok') AS boosts
		FROM dispatch_events
		WHERE created_at >= ? AND created_at < ?
		  AND (? = '' OR team_id = ?)
		GROUP BY recipient_account_id
		HAVING boosts > 0
		ORDER BY boosts DESC, recipient_account_id
		LIMIT ?`,
		start, end, in.TeamID, in.TeamID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.RecipientRow
	for rows.Next() {
		var row domain.RecipientRow
		var n uint64
		if err := rows.Scan(&row.AccountID, &n); err != nil {
			return nil, err
		}
		row.Boosts = int64(n)
		out = append(out, row)
	}
	return out, rows.Err()
}
