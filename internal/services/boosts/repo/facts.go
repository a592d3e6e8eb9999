package repo

import (
	"context"
	"time"

	"boostjar/internal/platform/store"
)

// DispatchFact is one outcome row for the dispatch_events fact table.
// Column order matches the table: event_key, team_id, trigger_kind,
// actor_account_id, recipient_account_id, outcome, http_status,
// latency_ms, created_at
type DispatchFact struct {
	EventKey           string
	TeamID             string
	TriggerKind        string
	ActorAccountID     string
	RecipientAccountID string
	Outcome            string
	HTTPStatus         int32
	LatencyMS          int64
	CreatedAt          time.Time
}

// Facts writes dispatch outcomes to the columnar store
type Facts struct{ ch store.Clickhouse }

// NewFacts constructs a Facts writer; ch may be nil when disabled
func NewFacts(ch store.Clickhouse) *Facts { return &Facts{ch: ch} }

// RecordBatch appends one row per result. A nil seam is a no-op so the
// engine keeps dispatching when the fact store is down or disabled
func (f *Facts) RecordBatch(ctx context.Context, rows []DispatchFact) error {
	if f == nil || f.ch == nil || len(rows) == 0 {
		return nil
	}
	data := make([][]any, 0, len(rows))
	for _, r := range rows {
		data = append(data, []any{
			r.EventKey, r.TeamID, r.TriggerKind,
			r.ActorAccountID, r.RecipientAccountID,
			r.Outcome, r.HTTPStatus, r.LatencyMS, r.CreatedAt,
		})
	}
	return f.ch.Insert(ctx, "dispatch_events", data)
}
