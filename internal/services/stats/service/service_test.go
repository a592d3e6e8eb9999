package service

import (
	"context"
	"testing"

	"boostjar/internal/adapters/rewards"
	perr "boostjar/internal/platform/errors"
	"boostjar/internal/platform/store"
	"boostjar/internal/services/stats/domain"
	srepo "boostjar/internal/services/stats/repo"
)

type fakeRows struct {
	data [][]any
	pos  int
}

func (r *fakeRows) Next() bool { r.pos++; return r.pos <= len(r.data) }
func (r *fakeRows) Scan(dest ...any) error {
	row := r.data[r.pos-1]
	for i := range dest {
		switch d := dest[i].(type) {
		case *string:
			*d = row[i].(string)
		case *uint64:
			*d = row[i].(uint64)
		}
	}
	return nil
}
func (r *fakeRows) Err() error        { return nil }
func (r *fakeRows) Close()            {}
func (r *fakeRows) Columns() []string { return nil }

type fakeCH struct {
	rows    [][]any
	lastSQL string
}

func (f *fakeCH) Insert(context.Context, string, any) error { return nil }
func (f *fakeCH) Query(_ context.Context, sql string, _ ...any) (store.Rows, error) {
	f.lastSQL = sql
	return &fakeRows{data: f.rows}, nil
}
func (f *fakeCH) Close() error { return nil }

type fakeStats struct{ got string }

func (f *fakeStats) UserStats(_ context.Context, accountID string) (rewards.UserStats, error) {
	f.got = accountID
	return rewards.UserStats{AccountID: accountID, BoostsGiven: 2, BoostsGot: 7, CurrentPoints: 9}, nil
}

func window() domain.TimeRange {
	return domain.TimeRange{Start: "2026-08-01", End: "2026-08-31"}
}

func TestOutcomes(t *testing.T) {
	t.Parallel()

	ch := &fakeCH{rows: [][]any{
		{"2026-08-01", "ok", uint64(5)},
		{"2026-08-01", "timeout", uint64(1)},
		{"2026-08-02", "ok", uint64(3)},
	}}
	s := New(srepo.NewCH(ch), nil)

	resp, err := s.Outcomes(context.Background(), domain.OutcomesInput{Range: window()})
	if err != nil {
		t.Fatalf("Outcomes: %v", err)
	}
	if len(resp.Series) != 3 {
		t.Fatalf("series = %d", len(resp.Series))
	}
	if resp.Series[1].Outcome != "timeout" || resp.Series[1].Count != 1 {
		t.Fatalf("point = %+v", resp.Series[1])
	}
}

func TestOutcomes_BadRange(t *testing.T) {
	t.Parallel()

	s := New(srepo.NewCH(&fakeCH{}), nil)
	_, err := s.Outcomes(context.Background(), domain.OutcomesInput{
		Range: domain.TimeRange{Start: "not-a-date", End: "2026-08-31"},
	})
	if err == nil {
		t.Fatal("want parse error")
	}
}

func TestTopRecipients(t *testing.T) {
	t.Parallel()

	ch := &fakeCH{rows: [][]any{
		{"u1", uint64(9)},
		{"u2", uint64(4)},
	}}
	s := New(srepo.NewCH(ch), nil)

	resp, err := s.TopRecipients(context.Background(), domain.TopRecipientsInput{Range: window()})
	if err != nil {
		t.Fatalf("TopRecipients: %v", err)
	}
	if len(resp.Items) != 2 || resp.Items[0].AccountID != "u1" || resp.Items[0].Boosts != 9 {
		t.Fatalf("items = %+v", resp.Items)
	}
}

func TestUserStats(t *testing.T) {
	t.Parallel()

	rw := &fakeStats{}
	s := New(srepo.NewCH(&fakeCH{}), rw)

	if _, err := s.UserStats(context.Background(), ""); !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("err = %v, want invalid argument", err)
	}

	resp, err := s.UserStats(context.Background(), "acc-1")
	if err != nil {
		t.Fatalf("UserStats: %v", err)
	}
	if rw.got != "acc-1" || resp.BoostsGot != 7 || resp.CurrentPoints != 9 {
		t.Fatalf("resp = %+v", resp)
	}
}

func TestUserStats_NotConfigured(t *testing.T) {
	t.Parallel()

	s := New(srepo.NewCH(&fakeCH{}), nil)
	if _, err := s.UserStats(context.Background(), "acc-1"); !perr.IsCode(err, perr.ErrorCodeUnavailable) {
		t.Fatalf("err = %v, want unavailable", err)
	}
}
