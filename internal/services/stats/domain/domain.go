// Package domain holds DTOs for the stats HTTP and service contracts
package domain

import "context"

// TimeRange defines an inclusive start and end date in YYYY-MM-DD UTC
type TimeRange struct {
	Start string `json:"start" validate:"required,datetime=2006-01-02" example:"2026-08-01"`
	End   string `json:"end"   validate:"required,datetime=2006-01-02" example:"2026-08-31"`
}

// OutcomesInput filters the dispatch outcome series
type OutcomesInput struct {
	Range  TimeRange `json:"range"`
	TeamID string    `json:"team_id,omitempty" validate:"omitempty,max=128"`
}

// OutcomePoint is one day/outcome bucket
type OutcomePoint struct {
	Day     string `json:"day"     example:"2026-08-01"`
	Outcome string `json:"outcome" example:"ok"`
	Count   int64  `json:"count"   example:"42"`
}

// OutcomesResp is the dispatch outcome series
type OutcomesResp struct {
	Series []OutcomePoint `json:"series"`
}

// TopRecipientsInput filters the recipients leaderboard
type TopRecipientsInput struct {
	Range  TimeRange `json:"range"`
	TeamID string    `json:"team_id,omitempty" validate:"omitempty,max=128"`
	Limit  int       `json:"limit,omitempty"   validate:"omitempty,min=1,max=200"`
}

// RecipientRow is one leaderboard entry
type RecipientRow struct {
	AccountID string `json:"account_id"`
	Boosts    int64  `json:"boosts"`
}

// TopRecipientsResp is the recipients leaderboard
type TopRecipientsResp struct {
	Items []RecipientRow `json:"items"`
}

// UserStatsResp is the reward totals proxied from the rewards platform
type UserStatsResp struct {
	AccountID     string `json:"account_id"`
	BoostsGiven   int64  `json:"boosts_given"`
	BoostsGot     int64  `json:"boosts_received"`
	CurrentPoints int64  `json:"current_points"`
}

// ServicePort defines the stats service interface
type ServicePort interface {
	Outcomes(ctx context.Context, in OutcomesInput) (OutcomesResp, error)
	TopRecipients(ctx context.Context, in TopRecipientsInput) (TopRecipientsResp, error)
	UserStats(ctx context.Context, accountID string) (UserStatsResp, error)
}
