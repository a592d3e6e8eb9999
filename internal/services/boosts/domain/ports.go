package domain

import "context"

// ServicePort defines the boosts service interface
type ServicePort interface {
	ProcessEvent(ctx context.Context, ev WebhookEvent) (ProcessReport, error)
	ManualBoost(ctx context.Context, in ManualBoostInput) (ProcessReport, error)
}

// ManualBoostInput is a panel-originated grant request
type ManualBoostInput struct {
	TeamID             string `json:"team_id"             validate:"omitempty,max=128"`
	ActorAccountID     string `json:"actor_account_id"    validate:"required,max=128"`
	RecipientAccountID string `json:"recipient_account_id" validate:"required,max=128"`
	Message            string `json:"message"             validate:"omitempty,max=2000"`
}

// RewardsPort sends one grant to the rewards platform. The receipt is
// the platform's echoed acknowledgement, empty on failure.
// Implementations surface timeouts as context.DeadlineExceeded and HTTP
// rejections as an error carrying the status code
type RewardsPort interface {
	SendBoost(ctx context.Context, req BoostRequest) (receipt string, err error)
}

// CommenterPort posts the best-effort confirmation comment
type CommenterPort interface {
	AddComment(ctx context.Context, issue, text string) error
}

// DirectoryPort resolves identities against the synced user directory
type DirectoryPort interface {
	// LookupByName maps a display name to an account id; ok is false
	// when the name is unknown or ambiguous
	LookupByName(ctx context.Context, teamID, name string) (accountID string, ok bool, err error)

	// TeamFor maps a platform site id to the owning team id
	TeamFor(ctx context.Context, siteID string) (string, error)
}
