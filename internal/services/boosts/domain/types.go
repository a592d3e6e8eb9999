// Package domain defines shared types for the boosts engine
package domain

import (
	"time"

	"boostjar/internal/core/trigger"
)

// MentionSource tags where a mention candidate was observed
type MentionSource string

const (
	// SourcePlatform is a verified account id supplied by the event payload
	SourcePlatform MentionSource = "platform"
	// SourceRichDocument is a mention node from the rich comment body
	SourceRichDocument MentionSource = "richDocument"
	// SourcePlainText is an "@name" pattern in plain text, id unresolved
	SourcePlainText MentionSource = "plainText"
)

// MentionCandidate is one potential recipient prior to resolution.
// AccountID may be empty for plainText candidates
type MentionCandidate struct {
	DisplayName string
	AccountID   string
	Source      MentionSource
}

// Recipient is a resolved dispatch target, unique by AccountID
type Recipient struct {
	AccountID   string `json:"account_id"`
	DisplayName string `json:"display_name,omitempty"`
}

// BoostRequest is one outbound grant, built per recipient at dispatch time
type BoostRequest struct {
	Provider           string
	TeamID             string
	ActorAccountID     string
	RecipientAccountID string
	Amount             int
	Message            string
	TriggerKind        trigger.Kind
	IssueKey           string
	CommentID          string
}

// DispatchOutcome classifies one outbound call
type DispatchOutcome string

const (
	// OutcomeOK is a 2xx acknowledgement
	OutcomeOK DispatchOutcome = "ok"
	// OutcomeHTTPError is a non-2xx rejection; Status carries the code
	OutcomeHTTPError DispatchOutcome = "http_error"
	// OutcomeTimeout is a call that exceeded its deadline
	OutcomeTimeout DispatchOutcome = "timeout"
	// OutcomeTransport is a network failure before any response
	OutcomeTransport DispatchOutcome = "transport_error"
)

// DispatchResult is the recorded outcome for one recipient.
// One per attempted BoostRequest; a batch never loses entries to a
// sibling failure
type DispatchResult struct {
	RecipientAccountID string          `json:"recipient_account_id"`
	Outcome            DispatchOutcome `json:"outcome"`
	Status             int             `json:"status,omitempty"`
	Detail             string          `json:"detail,omitempty"`
	Latency            time.Duration   `json:"-"`
}

// ProcessReport is the per-event aggregate returned to the caller
type ProcessReport struct {
	EventKey   string           `json:"event_key,omitempty"`
	Duplicate  bool             `json:"duplicate,omitempty"`
	Trigger    trigger.Kind     `json:"trigger"`
	Reasons    []string         `json:"reasons,omitempty"`
	Recipients []Recipient      `json:"recipients,omitempty"`
	Results    []DispatchResult `json:"results,omitempty"`
	AllOK      bool             `json:"all_ok"`
}
