package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
)

// Webhook event kinds as delivered by the platform
const (
	EventCommentCreated = "comment_created"
	EventIssueUpdated   = "jira:issue_updated"
)

// Identity is an account reference on an inbound event
type Identity struct {
	AccountID   string `json:"accountId"`
	DisplayName string `json:"displayName"`
}

// Comment is the comment slice of an inbound event.
// Body is the raw rich document; it is parsed lazily by the extractor
// and tolerates any shape
type Comment struct {
	ID                  string          `json:"id"`
	Author              Identity        `json:"author"`
	Body                json.RawMessage `json:"body"`
	MentionedAccountIDs []string        `json:"mentionedAccountIds"`
}

// Issue is the issue slice of an inbound event
type Issue struct {
	ID  string `json:"id"`
	Key string `json:"key"`
}

// ChangeItem is one changelog entry on an issue update
type ChangeItem struct {
	Field string `json:"field"`
	From  string `json:"fromString"`
	To    string `json:"toString"`
}

// Changelog is the changelog slice of an issue update event
type Changelog struct {
	Items []ChangeItem `json:"items"`
}

// WebhookEvent is one inbound platform event. Optional slices are nil
// when the event kind does not carry them
type WebhookEvent struct {
	Kind      string     `json:"webhookEvent"`
	SiteID    string     `json:"cloudId"`
	Actor     Identity   `json:"user"`
	Comment   *Comment   `json:"comment"`
	Issue     *Issue     `json:"issue"`
	Changelog *Changelog `json:"changelog"`
}

// ParseWebhook decodes a raw event body. Unknown fields are ignored;
// platform payloads carry far more than this engine reads
func ParseWebhook(body []byte) (WebhookEvent, error) {
	var ev WebhookEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return WebhookEvent{}, err
	}
	if ev.Actor.AccountID == "" && ev.Comment != nil {
		ev.Actor = ev.Comment.Author
	}
	return ev, nil
}

// EventKey derives the idempotency key for an event. Comment events key
// on the comment id; issue updates key on the issue plus a fingerprint
// of the status transition so distinct transitions on one issue stay
// distinct. Empty when the event carries nothing keyable
func (ev WebhookEvent) EventKey() string {
	if ev.Comment != nil && ev.Comment.ID != "" {
		return "comment:" + ev.Comment.ID
	}
	if ev.Issue != nil && ev.Issue.Key != "" && ev.Changelog != nil {
		var sb strings.Builder
		for _, it := range ev.Changelog.Items {
			if !strings.EqualFold(it.Field, "status") {
				continue
			}
			sb.WriteString(it.From)
			sb.WriteByte('>')
			sb.WriteString(it.To)
			sb.WriteByte(';')
		}
		if sb.Len() == 0 {
			return ""
		}
		sum := sha256.Sum256([]byte(sb.String()))
		return "issue:" + ev.Issue.Key + ":" + hex.EncodeToString(sum[:8])
	}
	return ""
}

// StatusTargets returns the toValues of every status changelog entry in
// order. Jira batches changelog items, so a single event can carry more
// than one status transition and all of them matter for classification
func (ev WebhookEvent) StatusTargets() []string {
	if ev.Changelog == nil {
		return nil
	}
	var out []string
	for _, it := range ev.Changelog.Items {
		if strings.EqualFold(it.Field, "status") {
			out = append(out, it.To)
		}
	}
	return out
}
