package rewards

// BoostPayload is the grant request body posted to the rewards platform
type BoostPayload struct {
	Provider       string       `json:"provider"`
	TeamID         string       `json:"teamId"`
	ActorAccountID string       `json:"actorAccountId"`
	Receivers      []string     `json:"receivers"`
	BoostAmount    int          `json:"boostAmount"`
	Message        string       `json:"message,omitempty"`
	Context        BoostContext `json:"context"`
}

// BoostContext carries the provenance of a grant for the platform audit trail
type BoostContext struct {
	TriggerType string `json:"triggerType"`
	IssueKey    string `json:"issueKey,omitempty"`
	CommentID   string `json:"commentId,omitempty"`
}

// BoostReceipt is the platform acknowledgement for one grant
type BoostReceipt struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// UserStats is the reward totals for one platform user
type UserStats struct {
	AccountID     string `json:"accountId"`
	BoostsGiven   int64  `json:"boostsGiven"`
	BoostsGot     int64  `json:"boostsReceived"`
	CurrentPoints int64  `json:"currentPoints"`
}
