// Package trigger classifies normalized event text into boost triggers
package trigger

import "strings"

// Kind is the trigger category a piece of input resolved to
type Kind string

const (
	// KindNone means no trigger matched
	KindNone Kind = "none"
	// KindCommentBoost is a comment carrying a boost signal
	KindCommentBoost Kind = "comment_boost"
	// KindIssueCompleted is an issue transitioned into a terminal status
	KindIssueCompleted Kind = "issue_completed"
	// KindManual is a grant requested explicitly through the panel,
	// never produced by classification
	KindManual Kind = "manual"
)

// Decision is a classification result. Reasons names every signal that
// matched, stable-ordered, empty when Kind is KindNone
type Decision struct {
	Kind    Kind
	Reasons []string
}

// Matched reports whether the decision carries a trigger
func (d Decision) Matched() bool { return d.Kind != KindNone }

const rocket = "\U0001F680"

// ClassifyComment inspects folded comment text for boost signals: the
// rocket emoji, the word "boost", or the "#boost" hashtag. Callers fold
// the text first (see textnorm.Fold); matching here is literal
func ClassifyComment(text string) Decision {
	var reasons []string
	if strings.Contains(text, rocket) {
		reasons = append(reasons, "emoji:rocket")
	}
	hashtag, word := scanBoostTokens(text)
	if hashtag {
		reasons = append(reasons, "keyword:#boost")
	}
	if word {
		reasons = append(reasons, "keyword:boost")
	}
	if len(reasons) == 0 {
		return Decision{Kind: KindNone}
	}
	return Decision{Kind: KindCommentBoost, Reasons: reasons}
}

// ClassifyStatusChange inspects changelog "status" transition targets.
// A changelog can batch several status items and any terminal one
// qualifies. Terminal statuses are anything whose folded value contains
// "done" or "resolved"; Jira sites rename statuses freely, so this is a
// contains check rather than an allowlist
func ClassifyStatusChange(toValues ...string) Decision {
	var reasons []string
	for _, toValue := range toValues {
		v := strings.ToLower(strings.TrimSpace(toValue))
		if strings.Contains(v, "done") {
			reasons = append(reasons, "status:done")
		}
		if strings.Contains(v, "resolved") {
			reasons = append(reasons, "status:resolved")
		}
	}
	if len(reasons) == 0 {
		return Decision{Kind: KindNone}
	}
	return Decision{Kind: KindIssueCompleted, Reasons: reasons}
}

// scanBoostTokens tokenizes on whitespace and strips trailing punctuation,
// so "boost!" and "#boost." still match while "booster" does not
func scanBoostTokens(text string) (hashtag, word bool) {
	for _, tok := range strings.Fields(text) {
		tok = strings.TrimRight(tok, ".,!?:;")
		switch tok {
		case "#boost":
			hashtag = true
		case "boost":
			word = true
		}
	}
	return hashtag, word
}
