package service

import (
	"context"
	"regexp"

	"boostjar/internal/core/adf"
	"boostjar/internal/services/boosts/domain"
)

// plain "@name" patterns in comment text; names carry no account id and
// must survive a directory lookup to become dispatchable
var plainMentionRe = regexp.MustCompile(`@([A-Za-z0-9][A-Za-z0-9._-]*)`)

// buildCandidates merges the three mention sources into one ordered
// candidate list. Platform ids come first so their verified identifiers
// win ties during dedupe, then rich-document mention nodes, then plain
// text patterns
func buildCandidates(platformIDs []string, doc []adf.Mention, text string) []domain.MentionCandidate {
	out := make([]domain.MentionCandidate, 0, len(platformIDs)+len(doc))
	for _, id := range platformIDs {
		out = append(out, domain.MentionCandidate{
			DisplayName: placeholderName(id),
			AccountID:   id,
			Source:      domain.SourcePlatform,
		})
	}
	for _, m := range doc {
		out = append(out, domain.MentionCandidate{
			DisplayName: m.DisplayName,
			AccountID:   m.AccountID,
			Source:      domain.SourceRichDocument,
		})
	}
	for _, m := range plainMentionRe.FindAllStringSubmatch(text, -1) {
		out = append(out, domain.MentionCandidate{DisplayName: m[1], Source: domain.SourcePlainText})
	}
	return out
}

// placeholderName labels a platform mention that arrived as a bare
// account id so reports never surface a blank name
func placeholderName(accountID string) string {
	return "user-" + accountID
}

// resolve turns candidates into the final recipient set: plain-text
// names are looked up in the directory, anything still lacking an
// account id is dropped, and duplicates collapse to the first
// occurrence. An empty return means no valid recipients, not an error
func (s *Service) resolve(ctx context.Context, teamID string, cands []domain.MentionCandidate) []domain.Recipient {
	seen := make(map[string]struct{}, len(cands))
	var out []domain.Recipient
	for _, c := range cands {
		if c.AccountID == "" && c.Source == domain.SourcePlainText && s.Directory != nil {
			id, ok, err := s.Directory.LookupByName(ctx, teamID, c.DisplayName)
			if err != nil {
				s.log.Warn().Err(err).Str("name", c.DisplayName).Msg("directory lookup failed")
				continue
			}
			if ok {
				c.AccountID = id
			}
		}
		if c.AccountID == "" {
			continue
		}
		if _, dup := seen[c.AccountID]; dup {
			continue
		}
		seen[c.AccountID] = struct{}{}
		out = append(out, domain.Recipient{AccountID: c.AccountID, DisplayName: c.DisplayName})
	}
	return out
}
