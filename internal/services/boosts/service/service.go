// Package service implements the boosts trigger and dispatch engine
package service

import (
	"context"
	"fmt"
	"time"

	"boostjar/internal/core/adf"
	"boostjar/internal/core/textnorm"
	"boostjar/internal/core/trigger"
	"boostjar/internal/modkit/repokit"
	perr "boostjar/internal/platform/errors"
	"boostjar/internal/platform/logger"
	"boostjar/internal/services/boosts/domain"
	srepo "boostjar/internal/services/boosts/repo"
)

// Config tunes the engine
type Config struct {
	Provider        string
	DefaultTeamID   string
	Amount          int
	Workers         int
	Timeout         time.Duration
	ConfirmComments bool
}

func (c Config) withDefaults() Config {
	if c.Provider == "" {
		c.Provider = "jira"
	}
	if c.Amount <= 0 {
		c.Amount = 1
	}
	if c.Workers <= 0 {
		c.Workers = 16
	}
	if c.Timeout <= 0 {
		c.Timeout = 9 * time.Second
	}
	return c
}

// Service is the concrete implementation of domain.ServicePort
type Service struct {
	Cfg Config

	DB    repokit.TxRunner
	Repo  repokit.Binder[srepo.Storage]
	Facts *srepo.Facts

	Rewards   domain.RewardsPort
	Commenter domain.CommenterPort
	Directory domain.DirectoryPort

	log logger.Logger
}

// New constructs a boosts service
func New(
	cfg Config,
	db repokit.TxRunner,
	binder repokit.Binder[srepo.Storage],
	facts *srepo.Facts,
	rw domain.RewardsPort,
	cm domain.CommenterPort,
	dir domain.DirectoryPort,
) *Service {
	if rw == nil {
		panic("boosts.Service requires a non-nil RewardsPort")
	}
	return &Service{
		Cfg:       cfg.withDefaults(),
		DB:        db,
		Repo:      binder,
		Facts:     facts,
		Rewards:   rw,
		Commenter: cm,
		Directory: dir,
		log:       *logger.Named("boosts"),
	}
}

// ProcessEvent runs the full pipeline for one inbound event: extract,
// classify, claim, resolve, dispatch. Malformed slices degrade to a
// no-trigger report; only storage failures escape as errors
func (s *Service) ProcessEvent(ctx context.Context, ev domain.WebhookEvent) (domain.ProcessReport, error) {
	var (
		decision   trigger.Decision
		candidates []domain.MentionCandidate
		message    string
	)

	switch {
	case ev.Kind == domain.EventCommentCreated && ev.Comment != nil:
		raw, mentions := adf.Extract(ev.Comment.Body)
		text := textnorm.Fold(raw)
		decision = trigger.ClassifyComment(text)
		candidates = buildCandidates(ev.Comment.MentionedAccountIDs, mentions, text)
		// a boost with nobody to receive it is meaningless
		if decision.Matched() && len(candidates) == 0 {
			decision = trigger.Decision{Kind: trigger.KindNone}
		}
		message = raw
	case ev.Kind == domain.EventIssueUpdated && ev.Issue != nil:
		decision = trigger.ClassifyStatusChange(ev.StatusTargets()...)
		if decision.Matched() && ev.Actor.AccountID != "" {
			candidates = []domain.MentionCandidate{{
				AccountID:   ev.Actor.AccountID,
				DisplayName: ev.Actor.DisplayName,
				Source:      domain.SourcePlatform,
			}}
			message = "completed " + ev.Issue.Key
		}
	}

	report := domain.ProcessReport{Trigger: decision.Kind, Reasons: decision.Reasons, AllOK: true}
	if !decision.Matched() {
		s.log.Debug().Str("event", ev.Kind).Msg("no qualifying trigger")
		return report, nil
	}

	teamID := s.teamFor(ctx, ev.SiteID)

	issueKey := ""
	if ev.Issue != nil {
		issueKey = ev.Issue.Key
	}

	report.EventKey = ev.EventKey()
	if report.EventKey != "" && s.DB != nil {
		claimed, err := s.claim(ctx, report.EventKey, issueKey, string(decision.Kind))
		if err != nil {
			return report, err
		}
		if !claimed {
			report.Duplicate = true
			s.log.Info().Str("event_key", report.EventKey).Msg("duplicate delivery skipped")
			return report, nil
		}
	}

	report.Recipients = s.resolve(ctx, teamID, candidates)
	if len(report.Recipients) == 0 {
		s.log.Info().Str("event_key", report.EventKey).Msg("no valid recipients")
		return report, nil
	}

	tpl := domain.BoostRequest{
		Provider:       s.Cfg.Provider,
		TeamID:         teamID,
		ActorAccountID: ev.Actor.AccountID,
		Amount:         s.Cfg.Amount,
		Message:        message,
		TriggerKind:    decision.Kind,
		IssueKey:       issueKey,
	}
	if ev.Comment != nil {
		tpl.CommentID = ev.Comment.ID
	}

	report.Results = s.dispatch(ctx, tpl, report.Recipients)
	report.AllOK = allOK(report.Results)

	s.recordFacts(ctx, report, tpl)
	s.confirm(ctx, ev, report)
	return report, nil
}

// ManualBoost dispatches a single panel-requested grant
func (s *Service) ManualBoost(ctx context.Context, in domain.ManualBoostInput) (domain.ProcessReport, error) {
	if in.ActorAccountID == "" || in.RecipientAccountID == "" {
		return domain.ProcessReport{}, perr.InvalidArgf("actor and recipient account ids are required")
	}
	teamID := in.TeamID
	if teamID == "" {
		teamID = s.Cfg.DefaultTeamID
	}
	report := domain.ProcessReport{
		Trigger:    trigger.KindManual,
		Recipients: []domain.Recipient{{AccountID: in.RecipientAccountID}},
	}
	tpl := domain.BoostRequest{
		Provider:       s.Cfg.Provider,
		TeamID:         teamID,
		ActorAccountID: in.ActorAccountID,
		Amount:         s.Cfg.Amount,
		Message:        in.Message,
		TriggerKind:    trigger.KindManual,
	}
	report.Results = s.dispatch(ctx, tpl, report.Recipients)
	report.AllOK = allOK(report.Results)
	s.recordFacts(ctx, report, tpl)
	return report, nil
}

func (s *Service) claim(ctx context.Context, key, issueKey, triggerKind string) (bool, error) {
	var claimed bool
	err := s.DB.Tx(ctx, func(q repokit.Queryer) error {
		var e error
		claimed, e = s.Repo.Bind(q).ClaimEvent(ctx, key, issueKey, triggerKind)
		return e
	})
	return claimed, err
}

func (s *Service) teamFor(ctx context.Context, siteID string) string {
	if siteID != "" && s.Directory != nil {
		if id, err := s.Directory.TeamFor(ctx, siteID); err == nil && id != "" {
			return id
		}
	}
	return s.Cfg.DefaultTeamID
}

// recordFacts writes outcome rows to the columnar store, best-effort
func (s *Service) recordFacts(ctx context.Context, rep domain.ProcessReport, tpl domain.BoostRequest) {
	if len(rep.Results) == 0 {
		return
	}
	now := time.Now().UTC()
	rows := make([]srepo.DispatchFact, 0, len(rep.Results))
	for _, r := range rep.Results {
		rows = append(rows, srepo.DispatchFact{
			EventKey:           rep.EventKey,
			TeamID:             tpl.TeamID,
			TriggerKind:        string(tpl.TriggerKind),
			ActorAccountID:     tpl.ActorAccountID,
			RecipientAccountID: r.RecipientAccountID,
			Outcome:            string(r.Outcome),
			HTTPStatus:         int32(r.Status),
			LatencyMS:          r.Latency.Milliseconds(),
			CreatedAt:          now,
		})
	}
	if err := s.Facts.RecordBatch(ctx, rows); err != nil {
		s.log.Warn().Err(err).Msg("dispatch facts write failed")
	}
}

// confirm posts the confirmation comment back to the issue. Failures
// are logged and swallowed; they never touch the report
func (s *Service) confirm(ctx context.Context, ev domain.WebhookEvent, rep domain.ProcessReport) {
	if !s.Cfg.ConfirmComments || s.Commenter == nil || ev.Issue == nil {
		return
	}
	sent := 0
	for _, r := range rep.Results {
		if r.Outcome == domain.OutcomeOK {
			sent++
		}
	}
	if sent == 0 {
		return
	}
	text := fmt.Sprintf("🚀 Boost sent to %d teammate", sent)
	if sent > 1 {
		text += "s"
	}
	if err := s.Commenter.AddComment(ctx, ev.Issue.Key, text); err != nil {
		s.log.Warn().Err(err).Str("issue", ev.Issue.Key).Msg("confirmation comment failed")
	}
}

func allOK(results []domain.DispatchResult) bool {
	for _, r := range results {
		if r.Outcome != domain.OutcomeOK {
			return false
		}
	}
	return true
}
