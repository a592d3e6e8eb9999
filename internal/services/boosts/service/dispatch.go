package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"boostjar/internal/adapters/rewards"
	"boostjar/internal/services/boosts/domain"
)

// dispatch sends one grant per recipient. Calls run concurrently under
// the worker cap, each with its own deadline; results come back in
// input order and a failed call never disturbs its siblings
func (s *Service) dispatch(
	ctx context.Context,
	tpl domain.BoostRequest,
	recipients []domain.Recipient,
) []domain.DispatchResult {
	if len(recipients) == 0 {
		return nil
	}

	results := make([]domain.DispatchResult, len(recipients))
	sem := make(chan struct{}, max(1, s.Cfg.Workers))
	wg := sync.WaitGroup{}

	for i := range recipients {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer func() { <-sem; wg.Done() }()

			req := tpl
			req.RecipientAccountID = recipients[i].AccountID

			cctx, cancel := context.WithTimeout(ctx, s.Cfg.Timeout)
			defer cancel()

			start := time.Now()
			receipt, err := s.Rewards.SendBoost(cctx, req)
			results[i] = classify(recipients[i].AccountID, receipt, err, time.Since(start))
		}(i)
	}
	wg.Wait()
	return results
}

// classify maps one call's outcome into a DispatchResult
func classify(accountID, receipt string, err error, lat time.Duration) domain.DispatchResult {
	res := domain.DispatchResult{RecipientAccountID: accountID, Latency: lat}
	switch {
	case err == nil:
		res.Outcome = domain.OutcomeOK
		res.Detail = receipt
	case errors.Is(err, context.DeadlineExceeded):
		res.Outcome = domain.OutcomeTimeout
		res.Detail = err.Error()
	default:
		var se *rewards.StatusError
		if errors.As(err, &se) {
			res.Outcome = domain.OutcomeHTTPError
			res.Status = se.Status
			res.Detail = se.Body
			break
		}
		res.Outcome = domain.OutcomeTransport
		res.Detail = err.Error()
	}
	return res
}
