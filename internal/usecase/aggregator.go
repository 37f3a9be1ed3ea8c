// Package usecase contains the business logic of the application.
package usecase

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"gssoc-leaderbot/internal/domain"
	"gssoc-leaderbot/internal/gateway"
)

// Query templates for the GitHub search endpoint. All four carry the same
// sort directive through the gateway (created, descending).
const (
	queryAssignedIssues = "is:issue assignee:%s state:open"
	queryOpenPRs        = "is:pull-request author:%s state:open"
	queryMergedPRs      = "is:pull-request author:%s state:closed is:merged"
	queryMergedOnDay    = "is:pull-request author:%s state:closed is:merged merged:%s"
)

// Aggregator is the use case for aggregating one account's GitHub activity.
// It orchestrates the fetching and combining of data.
type Aggregator struct {
	fetcher gateway.Fetcher
	logger  *zap.Logger
}

// NewAggregator creates a new Aggregator instance.
func NewAggregator(fetcher gateway.Fetcher, logger *zap.Logger) *Aggregator {
	return &Aggregator{
		fetcher: fetcher,
		logger:  logger,
	}
}

// Fetch assembles the activity bundle for one account. The four underlying
// searches run concurrently; if any of them fails the whole aggregation fails
// with that error and no partial bundle is returned.
//
// The "today" boundary is the current UTC calendar date, computed once per
// call, not per page.
func (a *Aggregator) Fetch(ctx context.Context, user string) (*domain.Bundle, error) {
	today := time.Now().UTC().Format("2006-01-02")
	a.logger.Debug("aggregating activity", zap.String("user", user), zap.String("date", today))

	bundle := &domain.Bundle{User: user}
	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		var err error
		bundle.AssignedIssues, err = a.fetcher.SearchItems(egCtx, fmt.Sprintf(queryAssignedIssues, user))
		return err
	})

	eg.Go(func() error {
		var err error
		bundle.OpenPRs, err = a.fetcher.SearchItems(egCtx, fmt.Sprintf(queryOpenPRs, user))
		return err
	})

	eg.Go(func() error {
		var err error
		bundle.MergedPRs, err = a.fetcher.SearchItems(egCtx, fmt.Sprintf(queryMergedPRs, user))
		return err
	})

	eg.Go(func() error {
		var err error
		bundle.MergedToday, err = a.fetcher.SearchItems(egCtx, fmt.Sprintf(queryMergedOnDay, user, today))
		return err
	})

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	bundle.DailyScore = domain.Score(bundle.MergedToday)
	a.logger.Debug("aggregation complete",
		zap.String("user", user),
		zap.Int("open_prs", len(bundle.OpenPRs)),
		zap.Int("merged_prs", len(bundle.MergedPRs)),
		zap.Int("merged_today", len(bundle.MergedToday)),
		zap.Int("assigned_issues", len(bundle.AssignedIssues)),
		zap.Int("daily_score", bundle.DailyScore),
	)
	return bundle, nil
}
