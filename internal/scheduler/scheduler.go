// Package scheduler runs the deal check cycle on a fixed interval.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"dealbot/internal/filter"
	"dealbot/internal/model"
	"dealbot/internal/notify"
	"dealbot/internal/storage"
)

// StoreClient fetches current deals from one storefront.
type StoreClient interface {
	Name() string
	FetchDeals(ctx context.Context) ([]model.Deal, error)
}

// Enricher is implemented by store clients that can fill in description
// and rating detail for a deal before it is announced.
type Enricher interface {
	Enrich(ctx context.Context, deal model.Deal) model.Deal
}

// Summarizer produces a short blurb for a deal.
type Summarizer interface {
	Summarize(ctx context.Context, deal model.Deal) string
}

// Sender delivers a formatted message to the chat channel.
type Sender interface {
	Send(ctx context.Context, message string)
}

// Scheduler periodically polls the storefronts and announces new deals.
type Scheduler struct {
	stores    []StoreClient
	cache     storage.Storage
	summarize Summarizer
	sender    Sender
	log       *slog.Logger

	interval   time.Duration
	resetEvery time.Duration
	lastReset  time.Time
	now        func() time.Time
}

// New creates a Scheduler with the default 8-hour check interval and
// periodic cache reset disabled.
func New(stores []StoreClient, cache storage.Storage, summarize Summarizer, sender Sender, log *slog.Logger) *Scheduler {
	return &Scheduler{
		stores:    stores,
		cache:     cache,
		summarize: summarize,
		sender:    sender,
		log:       log,
		interval:  8 * time.Hour,
		now:       time.Now,
	}
}

// SetInterval overrides the default check interval.
func (s *Scheduler) SetInterval(d time.Duration) {
	s.interval = d
}

// SetResetInterval enables the periodic cache reset. Zero disables it.
func (s *Scheduler) SetResetInterval(d time.Duration) {
	s.resetEvery = d
}

// Run executes one cycle immediately, then repeats on the configured
// interval, blocking until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) {
	s.lastReset = s.now()
	s.runCycle(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		s.log.Info("sleeping until next check", "interval", s.interval)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runCycle(ctx)
		}
	}
}

func (s *Scheduler) runCycle(ctx context.Context) {
	for _, store := range s.stores {
		if ctx.Err() != nil {
			return
		}
		s.checkStore(ctx, store)
	}
	s.maybeResetCache()
}

func (s *Scheduler) checkStore(ctx context.Context, store StoreClient) {
	s.log.Info("checking storefront", "store", store.Name())

	deals, err := store.FetchDeals(ctx)
	if err != nil {
		s.log.Error("fetch deals", "store", store.Name(), "error", err)
		return
	}

	eligible := filter.Apply(deals)
	s.log.Debug("fetched deals", "store", store.Name(), "total", len(deals), "eligible", len(eligible))

	announced := 0
	for _, deal := range eligible {
		if ctx.Err() != nil {
			return
		}
		if s.cache.IsPosted(deal.Key()) {
			continue
		}
		s.announce(ctx, deal, store)
		announced++
	}
	if announced > 0 {
		s.log.Info("announced deals", "store", store.Name(), "count", announced)
	}
}

func (s *Scheduler) announce(ctx context.Context, deal model.Deal, store StoreClient) {
	if e, ok := store.(Enricher); ok {
		deal = e.Enrich(ctx, deal)
	}

	blurb := s.summarize.Summarize(ctx, deal)
	s.sender.Send(ctx, notify.Format(deal, blurb))

	if err := s.cache.MarkPosted(deal.Key(), s.now()); err != nil {
		s.log.Error("mark posted", "deal", deal.Key(), "error", err)
	}
}

func (s *Scheduler) maybeResetCache() {
	if s.resetEvery <= 0 {
		return
	}
	if s.now().Sub(s.lastReset) < s.resetEvery {
		return
	}
	if err := s.cache.Reset(); err != nil {
		s.log.Error("reset deal cache", "error", err)
		return
	}
	s.lastReset = s.now()
	s.log.Info("deal cache reset")
}
