package catalogue

import (
	"context"
	"fmt"
	"sort"

	"github.com/alitto/pond/v2"
	"go.uber.org/zap"

	"github.com/hoardwatch/ingestor/internal/adapter"
	"github.com/hoardwatch/ingestor/internal/domain"
	"github.com/hoardwatch/ingestor/internal/logger"
	"github.com/hoardwatch/ingestor/internal/marketplace"
	"github.com/hoardwatch/ingestor/internal/notify"
	"github.com/hoardwatch/ingestor/internal/store"
	"github.com/hoardwatch/ingestor/internal/store/schema"
)

// feedResult wraps one feed's entries and fetch error
type feedResult struct {
	entries []domain.CatalogEntry
	err     error
}

// merged is one catalogue item combined from both feeds. The website feed
// is canonical for the current price; the API feed supplies the original
// list price. An item seen only in the API feed has no current price.
type merged struct {
	entry        domain.CatalogEntry
	currentPrice *int64
	listPrice    *int64
}

// Syncer discovers new and changed catalogue entries from the two upstream
// feeds and merges them into the catalogue. Idempotent under repeated runs
// with identical input.
type Syncer struct {
	client     marketplace.Client
	store      store.Store
	dispatcher notify.Dispatcher
	clock      adapter.Clock
}

// NewSyncer creates a new catalogue syncer
func NewSyncer(client marketplace.Client, st store.Store, dispatcher notify.Dispatcher, clock adapter.Clock) *Syncer {
	return &Syncer{
		client:     client,
		store:      st,
		dispatcher: dispatcher,
		clock:      clock,
	}
}

// Name returns the job name for scheduling and logs
func (s *Syncer) Name() string {
	return "catalogue-sync"
}

// RunOnce fetches both catalogue feeds, merges them by item id and upserts
// new or changed entries. Price drops route through the deal-alert path.
func (s *Syncer) RunOnce(ctx context.Context) error {
	pool := pond.NewResultPool[*feedResult](2)

	websiteTask := pool.Submit(func() *feedResult {
		entries, err := s.fetchFeed(ctx, s.client.FetchWebsiteCatalogPage)
		return &feedResult{entries: entries, err: err}
	})
	apiTask := pool.Submit(func() *feedResult {
		entries, err := s.fetchFeed(ctx, s.client.FetchAPICatalogPage)
		return &feedResult{entries: entries, err: err}
	})

	website, _ := websiteTask.Wait()
	api, _ := apiTask.Wait()
	pool.StopAndWait()

	if website.err != nil {
		logger.Warn("website catalogue feed unavailable", zap.Error(website.err))
	}
	if api.err != nil {
		logger.Warn("api catalogue feed unavailable", zap.Error(api.err))
	}
	if website.err != nil && api.err != nil {
		return fmt.Errorf("both catalogue feeds unavailable: %w", website.err)
	}

	entries := mergeFeeds(website.entries, api.entries)

	known, err := s.store.CollectableIDs(ctx)
	if err != nil {
		return fmt.Errorf("failed to list known collectables: %w", err)
	}

	var added, changed int
	for _, m := range entries {
		isNew := false
		if _, ok := known[m.entry.ID]; !ok {
			isNew = true
		}

		wrote, err := s.applyEntry(ctx, m, isNew)
		if err != nil {
			// One bad entry never aborts the pass.
			logger.Error(err, zap.Int64("collectable_id", m.entry.ID))
			continue
		}
		if wrote {
			if isNew {
				added++
			} else {
				changed++
			}
		}
	}

	logger.Info("catalogue sync finished",
		zap.Int("merged", len(entries)),
		zap.Int("added", added),
		zap.Int("changed", changed),
	)

	return nil
}

// fetchFeed pages through one catalogue feed. A mid-feed page failure
// yields the partial result; an empty result is an error.
func (s *Syncer) fetchFeed(ctx context.Context, fetch func(context.Context, int) (*domain.CatalogPage, error)) ([]domain.CatalogEntry, error) {
	var entries []domain.CatalogEntry
	for page := 1; ; page++ {
		p, err := fetch(ctx, page)
		if err != nil {
			if len(entries) == 0 {
				return nil, err
			}
			logger.Warn("catalogue page fetch failed, using partial feed",
				zap.Int("page", page), zap.Error(err))
			break
		}
		entries = append(entries, p.Entries...)
		if page >= p.Pages {
			break
		}
	}
	return entries, nil
}

// mergeFeeds combines the two feeds by item id, sorted ascending by id so
// repeated runs apply entries in a stable order.
func mergeFeeds(website, api []domain.CatalogEntry) []merged {
	byID := make(map[int64]*merged, len(website)+len(api))

	for _, e := range api {
		byID[e.ID] = &merged{entry: e, listPrice: e.Price}
	}
	for _, e := range website {
		m, ok := byID[e.ID]
		if !ok {
			byID[e.ID] = &merged{entry: e, currentPrice: e.Price}
			continue
		}
		// Website data wins for descriptive fields and the current price;
		// the API feed's price stays as the original list price.
		m.currentPrice = e.Price
		if e.Name != "" {
			m.entry.Name = e.Name
		}
		if e.Description != "" {
			m.entry.Description = e.Description
		}
		if e.Thumbnail != "" {
			m.entry.Thumbnail = e.Thumbnail
		}
		if e.AveragePrice != nil {
			m.entry.AveragePrice = e.AveragePrice
		}
		if e.Type != "" {
			m.entry.Type = e.Type
		}
	}

	out := make([]merged, 0, len(byID))
	for _, m := range byID {
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].entry.ID < out[j].entry.ID })
	return out
}

// applyEntry upserts one merged entry when it is new or differs from the
// stored row. Returns whether anything was written.
func (s *Syncer) applyEntry(ctx context.Context, m merged, isNew bool) (bool, error) {
	existing, err := s.store.GetCollectable(ctx, m.entry.ID)
	if err != nil {
		return false, err
	}

	next := &schema.Collectable{
		ID:            m.entry.ID,
		Name:          m.entry.Name,
		Description:   m.entry.Description,
		Thumbnail:     m.entry.Thumbnail,
		OriginalPrice: m.listPrice,
		CurrentPrice:  m.currentPrice,
		Type:          m.entry.Type,
	}

	if existing != nil && collectableEqual(existing, next) {
		return false, nil
	}

	s.maybeRouteDeal(ctx, m)

	if err := s.store.UpsertCollectable(ctx, next); err != nil {
		return false, err
	}
	if err := s.store.UpsertCollectableStats(ctx, &schema.CollectableStats{
		CollectableID: m.entry.ID,
		BestPrice:     m.currentPrice,
		AveragePrice:  m.entry.AveragePrice,
	}); err != nil {
		return false, err
	}
	// Track the item so reconciliation picks it up next cycle.
	if err := s.store.UpsertItem(ctx, &schema.Item{
		ID:           m.entry.ID,
		AveragePrice: m.entry.AveragePrice,
	}); err != nil {
		return false, err
	}

	if isNew {
		logger.Info("new collectable discovered",
			zap.Int64("id", m.entry.ID),
			zap.String("name", m.entry.Name),
		)
	}

	return true, nil
}

// maybeRouteDeal hands the entry to the deal path when its new current
// price undercuts the previously known best price.
func (s *Syncer) maybeRouteDeal(ctx context.Context, m merged) {
	if m.currentPrice == nil {
		return
	}

	item, err := s.store.GetItem(ctx, m.entry.ID)
	if err != nil || item == nil || item.BestPrice == nil {
		return
	}
	if *m.currentPrice >= *item.BestPrice {
		return
	}

	s.dispatcher.Deal(ctx, domain.Deal{
		ItemID:       m.entry.ID,
		Name:         m.entry.Name,
		Thumbnail:    m.entry.Thumbnail,
		OldBestPrice: *item.BestPrice,
		NewBestPrice: *m.currentPrice,
		AveragePrice: m.entry.AveragePrice,
	})
}

// collectableEqual reports whether two catalogue rows carry the same
// upstream-sourced values.
func collectableEqual(a, b *schema.Collectable) bool {
	return a.Name == b.Name &&
		a.Description == b.Description &&
		a.Thumbnail == b.Thumbnail &&
		a.Type == b.Type &&
		int64PtrEqual(a.OriginalPrice, b.OriginalPrice) &&
		int64PtrEqual(a.CurrentPrice, b.CurrentPrice)
}

func int64PtrEqual(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
