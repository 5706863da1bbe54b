package reconcile

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hoardwatch/ingestor/internal/adapter"
	"github.com/hoardwatch/ingestor/internal/domain"
	"github.com/hoardwatch/ingestor/internal/logger"
	"github.com/hoardwatch/ingestor/internal/marketplace"
	"github.com/hoardwatch/ingestor/internal/notify"
	"github.com/hoardwatch/ingestor/internal/store"
	"github.com/hoardwatch/ingestor/internal/store/schema"
	"github.com/hoardwatch/ingestor/internal/trade"
)

// Config holds reconciliation pacing configuration. The delays respect the
// marketplace's implicit rate limits and are not correctness-critical.
type Config struct {
	PageLimit      int
	InterPageDelay time.Duration
	InterItemDelay time.Duration
}

// Engine walks every tracked item once per cycle, reconciles the fetched
// ownership snapshot against the store, accumulates transfer candidates
// and hands them to the pairer at cycle end. One item's failure never
// aborts the cycle.
type Engine struct {
	client     marketplace.Client
	store      store.Store
	pairer     *trade.Pairer
	dispatcher notify.Dispatcher
	clock      adapter.Clock
	cfg        Config
}

// NewEngine creates a new reconciliation engine
func NewEngine(client marketplace.Client, st store.Store, pairer *trade.Pairer, dispatcher notify.Dispatcher, clock adapter.Clock, cfg Config) *Engine {
	if cfg.PageLimit <= 0 {
		cfg.PageLimit = 100
	}
	return &Engine{
		client:     client,
		store:      st,
		pairer:     pairer,
		dispatcher: dispatcher,
		clock:      clock,
		cfg:        cfg,
	}
}

// Name returns the job name for scheduling and logs
func (e *Engine) Name() string {
	return "reconciliation"
}

// RunOnce performs one full reconciliation cycle: every item, newest
// first, then trade pairing over the accumulated changes, then dispatch.
// Pairing runs unconditionally even when items failed.
func (e *Engine) RunOnce(ctx context.Context) error {
	cycleID := uuid.NewString()

	itemIDs, err := e.store.ItemIDsDesc(ctx)
	if err != nil {
		return fmt.Errorf("failed to list items for cycle: %w", err)
	}

	logger.Info("reconciliation cycle started",
		zap.String("cycle_id", cycleID),
		zap.Int("items", len(itemIDs)),
	)

	acc := trade.NewAccumulator()
	for i, itemID := range itemIDs {
		if err := e.reconcileItem(ctx, itemID, acc); err != nil {
			logger.Error(err, zap.String("cycle_id", cycleID), zap.Int64("item_id", itemID))
		}
		if err := e.refreshListings(ctx, itemID); err != nil {
			logger.Error(err, zap.String("cycle_id", cycleID), zap.Int64("item_id", itemID))
		}
		if i < len(itemIDs)-1 {
			e.clock.Sleep(e.cfg.InterItemDelay)
		}
	}

	events := e.pairer.Pair(ctx, cycleID, acc.Drain())
	e.dispatcher.TradeBatch(ctx, events)

	logger.Info("reconciliation cycle finished",
		zap.String("cycle_id", cycleID),
		zap.Int("trade_events", len(events)),
	)

	return nil
}

// fetchOwnershipSnapshot pages through the owners endpoint until all pages
// are retrieved or a page fails. Partial results are still processed.
func (e *Engine) fetchOwnershipSnapshot(ctx context.Context, itemID int64) []domain.OwnerEntry {
	var entries []domain.OwnerEntry
	for page := 1; ; page++ {
		p, err := e.client.FetchOwnersPage(ctx, itemID, page, e.cfg.PageLimit)
		if err != nil {
			logger.Warn("owners page fetch failed, processing partial snapshot",
				zap.Int64("item_id", itemID),
				zap.Int("page", page),
				zap.Error(err),
			)
			break
		}
		entries = append(entries, p.Entries...)
		if page >= p.Pages {
			break
		}
		e.clock.Sleep(e.cfg.InterPageDelay)
	}
	return entries
}

// dedupeBySerial collapses duplicate serials in one snapshot, keeping the
// entry with the latest purchase time. The API occasionally reports the
// same serial under two owners mid-transfer.
func dedupeBySerial(entries []domain.OwnerEntry) map[int64]domain.OwnerEntry {
	bySerial := make(map[int64]domain.OwnerEntry, len(entries))
	for _, entry := range entries {
		prev, seen := bySerial[entry.Serial]
		if !seen || entry.PurchasedAt.After(prev.PurchasedAt) {
			bySerial[entry.Serial] = entry
		}
	}
	return bySerial
}

// reconcileItem diffs one item's deduplicated ownership snapshot against
// the store, appending history rows and accumulating transfer candidates.
func (e *Engine) reconcileItem(ctx context.Context, itemID int64, acc *trade.Accumulator) error {
	entries := e.fetchOwnershipSnapshot(ctx, itemID)
	if len(entries) == 0 {
		return nil
	}

	for serial, entry := range dedupeBySerial(entries) {
		if err := e.reconcileSerial(ctx, itemID, serial, entry, acc); err != nil {
			// Per-record persistence failures do not abort the item.
			logger.Error(err, zap.Int64("item_id", itemID), zap.Int64("serial", serial))
		}
	}
	return nil
}

// reconcileSerial applies one deduplicated (serial -> owner) observation
func (e *Engine) reconcileSerial(ctx context.Context, itemID, serial int64, entry domain.OwnerEntry, acc *trade.Accumulator) error {
	stored, err := e.store.GetSerial(ctx, itemID, serial)
	if err != nil {
		return err
	}

	if stored != nil && stored.UserID == entry.UserID {
		// Owner unchanged: no history row, no pairing candidate.
		return nil
	}

	isFirst := stored == nil
	if !isFirst {
		acc.Add(domain.OwnershipChange{
			ItemID:       itemID,
			Serial:       serial,
			NewOwnerID:   entry.UserID,
			NewOwnerName: entry.Username,
			OldOwnerID:   stored.UserID,
		})
	}

	raw, err := json.Marshal(entry)
	if err != nil {
		raw = nil
	}
	if err := e.store.AppendTradeHistory(ctx, &schema.TradeHistoryEntry{
		ItemID:       itemID,
		SerialNumber: serial,
		UserID:       entry.UserID,
		Username:     entry.Username,
		IsFirst:      isFirst,
		Raw:          raw,
		CreatedAt:    e.clock.Now(),
	}); err != nil {
		return err
	}

	return e.store.UpsertSerial(ctx, &schema.Serial{
		ItemID:       itemID,
		SerialNumber: serial,
		UserID:       entry.UserID,
		Username:     entry.Username,
		UpdatedAt:    e.clock.Now(),
	})
}

// refreshListings fetches the item's current listings, routes deal
// candidates and persists a snapshot when the observed values changed.
func (e *Engine) refreshListings(ctx context.Context, itemID int64) error {
	page, err := e.client.FetchListings(ctx, itemID)
	if err != nil {
		// Unavailable listings are an empty result; next cycle retries.
		return nil
	}

	best, sellers, ok := page.BestPrice()
	if !ok {
		return nil
	}

	item, err := e.store.GetItem(ctx, itemID)
	if err != nil {
		return err
	}
	if item == nil {
		return nil
	}

	unchanged := item.BestPrice != nil && *item.BestPrice == best &&
		item.TotalSellers != nil && *item.TotalSellers == sellers
	if unchanged {
		return nil
	}

	if item.BestPrice != nil && best < *item.BestPrice {
		e.routeDealCandidate(ctx, item, best)
	}

	if err := e.store.InsertListingSnapshot(ctx, &schema.ListingSnapshot{
		ItemID:    itemID,
		BestPrice: best,
		Sellers:   sellers,
		CreatedAt: e.clock.Now(),
	}); err != nil {
		return err
	}

	return e.store.UpdateItemListingStats(ctx, itemID, best, sellers)
}

// routeDealCandidate hands a price drop to the dispatcher, which applies
// the alert threshold. Dispatch is best-effort and never blocks the write.
func (e *Engine) routeDealCandidate(ctx context.Context, item *schema.Item, newBest int64) {
	deal := domain.Deal{
		ItemID:       item.ID,
		Name:         fmt.Sprintf("Item %d", item.ID),
		OldBestPrice: *item.BestPrice,
		NewBestPrice: newBest,
		AveragePrice: item.AveragePrice,
	}

	if c, err := e.store.GetCollectable(ctx, item.ID); err == nil && c != nil {
		if c.Name != "" {
			deal.Name = c.Name
		}
		deal.Thumbnail = c.Thumbnail
	}

	e.dispatcher.Deal(ctx, deal)
}
