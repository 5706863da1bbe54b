package store

import (
	"context"
	"time"

	"github.com/hoardwatch/ingestor/internal/store/schema"
)

// RecentTrade is a trade_history row joined with the item's catalogue name,
// used to render "other recent trades" context on trade events.
type RecentTrade struct {
	ItemID       int64
	ItemName     string
	SerialNumber int64
	UserID       int64
	Username     string
	CreatedAt    time.Time
}

// Store defines the interface for database operations
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore
type Store interface {
	// ItemIDsDesc returns all tracked item ids, newest (highest id) first
	ItemIDsDesc(ctx context.Context) ([]int64, error)
	// GetItem retrieves an item by id, nil when absent
	GetItem(ctx context.Context, id int64) (*schema.Item, error)
	// UpsertItem inserts an item or refreshes its catalogue-owned fields
	// (average price). Listing-owned fields are left untouched on conflict.
	UpsertItem(ctx context.Context, item *schema.Item) error
	// UpdateItemListingStats refreshes the listing-owned fields
	// (best price, total sellers) of an existing item
	UpdateItemListingStats(ctx context.Context, id int64, bestPrice int64, sellers int) error

	// GetSerial retrieves the ownership record for (itemID, serial), nil when absent
	GetSerial(ctx context.Context, itemID, serial int64) (*schema.Serial, error)
	// UpsertSerial inserts an ownership record or swaps its owner
	UpsertSerial(ctx context.Context, s *schema.Serial) error

	// AppendTradeHistory appends one ledger row; rows are never mutated
	AppendTradeHistory(ctx context.Context, e *schema.TradeHistoryEntry) error
	// RecentTradesByUsers returns non-first trade_history rows for the given
	// users since the given time, newest first, joined with item names
	RecentTradesByUsers(ctx context.Context, userIDs []int64, since time.Time) ([]RecentTrade, error)

	// InsertListingSnapshot appends one listings_history row
	InsertListingSnapshot(ctx context.Context, s *schema.ListingSnapshot) error

	// CollectableIDs returns the set of known catalogue ids
	CollectableIDs(ctx context.Context) (map[int64]struct{}, error)
	// GetCollectable retrieves a catalogue entry by id, nil when absent
	GetCollectable(ctx context.Context, id int64) (*schema.Collectable, error)
	// UpsertCollectable inserts or refreshes a catalogue entry
	UpsertCollectable(ctx context.Context, c *schema.Collectable) error
	// UpsertCollectableStats inserts or refreshes a catalogue stats row
	UpsertCollectableStats(ctx context.Context, s *schema.CollectableStats) error
}
