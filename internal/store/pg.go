package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/hoardwatch/ingestor/internal/store/schema"
)

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// Migrate creates or updates the schema for all pipeline tables
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&schema.Item{},
		&schema.Serial{},
		&schema.TradeHistoryEntry{},
		&schema.ListingSnapshot{},
		&schema.Collectable{},
		&schema.CollectableStats{},
	)
}

// ConfigureConnectionPool configures the connection pool settings for a
// GORM database connection. Zero values fall back to reasonable defaults.
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// ItemIDsDesc returns all tracked item ids, newest first
func (s *pgStore) ItemIDsDesc(ctx context.Context) ([]int64, error) {
	var ids []int64
	err := s.db.WithContext(ctx).
		Model(&schema.Item{}).
		Order("id DESC").
		Pluck("id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list item ids: %w", err)
	}
	return ids, nil
}

// GetItem retrieves an item by id
func (s *pgStore) GetItem(ctx context.Context, id int64) (*schema.Item, error) {
	var item schema.Item
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	return &item, nil
}

// UpsertItem inserts an item or refreshes its catalogue-owned fields.
// On conflict only average_price is touched so the listing-owned columns
// written by reconciliation stay intact under concurrent sync.
func (s *pgStore) UpsertItem(ctx context.Context, item *schema.Item) error {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"average_price": item.AveragePrice,
			"updated_at":    gorm.Expr("now()"),
		}),
	}).Create(item).Error
	if err != nil {
		return fmt.Errorf("failed to upsert item %d: %w", item.ID, err)
	}
	return nil
}

// UpdateItemListingStats refreshes the listing-owned fields of an item
func (s *pgStore) UpdateItemListingStats(ctx context.Context, id int64, bestPrice int64, sellers int) error {
	err := s.db.WithContext(ctx).
		Model(&schema.Item{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"best_price":    bestPrice,
			"total_sellers": sellers,
			"updated_at":    gorm.Expr("now()"),
		}).Error
	if err != nil {
		return fmt.Errorf("failed to update listing stats for item %d: %w", id, err)
	}
	return nil
}

// GetSerial retrieves the ownership record for (itemID, serial)
func (s *pgStore) GetSerial(ctx context.Context, itemID, serial int64) (*schema.Serial, error) {
	var rec schema.Serial
	err := s.db.WithContext(ctx).
		Where("item_id = ? AND serial = ?", itemID, serial).
		First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get serial %d/%d: %w", itemID, serial, err)
	}
	return &rec, nil
}

// UpsertSerial inserts an ownership record or swaps its owner
func (s *pgStore) UpsertSerial(ctx context.Context, rec *schema.Serial) error {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "item_id"}, {Name: "serial"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"user_id":    rec.UserID,
			"username":   rec.Username,
			"updated_at": gorm.Expr("now()"),
		}),
	}).Create(rec).Error
	if err != nil {
		return fmt.Errorf("failed to upsert serial %d/%d: %w", rec.ItemID, rec.SerialNumber, err)
	}
	return nil
}

// AppendTradeHistory appends one ledger row
func (s *pgStore) AppendTradeHistory(ctx context.Context, e *schema.TradeHistoryEntry) error {
	if err := s.db.WithContext(ctx).Create(e).Error; err != nil {
		return fmt.Errorf("failed to append trade history for %d/%d: %w", e.ItemID, e.SerialNumber, err)
	}
	return nil
}

// RecentTradesByUsers returns non-first trade_history rows for the given
// users since the given time, joined with item names
func (s *pgStore) RecentTradesByUsers(ctx context.Context, userIDs []int64, since time.Time) ([]RecentTrade, error) {
	if len(userIDs) == 0 {
		return []RecentTrade{}, nil
	}

	var trades []RecentTrade
	err := s.db.WithContext(ctx).
		Table("trade_history").
		Select("trade_history.item_id AS item_id, COALESCE(collectables.name, '') AS item_name, trade_history.serial AS serial_number, trade_history.user_id AS user_id, trade_history.username AS username, trade_history.created_at AS created_at").
		Joins("LEFT JOIN collectables ON collectables.id = trade_history.item_id").
		Where("trade_history.user_id IN ? AND trade_history.created_at >= ? AND trade_history.is_first = false", userIDs, since).
		Order("trade_history.created_at DESC").
		Scan(&trades).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get recent trades: %w", err)
	}
	return trades, nil
}

// InsertListingSnapshot appends one listings_history row
func (s *pgStore) InsertListingSnapshot(ctx context.Context, snap *schema.ListingSnapshot) error {
	if err := s.db.WithContext(ctx).Create(snap).Error; err != nil {
		return fmt.Errorf("failed to insert listing snapshot for item %d: %w", snap.ItemID, err)
	}
	return nil
}

// CollectableIDs returns the set of known catalogue ids
func (s *pgStore) CollectableIDs(ctx context.Context) (map[int64]struct{}, error) {
	var ids []int64
	err := s.db.WithContext(ctx).
		Model(&schema.Collectable{}).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list collectable ids: %w", err)
	}

	set := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set, nil
}

// GetCollectable retrieves a catalogue entry by id
func (s *pgStore) GetCollectable(ctx context.Context, id int64) (*schema.Collectable, error) {
	var c schema.Collectable
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get collectable: %w", err)
	}
	return &c, nil
}

// UpsertCollectable inserts or refreshes a catalogue entry
func (s *pgStore) UpsertCollectable(ctx context.Context, c *schema.Collectable) error {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"name":           c.Name,
			"description":    c.Description,
			"thumbnail":      c.Thumbnail,
			"original_price": c.OriginalPrice,
			"current_price":  c.CurrentPrice,
			"type":           c.Type,
			"updated_at":     gorm.Expr("now()"),
		}),
	}).Create(c).Error
	if err != nil {
		return fmt.Errorf("failed to upsert collectable %d: %w", c.ID, err)
	}
	return nil
}

// UpsertCollectableStats inserts or refreshes a catalogue stats row
func (s *pgStore) UpsertCollectableStats(ctx context.Context, stats *schema.CollectableStats) error {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "collectable_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"best_price":    stats.BestPrice,
			"average_price": stats.AveragePrice,
			"updated_at":    gorm.Expr("now()"),
		}),
	}).Create(stats).Error
	if err != nil {
		return fmt.Errorf("failed to upsert collectable stats %d: %w", stats.CollectableID, err)
	}
	return nil
}
