package schema

import (
	"time"

	"gorm.io/datatypes"
)

// TradeHistoryEntry represents the trade_history table - an append-only
// ledger of ownership observations. Rows are never updated after insert;
// recent-trade views and serial provenance are derived from this table.
type TradeHistoryEntry struct {
	// ID is the internal database primary key
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// ItemID is the marketplace item id
	ItemID int64 `gorm:"column:item_id;not null;index:idx_trade_history_item_serial,priority:1"`
	// SerialNumber is the copy the observation concerns
	SerialNumber int64 `gorm:"column:serial;not null;index:idx_trade_history_item_serial,priority:2"`
	// UserID is the new owner at observation time
	UserID int64 `gorm:"column:user_id;not null;index:idx_trade_history_user_created,priority:1"`
	// Username is the new owner's display name at observation time
	Username string `gorm:"column:username;not null;type:text"`
	// IsFirst marks the initial discovery of a serial. No prior owner was
	// known, so the row is provenance, not a trade.
	IsFirst bool `gorm:"column:is_first;not null;default:false"`
	// Raw keeps the upstream inventory entry that produced this row
	Raw datatypes.JSON `gorm:"column:raw;type:jsonb"`
	// CreatedAt is when the observation was recorded
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz;index:idx_trade_history_user_created,priority:2"`
}

// TableName specifies the table name for the TradeHistoryEntry model
func (TradeHistoryEntry) TableName() string {
	return "trade_history"
}
