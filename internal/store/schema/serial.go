package schema

import (
	"time"
)

// Serial represents the serials table - the current owner of one numbered
// copy of an item. At most one owner per (item_id, serial) at any time;
// rows are created on first observation and mutated on transfer, never
// deleted. Provenance lives in trade_history.
type Serial struct {
	// ItemID is the marketplace item id
	ItemID int64 `gorm:"column:item_id;not null;uniqueIndex:idx_serials_item_serial,priority:1"`
	// SerialNumber is the copy number minted by the marketplace, immutable
	SerialNumber int64 `gorm:"column:serial;not null;uniqueIndex:idx_serials_item_serial,priority:2"`
	// UserID is the current owner
	UserID int64 `gorm:"column:user_id;not null;index"`
	// Username is the current owner's display name at last observation
	Username string `gorm:"column:username;not null;type:text"`
	// UpdatedAt is when ownership was last observed to change
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the Serial model
func (Serial) TableName() string {
	return "serials"
}
