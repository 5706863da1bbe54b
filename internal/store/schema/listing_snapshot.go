package schema

import (
	"time"
)

// ListingSnapshot represents the listings_history table - append-only
// point-in-time listing state per item, feeding deal detection and the
// price history charts consumed by the dashboard.
type ListingSnapshot struct {
	// ID is the internal database primary key
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// ItemID is the marketplace item id
	ItemID int64 `gorm:"column:item_id;not null;index"`
	// BestPrice is the lowest listing price at snapshot time
	BestPrice int64 `gorm:"column:best_price;not null;type:bigint"`
	// Sellers is the active seller count at snapshot time
	Sellers int `gorm:"column:sellers;not null"`
	// CreatedAt is the snapshot time
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the ListingSnapshot model
func (ListingSnapshot) TableName() string {
	return "listings_history"
}
