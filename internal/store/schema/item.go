package schema

import (
	"time"
)

// Item represents the items table - every tracked marketplace item. The id
// is the marketplace's own item id, never generated locally. Items are
// created on first catalogue discovery and never deleted.
type Item struct {
	// ID is the marketplace item id
	ID int64 `gorm:"column:id;primaryKey"`
	// BestPrice is the lowest active listing price last observed (nil until first observed)
	BestPrice *int64 `gorm:"column:best_price;type:bigint"`
	// TotalSellers is the number of active sellers last observed
	TotalSellers *int `gorm:"column:total_sellers"`
	// AveragePrice is the recent average sale price reported upstream
	AveragePrice *int64 `gorm:"column:average_price;type:bigint"`
	// CreatedAt is when the item was first discovered
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is when any tracked value last changed
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the Item model
func (Item) TableName() string {
	return "items"
}
