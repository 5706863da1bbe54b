package schema

import (
	"time"
)

// Collectable represents the collectables table - the item catalogue
// merged from the website and API feeds. CurrentPrice follows the website
// feed; OriginalPrice follows the API feed and stands in as the list
// price when the website feed does not carry the item.
type Collectable struct {
	// ID is the marketplace item id
	ID int64 `gorm:"column:id;primaryKey"`
	// Name is the item's display name
	Name string `gorm:"column:name;not null;type:text"`
	// Description is the item's description text
	Description string `gorm:"column:description;type:text"`
	// Thumbnail is the item's thumbnail URL
	Thumbnail string `gorm:"column:thumbnail;type:text"`
	// OriginalPrice is the list price from the API feed
	OriginalPrice *int64 `gorm:"column:original_price;type:bigint"`
	// CurrentPrice is the canonical current price from the website feed
	// (nil when only the API feed carries the item)
	CurrentPrice *int64 `gorm:"column:current_price;type:bigint"`
	// Type is the item category reported upstream
	Type string `gorm:"column:type;type:text"`
	// CreatedAt is when the collectable was first discovered
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is when catalogue data last changed
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the Collectable model
func (Collectable) TableName() string {
	return "collectables"
}

// CollectableStats represents the collectables_stats table - rolling
// market stats per collectable, written by catalogue sync.
type CollectableStats struct {
	// CollectableID is the marketplace item id
	CollectableID int64 `gorm:"column:collectable_id;primaryKey"`
	// BestPrice is the lowest known listing price
	BestPrice *int64 `gorm:"column:best_price;type:bigint"`
	// AveragePrice is the recent average sale price reported upstream
	AveragePrice *int64 `gorm:"column:average_price;type:bigint"`
	// UpdatedAt is when the stats were last refreshed
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the CollectableStats model
func (CollectableStats) TableName() string {
	return "collectables_stats"
}
