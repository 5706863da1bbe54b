package domain

import (
	"time"
)

// OwnerEntry is a single row from the paginated owners-by-item endpoint.
type OwnerEntry struct {
	Serial      int64
	PurchasedAt time.Time
	UserID      int64
	Username    string
}

// OwnerPage is one page of the ownership snapshot for an item.
type OwnerPage struct {
	Entries []OwnerEntry
	Page    int
	Pages   int
	Total   int
}

// Listing is a single active sale listing for an item.
type Listing struct {
	Price      int64
	Serial     int64
	SellerID   int64
	SellerName string
}

// ListingPage holds the active listings for an item.
type ListingPage struct {
	Listings []Listing
}

// BestPrice returns the minimum listing price and the seller count.
// ok is false when the page holds no listings.
func (p *ListingPage) BestPrice() (best int64, sellers int, ok bool) {
	if p == nil || len(p.Listings) == 0 {
		return 0, 0, false
	}
	best = p.Listings[0].Price
	for _, l := range p.Listings[1:] {
		if l.Price < best {
			best = l.Price
		}
	}
	return best, len(p.Listings), true
}

// CatalogEntry is one item as reported by a catalogue feed. Price fields
// are nullable because the two upstream feeds disagree on coverage.
type CatalogEntry struct {
	ID           int64
	Name         string
	Description  string
	Thumbnail    string
	Price        *int64
	AveragePrice *int64
	Type         string
}

// CatalogPage is one page of a catalogue feed.
type CatalogPage struct {
	Entries []CatalogEntry
	Page    int
	Pages   int
}

// OwnershipChange is a candidate transfer detected during one
// reconciliation cycle. It only exists between detection and pairing.
type OwnershipChange struct {
	ItemID       int64
	Serial       int64
	NewOwnerID   int64
	NewOwnerName string
	OldOwnerID   int64
}

// TradeEvent is a rendered trade between two users, synthesized from the
// ownership changes of a single cycle. Ephemeral; never persisted.
type TradeEvent struct {
	// EventID is a ULID, unique per rendered event.
	EventID string
	// CycleID correlates the event with the reconciliation cycle that
	// produced it.
	CycleID     string
	Title       string
	Description string
	LeftUserID  int64
	RightUserID int64
	Timestamp   time.Time
}

// Deal is a detected best-price drop on a tracked item.
type Deal struct {
	ItemID       int64
	Name         string
	Thumbnail    string
	OldBestPrice int64
	NewBestPrice int64
	AveragePrice *int64
}

// DropFraction returns the relative price drop, e.g. 0.11 for an 11% drop.
func (d Deal) DropFraction() float64 {
	if d.OldBestPrice <= 0 {
		return 0
	}
	return float64(d.OldBestPrice-d.NewBestPrice) / float64(d.OldBestPrice)
}
