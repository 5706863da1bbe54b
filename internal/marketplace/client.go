package marketplace

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/hoardwatch/ingestor/internal/adapter"
	"github.com/hoardwatch/ingestor/internal/domain"
	"github.com/hoardwatch/ingestor/internal/logger"
)

// errorAlertWindow bounds how often repeated fetch failures escalate to an
// operational alert.
const errorAlertWindow = 60 * time.Second

// Alerter receives free-text operational alerts about degraded upstream
// conditions. Implementations must be safe to call from the fetch path.
type Alerter interface {
	Operational(ctx context.Context, message string)
}

// Client defines the interface for marketplace API operations to enable mocking.
// No method retries: a failed call is reported once and the polling cycle
// simply tries again on its next pass.
//
//go:generate mockgen -source=client.go -destination=../mocks/marketplace_client.go -package=mocks -mock_names=Client=MockMarketplaceClient
type Client interface {
	// FetchOwnersPage fetches one page of the ownership snapshot for an item
	FetchOwnersPage(ctx context.Context, itemID int64, page, limit int) (*domain.OwnerPage, error)
	// FetchListings fetches the active listings for an item
	FetchListings(ctx context.Context, itemID int64) (*domain.ListingPage, error)
	// FetchWebsiteCatalogPage fetches one page of the website catalogue feed
	FetchWebsiteCatalogPage(ctx context.Context, page int) (*domain.CatalogPage, error)
	// FetchAPICatalogPage fetches one page of the API catalogue feed
	FetchAPICatalogPage(ctx context.Context, page int) (*domain.CatalogPage, error)
}

// inventoryUser is the owner object on the owners endpoint
type inventoryUser struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// inventoryEntry is one row of the owners endpoint
type inventoryEntry struct {
	Serial      int64         `json:"serial"`
	PurchasedAt time.Time     `json:"purchasedAt"`
	User        inventoryUser `json:"user"`
}

// ownersResponse is the owners endpoint envelope
type ownersResponse struct {
	Inventories []inventoryEntry `json:"inventories"`
	Pages       int              `json:"pages"`
	Total       int              `json:"total"`
}

// listingEntry is one row of the listings endpoint
type listingEntry struct {
	Price     int64 `json:"price"`
	Inventory struct {
		Serial int64 `json:"serial"`
	} `json:"inventory"`
	Seller struct {
		ID       int64  `json:"id"`
		Username string `json:"username"`
	} `json:"seller"`
}

// listingsResponse is the listings endpoint envelope
type listingsResponse struct {
	Meta struct {
		Total int `json:"total"`
	} `json:"meta"`
	Data []listingEntry `json:"data"`
}

// catalogEntry is one row of either catalogue feed. The two feeds share
// this shape but disagree on which fields they populate.
type catalogEntry struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Thumbnail    string `json:"thumbnail"`
	Price        *int64 `json:"price"`
	AveragePrice *int64 `json:"averagePrice"`
	Type         string `json:"type"`
}

// catalogResponse is the catalogue feed envelope
type catalogResponse struct {
	Items []catalogEntry `json:"items"`
	Page  int            `json:"page"`
	Pages int            `json:"pages"`
}

// client implements Client against the marketplace HTTP API
type client struct {
	httpClient adapter.HTTPClient
	clock      adapter.Clock
	alerter    Alerter
	baseURL    string
	catalogURL string
	userAgent  string

	// error-window state, kept on the client value instead of process
	// globals so tests can construct isolated instances
	mu          sync.Mutex
	lastErrorAt time.Time
	lastAlertAt time.Time
}

// NewClient creates a new marketplace API client
func NewClient(httpClient adapter.HTTPClient, clock adapter.Clock, alerter Alerter, baseURL, catalogURL, userAgent string) Client {
	return &client{
		httpClient: httpClient,
		clock:      clock,
		alerter:    alerter,
		baseURL:    baseURL,
		catalogURL: catalogURL,
		userAgent:  userAgent,
	}
}

// get performs one GET with the identifying user-agent and records failures
// against the error window.
func (c *client) get(ctx context.Context, url string, result interface{}) error {
	headers := map[string]string{
		"User-Agent": c.userAgent,
	}
	if err := c.httpClient.GetJSON(ctx, url, headers, result); err != nil {
		c.recordError(ctx, url, err)
		return fmt.Errorf("%w: %v", domain.ErrFeedUnavailable, err)
	}
	return nil
}

// recordError logs the failure and escalates to an operational alert when
// errors recur within the window, at most one alert per window.
func (c *client) recordError(ctx context.Context, url string, err error) {
	logger.Warn("marketplace fetch failed", zap.String("url", url), zap.Error(err))

	now := c.clock.Now()

	c.mu.Lock()
	recurred := !c.lastErrorAt.IsZero() && now.Sub(c.lastErrorAt) <= errorAlertWindow
	alertDue := recurred && now.Sub(c.lastAlertAt) >= errorAlertWindow
	c.lastErrorAt = now
	if alertDue {
		c.lastAlertAt = now
	}
	c.mu.Unlock()

	if alertDue && c.alerter != nil {
		c.alerter.Operational(ctx, fmt.Sprintf("marketplace API is failing repeatedly, last error: %v", err))
	}
}

// FetchOwnersPage fetches one page of the ownership snapshot for an item
func (c *client) FetchOwnersPage(ctx context.Context, itemID int64, page, limit int) (*domain.OwnerPage, error) {
	url := fmt.Sprintf("%s/items/%d/owners?page=%d&limit=%d", c.baseURL, itemID, page, limit)

	var resp ownersResponse
	if err := c.get(ctx, url, &resp); err != nil {
		return nil, err
	}

	entries := make([]domain.OwnerEntry, 0, len(resp.Inventories))
	for _, inv := range resp.Inventories {
		if inv.Serial <= 0 || inv.User.ID <= 0 {
			logger.Warn("skipping malformed inventory entry",
				zap.Int64("item_id", itemID),
				zap.Int64("serial", inv.Serial),
				zap.Int64("user_id", inv.User.ID),
				zap.Error(domain.ErrMalformedEntry),
			)
			continue
		}
		entries = append(entries, domain.OwnerEntry{
			Serial:      inv.Serial,
			PurchasedAt: inv.PurchasedAt,
			UserID:      inv.User.ID,
			Username:    inv.User.Username,
		})
	}

	return &domain.OwnerPage{
		Entries: entries,
		Page:    page,
		Pages:   resp.Pages,
		Total:   resp.Total,
	}, nil
}

// FetchListings fetches the active listings for an item
func (c *client) FetchListings(ctx context.Context, itemID int64) (*domain.ListingPage, error) {
	url := fmt.Sprintf("%s/items/%d/listings", c.baseURL, itemID)

	var resp listingsResponse
	if err := c.get(ctx, url, &resp); err != nil {
		return nil, err
	}

	listings := make([]domain.Listing, 0, len(resp.Data))
	for _, l := range resp.Data {
		if l.Price <= 0 {
			logger.Warn("skipping malformed listing",
				zap.Int64("item_id", itemID),
				zap.Int64("price", l.Price),
				zap.Error(domain.ErrMalformedEntry),
			)
			continue
		}
		listings = append(listings, domain.Listing{
			Price:      l.Price,
			Serial:     l.Inventory.Serial,
			SellerID:   l.Seller.ID,
			SellerName: l.Seller.Username,
		})
	}

	return &domain.ListingPage{Listings: listings}, nil
}

// FetchWebsiteCatalogPage fetches one page of the website catalogue feed
func (c *client) FetchWebsiteCatalogPage(ctx context.Context, page int) (*domain.CatalogPage, error) {
	url := fmt.Sprintf("%s/collectables?page=%d", c.baseURL, page)
	return c.fetchCatalogPage(ctx, url, page)
}

// FetchAPICatalogPage fetches one page of the API catalogue feed
func (c *client) FetchAPICatalogPage(ctx context.Context, page int) (*domain.CatalogPage, error) {
	url := fmt.Sprintf("%s/collectables?page=%d", c.catalogURL, page)
	return c.fetchCatalogPage(ctx, url, page)
}

func (c *client) fetchCatalogPage(ctx context.Context, url string, page int) (*domain.CatalogPage, error) {
	var resp catalogResponse
	if err := c.get(ctx, url, &resp); err != nil {
		return nil, err
	}

	entries := make([]domain.CatalogEntry, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.ID <= 0 {
			logger.Warn("skipping malformed catalogue entry",
				zap.Int64("id", item.ID),
				zap.String("name", item.Name),
				zap.Error(domain.ErrMalformedEntry),
			)
			continue
		}
		entries = append(entries, domain.CatalogEntry{
			ID:           item.ID,
			Name:         item.Name,
			Description:  item.Description,
			Thumbnail:    item.Thumbnail,
			Price:        item.Price,
			AveragePrice: item.AveragePrice,
			Type:         item.Type,
		})
	}

	pages := resp.Pages
	if pages == 0 {
		pages = page
	}

	return &domain.CatalogPage{
		Entries: entries,
		Page:    page,
		Pages:   pages,
	}, nil
}
