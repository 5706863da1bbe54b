package catalogue_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hoardwatch/ingestor/internal/catalogue"
	"github.com/hoardwatch/ingestor/internal/domain"
	"github.com/hoardwatch/ingestor/internal/logger"
	"github.com/hoardwatch/ingestor/internal/mocks"
	"github.com/hoardwatch/ingestor/internal/store/schema"
)

func TestMain(m *testing.M) {
	// Initialize logger for tests
	err := logger.Initialize(logger.Config{
		Debug: false,
	})
	if err != nil {
		panic(err)
	}

	code := m.Run()
	os.Exit(code)
}

type syncerMocks struct {
	ctrl       *gomock.Controller
	client     *mocks.MockMarketplaceClient
	store      *mocks.MockStore
	dispatcher *mocks.MockDispatcher
	clock      *mocks.MockClock
}

func setupSyncer(t *testing.T) (*catalogue.Syncer, *syncerMocks) {
	ctrl := gomock.NewController(t)
	m := &syncerMocks{
		ctrl:       ctrl,
		client:     mocks.NewMockMarketplaceClient(ctrl),
		store:      mocks.NewMockStore(ctrl),
		dispatcher: mocks.NewMockDispatcher(ctrl),
		clock:      mocks.NewMockClock(ctrl),
	}

	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	m.clock.EXPECT().Now().Return(now).AnyTimes()

	return catalogue.NewSyncer(m.client, m.store, m.dispatcher, m.clock), m
}

func int64Ptr(v int64) *int64 { return &v }

func singlePage(entries ...domain.CatalogEntry) *domain.CatalogPage {
	return &domain.CatalogPage{Entries: entries, Page: 1, Pages: 1}
}

func expectWebsiteFeed(m *syncerMocks, page *domain.CatalogPage, err error) {
	m.client.EXPECT().FetchWebsiteCatalogPage(gomock.Any(), 1).Return(page, err)
}

func expectAPIFeed(m *syncerMocks, page *domain.CatalogPage, err error) {
	m.client.EXPECT().FetchAPICatalogPage(gomock.Any(), 1).Return(page, err)
}

func TestRunOnce_MergesFeedsAndUpserts(t *testing.T) {
	syncer, m := setupSyncer(t)
	defer m.ctrl.Finish()

	expectWebsiteFeed(m, singlePage(domain.CatalogEntry{
		ID:           1,
		Name:         "Emerald Crown",
		Description:  "shiny",
		Price:        int64Ptr(100),
		AveragePrice: int64Ptr(120),
	}), nil)
	expectAPIFeed(m, singlePage(
		domain.CatalogEntry{ID: 1, Name: "Emerald Crown", Price: int64Ptr(120)},
		domain.CatalogEntry{ID: 2, Name: "Obsidian Orb", Price: int64Ptr(300)},
	), nil)

	m.store.EXPECT().CollectableIDs(gomock.Any()).Return(map[int64]struct{}{}, nil)
	m.store.EXPECT().GetCollectable(gomock.Any(), gomock.Any()).Return(nil, nil).Times(2)
	// Item 1 is carried by the website feed, so its price drop path is
	// consulted; item 2 is API-only and has no current price to compare.
	m.store.EXPECT().GetItem(gomock.Any(), int64(1)).Return(nil, nil)

	written := make(map[int64]*schema.Collectable)
	m.store.EXPECT().
		UpsertCollectable(gomock.Any(), gomock.Any()).
		Do(func(_ context.Context, c *schema.Collectable) {
			written[c.ID] = c
		}).
		Return(nil).
		Times(2)
	m.store.EXPECT().UpsertCollectableStats(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	m.store.EXPECT().UpsertItem(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	require.NoError(t, syncer.RunOnce(context.Background()))

	require.Contains(t, written, int64(1))
	require.Contains(t, written, int64(2))
	// Website price is canonical; the API price survives as the list price.
	assert.Equal(t, int64Ptr(100), written[1].CurrentPrice)
	assert.Equal(t, int64Ptr(120), written[1].OriginalPrice)
	assert.Equal(t, "shiny", written[1].Description)
	// API-only items carry no current price.
	assert.Nil(t, written[2].CurrentPrice)
	assert.Equal(t, int64Ptr(300), written[2].OriginalPrice)
}

func TestRunOnce_IdempotentWhenNothingChanged(t *testing.T) {
	syncer, m := setupSyncer(t)
	defer m.ctrl.Finish()

	expectWebsiteFeed(m, singlePage(domain.CatalogEntry{
		ID:    1,
		Name:  "Emerald Crown",
		Price: int64Ptr(100),
	}), nil)
	expectAPIFeed(m, singlePage(domain.CatalogEntry{
		ID:    1,
		Name:  "Emerald Crown",
		Price: int64Ptr(120),
	}), nil)

	m.store.EXPECT().CollectableIDs(gomock.Any()).Return(map[int64]struct{}{1: {}}, nil)
	// The stored row matches the merged entry, so the pass writes nothing.
	m.store.EXPECT().
		GetCollectable(gomock.Any(), int64(1)).
		Return(&schema.Collectable{
			ID:            1,
			Name:          "Emerald Crown",
			OriginalPrice: int64Ptr(120),
			CurrentPrice:  int64Ptr(100),
		}, nil)

	require.NoError(t, syncer.RunOnce(context.Background()))
}

func TestRunOnce_OneFeedDownStillSyncs(t *testing.T) {
	syncer, m := setupSyncer(t)
	defer m.ctrl.Finish()

	expectWebsiteFeed(m, nil, domain.ErrFeedUnavailable)
	expectAPIFeed(m, singlePage(domain.CatalogEntry{
		ID:    2,
		Name:  "Obsidian Orb",
		Price: int64Ptr(300),
	}), nil)

	m.store.EXPECT().CollectableIDs(gomock.Any()).Return(map[int64]struct{}{}, nil)
	m.store.EXPECT().GetCollectable(gomock.Any(), int64(2)).Return(nil, nil)
	m.store.EXPECT().
		UpsertCollectable(gomock.Any(), gomock.Any()).
		Do(func(_ context.Context, c *schema.Collectable) {
			assert.Nil(t, c.CurrentPrice)
			assert.Equal(t, int64Ptr(300), c.OriginalPrice)
		}).
		Return(nil)
	m.store.EXPECT().UpsertCollectableStats(gomock.Any(), gomock.Any()).Return(nil)
	m.store.EXPECT().UpsertItem(gomock.Any(), gomock.Any()).Return(nil)

	require.NoError(t, syncer.RunOnce(context.Background()))
}

func TestRunOnce_BothFeedsDownFails(t *testing.T) {
	syncer, m := setupSyncer(t)
	defer m.ctrl.Finish()

	expectWebsiteFeed(m, nil, domain.ErrFeedUnavailable)
	expectAPIFeed(m, nil, domain.ErrFeedUnavailable)

	assert.Error(t, syncer.RunOnce(context.Background()))
}

func TestRunOnce_PriceDropRoutesDeal(t *testing.T) {
	syncer, m := setupSyncer(t)
	defer m.ctrl.Finish()

	expectWebsiteFeed(m, singlePage(domain.CatalogEntry{
		ID:    1,
		Name:  "Emerald Crown",
		Price: int64Ptr(850),
	}), nil)
	expectAPIFeed(m, singlePage(domain.CatalogEntry{
		ID:    1,
		Name:  "Emerald Crown",
		Price: int64Ptr(1200),
	}), nil)

	m.store.EXPECT().CollectableIDs(gomock.Any()).Return(map[int64]struct{}{1: {}}, nil)
	m.store.EXPECT().
		GetCollectable(gomock.Any(), int64(1)).
		Return(&schema.Collectable{
			ID:            1,
			Name:          "Emerald Crown",
			OriginalPrice: int64Ptr(1200),
			CurrentPrice:  int64Ptr(1000),
		}, nil)
	m.store.EXPECT().
		GetItem(gomock.Any(), int64(1)).
		Return(&schema.Item{ID: 1, BestPrice: int64Ptr(1000)}, nil)
	m.dispatcher.EXPECT().
		Deal(gomock.Any(), gomock.Any()).
		Do(func(_ context.Context, deal domain.Deal) {
			assert.Equal(t, int64(1000), deal.OldBestPrice)
			assert.Equal(t, int64(850), deal.NewBestPrice)
			assert.Equal(t, "Emerald Crown", deal.Name)
		}).
		Return(true)
	m.store.EXPECT().UpsertCollectable(gomock.Any(), gomock.Any()).Return(nil)
	m.store.EXPECT().UpsertCollectableStats(gomock.Any(), gomock.Any()).Return(nil)
	m.store.EXPECT().UpsertItem(gomock.Any(), gomock.Any()).Return(nil)

	require.NoError(t, syncer.RunOnce(context.Background()))
}

func TestRunOnce_EntryFailureDoesNotAbortPass(t *testing.T) {
	syncer, m := setupSyncer(t)
	defer m.ctrl.Finish()

	expectWebsiteFeed(m, singlePage(
		domain.CatalogEntry{ID: 1, Name: "Emerald Crown", Price: int64Ptr(100)},
		domain.CatalogEntry{ID: 2, Name: "Obsidian Orb", Price: int64Ptr(300)},
	), nil)
	expectAPIFeed(m, singlePage(), nil)

	m.store.EXPECT().CollectableIDs(gomock.Any()).Return(map[int64]struct{}{}, nil)

	// Entry 1 fails on lookup; entry 2 still syncs.
	m.store.EXPECT().GetCollectable(gomock.Any(), int64(1)).Return(nil, assert.AnError)
	m.store.EXPECT().GetCollectable(gomock.Any(), int64(2)).Return(nil, nil)
	m.store.EXPECT().GetItem(gomock.Any(), int64(2)).Return(nil, nil)
	m.store.EXPECT().
		UpsertCollectable(gomock.Any(), gomock.Any()).
		Do(func(_ context.Context, c *schema.Collectable) {
			assert.Equal(t, int64(2), c.ID)
		}).
		Return(nil)
	m.store.EXPECT().UpsertCollectableStats(gomock.Any(), gomock.Any()).Return(nil)
	m.store.EXPECT().UpsertItem(gomock.Any(), gomock.Any()).Return(nil)

	require.NoError(t, syncer.RunOnce(context.Background()))
}

func TestRunOnce_MultiPageFeed(t *testing.T) {
	syncer, m := setupSyncer(t)
	defer m.ctrl.Finish()

	m.client.EXPECT().FetchWebsiteCatalogPage(gomock.Any(), 1).Return(&domain.CatalogPage{
		Entries: []domain.CatalogEntry{{ID: 1, Name: "Emerald Crown", Price: int64Ptr(100)}},
		Page:    1,
		Pages:   2,
	}, nil)
	m.client.EXPECT().FetchWebsiteCatalogPage(gomock.Any(), 2).Return(&domain.CatalogPage{
		Entries: []domain.CatalogEntry{{ID: 2, Name: "Obsidian Orb", Price: int64Ptr(300)}},
		Page:    2,
		Pages:   2,
	}, nil)
	expectAPIFeed(m, singlePage(), nil)

	m.store.EXPECT().CollectableIDs(gomock.Any()).Return(map[int64]struct{}{}, nil)
	m.store.EXPECT().GetCollectable(gomock.Any(), gomock.Any()).Return(nil, nil).Times(2)
	m.store.EXPECT().GetItem(gomock.Any(), gomock.Any()).Return(nil, nil).Times(2)
	m.store.EXPECT().UpsertCollectable(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	m.store.EXPECT().UpsertCollectableStats(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	m.store.EXPECT().UpsertItem(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	require.NoError(t, syncer.RunOnce(context.Background()))
}

func TestSyncerName(t *testing.T) {
	syncer, m := setupSyncer(t)
	defer m.ctrl.Finish()

	assert.Equal(t, "catalogue-sync", syncer.Name())
}
