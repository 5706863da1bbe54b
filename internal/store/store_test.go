package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/hoardwatch/ingestor/internal/store/schema"
)

func int64Ptr(v int64) *int64 { return &v }

// historyRow builds a trade_history row for tests
func historyRow(itemID, serial, userID int64, username string, isFirst bool, createdAt time.Time) *schema.TradeHistoryEntry {
	return &schema.TradeHistoryEntry{
		ItemID:       itemID,
		SerialNumber: serial,
		UserID:       userID,
		Username:     username,
		IsFirst:      isFirst,
		Raw:          datatypes.JSON(fmt.Sprintf(`{"serial":%d,"user":{"id":%d}}`, serial, userID)),
		CreatedAt:    createdAt,
	}
}

// RunStoreTests runs the store contract tests against an implementation.
// initDB must hand back an isolated store per test; cleanupDB runs after.
func RunStoreTests(t *testing.T, initDB func(t *testing.T) Store, cleanupDB func(t *testing.T)) {
	ctx := context.Background()

	t.Run("ItemUpsertPreservesListingStats", func(t *testing.T) {
		st := initDB(t)
		defer cleanupDB(t)

		require.NoError(t, st.UpsertItem(ctx, &schema.Item{ID: 5, AveragePrice: int64Ptr(1200)}))

		item, err := st.GetItem(ctx, 5)
		require.NoError(t, err)
		require.NotNil(t, item)
		assert.Nil(t, item.BestPrice)
		require.NotNil(t, item.AveragePrice)
		assert.Equal(t, int64(1200), *item.AveragePrice)

		require.NoError(t, st.UpdateItemListingStats(ctx, 5, 1000, 3))

		// A later catalogue upsert only touches the catalogue-owned column.
		require.NoError(t, st.UpsertItem(ctx, &schema.Item{ID: 5, AveragePrice: int64Ptr(1300)}))

		item, err = st.GetItem(ctx, 5)
		require.NoError(t, err)
		require.NotNil(t, item)
		require.NotNil(t, item.BestPrice)
		assert.Equal(t, int64(1000), *item.BestPrice)
		require.NotNil(t, item.TotalSellers)
		assert.Equal(t, 3, *item.TotalSellers)
		require.NotNil(t, item.AveragePrice)
		assert.Equal(t, int64(1300), *item.AveragePrice)
	})

	t.Run("GetItemMissingReturnsNil", func(t *testing.T) {
		st := initDB(t)
		defer cleanupDB(t)

		item, err := st.GetItem(ctx, 404)
		require.NoError(t, err)
		assert.Nil(t, item)
	})

	t.Run("ItemIDsNewestFirst", func(t *testing.T) {
		st := initDB(t)
		defer cleanupDB(t)

		for _, id := range []int64{1, 3, 2} {
			require.NoError(t, st.UpsertItem(ctx, &schema.Item{ID: id}))
		}

		ids, err := st.ItemIDsDesc(ctx)
		require.NoError(t, err)
		assert.Equal(t, []int64{3, 2, 1}, ids)
	})

	t.Run("SerialOwnershipTransfer", func(t *testing.T) {
		st := initDB(t)
		defer cleanupDB(t)

		rec, err := st.GetSerial(ctx, 5, 1)
		require.NoError(t, err)
		assert.Nil(t, rec)

		require.NoError(t, st.UpsertSerial(ctx, &schema.Serial{
			ItemID: 5, SerialNumber: 1, UserID: 100, Username: "alice",
		}))

		rec, err = st.GetSerial(ctx, 5, 1)
		require.NoError(t, err)
		require.NotNil(t, rec)
		assert.Equal(t, int64(100), rec.UserID)
		assert.Equal(t, "alice", rec.Username)

		// Transfer: the same (item, serial) swaps owner in place.
		require.NoError(t, st.UpsertSerial(ctx, &schema.Serial{
			ItemID: 5, SerialNumber: 1, UserID: 200, Username: "bob",
		}))

		rec, err = st.GetSerial(ctx, 5, 1)
		require.NoError(t, err)
		require.NotNil(t, rec)
		assert.Equal(t, int64(200), rec.UserID)
		assert.Equal(t, "bob", rec.Username)

		// Another serial of the same item is independent.
		require.NoError(t, st.UpsertSerial(ctx, &schema.Serial{
			ItemID: 5, SerialNumber: 2, UserID: 100, Username: "alice",
		}))
		rec, err = st.GetSerial(ctx, 5, 2)
		require.NoError(t, err)
		require.NotNil(t, rec)
		assert.Equal(t, int64(100), rec.UserID)
	})

	t.Run("RecentTradesByUsers", func(t *testing.T) {
		st := initDB(t)
		defer cleanupDB(t)

		now := time.Now().UTC()
		require.NoError(t, st.UpsertCollectable(ctx, &schema.Collectable{ID: 5, Name: "Emerald Crown"}))

		// First observations are provenance, not trades.
		require.NoError(t, st.AppendTradeHistory(ctx, historyRow(5, 1, 100, "alice", true, now.Add(-time.Hour))))
		require.NoError(t, st.AppendTradeHistory(ctx, historyRow(5, 1, 100, "alice", false, now.Add(-30*time.Minute))))
		require.NoError(t, st.AppendTradeHistory(ctx, historyRow(7, 2, 200, "bob", false, now.Add(-10*time.Minute))))
		// Outside the window.
		require.NoError(t, st.AppendTradeHistory(ctx, historyRow(5, 3, 100, "alice", false, now.Add(-48*time.Hour))))
		// Unrelated user.
		require.NoError(t, st.AppendTradeHistory(ctx, historyRow(5, 4, 999, "mallory", false, now.Add(-5*time.Minute))))

		trades, err := st.RecentTradesByUsers(ctx, []int64{100, 200}, now.Add(-6*time.Hour))
		require.NoError(t, err)
		require.Len(t, trades, 2)

		// Newest first; names resolve through the catalogue when present.
		assert.Equal(t, "bob", trades[0].Username)
		assert.Equal(t, int64(7), trades[0].ItemID)
		assert.Equal(t, "", trades[0].ItemName)
		assert.Equal(t, "alice", trades[1].Username)
		assert.Equal(t, "Emerald Crown", trades[1].ItemName)
		assert.Equal(t, int64(1), trades[1].SerialNumber)
	})

	t.Run("RecentTradesEmptyUserList", func(t *testing.T) {
		st := initDB(t)
		defer cleanupDB(t)

		trades, err := st.RecentTradesByUsers(ctx, nil, time.Now().Add(-time.Hour))
		require.NoError(t, err)
		assert.Empty(t, trades)
	})

	t.Run("ListingSnapshotsAppend", func(t *testing.T) {
		st := initDB(t)
		defer cleanupDB(t)

		require.NoError(t, st.InsertListingSnapshot(ctx, &schema.ListingSnapshot{
			ItemID: 5, BestPrice: 1000, Sellers: 3,
		}))
		require.NoError(t, st.InsertListingSnapshot(ctx, &schema.ListingSnapshot{
			ItemID: 5, BestPrice: 890, Sellers: 2,
		}))
	})

	t.Run("CollectableUpsertAndLookup", func(t *testing.T) {
		st := initDB(t)
		defer cleanupDB(t)

		known, err := st.CollectableIDs(ctx)
		require.NoError(t, err)
		assert.Empty(t, known)

		require.NoError(t, st.UpsertCollectable(ctx, &schema.Collectable{
			ID:            1,
			Name:          "Emerald Crown",
			OriginalPrice: int64Ptr(120),
			CurrentPrice:  int64Ptr(100),
		}))
		require.NoError(t, st.UpsertCollectable(ctx, &schema.Collectable{
			ID:   2,
			Name: "Obsidian Orb",
		}))

		known, err = st.CollectableIDs(ctx)
		require.NoError(t, err)
		assert.Len(t, known, 2)
		assert.Contains(t, known, int64(1))
		assert.Contains(t, known, int64(2))

		c, err := st.GetCollectable(ctx, 1)
		require.NoError(t, err)
		require.NotNil(t, c)
		assert.Equal(t, "Emerald Crown", c.Name)
		require.NotNil(t, c.CurrentPrice)
		assert.Equal(t, int64(100), *c.CurrentPrice)

		// Re-upsert refreshes the upstream-sourced values in place.
		require.NoError(t, st.UpsertCollectable(ctx, &schema.Collectable{
			ID:            1,
			Name:          "Emerald Crown",
			OriginalPrice: int64Ptr(120),
			CurrentPrice:  int64Ptr(90),
		}))
		c, err = st.GetCollectable(ctx, 1)
		require.NoError(t, err)
		require.NotNil(t, c)
		require.NotNil(t, c.CurrentPrice)
		assert.Equal(t, int64(90), *c.CurrentPrice)

		c, err = st.GetCollectable(ctx, 404)
		require.NoError(t, err)
		assert.Nil(t, c)
	})

	t.Run("CollectableStatsUpsert", func(t *testing.T) {
		st := initDB(t)
		defer cleanupDB(t)

		require.NoError(t, st.UpsertCollectableStats(ctx, &schema.CollectableStats{
			CollectableID: 1,
			BestPrice:     int64Ptr(100),
			AveragePrice:  int64Ptr(120),
		}))
		require.NoError(t, st.UpsertCollectableStats(ctx, &schema.CollectableStats{
			CollectableID: 1,
			BestPrice:     int64Ptr(90),
			AveragePrice:  int64Ptr(118),
		}))
	})
}
