package notify_test

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hoardwatch/ingestor/internal/domain"
	"github.com/hoardwatch/ingestor/internal/logger"
	"github.com/hoardwatch/ingestor/internal/mocks"
	"github.com/hoardwatch/ingestor/internal/notify"
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

// capturedMessage mirrors the outbound webhook body for assertions
type capturedMessage struct {
	Username string `json:"username"`
	Embeds   []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Fields      []struct {
			Name  string `json:"name"`
			Value string `json:"value"`
		} `json:"fields"`
	} `json:"embeds"`
}

func decodeMessage(t *testing.T, body interface{}) capturedMessage {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	var msg capturedMessage
	require.NoError(t, json.Unmarshal(raw, &msg))
	return msg
}

type dispatcherMocks struct {
	ctrl       *gomock.Controller
	httpClient *mocks.MockHTTPClient
	clock      *mocks.MockClock
}

func setupDispatcher(t *testing.T) (notify.Dispatcher, *dispatcherMocks) {
	ctrl := gomock.NewController(t)
	m := &dispatcherMocks{
		ctrl:       ctrl,
		httpClient: mocks.NewMockHTTPClient(ctrl),
		clock:      mocks.NewMockClock(ctrl),
	}

	d := notify.NewDispatcher(m.httpClient, m.clock, notify.Config{
		DealsURL:       "https://hooks.test/deals",
		TradesURL:      "https://hooks.test/trades",
		OperationalURL: "https://hooks.test/ops",
		Username:       "hoardwatch",
	})
	return d, m
}

func tradeEvents(n int) []domain.TradeEvent {
	ts := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	events := make([]domain.TradeEvent, 0, n)
	for i := 0; i < n; i++ {
		events = append(events, domain.TradeEvent{
			EventID:     fmt.Sprintf("ev-%02d", i),
			Title:       fmt.Sprintf("Trade: user%d <-> user%d", i, i+1),
			Description: "swap",
			Timestamp:   ts,
		})
	}
	return events
}

func TestTradeBatch_ChunksAtTenEmbedsPerMessage(t *testing.T) {
	d, m := setupDispatcher(t)
	defer m.ctrl.Finish()

	var sizes []int
	m.httpClient.EXPECT().
		PostJSON(gomock.Any(), "https://hooks.test/trades", gomock.Any(), gomock.Any()).
		Do(func(_ context.Context, _ string, _ map[string]string, body interface{}) {
			sizes = append(sizes, len(decodeMessage(t, body).Embeds))
		}).
		Return(nil, nil).
		Times(3)
	m.clock.EXPECT().Sleep(1 * time.Second).Times(2)

	d.TradeBatch(context.Background(), tradeEvents(23))

	assert.Equal(t, []int{10, 10, 3}, sizes)
}

func TestTradeBatch_SingleChunkHasNoDelay(t *testing.T) {
	d, m := setupDispatcher(t)
	defer m.ctrl.Finish()

	m.httpClient.EXPECT().
		PostJSON(gomock.Any(), "https://hooks.test/trades", gomock.Any(), gomock.Any()).
		Do(func(_ context.Context, _ string, _ map[string]string, body interface{}) {
			assert.Len(t, decodeMessage(t, body).Embeds, 7)
		}).
		Return(nil, nil)

	d.TradeBatch(context.Background(), tradeEvents(7))
}

func TestTradeBatch_EmptyBatchSendsNothing(t *testing.T) {
	d, m := setupDispatcher(t)
	defer m.ctrl.Finish()

	d.TradeBatch(context.Background(), nil)
}

func TestDeal_DropAtOrAboveThresholdFires(t *testing.T) {
	d, m := setupDispatcher(t)
	defer m.ctrl.Finish()

	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	m.clock.EXPECT().Now().Return(now).AnyTimes()

	m.httpClient.EXPECT().
		PostJSON(gomock.Any(), "https://hooks.test/deals", gomock.Any(), gomock.Any()).
		Do(func(_ context.Context, _ string, _ map[string]string, body interface{}) {
			msg := decodeMessage(t, body)
			require.Len(t, msg.Embeds, 1)
			assert.Equal(t, "Deal: Emerald Crown", msg.Embeds[0].Title)
		}).
		Return(nil, nil)

	// 1000 -> 890 is an 11% drop.
	fired := d.Deal(context.Background(), domain.Deal{
		ItemID:       5,
		Name:         "Emerald Crown",
		OldBestPrice: 1000,
		NewBestPrice: 890,
	})
	assert.True(t, fired)
}

func TestDeal_DropBelowThresholdSuppressed(t *testing.T) {
	d, m := setupDispatcher(t)
	defer m.ctrl.Finish()

	// 1000 -> 910 is a 9% drop, under the 10% threshold.
	fired := d.Deal(context.Background(), domain.Deal{
		ItemID:       5,
		Name:         "Emerald Crown",
		OldBestPrice: 1000,
		NewBestPrice: 910,
	})
	assert.False(t, fired)
}

func TestDeal_ExactThresholdFires(t *testing.T) {
	d, m := setupDispatcher(t)
	defer m.ctrl.Finish()

	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	m.clock.EXPECT().Now().Return(now).AnyTimes()
	m.httpClient.EXPECT().
		PostJSON(gomock.Any(), "https://hooks.test/deals", gomock.Any(), gomock.Any()).
		Return(nil, nil)

	fired := d.Deal(context.Background(), domain.Deal{
		ItemID:       5,
		Name:         "Emerald Crown",
		OldBestPrice: 1000,
		NewBestPrice: 900,
	})
	assert.True(t, fired)
}

func TestDeal_DeliveryFailureStillReportsFired(t *testing.T) {
	d, m := setupDispatcher(t)
	defer m.ctrl.Finish()

	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	m.clock.EXPECT().Now().Return(now).AnyTimes()
	m.httpClient.EXPECT().
		PostJSON(gomock.Any(), "https://hooks.test/deals", gomock.Any(), gomock.Any()).
		Return(nil, assert.AnError)

	fired := d.Deal(context.Background(), domain.Deal{
		ItemID:       5,
		Name:         "Emerald Crown",
		OldBestPrice: 1000,
		NewBestPrice: 800,
	})
	assert.True(t, fired)
}

func TestOperational_RateLimitedToOnePerWindow(t *testing.T) {
	d, m := setupDispatcher(t)
	defer m.ctrl.Finish()

	t0 := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	m.clock.EXPECT().Now().Return(t0)
	m.clock.EXPECT().Now().Return(t0.Add(30 * time.Second))
	m.clock.EXPECT().Now().Return(t0.Add(61 * time.Second))

	var delivered []string
	m.httpClient.EXPECT().
		PostJSON(gomock.Any(), "https://hooks.test/ops", gomock.Any(), gomock.Any()).
		Do(func(_ context.Context, _ string, _ map[string]string, body interface{}) {
			msg := decodeMessage(t, body)
			require.Len(t, msg.Embeds, 1)
			delivered = append(delivered, msg.Embeds[0].Description)
		}).
		Return(nil, nil).
		Times(2)

	d.Operational(context.Background(), "first")
	d.Operational(context.Background(), "suppressed")
	d.Operational(context.Background(), "third")

	assert.Equal(t, []string{"first", "third"}, delivered)
}

func TestDispatcher_MissingURLIsSilent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	httpClient := mocks.NewMockHTTPClient(ctrl)
	clock := mocks.NewMockClock(ctrl)

	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	clock.EXPECT().Now().Return(now).AnyTimes()

	d := notify.NewDispatcher(httpClient, clock, notify.Config{})

	// The drop qualifies but no sink is configured; delivery is skipped
	// without touching the HTTP client.
	fired := d.Deal(context.Background(), domain.Deal{
		ItemID:       5,
		Name:         "Emerald Crown",
		OldBestPrice: 1000,
		NewBestPrice: 800,
	})
	assert.True(t, fired)
	d.Operational(context.Background(), "nobody listening")
}
