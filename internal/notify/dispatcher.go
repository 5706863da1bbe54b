package notify

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

const (
	// dealDropThreshold is the minimum relative best-price drop that
	// fires a deal alert. Below it the candidate is suppressed.
	dealDropThreshold = 0.10

	// maxEmbedsPerMessage is the sink's hard batching limit.
	maxEmbedsPerMessage = 10

	// interBatchDelay spaces consecutive trade batches to stay under the
	// sink's rate limit.
	interBatchDelay = 1 * time.Second

	// operationalAlertWindow bounds operational alerts to one per window.
	operationalAlertWindow = time.Minute

	colorDeal  = 0x2ecc71
	colorTrade = 0x3498db
	colorOps   = 0xe74c3c
)

// Config holds the outbound sink configuration
type Config struct {
	DealsURL       string
	TradesURL      string
	OperationalURL string
	Username       string
	AvatarURL      string
}

// Dispatcher emits structured alerts to the webhook sink. All methods are
// fire-and-forget: delivery is at-most-once and a failure never affects
// the data mutation that triggered it.
//
//go:generate mockgen -source=dispatcher.go -destination=../mocks/dispatcher.go -package=mocks -mock_names=Dispatcher=MockDispatcher
type Dispatcher interface {
	// Deal emits a deal alert when the drop meets the threshold;
	// returns whether the alert fired
	Deal(ctx context.Context, deal domain.Deal) bool
	// TradeBatch emits the cycle's trade events, chunked to the sink's
	// batching limit
	TradeBatch(ctx context.Context, events []domain.TradeEvent)
	// Operational emits a rate-limited free-text pipeline alert
	Operational(ctx context.Context, message string)
}

// embedThumbnail is the thumbnail object of a webhook embed
type embedThumbnail struct {
	URL string `json:"url"`
}

// embedField is one field of a webhook embed
type embedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

// embed is one webhook embed
type embed struct {
	Title       string          `json:"title,omitempty"`
	Description string          `json:"description,omitempty"`
	Color       int             `json:"color,omitempty"`
	Timestamp   string          `json:"timestamp,omitempty"`
	Thumbnail   *embedThumbnail `json:"thumbnail,omitempty"`
	Fields      []embedField    `json:"fields,omitempty"`
}

// message is the webhook POST body
type message struct {
	Username  string  `json:"username"`
	AvatarURL string  `json:"avatar_url,omitempty"`
	Embeds    []embed `json:"embeds"`
}

// webhookDispatcher implements Dispatcher against a Discord-style webhook
type webhookDispatcher struct {
	httpClient adapter.HTTPClient
	clock      adapter.Clock
	cfg        Config

	mu          sync.Mutex
	lastOpAlert time.Time
}

// NewDispatcher creates a new webhook dispatcher
func NewDispatcher(httpClient adapter.HTTPClient, clock adapter.Clock, cfg Config) Dispatcher {
	return &webhookDispatcher{
		httpClient: httpClient,
		clock:      clock,
		cfg:        cfg,
	}
}

// post delivers one webhook message; failures are logged only
func (d *webhookDispatcher) post(ctx context.Context, url string, msg message) {
	if url == "" {
		return
	}
	if _, err := d.httpClient.PostJSON(ctx, url, nil, msg); err != nil {
		logger.Warn("webhook dispatch failed", zap.String("url", url), zap.Error(err))
	}
}

// Deal emits a deal alert when the best-price drop meets the threshold
func (d *webhookDispatcher) Deal(ctx context.Context, deal domain.Deal) bool {
	drop := deal.DropFraction()
	if drop < dealDropThreshold {
		logger.Debug("deal candidate below threshold",
			zap.Int64("item_id", deal.ItemID),
			zap.Float64("drop", drop),
		)
		return false
	}

	fields := []embedField{
		{Name: "Previous best", Value: fmt.Sprintf("%d", deal.OldBestPrice), Inline: true},
		{Name: "New best", Value: fmt.Sprintf("%d", deal.NewBestPrice), Inline: true},
		{Name: "Drop", Value: fmt.Sprintf("%.1f%%", drop*100), Inline: true},
	}
	if deal.AveragePrice != nil {
		fields = append(fields, embedField{
			Name: "Recent average", Value: fmt.Sprintf("%d", *deal.AveragePrice), Inline: true,
		})
	}

	e := embed{
		Title:     fmt.Sprintf("Deal: %s", deal.Name),
		Color:     colorDeal,
		Timestamp: d.clock.Now().UTC().Format(time.RFC3339),
		Fields:    fields,
	}
	if deal.Thumbnail != "" {
		e.Thumbnail = &embedThumbnail{URL: deal.Thumbnail}
	}

	d.post(ctx, d.cfg.DealsURL, message{
		Username:  d.cfg.Username,
		AvatarURL: d.cfg.AvatarURL,
		Embeds:    []embed{e},
	})

	return true
}

// TradeBatch emits the cycle's trade events in chunks of at most ten
// embeds per outbound message, with a short delay between chunks
func (d *webhookDispatcher) TradeBatch(ctx context.Context, events []domain.TradeEvent) {
	if len(events) == 0 {
		return
	}

	for start := 0; start < len(events); start += maxEmbedsPerMessage {
		end := min(start+maxEmbedsPerMessage, len(events))

		embeds := make([]embed, 0, end-start)
		for _, ev := range events[start:end] {
			embeds = append(embeds, embed{
				Title:       ev.Title,
				Description: ev.Description,
				Color:       colorTrade,
				Timestamp:   ev.Timestamp.UTC().Format(time.RFC3339),
			})
		}

		d.post(ctx, d.cfg.TradesURL, message{
			Username:  d.cfg.Username,
			AvatarURL: d.cfg.AvatarURL,
			Embeds:    embeds,
		})

		if end < len(events) {
			d.clock.Sleep(interBatchDelay)
		}
	}
}

// Operational emits a rate-limited free-text pipeline alert
func (d *webhookDispatcher) Operational(ctx context.Context, msg string) {
	now := d.clock.Now()

	d.mu.Lock()
	if !d.lastOpAlert.IsZero() && now.Sub(d.lastOpAlert) < operationalAlertWindow {
		d.mu.Unlock()
		return
	}
	d.lastOpAlert = now
	d.mu.Unlock()

	d.post(ctx, d.cfg.OperationalURL, message{
		Username:  d.cfg.Username,
		AvatarURL: d.cfg.AvatarURL,
		Embeds: []embed{{
			Title:       "Pipeline alert",
			Description: msg,
			Color:       colorOps,
			Timestamp:   now.UTC().Format(time.RFC3339),
		}},
	})
}
