package trade

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/hoardwatch/ingestor/internal/adapter"
	"github.com/hoardwatch/ingestor/internal/domain"
	"github.com/hoardwatch/ingestor/internal/logger"
	"github.com/hoardwatch/ingestor/internal/store"
)

const (
	// historyWindow is the trailing window of trade history rendered as
	// "other recent trades" context on an event.
	historyWindow = 6 * time.Hour

	// maxContextLines caps the contextual history lines per event so a
	// busy trader cannot blow up the embed size.
	maxContextLines = 10

	unknownUsername = "Unknown"
)

// Accumulator collects the candidate ownership changes of one
// reconciliation cycle. It is a plain value threaded through the cycle,
// consumed exactly once by the pairer at cycle end.
type Accumulator struct {
	changes []domain.OwnershipChange
}

// NewAccumulator creates an empty accumulator for one cycle
func NewAccumulator() *Accumulator {
	return &Accumulator{}
}

// Add records one candidate ownership change
func (a *Accumulator) Add(c domain.OwnershipChange) {
	a.changes = append(a.changes, c)
}

// Len returns the number of accumulated changes
func (a *Accumulator) Len() int {
	return len(a.changes)
}

// Drain returns the accumulated changes and empties the accumulator
func (a *Accumulator) Drain() []domain.OwnershipChange {
	changes := a.changes
	a.changes = nil
	return changes
}

// pairGroup aggregates the changes between one unordered pair of users.
// Left is the new owner of the group's first change; right is that
// change's previous owner. The designation is arbitrary but deterministic
// for a given input order.
type pairGroup struct {
	leftID        int64
	leftName      string
	rightID       int64
	rightName     string
	leftReceived  []domain.OwnershipChange
	rightReceived []domain.OwnershipChange
}

// Pairer synthesizes trade events from the ownership changes of one cycle
type Pairer struct {
	store store.Store
	clock adapter.Clock
}

// NewPairer creates a new trade pairer
func NewPairer(st store.Store, clock adapter.Clock) *Pairer {
	return &Pairer{store: st, clock: clock}
}

// pairKey normalizes an (a, b) user pair so that (A,B) and (B,A) collide.
// Trades are symmetric; both sides observed independently must report once.
func pairKey(a, b int64) string {
	if a > b {
		a, b = b, a
	}
	return fmt.Sprintf("%d:%d", a, b)
}

// Pair groups the given ownership changes by unordered user pair and
// renders one trade event per group. cycleID tags the events for log
// correlation.
func (p *Pairer) Pair(ctx context.Context, cycleID string, changes []domain.OwnershipChange) []domain.TradeEvent {
	if len(changes) == 0 {
		return nil
	}

	groups := make(map[string]*pairGroup)
	var order []string

	for _, c := range changes {
		key := pairKey(c.NewOwnerID, c.OldOwnerID)
		g, ok := groups[key]
		if !ok {
			g = &pairGroup{
				leftID:    c.NewOwnerID,
				leftName:  c.NewOwnerName,
				rightID:   c.OldOwnerID,
				rightName: unknownUsername,
			}
			groups[key] = g
			order = append(order, key)
		}

		// Backfill the right side's username from any change where that
		// user is the receiver.
		if c.NewOwnerID == g.rightID && c.NewOwnerName != "" {
			g.rightName = c.NewOwnerName
		}

		switch c.NewOwnerID {
		case g.leftID:
			g.leftReceived = append(g.leftReceived, c)
		case g.rightID:
			g.rightReceived = append(g.rightReceived, c)
		default:
			// Cannot happen: the key pins both ids.
			logger.Warn("ownership change outside its pair group",
				zap.Int64("new_owner", c.NewOwnerID),
				zap.Int64("old_owner", c.OldOwnerID),
			)
		}
	}

	events := make([]domain.TradeEvent, 0, len(order))
	for _, key := range order {
		g := groups[key]
		if len(g.leftReceived) == 0 && len(g.rightReceived) == 0 {
			// Defensive only; a group always has at least one change.
			continue
		}
		events = append(events, p.renderEvent(ctx, cycleID, g))
	}

	return events
}

// renderEvent builds the human-readable trade event for one pair group
func (p *Pairer) renderEvent(ctx context.Context, cycleID string, g *pairGroup) domain.TradeEvent {
	now := p.clock.Now()

	var b strings.Builder

	b.WriteString(p.renderSide(ctx, g.leftName, g.leftReceived))
	b.WriteString("\n")
	b.WriteString(p.renderSide(ctx, g.rightName, g.rightReceived))

	if lines := p.historyLines(ctx, g, now); len(lines) > 0 {
		b.WriteString("\n\nOther recent trades:\n")
		b.WriteString(strings.Join(lines, "\n"))
	}

	return domain.TradeEvent{
		EventID:     ulid.Make().String(),
		CycleID:     cycleID,
		Title:       fmt.Sprintf("Trade: %s <-> %s", g.leftName, g.rightName),
		Description: b.String(),
		LeftUserID:  g.leftID,
		RightUserID: g.rightID,
		Timestamp:   now,
	}
}

// renderSide lists the items one user confirmed as received
func (p *Pairer) renderSide(ctx context.Context, username string, received []domain.OwnershipChange) string {
	if len(received) == 0 {
		return fmt.Sprintf("**%s** received nothing, possibly a currency trade", username)
	}

	parts := make([]string, 0, len(received))
	for _, c := range received {
		parts = append(parts, fmt.Sprintf("%s (#%d)", p.itemName(ctx, c.ItemID), c.Serial))
	}
	return fmt.Sprintf("**%s** received: %s", username, strings.Join(parts, ", "))
}

// historyLines renders the trailing trade-history context for both users
func (p *Pairer) historyLines(ctx context.Context, g *pairGroup, now time.Time) []string {
	since := now.Add(-historyWindow)
	recent, err := p.store.RecentTradesByUsers(ctx, []int64{g.leftID, g.rightID}, since)
	if err != nil {
		// Context is decoration; the trade event still goes out.
		logger.Warn("failed to fetch recent trade context", zap.Error(err),
			zap.Int64("left", g.leftID), zap.Int64("right", g.rightID))
		return nil
	}

	lines := make([]string, 0, len(recent))
	for _, t := range recent {
		if len(lines) >= maxContextLines {
			break
		}
		name := t.ItemName
		if name == "" {
			name = fmt.Sprintf("Item %d", t.ItemID)
		}
		lines = append(lines, fmt.Sprintf("%s got %s (#%d)", t.Username, name, t.SerialNumber))
	}
	return lines
}

// itemName resolves a catalogue name for an item, falling back to the id
func (p *Pairer) itemName(ctx context.Context, itemID int64) string {
	c, err := p.store.GetCollectable(ctx, itemID)
	if err != nil || c == nil || c.Name == "" {
		return fmt.Sprintf("Item %d", itemID)
	}
	return c.Name
}
