package engine

import "lobengine/internal/book"

// BestBid returns the highest resting buy price, or ok=false if the bid
// side has no levels. A level with only cancelled tombstones still
// counts for existence (spec.md §3: "a level exists in a side book iff
// its queue contains at least one entry").
func (ob *OrderBook) BestBid() (book.Price, bool) {
	l, ok := ob.bids.Best()
	if !ok {
		return 0, false
	}
	return l.Price, true
}

// BestAsk returns the lowest resting sell price, or ok=false if the ask
// side has no levels.
func (ob *OrderBook) BestAsk() (book.Price, bool) {
	l, ok := ob.asks.Best()
	if !ok {
		return 0, false
	}
	return l.Price, true
}

// Spread returns best ask minus best bid, or ok=false if either side is
// empty.
func (ob *OrderBook) Spread() (book.Price, bool) {
	bid, ok := ob.BestBid()
	if !ok {
		return 0, false
	}
	ask, ok := ob.BestAsk()
	if !ok {
		return 0, false
	}
	return ask - bid, true
}

// Mid returns the midpoint of best bid and best ask, or ok=false if
// either side is empty.
func (ob *OrderBook) Mid() (book.Price, bool) {
	bid, ok := ob.BestBid()
	if !ok {
		return 0, false
	}
	ask, ok := ob.BestAsk()
	if !ok {
		return 0, false
	}
	return (ask + bid) / 2, true
}

// TotalVolume returns the sum of non-cancelled residual quantities
// resting at price on side, or 0 if the level is absent or fully
// cancelled. Read-only: it never triggers a lazy sweep.
func (ob *OrderBook) TotalVolume(side book.Side, price book.Price) book.Quantity {
	return ob.sideOf(side).Volume(price)
}

// LevelSnapshot is a read-only view of one price level's aggregate state,
// used for depth reporting (console output, cmd/lobctl) rather than for
// any matching decision.
type LevelSnapshot struct {
	Price  book.Price
	Volume book.Quantity
	Orders int
}

// DepthSnapshot returns up to maxLevels price levels per side, best
// first, for operator visibility. It performs no lazy sweep and does not
// mutate the book; Volume reflects non-cancelled residuals exactly as
// TotalVolume would, Orders includes any not-yet-swept cancelled
// tombstones so callers can see sweep debt if they care to.
func (ob *OrderBook) DepthSnapshot(maxLevels int) (bids, asks []LevelSnapshot) {
	bids = snapshotSide(ob.bids, maxLevels)
	asks = snapshotSide(ob.asks, maxLevels)
	return bids, asks
}

func snapshotSide(d *book.Depth, maxLevels int) []LevelSnapshot {
	levels := d.Levels()
	if maxLevels >= 0 && maxLevels < len(levels) {
		levels = levels[:maxLevels]
	}
	out := make([]LevelSnapshot, len(levels))
	for i, l := range levels {
		out[i] = LevelSnapshot{Price: l.Price, Volume: l.Volume(), Orders: l.Len()}
	}
	return out
}

// Tape exposes the in-memory trade log recorded by this book so far.
// Read-only; does not mutate matching state.
func (ob *OrderBook) Tape(after uint64) []book.Trade {
	return ob.tape.Since(after)
}
