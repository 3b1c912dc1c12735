package book

import "github.com/tidwall/btree"

// Depth is the collection of price levels on one side of the book. It
// keeps two views in sync: a btree ordered by price (for O(log L) best-
// price access, per spec §4.2) and a plain map (for O(1) level_at). The
// btree's ordering relation, not float equality, decides priority; the
// map uses Price's bit-pattern equality as the lookup key, which is exact
// for the same value stored and retrieved.
type Depth struct {
	levels  *btree.BTreeG[*PriceLevel]
	byPrice map[Price]*PriceLevel
}

// NewBidDepth orders levels so the highest price sorts first — the
// book's best bid.
func NewBidDepth() *Depth {
	return newDepth(func(a, b *PriceLevel) bool { return a.Price > b.Price })
}

// NewAskDepth orders levels so the lowest price sorts first — the book's
// best ask.
func NewAskDepth() *Depth {
	return newDepth(func(a, b *PriceLevel) bool { return a.Price < b.Price })
}

func newDepth(less func(a, b *PriceLevel) bool) *Depth {
	return &Depth{
		levels:  btree.NewBTreeG(less),
		byPrice: make(map[Price]*PriceLevel),
	}
}

// Best returns the extreme price level for this side, or ok=false if the
// side has no levels at all.
func (d *Depth) Best() (*PriceLevel, bool) {
	return d.levels.Min()
}

// LevelAt returns the level at price, if one exists.
func (d *Depth) LevelAt(price Price) (*PriceLevel, bool) {
	l, ok := d.byPrice[price]
	return l, ok
}

// GetOrCreate returns the existing level at price, creating and
// registering an empty one if none exists yet.
func (d *Depth) GetOrCreate(price Price) *PriceLevel {
	if l, ok := d.byPrice[price]; ok {
		return l
	}
	l := newPriceLevel(price)
	d.byPrice[price] = l
	d.levels.Set(l)
	return l
}

// RemoveLevel removes price's level from both views. Only legal once the
// level's queue is empty; callers are expected to have checked Len()==0.
func (d *Depth) RemoveLevel(price Price) {
	if l, ok := d.byPrice[price]; ok {
		d.levels.Delete(l)
		delete(d.byPrice, price)
	}
}

// Volume returns the non-cancelled residual quantity resting at price, or
// 0 if the level is absent.
func (d *Depth) Volume(price Price) Quantity {
	if l, ok := d.byPrice[price]; ok {
		return l.Volume()
	}
	return 0
}

// Levels returns a snapshot of all levels on this side in priority order
// (best first). Intended for tests and depth reporting, not the hot path.
func (d *Depth) Levels() []*PriceLevel {
	out := make([]*PriceLevel, 0, d.levels.Len())
	d.levels.Scan(func(l *PriceLevel) bool {
		out = append(out, l)
		return true
	})
	return out
}

// Empty reports whether this side has no resting levels.
func (d *Depth) Empty() bool {
	return d.levels.Len() == 0
}
