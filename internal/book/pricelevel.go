package book

import "container/list"

// PriceLevel is the FIFO queue of orders resting at one price on one side.
// The queue head is the oldest surviving arrival; the tail is the newest.
// volume is a running cache of non-cancelled residual quantity — the
// level_volume_hint the spec allows in place of an on-demand sum — and is
// kept correct on every Append, fill, and cancellation so market-data
// reads never need to walk the queue.
type PriceLevel struct {
	Price Price

	orders *list.List
	volume Quantity
}

func newPriceLevel(price Price) *PriceLevel {
	return &PriceLevel{
		Price:  price,
		orders: list.New(),
	}
}

// Append adds an order to the tail of the queue and wires its level/elem
// handle so later cancellation can find it without a scan.
func (l *PriceLevel) Append(o *Order) {
	o.level = l
	o.elem = l.orders.PushBack(o)
	l.volume += o.Quantity
}

// Front returns the oldest order in the queue, or nil if empty. It does
// not skip cancelled orders — that is the matching loop's job, since
// skipping is itself an observable event (a lazy sweep).
func (l *PriceLevel) Front() *Order {
	if e := l.orders.Front(); e != nil {
		return e.Value.(*Order)
	}
	return nil
}

// PopFront physically removes the head order from the queue. Used both
// when a fill fully consumes the head and when a cancelled head is swept.
// The removed order's level handle is cleared, so it no longer reports
// Resting.
func (l *PriceLevel) PopFront() {
	if e := l.orders.Front(); e != nil {
		o := e.Value.(*Order)
		l.orders.Remove(e)
		o.level = nil
		o.elem = nil
	}
}

// Len reports the number of orders still physically in the queue,
// including cancelled tombstones not yet swept.
func (l *PriceLevel) Len() int {
	return l.orders.Len()
}

// Volume returns the sum of non-cancelled residual quantities at this
// level. Cancelled orders are excluded the moment they are cancelled, not
// when they are later swept.
func (l *PriceLevel) Volume() Quantity {
	return l.volume
}

// Fill decrements the cached volume when a resting order's residual is
// reduced by a match. Exported for the engine package, the only caller
// outside book that executes fills.
func (l *PriceLevel) Fill(qty Quantity) {
	l.volume -= qty
}

// applyCancel decrements the cached volume when a live resting order is
// cancelled; it must run exactly once, at cancellation time, not at sweep
// time, since cancelled liquidity stops counting immediately.
func (l *PriceLevel) applyCancel(residual Quantity) {
	l.volume -= residual
}

// Orders returns a snapshot slice of the orders currently in the queue,
// head first, including any not-yet-swept cancelled tombstones. Intended
// for tests and depth inspection; callers must not mutate the result's
// backing orders' book-owned fields.
func (l *PriceLevel) Orders() []*Order {
	out := make([]*Order, 0, l.orders.Len())
	for e := l.orders.Front(); e != nil; e = e.Next() {
		out = append(out, e.Value.(*Order))
	}
	return out
}
