package book

import "fmt"

// Trade records one fill. Price is always the resting order's price (the
// maker-price convention adopted in spec.md §4.1); the incoming order's
// limit price never appears here even when it differs.
type Trade struct {
	Sequence   uint64
	IncomingID OrderID
	RestingID  OrderID
	Price      Price
	Quantity   Quantity
}

func (t Trade) String() string {
	return fmt.Sprintf("trade#%d incoming=%d resting=%d price=%v qty=%d",
		t.Sequence, t.IncomingID, t.RestingID, t.Price, t.Quantity)
}

// Tape is an in-memory, process-lifetime record of executed trades. It is
// not persistence in the sense spec.md §1 excludes — nothing survives a
// restart — it is the observability trail the original Python
// implementation kept as a plain list of executed trades, adapted here
// for cmd/lobctl and tests to inspect after the fact.
type Tape struct {
	trades []Trade
}

// Append records a trade at the end of the tape.
func (t *Tape) Append(tr Trade) {
	t.trades = append(t.trades, tr)
}

// Since returns every trade recorded with Sequence > after, in execution
// order. Passing 0 returns the full tape.
func (t *Tape) Since(after uint64) []Trade {
	out := make([]Trade, 0)
	for _, tr := range t.trades {
		if tr.Sequence > after {
			out = append(out, tr)
		}
	}
	return out
}

// Len reports how many trades have been recorded.
func (t *Tape) Len() int {
	return len(t.trades)
}
