// Package sequencer places a single OrderBook behind one goroutine fed by
// a command channel, satisfying spec.md §5's requirement that
// performance-sensitive callers needing concurrency put a serialising
// boundary in front of the engine rather than have it synchronise
// internally. It is the in-process analogue of the teacher's TCP worker
// pool, built on the same gopkg.in/tomb.v2 supervised-goroutine pattern,
// minus the wire protocol (out of scope per spec.md §1's "no networked
// protocol" non-goal).
package sequencer

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	tomb "gopkg.in/tomb.v2"

	"lobengine/internal/book"
	"lobengine/internal/engine"
)

// ErrStopped is returned when a command is submitted after the sequencer
// has been stopped.
var ErrStopped = errors.New("sequencer: stopped")

type commandKind int

const (
	cmdAddOrder commandKind = iota
	cmdCancelOrder
)

type command struct {
	id   string
	kind commandKind

	side     book.Side
	price    book.Price
	quantity book.Quantity
	cancelID book.OrderID

	reply chan result
}

type result struct {
	orderID   book.OrderID
	cancelled bool
	err       error
}

// Sequencer serialises AddOrder/CancelOrder calls onto a single goroutine
// that owns the wrapped OrderBook exclusively. Every exported method is
// safe to call concurrently from any number of caller goroutines; none of
// them touch the OrderBook directly.
type Sequencer struct {
	book     *engine.OrderBook
	commands chan command
	t        *tomb.Tomb
}

// New wraps ob. ob must not be accessed by any other goroutine once the
// sequencer is started.
func New(ob *engine.OrderBook) *Sequencer {
	return &Sequencer{
		book:     ob,
		commands: make(chan command, 64),
	}
}

// Start launches the serialising goroutine, supervised by a tomb bound to
// ctx: cancelling ctx or calling Stop tears the goroutine down.
func (s *Sequencer) Start(ctx context.Context) {
	t, ctx := tomb.WithContext(ctx)
	s.t = t
	t.Go(func() error {
		return s.run(ctx)
	})
}

// Stop signals the serialising goroutine to exit and waits for it.
func (s *Sequencer) Stop() error {
	s.t.Kill(nil)
	return s.t.Wait()
}

func (s *Sequencer) run(ctx context.Context) error {
	log.Info().Msg("sequencer started")
	defer log.Info().Msg("sequencer stopped")
	for {
		select {
		case <-s.t.Dying():
			return nil
		case <-ctx.Done():
			return nil
		case cmd := <-s.commands:
			s.handle(cmd)
		}
	}
}

func (s *Sequencer) handle(cmd command) {
	switch cmd.kind {
	case cmdAddOrder:
		id, err := s.book.AddOrder(cmd.side, cmd.price, cmd.quantity)
		log.Debug().
			Str("cmd", cmd.id).
			Str("side", cmd.side.String()).
			Float64("price", float64(cmd.price)).
			Uint64("quantity", uint64(cmd.quantity)).
			Uint64("orderID", uint64(id)).
			AnErr("err", err).
			Msg("processed add order")
		cmd.reply <- result{orderID: id, err: err}
	case cmdCancelOrder:
		ok := s.book.CancelOrder(cmd.cancelID)
		log.Debug().
			Str("cmd", cmd.id).
			Uint64("orderID", uint64(cmd.cancelID)).
			Bool("cancelled", ok).
			Msg("processed cancel order")
		cmd.reply <- result{cancelled: ok}
	}
}

// AddOrder submits a new limit order through the serialising boundary and
// blocks for its result, or until ctx is cancelled.
func (s *Sequencer) AddOrder(ctx context.Context, side book.Side, price book.Price, quantity book.Quantity) (book.OrderID, error) {
	cmd := command{
		id:       uuid.New().String(),
		kind:     cmdAddOrder,
		side:     side,
		price:    price,
		quantity: quantity,
		reply:    make(chan result, 1),
	}
	res, err := s.submit(ctx, cmd)
	if err != nil {
		return 0, err
	}
	return res.orderID, res.err
}

// CancelOrder submits a cancellation through the serialising boundary and
// blocks for its result, or until ctx is cancelled.
func (s *Sequencer) CancelOrder(ctx context.Context, id book.OrderID) (bool, error) {
	cmd := command{
		id:       uuid.New().String(),
		kind:     cmdCancelOrder,
		cancelID: id,
		reply:    make(chan result, 1),
	}
	res, err := s.submit(ctx, cmd)
	if err != nil {
		return false, err
	}
	return res.cancelled, nil
}

func (s *Sequencer) submit(ctx context.Context, cmd command) (result, error) {
	select {
	case s.commands <- cmd:
	case <-s.t.Dying():
		return result{}, ErrStopped
	case <-ctx.Done():
		return result{}, ctx.Err()
	}

	select {
	case res := <-cmd.reply:
		return res, nil
	case <-s.t.Dead():
		// The goroutine has exited; a reply it sent is already buffered,
		// otherwise the command was never handled.
		select {
		case res := <-cmd.reply:
			return res, nil
		default:
			return result{}, ErrStopped
		}
	case <-ctx.Done():
		return result{}, ctx.Err()
	}
}
