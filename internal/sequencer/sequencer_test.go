package sequencer

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lobengine/internal/book"
	"lobengine/internal/engine"
)

func newRunningSequencer(t *testing.T) (*Sequencer, func()) {
	t.Helper()
	ob := engine.New()
	seq := New(ob)
	ctx, cancel := context.WithCancel(context.Background())
	seq.Start(ctx)
	return seq, func() {
		cancel()
		_ = seq.Stop()
	}
}

func TestSequencerAddAndCancelRoundTrip(t *testing.T) {
	seq, stop := newRunningSequencer(t)
	defer stop()

	ctx := context.Background()
	id, err := seq.AddOrder(ctx, book.Buy, 100, 10)
	require.NoError(t, err)
	assert.NotZero(t, id)

	ok, err := seq.CancelOrder(ctx, id)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSequencerCancelUnknownID(t *testing.T) {
	seq, stop := newRunningSequencer(t)
	defer stop()

	ok, err := seq.CancelOrder(context.Background(), 999999)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSequencerPropagatesValidationErrors(t *testing.T) {
	seq, stop := newRunningSequencer(t)
	defer stop()

	_, err := seq.AddOrder(context.Background(), book.Buy, -1, 10)
	assert.ErrorIs(t, err, engine.ErrInvalidPrice)
}

// TestSequencerSerialisesConcurrentCallers exercises the actual §5
// contract: many goroutines submit commands concurrently, but every
// command lands on the engine through the same serialising goroutine, so
// the total number of orders accepted must equal the number submitted
// with no lost or duplicated ids.
func TestSequencerSerialisesConcurrentCallers(t *testing.T) {
	seq, stop := newRunningSequencer(t)
	defer stop()

	const n = 100
	ids := make(chan book.OrderID, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, err := seq.AddOrder(context.Background(), book.Buy, 100, 1)
			assert.NoError(t, err)
			ids <- id
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[book.OrderID]bool)
	for id := range ids {
		assert.False(t, seen[id], "duplicate order id %d", id)
		seen[id] = true
	}
	assert.Len(t, seen, n)
}

func TestSequencerContextCancelledBeforeSubmit(t *testing.T) {
	ob := engine.New()
	seq := New(ob)
	ctx, cancel := context.WithCancel(context.Background())
	seq.Start(ctx)
	cancel()
	// Give the serialising goroutine a moment to observe the cancel.
	time.Sleep(10 * time.Millisecond)

	_, err := seq.AddOrder(ctx, book.Buy, 100, 10)
	assert.Error(t, err)
}
