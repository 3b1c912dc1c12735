package book

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBidDepthOrdersHighestFirst(t *testing.T) {
	d := NewBidDepth()
	d.GetOrCreate(99.0)
	d.GetOrCreate(101.0)
	d.GetOrCreate(100.0)

	best, ok := d.Best()
	require.True(t, ok)
	assert.Equal(t, Price(101.0), best.Price)

	levels := d.Levels()
	require.Len(t, levels, 3)
	assert.Equal(t, Price(101.0), levels[0].Price)
	assert.Equal(t, Price(100.0), levels[1].Price)
	assert.Equal(t, Price(99.0), levels[2].Price)
}

func TestAskDepthOrdersLowestFirst(t *testing.T) {
	d := NewAskDepth()
	d.GetOrCreate(101.0)
	d.GetOrCreate(99.0)
	d.GetOrCreate(100.0)

	best, ok := d.Best()
	require.True(t, ok)
	assert.Equal(t, Price(99.0), best.Price)

	levels := d.Levels()
	require.Len(t, levels, 3)
	assert.Equal(t, Price(99.0), levels[0].Price)
	assert.Equal(t, Price(100.0), levels[1].Price)
	assert.Equal(t, Price(101.0), levels[2].Price)
}

func TestDepthEmptyHasNoBest(t *testing.T) {
	d := NewBidDepth()
	_, ok := d.Best()
	assert.False(t, ok)
	assert.True(t, d.Empty())
}

func TestDepthGetOrCreateIsIdempotent(t *testing.T) {
	d := NewAskDepth()
	l1 := d.GetOrCreate(100.0)
	l2 := d.GetOrCreate(100.0)
	assert.Same(t, l1, l2)
}

func TestDepthRemoveLevel(t *testing.T) {
	d := NewAskDepth()
	d.GetOrCreate(100.0)
	d.RemoveLevel(100.0)

	_, ok := d.LevelAt(100.0)
	assert.False(t, ok)
	assert.True(t, d.Empty())
}

func TestDepthVolumeAbsentLevelIsZero(t *testing.T) {
	d := NewAskDepth()
	assert.Equal(t, Quantity(0), d.Volume(50.0))
}
