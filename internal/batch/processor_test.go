package batch

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessor_Process(t *testing.T) {
	items := make([]int, 25)
	for i := range items {
		items[i] = i
	}

	t.Run("Sequential", func(t *testing.T) {
		p, err := NewProcessor[int](10)
		require.NoError(t, err)
		var processed, chunks int32
		var offsets []int

		callback := func(_ context.Context, chunk []int, offset int) error {
			atomic.AddInt32(&chunks, 1)
			atomic.AddInt32(&processed, int32(len(chunk)))
			offsets = append(offsets, offset)
			return nil
		}

		require.NoError(t, p.Process(context.Background(), items, callback))
		assert.Equal(t, int32(25), processed)
		assert.Equal(t, int32(3), chunks)
		assert.Equal(t, []int{0, 10, 20}, offsets)
	})

	t.Run("Concurrent", func(t *testing.T) {
		p, err := NewProcessor[int](5)
		require.NoError(t, err)
		var processed int32
		seen := make([]int32, len(items))

		callback := func(_ context.Context, chunk []int, offset int) error {
			atomic.AddInt32(&processed, int32(len(chunk)))
			for i, v := range chunk {
				assert.Equal(t, offset+i, v)
				atomic.AddInt32(&seen[offset+i], 1)
			}
			return nil
		}

		require.NoError(t, p.ProcessConcurrent(context.Background(), items, callback, 3))
		assert.Equal(t, int32(25), processed)
		for i, n := range seen {
			assert.Equal(t, int32(1), n, "item %d", i)
		}
	})

	t.Run("ErrorHandling", func(t *testing.T) {
		p, _ := NewProcessor[int](10)
		sentinel := errors.New("fail")
		callback := func(_ context.Context, _ []int, offset int) error {
			if offset == 10 {
				return sentinel
			}
			return nil
		}

		err := p.Process(context.Background(), items, callback)
		require.ErrorIs(t, err, sentinel)
		assert.Contains(t, err.Error(), "chunk 1 failed")

		err = p.ProcessConcurrent(context.Background(), items, callback, 4)
		require.ErrorIs(t, err, sentinel)
	})

	t.Run("Cancelled", func(t *testing.T) {
		p, _ := NewProcessor[int](10)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := p.Process(ctx, items, func(context.Context, []int, int) error { return nil })
		require.ErrorIs(t, err, context.Canceled)

		err = p.ProcessConcurrent(ctx, items, func(context.Context, []int, int) error { return nil }, 2)
		require.ErrorIs(t, err, context.Canceled)
	})

	t.Run("EmptyItems", func(t *testing.T) {
		p, err := NewProcessor[int](DefaultChunkSize)
		require.NoError(t, err)
		called := false
		err = p.Process(context.Background(), nil, func(context.Context, []int, int) error {
			called = true
			return nil
		})
		require.NoError(t, err)
		assert.False(t, called)
	})

	t.Run("NilCallback", func(t *testing.T) {
		p, err := NewProcessor[int](DefaultChunkSize)
		require.NoError(t, err)
		assert.Equal(t, ErrNilCallback, p.Process(context.Background(), items, nil))
		assert.Equal(t, ErrNilCallback, p.ProcessConcurrent(context.Background(), items, nil, 2))
	})

	t.Run("InvalidChunkSize", func(t *testing.T) {
		_, err := NewProcessor[int](0)
		require.ErrorIs(t, err, ErrInvalidChunkSize)
		_, err = NewProcessor[int](2000)
		require.ErrorIs(t, err, ErrInvalidChunkSize)
	})

	t.Run("ProgressCallback", func(t *testing.T) {
		p, _ := NewProcessor[int](10)
		var snaps []ProgressSnapshot
		p.WithProgressCallback(func(s ProgressSnapshot) { snaps = append(snaps, s) })

		require.NoError(t, p.Process(context.Background(), items, func(context.Context, []int, int) error { return nil }))
		require.Len(t, snaps, 3)
		assert.Equal(t, 10, snaps[0].ProcessedItems)
		assert.Equal(t, 25, snaps[2].ProcessedItems)
		assert.InDelta(t, 100.0, snaps[2].PercentComplete, 0)
		assert.Equal(t, 3, snaps[2].ProcessedChunks)
	})
}

func TestProgress(t *testing.T) {
	p := NewProgress(100, 10, 10)

	assert.InDelta(t, 0.0, p.PercentComplete(), 0)

	p.AddProcessed(10)
	assert.InDelta(t, 10.0, p.PercentComplete(), 0)

	p.AddProcessed(90)
	assert.InDelta(t, 100.0, p.PercentComplete(), 0)

	snap := p.Snapshot()
	assert.Equal(t, 100, snap.TotalItems)
	assert.Equal(t, 100, snap.ProcessedItems)
	assert.Equal(t, 2, snap.ProcessedChunks)
	assert.Equal(t, 10, snap.ChunkSize)

	assert.InDelta(t, 0.0, NewProgress(0, 0, 10).PercentComplete(), 0)
}

func TestProcessor_Chunks(t *testing.T) {
	p, _ := NewProcessor[int](10)
	chunks := p.Chunks(25)
	require.Len(t, chunks, 3)
	assert.Equal(t, [2]int{0, 10}, chunks[0])
	assert.Equal(t, [2]int{10, 20}, chunks[1])
	assert.Equal(t, [2]int{20, 25}, chunks[2])
	assert.Empty(t, p.Chunks(0))
	assert.Equal(t, 10, p.ChunkSize())
}
