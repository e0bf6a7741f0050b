package batch

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Chunking limits for row processing.
const (
	// DefaultChunkSize is the default number of rows per chunk.
	DefaultChunkSize = 100

	// MinChunkSize is the minimum allowed chunk size.
	MinChunkSize = 1

	// MaxChunkSize is the maximum allowed chunk size.
	MaxChunkSize = 1000
)

// Processor errors.
var (
	ErrInvalidChunkSize = errors.New("chunk size must be between 1 and 1000")
	ErrNilCallback      = errors.New("chunk callback cannot be nil")
)

// ChunkCallback processes one chunk of items. offset is the index of the
// chunk's first item within the full slice.
type ChunkCallback[T any] func(ctx context.Context, chunk []T, offset int) error

// ProgressCallback is invoked after each chunk completes.
type ProgressCallback func(snapshot ProgressSnapshot)

// Processor splits a slice into fixed-size chunks and runs a callback on
// each, sequentially or with bounded concurrency.
type Processor[T any] struct {
	chunkSize  int
	onProgress ProgressCallback

	// mu serializes progress callbacks from concurrent workers.
	mu sync.Mutex
}

// NewProcessor creates a processor with the given chunk size.
func NewProcessor[T any](chunkSize int) (*Processor[T], error) {
	if chunkSize < MinChunkSize || chunkSize > MaxChunkSize {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidChunkSize, chunkSize)
	}
	return &Processor[T]{chunkSize: chunkSize}, nil
}

// WithProgressCallback sets a progress callback for the processor.
func (p *Processor[T]) WithProgressCallback(callback ProgressCallback) *Processor[T] {
	p.onProgress = callback
	return p
}

// ChunkSize returns the configured chunk size.
func (p *Processor[T]) ChunkSize() int {
	return p.chunkSize
}

// Process runs callback over items chunk by chunk and stops on the first error.
// An empty slice is a no-op.
func (p *Processor[T]) Process(ctx context.Context, items []T, callback ChunkCallback[T]) error {
	if callback == nil {
		return ErrNilCallback
	}

	bounds := p.Chunks(len(items))
	progress := NewProgress(len(items), len(bounds), p.chunkSize)

	for i, b := range bounds {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := callback(ctx, items[b[0]:b[1]], b[0]); err != nil {
			return fmt.Errorf("chunk %d failed: %w", i, err)
		}
		p.report(progress, b[1]-b[0])
	}

	return nil
}

// ProcessConcurrent runs callback over chunks with at most workers chunks in
// flight. The first failure cancels the remaining chunks; all errors are
// returned joined.
func (p *Processor[T]) ProcessConcurrent(
	ctx context.Context,
	items []T,
	callback ChunkCallback[T],
	workers int,
) error {
	if callback == nil {
		return ErrNilCallback
	}
	if workers <= 1 {
		return p.Process(ctx, items, callback)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	bounds := p.Chunks(len(items))
	progress := NewProgress(len(items), len(bounds), p.chunkSize)

	sem := make(chan struct{}, workers)
	errCh := make(chan error, len(bounds))
	var wg sync.WaitGroup

	for i, b := range bounds {
		wg.Add(1)
		go func() {
			defer wg.Done()

			sem <- struct{}{}
			defer func() { <-sem }()

			if err := ctx.Err(); err != nil {
				return
			}
			if err := callback(ctx, items[b[0]:b[1]], b[0]); err != nil {
				errCh <- fmt.Errorf("chunk %d failed: %w", i, err)
				cancel()
				return
			}
			p.report(progress, b[1]-b[0])
		}()
	}

	wg.Wait()
	close(errCh)

	var errs []error
	for err := range errCh {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	// Parent cancellation with no chunk failure.
	return context.Cause(ctx)
}

// Chunks returns the [start, end) bounds of every chunk for totalItems items.
func (p *Processor[T]) Chunks(totalItems int) [][2]int {
	n := totalItems / p.chunkSize
	if totalItems%p.chunkSize > 0 {
		n++
	}

	out := make([][2]int, n)
	for i := range n {
		start := i * p.chunkSize
		end := min(start+p.chunkSize, totalItems)
		out[i] = [2]int{start, end}
	}
	return out
}

func (p *Processor[T]) report(progress *Progress, items int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	progress.AddProcessed(items)
	if p.onProgress != nil {
		p.onProgress(progress.Snapshot())
	}
}
