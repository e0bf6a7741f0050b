package batch

import (
	"sync"
	"time"
)

// percentMultiplier converts a ratio to a percentage (0-100).
const percentMultiplier = 100

// Progress tracks how many rows and chunks have been converted.
// It is safe for concurrent use.
type Progress struct {
	totalItems      int
	processedItems  int
	totalChunks     int
	processedChunks int
	chunkSize       int
	startTime       time.Time
	lastUpdateTime  time.Time

	mu sync.RWMutex
}

// NewProgress creates a new progress tracker.
func NewProgress(totalItems, totalChunks, chunkSize int) *Progress {
	now := time.Now()
	return &Progress{
		totalItems:     totalItems,
		totalChunks:    totalChunks,
		chunkSize:      chunkSize,
		startTime:      now,
		lastUpdateTime: now,
	}
}

// AddProcessed records one finished chunk of itemsProcessed items.
func (p *Progress) AddProcessed(itemsProcessed int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.processedItems += itemsProcessed
	p.processedChunks++
	p.lastUpdateTime = time.Now()
}

// PercentComplete returns the completion percentage (0-100).
func (p *Progress) PercentComplete() float64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.percentCompleteLocked()
}

// Snapshot returns a copy of the current progress state.
func (p *Progress) Snapshot() ProgressSnapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()

	elapsed := time.Since(p.startTime)
	var rate float64
	if s := elapsed.Seconds(); s > 0 {
		rate = float64(p.processedItems) / s
	}

	return ProgressSnapshot{
		TotalItems:      p.totalItems,
		ProcessedItems:  p.processedItems,
		TotalChunks:     p.totalChunks,
		ProcessedChunks: p.processedChunks,
		ChunkSize:       p.chunkSize,
		StartTime:       p.startTime,
		LastUpdateTime:  p.lastUpdateTime,
		PercentComplete: p.percentCompleteLocked(),
		ElapsedTime:     elapsed,
		ItemsPerSecond:  rate,
	}
}

// ProgressSnapshot is an immutable view of a Progress.
type ProgressSnapshot struct {
	TotalItems      int
	ProcessedItems  int
	TotalChunks     int
	ProcessedChunks int
	ChunkSize       int
	StartTime       time.Time
	LastUpdateTime  time.Time
	PercentComplete float64
	ElapsedTime     time.Duration
	ItemsPerSecond  float64
}

// percentCompleteLocked must be called with p.mu held.
func (p *Progress) percentCompleteLocked() float64 {
	if p.totalItems == 0 {
		return 0
	}
	return float64(p.processedItems) / float64(p.totalItems) * percentMultiplier
}
