package engine

import (
	"sync"
	"time"
)

const defaultTimingSamples = 120

// DiagnosticsConfig controls the optional observability surface of a
// controller.
type DiagnosticsConfig struct {
	// DebugServer enables an HTTP debug server exposing the latest hand
	// angles, frame timing history, and a websocket frame stream.
	DebugServer bool
	// DebugServerPort is the listen port for the debug server.
	// 0 picks an ephemeral port; read it back with Controller.DebugPort.
	DebugServerPort int
	// TimingSamples is the number of accepted-frame intervals kept for
	// diagnostics. Defaults to 120 if zero.
	TimingSamples int
}

// DefaultDiagnosticsConfig returns a DiagnosticsConfig with the debug server
// disabled and a two-second timing window at the default frame rate.
func DefaultDiagnosticsConfig() *DiagnosticsConfig {
	return &DiagnosticsConfig{TimingSamples: defaultTimingSamples}
}

// FrameTimingBuffer is a ring buffer of intervals between accepted frames.
// All methods are safe for concurrent use; the debug server reads snapshots
// while the frame loop appends.
type FrameTimingBuffer struct {
	mu       sync.RWMutex
	samples  []time.Duration
	index    int
	capacity int
	count    int
}

// NewFrameTimingBuffer creates a buffer holding the given number of
// intervals. Non-positive capacities fall back to the default.
func NewFrameTimingBuffer(capacity int) *FrameTimingBuffer {
	if capacity <= 0 {
		capacity = defaultTimingSamples
	}
	return &FrameTimingBuffer{
		samples:  make([]time.Duration, capacity),
		capacity: capacity,
	}
}

// Add records the interval since the previous accepted frame.
func (b *FrameTimingBuffer) Add(interval time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.samples[b.index] = interval
	b.index = (b.index + 1) % b.capacity
	if b.count < b.capacity {
		b.count++
	}
}

// Count returns the number of recorded intervals, up to the capacity.
func (b *FrameTimingBuffer) Count() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.count
}

// Snapshot returns the recorded intervals in chronological order.
func (b *FrameTimingBuffer) Snapshot() []time.Duration {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.count == 0 {
		return nil
	}
	result := make([]time.Duration, b.count)
	if b.count < b.capacity {
		copy(result, b.samples[:b.count])
	} else {
		copy(result, b.samples[b.index:])
		copy(result[b.capacity-b.index:], b.samples[:b.index])
	}
	return result
}

// FPS returns the effective accepted-frame rate over the recorded window,
// or zero when no interval has been recorded yet.
func (b *FrameTimingBuffer) FPS() float64 {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.count == 0 {
		return 0
	}
	var total time.Duration
	for i := 0; i < b.count; i++ {
		total += b.samples[i]
	}
	if total <= 0 {
		return 0
	}
	return float64(b.count) / total.Seconds()
}
