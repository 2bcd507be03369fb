package engine

import (
	"sync"
	"time"

	"github.com/go-escapement/escapement/pkg/errors"
)

// DefaultRefreshRate is the emulated display refresh rate for the ticker
// scheduler. It deliberately exceeds the logical frame-rate cap so the
// frame gate, not the scheduler, decides the effective rate.
const DefaultRefreshRate = 120.0

// FrameCallback receives a timestamp measured from the scheduler's start
// instant. Timestamps are monotonically non-decreasing across deliveries.
type FrameCallback func(timestamp time.Duration)

// FrameScheduler delivers one-shot frame callbacks ahead of the next paint
// opportunity. Schedule registers a callback for the next frame and returns
// a cancel function that prevents delivery if invoked first; a fired
// callback must be re-registered for the frame after. Implementations
// deliver all callbacks from a single goroutine, so controller state is only
// ever touched by one logical sequence at a time.
type FrameScheduler interface {
	Schedule(cb FrameCallback) (cancel func())
}

// TickerScheduler emulates a display's frame signal with a time.Ticker.
// Callbacks receive timestamps derived from the monotonic clock. The
// internal loop goroutine runs only while registrations exist; an idle
// scheduler costs nothing.
type TickerScheduler struct {
	interval time.Duration
	start    time.Time

	mu        sync.Mutex
	callbacks map[int]FrameCallback
	nextID    int
	running   bool
	stop      chan struct{}
	closed    bool
}

// NewTickerScheduler creates a scheduler firing at refreshHz frames per
// second. Rates at or below zero fall back to DefaultRefreshRate.
func NewTickerScheduler(refreshHz float64) *TickerScheduler {
	if refreshHz <= 0 {
		refreshHz = DefaultRefreshRate
	}
	return &TickerScheduler{
		interval:  time.Duration(float64(time.Second) / refreshHz),
		start:     time.Now(),
		callbacks: make(map[int]FrameCallback),
	}
}

// Schedule registers cb for the next frame. The returned cancel function is
// safe to call more than once and after delivery.
func (s *TickerScheduler) Schedule(cb FrameCallback) (cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || cb == nil {
		return func() {}
	}

	id := s.nextID
	s.nextID++
	s.callbacks[id] = cb

	if !s.running {
		s.running = true
		s.stop = make(chan struct{})
		go s.loop(s.stop)
	}

	return func() {
		s.mu.Lock()
		delete(s.callbacks, id)
		s.mu.Unlock()
	}
}

// Close stops the scheduler permanently. Pending registrations are dropped
// and later Schedule calls return a no-op cancel without registering.
func (s *TickerScheduler) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.callbacks = map[int]FrameCallback{}
	if s.running {
		close(s.stop)
		s.running = false
	}
}

func (s *TickerScheduler) loop(stop chan struct{}) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			batch := s.take()
			if batch == nil {
				// Nothing registered; park until the next Schedule call
				// starts a fresh loop.
				return
			}
			ts := time.Since(s.start)
			for _, cb := range batch {
				s.deliver(cb, ts)
			}
		}
	}
}

// deliver invokes one callback, containing any panic so a single bad
// registration cannot take the shared loop goroutine down.
func (s *TickerScheduler) deliver(cb FrameCallback, ts time.Duration) {
	defer errors.Recover("engine.TickerScheduler.deliver")
	cb(ts)
}

// take drains the current registrations, or returns nil and marks the loop
// stopped when there are none.
func (s *TickerScheduler) take() []FrameCallback {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.callbacks) == 0 {
		s.running = false
		return nil
	}
	batch := make([]FrameCallback, 0, len(s.callbacks))
	for _, cb := range s.callbacks {
		batch = append(batch, cb)
	}
	s.callbacks = make(map[int]FrameCallback, len(batch))
	return batch
}
