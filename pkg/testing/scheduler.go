package testing

import (
	"sync"
	"time"

	"github.com/go-escapement/escapement/pkg/engine"
)

// FakeScheduler is a FrameScheduler pumped by hand. Each Pump delivers the
// currently pending registrations with the timestamp the test chooses, so a
// whole frame sequence - including gate rejections and long suspensions -
// can be replayed exactly.
type FakeScheduler struct {
	mu        sync.Mutex
	pending   map[int]engine.FrameCallback
	nextID    int
	scheduled int
	cancelled int
}

// NewFakeScheduler returns an empty scheduler.
func NewFakeScheduler() *FakeScheduler {
	return &FakeScheduler{pending: make(map[int]engine.FrameCallback)}
}

// Schedule registers cb for the next Pump.
func (s *FakeScheduler) Schedule(cb engine.FrameCallback) (cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.pending[id] = cb
	s.scheduled++
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, ok := s.pending[id]; ok {
			delete(s.pending, id)
			s.cancelled++
		}
	}
}

// Pump delivers one frame at the given timestamp to every pending
// registration and returns how many callbacks ran. Callbacks that
// re-register during delivery become pending for the next Pump.
func (s *FakeScheduler) Pump(ts time.Duration) int {
	s.mu.Lock()
	batch := make([]engine.FrameCallback, 0, len(s.pending))
	for _, cb := range s.pending {
		batch = append(batch, cb)
	}
	s.pending = make(map[int]engine.FrameCallback)
	s.mu.Unlock()

	for _, cb := range batch {
		cb(ts)
	}
	return len(batch)
}

// PendingCount returns the number of registrations awaiting the next Pump.
func (s *FakeScheduler) PendingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// ScheduledCount returns the total number of Schedule calls observed.
func (s *FakeScheduler) ScheduledCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scheduled
}

// CancelledCount returns how many registrations were cancelled before
// delivery.
func (s *FakeScheduler) CancelledCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancelled
}
