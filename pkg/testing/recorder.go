package testing

import (
	"sync"

	"github.com/go-escapement/escapement/pkg/engine"
)

// Recorder is a FrameListener that captures every emitted frame for
// assertions.
type Recorder struct {
	mu     sync.Mutex
	frames []engine.Frame
}

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Listen records one frame. Pass this method to Controller.AddListener.
func (r *Recorder) Listen(frame engine.Frame) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frames = append(r.frames, frame)
}

// Frames returns a copy of everything recorded so far.
func (r *Recorder) Frames() []engine.Frame {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]engine.Frame, len(r.frames))
	copy(out, r.frames)
	return out
}

// Last returns the most recent frame, if any.
func (r *Recorder) Last() (engine.Frame, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.frames) == 0 {
		return engine.Frame{}, false
	}
	return r.frames[len(r.frames)-1], true
}

// Len returns the number of recorded frames.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.frames)
}

// Reset discards all recorded frames.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frames = nil
}
