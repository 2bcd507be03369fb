// Package engine orchestrates per-frame clock motion. A Controller gates the
// host's frame-scheduling signal down to a bounded logical rate, samples the
// wall clock once per accepted frame, advances the second-hand phase
// machine, and emits the resulting hand angles to rendering collaborators.
//
// The controller never blocks: each frame is constant-time arithmetic, and
// "waiting" is nothing more than re-registering with the scheduler for the
// next frame. Phase transitions occur strictly in accepted-frame order no
// matter how many frames the gate rejects in between.
package engine

import (
	"fmt"
	"sync"
	"time"

	"github.com/go-escapement/escapement/pkg/errors"
	"github.com/go-escapement/escapement/pkg/metrics"
	"github.com/go-escapement/escapement/pkg/motion"
)

// Frame is the per-frame output emitted to rendering collaborators.
// Angles are degrees, 0 at 12 o'clock, positive clockwise; the renderer is
// responsible for converting to its own rotation convention.
type Frame struct {
	// Hour is the hour hand angle.
	Hour float64 `json:"hourAngle"`
	// Minute is the minute hand angle.
	Minute float64 `json:"minuteAngle"`
	// Second is the second hand's visual angle, including any creep,
	// overshoot, or recoil offset.
	Second float64 `json:"secondAngle"`
	// Phase is the second hand's animation phase, exposed for diagnostics.
	Phase motion.Phase `json:"phase"`
	// Tick reports whether this frame observed a whole-second boundary.
	Tick bool `json:"tick"`
}

// FrameListener receives each emitted frame. Listeners run on the
// scheduler's delivery goroutine and should hand heavy work elsewhere.
type FrameListener func(Frame)

// Options configure a Controller. The zero value is usable: default
// physics, a 60Hz logical cap, a shared ticker scheduler, the package
// clock, and no debug server.
type Options struct {
	// Physics overrides the second-hand physics. Nil uses DefaultPhysics;
	// a supplied value is normalized, not rejected.
	Physics *motion.Physics
	// MaxFrameRate bounds accepted logical frames per second.
	// Values at or below zero use DefaultMaxFrameRate.
	MaxFrameRate float64
	// Scheduler supplies frame callbacks. Nil uses a process-wide
	// TickerScheduler at DefaultRefreshRate.
	Scheduler FrameScheduler
	// Clock supplies wall-clock samples. Nil uses the motion package clock.
	Clock motion.Clock
	// Diagnostics configures the timing buffer and debug server.
	// Nil uses DefaultDiagnosticsConfig.
	Diagnostics *DiagnosticsConfig
}

// packageClock adapts the motion package's replaceable clock.
type packageClock struct{}

func (packageClock) Now() time.Time { return motion.Now() }

var (
	sharedSchedulerOnce sync.Once
	sharedScheduler     *TickerScheduler
)

func defaultScheduler() FrameScheduler {
	sharedSchedulerOnce.Do(func() {
		sharedScheduler = NewTickerScheduler(DefaultRefreshRate)
	})
	return sharedScheduler
}

// Controller drives one clock's hand motion. Each controller owns its phase
// state and frame gate exclusively; nothing is shared between controllers,
// so several independent clocks can run in one process.
//
// Lifecycle is STOPPED -> RUNNING -> STOPPED: Start registers with the
// scheduler, every delivered frame re-registers for the next one, and Stop
// cancels the pending registration so no callback leaks past teardown.
type Controller struct {
	maxRate     float64
	physics     motion.Physics
	scheduler   FrameScheduler
	clock       motion.Clock
	diagnostics DiagnosticsConfig

	mu             sync.Mutex
	gate           *FrameGate
	state          motion.SecondHandState
	running        bool
	cancel         func()
	listeners      map[int]FrameListener
	nextListenerID int
	latest         Frame
	hasFrame       bool
	accepted       uint64
	rejected       uint64

	timing *FrameTimingBuffer
	stream *streamHub
	debug  debugServer
}

// New creates a stopped controller from opts.
func New(opts Options) *Controller {
	physics := motion.DefaultPhysics()
	if opts.Physics != nil {
		physics = opts.Physics.Normalized()
	}
	scheduler := opts.Scheduler
	if scheduler == nil {
		scheduler = defaultScheduler()
	}
	var clk motion.Clock = packageClock{}
	if opts.Clock != nil {
		clk = opts.Clock
	}
	diagnostics := DefaultDiagnosticsConfig()
	if opts.Diagnostics != nil {
		diagnostics = opts.Diagnostics
	}

	return &Controller{
		maxRate:     opts.MaxFrameRate,
		physics:     physics,
		scheduler:   scheduler,
		clock:       clk,
		diagnostics: *diagnostics,
		listeners:   make(map[int]FrameListener),
		timing:      NewFrameTimingBuffer(diagnostics.TimingSamples),
		stream:      newStreamHub(),
	}
}

// Physics returns the normalized physics in effect for this controller.
func (c *Controller) Physics() motion.Physics { return c.physics }

// Start moves the controller to RUNNING: fresh phase state (the first
// accepted frame registers as a tick), a fresh frame gate, and a scheduler
// registration. Starting a running controller is a no-op. The returned
// error only concerns the optional debug server; the frame loop itself
// cannot fail to start.
func (c *Controller) Start() error {
	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		return nil
	}
	c.state = motion.NewSecondHandState()
	c.gate = NewFrameGate(c.maxRate)
	c.hasFrame = false
	c.accepted = 0
	c.rejected = 0
	c.running = true
	c.cancel = c.scheduler.Schedule(c.onFrame)
	c.mu.Unlock()

	if c.diagnostics.DebugServer {
		if _, err := c.debug.start(c, c.diagnostics.DebugServerPort); err != nil {
			err = fmt.Errorf("debug server: %w", err)
			errors.Report(&errors.EscapementError{
				Op:   "engine.Controller.Start",
				Kind: errors.KindStream,
				Err:  err,
			})
			c.Stop()
			return err
		}
	}
	return nil
}

// Stop moves the controller to STOPPED. The pending scheduler registration
// is cancelled and the running flag bars any callback already in flight
// from touching state or re-registering, so no recurring callback survives
// teardown. Stopping a stopped controller is a no-op.
func (c *Controller) Stop() {
	c.mu.Lock()
	if !c.running {
		c.mu.Unlock()
		return
	}
	c.running = false
	cancel := c.cancel
	c.cancel = nil
	c.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	c.stream.closeAll()
	c.debug.stop()
}

// Running reports whether the controller is between Start and Stop.
func (c *Controller) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

// AddListener registers a rendering collaborator for emitted frames.
// Returns an unsubscribe function.
func (c *Controller) AddListener(fn FrameListener) func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.nextListenerID
	c.nextListenerID++
	c.listeners[id] = fn
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.listeners, id)
	}
}

// Latest returns the most recently emitted frame, if any frame has been
// emitted since Start.
func (c *Controller) Latest() (Frame, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.latest, c.hasFrame
}

// Timing returns the accepted-frame interval buffer for diagnostics.
func (c *Controller) Timing() *FrameTimingBuffer { return c.timing }

// DebugPort returns the debug server's listen port, or 0 when it is not
// running. Useful with an ephemeral port configuration.
func (c *Controller) DebugPort() int { return c.debug.port() }

// frameCounts returns accepted/rejected totals since Start.
func (c *Controller) frameCounts() (accepted, rejected uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.accepted, c.rejected
}

// onFrame is the scheduler callback. One invocation per delivered frame;
// the scheduler's single delivery goroutine plus the controller mutex
// serialize all state access.
func (c *Controller) onFrame(ts time.Duration) {
	c.mu.Lock()
	if !c.running {
		c.mu.Unlock()
		return
	}

	previous := c.gate.LastAccepted()
	if !c.gate.Accept(ts) {
		// Too soon: skip logical work and rendering, but keep the frame
		// signal armed.
		c.rejected++
		c.cancel = c.scheduler.Schedule(c.onFrame)
		c.mu.Unlock()
		metrics.RecordFrameRejected()
		return
	}

	sample := motion.TimeOfDayAt(c.clock.Now())
	tick := c.state.Advance(sample, c.physics)
	frame := Frame{
		Hour:   motion.HourAngle(sample),
		Minute: motion.MinuteAngle(sample),
		Second: c.state.VisualAngle,
		Phase:  c.state.Phase,
		Tick:   tick,
	}

	c.latest = frame
	c.hasFrame = true
	c.accepted++
	var interval time.Duration
	if previous >= 0 {
		interval = ts - previous
		c.timing.Add(interval)
	}
	listeners := make([]FrameListener, 0, len(c.listeners))
	for _, fn := range c.listeners {
		listeners = append(listeners, fn)
	}
	c.cancel = c.scheduler.Schedule(c.onFrame)
	c.mu.Unlock()

	metrics.RecordFrameAccepted(interval)
	if tick {
		metrics.RecordTick()
	}
	metrics.RecordPhase(frame.Phase.String(), frame.Second)

	for _, fn := range listeners {
		c.emit(fn, frame)
	}
	c.stream.broadcast(frame)
}

// emit delivers one frame to one listener, containing any panic so a broken
// renderer cannot kill the frame loop.
func (c *Controller) emit(fn FrameListener, frame Frame) {
	defer func() {
		if r := recover(); r != nil {
			metrics.RecordListenerPanic()
			errors.ReportPanic(&errors.PanicError{
				Op:         "engine.Controller.emit",
				Value:      r,
				StackTrace: errors.CaptureStack(),
				Timestamp:  time.Now(),
			})
		}
	}()
	fn(frame)
}
