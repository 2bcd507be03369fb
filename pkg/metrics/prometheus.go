// Package metrics registers and records Prometheus metrics for the frame
// gate, the second-hand phase machine, and frame emission. Recording is
// unconditional and O(1) per frame; exposing the metrics over HTTP is
// opt-in via Handler.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	FramesAccepted   prometheus.Counter
	FramesRejected   prometheus.Counter
	Ticks            prometheus.Counter
	PhaseTransitions *prometheus.CounterVec
	SecondHandAngle  prometheus.Gauge
	FrameInterval    prometheus.Histogram
	ListenerPanics   prometheus.Counter

	metricsMu         sync.RWMutex
	currentRegisterer prometheus.Registerer = prometheus.DefaultRegisterer
)

func init() {
	resetMetrics(prometheus.DefaultRegisterer)
}

// SetRegisterer sets a new registerer and reinitializes all metrics.
// It returns the previous registerer so it can be restored later.
// This function is thread-safe and designed for use in tests to provide
// isolated metric registries per test.
func SetRegisterer(registerer prometheus.Registerer) prometheus.Registerer {
	metricsMu.Lock()
	defer metricsMu.Unlock()

	previous := currentRegisterer

	// Unregister from the previous registerer so metrics can be recreated
	// there later without duplicate registration panics.
	if currentRegisterer != nil {
		unregisterAll(currentRegisterer)
	}

	currentRegisterer = registerer
	resetMetrics(registerer)
	return previous
}

func unregisterAll(registerer prometheus.Registerer) {
	collectors := []prometheus.Collector{
		FramesAccepted,
		FramesRejected,
		Ticks,
		PhaseTransitions,
		SecondHandAngle,
		FrameInterval,
		ListenerPanics,
	}
	for _, collector := range collectors {
		if collector != nil {
			registerer.Unregister(collector)
		}
	}
}

func resetMetrics(registerer prometheus.Registerer) {
	factory := promauto.With(registerer)

	FramesAccepted = factory.NewCounter(prometheus.CounterOpts{
		Name: "escapement_frames_accepted_total",
		Help: "Scheduler frames accepted by the frame gate.",
	})
	FramesRejected = factory.NewCounter(prometheus.CounterOpts{
		Name: "escapement_frames_rejected_total",
		Help: "Scheduler frames rejected by the frame gate for arriving too soon.",
	})
	Ticks = factory.NewCounter(prometheus.CounterOpts{
		Name: "escapement_ticks_total",
		Help: "Whole-second tick events observed by the phase machine.",
	})
	PhaseTransitions = factory.NewCounterVec(prometheus.CounterOpts{
		Name: "escapement_phase_transitions_total",
		Help: "Phase machine transitions by resulting phase.",
	}, []string{"phase"})
	SecondHandAngle = factory.NewGauge(prometheus.GaugeOpts{
		Name: "escapement_second_hand_angle_degrees",
		Help: "Most recently emitted second hand visual angle in degrees.",
	})
	FrameInterval = factory.NewHistogram(prometheus.HistogramOpts{
		Name:    "escapement_frame_interval_seconds",
		Help:    "Interval between accepted frames.",
		Buckets: []float64{0.008, 0.017, 0.021, 0.034, 0.05, 0.1, 0.25, 1},
	})
	ListenerPanics = factory.NewCounter(prometheus.CounterOpts{
		Name: "escapement_listener_panics_total",
		Help: "Panics recovered while delivering frames to listeners.",
	})
}

// RecordFrameAccepted counts an accepted frame and, when a previous accepted
// frame exists, observes the interval since it.
func RecordFrameAccepted(sincePrevious time.Duration) {
	metricsMu.RLock()
	defer metricsMu.RUnlock()
	FramesAccepted.Inc()
	if sincePrevious > 0 {
		FrameInterval.Observe(sincePrevious.Seconds())
	}
}

// RecordFrameRejected counts a frame the gate turned away.
func RecordFrameRejected() {
	metricsMu.RLock()
	defer metricsMu.RUnlock()
	FramesRejected.Inc()
}

// RecordTick counts a whole-second tick event.
func RecordTick() {
	metricsMu.RLock()
	defer metricsMu.RUnlock()
	Ticks.Inc()
}

// RecordPhase counts a transition into the named phase and records the
// emitted second-hand angle.
func RecordPhase(phase string, angleDegrees float64) {
	metricsMu.RLock()
	defer metricsMu.RUnlock()
	PhaseTransitions.WithLabelValues(phase).Inc()
	SecondHandAngle.Set(angleDegrees)
}

// RecordListenerPanic counts a panic recovered during frame delivery.
func RecordListenerPanic() {
	metricsMu.RLock()
	defer metricsMu.RUnlock()
	ListenerPanics.Inc()
}
