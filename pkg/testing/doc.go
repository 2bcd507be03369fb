// Package testing provides deterministic test doubles for the motion core:
// a controllable wall clock, a hand-pumped frame scheduler, and a frame
// recorder. Together they let tests drive a controller through exact
// millisecond sequences without real timers or sleeps.
//
// Typical usage:
//
//	clk := esctest.NewFakeClock()
//	sched := esctest.NewFakeScheduler()
//	rec := esctest.NewRecorder()
//
//	ctl := engine.New(engine.Options{Clock: clk, Scheduler: sched})
//	defer ctl.Stop()
//	ctl.AddListener(rec.Listen)
//	ctl.Start()
//
//	clk.SetTimeOfDay(10, 0, 15, 0)
//	sched.Pump(0)
//	// rec.Frames() now holds the overshoot frame for second 15.
package testing
