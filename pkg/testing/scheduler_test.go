package testing

import (
	"testing"
	"time"
)

func TestFakeScheduler_Pump(t *testing.T) {
	sched := NewFakeScheduler()

	var got []time.Duration
	sched.Schedule(func(ts time.Duration) {
		got = append(got, ts)
	})

	if n := sched.Pump(10 * time.Millisecond); n != 1 {
		t.Fatalf("expected 1 callback pumped, got %d", n)
	}
	if len(got) != 1 || got[0] != 10*time.Millisecond {
		t.Errorf("unexpected timestamps: %v", got)
	}

	// Callbacks are one-shot: a second pump without re-registration fires nothing.
	if n := sched.Pump(20 * time.Millisecond); n != 0 {
		t.Errorf("expected 0 callbacks on second pump, got %d", n)
	}
}

func TestFakeScheduler_Cancel(t *testing.T) {
	sched := NewFakeScheduler()

	fired := false
	cancel := sched.Schedule(func(time.Duration) { fired = true })
	cancel()

	sched.Pump(0)
	if fired {
		t.Error("cancelled callback fired")
	}
	if sched.CancelledCount() != 1 {
		t.Errorf("expected 1 cancellation, got %d", sched.CancelledCount())
	}
}

func TestFakeScheduler_ReRegistrationLandsInNextPump(t *testing.T) {
	sched := NewFakeScheduler()

	count := 0
	var rearm func(time.Duration)
	rearm = func(time.Duration) {
		count++
		sched.Schedule(rearm)
	}
	sched.Schedule(rearm)

	// Each pump drains only the callbacks registered before it started.
	sched.Pump(0)
	if count != 1 {
		t.Fatalf("expected 1 invocation after first pump, got %d", count)
	}
	sched.Pump(time.Millisecond)
	if count != 2 {
		t.Fatalf("expected 2 invocations after second pump, got %d", count)
	}
	if sched.ScheduledCount() != 3 {
		t.Errorf("expected 3 registrations, got %d", sched.ScheduledCount())
	}
}
