package engine

import (
	"testing"
	"time"
)

func TestTickerScheduler_DeliversFrame(t *testing.T) {
	sched := NewTickerScheduler(200)
	defer sched.Close()

	done := make(chan time.Duration, 1)
	sched.Schedule(func(ts time.Duration) {
		select {
		case done <- ts:
		default:
		}
	})

	select {
	case ts := <-done:
		if ts < 0 {
			t.Errorf("negative timestamp %v", ts)
		}
	case <-time.After(time.Second):
		t.Fatal("no frame delivered within 1s")
	}
}

func TestTickerScheduler_TimestampsIncrease(t *testing.T) {
	sched := NewTickerScheduler(200)
	defer sched.Close()

	stamps := make(chan time.Duration, 2)
	var rearm FrameCallback
	rearm = func(ts time.Duration) {
		select {
		case stamps <- ts:
			sched.Schedule(rearm)
		default:
		}
	}
	sched.Schedule(rearm)

	var first, second time.Duration
	select {
	case first = <-stamps:
	case <-time.After(time.Second):
		t.Fatal("no first frame within 1s")
	}
	select {
	case second = <-stamps:
	case <-time.After(time.Second):
		t.Fatal("no second frame within 1s")
	}
	if second <= first {
		t.Errorf("timestamps not increasing: %v then %v", first, second)
	}
}

func TestTickerScheduler_Cancel(t *testing.T) {
	sched := NewTickerScheduler(200)
	defer sched.Close()

	fired := make(chan struct{}, 1)
	cancel := sched.Schedule(func(time.Duration) {
		select {
		case fired <- struct{}{}:
		default:
		}
	})
	cancel()

	select {
	case <-fired:
		t.Error("cancelled callback fired")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestTickerScheduler_ScheduleAfterClose(t *testing.T) {
	sched := NewTickerScheduler(200)
	sched.Close()

	// Scheduling on a closed scheduler must not panic or deliver.
	fired := make(chan struct{}, 1)
	cancel := sched.Schedule(func(time.Duration) {
		select {
		case fired <- struct{}{}:
		default:
		}
	})
	cancel()

	select {
	case <-fired:
		t.Error("callback fired on closed scheduler")
	case <-time.After(50 * time.Millisecond):
	}
}
