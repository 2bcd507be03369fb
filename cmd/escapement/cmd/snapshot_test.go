package cmd

import (
	"testing"

	"github.com/go-escapement/escapement/pkg/motion"
)

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		input string
		want  motion.TimeOfDay
		err   bool
	}{
		{input: "10:09:36", want: motion.TimeOfDay{Hours: 10, Minutes: 9, Seconds: 36}},
		{input: "10:09:36.925", want: motion.TimeOfDay{Hours: 10, Minutes: 9, Seconds: 36, Milliseconds: 925}},
		{input: "00:00:00.5", want: motion.TimeOfDay{Milliseconds: 500}},
		{input: "23:59:59.999", want: motion.TimeOfDay{Hours: 23, Minutes: 59, Seconds: 59, Milliseconds: 999}},
		{input: "24:00:00", err: true},
		{input: "10:60:00", err: true},
		{input: "10:09", err: true},
		{input: "10:09:36.1234", err: true},
		{input: "garbage", err: true},
	}
	for _, tt := range tests {
		got, err := parseTimeOfDay(tt.input)
		if tt.err {
			if err == nil {
				t.Errorf("%q: expected error", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("%q: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("%q: got %+v, want %+v", tt.input, got, tt.want)
		}
	}
}

func TestSnapshotFrame_Settled(t *testing.T) {
	sample := motion.TimeOfDay{Hours: 10, Minutes: 0, Seconds: 15, Milliseconds: 200}
	frame := snapshotFrame(sample, motion.DefaultPhysics())

	if frame.Phase != motion.PhaseSettled {
		t.Fatalf("expected settled, got %v", frame.Phase)
	}
	if frame.Second != 90 {
		t.Errorf("expected second angle 90, got %v", frame.Second)
	}
	if frame.Hour != 300.125 || frame.Minute != 1.5 {
		t.Errorf("unexpected hour/minute: %v/%v", frame.Hour, frame.Minute)
	}
}

func TestSnapshotFrame_Creeping(t *testing.T) {
	// 925ms is halfway through the default 150ms creep window.
	sample := motion.TimeOfDay{Hours: 10, Minutes: 0, Seconds: 15, Milliseconds: 925}
	frame := snapshotFrame(sample, motion.DefaultPhysics())

	if frame.Phase != motion.PhaseCreeping {
		t.Fatalf("expected creeping, got %v", frame.Phase)
	}
	if frame.Second != 91 {
		t.Errorf("expected second angle 91, got %v", frame.Second)
	}
}
