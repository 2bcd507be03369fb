package motion

import "time"

// TimeOfDay is an immutable wall-clock snapshot with millisecond resolution.
// A fresh snapshot is taken once per accepted frame and never mutated.
type TimeOfDay struct {
	// Hours is the hour of the day (0-23).
	Hours int
	// Minutes is the minute of the hour (0-59).
	Minutes int
	// Seconds is the second of the minute (0-59).
	Seconds int
	// Milliseconds is the millisecond within the second (0-999).
	Milliseconds int
}

// TimeOfDayAt breaks t into a TimeOfDay snapshot.
func TimeOfDayAt(t time.Time) TimeOfDay {
	return TimeOfDay{
		Hours:        t.Hour(),
		Minutes:      t.Minute(),
		Seconds:      t.Second(),
		Milliseconds: t.Nanosecond() / int(time.Millisecond),
	}
}

// SampleTimeOfDay snapshots the active package clock. See [SetClock].
func SampleTimeOfDay() TimeOfDay { return TimeOfDayAt(Now()) }

// MillisUntilTick returns the milliseconds remaining until the next whole
// second, in the range [1, 1000].
func (t TimeOfDay) MillisUntilTick() int { return 1000 - t.Milliseconds }
