package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-escapement/escapement/cmd/escapement/internal/config"
	"github.com/go-escapement/escapement/cmd/escapement/internal/render"
	"github.com/go-escapement/escapement/pkg/engine"
	"github.com/go-escapement/escapement/pkg/motion"
)

func init() {
	RegisterCommand(&Command{
		Name:  "snapshot",
		Short: "Render a clock face PNG for an instant",
		Long: `Render the clock face for a given time of day into a PNG file.

The second hand is drawn where the motion model would place it at that
instant: on the base angle when settled, or partway into the creep when
the instant falls inside the creep window before the next tick.

Flags:
  --at HH:MM:SS[.mmm]  Time of day to render (default: now)
  --out PATH           Output file (default: clock.png)
  --size N             Image edge length in pixels (default: 512)`,
		Usage: "escapement snapshot [--at HH:MM:SS[.mmm]] [--out PATH] [--size N]",
		Run:   runSnapshot,
	})
}

func runSnapshot(args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}
	resolved, err := config.Resolve(cwd)
	if err != nil {
		return err
	}

	sample := motion.SampleTimeOfDay()
	out := resolved.SnapshotOut
	if out == "" {
		out = "clock.png"
	}
	size := resolved.SnapshotSize
	if size <= 0 {
		size = render.DefaultSize
	}

	for i := 0; i < len(args); i++ {
		switch arg := args[i]; arg {
		case "--at":
			value, err := nextValue(args, &i, arg)
			if err != nil {
				return err
			}
			sample, err = parseTimeOfDay(value)
			if err != nil {
				return err
			}
		case "--out":
			value, err := nextValue(args, &i, arg)
			if err != nil {
				return err
			}
			out = value
		case "--size":
			value, err := nextValue(args, &i, arg)
			if err != nil {
				return err
			}
			size, err = strconv.Atoi(value)
			if err != nil || size <= 0 {
				return fmt.Errorf("--size: invalid value %q", value)
			}
		default:
			return fmt.Errorf("unknown flag: %s", arg)
		}
	}

	frame := snapshotFrame(sample, resolved.Physics)

	file, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", out, err)
	}
	defer file.Close()

	if err := render.WritePNG(file, frame, size); err != nil {
		return fmt.Errorf("failed to render %s: %w", out, err)
	}

	fmt.Printf("wrote %s (%dx%d) at %02d:%02d:%02d.%03d, second hand %s at %.2f°\n",
		out, size, size, sample.Hours, sample.Minutes, sample.Seconds, sample.Milliseconds,
		frame.Phase, frame.Second)
	return nil
}

// snapshotFrame places the hands as if the movement had been running and
// the tick transient for the current second had already played out.
func snapshotFrame(sample motion.TimeOfDay, physics motion.Physics) engine.Frame {
	state := motion.NewSecondHandState()
	// First advance registers the tick; two more drain overshoot and
	// recoil; the last lands on settled or creeping for this instant.
	for i := 0; i < 4; i++ {
		state.Advance(sample, physics)
	}
	return engine.Frame{
		Hour:   motion.HourAngle(sample),
		Minute: motion.MinuteAngle(sample),
		Second: state.VisualAngle,
		Phase:  state.Phase,
	}
}

// parseTimeOfDay parses HH:MM:SS with optional .mmm milliseconds.
func parseTimeOfDay(value string) (motion.TimeOfDay, error) {
	var sample motion.TimeOfDay

	timePart := value
	if dot := strings.IndexByte(value, '.'); dot >= 0 {
		timePart = value[:dot]
		msPart := value[dot+1:]
		if len(msPart) == 0 || len(msPart) > 3 {
			return sample, fmt.Errorf("invalid milliseconds in %q", value)
		}
		ms, err := strconv.Atoi(msPart)
		if err != nil {
			return sample, fmt.Errorf("invalid milliseconds in %q", value)
		}
		for i := len(msPart); i < 3; i++ {
			ms *= 10
		}
		sample.Milliseconds = ms
	}

	parts := strings.Split(timePart, ":")
	if len(parts) != 3 {
		return sample, fmt.Errorf("invalid time %q, want HH:MM:SS[.mmm]", value)
	}
	h, err1 := strconv.Atoi(parts[0])
	m, err2 := strconv.Atoi(parts[1])
	s, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil ||
		h < 0 || h > 23 || m < 0 || m > 59 || s < 0 || s > 59 {
		return sample, fmt.Errorf("invalid time %q, want HH:MM:SS[.mmm]", value)
	}
	sample.Hours = h
	sample.Minutes = m
	sample.Seconds = s
	return sample, nil
}
