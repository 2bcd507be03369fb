package motion

// Hand angles are expressed in degrees with 0 at 12 o'clock and positive
// values running clockwise. Renderers convert this to whatever rotation
// convention their transform system uses.

// SecondBaseAngle returns the exact angle for a whole second (0-59).
// This is the angle the second hand rests at between ticks.
func SecondBaseAngle(second int) float64 {
	return float64(second) / 60 * 360
}

// HourAngle returns the hour hand angle for t. The hand sweeps continuously
// through the hour as minutes and seconds pass.
func HourAngle(t TimeOfDay) float64 {
	return (float64(t.Hours%12) + float64(t.Minutes)/60 + float64(t.Seconds)/3600) * 30
}

// MinuteAngle returns the minute hand angle for t, advancing smoothly with
// the seconds.
func MinuteAngle(t TimeOfDay) float64 {
	return (float64(t.Minutes) + float64(t.Seconds)/60) * 6
}
