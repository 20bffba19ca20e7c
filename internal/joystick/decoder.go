// Package joystick reads analog joystick samples from a serial channel.
//
// The device (an Arduino sketch) emits one newline-terminated ASCII line per
// sample: "<x>,<y>,<button>" with x and y being 10-bit ADC readings in
// [0,1023] and button being 0 when pressed (active-low, pull-up wiring).
package joystick

import (
	"strconv"
	"strings"
)

// ADC range of the joystick axes.
const (
	AxisMin = 0
	AxisMax = 1023
)

// Sample is one validated joystick reading.
type Sample struct {
	X       int // horizontal axis, [0,1023]
	Y       int // vertical axis, [0,1023]
	Pressed bool
}

// DecodeLine parses one raw serial line into a Sample.
// Returns ok=false for anything that is not exactly three comma-separated
// integers with both axes in range. Malformed lines are dropped, never
// reported as errors: transient line noise must not disturb the control loop.
func DecodeLine(line string) (Sample, bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return Sample{}, false
	}

	parts := strings.Split(line, ",")
	if len(parts) != 3 {
		return Sample{}, false
	}

	x, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return Sample{}, false
	}
	y, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return Sample{}, false
	}
	button, err := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err != nil {
		return Sample{}, false
	}

	if x < AxisMin || x > AxisMax || y < AxisMin || y > AxisMax {
		return Sample{}, false
	}

	// Button reads LOW when pressed due to the pull-up resistor.
	return Sample{X: x, Y: y, Pressed: button == 0}, true
}
