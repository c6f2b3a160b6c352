package ui

import (
	"math"
	"strconv"

	"life-sim/internal/core"
)

const defaultStep = 0.05

// nudge returns the value one step away from current in the given direction,
// held inside the control's bounds. ok is false when the value cannot move.
func nudge(ctrl core.ParameterControl, current float64, direction int) (float64, bool) {
	if direction == 0 {
		return current, false
	}
	step := ctrl.Step
	if step <= 0 {
		step = defaultStep
	}
	target := current + float64(direction)*step
	if ctrl.HasMin && target < ctrl.Min {
		target = ctrl.Min
	}
	if ctrl.HasMax && target > ctrl.Max {
		target = ctrl.Max
	}
	if math.Abs(target-current) < 1e-9 {
		return current, false
	}
	return target, true
}

// formatValue picks a precision from the control's step size.
func formatValue(ctrl core.ParameterControl, value float64) string {
	step := ctrl.Step
	if step <= 0 {
		step = defaultStep
	}
	precision := 1
	switch {
	case step < 0.001:
		precision = 4
	case step < 0.01:
		precision = 3
	case step < 0.1:
		precision = 2
	}
	return strconv.FormatFloat(value, 'f', precision, 64)
}

// statusLines flattens the read-only groups of a snapshot into panel lines.
func statusLines(snapshot core.ParameterSnapshot, skip map[string]bool) []string {
	var lines []string
	for _, group := range snapshot.Groups {
		var params []string
		for _, p := range group.Params {
			if skip[p.Key] {
				continue
			}
			params = append(params, "  "+p.Label+": "+p.Value)
		}
		if len(params) == 0 {
			continue
		}
		lines = append(lines, group.Name)
		lines = append(lines, params...)
	}
	return lines
}

// brushRadius is the distance in cells at which a splat's weight falls to 1%.
func brushRadius(radius float64) float64 {
	if radius <= 0 {
		return 0
	}
	return math.Sqrt(radius * math.Log(100))
}
