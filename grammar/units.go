package grammar

import (
	"fmt"
	"strings"
)

// Unit2ms returns the number of milliseconds of a time unit. Beats
// depend on the tempo, given as beats per minute; bpm is ignored for other
// units.
func Unit2ms(unit string, bpm float64) (float64, error) {
	switch strings.ToLower(unit) {
	case "", "ms":
		return 1, nil
	case "s", "sec":
		return 1000, nil
	case "min":
		return 60000, nil
	case "beat", "beats":
		if bpm <= 0 {
			return 0, fmt.Errorf("unit %q requires a positive tempo, have %g bpm", unit, bpm)
		}
		return 60000 / bpm, nil
	}
	return 0, fmt.Errorf("unknown time unit %q", unit)
}

// Milliseconds scales the duration of a WAIT command by its unit.
func (w *Wait) Milliseconds(bpm float64) (float64, error) {
	u, err := Unit2ms(w.Unit, bpm)
	if err != nil {
		return 0, err
	}
	return w.Duration * u, nil
}
