package duration

import (
	"fmt"
	"strings"
)

// Unit is a duration unit token as stored in display options.
type Unit string

const (
	UnitDays         Unit = "d"
	UnitHours        Unit = "h"
	UnitMinutes      Unit = "m"
	UnitSeconds      Unit = "s"
	UnitMilliseconds Unit = "ms"
)

// units lists the vocabulary from largest to smallest.
var units = []Unit{UnitDays, UnitHours, UnitMinutes, UnitSeconds, UnitMilliseconds}

var unitLabels = map[Unit]string{
	UnitDays:         "days",
	UnitHours:        "hours",
	UnitMinutes:      "minutes",
	UnitSeconds:      "seconds",
	UnitMilliseconds: "milliseconds",
}

// Units returns the unit vocabulary ordered from largest to smallest.
func Units() []Unit {
	return append([]Unit(nil), units...)
}

// ParseUnit validates a unit token.
func ParseUnit(raw string) (Unit, error) {
	unit := Unit(strings.TrimSpace(raw))
	if !unit.Valid() {
		return "", fmt.Errorf("duration: unknown unit %q", raw)
	}
	return unit, nil
}

// Label returns the human readable unit name.
func (u Unit) Label() string {
	if label, ok := unitLabels[u]; ok {
		return label
	}
	return string(u)
}

// Compare orders units by magnitude: negative when u is smaller than other,
// zero when equal, positive when larger. Unknown units sort below all known
// ones.
func (u Unit) Compare(other Unit) int {
	return other.rank() - u.rank()
}

func (u Unit) rank() int {
	for idx, candidate := range units {
		if candidate == u {
			return idx
		}
	}
	return len(units) + 1
}

// Valid reports whether the unit belongs to the vocabulary.
func (u Unit) Valid() bool {
	return u.rank() < len(units)
}

// Range is the pair of unit bounds a duration column displays between.
type Range struct {
	Max Unit `json:"max" yaml:"max"`
	Min Unit `json:"min" yaml:"min"`
}

// Valid reports whether both bounds are known units and Min is not larger than
// Max.
func (r Range) Valid() bool {
	return r.Max.Valid() && r.Min.Valid() && r.Min.Compare(r.Max) <= 0
}

// MinCandidates returns the units allowed as a lower bound when max is the
// upper bound, largest first.
func MinCandidates(max Unit) []Unit {
	var out []Unit
	for _, unit := range units {
		if unit.Compare(max) <= 0 {
			out = append(out, unit)
		}
	}
	return out
}
