package vcd

import (
	"log/slog"
	"regexp"
	"strconv"
	"strings"
)

// TimeUnit is one of the six time units a VCD timescale may declare.
type TimeUnit string

const (
	UnitS  TimeUnit = "s"
	UnitMS TimeUnit = "ms"
	UnitUS TimeUnit = "us"
	UnitNS TimeUnit = "ns"
	UnitPS TimeUnit = "ps"
	UnitFS TimeUnit = "fs"
)

// nsPerUnit maps each recognized unit to its duration in nanoseconds.
var nsPerUnit = map[TimeUnit]float64{
	UnitS:  1e9,
	UnitMS: 1e6,
	UnitUS: 1e3,
	UnitNS: 1,
	UnitPS: 1e-3,
	UnitFS: 1e-6,
}

// Timescale is the canonical form of a VCD timescale declaration:
// one simulation tick lasts Value Units.
type Timescale struct {
	Value float64  `json:"value"`
	Unit  TimeUnit `json:"unit"`
}

// DefaultTimescale is substituted whenever a file omits its timescale or
// declares one that cannot be interpreted.
func DefaultTimescale() Timescale {
	return Timescale{Value: 1, Unit: UnitNS}
}

// ScaleFactor returns the multiplier that converts raw ticks to
// nanoseconds. An unrecognized unit counts as already-nanoseconds and is
// logged, never an error.
func (t Timescale) ScaleFactor() float64 {
	mult, ok := nsPerUnit[t.Unit]
	if !ok {
		slog.Warn("unrecognized timescale unit, treating ticks as nanoseconds", "unit", string(t.Unit))
		mult = 1
	}
	return t.Value * mult
}

// secondsLookup resolves the scientific-notation seconds-per-tick family
// for the exact powers of ten the format commonly emits.
var secondsLookup = map[float64]Timescale{
	1e-12: {Value: 1, Unit: UnitPS},
	1e-11: {Value: 10, Unit: UnitPS},
	1e-10: {Value: 100, Unit: UnitPS},
	1e-9:  {Value: 1, Unit: UnitNS},
}

// ResolveTimescale interprets the raw words of a $timescale declaration.
//
// Two encodings exist in the wild:
//
//  1. a single decimal number meaning seconds per tick ("1e-9"), resolved
//     through a fixed lookup of known powers of ten, with any other value
//     converted to nanoseconds directly;
//  2. magnitude and unit ("1 ns", "10ps", "1 1000 ps"), where an extra
//     magnitude multiplies the value and the unit is lower-cased and
//     looked up.
//
// Absent or uninterpretable declarations resolve to the 1 ns default.
// This function never fails.
func ResolveTimescale(parts []string, logger *slog.Logger) Timescale {
	if logger == nil {
		logger = slog.Default()
	}
	words := splitTimescaleWords(parts)
	if len(words) == 0 {
		return DefaultTimescale()
	}

	var numbers []float64
	var unit string
	for _, w := range words {
		if f, err := strconv.ParseFloat(w, 64); err == nil {
			numbers = append(numbers, f)
			continue
		}
		if unit == "" {
			unit = strings.ToLower(w)
		}
	}

	// Seconds-per-tick family: exactly one number, no unit word.
	if unit == "" {
		if len(numbers) != 1 || numbers[0] <= 0 {
			logger.Warn("uninterpretable timescale declaration, using default", "declaration", strings.Join(parts, " "))
			return DefaultTimescale()
		}
		if ts, ok := secondsLookup[numbers[0]]; ok {
			return ts
		}
		return Timescale{Value: numbers[0] * 1e9, Unit: UnitNS}
	}

	// Magnitude+unit family.
	value := 1.0
	if len(numbers) > 0 {
		value = numbers[0]
	}
	if len(numbers) > 1 {
		value *= numbers[1]
	}
	if value <= 0 {
		logger.Warn("non-positive timescale value, using default", "declaration", strings.Join(parts, " "))
		return DefaultTimescale()
	}
	u := TimeUnit(unit)
	if _, ok := nsPerUnit[u]; !ok {
		logger.Warn("unrecognized timescale unit, using default", "unit", unit)
		return DefaultTimescale()
	}
	return Timescale{Value: value, Unit: u}
}

// magUnitPattern matches a word that glues a magnitude to a unit ("10ps").
// Group 1 is the number (exponents allowed), group 2 the trailing letters.
var magUnitPattern = regexp.MustCompile(`^([+-]?[0-9]*\.?[0-9]+(?:[eE][+-]?[0-9]+)?)([a-zA-Z]+)$`)

// splitTimescaleWords separates combined magnitude+unit words ("10ps")
// into their numeric and unit halves.
func splitTimescaleWords(parts []string) []string {
	var out []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if m := magUnitPattern.FindStringSubmatch(p); m != nil {
			out = append(out, m[1], m[2])
			continue
		}
		out = append(out, p)
	}
	return out
}
