// Package vcd decodes Value Change Dump (VCD) files, the text trace
// format hardware simulators use to record signal activity over time.
//
// The reader works in two stages. The declaration section (everything
// up to $enddefinitions) is parsed with a grammar: date, version,
// timescale, the scope hierarchy, and variable declarations. The
// value-change section is then streamed token by token, appending each
// change to the signals declared in the header.
//
// # Usage
//
//	parser, err := vcd.NewParser()
//	if err != nil {
//		// the grammar could not be built
//	}
//
//	file, err := parser.ParseFile("trace.vcd")
//	if err != nil {
//		// the file is not readable VCD
//	}
//
//	for _, sig := range file.Signals {
//		fmt.Printf("%s: %d changes\n", sig.Name, len(sig.Changes))
//	}
//
//	factor := file.Timescale.ScaleFactor() // ticks -> nanoseconds
//
// # Decode policy
//
// Header and body anomalies below the level of the file structure are
// never fatal. A malformed variable declaration, a value change for an
// unregistered identifier code, or an unparseable timestamp is logged
// and skipped; every other record still decodes. Signals are kept in
// declaration order, duplicates included, and a signal that never
// changes keeps an empty change list.
//
// Change ticks are raw simulation time. Conversion to nanoseconds via
// the timescale is left to the caller (see pkg/extract), so one scale
// pass covers the whole file.
package vcd
