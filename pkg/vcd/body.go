package vcd

import (
	"bufio"
	"io"
	"log/slog"
	"strconv"
	"strings"
)

// bodyDecoder streams the value-change section of a VCD file, appending
// each record to the signals registered in the table.
//
// The decode policy is skip-and-continue at single-record granularity:
// a malformed timestamp, a truncated vector pair, or a reference to an
// unknown identifier code drops that one record with a warning and
// nothing else.
type bodyDecoder struct {
	table  *signalTable
	logger *slog.Logger
}

// dump control commands are transparent: their markers carry no data and
// the value changes inside them decode like any others.
var dumpCommands = map[string]bool{
	"$dumpvars": true,
	"$dumpall":  true,
	"$dumpon":   true,
	"$dumpoff":  true,
	"$end":      true,
}

// blockCommands are the keyword commands whose in-body occurrences carry
// a token body up to $end ($comment blocks, mostly). Any other
// $-prefixed token is NOT a command — identifier codes may start with
// '$' — and is skipped on its own, never swallowing siblings.
var blockCommands = map[string]bool{
	"$date":           true,
	"$version":        true,
	"$comment":        true,
	"$timescale":      true,
	"$scope":          true,
	"$var":            true,
	"$upscope":        true,
	"$enddefinitions": true,
}

func (d *bodyDecoder) decode(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)

	var tick uint64
	for scanner.Scan() {
		tok := scanner.Text()
		switch {
		case tok[0] == '#':
			t, err := strconv.ParseUint(tok[1:], 10, 64)
			if err != nil {
				d.logger.Warn("skipping malformed timestamp", "token", tok)
				continue
			}
			if t < tick {
				d.logger.Debug("timestamp going backwards", "from", tick, "to", t)
			}
			tick = t

		case tok[0] == '$':
			low := strings.ToLower(tok)
			if dumpCommands[low] {
				continue
			}
			if blockCommands[low] {
				d.skipCommand(scanner, tok)
				continue
			}
			d.logger.Warn("skipping unrecognized body token", "token", tok)

		case isScalarValue(tok[0]):
			if len(tok) < 2 {
				d.logger.Warn("skipping scalar change without identifier code", "token", tok)
				continue
			}
			d.record(tok[1:], tick, Bits(strings.ToLower(tok[:1])))

		case tok[0] == 'b' || tok[0] == 'B':
			code, ok := d.pairCode(scanner, tok)
			if !ok {
				continue
			}
			d.record(code, tick, Bits(strings.ToLower(tok[1:])))

		case tok[0] == 'r' || tok[0] == 'R':
			code, ok := d.pairCode(scanner, tok)
			if !ok {
				continue
			}
			f, err := strconv.ParseFloat(tok[1:], 64)
			if err != nil {
				d.logger.Warn("skipping real change with unparseable value", "token", tok)
				continue
			}
			d.record(code, tick, Real(f))

		case tok[0] == 's' || tok[0] == 'S':
			code, ok := d.pairCode(scanner, tok)
			if !ok {
				continue
			}
			// String extension values are carried in textual form.
			d.record(code, tick, Bits(tok[1:]))

		default:
			d.logger.Warn("skipping unrecognized body token", "token", tok)
		}
	}
	return scanner.Err()
}

// pairCode reads the identifier code that follows a two-token change
// (vector, real, string). A change truncated at end of input is dropped
// with a warning.
func (d *bodyDecoder) pairCode(scanner *bufio.Scanner, value string) (string, bool) {
	if !scanner.Scan() {
		d.logger.Warn("skipping truncated value change at end of input", "token", value)
		return "", false
	}
	return scanner.Text(), true
}

// skipCommand consumes tokens until the $end that closes an in-body
// command. Commands other than dumps carry no value changes.
func (d *bodyDecoder) skipCommand(scanner *bufio.Scanner, cmd string) {
	for scanner.Scan() {
		if strings.ToLower(scanner.Text()) == "$end" {
			return
		}
	}
	d.logger.Warn("unterminated command in value-change section", "command", cmd)
}

// record appends one change to every signal bound to code.
func (d *bodyDecoder) record(code string, tick uint64, v Value) {
	sigs, ok := d.table.byCode[code]
	if !ok {
		d.logger.Warn("skipping value change for unknown identifier code", "code", code)
		return
	}
	for _, sig := range sigs {
		sig.Changes = append(sig.Changes, Change{Tick: tick, Value: v})
	}
}

func isScalarValue(c byte) bool {
	switch c {
	case '0', '1', 'x', 'X', 'z', 'Z':
		return true
	}
	return false
}
