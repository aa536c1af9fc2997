// Package vcdlite is a minimal structural reader for VCD files. It
// verifies that a file is token-level well formed — commands terminated
// by $end, numeric timestamps, declarations present — without building a
// signal model. It backs the degraded decode path when the full reader
// fails.
package vcdlite

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Summary reports what the reader saw. It deliberately carries counts
// only: this reader confirms parseability, it does not extract signals.
type Summary struct {
	Commands    int
	Variables   int
	Timestamps  int
	Tokens      int
	Definitions bool
}

// freeText marks the commands whose bodies are uninterpreted text, where
// any token short of $end is acceptable.
var freeText = map[string]bool{
	"$date":    true,
	"$version": true,
	"$comment": true,
}

// knownCommands are the keyword commands of the format. Only these count
// as a nesting violation inside an open command: identifier codes are
// arbitrary printable ASCII and may start with '$', so any other
// $-prefixed token is content.
var knownCommands = map[string]bool{
	"$date":           true,
	"$version":        true,
	"$comment":        true,
	"$timescale":      true,
	"$scope":          true,
	"$var":            true,
	"$upscope":        true,
	"$enddefinitions": true,
	"$dumpvars":       true,
	"$dumpall":        true,
	"$dumpon":         true,
	"$dumpoff":        true,
}

// Scan tokenizes the whole input and checks its command structure.
func Scan(r io.Reader) (*Summary, error) {
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)

	sum := &Summary{}
	open := "" // the command awaiting its $end, if any

	for scanner.Scan() {
		tok := scanner.Text()
		sum.Tokens++

		if strings.HasPrefix(tok, "$") {
			low := strings.ToLower(tok)
			switch {
			case low == "$end":
				if open == "" {
					return nil, fmt.Errorf("unexpected $end with no open command")
				}
				open = ""
			case open == "":
				sum.Commands++
				if low == "$var" {
					sum.Variables++
				}
				if low == "$enddefinitions" {
					sum.Definitions = true
				}
				open = low
			case freeText[open] || !knownCommands[low]:
				// Free text passes anything; elsewhere only a real
				// command keyword is a violation.
			default:
				return nil, fmt.Errorf("nested command %s inside %s", tok, open)
			}
			continue
		}

		if strings.HasPrefix(tok, "#") && open == "" {
			if _, err := strconv.ParseUint(tok[1:], 10, 64); err != nil {
				return nil, fmt.Errorf("malformed timestamp %q", tok)
			}
			sum.Timestamps++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if open != "" {
		return nil, fmt.Errorf("unterminated command %s", open)
	}
	if sum.Commands == 0 {
		return nil, fmt.Errorf("no VCD commands found")
	}
	if !sum.Definitions {
		return nil, fmt.Errorf("missing $enddefinitions command")
	}
	return sum, nil
}

// ScanFile runs Scan over the contents of a file.
func ScanFile(filename string) (*Summary, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return Scan(file)
}
