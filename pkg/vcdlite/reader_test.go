package vcdlite

import (
	"strings"
	"testing"
)

func TestScanAcceptsWellFormedFile(t *testing.T) {
	input := `
$date today $end
$version simtool 2.1 $end
$timescale 1ns $end
$scope module top $end
$var wire 1 ! clk $end
$upscope $end
$enddefinitions $end
#0
$dumpvars
0!
$end
#10
1!
`

	sum, err := Scan(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Failed to scan: %v", err)
	}

	if sum.Commands != 8 {
		t.Errorf("Expected 8 commands, got %d", sum.Commands)
	}
	if sum.Variables != 1 {
		t.Errorf("Expected 1 variable, got %d", sum.Variables)
	}
	if sum.Timestamps != 2 {
		t.Errorf("Expected 2 timestamps, got %d", sum.Timestamps)
	}
	if !sum.Definitions {
		t.Error("Expected $enddefinitions to be seen")
	}
}

func TestScanToleratesCommandWordsInFreeText(t *testing.T) {
	input := `
$comment mentions $var and $scope in passing $end
$enddefinitions $end
`

	if _, err := Scan(strings.NewReader(input)); err != nil {
		t.Fatalf("Free text containing command words should pass: %v", err)
	}
}

func TestScanToleratesDollarIdentifierCodes(t *testing.T) {
	// Identifier codes past 94 start with '$'; only the fixed command
	// keywords count as nesting violations inside $var.
	input := `
$var wire 1 $a clk $end
$enddefinitions $end
#0
0$a
#10
1$a
`

	sum, err := Scan(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Failed to scan: %v", err)
	}

	if sum.Variables != 1 {
		t.Errorf("Expected 1 variable, got %d", sum.Variables)
	}
	if sum.Timestamps != 2 {
		t.Errorf("Expected 2 timestamps, got %d", sum.Timestamps)
	}
}

func TestScanRejections(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"no commands", "hello world\n"},
		{"stray end", "$end\n$enddefinitions $end\n"},
		{"unterminated command", "$scope module top\n$enddefinitions $end\n"},
		{"nested command", "$scope module $var wire $end\n$enddefinitions $end\n"},
		{"missing enddefinitions", "$scope module top $end\n$upscope $end\n"},
		{"malformed timestamp", "$enddefinitions $end\n#zebra\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Scan(strings.NewReader(tt.input)); err == nil {
				t.Error("Expected scan to fail")
			}
		})
	}
}
