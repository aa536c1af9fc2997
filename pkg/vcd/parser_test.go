package vcd

import (
	"io"
	"log/slog"
	"testing"
)

func newTestParser(t *testing.T) *Parser {
	t.Helper()
	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	parser, err := NewParser(WithLogger(quiet))
	if err != nil {
		t.Fatalf("Failed to create parser: %v", err)
	}
	return parser
}

func TestParseMinimalFile(t *testing.T) {
	input := `
$date
   August 26 2026
$end
$version
   Generated by simtool 2.1
$end
$timescale 1ns $end
$scope module top $end
$var wire 1 ! clk $end
$upscope $end
$enddefinitions $end
#0
0!
#10
1!
`

	parser := newTestParser(t)
	file, err := parser.ParseString(input)
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}

	if file.Header.DateText() != "August 26 2026" {
		t.Errorf("Expected date 'August 26 2026', got '%s'", file.Header.DateText())
	}
	if file.Header.VersionText() != "Generated by simtool 2.1" {
		t.Errorf("Expected version text, got '%s'", file.Header.VersionText())
	}

	if file.Timescale.Value != 1 || file.Timescale.Unit != UnitNS {
		t.Errorf("Expected timescale 1 ns, got %g %s", file.Timescale.Value, file.Timescale.Unit)
	}

	if len(file.Signals) != 1 {
		t.Fatalf("Expected 1 signal, got %d", len(file.Signals))
	}

	sig := file.Signals[0]
	if sig.Name != "top.clk" {
		t.Errorf("Expected signal name 'top.clk', got '%s'", sig.Name)
	}
	if sig.Code != "!" {
		t.Errorf("Expected identifier code '!', got '%s'", sig.Code)
	}
	if sig.Width != 1 {
		t.Errorf("Expected width 1, got %d", sig.Width)
	}

	if len(sig.Changes) != 2 {
		t.Fatalf("Expected 2 changes, got %d", len(sig.Changes))
	}
	if sig.Changes[0].Tick != 0 || sig.Changes[0].Value.String() != "0" {
		t.Errorf("Expected change (0, \"0\"), got (%d, %q)", sig.Changes[0].Tick, sig.Changes[0].Value.String())
	}
	if sig.Changes[1].Tick != 10 || sig.Changes[1].Value.String() != "1" {
		t.Errorf("Expected change (10, \"1\"), got (%d, %q)", sig.Changes[1].Tick, sig.Changes[1].Value.String())
	}
}

func TestParseNestedScopes(t *testing.T) {
	input := `
$scope module top $end
$scope module cpu $end
$var wire 1 ! alu_en $end
$upscope $end
$var wire 1 " reset $end
$upscope $end
$enddefinitions $end
`

	parser := newTestParser(t)
	file, err := parser.ParseString(input)
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}

	if len(file.Signals) != 2 {
		t.Fatalf("Expected 2 signals, got %d", len(file.Signals))
	}
	if file.Signals[0].Name != "top.cpu.alu_en" {
		t.Errorf("Expected 'top.cpu.alu_en', got '%s'", file.Signals[0].Name)
	}
	if file.Signals[1].Name != "top.reset" {
		t.Errorf("Expected 'top.reset', got '%s'", file.Signals[1].Name)
	}
}

func TestParseVectorReference(t *testing.T) {
	input := `
$scope module top $end
$var wire 8 # data [7:0] $end
$upscope $end
$enddefinitions $end
#0
b10100101 #
`

	parser := newTestParser(t)
	file, err := parser.ParseString(input)
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}

	if len(file.Signals) != 1 {
		t.Fatalf("Expected 1 signal, got %d", len(file.Signals))
	}
	sig := file.Signals[0]
	if sig.Name != "top.data[7:0]" {
		t.Errorf("Expected 'top.data[7:0]', got '%s'", sig.Name)
	}
	if sig.Width != 8 {
		t.Errorf("Expected width 8, got %d", sig.Width)
	}
	if len(sig.Changes) != 1 || sig.Changes[0].Value.String() != "10100101" {
		t.Fatalf("Expected one vector change '10100101', got %+v", sig.Changes)
	}
}

func TestParseAliasedIdentifierCode(t *testing.T) {
	input := `
$scope module a $end
$var wire 1 ! clk $end
$upscope $end
$scope module b $end
$var wire 1 ! clk_copy $end
$upscope $end
$enddefinitions $end
#0
1!
`

	parser := newTestParser(t)
	file, err := parser.ParseString(input)
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}

	if len(file.Signals) != 2 {
		t.Fatalf("Expected 2 signals, got %d", len(file.Signals))
	}
	for _, sig := range file.Signals {
		if len(sig.Changes) != 1 {
			t.Errorf("Signal %s: expected the change to fan out, got %d changes", sig.Name, len(sig.Changes))
		}
	}
}

func TestParseSignalWithoutChangesIsKept(t *testing.T) {
	input := `
$scope module top $end
$var wire 1 ! clk $end
$var wire 1 " unused $end
$upscope $end
$enddefinitions $end
#0
0!
`

	parser := newTestParser(t)
	file, err := parser.ParseString(input)
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}

	if len(file.Signals) != 2 {
		t.Fatalf("Expected 2 signals, got %d", len(file.Signals))
	}
	unused := file.Signals[1]
	if unused.Name != "top.unused" {
		t.Fatalf("Expected 'top.unused', got '%s'", unused.Name)
	}
	if len(unused.Changes) != 0 {
		t.Errorf("Expected no changes for unused signal, got %d", len(unused.Changes))
	}
}

func TestParseMalformedVarSkipped(t *testing.T) {
	input := `
$scope module top $end
$var wire 1 $end
$var wire 1 ! clk $end
$upscope $end
$enddefinitions $end
`

	parser := newTestParser(t)
	file, err := parser.ParseString(input)
	if err != nil {
		t.Fatalf("Malformed declaration should not be fatal: %v", err)
	}

	if len(file.Signals) != 1 {
		t.Fatalf("Expected 1 signal after skipping malformed declaration, got %d", len(file.Signals))
	}
	if file.Signals[0].Name != "top.clk" {
		t.Errorf("Expected 'top.clk', got '%s'", file.Signals[0].Name)
	}
}

func TestParseDuplicateNamesPreserved(t *testing.T) {
	input := `
$scope module top $end
$var wire 1 ! clk $end
$var wire 1 " clk $end
$upscope $end
$enddefinitions $end
`

	parser := newTestParser(t)
	file, err := parser.ParseString(input)
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}

	if len(file.Signals) != 2 {
		t.Fatalf("Duplicate names must stay distinct entries, got %d signals", len(file.Signals))
	}
	if file.Signals[0].Code != "!" || file.Signals[1].Code != "\"" {
		t.Errorf("Expected declaration order preserved, got codes %q, %q",
			file.Signals[0].Code, file.Signals[1].Code)
	}
}

func TestParseDollarPrefixedIdentifierCode(t *testing.T) {
	// Identifier codes are arbitrary printable ASCII; past 94 signals
	// the code assignment reaches multi-character codes like "$a".
	input := `
$timescale 1ns $end
$scope module top $end
$var wire 1 $a clk $end
$upscope $end
$enddefinitions $end
#0
0$a
#10
1$a
`

	parser := newTestParser(t)
	file, err := parser.ParseString(input)
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}

	if len(file.Signals) != 1 {
		t.Fatalf("Expected 1 signal, got %d", len(file.Signals))
	}
	sig := file.Signals[0]
	if sig.Name != "top.clk" || sig.Code != "$a" {
		t.Errorf("Expected top.clk with code '$a', got %q code %q", sig.Name, sig.Code)
	}
	if len(sig.Changes) != 2 {
		t.Fatalf("Expected 2 changes, got %d", len(sig.Changes))
	}
	if sig.Changes[0].Value.String() != "0" || sig.Changes[1].Value.String() != "1" {
		t.Errorf("Expected values \"0\" and \"1\", got %q and %q",
			sig.Changes[0].Value.String(), sig.Changes[1].Value.String())
	}
}

func TestParseCommentMentioningCommands(t *testing.T) {
	// Free text inside $comment (or $date/$version) can name any
	// command, $enddefinitions included, without ending the section or
	// truncating the header.
	input := `
$comment the $enddefinitions marker and a $var line are discussed here $end
$timescale 1ns $end
$scope module top $end
$var wire 1 ! clk $end
$upscope $end
$enddefinitions $end
#0
0!
#10
1!
`

	parser := newTestParser(t)
	file, err := parser.ParseString(input)
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}

	if len(file.Signals) != 1 {
		t.Fatalf("Expected 1 signal, got %d", len(file.Signals))
	}
	if len(file.Signals[0].Changes) != 2 {
		t.Fatalf("Expected 2 changes, got %d", len(file.Signals[0].Changes))
	}
}

func TestParseMissingEndDefinitions(t *testing.T) {
	input := `
$scope module top $end
$var wire 1 ! clk $end
$upscope $end
#0
0!
`

	parser := newTestParser(t)
	if _, err := parser.ParseString(input); err == nil {
		t.Fatal("Expected error for missing $enddefinitions")
	}
}

func TestParseMissingTimescaleDefaults(t *testing.T) {
	input := `
$scope module top $end
$var wire 1 ! clk $end
$upscope $end
$enddefinitions $end
`

	parser := newTestParser(t)
	file, err := parser.ParseString(input)
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}
	if file.Timescale != DefaultTimescale() {
		t.Errorf("Expected default timescale, got %+v", file.Timescale)
	}
}

func TestParseUnknownHeaderCommandSkipped(t *testing.T) {
	input := `
$custom_tool_block some words here $end
$scope module top $end
$var wire 1 ! clk $end
$upscope $end
$enddefinitions $end
`

	parser := newTestParser(t)
	file, err := parser.ParseString(input)
	if err != nil {
		t.Fatalf("Unknown header command should be tolerated: %v", err)
	}
	if len(file.Signals) != 1 {
		t.Fatalf("Expected 1 signal, got %d", len(file.Signals))
	}
}
