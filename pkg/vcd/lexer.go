package vcd

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// HeaderLexer defines the lexical structure for the VCD header section
// (everything up to and including $enddefinitions $end).
//
// VCD keyword commands all start with '$'; everything else in the header
// is a whitespace-separated word: numbers, identifiers, identifier codes,
// units, and free text inside $date/$version/$comment blocks. A single
// catch-all Word token keeps the lexer tolerant of the loosely specified
// text the format allows between a command and its $end.
var HeaderLexer = lexer.MustSimple([]lexer.SimpleRule{
	// Whitespace
	{Name: "Whitespace", Pattern: `[\s\t\n\r]+`},

	// Keyword commands. $enddefinitions must precede $end so the longer
	// keyword wins.
	{Name: "KwEndDefs", Pattern: `\$enddefinitions\b`},
	{Name: "KwEnd", Pattern: `\$end\b`},
	{Name: "KwDate", Pattern: `\$date\b`},
	{Name: "KwVersion", Pattern: `\$version\b`},
	{Name: "KwComment", Pattern: `\$comment\b`},
	{Name: "KwTimescale", Pattern: `\$timescale\b`},
	{Name: "KwScope", Pattern: `\$scope\b`},
	{Name: "KwUpscope", Pattern: `\$upscope\b`},
	{Name: "KwVar", Pattern: `\$var\b`},

	// Any other command keyword (e.g. a tool-specific extension in the
	// header). Parsed as an unknown block and skipped.
	{Name: "Directive", Pattern: `\$[a-zA-Z_]+`},

	// Any run of printable non-space characters. Covers decimal numbers,
	// scope and variable identifiers, identifier codes (printable ASCII
	// 33-126), combined magnitudes like "10ps", bit ranges like "[7:0]",
	// and free text words.
	{Name: "Word", Pattern: `[!-~]+`},
})
